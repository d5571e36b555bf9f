package controller

import (
	"time"

	"github.com/cassiomorais/paybridge/internal/domain/connector"
	domainErrors "github.com/cassiomorais/paybridge/internal/domain/errors"
)

// --- Request DTOs ---
// These DTOs handle HTTP/JSON concerns (validation tags, optional fields).
// Controllers convert them to canonical connector types before building an
// envelope; card numbers and tokens never appear in responses or logs.

// AmountRequest is a monetary amount in the smallest currency unit.
type AmountRequest struct {
	MinorUnits int64  `json:"minor_units" validate:"required,gt=0"`
	Currency   string `json:"currency" validate:"required,len=3"`
}

func (a AmountRequest) toAmount() connector.Amount {
	return connector.Amount{MinorUnits: a.MinorUnits, Currency: a.Currency}
}

// CardRequest holds raw card details.
type CardRequest struct {
	Number     string `json:"number" validate:"required,min=12,max=19"`
	ExpMonth   string `json:"exp_month" validate:"required,len=2"`
	ExpYear    string `json:"exp_year" validate:"required,len=4"`
	CVC        string `json:"cvc" validate:"required,min=3,max=4"`
	HolderName string `json:"holder_name,omitempty"`
}

// WalletRequest holds an opaque wallet token.
type WalletRequest struct {
	Variant string `json:"variant" validate:"required,oneof=apple_pay google_pay paypal"`
	Token   string `json:"token" validate:"required"`
}

// BankTransferRequest holds bank account details.
type BankTransferRequest struct {
	Variant       string `json:"variant" validate:"required,oneof=sepa ach bacs"`
	IBAN          string `json:"iban,omitempty"`
	AccountNumber string `json:"account_number,omitempty"`
	RoutingNumber string `json:"routing_number,omitempty"`
	HolderName    string `json:"holder_name,omitempty"`
}

// BuyNowPayLaterRequest holds a BNPL checkout token.
type BuyNowPayLaterRequest struct {
	Variant string `json:"variant" validate:"required,oneof=klarna afterpay affirm"`
	Token   string `json:"token" validate:"required"`
}

// PaymentMethodRequest is the JSON shape of a payment method. Exactly one of
// the variant objects must be set, matching Type.
type PaymentMethodRequest struct {
	Type           string                 `json:"type" validate:"required,oneof=card wallet bank_transfer buy_now_pay_later"`
	Card           *CardRequest           `json:"card,omitempty"`
	Wallet         *WalletRequest         `json:"wallet,omitempty"`
	BankTransfer   *BankTransferRequest   `json:"bank_transfer,omitempty"`
	BuyNowPayLater *BuyNowPayLaterRequest `json:"buy_now_pay_later,omitempty"`
}

func (p PaymentMethodRequest) toMethodData() (connector.PaymentMethodData, error) {
	switch connector.MethodKind(p.Type) {
	case connector.MethodCard:
		if p.Card == nil {
			return connector.PaymentMethodData{}, domainErrors.NewValidationError("card", "card object required for type card")
		}
		return connector.CardMethod(connector.Card{
			Number:     p.Card.Number,
			ExpMonth:   p.Card.ExpMonth,
			ExpYear:    p.Card.ExpYear,
			CVC:        p.Card.CVC,
			HolderName: p.Card.HolderName,
		}), nil
	case connector.MethodWallet:
		if p.Wallet == nil {
			return connector.PaymentMethodData{}, domainErrors.NewValidationError("wallet", "wallet object required for type wallet")
		}
		return connector.WalletMethod(connector.Wallet{
			Variant: connector.WalletVariant(p.Wallet.Variant),
			Token:   p.Wallet.Token,
		}), nil
	case connector.MethodBankTransfer:
		if p.BankTransfer == nil {
			return connector.PaymentMethodData{}, domainErrors.NewValidationError("bank_transfer", "bank_transfer object required for type bank_transfer")
		}
		return connector.BankTransferMethod(connector.BankTransfer{
			Variant:       connector.BankTransferVariant(p.BankTransfer.Variant),
			IBAN:          p.BankTransfer.IBAN,
			AccountNumber: p.BankTransfer.AccountNumber,
			RoutingNumber: p.BankTransfer.RoutingNumber,
			HolderName:    p.BankTransfer.HolderName,
		}), nil
	case connector.MethodBuyNowPayLater:
		if p.BuyNowPayLater == nil {
			return connector.PaymentMethodData{}, domainErrors.NewValidationError("buy_now_pay_later", "buy_now_pay_later object required for type buy_now_pay_later")
		}
		return connector.BuyNowPayLaterMethod(connector.BuyNowPayLater{
			Variant: connector.BNPLVariant(p.BuyNowPayLater.Variant),
			Token:   p.BuyNowPayLater.Token,
		}), nil
	}
	return connector.PaymentMethodData{}, domainErrors.NewValidationError("type", "unknown payment method type")
}

// AuthorizeRequest holds the input for authorizing a payment.
type AuthorizeRequest struct {
	Amount               AmountRequest        `json:"amount" validate:"required"`
	PaymentMethod        PaymentMethodRequest `json:"payment_method" validate:"required"`
	Reference            string               `json:"reference" validate:"required"`
	ReturnURL            string               `json:"return_url,omitempty" validate:"omitempty,url"`
	CaptureAutomatically bool                 `json:"capture_automatically"`
}

// CaptureRequest holds the input for capturing an authorized payment.
// Amount omitted means a full capture.
type CaptureRequest struct {
	Amount *AmountRequest `json:"amount,omitempty"`
}

// VoidRequest holds the input for voiding an authorized payment.
type VoidRequest struct {
	Reason string `json:"reason,omitempty"`
}

// RefundRequest holds the input for refunding a payment. Amount omitted means
// a full refund.
type RefundRequest struct {
	Amount *AmountRequest `json:"amount,omitempty"`
	Reason string         `json:"reason,omitempty"`
}

// CreateOrderRequest holds the input for creating a provider-side order.
type CreateOrderRequest struct {
	Amount    AmountRequest `json:"amount" validate:"required"`
	Reference string        `json:"reference" validate:"required"`
}

// CreateSessionRequest holds the input for creating a checkout session token.
type CreateSessionRequest struct {
	Amount    AmountRequest `json:"amount" validate:"required"`
	ReturnURL string        `json:"return_url,omitempty" validate:"omitempty,url"`
}

// SetupMandateRequest holds the input for registering a recurring mandate.
type SetupMandateRequest struct {
	PaymentMethod PaymentMethodRequest `json:"payment_method" validate:"required"`
	Reference     string               `json:"reference" validate:"required"`
}

// DisputeRequest holds the input for defending a dispute or submitting
// evidence for one.
type DisputeRequest struct {
	Message  string            `json:"message,omitempty"`
	Evidence map[string]string `json:"evidence,omitempty"`
}

// --- Response DTOs ---

// AmountResponse mirrors AmountRequest on the way out.
type AmountResponse struct {
	MinorUnits int64  `json:"minor_units"`
	Currency   string `json:"currency"`
}

// PaymentResultResponse is the canonical outcome of a payment-family call.
type PaymentResultResponse struct {
	Provider      string          `json:"provider"`
	Flow          string          `json:"flow"`
	CorrelationID string          `json:"correlation_id"`
	Status        string          `json:"status"`
	RawStatus     string          `json:"raw_status,omitempty"`
	TransactionID string          `json:"transaction_id,omitempty"`
	EncodedData   string          `json:"encoded_data,omitempty"`
	Amount        *AmountResponse `json:"amount,omitempty"`
	SessionToken  string          `json:"session_token,omitempty"`
	MandateRef    string          `json:"mandate_ref,omitempty"`
}

// RefundResultResponse is the canonical outcome of a refund-family call.
type RefundResultResponse struct {
	Provider      string          `json:"provider"`
	Flow          string          `json:"flow"`
	CorrelationID string          `json:"correlation_id"`
	Status        string          `json:"status"`
	RawStatus     string          `json:"raw_status,omitempty"`
	RefundID      string          `json:"refund_id,omitempty"`
	Amount        *AmountResponse `json:"amount,omitempty"`
}

// DisputeResultResponse is the canonical outcome of a dispute-family call.
type DisputeResultResponse struct {
	Provider      string `json:"provider"`
	Flow          string `json:"flow"`
	CorrelationID string `json:"correlation_id"`
	Status        string `json:"status"`
	RawStatus     string `json:"raw_status,omitempty"`
	DisputeID     string `json:"dispute_id,omitempty"`
}

// WebhookAcceptedResponse acknowledges an incoming webhook delivery.
type WebhookAcceptedResponse struct {
	DeliveryID        string `json:"delivery_id"`
	EventType         string `json:"event_type"`
	ObjectReferenceID string `json:"object_reference_id"`
	Duplicate         bool   `json:"duplicate,omitempty"`
}

// WebhookEventResponse is one journaled delivery in a history listing. The
// opaque provider resource stays in the journal; listings carry metadata only.
type WebhookEventResponse struct {
	DeliveryID    string    `json:"delivery_id"`
	EventType     string    `json:"event_type"`
	ProviderEvent string    `json:"provider_event"`
	ReceivedAt    time.Time `json:"received_at"`
}

// WebhookHistoryResponse lists the journaled deliveries for one provider
// resource, oldest first.
type WebhookHistoryResponse struct {
	Provider          string                 `json:"provider"`
	ObjectReferenceID string                 `json:"object_reference_id"`
	Events            []WebhookEventResponse `json:"events"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error        string `json:"error"`
	Code         string `json:"code"`
	ProviderCode string `json:"provider_code,omitempty"`
	Retryable    bool   `json:"retryable,omitempty"`
}

// --- Conversion helpers ---

func fromPaymentPayload(env *connector.Envelope, p connector.PaymentResponsePayload) *PaymentResultResponse {
	resp := &PaymentResultResponse{
		Provider:      env.Provider,
		Flow:          string(env.Flow),
		CorrelationID: env.CorrelationID,
		Status:        string(p.Status),
		RawStatus:     p.RawStatus,
		SessionToken:  p.SessionToken,
		MandateRef:    p.MandateRef,
	}
	switch p.ID.Kind() {
	case connector.IDConnectorTransaction:
		resp.TransactionID, _ = p.ID.Value()
	case connector.IDEncodedData:
		resp.EncodedData, _ = p.ID.Value()
	}
	if p.Amount.MinorUnits > 0 {
		resp.Amount = &AmountResponse{MinorUnits: p.Amount.MinorUnits, Currency: p.Amount.Currency}
	}
	return resp
}

func fromRefundPayload(env *connector.Envelope, r connector.RefundResponsePayload) *RefundResultResponse {
	resp := &RefundResultResponse{
		Provider:      env.Provider,
		Flow:          string(env.Flow),
		CorrelationID: env.CorrelationID,
		Status:        string(r.Status),
		RawStatus:     r.RawStatus,
	}
	if id, ok := r.ID.Value(); ok {
		resp.RefundID = id
	}
	if r.Amount.MinorUnits > 0 {
		resp.Amount = &AmountResponse{MinorUnits: r.Amount.MinorUnits, Currency: r.Amount.Currency}
	}
	return resp
}

func fromDisputePayload(env *connector.Envelope, d connector.DisputeResponsePayload) *DisputeResultResponse {
	resp := &DisputeResultResponse{
		Provider:      env.Provider,
		Flow:          string(env.Flow),
		CorrelationID: env.CorrelationID,
		Status:        string(d.Status),
		RawStatus:     d.RawStatus,
	}
	if id, ok := d.ID.Value(); ok {
		resp.DisputeID = id
	}
	return resp
}
