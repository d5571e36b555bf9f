// Package worldpay implements the connector adapter for the Worldpay Access
// API. It is the reference adapter: every contract point of the engine is
// exercised here — per-flow URLs, empty-object write bodies, link-based
// identifier extraction, per-family status tables and HMAC webhook
// verification.
package worldpay

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/cassiomorais/paybridge/internal/domain/connector"
	domainErrors "github.com/cassiomorais/paybridge/internal/domain/errors"
	"github.com/cassiomorais/paybridge/internal/engine"
	"github.com/cassiomorais/paybridge/internal/transport"
)

const (
	Name = "worldpay"

	apiVersion  = "2024-06-01"
	contentType = "application/json"
)

type Adapter struct{}

func NewAdapter() *Adapter { return &Adapter{} }

func (a *Adapter) Name() string { return Name }

// Headers builds Basic auth from the key+secret bundle. Worldpay only
// supports the signature credential shape; anything else is an auth error.
func (a *Adapter) Headers(env *connector.Envelope) ([]transport.Header, error) {
	if env.Auth.Kind() != connector.AuthSignature {
		return nil, domainErrors.NewConnectorError(Name, string(env.Flow), domainErrors.ErrAuth, "",
			fmt.Sprintf("worldpay requires key+secret credentials, got %q", env.Auth.Kind()))
	}
	basic := base64.StdEncoding.EncodeToString([]byte(env.Auth.APIKey() + ":" + env.Auth.Secret()))
	return []transport.Header{
		{Name: "Authorization", Value: "Basic " + basic, Sensitive: true},
		{Name: "Accept", Value: contentType},
		{Name: "WP-Api-Version", Value: apiVersion},
	}, nil
}

// URL routes each flow to its own path. Creation, settlement, cancellation,
// refund and the two event-sync flows all live on different sub-resources;
// none of them share a path template.
func (a *Adapter) URL(env *connector.Envelope, environment engine.Environment) (string, error) {
	base := environment.BaseURL
	switch env.Flow {
	case connector.FlowAuthorize:
		return engine.JoinURL(base, "payments", "authorizations"), nil
	case connector.FlowCapture:
		capture, _ := env.Request.Capture()
		if capture.TransactionID == "" {
			return "", domainErrors.NewValidationError("transaction_id", "capture requires the authorization id")
		}
		return engine.JoinURL(base, "payments", "settlements", capture.TransactionID), nil
	case connector.FlowVoid:
		void, _ := env.Request.Void()
		if void.TransactionID == "" {
			return "", domainErrors.NewValidationError("transaction_id", "void requires the authorization id")
		}
		return engine.JoinURL(base, "payments", "cancellations", void.TransactionID), nil
	case connector.FlowRefund:
		refund, _ := env.Request.Refund()
		if refund.TransactionID == "" {
			return "", domainErrors.NewValidationError("transaction_id", "refund requires the settled payment id")
		}
		return engine.JoinURL(base, "payments", "refunds", refund.TransactionID), nil
	case connector.FlowPaymentSync:
		sync, _ := env.Request.Sync()
		if sync.TransactionID == "" {
			return "", domainErrors.NewValidationError("transaction_id", "payment sync requires the payment id")
		}
		return engine.JoinURL(base, "payments", "events", sync.TransactionID), nil
	case connector.FlowRefundSync:
		sync, _ := env.Request.Sync()
		if sync.RefundID == "" {
			return "", domainErrors.NewValidationError("refund_id", "refund sync requires the refund id")
		}
		return engine.JoinURL(base, "payments", "refunds", "events", sync.RefundID), nil
	case connector.FlowCreateOrder:
		return engine.JoinURL(base, "orders"), nil
	case connector.FlowCreateSessionToken:
		return engine.JoinURL(base, "sessions"), nil
	case connector.FlowSetupMandate:
		return engine.JoinURL(base, "tokens"), nil
	case connector.FlowDefendDispute, connector.FlowSubmitEvidence:
		return "", a.notImplemented(env.Flow, "disputes are raised and resolved by the card networks")
	default:
		return "", fmt.Errorf("%w: %q", domainErrors.ErrInvalidFlow, env.Flow)
	}
}

// Method keeps the engine defaults: POST for writes, GET for syncs.
func (a *Adapter) Method(connector.Flow) (string, bool) {
	return "", false
}

func (a *Adapter) RequestBody(env *connector.Envelope) (transport.Body, error) {
	switch env.Flow {
	case connector.FlowAuthorize:
		payment, _ := env.Request.Payment()
		instrument, err := a.paymentInstrument(env.Flow, payment.Method)
		if err != nil {
			return transport.Body{}, err
		}
		return engine.JSONBody(wpAuthorizeRequest{
			TransactionReference: payment.Reference,
			Merchant:             wpMerchant{Entity: "default"},
			Instruction: wpInstruction{
				Value:             wpValue{Amount: env.Amount.MinorUnits, Currency: env.Amount.Currency},
				PaymentInstrument: instrument,
				SettlementAuto:    &wpSettlement{Auto: payment.CaptureAutomatically},
			},
		})
	case connector.FlowCapture:
		capture, _ := env.Request.Capture()
		if capture.Amount == nil {
			return engine.EmptyJSONBody(), nil
		}
		return engine.JSONBody(wpPartialValueRequest{
			Value: wpValue{Amount: capture.Amount.MinorUnits, Currency: capture.Amount.Currency},
		})
	case connector.FlowVoid:
		return engine.EmptyJSONBody(), nil
	case connector.FlowRefund:
		refund, _ := env.Request.Refund()
		if refund.Amount == nil {
			// Full refund: the endpoint takes no fields but still expects a
			// JSON document.
			return engine.EmptyJSONBody(), nil
		}
		return engine.JSONBody(wpPartialValueRequest{
			Value: wpValue{Amount: refund.Amount.MinorUnits, Currency: refund.Amount.Currency},
		})
	case connector.FlowPaymentSync, connector.FlowRefundSync:
		return transport.Body{}, nil
	case connector.FlowCreateOrder:
		order, _ := env.Request.Order()
		return engine.JSONBody(wpOrderRequest{
			Reference: order.Reference,
			Value:     wpValue{Amount: env.Amount.MinorUnits, Currency: env.Amount.Currency},
		})
	case connector.FlowCreateSessionToken:
		session, _ := env.Request.Session()
		return engine.JSONBody(wpSessionRequest{
			Value:     wpValue{Amount: env.Amount.MinorUnits, Currency: env.Amount.Currency},
			ReturnURL: session.ReturnURL,
		})
	case connector.FlowSetupMandate:
		mandate, _ := env.Request.Mandate()
		instrument, err := a.paymentInstrument(env.Flow, mandate.Method)
		if err != nil {
			return transport.Body{}, err
		}
		return engine.JSONBody(wpTokenRequest{
			Merchant:          wpMerchant{Entity: "default"},
			PaymentInstrument: instrument,
			Reference:         mandate.Reference,
		})
	case connector.FlowDefendDispute, connector.FlowSubmitEvidence:
		return transport.Body{}, a.notImplemented(env.Flow, "disputes are raised and resolved by the card networks")
	default:
		return transport.Body{}, fmt.Errorf("%w: %q", domainErrors.ErrInvalidFlow, env.Flow)
	}
}

// paymentInstrument serializes the method variant. The switch is exhaustive
// over the union: unsupported families fail with NotImplemented instead of
// falling through silently.
func (a *Adapter) paymentInstrument(flow connector.Flow, method connector.PaymentMethodData) (json.RawMessage, error) {
	switch method.Kind() {
	case connector.MethodCard:
		card, _ := method.Card()
		return json.Marshal(wpCardInstrument{
			Type:       "card/plain",
			CardNumber: card.Number,
			CardExpiry: wpCardExpiry{Month: card.ExpMonth, Year: card.ExpYear},
			CVC:        card.CVC,
			HolderName: card.HolderName,
		})
	case connector.MethodWallet:
		wallet, _ := method.Wallet()
		switch wallet.Variant {
		case connector.WalletApplePay, connector.WalletGooglePay:
			return json.Marshal(wpWalletInstrument{
				Type:        "wallet/" + string(wallet.Variant),
				WalletToken: wallet.Token,
			})
		default:
			return nil, a.notImplemented(flow, fmt.Sprintf("wallet variant %q not supported", wallet.Variant))
		}
	case connector.MethodBankTransfer:
		return nil, a.notImplemented(flow, "bank transfers not supported")
	case connector.MethodBuyNowPayLater:
		return nil, a.notImplemented(flow, "buy-now-pay-later not supported")
	default:
		return nil, domainErrors.NewValidationError("payment_method", "unknown payment method kind")
	}
}

func (a *Adapter) HandleResponse(env *connector.Envelope, raw *transport.Response) error {
	switch env.Flow {
	case connector.FlowAuthorize, connector.FlowCapture, connector.FlowVoid:
		var resp wpAuthorizeResponse
		if err := json.Unmarshal(raw.Body, &resp); err != nil {
			return a.schemaErr(env, raw, "malformed payment response: "+err.Error())
		}
		if resp.Outcome == "" {
			return a.schemaErr(env, raw, "payment response missing outcome")
		}
		return env.SetResponse(connector.PaymentResponse(connector.PaymentResponsePayload{
			Status:    paymentStatuses.Normalize(resp.Outcome),
			ID:        engine.ExtractID(resp.ID, links(resp.Links)),
			RawStatus: resp.Outcome,
			Amount:    env.Amount,
		}))
	case connector.FlowPaymentSync:
		var resp wpEventsResponse
		if err := json.Unmarshal(raw.Body, &resp); err != nil {
			return a.schemaErr(env, raw, "malformed events response: "+err.Error())
		}
		if resp.LastEvent == "" {
			return a.schemaErr(env, raw, "events response missing lastEvent")
		}
		return env.SetResponse(connector.PaymentResponse(connector.PaymentResponsePayload{
			Status:    paymentStatuses.Normalize(resp.LastEvent),
			ID:        engine.ExtractID("", links(resp.Links)),
			RawStatus: resp.LastEvent,
			Amount:    env.Amount,
		}))
	case connector.FlowRefund:
		var resp wpRefundResponse
		if err := json.Unmarshal(raw.Body, &resp); err != nil {
			return a.schemaErr(env, raw, "malformed refund response: "+err.Error())
		}
		if resp.Outcome == "" {
			return a.schemaErr(env, raw, "refund response missing outcome")
		}
		refund, _ := env.Request.Refund()
		amount := env.Amount
		if refund.Amount != nil {
			amount = *refund.Amount
		}
		return env.SetResponse(connector.RefundResponse(connector.RefundResponsePayload{
			Status:    refundStatuses.Normalize(resp.Outcome),
			ID:        engine.ExtractID(resp.ID, links(resp.Links)),
			RawStatus: resp.Outcome,
			Amount:    amount,
		}))
	case connector.FlowRefundSync:
		var resp wpEventsResponse
		if err := json.Unmarshal(raw.Body, &resp); err != nil {
			return a.schemaErr(env, raw, "malformed refund events response: "+err.Error())
		}
		if resp.LastEvent == "" {
			return a.schemaErr(env, raw, "refund events response missing lastEvent")
		}
		return env.SetResponse(connector.RefundResponse(connector.RefundResponsePayload{
			Status:    refundStatuses.Normalize(resp.LastEvent),
			ID:        engine.ExtractID("", links(resp.Links)),
			RawStatus: resp.LastEvent,
			Amount:    env.Amount,
		}))
	case connector.FlowCreateOrder:
		var resp wpOrderResponse
		if err := json.Unmarshal(raw.Body, &resp); err != nil {
			return a.schemaErr(env, raw, "malformed order response: "+err.Error())
		}
		if resp.ID == "" && len(resp.Links) == 0 {
			return a.schemaErr(env, raw, "order response missing id")
		}
		return env.SetResponse(connector.PaymentResponse(connector.PaymentResponsePayload{
			Status:    paymentStatuses.Normalize(resp.Outcome),
			ID:        engine.ExtractID(resp.ID, links(resp.Links)),
			RawStatus: resp.Outcome,
			Amount:    env.Amount,
		}))
	case connector.FlowCreateSessionToken:
		var resp wpSessionResponse
		if err := json.Unmarshal(raw.Body, &resp); err != nil {
			return a.schemaErr(env, raw, "malformed session response: "+err.Error())
		}
		if resp.Token == "" {
			return a.schemaErr(env, raw, "session response missing token")
		}
		return env.SetResponse(connector.PaymentResponse(connector.PaymentResponsePayload{
			Status:       connector.PaymentStatusPending,
			ID:           engine.ExtractID("", links(resp.Links)),
			SessionToken: resp.Token,
			Amount:       env.Amount,
		}))
	case connector.FlowSetupMandate:
		var resp wpTokenResponse
		if err := json.Unmarshal(raw.Body, &resp); err != nil {
			return a.schemaErr(env, raw, "malformed token response: "+err.Error())
		}
		if resp.TokenID == "" {
			return a.schemaErr(env, raw, "token response missing tokenId")
		}
		return env.SetResponse(connector.PaymentResponse(connector.PaymentResponsePayload{
			Status:     connector.PaymentStatusAuthorized,
			ID:         engine.ExtractID(resp.TokenID, links(resp.Links)),
			MandateRef: resp.TokenID,
			Amount:     env.Amount,
		}))
	case connector.FlowDefendDispute, connector.FlowSubmitEvidence:
		return a.notImplemented(env.Flow, "disputes are raised and resolved by the card networks")
	default:
		return fmt.Errorf("%w: %q", domainErrors.ErrInvalidFlow, env.Flow)
	}
}

func (a *Adapter) ErrorResponse(raw *transport.Response) connector.ErrorResponse {
	var body wpErrorResponse
	_ = json.Unmarshal(raw.Body, &body)

	code := body.ErrorName
	message := body.Message
	if code == "" && body.RefusalCode != "" {
		code = body.RefusalCode
		message = body.RefusalDescription
	}
	if message == "" {
		message = "provider returned HTTP " + fmt.Sprint(raw.StatusCode)
	}

	return connector.ErrorResponse{
		Code:       code,
		Message:    message,
		HTTPStatus: raw.StatusCode,
		Raw:        raw.Body,
	}
}

func (a *Adapter) schemaErr(env *connector.Envelope, raw *transport.Response, msg string) error {
	return &domainErrors.ConnectorError{
		Provider:   Name,
		Flow:       string(env.Flow),
		Message:    msg,
		HTTPStatus: raw.StatusCode,
		RawBody:    raw.Body,
		Err:        domainErrors.ErrSchemaMismatch,
	}
}

func (a *Adapter) notImplemented(flow connector.Flow, msg string) error {
	return domainErrors.NewConnectorError(Name, string(flow), domainErrors.ErrNotImplemented, "", msg)
}

func links(m map[string]wpLink) []engine.Link {
	out := make([]engine.Link, 0, len(m))
	for rel, l := range m {
		out = append(out, engine.Link{Rel: rel, Href: l.Href})
	}
	return out
}
