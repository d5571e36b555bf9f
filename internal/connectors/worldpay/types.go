package worldpay

import "encoding/json"

// Wire shapes for the Worldpay Access API. Request and response types are
// kept separate per flow: the schema of one flow is never assumed to be a
// superset or subset of a sibling flow's schema for the same resource.

type wpValue struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

type wpMerchant struct {
	Entity string `json:"entity"`
}

type wpCardInstrument struct {
	Type       string       `json:"type"`
	CardNumber string       `json:"cardNumber"`
	CardExpiry wpCardExpiry `json:"cardExpiryDate"`
	CVC        string       `json:"cvc,omitempty"`
	HolderName string       `json:"cardHolderName,omitempty"`
}

type wpCardExpiry struct {
	Month string `json:"month"`
	Year  string `json:"year"`
}

type wpWalletInstrument struct {
	Type        string `json:"type"`
	WalletToken string `json:"walletToken"`
}

type wpInstruction struct {
	Value             wpValue         `json:"value"`
	PaymentInstrument json.RawMessage `json:"paymentInstrument"`
	SettlementAuto    *wpSettlement   `json:"settlement,omitempty"`
}

type wpSettlement struct {
	Auto bool `json:"auto"`
}

type wpAuthorizeRequest struct {
	TransactionReference string        `json:"transactionReference"`
	Merchant             wpMerchant    `json:"merchant"`
	Instruction          wpInstruction `json:"instruction"`
}

type wpPartialValueRequest struct {
	Value wpValue `json:"value"`
}

type wpOrderRequest struct {
	Reference string  `json:"reference"`
	Value     wpValue `json:"value"`
}

type wpSessionRequest struct {
	Value     wpValue `json:"value"`
	ReturnURL string  `json:"returnUrl,omitempty"`
}

type wpTokenRequest struct {
	Merchant          wpMerchant      `json:"merchant"`
	PaymentInstrument json.RawMessage `json:"paymentInstrument"`
	Reference         string          `json:"tokenReference,omitempty"`
}

// wpLink is one entry of a _links section; the map key is the relation.
type wpLink struct {
	Href string `json:"href"`
}

// wpAuthorizeResponse is the write-flow response shape: an outcome literal
// plus links locating the created resource.
type wpAuthorizeResponse struct {
	Outcome              string            `json:"outcome"`
	TransactionReference string            `json:"transactionReference"`
	ID                   string            `json:"id"`
	Links                map[string]wpLink `json:"_links"`
}

// wpEventsResponse is the sync-flow response shape. It carries the last
// lifecycle event, not an outcome.
type wpEventsResponse struct {
	LastEvent string            `json:"lastEvent"`
	Links     map[string]wpLink `json:"_links"`
}

type wpRefundResponse struct {
	Outcome string            `json:"outcome"`
	ID      string            `json:"id"`
	Links   map[string]wpLink `json:"_links"`
}

type wpOrderResponse struct {
	ID      string            `json:"id"`
	Outcome string            `json:"outcome"`
	Links   map[string]wpLink `json:"_links"`
}

type wpSessionResponse struct {
	Token string            `json:"token"`
	Links map[string]wpLink `json:"_links"`
}

type wpTokenResponse struct {
	TokenID string            `json:"tokenId"`
	Links   map[string]wpLink `json:"_links"`
}

// wpErrorResponse covers both provider error shapes: validation errors carry
// errorName/message, refusals carry refusal code and description.
type wpErrorResponse struct {
	ErrorName          string `json:"errorName"`
	Message            string `json:"message"`
	Outcome            string `json:"outcome"`
	RefusalCode        string `json:"refusalCode"`
	RefusalDescription string `json:"refusalDescription"`
}

// wpWebhookEnvelope is the minimal webhook shape needed to route a delivery;
// the full eventDetails payload stays opaque for downstream consumers.
type wpWebhookEnvelope struct {
	EventID      string          `json:"eventId"`
	EventDetails json.RawMessage `json:"eventDetails"`
}

type wpWebhookDetails struct {
	Type                 string `json:"type"`
	TransactionReference string `json:"transactionReference"`
}
