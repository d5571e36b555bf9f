package connector

// Flow identifies the operation kind carried by an envelope. It is fixed at
// envelope construction and determines which request and response payload
// shapes are valid for the call.
type Flow string

const (
	FlowAuthorize          Flow = "authorize"
	FlowCapture            Flow = "capture"
	FlowVoid               Flow = "void"
	FlowRefund             Flow = "refund"
	FlowPaymentSync        Flow = "payment_sync"
	FlowRefundSync         Flow = "refund_sync"
	FlowCreateOrder        Flow = "create_order"
	FlowCreateSessionToken Flow = "create_session_token"
	FlowSetupMandate       Flow = "setup_mandate"
	FlowDefendDispute      Flow = "defend_dispute"
	FlowSubmitEvidence     Flow = "submit_evidence"
	FlowIncomingWebhook    Flow = "incoming_webhook"
)

// Family groups flows by the response payload and status vocabulary they use.
type Family string

const (
	FamilyPayment Family = "payment"
	FamilyRefund  Family = "refund"
	FamilyDispute Family = "dispute"
	FamilyWebhook Family = "webhook"
)

var flowFamilies = map[Flow]Family{
	FlowAuthorize:          FamilyPayment,
	FlowCapture:            FamilyPayment,
	FlowVoid:               FamilyPayment,
	FlowPaymentSync:        FamilyPayment,
	FlowCreateOrder:        FamilyPayment,
	FlowCreateSessionToken: FamilyPayment,
	FlowSetupMandate:       FamilyPayment,
	FlowRefund:             FamilyRefund,
	FlowRefundSync:         FamilyRefund,
	FlowDefendDispute:      FamilyDispute,
	FlowSubmitEvidence:     FamilyDispute,
	FlowIncomingWebhook:    FamilyWebhook,
}

// Family returns the flow family. Unknown flows return an empty family.
func (f Flow) Family() Family {
	return flowFamilies[f]
}

// Valid reports whether f is one of the known flows.
func (f Flow) Valid() bool {
	_, ok := flowFamilies[f]
	return ok
}

// IsSync reports whether the flow reads provider state instead of mutating it.
// Sync flows default to a read method and carry no request body.
func (f Flow) IsSync() bool {
	return f == FlowPaymentSync || f == FlowRefundSync
}
