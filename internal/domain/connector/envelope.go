package connector

import (
	"fmt"

	domainErrors "github.com/cassiomorais/paybridge/internal/domain/errors"
	"github.com/google/uuid"
)

// Amount is a monetary amount in the smallest currency unit (e.g. cents).
type Amount struct {
	MinorUnits int64
	Currency   string
}

// String returns a human-readable representation of the amount.
func (a Amount) String() string {
	whole := a.MinorUnits / 100
	frac := a.MinorUnits % 100
	if frac < 0 {
		frac = -frac
	}
	return fmt.Sprintf("%d.%02d %s", whole, frac, a.Currency)
}

// Validate checks that the amount is positive and carries an ISO currency.
func (a Amount) Validate() error {
	if a.MinorUnits <= 0 {
		return domainErrors.NewValidationError("amount", "must be positive")
	}
	if len(a.Currency) != 3 {
		return domainErrors.NewValidationError("currency", "must be a 3-letter ISO code")
	}
	return nil
}

// Flow-specific request payloads. The envelope constructor enforces that the
// payload kind matches the flow, so an adapter can rely on the accessor for
// its flow never returning false.

type PaymentRequest struct {
	Method               PaymentMethodData
	Reference            string
	ReturnURL            string
	CaptureAutomatically bool
}

type CaptureRequest struct {
	TransactionID string
	// Amount is nil for a full capture.
	Amount *Amount
}

type VoidRequest struct {
	TransactionID string
	Reason        string
}

type RefundRequest struct {
	TransactionID string
	// Amount is nil for a full refund. Full refunds still serialize to an
	// empty JSON object on providers whose refund endpoint takes no fields.
	Amount *Amount
	Reason string
}

type SyncRequest struct {
	TransactionID string
	// RefundID is set for refund_sync only.
	RefundID string
}

type OrderRequest struct {
	Reference string
}

type SessionRequest struct {
	ReturnURL string
}

type MandateRequest struct {
	Method    PaymentMethodData
	Reference string
}

type DisputeRequest struct {
	DisputeID string
	Message   string
	Evidence  map[string]string
}

type requestKind string

const (
	reqPayment requestKind = "payment"
	reqCapture requestKind = "capture"
	reqVoid    requestKind = "void"
	reqRefund  requestKind = "refund"
	reqSync    requestKind = "sync"
	reqOrder   requestKind = "order"
	reqSession requestKind = "session"
	reqMandate requestKind = "mandate"
	reqDispute requestKind = "dispute"
)

// RequestData is the flow-specific request payload union.
type RequestData struct {
	kind    requestKind
	payment *PaymentRequest
	capture *CaptureRequest
	void    *VoidRequest
	refund  *RefundRequest
	sync    *SyncRequest
	order   *OrderRequest
	session *SessionRequest
	mandate *MandateRequest
	dispute *DisputeRequest
}

func PaymentData(p PaymentRequest) RequestData { return RequestData{kind: reqPayment, payment: &p} }
func CaptureData(c CaptureRequest) RequestData { return RequestData{kind: reqCapture, capture: &c} }
func VoidData(v VoidRequest) RequestData       { return RequestData{kind: reqVoid, void: &v} }
func RefundData(r RefundRequest) RequestData   { return RequestData{kind: reqRefund, refund: &r} }
func SyncData(s SyncRequest) RequestData       { return RequestData{kind: reqSync, sync: &s} }
func OrderData(o OrderRequest) RequestData     { return RequestData{kind: reqOrder, order: &o} }
func SessionData(s SessionRequest) RequestData { return RequestData{kind: reqSession, session: &s} }
func MandateData(m MandateRequest) RequestData { return RequestData{kind: reqMandate, mandate: &m} }
func DisputeData(d DisputeRequest) RequestData { return RequestData{kind: reqDispute, dispute: &d} }

func (r RequestData) Payment() (PaymentRequest, bool) {
	if r.payment == nil {
		return PaymentRequest{}, false
	}
	return *r.payment, true
}

func (r RequestData) Capture() (CaptureRequest, bool) {
	if r.capture == nil {
		return CaptureRequest{}, false
	}
	return *r.capture, true
}

func (r RequestData) Void() (VoidRequest, bool) {
	if r.void == nil {
		return VoidRequest{}, false
	}
	return *r.void, true
}

func (r RequestData) Refund() (RefundRequest, bool) {
	if r.refund == nil {
		return RefundRequest{}, false
	}
	return *r.refund, true
}

func (r RequestData) Sync() (SyncRequest, bool) {
	if r.sync == nil {
		return SyncRequest{}, false
	}
	return *r.sync, true
}

func (r RequestData) Order() (OrderRequest, bool) {
	if r.order == nil {
		return OrderRequest{}, false
	}
	return *r.order, true
}

func (r RequestData) Session() (SessionRequest, bool) {
	if r.session == nil {
		return SessionRequest{}, false
	}
	return *r.session, true
}

func (r RequestData) Mandate() (MandateRequest, bool) {
	if r.mandate == nil {
		return MandateRequest{}, false
	}
	return *r.mandate, true
}

func (r RequestData) Dispute() (DisputeRequest, bool) {
	if r.dispute == nil {
		return DisputeRequest{}, false
	}
	return *r.dispute, true
}

var flowRequestKinds = map[Flow]requestKind{
	FlowAuthorize:          reqPayment,
	FlowCapture:            reqCapture,
	FlowVoid:               reqVoid,
	FlowRefund:             reqRefund,
	FlowPaymentSync:        reqSync,
	FlowRefundSync:         reqSync,
	FlowCreateOrder:        reqOrder,
	FlowCreateSessionToken: reqSession,
	FlowSetupMandate:       reqMandate,
	FlowDefendDispute:      reqDispute,
	FlowSubmitEvidence:     reqDispute,
}

// Response payloads, one shape per flow family. A payment-family response
// never borrows fields from the refund-family shape even when the provider's
// wire format overlaps.

type PaymentResponsePayload struct {
	Status       PaymentStatus
	ID           ResponseID
	RawStatus    string
	Amount       Amount
	SessionToken string
	MandateRef   string
}

type RefundResponsePayload struct {
	Status    RefundStatus
	ID        ResponseID
	RawStatus string
	Amount    Amount
}

type DisputeResponsePayload struct {
	Status    DisputeStatus
	ID        ResponseID
	RawStatus string
}

// ResponseData is the flow-family response union.
type ResponseData struct {
	family  Family
	payment *PaymentResponsePayload
	refund  *RefundResponsePayload
	dispute *DisputeResponsePayload
}

func PaymentResponse(p PaymentResponsePayload) ResponseData {
	return ResponseData{family: FamilyPayment, payment: &p}
}

func RefundResponse(r RefundResponsePayload) ResponseData {
	return ResponseData{family: FamilyRefund, refund: &r}
}

func DisputeResponse(d DisputeResponsePayload) ResponseData {
	return ResponseData{family: FamilyDispute, dispute: &d}
}

func (r ResponseData) Family() Family { return r.family }

func (r ResponseData) Payment() (PaymentResponsePayload, bool) {
	if r.payment == nil {
		return PaymentResponsePayload{}, false
	}
	return *r.payment, true
}

func (r ResponseData) Refund() (RefundResponsePayload, bool) {
	if r.refund == nil {
		return RefundResponsePayload{}, false
	}
	return *r.refund, true
}

func (r ResponseData) Dispute() (DisputeResponsePayload, bool) {
	if r.dispute == nil {
		return DisputeResponsePayload{}, false
	}
	return *r.dispute, true
}

// Envelope is the generic request/response carrier for one connector call.
// It lives for a single round trip and owns no cross-call state. The response
// payload is written exactly once, from a complete raw response, and its
// shape is fixed by the flow, never guessed from provider output.
type Envelope struct {
	Flow          Flow
	Provider      string
	Auth          AuthType
	Amount        Amount
	CorrelationID string
	Request       RequestData

	response *ResponseData
}

// moneyFlows require a positive amount at construction.
var moneyFlows = map[Flow]bool{
	FlowAuthorize:          true,
	FlowRefund:             true,
	FlowCreateOrder:        true,
	FlowCreateSessionToken: true,
}

// NewEnvelope builds an envelope for one (flow, provider) call, validating
// that the request payload kind matches the flow.
func NewEnvelope(flow Flow, provider string, auth AuthType, amount Amount, req RequestData) (*Envelope, error) {
	if !flow.Valid() {
		return nil, fmt.Errorf("%w: %q", domainErrors.ErrInvalidFlow, flow)
	}
	if provider == "" {
		return nil, domainErrors.NewValidationError("provider", "must not be empty")
	}
	if auth.Empty() {
		return nil, domainErrors.NewConnectorError(provider, string(flow), domainErrors.ErrAuth, "", "credentials not configured")
	}
	if flowRequestKinds[flow] != req.kind {
		return nil, domainErrors.NewValidationError("request", fmt.Sprintf("payload kind %q does not fit flow %q", req.kind, flow))
	}
	// Full refunds carry no amount; every other money flow must.
	fullRefund := flow == FlowRefund && req.refund != nil && req.refund.Amount == nil
	if moneyFlows[flow] && !fullRefund {
		if err := amount.Validate(); err != nil {
			return nil, err
		}
	}
	return &Envelope{
		Flow:          flow,
		Provider:      provider,
		Auth:          auth,
		Amount:        amount,
		CorrelationID: uuid.New().String(),
		Request:       req,
	}, nil
}

// SetResponse installs the canonical response payload. It fails if the
// payload family does not match the envelope's flow family, and the envelope
// is left untouched on failure.
func (e *Envelope) SetResponse(rd ResponseData) error {
	if rd.family != e.Flow.Family() {
		return domainErrors.NewConnectorError(e.Provider, string(e.Flow), domainErrors.ErrSchemaMismatch, "",
			fmt.Sprintf("response family %q does not match flow family %q", rd.family, e.Flow.Family()))
	}
	e.response = &rd
	return nil
}

// Response returns the canonical response payload, if the call completed.
func (e *Envelope) Response() (ResponseData, bool) {
	if e.response == nil {
		return ResponseData{}, false
	}
	return *e.response, true
}

// ErrorResponse is the canonical provider error shape.
type ErrorResponse struct {
	Code       string
	Message    string
	HTTPStatus int
	// Raw holds the unparsed provider body for diagnosis. Treated as opaque.
	Raw []byte
}
