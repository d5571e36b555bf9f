package testutil

import (
	"context"
	"net/http"
	"sync"

	"github.com/cassiomorais/paybridge/internal/domain/connector"
	"github.com/cassiomorais/paybridge/internal/engine"
	"github.com/cassiomorais/paybridge/internal/transport"
)

// --- Adapter stub ---

// StubAdapter is a configurable engine.Adapter. Unset funcs fall back to
// benign defaults, so a test only wires the methods it exercises.
type StubAdapter struct {
	ProviderName string

	HeadersFunc        func(env *connector.Envelope) ([]transport.Header, error)
	URLFunc            func(env *connector.Envelope, environment engine.Environment) (string, error)
	MethodFunc         func(flow connector.Flow) (string, bool)
	RequestBodyFunc    func(env *connector.Envelope) (transport.Body, error)
	HandleResponseFunc func(env *connector.Envelope, raw *transport.Response) error
	ErrorResponseFunc  func(raw *transport.Response) connector.ErrorResponse
}

func (a *StubAdapter) Name() string {
	if a.ProviderName == "" {
		return "stub"
	}
	return a.ProviderName
}

func (a *StubAdapter) Headers(env *connector.Envelope) ([]transport.Header, error) {
	if a.HeadersFunc != nil {
		return a.HeadersFunc(env)
	}
	return []transport.Header{{Name: "Authorization", Value: "Bearer stub", Sensitive: true}}, nil
}

func (a *StubAdapter) URL(env *connector.Envelope, environment engine.Environment) (string, error) {
	if a.URLFunc != nil {
		return a.URLFunc(env, environment)
	}
	return environment.BaseURL + "/" + string(env.Flow), nil
}

func (a *StubAdapter) Method(flow connector.Flow) (string, bool) {
	if a.MethodFunc != nil {
		return a.MethodFunc(flow)
	}
	return "", false
}

func (a *StubAdapter) RequestBody(env *connector.Envelope) (transport.Body, error) {
	if a.RequestBodyFunc != nil {
		return a.RequestBodyFunc(env)
	}
	return engine.EmptyJSONBody(), nil
}

func (a *StubAdapter) HandleResponse(env *connector.Envelope, raw *transport.Response) error {
	if a.HandleResponseFunc != nil {
		return a.HandleResponseFunc(env, raw)
	}
	switch env.Flow.Family() {
	case connector.FamilyRefund:
		return env.SetResponse(connector.RefundResponse(connector.RefundResponsePayload{
			Status: connector.RefundStatusPending,
			ID:     connector.ConnectorTransactionID("stub_refund"),
		}))
	case connector.FamilyDispute:
		return env.SetResponse(connector.DisputeResponse(connector.DisputeResponsePayload{
			Status: connector.DisputeStatusChallenged,
			ID:     connector.ConnectorTransactionID("stub_dispute"),
		}))
	default:
		return env.SetResponse(connector.PaymentResponse(connector.PaymentResponsePayload{
			Status: connector.PaymentStatusAuthorized,
			ID:     connector.ConnectorTransactionID("stub_txn"),
		}))
	}
}

func (a *StubAdapter) ErrorResponse(raw *transport.Response) connector.ErrorResponse {
	if a.ErrorResponseFunc != nil {
		return a.ErrorResponseFunc(raw)
	}
	return connector.ErrorResponse{
		Code:       "stub_error",
		Message:    "stub provider error",
		HTTPStatus: raw.StatusCode,
		Raw:        raw.Body,
	}
}

// StubWebhookAdapter adds webhook handling on top of StubAdapter.
type StubWebhookAdapter struct {
	StubAdapter

	VerifySignatureFunc func(secret string, headers map[string]string, body []byte) error
	ParseEventFunc      func(body []byte) (connector.WebhookEvent, error)
}

func (a *StubWebhookAdapter) VerifySignature(secret string, headers map[string]string, body []byte) error {
	if a.VerifySignatureFunc != nil {
		return a.VerifySignatureFunc(secret, headers, body)
	}
	return nil
}

func (a *StubWebhookAdapter) ParseEvent(body []byte) (connector.WebhookEvent, error) {
	if a.ParseEventFunc != nil {
		return a.ParseEventFunc(body)
	}
	return connector.WebhookEvent{
		ObjectReferenceID: "stub_ref",
		Type:              connector.EventPaymentAuthorized,
		ProviderEvent:     "stub.authorized",
		Resource:          body,
	}, nil
}

// --- Transport stub ---

// StubDoer is a transport.Doer that replays canned responses and records the
// requests it receives.
type StubDoer struct {
	mu        sync.Mutex
	responses []*transport.Response
	errs      []error
	Requests  []transport.Request
}

func NewStubDoer() *StubDoer {
	return &StubDoer{}
}

// QueueResponse appends a canned response; each Do consumes one.
func (d *StubDoer) QueueResponse(resp *transport.Response) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.responses = append(d.responses, resp)
	d.errs = append(d.errs, nil)
}

// QueueError appends a transport-level failure.
func (d *StubDoer) QueueError(err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.responses = append(d.responses, nil)
	d.errs = append(d.errs, err)
}

func (d *StubDoer) Do(ctx context.Context, req transport.Request) (*transport.Response, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Requests = append(d.Requests, req)
	if len(d.responses) == 0 {
		return &transport.Response{StatusCode: http.StatusOK, Body: []byte(`{}`)}, nil
	}
	resp, err := d.responses[0], d.errs[0]
	d.responses = d.responses[1:]
	d.errs = d.errs[1:]
	return resp, err
}

// LastRequest returns the most recent request, if any.
func (d *StubDoer) LastRequest() (transport.Request, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.Requests) == 0 {
		return transport.Request{}, false
	}
	return d.Requests[len(d.Requests)-1], true
}
