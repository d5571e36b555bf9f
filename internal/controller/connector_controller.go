package controller

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/cassiomorais/paybridge/internal/domain/connector"
	domainErrors "github.com/cassiomorais/paybridge/internal/domain/errors"
	"github.com/cassiomorais/paybridge/internal/engine"
	"github.com/cassiomorais/paybridge/internal/repository/postgres"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// ConnectorController exposes the canonical connector flows over HTTP. Each
// handler builds an envelope from the request DTO, runs it through the engine
// and renders the canonical response payload.
type ConnectorController struct {
	engine   *engine.Engine
	registry *engine.Registry
	callLog  *postgres.CallLogRepository
}

// NewConnectorController creates a new ConnectorController. callLog may be
// nil; call journaling is then skipped.
func NewConnectorController(eng *engine.Engine, registry *engine.Registry, callLog *postgres.CallLogRepository) *ConnectorController {
	return &ConnectorController{
		engine:   eng,
		registry: registry,
		callLog:  callLog,
	}
}

// Authorize handles POST /api/v1/providers/{provider}/payments
func (h *ConnectorController) Authorize(w http.ResponseWriter, r *http.Request) {
	var req AuthorizeRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	method, err := req.PaymentMethod.toMethodData()
	if err != nil {
		writeError(w, err)
		return
	}

	h.runPaymentFlow(w, r, connector.FlowAuthorize, req.Amount.toAmount(), connector.PaymentData(connector.PaymentRequest{
		Method:               method,
		Reference:            req.Reference,
		ReturnURL:            req.ReturnURL,
		CaptureAutomatically: req.CaptureAutomatically,
	}))
}

// Capture handles POST /api/v1/providers/{provider}/payments/{id}/capture
func (h *ConnectorController) Capture(w http.ResponseWriter, r *http.Request) {
	var req CaptureRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	capture := connector.CaptureRequest{TransactionID: chi.URLParam(r, "id")}
	var amount connector.Amount
	if req.Amount != nil {
		amount = req.Amount.toAmount()
		capture.Amount = &amount
	}

	h.runPaymentFlow(w, r, connector.FlowCapture, amount, connector.CaptureData(capture))
}

// Void handles POST /api/v1/providers/{provider}/payments/{id}/void
func (h *ConnectorController) Void(w http.ResponseWriter, r *http.Request) {
	var req VoidRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	h.runPaymentFlow(w, r, connector.FlowVoid, connector.Amount{}, connector.VoidData(connector.VoidRequest{
		TransactionID: chi.URLParam(r, "id"),
		Reason:        req.Reason,
	}))
}

// Refund handles POST /api/v1/providers/{provider}/payments/{id}/refunds
func (h *ConnectorController) Refund(w http.ResponseWriter, r *http.Request) {
	var req RefundRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	refund := connector.RefundRequest{
		TransactionID: chi.URLParam(r, "id"),
		Reason:        req.Reason,
	}
	var amount connector.Amount
	if req.Amount != nil {
		amount = req.Amount.toAmount()
		refund.Amount = &amount
	}

	h.runPaymentFlow(w, r, connector.FlowRefund, amount, connector.RefundData(refund))
}

// PaymentSync handles GET /api/v1/providers/{provider}/payments/{id}
func (h *ConnectorController) PaymentSync(w http.ResponseWriter, r *http.Request) {
	h.runPaymentFlow(w, r, connector.FlowPaymentSync, connector.Amount{}, connector.SyncData(connector.SyncRequest{
		TransactionID: chi.URLParam(r, "id"),
	}))
}

// RefundSync handles GET /api/v1/providers/{provider}/payments/{id}/refunds/{refund_id}
func (h *ConnectorController) RefundSync(w http.ResponseWriter, r *http.Request) {
	h.runPaymentFlow(w, r, connector.FlowRefundSync, connector.Amount{}, connector.SyncData(connector.SyncRequest{
		TransactionID: chi.URLParam(r, "id"),
		RefundID:      chi.URLParam(r, "refund_id"),
	}))
}

// CreateOrder handles POST /api/v1/providers/{provider}/orders
func (h *ConnectorController) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	h.runPaymentFlow(w, r, connector.FlowCreateOrder, req.Amount.toAmount(), connector.OrderData(connector.OrderRequest{
		Reference: req.Reference,
	}))
}

// CreateSession handles POST /api/v1/providers/{provider}/sessions
func (h *ConnectorController) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	h.runPaymentFlow(w, r, connector.FlowCreateSessionToken, req.Amount.toAmount(), connector.SessionData(connector.SessionRequest{
		ReturnURL: req.ReturnURL,
	}))
}

// SetupMandate handles POST /api/v1/providers/{provider}/mandates
func (h *ConnectorController) SetupMandate(w http.ResponseWriter, r *http.Request) {
	var req SetupMandateRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	method, err := req.PaymentMethod.toMethodData()
	if err != nil {
		writeError(w, err)
		return
	}

	h.runPaymentFlow(w, r, connector.FlowSetupMandate, connector.Amount{}, connector.MandateData(connector.MandateRequest{
		Method:    method,
		Reference: req.Reference,
	}))
}

// DefendDispute handles POST /api/v1/providers/{provider}/disputes/{id}/defend
func (h *ConnectorController) DefendDispute(w http.ResponseWriter, r *http.Request) {
	h.runDisputeFlow(w, r, connector.FlowDefendDispute)
}

// SubmitEvidence handles POST /api/v1/providers/{provider}/disputes/{id}/evidence
func (h *ConnectorController) SubmitEvidence(w http.ResponseWriter, r *http.Request) {
	h.runDisputeFlow(w, r, connector.FlowSubmitEvidence)
}

func (h *ConnectorController) runDisputeFlow(w http.ResponseWriter, r *http.Request, flow connector.Flow) {
	var req DisputeRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	h.runPaymentFlow(w, r, flow, connector.Amount{}, connector.DisputeData(connector.DisputeRequest{
		DisputeID: chi.URLParam(r, "id"),
		Message:   req.Message,
		Evidence:  req.Evidence,
	}))
}

func (h *ConnectorController) runPaymentFlow(w http.ResponseWriter, r *http.Request, flow connector.Flow, amount connector.Amount, data connector.RequestData) {
	env, err := h.buildEnvelope(r, flow, amount, data)
	if err != nil {
		writeError(w, err)
		return
	}
	h.execute(w, r, env)
}

func (h *ConnectorController) buildEnvelope(r *http.Request, flow connector.Flow, amount connector.Amount, data connector.RequestData) (*connector.Envelope, error) {
	provider := chi.URLParam(r, "provider")
	_, settings, _, err := h.registry.Get(provider)
	if err != nil {
		return nil, err
	}
	return connector.NewEnvelope(flow, provider, settings.Auth, amount, data)
}

func (h *ConnectorController) execute(w http.ResponseWriter, r *http.Request, env *connector.Envelope) {
	start := time.Now()
	err := h.engine.Execute(r.Context(), env)
	h.journal(env, start, err)
	if err != nil {
		writeError(w, err)
		return
	}

	rd, ok := env.Response()
	if !ok {
		writeError(w, domainErrors.NewConnectorError(env.Provider, string(env.Flow), domainErrors.ErrSchemaMismatch, "", "adapter produced no response"))
		return
	}

	switch env.Flow.Family() {
	case connector.FamilyRefund:
		if payload, ok := rd.Refund(); ok {
			writeJSON(w, http.StatusOK, fromRefundPayload(env, payload))
			return
		}
	case connector.FamilyDispute:
		if payload, ok := rd.Dispute(); ok {
			writeJSON(w, http.StatusOK, fromDisputePayload(env, payload))
			return
		}
	default:
		if payload, ok := rd.Payment(); ok {
			writeJSON(w, http.StatusOK, fromPaymentPayload(env, payload))
			return
		}
	}

	writeError(w, domainErrors.NewConnectorError(env.Provider, string(env.Flow), domainErrors.ErrSchemaMismatch, "", "response payload missing for flow family"))
}

// journal records the call outcome, best effort. A journaling failure never
// fails the request.
func (h *ConnectorController) journal(env *connector.Envelope, start time.Time, callErr error) {
	if h.callLog == nil {
		return
	}

	entry := postgres.CallLogEntry{
		CorrelationID: env.CorrelationID,
		Provider:      env.Provider,
		Flow:          string(env.Flow),
		Outcome:       "success",
		AmountMinor:   env.Amount.MinorUnits,
		Currency:      env.Amount.Currency,
		DurationMS:    time.Since(start).Milliseconds(),
	}
	if callErr != nil {
		entry.Outcome = "error"
		var connectorErr *domainErrors.ConnectorError
		if errors.As(callErr, &connectorErr) {
			entry.CanonicalCode = connectorErr.Code
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := h.callLog.Save(ctx, entry); err != nil {
		log.Warn().Err(err).Str("correlation_id", env.CorrelationID).Msg("failed to journal connector call")
	}
}
