package engine

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/cassiomorais/paybridge/internal/domain/connector"
	domainErrors "github.com/cassiomorais/paybridge/internal/domain/errors"
	"github.com/cassiomorais/paybridge/internal/infrastructure/observability"
	"github.com/cassiomorais/paybridge/internal/transport"
	"github.com/rs/zerolog"
	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Engine drives one connector call or one webhook delivery end to end. It is
// stateless across calls: everything it holds is immutable after startup, so
// any number of invocations for any providers can run concurrently.
type Engine struct {
	registry  *Registry
	transport transport.Doer
	logger    zerolog.Logger
	metrics   *observability.Metrics
	tracer    trace.Tracer
}

func New(registry *Registry, t transport.Doer, logger zerolog.Logger, metrics *observability.Metrics) *Engine {
	return &Engine{
		registry:  registry,
		transport: t,
		logger:    logger,
		metrics:   metrics,
		tracer:    otel.Tracer("paybridge/engine"),
	}
}

// Execute runs the envelope's flow against its provider: build the request
// from the adapter, execute it through the transport behind the provider's
// circuit breaker, then transform the raw response into the canonical result.
// The envelope is updated only from a complete raw response; on any error it
// is left exactly as the caller built it.
func (e *Engine) Execute(ctx context.Context, env *connector.Envelope) error {
	ctx, span := e.tracer.Start(ctx, "engine.execute",
		trace.WithAttributes(
			attribute.String("connector.provider", env.Provider),
			attribute.String("connector.flow", string(env.Flow)),
			attribute.String("connector.correlation_id", env.CorrelationID),
		))
	defer span.End()

	start := time.Now()
	err := e.execute(ctx, env)
	e.observe(env, start, err)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

func (e *Engine) execute(ctx context.Context, env *connector.Envelope) error {
	adapter, settings, breaker, err := e.registry.Get(env.Provider)
	if err != nil {
		return err
	}

	req, err := BuildRequest(adapter, env, settings.Environment, settings.Timeout)
	if err != nil {
		return err
	}

	resp, err := breaker.Execute(func() (*transport.Response, error) {
		return e.transport.Do(ctx, req)
	})
	e.observeBreaker(env.Provider, breaker, err)
	if err != nil {
		return e.classifyTransportError(env, err)
	}

	if !resp.Success() {
		return e.classifyProviderError(adapter, env, resp)
	}

	if err := adapter.HandleResponse(env, resp); err != nil {
		var connErr *domainErrors.ConnectorError
		if errors.As(err, &connErr) {
			return err
		}
		return &domainErrors.ConnectorError{
			Provider:   env.Provider,
			Flow:       string(env.Flow),
			Message:    err.Error(),
			HTTPStatus: resp.StatusCode,
			RawBody:    resp.Body,
			Err:        domainErrors.ErrSchemaMismatch,
		}
	}
	return nil
}

// observeBreaker records the per-provider breaker state and request outcome
// after each transport attempt. gobreaker's state values line up with the
// gauge's help text (0=closed, 1=half-open, 2=open).
func (e *Engine) observeBreaker(provider string, breaker *gobreaker.CircuitBreaker[*transport.Response], err error) {
	result := "success"
	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		result = "rejected"
	case err != nil:
		result = "failure"
	}
	e.metrics.CircuitBreakerRequests.WithLabelValues(provider, result).Inc()
	e.metrics.CircuitBreakerState.WithLabelValues(provider).Set(float64(breaker.State()))
}

// classifyTransportError separates retry-eligible network failures and open
// circuits from caller cancellation.
func (e *Engine) classifyTransportError(env *connector.Envelope, err error) error {
	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return domainErrors.NewConnectorError(env.Provider, string(env.Flow), domainErrors.ErrProviderDisabled, "", err.Error())
	case errors.Is(err, context.Canceled):
		return err
	case errors.Is(err, domainErrors.ErrNetwork):
		return &domainErrors.ConnectorError{
			Provider: env.Provider,
			Flow:     string(env.Flow),
			Message:  err.Error(),
			Err:      domainErrors.ErrNetwork,
		}
	default:
		return domainErrors.NewConnectorError(env.Provider, string(env.Flow), domainErrors.ErrNetwork, "", err.Error())
	}
}

// classifyProviderError maps a non-2xx provider response onto the canonical
// taxonomy through the adapter's error transformer.
func (e *Engine) classifyProviderError(adapter Adapter, env *connector.Envelope, resp *transport.Response) error {
	er := adapter.ErrorResponse(resp)
	return &domainErrors.ConnectorError{
		Provider:   env.Provider,
		Flow:       string(env.Flow),
		Code:       er.Code,
		Message:    er.Message,
		HTTPStatus: resp.StatusCode,
		RawBody:    er.Raw,
		Err:        errorKindForStatus(resp.StatusCode),
	}
}

// errorKindForStatus picks the canonical kind for a provider HTTP status.
// Provider 5xx responses are treated as transient and retry-eligible;
// everything else the provider reports is a terminal business rejection.
func errorKindForStatus(status int) error {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return domainErrors.ErrAuth
	case status == http.StatusNotImplemented:
		return domainErrors.ErrNotImplemented
	case status >= 500:
		return domainErrors.ErrNetwork
	default:
		return domainErrors.ErrProviderDeclined
	}
}

func (e *Engine) observe(env *connector.Envelope, start time.Time, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
		var connErr *domainErrors.ConnectorError
		if errors.As(err, &connErr) {
			e.metrics.ConnectorErrors.WithLabelValues(env.Provider, string(env.Flow), errorKind(connErr)).Inc()
		}
		e.logger.Error().
			Err(err).
			Str("provider", env.Provider).
			Str("flow", string(env.Flow)).
			Str("correlation_id", env.CorrelationID).
			Msg("connector call failed")
	} else {
		e.logger.Info().
			Str("provider", env.Provider).
			Str("flow", string(env.Flow)).
			Str("correlation_id", env.CorrelationID).
			Dur("duration", time.Since(start)).
			Msg("connector call completed")
	}
	e.metrics.ConnectorCallsTotal.WithLabelValues(env.Provider, string(env.Flow), outcome).Inc()
	e.metrics.ConnectorCallDuration.WithLabelValues(env.Provider, string(env.Flow)).Observe(time.Since(start).Seconds())
}

func errorKind(err *domainErrors.ConnectorError) string {
	switch {
	case errors.Is(err, domainErrors.ErrAuth):
		return "auth"
	case errors.Is(err, domainErrors.ErrSchemaMismatch):
		return "schema_mismatch"
	case errors.Is(err, domainErrors.ErrNotImplemented):
		return "not_implemented"
	case errors.Is(err, domainErrors.ErrNetwork):
		return "network"
	case errors.Is(err, domainErrors.ErrProviderDeclined):
		return "declined"
	case errors.Is(err, domainErrors.ErrSignatureInvalid):
		return "signature_invalid"
	case errors.Is(err, domainErrors.ErrUnmappedStatus):
		return "unmapped_status"
	case errors.Is(err, domainErrors.ErrProviderDisabled):
		return "circuit_open"
	default:
		return "other"
	}
}

// HandleWebhook verifies and maps one inbound delivery. Verification runs
// against the configured secret before a single byte of the payload is
// parsed; a bad signature rejects the delivery outright.
func (e *Engine) HandleWebhook(ctx context.Context, provider string, headers map[string]string, body []byte) (connector.WebhookEvent, error) {
	_, span := e.tracer.Start(ctx, "engine.webhook",
		trace.WithAttributes(attribute.String("connector.provider", provider)))
	defer span.End()

	handler, settings, err := e.registry.Webhook(provider)
	if err != nil {
		e.metrics.WebhookDeliveriesTotal.WithLabelValues(provider, "unknown_provider").Inc()
		return connector.WebhookEvent{}, err
	}

	if err := handler.VerifySignature(settings.WebhookSecret, headers, body); err != nil {
		e.metrics.WebhookDeliveriesTotal.WithLabelValues(provider, "signature_invalid").Inc()
		e.logger.Warn().Str("provider", provider).Msg("webhook signature rejected")
		span.SetStatus(codes.Error, "signature invalid")
		return connector.WebhookEvent{}, domainErrors.NewConnectorError(provider, string(connector.FlowIncomingWebhook), domainErrors.ErrSignatureInvalid, "", err.Error())
	}

	event, err := handler.ParseEvent(body)
	if err != nil {
		e.metrics.WebhookDeliveriesTotal.WithLabelValues(provider, "parse_error").Inc()
		return connector.WebhookEvent{}, &domainErrors.ConnectorError{
			Provider: provider,
			Flow:     string(connector.FlowIncomingWebhook),
			Message:  err.Error(),
			RawBody:  body,
			Err:      domainErrors.ErrSchemaMismatch,
		}
	}
	event.Provider = provider

	e.metrics.WebhookDeliveriesTotal.WithLabelValues(provider, "accepted").Inc()
	e.metrics.WebhookEventsMapped.WithLabelValues(provider, string(event.Type)).Inc()
	e.logger.Info().
		Str("provider", provider).
		Str("event_type", string(event.Type)).
		Str("object_reference_id", event.ObjectReferenceID).
		Msg("webhook delivery accepted")

	return event, nil
}
