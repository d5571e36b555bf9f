package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds all application metrics
type Metrics struct {
	// Connector call metrics
	ConnectorCallsTotal   *prometheus.CounterVec
	ConnectorCallDuration *prometheus.HistogramVec
	ConnectorErrors       *prometheus.CounterVec

	// Webhook metrics
	WebhookDeliveriesTotal *prometheus.CounterVec
	WebhookEventsMapped    *prometheus.CounterVec

	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Circuit breaker metrics
	CircuitBreakerState    *prometheus.GaugeVec
	CircuitBreakerRequests *prometheus.CounterVec

	// Relay metrics
	RelayMessagesProcessed  *prometheus.CounterVec
	RelayProcessingDuration *prometheus.HistogramVec
}

// NewMetrics creates and registers all metrics against the given registry.
// If reg is nil, prometheus.DefaultRegisterer is used.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := prometheus.WrapRegistererWith(nil, reg)

	m := &Metrics{
		ConnectorCallsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "connector_calls_total",
				Help:      "Total number of connector calls by provider, flow and outcome",
			},
			[]string{"provider", "flow", "outcome"},
		),
		ConnectorCallDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "connector_call_duration_seconds",
				Help:      "Connector call duration in seconds",
				Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
			},
			[]string{"provider", "flow"},
		),
		ConnectorErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "connector_errors_total",
				Help:      "Total number of connector errors by provider, flow and error kind",
			},
			[]string{"provider", "flow", "kind"},
		),
		WebhookDeliveriesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "webhook_deliveries_total",
				Help:      "Total number of webhook deliveries by provider and outcome",
			},
			[]string{"provider", "outcome"},
		),
		WebhookEventsMapped: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "webhook_events_mapped_total",
				Help:      "Total number of webhook events by provider and canonical type",
			},
			[]string{"provider", "event_type"},
		),
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		CircuitBreakerState: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "circuit_breaker_state",
				Help:      "Circuit breaker state (0=closed, 1=half-open, 2=open)",
			},
			[]string{"name"},
		),
		CircuitBreakerRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "circuit_breaker_requests_total",
				Help:      "Total number of circuit breaker requests",
			},
			[]string{"name", "result"},
		),
		RelayMessagesProcessed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "relay_messages_processed_total",
				Help:      "Total number of relay stream messages by result",
			},
			[]string{"stream", "result"},
		),
		RelayProcessingDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "relay_processing_duration_seconds",
				Help:      "Relay message processing duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"stream"},
		),
	}

	factory.MustRegister(
		m.ConnectorCallsTotal,
		m.ConnectorCallDuration,
		m.ConnectorErrors,
		m.WebhookDeliveriesTotal,
		m.WebhookEventsMapped,
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.CircuitBreakerState,
		m.CircuitBreakerRequests,
		m.RelayMessagesProcessed,
		m.RelayProcessingDuration,
	)

	return m
}
