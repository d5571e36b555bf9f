package engine

import (
	"github.com/cassiomorais/paybridge/internal/domain/connector"
	"github.com/cassiomorais/paybridge/internal/transport"
)

// Environment carries the per-provider, per-environment settings an adapter
// needs to build URLs. Loaded once at startup, immutable afterwards.
type Environment struct {
	BaseURL string
	// MerchantID is the provider-assigned account identifier, for providers
	// that scope their paths by merchant.
	MerchantID string
}

// Adapter is the single polymorphism point: every provider implements this
// capability set. Adapters are pure — they produce headers, URLs and bodies
// and interpret raw responses, but never perform I/O themselves. All methods
// must be safe for concurrent use.
type Adapter interface {
	// Name returns the provider identifier used for registration and config
	// lookup.
	Name() string

	// Headers returns the ordered header list for the call, including
	// authentication. It fails with ErrAuth when the envelope's credential
	// bundle does not fit the provider's scheme.
	Headers(env *connector.Envelope) ([]transport.Header, error)

	// URL builds the full request URL for the envelope's flow. Sibling flows
	// of the same resource use distinct paths; nothing here is shared
	// between flows without explicit parameterization.
	URL(env *connector.Envelope, environment Environment) (string, error)

	// Method returns an override of the default flow method, if the provider
	// deviates from it.
	Method(flow connector.Flow) (string, bool)

	// RequestBody serializes the canonical request into provider wire
	// content. Flows with nothing to send return an explicit empty-object
	// body, never a nil one, when the provider expects a JSON document.
	RequestBody(env *connector.Envelope) (transport.Body, error)

	// HandleResponse parses the raw wire response into the canonical
	// response payload for the envelope's flow and installs it with
	// env.SetResponse. Missing required fields are a SchemaMismatch, not a
	// silent default.
	HandleResponse(env *connector.Envelope, raw *transport.Response) error

	// ErrorResponse maps a non-success provider response onto the canonical
	// error shape.
	ErrorResponse(raw *transport.Response) connector.ErrorResponse
}

// WebhookHandler is implemented by providers that deliver notifications.
// Verification runs before any payload parsing; a delivery failing
// verification is rejected outright.
type WebhookHandler interface {
	// VerifySignature checks delivery authenticity against the configured
	// secret. Returns ErrSignatureInvalid on mismatch.
	VerifySignature(secret string, headers map[string]string, body []byte) error

	// ParseEvent extracts the minimal envelope from the delivery and maps
	// the provider event literal onto the canonical vocabulary. Unmapped
	// literals map to EventUnrecognized, never to an error.
	ParseEvent(body []byte) (connector.WebhookEvent, error)
}
