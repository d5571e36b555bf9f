package connector

import "encoding/json"

// EventType is the canonical webhook event vocabulary. It reuses the same
// status language as the call path: a payment event maps onto the payment
// family, a refund event onto the refund family.
type EventType string

const (
	EventPaymentAuthorized EventType = "payment_authorized"
	EventPaymentCaptured   EventType = "payment_captured"
	EventPaymentFailed     EventType = "payment_failed"
	EventPaymentVoided     EventType = "payment_voided"
	EventRefundSucceeded   EventType = "refund_succeeded"
	EventRefundFailed      EventType = "refund_failed"
	EventDisputeOpened     EventType = "dispute_opened"
	EventDisputeWon        EventType = "dispute_won"
	EventDisputeLost       EventType = "dispute_lost"
	EventMandateRevoked    EventType = "mandate_revoked"
	// EventUnrecognized marks a provider event absent from the mapping
	// table. Deliveries mapping here are journaled, never dropped.
	EventUnrecognized EventType = "unrecognized"
)

// WebhookEvent is the canonical shape of one verified provider notification.
type WebhookEvent struct {
	Provider string
	// DeliveryID is the provider's delivery identifier, used for dedup. May
	// be empty when the provider sends none; the ingress derives one then.
	DeliveryID string
	// ObjectReferenceID is the provider identifier of the affected resource.
	ObjectReferenceID string
	Type              EventType
	// ProviderEvent is the provider's own event literal, kept for diagnosis.
	ProviderEvent string
	// Resource is the provider's resource payload; parsing is deferred to
	// whoever consumes the event.
	Resource json.RawMessage
}
