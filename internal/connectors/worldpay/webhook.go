package worldpay

import (
	"encoding/json"
	"fmt"

	"github.com/cassiomorais/paybridge/internal/domain/connector"
	domainErrors "github.com/cassiomorais/paybridge/internal/domain/errors"
	"github.com/cassiomorais/paybridge/internal/engine"
)

// signatureHeader carries the base64 HMAC-SHA256 of the raw delivery body.
const signatureHeader = "Event-Signature"

// VerifySignature authenticates a delivery before anything parses the body.
func (a *Adapter) VerifySignature(secret string, headers map[string]string, body []byte) error {
	signature := headers[signatureHeader]
	if signature == "" {
		return fmt.Errorf("%w: missing %s header", domainErrors.ErrSignatureInvalid, signatureHeader)
	}
	return engine.VerifyHMACBase64(secret, body, signature)
}

// ParseEvent extracts the minimal envelope and maps the provider event type
// onto the canonical vocabulary. Unmapped types become EventUnrecognized so
// no delivery is dropped silently.
func (a *Adapter) ParseEvent(body []byte) (connector.WebhookEvent, error) {
	var envelope wpWebhookEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return connector.WebhookEvent{}, fmt.Errorf("malformed webhook envelope: %w", err)
	}
	if len(envelope.EventDetails) == 0 {
		return connector.WebhookEvent{}, fmt.Errorf("webhook envelope missing eventDetails")
	}

	var details wpWebhookDetails
	if err := json.Unmarshal(envelope.EventDetails, &details); err != nil {
		return connector.WebhookEvent{}, fmt.Errorf("malformed webhook eventDetails: %w", err)
	}
	if details.TransactionReference == "" {
		return connector.WebhookEvent{}, fmt.Errorf("webhook eventDetails missing transactionReference")
	}

	eventType, ok := webhookEvents[details.Type]
	if !ok {
		eventType = connector.EventUnrecognized
	}

	return connector.WebhookEvent{
		Provider:          Name,
		DeliveryID:        envelope.EventID,
		ObjectReferenceID: details.TransactionReference,
		Type:              eventType,
		ProviderEvent:     details.Type,
		Resource:          envelope.EventDetails,
	}, nil
}
