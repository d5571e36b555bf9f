package controller

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"

	domainErrors "github.com/cassiomorais/paybridge/internal/domain/errors"
	"github.com/cassiomorais/paybridge/internal/engine"
	"github.com/cassiomorais/paybridge/internal/infrastructure/redis"
	"github.com/cassiomorais/paybridge/internal/repository/postgres"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// WebhookEventLister reads back journaled deliveries for one provider
// resource.
type WebhookEventLister interface {
	ListByReference(ctx context.Context, provider, objectReferenceID string) ([]postgres.WebhookEventRecord, error)
}

// maxWebhookBody bounds how much of a delivery we read. 1 MiB is far above
// any provider's documented payload size.
const maxWebhookBody = 1 << 20

// WebhookController is the ingress for provider notifications. Verification
// happens before parsing; duplicate deliveries are acknowledged without being
// re-published.
type WebhookController struct {
	engine   *engine.Engine
	dedup    *redis.DeliveryDedup
	producer *redis.StreamProducer
	events   WebhookEventLister
}

// NewWebhookController creates a new WebhookController. dedup, producer and
// events may be nil; the ingress then acknowledges without dedup or relay,
// and the history endpoint answers not-implemented.
func NewWebhookController(eng *engine.Engine, dedup *redis.DeliveryDedup, producer *redis.StreamProducer, events WebhookEventLister) *WebhookController {
	return &WebhookController{
		engine:   eng,
		dedup:    dedup,
		producer: producer,
		events:   events,
	}
}

// Receive handles POST /webhooks/{provider}
func (h *WebhookController) Receive(w http.ResponseWriter, r *http.Request) {
	provider := chi.URLParam(r, "provider")

	body, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		writeError(w, domainErrors.NewValidationError("body", "failed to read request body"))
		return
	}

	headers := make(map[string]string, len(r.Header))
	for name := range r.Header {
		headers[name] = r.Header.Get(name)
	}

	event, err := h.engine.HandleWebhook(r.Context(), provider, headers, body)
	if err != nil {
		writeError(w, err)
		return
	}

	deliveryID := event.DeliveryID
	if deliveryID == "" {
		// Provider sent no delivery id; a body digest still dedups exact
		// redeliveries.
		sum := sha256.Sum256(body)
		deliveryID = hex.EncodeToString(sum[:])
	}

	resp := WebhookAcceptedResponse{
		DeliveryID:        deliveryID,
		EventType:         string(event.Type),
		ObjectReferenceID: event.ObjectReferenceID,
	}

	if h.dedup != nil {
		firstSeen, err := h.dedup.MarkSeen(r.Context(), provider, deliveryID)
		if err != nil {
			// Dedup being down must not drop deliveries; relay consumers
			// insert idempotently anyway.
			log.Warn().Err(err).Str("provider", provider).Msg("webhook dedup unavailable")
		} else if !firstSeen {
			resp.Duplicate = true
			writeJSON(w, http.StatusOK, resp)
			return
		}
	}

	if h.producer != nil {
		if err := h.producer.PublishWebhookEvent(r.Context(), deliveryID, event); err != nil {
			log.Error().Err(err).Str("provider", provider).Str("delivery_id", deliveryID).
				Msg("failed to publish webhook event")
			writeError(w, err)
			return
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

// History handles GET /api/v1/providers/{provider}/webhooks/{reference}
//
// It reads back the journaled deliveries for one provider resource, oldest
// first, so a consumer can reconstruct what the provider has notified about a
// transaction without replaying raw deliveries.
func (h *WebhookController) History(w http.ResponseWriter, r *http.Request) {
	if h.events == nil {
		writeError(w, domainErrors.ErrNotImplemented)
		return
	}

	provider := chi.URLParam(r, "provider")
	reference := chi.URLParam(r, "reference")

	records, err := h.events.ListByReference(r.Context(), provider, reference)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := WebhookHistoryResponse{
		Provider:          provider,
		ObjectReferenceID: reference,
		Events:            make([]WebhookEventResponse, 0, len(records)),
	}
	for _, rec := range records {
		resp.Events = append(resp.Events, WebhookEventResponse{
			DeliveryID:    rec.DeliveryID,
			EventType:     rec.EventType,
			ProviderEvent: rec.ProviderEvent,
			ReceivedAt:    rec.ReceivedAt,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}
