package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/cassiomorais/paybridge/internal/domain/connector"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// WebhookEventRecord is one journaled canonical webhook event.
type WebhookEventRecord struct {
	ID                uuid.UUID
	DeliveryID        string
	Provider          string
	ObjectReferenceID string
	EventType         string
	ProviderEvent     string
	Resource          []byte
	ReceivedAt        time.Time
}

// WebhookEventRepository journals accepted webhook events. The journal is
// delivery bookkeeping: consumers read from here instead of re-verifying
// provider deliveries.
type WebhookEventRepository struct {
	pool *pgxpool.Pool
}

func NewWebhookEventRepository(pool *pgxpool.Pool) *WebhookEventRepository {
	return &WebhookEventRepository{pool: pool}
}

// Save journals one event. Replays of the same delivery id are ignored so
// the relay worker stays idempotent across restarts.
func (r *WebhookEventRepository) Save(ctx context.Context, deliveryID string, event connector.WebhookEvent) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO webhook_events (id, delivery_id, provider, object_reference_id, event_type, provider_event, resource, received_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (delivery_id) DO NOTHING`,
		uuid.New(), deliveryID, event.Provider, event.ObjectReferenceID,
		string(event.Type), event.ProviderEvent, []byte(event.Resource), time.Now(),
	)
	if err != nil {
		return fmt.Errorf("save webhook event: %w", err)
	}
	return nil
}

// ListByReference returns the journaled events for one provider resource,
// oldest first.
func (r *WebhookEventRepository) ListByReference(ctx context.Context, provider, objectReferenceID string) ([]WebhookEventRecord, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, delivery_id, provider, object_reference_id, event_type, provider_event, resource, received_at
		FROM webhook_events
		WHERE provider = $1 AND object_reference_id = $2
		ORDER BY received_at ASC`,
		provider, objectReferenceID,
	)
	if err != nil {
		return nil, fmt.Errorf("list webhook events: %w", err)
	}
	defer rows.Close()

	var records []WebhookEventRecord
	for rows.Next() {
		var rec WebhookEventRecord
		if err := rows.Scan(&rec.ID, &rec.DeliveryID, &rec.Provider, &rec.ObjectReferenceID,
			&rec.EventType, &rec.ProviderEvent, &rec.Resource, &rec.ReceivedAt); err != nil {
			return nil, fmt.Errorf("scan webhook event: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
