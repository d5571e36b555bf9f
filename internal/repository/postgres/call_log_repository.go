package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CallLogEntry is one completed connector call, recorded for diagnosis. It
// stores the canonical outcome, never provider credentials or raw card data.
type CallLogEntry struct {
	ID            uuid.UUID
	CorrelationID string
	Provider      string
	Flow          string
	Outcome       string
	CanonicalCode string
	AmountMinor   int64
	Currency      string
	DurationMS    int64
	CreatedAt     time.Time
}

// CallLogRepository records connector call outcomes.
type CallLogRepository struct {
	pool *pgxpool.Pool
}

func NewCallLogRepository(pool *pgxpool.Pool) *CallLogRepository {
	return &CallLogRepository{pool: pool}
}

func (r *CallLogRepository) Save(ctx context.Context, entry CallLogEntry) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO connector_calls (id, correlation_id, provider, flow, outcome, canonical_code, amount_minor, currency, duration_ms, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		entry.ID, entry.CorrelationID, entry.Provider, entry.Flow, entry.Outcome,
		entry.CanonicalCode, entry.AmountMinor, entry.Currency, entry.DurationMS, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("save call log entry: %w", err)
	}
	return nil
}
