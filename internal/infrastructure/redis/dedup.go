package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DeliveryDedup suppresses duplicate webhook deliveries. Providers redeliver
// on any non-2xx, so the same event id can arrive many times; the first SET
// NX wins and replays inside the TTL are dropped.
type DeliveryDedup struct {
	client *redis.Client
	ttl    time.Duration
}

func NewDeliveryDedup(client *redis.Client, ttl time.Duration) *DeliveryDedup {
	return &DeliveryDedup{client: client, ttl: ttl}
}

// MarkSeen records the delivery and reports whether it was seen for the
// first time.
func (d *DeliveryDedup) MarkSeen(ctx context.Context, provider, deliveryID string) (bool, error) {
	key := fmt.Sprintf("webhook:seen:%s:%s", provider, deliveryID)
	first, err := d.client.SetNX(ctx, key, time.Now().Unix(), d.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to record delivery: %w", err)
	}
	return first, nil
}
