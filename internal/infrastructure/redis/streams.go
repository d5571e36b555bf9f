package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/cassiomorais/paybridge/internal/domain/connector"
	"github.com/redis/go-redis/v9"
)

const (
	// WebhookStream carries accepted canonical webhook events from the
	// gateway to the relay worker.
	WebhookStream = "webhooks:accepted"
)

type StreamProducer struct {
	client *redis.Client
}

func NewStreamProducer(client *redis.Client) *StreamProducer {
	return &StreamProducer{client: client}
}

// PublishWebhookEvent appends an accepted canonical event to the webhook
// stream. The event's opaque resource payload travels as-is.
func (p *StreamProducer) PublishWebhookEvent(ctx context.Context, deliveryID string, event connector.WebhookEvent) error {
	payload, err := json.Marshal(struct {
		Provider          string          `json:"provider"`
		ObjectReferenceID string          `json:"object_reference_id"`
		Type              string          `json:"type"`
		ProviderEvent     string          `json:"provider_event"`
		Resource          json.RawMessage `json:"resource"`
	}{
		Provider:          event.Provider,
		ObjectReferenceID: event.ObjectReferenceID,
		Type:              string(event.Type),
		ProviderEvent:     event.ProviderEvent,
		Resource:          event.Resource,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal webhook event: %w", err)
	}

	args := &redis.XAddArgs{
		Stream: WebhookStream,
		Values: map[string]any{
			"delivery_id": deliveryID,
			"provider":    event.Provider,
			"payload":     string(payload),
			"timestamp":   time.Now().Unix(),
		},
	}

	if _, err := p.client.XAdd(ctx, args).Result(); err != nil {
		return fmt.Errorf("failed to publish webhook event: %w", err)
	}
	return nil
}

type StreamConsumer struct {
	client        *redis.Client
	stream        string
	group         string
	consumer      string
	batchSize     int64
	blockDuration time.Duration
}

func NewStreamConsumer(
	client *redis.Client,
	stream string,
	group string,
	consumer string,
	batchSize int64,
	blockDuration time.Duration,
) *StreamConsumer {
	return &StreamConsumer{
		client:        client,
		stream:        stream,
		group:         group,
		consumer:      consumer,
		batchSize:     batchSize,
		blockDuration: blockDuration,
	}
}

func (c *StreamConsumer) CreateGroup(ctx context.Context) error {
	// Create stream if it doesn't exist
	const busyGroupMsg = "BUSYGROUP"
	err := c.client.XGroupCreateMkStream(ctx, c.stream, c.group, "0").Err()
	if err != nil && !strings.Contains(err.Error(), busyGroupMsg) {
		return fmt.Errorf("failed to create consumer group: %w", err)
	}
	return nil
}

func (c *StreamConsumer) Read(ctx context.Context) ([]redis.XStream, error) {
	streams, err := c.client.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    c.group,
		Consumer: c.consumer,
		Streams:  []string{c.stream, ">"},
		Count:    c.batchSize,
		Block:    c.blockDuration,
	}).Result()

	if err != nil {
		if err == redis.Nil {
			// No new messages
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read from stream: %w", err)
	}

	return streams, nil
}

func (c *StreamConsumer) Ack(ctx context.Context, messageID string) error {
	if err := c.client.XAck(ctx, c.stream, c.group, messageID).Err(); err != nil {
		return fmt.Errorf("failed to ack message: %w", err)
	}
	return nil
}
