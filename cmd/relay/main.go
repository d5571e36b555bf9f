package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cassiomorais/paybridge/internal/bootstrap"
	"github.com/cassiomorais/paybridge/internal/domain/connector"
	infraRedis "github.com/cassiomorais/paybridge/internal/infrastructure/redis"
	"github.com/cassiomorais/paybridge/internal/repository/postgres"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// streamEvent is the wire shape of one accepted webhook event on the stream.
type streamEvent struct {
	Provider          string          `json:"provider"`
	ObjectReferenceID string          `json:"object_reference_id"`
	Type              string          `json:"type"`
	ProviderEvent     string          `json:"provider_event"`
	Resource          json.RawMessage `json:"resource"`
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app, err := bootstrap.New(ctx, "paybridge-relay", "paybridge_relay")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to bootstrap: %v\n", err)
		os.Exit(1)
	}
	defer app.Close()

	eventRepo := postgres.NewWebhookEventRepository(app.Pool)

	relayCfg := app.Config.Relay
	consumer := infraRedis.NewStreamConsumer(
		app.Redis,
		infraRedis.WebhookStream,
		relayCfg.ConsumerGroup,
		app.Config.InstanceID,
		relayCfg.BatchSize,
		relayCfg.BlockDuration,
	)
	if err := consumer.CreateGroup(ctx); err != nil {
		app.Logger.Error().Err(err).Msg("Failed to create consumer group")
	}

	app.Logger.Info().
		Str("stream", infraRedis.WebhookStream).
		Str("group", relayCfg.ConsumerGroup).
		Str("consumer", app.Config.InstanceID).
		Msg("Relay started, listening for webhook events...")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return runRelay(gCtx, app.Logger, consumer, eventRepo, app)
	})

	g.Go(func() error {
		select {
		case <-gCtx.Done():
			return gCtx.Err()
		case <-quit:
			app.Logger.Info().Msg("Shutting down relay...")
			cancel()
			return nil
		}
	})

	if err := g.Wait(); err != nil && err != context.Canceled {
		app.Logger.Error().Err(err).Msg("Relay error")
	}
	app.Logger.Info().Msg("Relay exited")
}

func runRelay(
	ctx context.Context,
	logger zerolog.Logger,
	consumer *infraRedis.StreamConsumer,
	eventRepo *postgres.WebhookEventRepository,
	app *bootstrap.App,
) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		streams, err := consumer.Read(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			logger.Error().Err(err).Msg("Failed to read from stream")
			time.Sleep(1 * time.Second)
			continue
		}

		for _, stream := range streams {
			for _, msg := range stream.Messages {
				start := time.Now()
				if err := journalMessage(ctx, eventRepo, msg.Values); err != nil {
					logger.Error().Err(err).Str("message_id", msg.ID).Msg("Failed to journal webhook event")
					app.Metrics.RelayMessagesProcessed.WithLabelValues(infraRedis.WebhookStream, "error").Inc()
					// Leave the message pending; redelivery retries the insert,
					// which is idempotent on delivery_id.
					continue
				}

				app.Metrics.RelayMessagesProcessed.WithLabelValues(infraRedis.WebhookStream, "success").Inc()
				app.Metrics.RelayProcessingDuration.WithLabelValues(infraRedis.WebhookStream).Observe(time.Since(start).Seconds())
				if err := consumer.Ack(ctx, msg.ID); err != nil {
					// The insert is journaled; a failed ack only means the
					// message is redelivered and deduped on delivery_id.
					logger.Warn().Err(err).Str("message_id", msg.ID).Msg("Failed to ack stream message")
				}
			}
		}
	}
}

func journalMessage(ctx context.Context, eventRepo *postgres.WebhookEventRepository, values map[string]any) error {
	deliveryID, _ := values["delivery_id"].(string)
	payload, _ := values["payload"].(string)
	if deliveryID == "" || payload == "" {
		return fmt.Errorf("stream message missing delivery_id or payload")
	}

	var ev streamEvent
	if err := json.Unmarshal([]byte(payload), &ev); err != nil {
		return fmt.Errorf("malformed stream payload: %w", err)
	}

	return eventRepo.Save(ctx, deliveryID, connector.WebhookEvent{
		Provider:          ev.Provider,
		DeliveryID:        deliveryID,
		ObjectReferenceID: ev.ObjectReferenceID,
		Type:              connector.EventType(ev.Type),
		ProviderEvent:     ev.ProviderEvent,
		Resource:          ev.Resource,
	})
}
