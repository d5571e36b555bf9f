package bootstrap

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/cassiomorais/paybridge/internal/connectors/worldpay"
	"github.com/cassiomorais/paybridge/internal/domain/connector"
	"github.com/cassiomorais/paybridge/internal/engine"
	"github.com/cassiomorais/paybridge/internal/infrastructure/config"
	"github.com/cassiomorais/paybridge/internal/infrastructure/observability"
	infraRedis "github.com/cassiomorais/paybridge/internal/infrastructure/redis"
	"github.com/cassiomorais/paybridge/internal/repository/postgres"
	"github.com/cassiomorais/paybridge/internal/transport"
	"github.com/cassiomorais/paybridge/pkg/retry"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

type App struct {
	Config  *config.Config
	Logger  zerolog.Logger
	Pool    *pgxpool.Pool
	Redis   *redis.Client
	Metrics *observability.Metrics
}

func New(ctx context.Context, serviceName string, metricsNamespace string) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger := observability.InitLogger(cfg.Observability.LogLevel, os.Stdout)
	logger.Info().Str("service", serviceName).Msg("Starting")

	if cfg.Observability.EnableTracing {
		tp, err := observability.InitTracer(serviceName, cfg.Observability.JaegerEndpoint)
		if err != nil {
			logger.Warn().Err(err).Msg("Failed to initialize tracer, continuing without tracing")
		} else {
			go func() {
				<-ctx.Done()
				observability.Shutdown(context.Background(), tp)
			}()
			logger.Info().Msg("Tracing enabled")
		}
	}

	metrics := observability.NewMetrics(metricsNamespace, nil)
	logger.Info().Msg("Metrics initialized")

	pool, err := postgres.NewPool(ctx, &cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	logger.Info().Msg("Connected to PostgreSQL")

	redisClient, err := infraRedis.NewClient(ctx, &cfg.Redis)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	logger.Info().Msg("Connected to Redis")

	return &App{
		Config:  cfg,
		Logger:  logger,
		Pool:    pool,
		Redis:   redisClient,
		Metrics: metrics,
	}, nil
}

func (a *App) Close() {
	a.Redis.Close()
	a.Pool.Close()
}

// BuildEngine wires the adapter registry and the outbound transport from the
// provider blocks in config. Disabled providers are skipped entirely, so the
// registry answers ErrUnknownProvider for them.
func (a *App) BuildEngine() (*engine.Engine, *engine.Registry, error) {
	registry := engine.NewRegistry()

	for name, pc := range a.Config.Providers {
		if !pc.Enabled {
			a.Logger.Info().Str("provider", name).Msg("Provider disabled, skipping")
			continue
		}

		settings, err := providerSettings(pc, a.Config.Transport.DefaultTimeout)
		if err != nil {
			return nil, nil, fmt.Errorf("provider %s: %w", name, err)
		}

		switch name {
		case worldpay.Name:
			registry.Register(worldpay.NewAdapter(), settings)
		default:
			return nil, nil, fmt.Errorf("provider %s: no adapter available", name)
		}
		a.Logger.Info().Str("provider", name).Msg("Provider registered")
	}

	client := transport.NewClient(a.Logger, retry.Config{
		MaxAttempts:  uint(a.Config.Transport.RetryMaxAttempts),
		InitialDelay: a.Config.Transport.RetryInitialDelay,
		MaxDelay:     a.Config.Transport.RetryMaxDelay,
	})

	eng := engine.New(registry, client, a.Logger, a.Metrics)
	return eng, registry, nil
}

func providerSettings(pc config.ProviderConfig, defaultTimeout time.Duration) (engine.ProviderSettings, error) {
	auth, err := connector.NewSignatureAuth(pc.APIKey, pc.APISecret)
	if err != nil {
		return engine.ProviderSettings{}, err
	}
	// A provider block without an explicit timeout inherits the transport
	// default; an outbound call never runs without a deadline.
	if pc.Timeout <= 0 {
		pc.Timeout = defaultTimeout
	}
	return engine.ProviderSettings{
		Environment: engine.Environment{
			BaseURL:    pc.BaseURL,
			MerchantID: pc.MerchantID,
		},
		Auth:          auth,
		WebhookSecret: pc.WebhookSecret,
		Timeout:       pc.Timeout,
	}, nil
}
