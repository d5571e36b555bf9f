package controller

import (
	"time"

	"github.com/cassiomorais/paybridge/internal/engine"
	"github.com/cassiomorais/paybridge/internal/infrastructure/config"
	"github.com/cassiomorais/paybridge/internal/infrastructure/observability"
	paybridgeRedis "github.com/cassiomorais/paybridge/internal/infrastructure/redis"
	customMW "github.com/cassiomorais/paybridge/internal/middleware"
	"github.com/cassiomorais/paybridge/internal/repository/postgres"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

type RouterDeps struct {
	Pool        *pgxpool.Pool
	RedisClient *redis.Client
	Engine      *engine.Engine
	Registry    *engine.Registry
	CallLog     *postgres.CallLogRepository
	Dedup       *paybridgeRedis.DeliveryDedup
	Producer    *paybridgeRedis.StreamProducer
	Events      WebhookEventLister
	Metrics     *observability.Metrics
	CORSConfig  config.CORSConfig
}

func NewRouter(deps RouterDeps) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(customMW.Tracing())
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(60 * time.Second))
	r.Use(customMW.SecurityHeaders())
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.CORSConfig.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: deps.CORSConfig.AllowCredentials,
		MaxAge:           300,
	}))
	r.Use(customMW.Metrics(deps.Metrics))

	healthH := NewHealthController(deps.Pool, deps.RedisClient)
	connectorH := NewConnectorController(deps.Engine, deps.Registry, deps.CallLog)
	webhookH := NewWebhookController(deps.Engine, deps.Dedup, deps.Producer, deps.Events)

	r.Get("/health", healthH.Health)
	r.Get("/health/live", healthH.Liveness)
	r.Get("/health/ready", healthH.Readiness)

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1/providers/{provider}", func(r chi.Router) {
		// Payments
		r.Post("/payments", connectorH.Authorize)
		r.Get("/payments/{id}", connectorH.PaymentSync)
		r.Post("/payments/{id}/capture", connectorH.Capture)
		r.Post("/payments/{id}/void", connectorH.Void)

		// Refunds
		r.Post("/payments/{id}/refunds", connectorH.Refund)
		r.Get("/payments/{id}/refunds/{refund_id}", connectorH.RefundSync)

		// Checkout surfaces
		r.Post("/orders", connectorH.CreateOrder)
		r.Post("/sessions", connectorH.CreateSession)
		r.Post("/mandates", connectorH.SetupMandate)

		// Disputes
		r.Post("/disputes/{id}/defend", connectorH.DefendDispute)
		r.Post("/disputes/{id}/evidence", connectorH.SubmitEvidence)

		// Journaled webhook deliveries for a provider resource
		r.Get("/webhooks/{reference}", webhookH.History)
	})

	// Webhook ingress sits outside /api/v1: providers call it directly and
	// authenticate with signatures, not API auth.
	r.Post("/webhooks/{provider}", webhookH.Receive)

	return r
}
