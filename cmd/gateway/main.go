package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/cassiomorais/paybridge/internal/bootstrap"
	"github.com/cassiomorais/paybridge/internal/controller"
	infraRedis "github.com/cassiomorais/paybridge/internal/infrastructure/redis"
	"github.com/cassiomorais/paybridge/internal/repository/postgres"
)

func main() {
	ctx := context.Background()

	app, err := bootstrap.New(ctx, "paybridge-gateway", "paybridge")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to bootstrap: %v\n", err)
		os.Exit(1)
	}
	defer app.Close()

	// --- Engine and registry ---
	eng, registry, err := app.BuildEngine()
	if err != nil {
		app.Logger.Fatal().Err(err).Msg("Failed to build connector engine")
	}

	// --- Repositories and webhook plumbing ---
	callLogRepo := postgres.NewCallLogRepository(app.Pool)
	eventRepo := postgres.NewWebhookEventRepository(app.Pool)
	dedup := infraRedis.NewDeliveryDedup(app.Redis, app.Config.Relay.DedupTTL)
	producer := infraRedis.NewStreamProducer(app.Redis)

	// --- Build router ---
	router := controller.NewRouter(controller.RouterDeps{
		Pool:        app.Pool,
		RedisClient: app.Redis,
		Engine:      eng,
		Registry:    registry,
		CallLog:     callLogRepo,
		Dedup:       dedup,
		Producer:    producer,
		Events:      eventRepo,
		Metrics:     app.Metrics,
		CORSConfig:  app.Config.Server.CORS,
	})

	// --- HTTP server ---
	addr := fmt.Sprintf(":%d", app.Config.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  app.Config.Server.ReadTimeout,
		WriteTimeout: app.Config.Server.WriteTimeout,
	}

	go func() {
		app.Logger.Info().Str("addr", addr).Strs("providers", registry.Providers()).Msg("Starting HTTP server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			app.Logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	app.Logger.Info().Msg("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), app.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		app.Logger.Error().Err(err).Msg("Server forced to shutdown")
	}
	app.Logger.Info().Msg("Server exited")
}
