package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"go.uber.org/zap"

	"github.com/leaguehub/server/internal/app"
	"github.com/leaguehub/server/internal/shared/config"
	"github.com/leaguehub/server/internal/shared/logger"
	"github.com/leaguehub/server/internal/shared/tracing"
	"github.com/leaguehub/server/internal/utils/validation"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		zap.L().Fatal("Failed to load config", zap.Error(err))
	}

	log := logger.New(logger.FromConfig(&cfg.Log))
	defer func() { _ = log.Sync() }()

	shutdownTracing, err := tracing.Setup(context.Background(), &cfg.Tracing)
	if err != nil {
		log.Fatal("Failed to set up tracing", zap.Error(err))
	}

	if cfg.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.Sentry.DSN,
			Environment:      cfg.Sentry.Environment,
			SampleRate:       cfg.Sentry.SampleRate,
			AttachStacktrace: true,
		}); err != nil {
			log.Warn("Sentry init failed", zap.Error(err))
		}
		defer sentry.Flush(2 * time.Second)
	}

	if err := validation.RegisterGin(); err != nil {
		log.Fatal("Failed to register validators", zap.Error(err))
	}

	application, err := app.New(cfg, log)
	if err != nil {
		log.Fatal("Failed to initialize application", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := application.Start(ctx); err != nil {
		log.Fatal("Failed to start background jobs", zap.Error(err))
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      application.Router(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("Starting server", zap.String("address", cfg.Server.Address))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Server failed", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn("Server forced to shutdown", zap.Error(err))
	}

	// Stop application components
	application.Stop()

	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Warn("Tracing shutdown failed", zap.Error(err))
	}

	log.Info("Server exited")
}
