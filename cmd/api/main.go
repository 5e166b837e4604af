package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"coilapi/internal/config"
	"coilapi/internal/database"
	"coilapi/internal/database/migration"
	handlers "coilapi/internal/http/handler"
	"coilapi/internal/http/middleware"
	"coilapi/internal/logging"
	"coilapi/internal/otel"
	"coilapi/internal/repository/postgres"
	"coilapi/internal/service"
	"coilapi/internal/storage"
)

// @title Coil API
// @version 1.0
// @description Coil inventory records and statistics.
// @BasePath /
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()
	loc := cfg.Location()
	logging.Setup(cfg.LogLevel, loc)

	if err := run(cfg, loc); err != nil {
		slog.Error("server_failed", "error_message", err.Error())
		os.Exit(1)
	}
}

func run(cfg *config.AppConfig, loc *time.Location) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx)
	if err != nil {
		return err
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracing(sctx)
	}()

	sessions := database.NewSessionManager()
	if err := sessions.Init(cfg.Database); err != nil {
		return err
	}
	defer sessions.Close()

	if cfg.Database.AutoMigrate {
		err := sessions.Connection(ctx, func(tx database.DBTX) error {
			return migration.EnsureMigrated(ctx, tx, cfg.Database.Host)
		})
		if err != nil {
			return err
		}
	}

	// Object storage is optional; without it report export answers 503.
	var store storage.Storage
	if cfg.MinIO.Enabled() {
		store, err = storage.NewMinIO(ctx, cfg.MinIO)
		if err != nil {
			return err
		}
	} else {
		slog.Info("report_export_disabled", "detail", "MINIO_ENDPOINT is not set")
	}

	coilRepo := postgres.NewCoilPostgres(loc)
	coilSvc := service.NewCoilService(sessions, coilRepo, store, cfg.Report.URLExpiry)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	promMiddleware, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		return err
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
	})

	app.Use(otelfiber.Middleware())
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger(loc))
	app.Use(promMiddleware.Handler())

	handlers.RegisterRoutes(app, sessions, coilSvc, reg)

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server_starting", "addr", ":"+cfg.Port)
		errCh <- app.Listen(":" + cfg.Port)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("server_stopping")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
