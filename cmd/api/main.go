package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"picking_portal_backend/internal/archive"
	"picking_portal_backend/internal/events"
	apphttp "picking_portal_backend/internal/http"
	"picking_portal_backend/internal/http/router"
	"picking_portal_backend/internal/notification"
	"picking_portal_backend/internal/picking"
	"picking_portal_backend/platform/config"
	"picking_portal_backend/platform/db"
	"picking_portal_backend/platform/logger"
	"picking_portal_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
		return db.RunMigrations(ctx, cfg, "migrations")
	}); err != nil {
		log.Error("failed to run database migrations", "error", err)
		panic("failed to run database migrations: " + err.Error())
	}
	log.Info("database migrations complete")

	var pool *pgxpool.Pool
	if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
		p, err := db.NewPool(ctx, cfg)
		if err != nil {
			return err
		}
		pool = p
		return nil
	}); err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()
	log.Info("database connection established")

	// Event bus for decoupled communication between modules
	eventBus := events.NewInMemoryBus(log)

	// Shared validator instance for dependency injection
	val := validator.New()

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	pickingModule := picking.NewModule(pool, cfg, eventBus, val, log)

	// Source file archival is optional: without MinIO the import endpoint
	// still works, it just keeps no copy of the uploaded workbook.
	if cfg.IsMinIOEnabled() {
		archiver, err := archive.NewMinIOArchiver(cfg)
		if err != nil {
			log.Error("failed to initialize source file archiver", "error", err)
			panic("failed to initialize source file archiver: " + err.Error())
		}
		if err := withRetry(ctx, log, "ensure source file bucket", 5, 2*time.Second, func() error {
			return archiver.EnsureBucketExists(ctx)
		}); err != nil {
			log.Error("failed to ensure source file bucket exists", "error", err)
			panic("failed to ensure source file bucket exists: " + err.Error())
		}
		pickingModule.SetArchiver(archiver)
		log.Info("source file archiver initialized", "bucket", cfg.MinIOBucketFiles)
	} else {
		log.Warn("MINIO_ENDPOINT not configured; source file archival disabled")
	}

	// Notification module subscribes to domain events (not HTTP-facing)
	notificationService := notification.New(notification.NewLogSender(log), log)
	notificationService.Subscribe(eventBus)

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:   cfg,
		Logger:   log,
		Health:   db.NewPoolAdapter(pool),
		EventBus: eventBus,
		Modules: []apphttp.Module{
			pickingModule,
		},
	}

	engine := router.New(app)

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- engine.Run(cfg.HTTPAddr)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = shutdownCtx
	case err := <-srvErr:
		if err != nil {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return fmt.Errorf("%s: %w", name, lastErr)
}
