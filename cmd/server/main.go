package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/macormexico/sistema-pnc/internal/apps"
	"github.com/macormexico/sistema-pnc/internal/apps/dae"
	"github.com/macormexico/sistema-pnc/internal/apps/pnc"
	"github.com/macormexico/sistema-pnc/internal/archive"
	"github.com/macormexico/sistema-pnc/internal/config"
	"github.com/macormexico/sistema-pnc/internal/database"
	"github.com/macormexico/sistema-pnc/internal/logging"
	"github.com/macormexico/sistema-pnc/internal/server"
	"github.com/macormexico/sistema-pnc/internal/services"
)

func main() {
	// Structured logging (JSON to stdout)
	logging.Setup()

	cfg := config.Load()

	if cfg.JWTSecret == "" {
		slog.Error("JWT_SECRET environment variable is required")
		os.Exit(1)
	}
	if !cfg.UsesSQLite() && cfg.DBPassword == "" {
		slog.Error("DB_PASSWORD environment variable is required")
		os.Exit(1)
	}

	// Database
	db, err := database.Connect(cfg)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}

	// Migrate shared models
	if err := database.MigrateShared(db); err != nil {
		slog.Error("shared migration failed", "error", err)
		os.Exit(1)
	}

	// Database log handler (ERROR+ async batch)
	dbLogHandler := logging.NewDBHandler(db, 5*time.Second)
	slog.SetDefault(slog.New(logging.NewMultiHandler(
		slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		dbLogHandler,
	)))

	// Log cleanup
	cleanupDone := make(chan struct{})
	logging.StartCleanup(db, cfg.LogRetention, cleanupDone)

	// Services
	authService := services.NewAuthService(db, cfg)
	if err := authService.EnsureAdmin(); err != nil {
		slog.Error("admin seed failed", "error", err)
		os.Exit(1)
	}
	if n, err := authService.PurgeExpiredSessions(); err != nil {
		slog.Warn("expired session purge failed", "error", err)
	} else if n > 0 {
		slog.Info("expired sessions purged", "count", n)
	}

	// PDF archive (optional)
	archiver, err := archive.New(cfg)
	if err != nil {
		slog.Error("archive setup failed", "error", err)
		os.Exit(1)
	}
	if m, ok := archiver.(*archive.Minio); ok {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := m.EnsureBucket(ctx); err != nil {
			slog.Warn("archive bucket unavailable, PDFs will not be archived", "bucket", cfg.ArchiveBucket, "error", err)
			archiver = archive.Discard{}
		} else {
			slog.Info("pdf archive enabled", "bucket", cfg.ArchiveBucket)
		}
		cancel()
	}

	// Register plugins
	plugins := []apps.Plugin{
		pnc.New(archiver),
		dae.New(authService),
	}

	// Migrate plugin models
	for _, p := range plugins {
		if models := p.Models(); len(models) > 0 {
			if err := database.MigrateModels(db, models); err != nil {
				slog.Error("plugin migration failed", "plugin", p.ID(), "error", err)
				os.Exit(1)
			}
			slog.Info("plugin migrated", "plugin", p.ID(), "models", len(models))
		}
	}

	// Sentry error tracking
	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              dsn,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      os.Getenv("APP_ENV"),
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	app := server.New(cfg, db, authService, plugins)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port, "db", cfg.DBDriver)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	close(cleanupDone)
	dbLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	if err := app.Shutdown(); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	// Close database connections
	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			slog.Error("database close error", "error", err)
		}
	}

	slog.Info("server stopped")
}
