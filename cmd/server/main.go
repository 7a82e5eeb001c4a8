package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/qualifab/fieldentry/internal/config"
	"github.com/qualifab/fieldentry/internal/core"
	"github.com/qualifab/fieldentry/internal/logging"
	"github.com/qualifab/fieldentry/internal/web"
	"github.com/qualifab/fieldentry/internal/xlsx"
)

func main() {
	// Load .env if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"max_file_size", cfg.Workbook.MaxFileSize,
		"default_time", cfg.Workbook.DefaultTime,
		"rate_limit_enabled", cfg.Rate.Enabled,
		"audit_enabled", cfg.Database.AuditEnabled(),
	)

	ctx := context.Background()

	// The audit database is optional; without one the service is fully
	// in-memory.
	var audit *core.AuditService
	var pool *pgxpool.Pool
	if cfg.Database.AuditEnabled() {
		poolConfig, err := pgxpool.ParseConfig(cfg.Database.URL)
		if err != nil {
			slog.Error("failed to parse database URL", "error", err)
			os.Exit(1)
		}
		poolConfig.MaxConns = int32(cfg.Database.MaxConns)
		poolConfig.MinConns = int32(cfg.Database.MinConns)
		poolConfig.MaxConnLifetime = cfg.Database.MaxConnLifetime
		poolConfig.MaxConnIdleTime = cfg.Database.MaxConnIdleTime

		pool, err = pgxpool.NewWithConfig(ctx, poolConfig)
		if err != nil {
			slog.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer pool.Close()

		if err := pool.Ping(ctx); err != nil {
			slog.Error("failed to ping database", "error", err)
			os.Exit(1)
		}

		audit = core.NewAuditService(pool)
		if err := audit.EnsureSchema(ctx); err != nil {
			slog.Error("failed to prepare audit schema", "error", err)
			os.Exit(1)
		}
		slog.Info("audit log connected")
	}

	hour, minute, err := cfg.Workbook.DefaultTimeParts()
	if err != nil {
		slog.Error("invalid default time", "error", err)
		os.Exit(1)
	}

	service := core.NewService(xlsx.Codec{}, audit, core.Options{
		DefaultHour:     hour,
		DefaultMinute:   minute,
		FilledPrefix:    cfg.Workbook.FilledPrefix,
		DefaultFileName: cfg.Workbook.DefaultFileName,
	})

	server := web.NewServer(service, cfg)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	slog.Info("server starting", "addr", cfg.Server.Addr())
	if err := server.Start(); err != nil {
		slog.Info("server stopped", "error", err)
	}
}
