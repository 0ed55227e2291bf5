package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/JonMunkholm/RegionAnalyzer/internal/config"
	"github.com/JonMunkholm/RegionAnalyzer/internal/core"
	"github.com/JonMunkholm/RegionAnalyzer/internal/logging"
	"github.com/JonMunkholm/RegionAnalyzer/internal/web"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
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
		"addr", cfg.Server.Addr(),
		"max_file_size", cfg.Analysis.MaxFileSize,
		"max_concurrent", cfg.Analysis.MaxConcurrent,
		"rate_limit_enabled", cfg.Rate.Enabled,
		"trusted_proxies", len(cfg.Security.TrustedProxies),
	)
	slog.Debug("effective configuration", "config", cfg.String())

	service := core.NewService(cfg)
	server := web.NewServer(service, cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(server.Start)

	// Graceful shutdown on signal, or when Start fails.
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if status := service.LimiterStatus(); status.Active > 0 {
			slog.Info("waiting for analyses to complete", "active", status.Active)
		}

		// Shutdown stops accepting connections and waits for in-flight requests.
		err := server.Shutdown(shutdownCtx)
		if werr := service.WaitForAnalyses(shutdownCtx); werr != nil {
			slog.Warn("analyses did not complete in time", "error", werr)
		}
		return err
	})

	if err := g.Wait(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
