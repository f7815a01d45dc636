package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bpcalc/bpcalc/server/internal/api"
	"github.com/bpcalc/bpcalc/server/internal/auth"
	"github.com/bpcalc/bpcalc/server/internal/config"
	"github.com/bpcalc/bpcalc/server/internal/telemetry"
	"github.com/bpcalc/bpcalc/server/internal/ws"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file; empty uses defaults and BPCALC_* env vars")
	flag.Parse()

	var level slog.LevelVar
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: &level}))
	slog.SetDefault(logger)

	slog.Info("bpcalc-server starting", "config", *configPath)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}
	level.Set(cfg.Log.SlogLevel())

	slog.Info("config loaded",
		"http_port", cfg.Server.HTTPPort,
		"stream_interval", cfg.Server.Stream.Interval,
		"telemetry_enabled", cfg.Telemetry.Enabled,
		"webhooks", len(cfg.Telemetry.Webhooks),
		"log_level", cfg.Log.Level,
		"auth_mode", cfg.Server.Auth.Mode,
	)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	tracker := telemetry.New(cfg.Telemetry)

	// Reload log level and telemetry settings when the file changes.
	if *configPath != "" {
		go func() {
			if err := config.Watch(ctx, *configPath, func(updated *config.Config) {
				level.Set(updated.Log.SlogLevel())
				tracker.Configure(updated.Telemetry)
			}); err != nil {
				slog.Error("config watcher stopped", "err", err)
			}
		}()
	}

	hub := ws.New(tracker, cfg.Server.Stream.Interval)
	go hub.Run(ctx)

	a := cfg.Server.Auth
	if a.Mode == "apikey" && a.Key() == "" {
		slog.Warn("auth mode is apikey but key env is empty; operator endpoints are open", "key_env", a.KeyEnv)
	}
	guard := auth.APIKey(a.Mode, a.EffectiveHeader(), a.Key())

	mux := http.NewServeMux()
	mux.Handle("/api/", api.New(tracker))
	mux.Handle("/metrics", guard(tracker.MetricsHandler()))
	mux.Handle("/ws/stream", guard(hub))

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.HTTPPort),
		Handler:      mux,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	go func() {
		slog.Info("HTTP server listening", "port", cfg.Server.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server stopped", "err", err)
			cancel()
		}
	}()

	<-ctx.Done()
	slog.Info("bpcalc-server shutting down")

	shutdownCtx, done := context.WithTimeout(context.Background(), shutdownTimeout)
	defer done()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP shutdown", "err", err)
	}
	tracker.Wait()
}
