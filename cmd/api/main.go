package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"daily-briefing/internal/app"
	"daily-briefing/internal/config"
	hhttp "daily-briefing/internal/handler/http"
	haudio "daily-briefing/internal/handler/http/audio"
	hnews "daily-briefing/internal/handler/http/news"
	"daily-briefing/internal/handler/http/requestid"
	hsrc "daily-briefing/internal/handler/http/source"
	"daily-briefing/internal/observability/logging"
	"daily-briefing/internal/observability/tracing"
	pkgcfg "daily-briefing/internal/pkg/config"
)

func main() {
	logger := initLogger()

	cfg, err := config.Load(logger, pkgcfg.NewConfigMetrics("api"))
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	a, err := app.New(cfg, logger)
	if err != nil {
		logger.Error("failed to initialize application", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := a.Close(); err != nil {
			logger.Error("failed to close store", slog.Any("error", err))
		}
	}()

	version := getVersion()
	handler := setupServer(logger, a, version)

	runServer(logger, cfg.HTTPAddr, handler, version)
}

// initLogger builds the process logger from LOG_LEVEL and LOG_FORMAT.
func initLogger() *slog.Logger {
	logger := logging.NewLogger()
	slog.SetDefault(logger)
	return logger
}

// getVersion returns the application version from environment or default.
func getVersion() string {
	version := os.Getenv("VERSION")
	if version == "" {
		version = "dev"
	}
	return version
}

// setupServer registers routes and wraps them in the middleware chain.
func setupServer(logger *slog.Logger, a *app.App, version string) http.Handler {
	limiter := hhttp.NewForceLimiter(a.Config.ForceRateLimit)
	if a.Config.ForceRateLimit > 0 {
		logger.Info("forced regeneration rate limit enabled",
			slog.Int("per_minute", a.Config.ForceRateLimit))
	} else {
		logger.Warn("forced regeneration rate limit is DISABLED")
	}

	mux := http.NewServeMux()

	// ヘルスチェック（設定の有無に関係なく応答）
	mux.Handle("GET /health", &hhttp.HealthHandler{
		Version: version,
		Checks: []hhttp.Check{
			{Name: "storage", Critical: true, Probe: func(ctx context.Context) error {
				_, err := a.Sources.List(ctx)
				return err
			}},
			{Name: "summarizer", Probe: func(context.Context) error {
				if !a.Briefings.Configured() {
					return errors.New("no summarizer API key configured")
				}
				return nil
			}},
		},
	})
	mux.Handle("GET /ready", &hhttp.ReadyHandler{Probe: func(ctx context.Context) error {
		_, err := a.Sources.List(ctx)
		return err
	}})
	mux.Handle("GET /live", &hhttp.LiveHandler{})
	mux.Handle("GET /metrics", hhttp.MetricsHandler())

	hnews.Register(mux, hnews.Handler{Svc: a.Briefings, Limiter: limiter})
	hsrc.Register(mux, a.Sources)
	haudio.Register(mux, haudio.Handler{Files: a.Audio})

	// Request ID → Tracing → Logging → Recovery → Metrics → Body Limit
	return hhttp.Chain(mux,
		requestid.Middleware,
		tracing.Middleware,
		hhttp.Logging(logger),
		hhttp.Recover(logger),
		hhttp.MetricsMiddleware,
		hhttp.LimitRequestBody(1<<20),
	)
}

// runServer starts the HTTP server and handles graceful shutdown.
// WriteTimeout stays unset: a cold generation can take minutes.
func runServer(logger *slog.Logger, addr string, handler http.Handler, version string) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		logger.Info("server starting",
			slog.String("addr", addr),
			slog.String("version", version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
	}
	cancel()
	logger.Info("server stopped")
}
