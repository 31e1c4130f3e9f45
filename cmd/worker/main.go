package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"daily-briefing/internal/app"
	"daily-briefing/internal/config"
	workerPkg "daily-briefing/internal/infra/worker"
	"daily-briefing/internal/observability/logging"
	pkgcfg "daily-briefing/internal/pkg/config"
)

func main() {
	logger := initLogger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(logger, pkgcfg.NewConfigMetrics("app"))
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	// Load worker configuration (fail-open strategy)
	workerMetrics := workerPkg.NewWorkerMetrics()
	workerConfig, err := workerPkg.LoadConfigFromEnv(logger, workerMetrics, cfg.Location.String())
	if err != nil {
		logger.Error("failed to load worker configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("worker configuration loaded",
		slog.String("cron_schedule", workerConfig.CronSchedule),
		slog.String("timezone", workerConfig.Timezone),
		slog.Duration("job_timeout", workerConfig.JobTimeout),
		slog.Int("health_port", workerConfig.HealthPort),
		slog.Bool("force", workerConfig.Force))

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
	if !a.Briefings.Configured() {
		// 起動は続ける: キー設定後の再起動を待つ
		logger.Warn("summarizer not configured, scheduled runs will fail until an API key is set")
	}

	healthAddr := fmt.Sprintf(":%d", workerConfig.HealthPort)
	healthServer := workerPkg.NewHealthServer(healthAddr, logger)
	go func() {
		if err := healthServer.Start(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("health server failed", slog.Any("error", err))
		}
	}()

	job := &workerPkg.Job{
		Generator: a.Briefings,
		Config:    *workerConfig,
		Metrics:   workerMetrics,
		Logger:    logger,
	}
	if err := runScheduler(ctx, logger, job, healthServer); err != nil {
		logger.Error("worker failed", slog.Any("error", err))
		os.Exit(1)
	}
}

// initLogger builds the process logger from LOG_LEVEL and LOG_FORMAT.
func initLogger() *slog.Logger {
	logger := logging.NewLogger()
	slog.SetDefault(logger)
	return logger
}

// runScheduler blocks until ctx is canceled, then waits for a running job.
func runScheduler(ctx context.Context, logger *slog.Logger, job *workerPkg.Job, healthServer *workerPkg.HealthServer) error {
	c, err := workerPkg.NewScheduler(job)
	if err != nil {
		return err
	}
	c.Start()

	healthServer.SetReady(true)
	logger.Info("worker started",
		slog.String("schedule", job.Config.CronSchedule),
		slog.String("timezone", job.Config.Timezone))

	if job.Config.RunOnStart {
		go job.Run()
	}

	<-ctx.Done()
	healthServer.SetReady(false)
	logger.Info("worker stopping, waiting for running job")
	<-c.Stop().Done()
	logger.Info("worker stopped")
	return nil
}
