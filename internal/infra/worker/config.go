// Package worker pre-generates the daily briefing on a cron schedule and
// exposes liveness, readiness and metrics for the scheduler process.
package worker

import (
	"fmt"
	"log/slog"
	"time"

	"daily-briefing/internal/pkg/config"
)

// WorkerConfig holds the scheduler settings.
type WorkerConfig struct {
	// CronSchedule is a standard 5-field cron expression.
	CronSchedule string

	// Timezone is the IANA zone the schedule is evaluated in.
	Timezone string

	// JobTimeout bounds one scheduled run, including waiting for an
	// in-flight generation started by the API.
	JobTimeout time.Duration

	HealthPort int

	// RunOnStart triggers one run right after the scheduler starts.
	RunOnStart bool

	// Force regenerates even when today's briefing is already stored.
	Force bool
}

// DefaultConfig pre-generates at 05:30 UTC, before the morning readers arrive.
func DefaultConfig() WorkerConfig {
	return WorkerConfig{
		CronSchedule: "30 5 * * *",
		Timezone:     "UTC",
		JobTimeout:   15 * time.Minute,
		HealthPort:   9091,
	}
}

// Validate checks every field and reports all failures at once.
func (c *WorkerConfig) Validate() error {
	var errs []error

	if err := config.ValidateCronSchedule(c.CronSchedule); err != nil {
		errs = append(errs, fmt.Errorf("cron schedule: %w", err))
	}
	if err := config.ValidateTimezone(c.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("timezone: %w", err))
	}
	if err := config.ValidateDuration(c.JobTimeout, time.Minute, 2*time.Hour); err != nil {
		errs = append(errs, fmt.Errorf("job timeout: %w", err))
	}
	if err := config.ValidateIntRange(c.HealthPort, 1024, 65535); err != nil {
		errs = append(errs, fmt.Errorf("health port: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation failed: %v", errs)
	}
	return nil
}

// LoadConfigFromEnv reads the worker settings. Invalid values fall back to
// defaults (fail-open) and are counted in metrics. defaultTimezone is used
// when WORKER_TIMEZONE is unset, normally the briefing timezone.
func LoadConfigFromEnv(logger *slog.Logger, metrics *WorkerMetrics, defaultTimezone string) (*WorkerConfig, error) {
	cfg := DefaultConfig()
	if defaultTimezone != "" && config.ValidateTimezone(defaultTimezone) == nil {
		cfg.Timezone = defaultTimezone
	}
	m := metrics.ConfigMetrics

	cfg.CronSchedule = m.Observe(logger, "cron_schedule",
		config.LoadEnvWithFallback("CRON_SCHEDULE", cfg.CronSchedule, config.ValidateCronSchedule)).(string)
	cfg.Timezone = m.Observe(logger, "timezone",
		config.LoadEnvWithFallback("WORKER_TIMEZONE", cfg.Timezone, config.ValidateTimezone)).(string)
	cfg.JobTimeout = m.Observe(logger, "job_timeout",
		config.LoadEnvDuration("WORKER_JOB_TIMEOUT", cfg.JobTimeout, func(d time.Duration) error {
			return config.ValidateDuration(d, time.Minute, 2*time.Hour)
		})).(time.Duration)
	cfg.HealthPort = m.Observe(logger, "health_port",
		config.LoadEnvInt("WORKER_HEALTH_PORT", cfg.HealthPort, func(v int) error {
			return config.ValidateIntRange(v, 1024, 65535)
		})).(int)
	cfg.RunOnStart = m.Observe(logger, "run_on_start",
		config.LoadEnvBool("WORKER_RUN_ON_START", cfg.RunOnStart)).(bool)
	cfg.Force = m.Observe(logger, "force",
		config.LoadEnvBool("WORKER_FORCE", cfg.Force)).(bool)

	m.Finish()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
