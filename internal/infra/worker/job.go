package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"daily-briefing/internal/domain/entity"
	"daily-briefing/internal/handler/http/respond"
	"daily-briefing/internal/usecase/briefing"
)

// Generator is satisfied by *briefing.Service.
type Generator interface {
	Generate(ctx context.Context, force bool) (*entity.DailyBriefing, error)
}

// Job runs one scheduled generation.
type Job struct {
	Generator Generator
	Config    WorkerConfig
	Metrics   *WorkerMetrics
	Logger    *slog.Logger

	// mu keeps overlapping cron ticks from queuing up behind a slow run.
	mu sync.Mutex
}

// Run generates today's briefing. A tick that fires while the previous run
// is still going is skipped.
func (j *Job) Run() {
	if !j.mu.TryLock() {
		j.logger().Warn("previous briefing job still running, skipping tick")
		return
	}
	defer j.mu.Unlock()

	_ = j.run(context.Background())
}

func (j *Job) run(ctx context.Context) error {
	logger := j.logger()
	start := time.Now()
	j.Metrics.RecordJobRun(StatusStarted)
	logger.Info("briefing job started", slog.Bool("force", j.Config.Force))

	timeout := j.Config.JobTimeout
	if timeout <= 0 {
		timeout = DefaultConfig().JobTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	b, err := j.Generator.Generate(ctx, j.Config.Force)
	j.Metrics.RecordJobDuration(time.Since(start).Seconds())

	// 保存失敗でもブリーフィング自体は生成済み
	if err != nil && !(b != nil && errors.Is(err, briefing.ErrPersistenceFailed)) {
		logger.Error("briefing job failed", slog.Any("error", respond.SanitizeError(err)))
		j.Metrics.RecordJobRun(StatusFailure)
		return err
	}
	if err != nil {
		logger.Warn("briefing generated but not persisted", slog.Any("error", respond.SanitizeError(err)))
	}

	j.Metrics.RecordJobRun(StatusSuccess)
	j.Metrics.RecordSuccess(len(b.Articles))
	logger.Info("briefing job completed",
		slog.String("date", b.Date),
		slog.Int("articles", len(b.Articles)),
		slog.Int("tracks", len(b.AudioPlaylist)),
		slog.Duration("duration", time.Since(start)))
	return nil
}

func (j *Job) logger() *slog.Logger {
	if j.Logger == nil {
		return slog.Default()
	}
	return j.Logger
}

// NewScheduler registers job on its configured schedule and location.
// The caller starts and stops the returned cron.
func NewScheduler(job *Job) (*cron.Cron, error) {
	loc, err := time.LoadLocation(job.Config.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", job.Config.Timezone, err)
	}
	c := cron.New(cron.WithLocation(loc))
	if _, err := c.AddJob(job.Config.CronSchedule, job); err != nil {
		return nil, fmt.Errorf("add cron job: %w", err)
	}
	return c, nil
}
