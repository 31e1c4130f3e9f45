package worker

import (
	"github.com/prometheus/client_golang/prometheus"

	"daily-briefing/internal/observability/metrics"
	"daily-briefing/internal/pkg/config"
)

// Job run statuses.
const (
	StatusStarted = "started"
	StatusSuccess = "success"
	StatusFailure = "failure"
)

// WorkerMetrics tracks scheduled generations. Collectors are shared across
// instances so tests may create several.
type WorkerMetrics struct {
	*config.ConfigMetrics

	CronJobRunsTotal            *prometheus.CounterVec
	CronJobDurationSeconds      prometheus.Histogram
	CronJobArticles             prometheus.Gauge
	CronJobLastSuccessTimestamp prometheus.Gauge
}

// NewWorkerMetrics creates (or reuses) the worker collectors.
func NewWorkerMetrics() *WorkerMetrics {
	return &WorkerMetrics{
		ConfigMetrics: config.NewConfigMetrics("worker"),

		CronJobRunsTotal: metrics.GetOrCreateCounterVec(prometheus.CounterOpts{
			Name: "worker_cron_job_runs_total",
			Help: "Total number of cron job runs by status (started/success/failure)",
		}, []string{"status"}),

		CronJobDurationSeconds: metrics.GetOrCreateHistogram(prometheus.HistogramOpts{
			Name:    "worker_cron_job_duration_seconds",
			Help:    "Duration of cron job execution in seconds",
			Buckets: []float64{1, 5, 30, 60, 300, 900, 1800},
		}),

		CronJobArticles: metrics.GetOrCreateGauge(prometheus.GaugeOpts{
			Name: "worker_cron_job_articles",
			Help: "Number of articles in the briefing produced by the last successful run",
		}),

		CronJobLastSuccessTimestamp: metrics.GetOrCreateGauge(prometheus.GaugeOpts{
			Name: "worker_cron_job_last_success_timestamp",
			Help: "Unix timestamp of the last successful cron job run",
		}),
	}
}

func (m *WorkerMetrics) RecordJobRun(status string) {
	m.CronJobRunsTotal.WithLabelValues(status).Inc()
}

func (m *WorkerMetrics) RecordJobDuration(seconds float64) {
	m.CronJobDurationSeconds.Observe(seconds)
}

// RecordSuccess stores the article count and the success timestamp.
func (m *WorkerMetrics) RecordSuccess(articles int) {
	m.CronJobArticles.Set(float64(articles))
	m.CronJobLastSuccessTimestamp.SetToCurrentTime()
}
