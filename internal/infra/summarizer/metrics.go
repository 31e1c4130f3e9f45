package summarizer

import (
	"errors"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// GenerationMetricsRecorder records text generation metrics per provider.
// Tests inject their own recorder instead of Prometheus.
type GenerationMetricsRecorder interface {
	// RecordDuration records the time taken by one successful API call.
	RecordDuration(provider string, duration time.Duration)

	// RecordResponseLength records the length of a reply in characters (runes).
	RecordResponseLength(provider string, length int)

	// RecordFailure counts a failed API call.
	RecordFailure(provider string)
}

// PrometheusGenerationMetrics implements GenerationMetricsRecorder using Prometheus metrics.
type PrometheusGenerationMetrics struct {
	durationHistogram *prometheus.HistogramVec
	lengthHistogram   *prometheus.HistogramVec
	failureCounter    *prometheus.CounterVec
}

var (
	prometheusMetricsInstance *PrometheusGenerationMetrics
	prometheusMetricsOnce     sync.Once
)

// getOrCreateHistogramVec gets an existing histogram vector or creates a new one if it doesn't exist
func getOrCreateHistogramVec(opts prometheus.HistogramOpts, labels []string) *prometheus.HistogramVec {
	h := prometheus.NewHistogramVec(opts, labels)
	if err := prometheus.Register(h); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			return are.ExistingCollector.(*prometheus.HistogramVec)
		}
		return promauto.NewHistogramVec(opts, labels)
	}
	return h
}

// getOrCreateCounterVec gets an existing counter vector or creates a new one if it doesn't exist
func getOrCreateCounterVec(opts prometheus.CounterOpts, labels []string) *prometheus.CounterVec {
	c := prometheus.NewCounterVec(opts, labels)
	if err := prometheus.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			return are.ExistingCollector.(*prometheus.CounterVec)
		}
		return promauto.NewCounterVec(opts, labels)
	}
	return c
}

// NewPrometheusGenerationMetrics returns the process-wide recorder.
// Uses singleton pattern to avoid duplicate metric registration in tests.
func NewPrometheusGenerationMetrics() *PrometheusGenerationMetrics {
	prometheusMetricsOnce.Do(func() {
		prometheusMetricsInstance = &PrometheusGenerationMetrics{
			durationHistogram: getOrCreateHistogramVec(prometheus.HistogramOpts{
				Name:    "briefing_text_generation_duration_seconds",
				Help:    "Time taken by a text generation API call",
				Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
			}, []string{"provider"}),
			lengthHistogram: getOrCreateHistogramVec(prometheus.HistogramOpts{
				Name:    "briefing_text_generation_response_characters",
				Help:    "Distribution of reply lengths in characters (Unicode runes)",
				Buckets: []float64{100, 500, 1000, 2000, 4000, 8000, 16000},
			}, []string{"provider"}),
			failureCounter: getOrCreateCounterVec(prometheus.CounterOpts{
				Name: "briefing_text_generation_failures_total",
				Help: "Total number of failed text generation API calls",
			}, []string{"provider"}),
		}
	})
	return prometheusMetricsInstance
}

// RecordDuration implements GenerationMetricsRecorder.RecordDuration
func (p *PrometheusGenerationMetrics) RecordDuration(provider string, duration time.Duration) {
	p.durationHistogram.WithLabelValues(provider).Observe(duration.Seconds())
}

// RecordResponseLength implements GenerationMetricsRecorder.RecordResponseLength
func (p *PrometheusGenerationMetrics) RecordResponseLength(provider string, length int) {
	p.lengthHistogram.WithLabelValues(provider).Observe(float64(length))
}

// RecordFailure implements GenerationMetricsRecorder.RecordFailure
func (p *PrometheusGenerationMetrics) RecordFailure(provider string) {
	p.failureCounter.WithLabelValues(provider).Inc()
}
