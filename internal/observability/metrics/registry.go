package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Pipeline metrics. Labels stay low-cardinality: no source names or dates.
var (
	BriefingGenerationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "briefing_generations_total",
			Help: "Total number of briefing generation runs by outcome",
		},
		[]string{"outcome"}, // success, persist_failed, not_configured, canceled
	)

	BriefingGenerationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "briefing_generation_duration_seconds",
			Help:    "Time taken to generate a briefing end to end",
			Buckets: []float64{1, 5, 10, 30, 60, 120, 300, 600},
		},
	)

	BriefingCacheHitsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "briefing_cache_hits_total",
			Help: "Total number of requests served from a stored briefing",
		},
	)

	BriefingArticles = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "briefing_articles",
			Help: "Number of articles in the latest generated briefing",
		},
	)

	FeedFetchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "briefing_feed_fetch_total",
			Help: "Total number of feed fetches by result",
		},
		[]string{"result"}, // success, failure
	)

	FeedFetchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "briefing_feed_fetch_duration_seconds",
			Help:    "Time taken to fetch and parse one feed",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 8),
		},
	)

	SummaryOutcomesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "briefing_summary_outcomes_total",
			Help: "Total number of summarization attempts by outcome",
		},
		[]string{"outcome"}, // json, extracted, plaintext, skipped, empty, error
	)

	NarrationTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "briefing_narration_total",
			Help: "Total number of text-to-speech attempts by provider and result",
		},
		[]string{"provider", "result"},
	)

	NotificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "briefing_notifications_total",
			Help: "Total number of briefing notifications by channel and status",
		},
		[]string{"channel", "status"}, // success, failure, circuit_open
	)

	NotificationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "briefing_notification_duration_seconds",
			Help:    "Notification delivery duration including retries",
			Buckets: []float64{0.1, 0.5, 1, 5, 10, 30},
		},
		[]string{"channel"},
	)

	SourcesTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "briefing_sources_enabled",
			Help: "Number of enabled sources used by the last generation",
		},
	)
)

// GetOrCreateCounterVec registers a CounterVec, or returns the one already registered under the same name.
func GetOrCreateCounterVec(opts prometheus.CounterOpts, labels []string) *prometheus.CounterVec {
	c := prometheus.NewCounterVec(opts, labels)
	if err := prometheus.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing
			}
		}
	}
	return c
}

// GetOrCreateGauge registers a Gauge, or returns the one already registered under the same name.
func GetOrCreateGauge(opts prometheus.GaugeOpts) prometheus.Gauge {
	g := prometheus.NewGauge(opts)
	if err := prometheus.Register(g); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(prometheus.Gauge); ok {
				return existing
			}
		}
	}
	return g
}

// GetOrCreateHistogram registers a Histogram, or returns the one already registered under the same name.
func GetOrCreateHistogram(opts prometheus.HistogramOpts) prometheus.Histogram {
	h := prometheus.NewHistogram(opts)
	if err := prometheus.Register(h); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(prometheus.Histogram); ok {
				return existing
			}
		}
	}
	return h
}
