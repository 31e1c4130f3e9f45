package metrics

import "time"

// RecordGeneration records the outcome and duration of one generation run.
func RecordGeneration(outcome string, duration time.Duration, articles int) {
	BriefingGenerationsTotal.WithLabelValues(outcome).Inc()
	BriefingGenerationDuration.Observe(duration.Seconds())
	if outcome == "success" {
		BriefingArticles.Set(float64(articles))
	}
}

// RecordCacheHit counts a request answered from storage.
func RecordCacheHit() {
	BriefingCacheHitsTotal.Inc()
}

// RecordFeedFetch records one feed fetch.
func RecordFeedFetch(success bool, duration time.Duration) {
	result := "success"
	if !success {
		result = "failure"
	}
	FeedFetchTotal.WithLabelValues(result).Inc()
	FeedFetchDuration.Observe(duration.Seconds())
}

// RecordSummaryOutcome records how the model response was interpreted.
func RecordSummaryOutcome(outcome string) {
	SummaryOutcomesTotal.WithLabelValues(outcome).Inc()
}

// RecordNarration records one TTS provider attempt.
func RecordNarration(provider string, success bool) {
	result := "success"
	if !success {
		result = "failure"
	}
	NarrationTotal.WithLabelValues(provider, result).Inc()
}

// UpdateSourcesTotal sets the number of enabled sources.
func UpdateSourcesTotal(count int) {
	SourcesTotal.Set(float64(count))
}

// RecordNotification records one delivery attempt of a briefing notification.
func RecordNotification(channel, status string, duration time.Duration) {
	NotificationsTotal.WithLabelValues(channel, status).Inc()
	NotificationDuration.WithLabelValues(channel).Observe(duration.Seconds())
}
