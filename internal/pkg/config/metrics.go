package config

import (
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"daily-briefing/internal/observability/metrics"
)

// ConfigMetrics tracks configuration loading for one component (api, worker).
//
// Metrics generated:
//   - {component}_config_load_timestamp
//   - {component}_config_validation_errors_total{field}
//   - {component}_config_fallbacks_total{field}
//   - {component}_config_fallback_active
//
// Creating the same component twice returns collectors bound to the
// already registered series.
type ConfigMetrics struct {
	LoadTimestamp         prometheus.Gauge
	ValidationErrorsTotal *prometheus.CounterVec
	FallbacksTotal        *prometheus.CounterVec
	FallbackActive        prometheus.Gauge

	componentName string
	anyFallback   bool
}

// NewConfigMetrics creates (or reuses) the configuration metrics of componentName.
func NewConfigMetrics(componentName string) *ConfigMetrics {
	return &ConfigMetrics{
		LoadTimestamp: metrics.GetOrCreateGauge(prometheus.GaugeOpts{
			Name: fmt.Sprintf("%s_config_load_timestamp", componentName),
			Help: fmt.Sprintf("Unix timestamp of last %s configuration load", componentName),
		}),
		ValidationErrorsTotal: metrics.GetOrCreateCounterVec(prometheus.CounterOpts{
			Name: fmt.Sprintf("%s_config_validation_errors_total", componentName),
			Help: fmt.Sprintf("Total number of %s configuration validation errors", componentName),
		}, []string{"field"}),
		FallbacksTotal: metrics.GetOrCreateCounterVec(prometheus.CounterOpts{
			Name: fmt.Sprintf("%s_config_fallbacks_total", componentName),
			Help: fmt.Sprintf("Total number of %s configuration fallback operations", componentName),
		}, []string{"field"}),
		FallbackActive: metrics.GetOrCreateGauge(prometheus.GaugeOpts{
			Name: fmt.Sprintf("%s_config_fallback_active", componentName),
			Help: fmt.Sprintf("1 if any %s configuration fallback is active, 0 otherwise", componentName),
		}),
		componentName: componentName,
	}
}

// RecordLoadTimestamp sets the load timestamp to now.
func (m *ConfigMetrics) RecordLoadTimestamp() {
	m.LoadTimestamp.SetToCurrentTime()
}

// RecordValidationError increments the validation error counter for field.
func (m *ConfigMetrics) RecordValidationError(field string) {
	m.ValidationErrorsTotal.WithLabelValues(field).Inc()
}

// RecordFallback increments the fallback counter for field.
func (m *ConfigMetrics) RecordFallback(field string) {
	m.FallbacksTotal.WithLabelValues(field).Inc()
}

// SetFallbackActive sets the fallback gauge.
func (m *ConfigMetrics) SetFallbackActive(active bool) {
	if active {
		m.FallbackActive.Set(1)
	} else {
		m.FallbackActive.Set(0)
	}
}

// Observe logs and records the warnings of one load result and returns its value.
// Call Finish after the last field.
func (m *ConfigMetrics) Observe(logger *slog.Logger, field string, r ConfigLoadResult) interface{} {
	if r.FallbackApplied {
		m.anyFallback = true
		m.RecordValidationError(field)
		m.RecordFallback(field)
		for _, warning := range r.Warnings {
			logger.Warn("Configuration fallback applied",
				slog.String("component", m.componentName),
				slog.String("field", field),
				slog.String("warning", warning))
		}
	}
	return r.Value
}

// Finish publishes the fallback gauge and load timestamp.
func (m *ConfigMetrics) Finish() {
	m.SetFallbackActive(m.anyFallback)
	m.RecordLoadTimestamp()
}
