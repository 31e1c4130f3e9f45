// Package metrics provides the Prometheus metrics of the briefing pipeline.
//
// Metrics are registered with the default registry and exposed via /metrics:
//   - generation runs, duration and cache hits
//   - feed fetch results
//   - summarization and narration outcomes
//
// HTTP request metrics live in the http handler package.
package metrics
