// Package observability groups the logging, metrics and tracing helpers.
//
// Subpackages:
//   - logging: slog setup and request-scoped loggers
//   - metrics: Prometheus collectors for the briefing pipeline
//   - tracing: OpenTelemetry spans and the HTTP tracing middleware
package observability
