// Package tracing provides OpenTelemetry spans for HTTP requests and briefing generation.
//
// The HTTP middleware starts a server span per request and returns the trace ID
// in X-Trace-Id. Generation stages (aggregate, summarize, narrate, persist) use
// StartSpan and EndSpan.
//
//	ctx, span := tracing.StartSpan(ctx, "briefing.summarize", attribute.Int("articles", n))
//	defer func() { tracing.EndSpan(span, err) }()
//
// No exporter is installed by default; the global otel provider decides where spans go.
package tracing
