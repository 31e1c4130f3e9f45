package tracing

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// recordSpans installs an in-memory exporter for the duration of the test.
func recordSpans(t *testing.T) (*tracetest.InMemoryExporter, *sdktrace.TracerProvider) {
	t.Helper()
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	otel.SetTracerProvider(tp)

	// Re-initialize global tracer with new provider
	tracer = otel.Tracer("daily-briefing")

	t.Cleanup(func() {
		otel.SetTracerProvider(sdktrace.NewTracerProvider())
		tracer = otel.Tracer("daily-briefing")
	})
	return exporter, tp
}

func attrValue(span tracetest.SpanStub, key string) (string, bool) {
	for _, attr := range span.Attributes {
		if string(attr.Key) == key {
			return attr.Value.Emit(), true
		}
	}
	return "", false
}

func TestMiddleware_CreatesSpan(t *testing.T) {
	exporter, tp := recordSpans(t)

	handler := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/test", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	_ = tp.ForceFlush(context.Background())

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	if spans[0].Name != "GET /test" {
		t.Errorf("expected span name 'GET /test', got '%s'", spans[0].Name)
	}
	if v, _ := attrValue(spans[0], "http.status_code"); v != "200" {
		t.Errorf("expected http.status_code=200, got %q", v)
	}
	if v, _ := attrValue(spans[0], "http.method"); v != "GET" {
		t.Errorf("expected http.method=GET, got %q", v)
	}
	if len(rr.Header().Get("X-Trace-Id")) != 32 {
		t.Errorf("expected 32 char X-Trace-Id, got %q", rr.Header().Get("X-Trace-Id"))
	}
}

func TestMiddleware_UsesRoutePattern(t *testing.T) {
	exporter, tp := recordSpans(t)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/audio/{filename}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	handler := Middleware(mux)

	for _, name := range []string{"a.mp3", "b.mp3"} {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/api/audio/"+name, nil))
	}
	_ = tp.ForceFlush(context.Background())

	spans := exporter.GetSpans()
	if len(spans) != 2 {
		t.Fatalf("expected 2 spans, got %d", len(spans))
	}
	for _, s := range spans {
		if s.Name != "GET /api/audio/{filename}" {
			t.Errorf("span name = %q, want route pattern", s.Name)
		}
	}
}

func TestMiddleware_PropagatesTraceContext(t *testing.T) {
	exporter, tp := recordSpans(t)
	otel.SetTextMapPropagator(propagation.TraceContext{})
	defer otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator())

	handler := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set("traceparent", "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01")
	handler.ServeHTTP(httptest.NewRecorder(), req)
	_ = tp.ForceFlush(context.Background())

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	if got := spans[0].SpanContext.TraceID().String(); got != "4bf92f3577b34da6a3ce929d0e0e4736" {
		t.Errorf("expected propagated trace ID, got %s", got)
	}
}

func TestMiddleware_ErrorAttribute(t *testing.T) {
	tests := []struct {
		status    int
		wantError bool
	}{
		{http.StatusInternalServerError, true},
		{http.StatusServiceUnavailable, true},
		{http.StatusNotFound, false},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			exporter, tp := recordSpans(t)
			handler := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/x", nil))
			_ = tp.ForceFlush(context.Background())

			spans := exporter.GetSpans()
			if len(spans) != 1 {
				t.Fatalf("expected 1 span, got %d", len(spans))
			}
			_, found := attrValue(spans[0], "error")
			if found != tt.wantError {
				t.Errorf("error attribute present = %v, want %v", found, tt.wantError)
			}
		})
	}
}

func TestEndSpan_RecordsError(t *testing.T) {
	exporter, tp := recordSpans(t)

	_, ok := StartSpan(context.Background(), "briefing.ok")
	EndSpan(ok, nil)
	_, failed := StartSpan(context.Background(), "briefing.persist")
	EndSpan(failed, errors.New("disk full"))
	_ = tp.ForceFlush(context.Background())

	spans := exporter.GetSpans()
	if len(spans) != 2 {
		t.Fatalf("expected 2 spans, got %d", len(spans))
	}
	if spans[0].Status.Code == codes.Error {
		t.Error("successful span marked as error")
	}
	if spans[1].Status.Code != codes.Error || spans[1].Status.Description != "disk full" {
		t.Errorf("failed span status = %+v", spans[1].Status)
	}
}

func TestResponseWriter_CapturesStatusCode(t *testing.T) {
	rw := newResponseWriter(httptest.NewRecorder())

	if rw.statusCode != http.StatusOK {
		t.Errorf("expected default status code 200, got %d", rw.statusCode)
	}
	rw.WriteHeader(http.StatusCreated)
	if rw.statusCode != http.StatusCreated {
		t.Errorf("expected status code 201, got %d", rw.statusCode)
	}
}
