package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"daily-briefing/internal/handler/http/requestid"
	"daily-briefing/internal/observability/logging"
)

func bufferLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewJSONHandler(&buf, nil)), &buf
}

/* ───────── Logging ───────── */

func TestLogging(t *testing.T) {
	logger, buf := bufferLogger()
	var ctxLogger *slog.Logger

	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctxLogger = logging.FromContext(r.Context())
		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte("hello"))
	}), requestid.Middleware, Logging(logger))

	req := httptest.NewRequest(http.MethodGet, "/api/news?force=true", nil)
	req.Header.Set(requestid.RequestIDHeader, "req-1")
	h.ServeHTTP(httptest.NewRecorder(), req)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "request completed", entry["msg"])
	assert.Equal(t, "req-1", entry["request_id"])
	assert.Equal(t, "/api/news", entry["path"])
	assert.Equal(t, "force=true", entry["query"])
	assert.EqualValues(t, http.StatusAccepted, entry["status"])
	assert.EqualValues(t, 5, entry["bytes"])
	assert.NotSame(t, slog.Default(), ctxLogger, "handler should receive the request logger")
}

func TestLogging_ServerErrorsAtWarn(t *testing.T) {
	logger, buf := bufferLogger()
	h := Logging(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/news/refresh", nil))

	assert.Contains(t, buf.String(), `"level":"WARN"`)
}

/* ───────── Recover ───────── */

func TestRecover(t *testing.T) {
	logger, buf := bufferLogger()
	h := Recover(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	require.NotPanics(t, func() {
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/news", nil))
	})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, rec.Body.String())
	assert.Contains(t, buf.String(), "panic recovered")
	assert.Contains(t, buf.String(), "boom")
}

func TestRecover_RepanicsAbortHandler(t *testing.T) {
	logger, _ := bufferLogger()
	h := Recover(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic(http.ErrAbortHandler)
	}))
	assert.Panics(t, func() {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	})
}

/* ───────── LimitRequestBody ───────── */

func TestLimitRequestBody(t *testing.T) {
	var readErr error
	h := LimitRequestBody(16)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, readErr = io.ReadAll(r.Body)
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/news/sources", strings.NewReader(`{"name":"ok"}`)))
	assert.NoError(t, readErr)

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/news/sources", strings.NewReader(strings.Repeat("x", 64))))
	var maxErr *http.MaxBytesError
	assert.ErrorAs(t, readErr, &maxErr)
}

/* ───────── ForceLimiter ───────── */

func forceReq(remote string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/news/refresh", nil)
	req.RemoteAddr = remote
	return req
}

func TestForceLimiter_Burst(t *testing.T) {
	l := NewForceLimiter(2)
	now := time.Date(2026, 3, 1, 6, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	assert.True(t, l.Allow(forceReq("10.0.0.1:1234")))
	assert.True(t, l.Allow(forceReq("10.0.0.1:1235")))
	assert.False(t, l.Allow(forceReq("10.0.0.1:1236")), "third request within burst window")

	// 別クライアントは独立
	assert.True(t, l.Allow(forceReq("10.0.0.2:1234")))

	now = now.Add(30 * time.Second)
	assert.True(t, l.Allow(forceReq("10.0.0.1:1234")), "one token refilled after 30s")
}

func TestForceLimiter_Disabled(t *testing.T) {
	l := NewForceLimiter(0)
	for i := 0; i < 100; i++ {
		require.True(t, l.Allow(forceReq("10.0.0.1:1")))
	}
	var nilLimiter *ForceLimiter
	assert.True(t, nilLimiter.Allow(forceReq("10.0.0.1:1")))
}

func TestForceLimiter_SweepsIdleClients(t *testing.T) {
	l := NewForceLimiter(5)
	now := time.Date(2026, 3, 1, 6, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	l.Allow(forceReq("10.0.0.1:1"))
	l.Allow(forceReq("10.0.0.2:1"))
	require.Equal(t, 2, l.Clients())

	now = now.Add(time.Hour)
	l.Allow(forceReq("10.0.0.3:1"))
	assert.Equal(t, 1, l.Clients())
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name   string
		remote string
		header map[string]string
		want   string
	}{
		{"remote addr", "192.168.1.5:5555", nil, "192.168.1.5"},
		{"forwarded first hop", "10.0.0.1:1", map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.1"}, "203.0.113.7"},
		{"invalid forwarded falls through", "10.0.0.1:1", map[string]string{"X-Forwarded-For": "garbage", "X-Real-IP": "198.51.100.2"}, "198.51.100.2"},
		{"no port", "unix-socket", nil, "unix-socket"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			for k, v := range tt.header {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, clientIP(req))
		})
	}
}
