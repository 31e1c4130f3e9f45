// Package http provides the middleware, metrics and health endpoints shared by the
// briefing API. Route handlers live in the news, audio and source subpackages.
package http

import (
	"context"
	"net/http"
	"time"

	"daily-briefing/internal/handler/http/respond"
)

// HealthResponse represents the JSON response for health check endpoints.
type HealthResponse struct {
	Status    string                 `json:"status"`    // "healthy", "degraded" or "unhealthy"
	Timestamp string                 `json:"timestamp"` // RFC 3339
	Checks    map[string]CheckStatus `json:"checks"`
	Version   string                 `json:"version"`
}

// CheckStatus represents the status of a single health check.
type CheckStatus struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// Check is one named probe. A failing non-critical check degrades the status
// without turning the response into a 503.
type Check struct {
	Name     string
	Critical bool
	Probe    func(ctx context.Context) error
}

// HealthHandler runs every check and reports the aggregate.
type HealthHandler struct {
	Checks  []Check
	Version string
	Timeout time.Duration
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	timeout := h.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeout)
	defer cancel()

	checks := make(map[string]CheckStatus, len(h.Checks))
	status := "healthy"
	for _, c := range h.Checks {
		if err := c.Probe(ctx); err != nil {
			checks[c.Name] = CheckStatus{Status: "unhealthy", Message: respond.SanitizeError(err)}
			switch {
			case c.Critical:
				status = "unhealthy"
			case status == "healthy":
				status = "degraded"
			}
			continue
		}
		checks[c.Name] = CheckStatus{Status: "healthy"}
	}

	code := http.StatusOK
	if status == "unhealthy" {
		code = http.StatusServiceUnavailable
	}

	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	respond.JSON(w, code, HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
		Version:   h.Version,
	})
}

// ReadyHandler answers 200 "ready" once Probe succeeds.
type ReadyHandler struct {
	Probe func(ctx context.Context) error
}

func (h *ReadyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if h.Probe != nil {
		if err := h.Probe(ctx); err != nil {
			respond.Text(w, http.StatusServiceUnavailable, "not ready: "+respond.SanitizeError(err))
			return
		}
	}
	respond.Text(w, http.StatusOK, "ready")
}

// LiveHandler always answers 200 "alive".
type LiveHandler struct{}

func (h *LiveHandler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	respond.Text(w, http.StatusOK, "alive")
}
