// Package news serves the daily briefing endpoints.
package news

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"daily-briefing/internal/domain/entity"
	"daily-briefing/internal/handler/http/respond"
	"daily-briefing/internal/observability/logging"
	"daily-briefing/internal/usecase/briefing"
)

// BriefingService is the part of briefing.Service the handlers use.
type BriefingService interface {
	Configured() bool
	Generate(ctx context.Context, force bool) (*entity.DailyBriefing, error)
	Latest(ctx context.Context, date string) (*entity.DailyBriefing, error)
}

// Limiter throttles forced regenerations.
type Limiter interface {
	Allow(r *http.Request) bool
}

// NotConfiguredResponse is the 503 body returned until a summarizer key is set.
type NotConfiguredResponse struct {
	Error       string `json:"error"`
	Message     string `json:"message"`
	NeedsConfig bool   `json:"needsConfig"`
}

var notConfigured = NotConfiguredResponse{
	Error:       "News service not configured",
	Message:     "Please configure API keys in settings",
	NeedsConfig: true,
}

// GenerateResponse is the body of POST /api/news/generate.
type GenerateResponse struct {
	Success       bool   `json:"success"`
	Date          string `json:"date"`
	ArticlesCount int    `json:"articlesCount"`
}

type Handler struct {
	Svc     BriefingService
	Limiter Limiter
}

// Today handles GET /api/news. ?force=true regenerates.
func (h Handler) Today(w http.ResponseWriter, r *http.Request) {
	force, _ := strconv.ParseBool(r.URL.Query().Get("force"))
	h.serveBriefing(w, r, force, "Failed to generate briefing")
}

// Refresh handles POST /api/news/refresh.
func (h Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	h.serveBriefing(w, r, true, "Failed to regenerate briefing")
}

// Generate handles POST /api/news/generate, the trigger used by schedulers.
func (h Handler) Generate(w http.ResponseWriter, r *http.Request) {
	b, ok := h.generate(w, r, true, "Failed to generate briefing")
	if !ok {
		return
	}
	respond.JSON(w, http.StatusOK, GenerateResponse{
		Success:       true,
		Date:          b.Date,
		ArticlesCount: len(b.Articles),
	})
}

// ByDate handles GET /api/news/{date} and never generates.
func (h Handler) ByDate(w http.ResponseWriter, r *http.Request) {
	b, err := h.Svc.Latest(r.Context(), r.PathValue("date"))
	switch {
	case errors.Is(err, entity.ErrInvalidDate):
		respond.JSON(w, http.StatusBadRequest, map[string]string{"error": "invalid date, want YYYY-MM-DD"})
	case errors.Is(err, briefing.ErrBriefingNotFound):
		respond.JSON(w, http.StatusNotFound, map[string]string{"error": "briefing not found"})
	case err != nil:
		respond.SafeError(w, http.StatusInternalServerError, err)
	default:
		respond.JSON(w, http.StatusOK, b)
	}
}

func (h Handler) serveBriefing(w http.ResponseWriter, r *http.Request, force bool, failMsg string) {
	if b, ok := h.generate(w, r, force, failMsg); ok {
		respond.JSON(w, http.StatusOK, b)
	}
}

// generate writes the error response itself and reports whether b can be used.
func (h Handler) generate(w http.ResponseWriter, r *http.Request, force bool, failMsg string) (*entity.DailyBriefing, bool) {
	if !h.Svc.Configured() {
		respond.JSON(w, http.StatusServiceUnavailable, notConfigured)
		return nil, false
	}
	if force && h.Limiter != nil && !h.Limiter.Allow(r) {
		respond.JSON(w, http.StatusTooManyRequests, map[string]string{"error": "too many forced regenerations, try again later"})
		return nil, false
	}

	logger := logging.FromContext(r.Context())
	if force {
		logger.Info("forced briefing generation requested")
	}

	b, err := h.Svc.Generate(r.Context(), force)
	switch {
	case errors.Is(err, briefing.ErrNotConfigured):
		respond.JSON(w, http.StatusServiceUnavailable, notConfigured)
		return nil, false
	case errors.Is(err, context.Canceled) && r.Context().Err() != nil:
		// クライアント切断。生成自体は継続している
		logger.Info("client left before briefing was ready")
		return nil, false
	case err != nil:
		logger.Error("briefing generation failed",
			slog.Bool("force", force),
			slog.String("error", respond.SanitizeError(err)))
		respond.JSON(w, http.StatusInternalServerError, map[string]string{"error": failMsg})
		return nil, false
	}
	return b, true
}
