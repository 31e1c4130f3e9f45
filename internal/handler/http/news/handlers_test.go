package news_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"daily-briefing/internal/domain/entity"
	"daily-briefing/internal/handler/http/news"
	"daily-briefing/internal/usecase/briefing"
)

/* ───────── stubs ───────── */

type stubService struct {
	configured bool
	briefing   *entity.DailyBriefing
	err        error
	latestErr  error

	mu     sync.Mutex
	forces []bool
}

func (s *stubService) Configured() bool { return s.configured }

func (s *stubService) Generate(_ context.Context, force bool) (*entity.DailyBriefing, error) {
	s.mu.Lock()
	s.forces = append(s.forces, force)
	s.mu.Unlock()
	return s.briefing, s.err
}

func (s *stubService) Latest(_ context.Context, date string) (*entity.DailyBriefing, error) {
	if err := entity.ValidateDate(date); err != nil {
		return nil, err
	}
	if s.latestErr != nil {
		return nil, s.latestErr
	}
	b := *s.briefing
	b.Date = date
	return &b, nil
}

type denyAll struct{}

func (denyAll) Allow(*http.Request) bool { return false }

func sample() *entity.DailyBriefing {
	return &entity.DailyBriefing{
		Date:        "2026-03-01",
		GeneratedAt: time.Date(2026, 3, 1, 6, 0, 0, 0, time.UTC),
		SummaryText: "Today's digest",
		AudioPlaylist: []entity.AudioTrack{
			{Title: entity.SummaryTrackTitle, URL: "/api/audio/inworld-1.mp3", Type: entity.TrackTypeSummary},
		},
		Articles: []entity.Article{{Title: "A"}, {Title: "B"}},
	}
}

func newMux(svc news.BriefingService, limiter news.Limiter) *http.ServeMux {
	mux := http.NewServeMux()
	news.Register(mux, news.Handler{Svc: svc, Limiter: limiter})
	return mux
}

func do(mux http.Handler, method, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(method, path, nil))
	return rec
}

/* ───────── GET /api/news ───────── */

func TestToday(t *testing.T) {
	tests := []struct {
		path      string
		wantForce bool
	}{
		{"/api/news", false},
		{"/api/news?force=true", true},
		{"/api/news?force=1", true},
		{"/api/news?force=false", false},
		{"/api/news?force=banana", false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			svc := &stubService{configured: true, briefing: sample()}
			rec := do(newMux(svc, nil), http.MethodGet, tt.path)

			require.Equal(t, http.StatusOK, rec.Code)
			var got entity.DailyBriefing
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
			assert.Equal(t, "2026-03-01", got.Date)
			assert.Equal(t, []bool{tt.wantForce}, svc.forces)
		})
	}
}

func TestNotConfigured(t *testing.T) {
	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/api/news"},
		{http.MethodPost, "/api/news/refresh"},
		{http.MethodPost, "/api/news/generate"},
	} {
		t.Run(tc.path, func(t *testing.T) {
			svc := &stubService{configured: false}
			rec := do(newMux(svc, nil), tc.method, tc.path)

			assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
			assert.JSONEq(t, `{"error":"News service not configured","message":"Please configure API keys in settings","needsConfig":true}`, rec.Body.String())
			assert.Empty(t, svc.forces, "service must not be called")
		})
	}
}

func TestNotConfigured_FromService(t *testing.T) {
	svc := &stubService{configured: true, err: briefing.ErrNotConfigured}
	rec := do(newMux(svc, nil), http.MethodGet, "/api/news")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestGenerationFailures(t *testing.T) {
	persist := fmt.Errorf("%w: %w", briefing.ErrPersistenceFailed, errors.New("disk full"))
	tests := []struct {
		method, path, want string
	}{
		{http.MethodGet, "/api/news", `{"error":"Failed to generate briefing"}`},
		{http.MethodPost, "/api/news/refresh", `{"error":"Failed to regenerate briefing"}`},
		{http.MethodPost, "/api/news/generate", `{"error":"Failed to generate briefing"}`},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			svc := &stubService{configured: true, briefing: sample(), err: persist}
			rec := do(newMux(svc, nil), tt.method, tt.path)
			assert.Equal(t, http.StatusInternalServerError, rec.Code)
			assert.JSONEq(t, tt.want, rec.Body.String())
		})
	}
}

/* ───────── POST /api/news/refresh, /generate ───────── */

func TestRefresh_Forces(t *testing.T) {
	svc := &stubService{configured: true, briefing: sample()}
	rec := do(newMux(svc, nil), http.MethodPost, "/api/news/refresh")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []bool{true}, svc.forces)
}

func TestGenerate_Summary(t *testing.T) {
	svc := &stubService{configured: true, briefing: sample()}
	rec := do(newMux(svc, nil), http.MethodPost, "/api/news/generate")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"date":"2026-03-01","articlesCount":2}`, rec.Body.String())
	assert.Equal(t, []bool{true}, svc.forces)
}

func TestForceRateLimited(t *testing.T) {
	svc := &stubService{configured: true, briefing: sample()}
	mux := newMux(svc, denyAll{})

	assert.Equal(t, http.StatusTooManyRequests, do(mux, http.MethodPost, "/api/news/refresh").Code)
	assert.Equal(t, http.StatusTooManyRequests, do(mux, http.MethodGet, "/api/news?force=true").Code)
	// キャッシュ読み出しは制限しない
	assert.Equal(t, http.StatusOK, do(mux, http.MethodGet, "/api/news").Code)
	assert.Equal(t, []bool{false}, svc.forces)
}

/* ───────── GET /api/news/{date} ───────── */

func TestByDate(t *testing.T) {
	svc := &stubService{configured: true, briefing: sample()}
	mux := newMux(svc, nil)

	rec := do(mux, http.MethodGet, "/api/news/2026-02-27")
	require.Equal(t, http.StatusOK, rec.Code)
	var got entity.DailyBriefing
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "2026-02-27", got.Date)
	assert.Empty(t, svc.forces, "stored lookup must not generate")

	assert.Equal(t, http.StatusBadRequest, do(mux, http.MethodGet, "/api/news/yesterday").Code)

	svc.latestErr = briefing.ErrBriefingNotFound
	assert.Equal(t, http.StatusNotFound, do(mux, http.MethodGet, "/api/news/2026-02-26").Code)
}
