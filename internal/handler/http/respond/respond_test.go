package respond

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

// captureLogs swaps the default logger for the duration of the test.
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func TestJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	JSON(rec, http.StatusCreated, map[string]any{"success": true, "articlesCount": 3})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"success":true,"articlesCount":3}`, rec.Body.String())
}

func TestJSON_NilBody(t *testing.T) {
	rec := httptest.NewRecorder()
	JSON(rec, http.StatusNoContent, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestText(t *testing.T) {
	rec := httptest.NewRecorder()
	Text(rec, http.StatusNotFound, "Audio not found")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Audio not found", rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/plain")
}

func TestSafeError(t *testing.T) {
	tests := []struct {
		name    string
		code    int
		err     error
		wantMsg string
	}{
		{"validation passes through", http.StatusBadRequest, errors.New("validation error on field 'url': URL is required"), "validation error on field 'url': URL is required"},
		{"not found passes through", http.StatusNotFound, errors.New("source not found"), "source not found"},
		{"read-only passes through", http.StatusMethodNotAllowed, errors.New("source list is read-only"), "source list is read-only"},
		{"unknown 4xx hidden", http.StatusBadRequest, errors.New("open /data/x: permission denied"), "internal server error"},
		{"5xx always hidden", http.StatusInternalServerError, errors.New("invalid character in sk-1234567890abcdef"), "internal server error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			captureLogs(t)
			rec := httptest.NewRecorder()
			SafeError(rec, tt.code, tt.err)
			assert.Equal(t, tt.code, rec.Code)
			assert.Equal(t, tt.wantMsg, decode(t, rec)["error"])
		})
	}
}

func TestSafeError_LogsSanitized(t *testing.T) {
	logs := captureLogs(t)
	rec := httptest.NewRecorder()

	SafeError(rec, http.StatusInternalServerError, fmt.Errorf("summarize: 401 for key sk-ant-api03-secretsecret"))

	assert.Contains(t, logs.String(), "sk-ant-****")
	assert.NotContains(t, logs.String(), "secretsecret")
}

func TestSafeError_AppError(t *testing.T) {
	logs := captureLogs(t)
	rec := httptest.NewRecorder()

	err := fmt.Errorf("wrapped: %w", NewAppError(http.StatusInternalServerError, "Failed to generate briefing", errors.New("disk full")))
	SafeError(rec, http.StatusBadRequest, err)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Failed to generate briefing", decode(t, rec)["error"])
	assert.Contains(t, logs.String(), "disk full")
}

func TestSafeError_Nil(t *testing.T) {
	rec := httptest.NewRecorder()
	SafeError(rec, http.StatusInternalServerError, nil)
	assert.Empty(t, rec.Body.String())
}

func TestAppError(t *testing.T) {
	inner := errors.New("inner")
	e := NewAppError(http.StatusServiceUnavailable, "user message", inner)
	assert.Equal(t, "inner", e.Error())
	assert.ErrorIs(t, e, inner)

	noInner := NewAppError(http.StatusBadRequest, "only user", nil)
	assert.Equal(t, "only user", noInner.Error())
}
