// Package audio streams stored narration files.
package audio

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"path"
	"time"

	"daily-briefing/internal/domain/entity"
	"daily-briefing/internal/handler/http/respond"
	"daily-briefing/internal/observability/logging"
)

// Opener is satisfied by storage.AudioDir.
type Opener interface {
	Open(name string) (io.ReadSeekCloser, time.Time, error)
}

type Handler struct {
	Files Opener
}

func Register(mux *http.ServeMux, h Handler) {
	mux.Handle("GET /api/audio/{filename}", h)
}

// ServeHTTP supports Range and conditional requests through http.ServeContent.
func (h Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("filename")
	f, modTime, err := h.Files.Open(name)
	if errors.Is(err, entity.ErrNotFound) {
		respond.Text(w, http.StatusNotFound, "Audio not found")
		return
	}
	if err != nil {
		logging.FromContext(r.Context()).Error("open audio failed",
			slog.String("file", name),
			slog.Any("error", err))
		respond.Text(w, http.StatusInternalServerError, "Audio unavailable")
		return
	}
	defer func() { _ = f.Close() }()

	if path.Ext(name) == ".mp3" {
		w.Header().Set("Content-Type", "audio/mpeg")
	}
	w.Header().Set("Cache-Control", "public, max-age=86400")
	http.ServeContent(w, r, name, modTime, f)
}
