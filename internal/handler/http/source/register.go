// Package source exposes the feed source list and, in file mode, its editing endpoints.
package source

import (
	"net/http"

	srcUC "daily-briefing/internal/usecase/source"
)

// Register mounts the source routes. Edits answer 405 when the list is built in.
func Register(mux *http.ServeMux, svc *srcUC.Service) {
	mux.Handle("GET /api/news/sources", ListHandler{svc})
	mux.Handle("POST /api/news/sources", CreateHandler{svc})
	mux.Handle("PUT /api/news/sources/{id}", UpdateHandler{svc})
	mux.Handle("DELETE /api/news/sources/{id}", DeleteHandler{svc})
}
