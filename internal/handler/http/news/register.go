package news

import "net/http"

// Register mounts the briefing routes. GET /api/news/sources is registered by the
// source package and wins over {date} as the more specific pattern.
func Register(mux *http.ServeMux, h Handler) {
	mux.HandleFunc("GET /api/news", h.Today)
	mux.HandleFunc("POST /api/news/refresh", h.Refresh)
	mux.HandleFunc("POST /api/news/generate", h.Generate)
	mux.HandleFunc("GET /api/news/{date}", h.ByDate)
}
