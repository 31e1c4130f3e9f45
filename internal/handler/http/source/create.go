package source

import (
	"encoding/json"
	"net/http"

	"daily-briefing/internal/handler/http/respond"
	srcUC "daily-briefing/internal/usecase/source"
)

type CreateHandler struct{ Svc *srcUC.Service }

func (h CreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.Svc.ReadOnly() {
		readOnly(w)
		return
	}
	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.JSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return
	}
	src, err := h.Svc.Create(r.Context(), srcUC.CreateInput{
		Name: req.Name, URL: req.URL, Type: req.Type, Category: req.Category, Enabled: req.Enabled,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	respond.JSON(w, http.StatusCreated, src)
}
