package source

import (
	"net/http"

	"daily-briefing/internal/handler/http/respond"
	srcUC "daily-briefing/internal/usecase/source"
)

type ListHandler struct{ Svc *srcUC.Service }

func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	list, err := h.Svc.List(r.Context())
	if err != nil {
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}
	respond.JSON(w, http.StatusOK, list)
}
