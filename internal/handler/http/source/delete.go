package source

import (
	"errors"
	"net/http"

	"daily-briefing/internal/domain/entity"
	"daily-briefing/internal/handler/http/respond"
	srcUC "daily-briefing/internal/usecase/source"
)

type DeleteHandler struct{ Svc *srcUC.Service }

func (h DeleteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.Svc.ReadOnly() {
		readOnly(w)
		return
	}
	if err := h.Svc.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func readOnly(w http.ResponseWriter) {
	w.Header().Set("Allow", http.MethodGet)
	respond.JSON(w, http.StatusMethodNotAllowed, map[string]string{"error": srcUC.ErrReadOnly.Error()})
}

// writeError maps use case errors to status codes.
func writeError(w http.ResponseWriter, err error) {
	var valErr *entity.ValidationError
	switch {
	case errors.Is(err, srcUC.ErrReadOnly):
		readOnly(w)
	case errors.Is(err, srcUC.ErrSourceNotFound):
		respond.JSON(w, http.StatusNotFound, map[string]string{"error": srcUC.ErrSourceNotFound.Error()})
	case errors.As(err, &valErr), errors.Is(err, entity.ErrInvalidInput):
		respond.SafeError(w, http.StatusBadRequest, err)
	default:
		respond.SafeError(w, http.StatusInternalServerError, err)
	}
}
