package handler

import (
	"errors"
	"net/http"

	"github.com/Saikat257-ui/Smart-File-Organizer/internal/domain"
	"github.com/Saikat257-ui/Smart-File-Organizer/internal/httputil"
)

// handleError converts domain errors to HTTP responses. Upstream failures
// (storage, database) fall through to 500 with the upstream error text.
func handleError(w http.ResponseWriter, err error) {
	var conflictErr *domain.ConflictError

	switch {
	case errors.Is(err, domain.ErrValidation):
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		httputil.RespondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		httputil.RespondError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		httputil.RespondError(w, http.StatusForbidden, err.Error())
	case errors.As(err, &conflictErr):
		httputil.RespondError(w, http.StatusConflict, conflictErr.Error())
	default:
		httputil.RespondError(w, http.StatusInternalServerError, err.Error())
	}
}
