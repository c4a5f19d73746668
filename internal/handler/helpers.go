package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"atrium/internal/domain"
	"atrium/internal/domain/models"
	"atrium/internal/httputil"

	"github.com/google/uuid"
)

// handleError converts domain errors to HTTP responses. NotFound, Conflict
// and Validation pass through with their messages; anything else is logged
// in full and surfaced as a generic 500 without store-level detail.
func handleError(w http.ResponseWriter, r *http.Request, err error) {
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
		slog.Error("internal error",
			"path", r.URL.Path,
			"method", r.Method,
			"error", err,
		)
		httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
	}
}

// pathID extracts a {id} path parameter and rejects values that are not
// valid UUIDs before they reach the store.
func pathID(w http.ResponseWriter, r *http.Request, label string) (string, bool) {
	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, label+" ID is required")
		return "", false
	}
	if _, err := uuid.Parse(id); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid "+label+" ID format")
		return "", false
	}
	return id, true
}

// visibilityFrom derives the requester's visibility context from the
// verified claims. Requests without claims get the fully restricted view.
func visibilityFrom(r *http.Request) models.VisibilityContext {
	claims := httputil.GetClaims(r)
	if claims == nil {
		return models.VisibilityContext{OnlyPublished: true}
	}
	return claims.Visibility()
}
