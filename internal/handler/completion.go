package handler

import (
	"log/slog"
	"net/http"

	"atrium/internal/domain/services"
	"atrium/internal/httputil"
)

// CompletionHandler handles read-completion HTTP requests
type CompletionHandler struct {
	completionService services.CompletionService
	logger            *slog.Logger
}

// NewCompletionHandler creates a new completion handler
func NewCompletionHandler(completionService services.CompletionService, logger *slog.Logger) *CompletionHandler {
	return &CompletionHandler{
		completionService: completionService,
		logger:            logger,
	}
}

// GetReport builds the per-department incompleteness report
// GET /api/departments/completion
func (h *CompletionHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.completionService.Report(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, report)
}

// MarkRead records that the requester has read a post; repeat calls return
// the original record
// POST /api/posts/{id}/read
func (h *CompletionHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	postID, ok := pathID(w, r, "post")
	if !ok {
		return
	}

	userID := httputil.GetUserID(r)
	if userID == "" {
		httputil.RespondError(w, http.StatusUnauthorized, "unauthenticated")
		return
	}

	record, err := h.completionService.MarkRead(r.Context(), userID, postID)
	if err != nil {
		handleError(w, r, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, record)
}

// HasRead checks whether the requester has read a post; 404 when no record
// exists
// GET /api/posts/{id}/read
func (h *CompletionHandler) HasRead(w http.ResponseWriter, r *http.Request) {
	postID, ok := pathID(w, r, "post")
	if !ok {
		return
	}

	userID := httputil.GetUserID(r)
	if userID == "" {
		httputil.RespondError(w, http.StatusUnauthorized, "unauthenticated")
		return
	}

	record, err := h.completionService.HasRead(r.Context(), userID, postID)
	if err != nil {
		handleError(w, r, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, record)
}
