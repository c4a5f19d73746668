package handler

import (
	"log/slog"
	"net/http"

	"atrium/internal/domain/models"
	"atrium/internal/domain/services"
	"atrium/internal/httputil"
)

// SearchHandler handles cross-entity search requests
type SearchHandler struct {
	searchService services.SearchService
	logger        *slog.Logger
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(searchService services.SearchService, logger *slog.Logger) *SearchHandler {
	return &SearchHandler{
		searchService: searchService,
		logger:        logger,
	}
}

// Search runs the weighted substring search over users, folders and posts
// GET /api/search?q=&department_id=&min_level=&skip=&take=
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	opts := &models.SearchOptions{
		Query:        r.URL.Query().Get("q"),
		DepartmentID: httputil.QueryInt64Ptr(r, "department_id"),
		MinLevel:     httputil.QueryInt(r, "min_level", 0),
		Skip:         httputil.QueryInt(r, "skip", 0),
		Take:         httputil.QueryInt(r, "take", models.DefaultSearchTake),
	}

	results, err := h.searchService.Search(r.Context(), opts)
	if err != nil {
		handleError(w, r, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, results)
}
