package handler

import (
	"log/slog"
	"net/http"

	"atrium/internal/domain/services"
	"atrium/internal/httputil"
)

// PostHandler handles post HTTP requests
type PostHandler struct {
	postService services.PostService
	logger      *slog.Logger
}

// NewPostHandler creates a new post handler
func NewPostHandler(postService services.PostService, logger *slog.Logger) *PostHandler {
	return &PostHandler{
		postService: postService,
		logger:      logger,
	}
}

// ListPosts lists a department's posts visible to the requester. The
// department defaults to the requester's own when no query parameter names one.
// GET /api/posts?department_id=
func (h *PostHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	departmentID := httputil.QueryInt64Ptr(r, "department_id")
	if departmentID == nil {
		claims := httputil.GetClaims(r)
		if claims == nil {
			httputil.RespondError(w, http.StatusBadRequest, "department_id is required")
			return
		}
		departmentID = &claims.DepartmentID
	}

	posts, err := h.postService.ListByDepartment(r.Context(), *departmentID, visibilityFrom(r))
	if err != nil {
		handleError(w, r, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, posts)
}

// CreatePost creates a post
// POST /api/posts
func (h *PostHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	var req services.CreatePostRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	post, err := h.postService.Create(r.Context(), &req)
	if err != nil {
		handleError(w, r, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, post)
}

// GetPost retrieves a post visible to the requester
// GET /api/posts/{id}
func (h *PostHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "post")
	if !ok {
		return
	}

	post, err := h.postService.Get(r.Context(), id, visibilityFrom(r))
	if err != nil {
		handleError(w, r, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, post)
}

// HealthCheck reports liveness
// GET /health
func (h *PostHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
