package handler

import (
	"log/slog"
	"net/http"

	"atrium/internal/domain/models"
	"atrium/internal/domain/services"
	"atrium/internal/httputil"
)

// FolderHandler handles folder HTTP requests
type FolderHandler struct {
	folderService   services.FolderService
	bookmarkService services.BookmarkService
	logger          *slog.Logger
}

// NewFolderHandler creates a new folder handler
func NewFolderHandler(
	folderService services.FolderService,
	bookmarkService services.BookmarkService,
	logger *slog.Logger,
) *FolderHandler {
	return &FolderHandler{
		folderService:   folderService,
		bookmarkService: bookmarkService,
		logger:          logger,
	}
}

// ListFolders pages root folders
// GET /api/folders?name=&department_id=&limit=&offset=
func (h *FolderHandler) ListFolders(w http.ResponseWriter, r *http.Request) {
	claims := httputil.GetClaims(r)

	filter := models.FolderFilter{
		NameContains:  httputil.QueryStringPtr(r, "name"),
		DepartmentID:  httputil.QueryInt64Ptr(r, "department_id"),
		OnlyPublished: claims == nil || !claims.IsAdmin(),
		Limit:         httputil.QueryInt(r, "limit", 50),
		Offset:        httputil.QueryInt(r, "offset", 0),
	}

	page, err := h.folderService.List(r.Context(), filter)
	if err != nil {
		handleError(w, r, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, page)
}

// CreateFolder creates a root folder
// POST /api/folders
func (h *FolderHandler) CreateFolder(w http.ResponseWriter, r *http.Request) {
	var req services.CreateFolderRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if userID := httputil.GetUserID(r); userID != "" {
		req.OwnerID = &userID
	}

	folder, err := h.folderService.CreateRoot(r.Context(), &req)
	if err != nil {
		handleError(w, r, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, folder)
}

// CreateChildFolder creates a folder under an existing one
// POST /api/folders/{id}/children
func (h *FolderHandler) CreateChildFolder(w http.ResponseWriter, r *http.Request) {
	parentID, ok := pathID(w, r, "folder")
	if !ok {
		return
	}

	var req services.CreateFolderRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if userID := httputil.GetUserID(r); userID != "" {
		req.OwnerID = &userID
	}

	folder, err := h.folderService.CreateChild(r.Context(), parentID, &req)
	if err != nil {
		handleError(w, r, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, folder)
}

// GetFolder returns a folder with nested visible subfolders
// GET /api/folders/{id}?depth=N
func (h *FolderHandler) GetFolder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "folder")
	if !ok {
		return
	}

	depth := httputil.QueryInt(r, "depth", 0)

	node, err := h.folderService.Get(r.Context(), id, depth, visibilityFrom(r))
	if err != nil {
		handleError(w, r, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, node)
}

// UpdateFolder renames a folder or changes its display metadata
// PATCH /api/folders/{id}
func (h *FolderHandler) UpdateFolder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "folder")
	if !ok {
		return
	}

	var req services.UpdateFolderRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	folder, err := h.folderService.Update(r.Context(), id, &req)
	if err != nil {
		handleError(w, r, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, folder)
}

// DeleteFolder deletes a folder
// DELETE /api/folders/{id}
func (h *FolderHandler) DeleteFolder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "folder")
	if !ok {
		return
	}

	if err := h.folderService.Delete(r.Context(), id); err != nil {
		handleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetFolderPosts lists the visible posts directly inside a folder
// GET /api/folders/{id}/posts
func (h *FolderHandler) GetFolderPosts(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "folder")
	if !ok {
		return
	}

	posts, err := h.folderService.Posts(r.Context(), id, visibilityFrom(r))
	if err != nil {
		handleError(w, r, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, posts)
}

// GetFolderAllPosts aggregates the folder's posts with those of its direct
// subfolders
// GET /api/folders/{id}/all-posts
func (h *FolderHandler) GetFolderAllPosts(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "folder")
	if !ok {
		return
	}

	posts, err := h.folderService.CollectPosts(r.Context(), id, visibilityFrom(r))
	if err != nil {
		handleError(w, r, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, posts)
}

// bookmarkRequest is the payload for explicit bookmark propagation
type bookmarkRequest struct {
	Departments string `json:"departments"`
}

// BookmarkFolder bookmarks the folder for every member of the listed
// departments
// POST /api/folders/{id}/bookmarks
func (h *FolderHandler) BookmarkFolder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "folder")
	if !ok {
		return
	}

	var req bookmarkRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	count, err := h.bookmarkService.Propagate(r.Context(), id, req.Departments)
	if err != nil {
		handleError(w, r, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]int{"bookmarked_users": count})
}
