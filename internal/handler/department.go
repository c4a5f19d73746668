package handler

import (
	"log/slog"
	"net/http"

	"atrium/internal/domain/services"
	"atrium/internal/httputil"
)

// DepartmentHandler handles department HTTP requests
type DepartmentHandler struct {
	departmentService services.DepartmentService
	logger            *slog.Logger
}

// NewDepartmentHandler creates a new department handler
func NewDepartmentHandler(departmentService services.DepartmentService, logger *slog.Logger) *DepartmentHandler {
	return &DepartmentHandler{
		departmentService: departmentService,
		logger:            logger,
	}
}

// ListDepartments lists all departments
// GET /api/departments
func (h *DepartmentHandler) ListDepartments(w http.ResponseWriter, r *http.Request) {
	departments, err := h.departmentService.List(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, departments)
}

// CreateDepartment creates a department; duplicate names conflict
// POST /api/departments
func (h *DepartmentHandler) CreateDepartment(w http.ResponseWriter, r *http.Request) {
	var req services.CreateDepartmentRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	department, err := h.departmentService.Create(r.Context(), &req)
	if err != nil {
		handleError(w, r, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, department)
}
