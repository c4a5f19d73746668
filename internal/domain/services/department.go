package services

import (
	"context"

	"atrium/internal/domain/models"
)

// CreateDepartmentRequest carries the inputs for department creation.
type CreateDepartmentRequest struct {
	Name string `json:"name"`
}

// DepartmentService manages departments; names are unique and a duplicate
// creation conflicts.
type DepartmentService interface {
	Create(ctx context.Context, req *CreateDepartmentRequest) (*models.Department, error)
	List(ctx context.Context) ([]models.Department, error)
}
