package repositories

import (
	"context"

	"atrium/internal/domain/models"
)

// DepartmentRepository defines data access operations for departments.
type DepartmentRepository interface {
	// Create inserts a department; duplicate names conflict
	Create(ctx context.Context, department *models.Department) error

	// GetByID retrieves a department by ID
	GetByID(ctx context.Context, id int64) (*models.Department, error)

	// List lists all departments
	List(ctx context.Context) ([]models.Department, error)
}
