package services

import (
	"context"

	"atrium/internal/domain/models"
)

// ProvisionService seeds default child folders under a newly created
// subfolder: one published child per known post type, named after the type,
// inheriting the parent's department scope. The batch is unordered and
// best-effort; individual failures are logged and skipped.
type ProvisionService interface {
	// ProvisionDefaults returns the number of children actually created.
	ProvisionDefaults(ctx context.Context, parent *models.Folder) (int, error)
}
