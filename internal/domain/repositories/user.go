package repositories

import (
	"context"

	"atrium/internal/domain/models"
)

// UserRepository defines the read-side access this core needs over user
// profiles. Profile CRUD itself is an external concern.
type UserRepository interface {
	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id string) (*models.User, error)

	// ListByDepartments lists every user whose department is in the set
	ListByDepartments(ctx context.Context, departmentIDs []int64) ([]models.User, error)

	// ListReadStates loads one department's users with their clearance
	// levels and already-read post id sets
	ListReadStates(ctx context.Context, departmentID int64) ([]models.UserReadState, error)

	// Search finds users whose first, middle or last name contains the query
	Search(ctx context.Context, query string) ([]models.User, error)
}
