package repositories

import (
	"context"

	"atrium/internal/domain/models"
)

// PostRepository defines data access operations for posts.
type PostRepository interface {
	// Create inserts a post and its department associations
	Create(ctx context.Context, post *models.Post) error

	// GetByID retrieves a post by ID
	GetByID(ctx context.Context, id string) (*models.Post, error)

	// ListByFolder lists the posts directly inside one folder
	ListByFolder(ctx context.Context, folderID string) ([]models.Post, error)

	// ListByFolders lists the posts of several folders in one query
	ListByFolders(ctx context.Context, folderIDs []string) ([]models.Post, error)

	// ListByDepartment lists every post associated with a department
	ListByDepartment(ctx context.Context, departmentID int64) ([]models.Post, error)

	// SearchPublished finds published posts whose title or message contains
	// the query, optionally scoped to a department, with level >= minLevel
	SearchPublished(ctx context.Context, query string, departmentID *int64, minLevel int) ([]models.Post, error)
}

// PostTypeRepository lists the known post types used to derive
// default-subfolder names.
type PostTypeRepository interface {
	List(ctx context.Context) ([]models.PostType, error)
}
