package repositories

import (
	"context"

	"atrium/internal/domain/models"
)

// FolderRepository defines data access operations for folders.
// Folders are returned with their department-association set loaded so the
// pure visibility predicate can be applied to them.
type FolderRepository interface {
	// Create inserts a folder and its department associations
	Create(ctx context.Context, folder *models.Folder) error

	// GetByID retrieves a folder by ID
	GetByID(ctx context.Context, id string) (*models.Folder, error)

	// Update persists name and display metadata changes
	Update(ctx context.Context, folder *models.Folder) error

	// Delete removes a folder by ID
	Delete(ctx context.Context, id string) error

	// ListChildren lists the immediate child folders of parentID
	ListChildren(ctx context.Context, parentID string) ([]models.Folder, error)

	// ListRoots lists root-level folders matching the filter, plus the
	// unpaginated match count
	ListRoots(ctx context.Context, filter models.FolderFilter) ([]models.Folder, int, error)

	// AddBookmarks attaches the folder to each user's bookmark set.
	// Existing bookmarks are left alone (set union).
	AddBookmarks(ctx context.Context, folderID string, userIDs []string) error

	// SearchPublished finds published folders whose name contains the query
	SearchPublished(ctx context.Context, query string) ([]models.Folder, error)
}
