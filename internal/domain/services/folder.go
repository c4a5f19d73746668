package services

import (
	"context"

	"atrium/internal/domain/models"
)

// CreateFolderRequest carries the inputs for root and child folder creation.
type CreateFolderRequest struct {
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	Color         string  `json:"color"`
	IsPublished   bool    `json:"is_published"`
	DepartmentIDs []int64 `json:"department_ids"`
	OwnerID       *string `json:"-"`

	// ProvisionDefaults seeds one published child folder per known post
	// type. Only honored for child creation.
	ProvisionDefaults bool `json:"provision_defaults"`

	// BookmarkDepartments is a comma-delimited department id list; when
	// non-empty the new folder is bookmarked for every member of those
	// departments as a best-effort step after creation.
	BookmarkDepartments string `json:"bookmark_departments"`
}

// UpdateFolderRequest carries a rename / display metadata patch.
type UpdateFolderRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Color       *string `json:"color"`
	IsPublished *bool   `json:"is_published"`
}

// FolderService composes the folder tree store with the visibility filter.
type FolderService interface {
	// CreateRoot creates a folder with no parent
	CreateRoot(ctx context.Context, req *CreateFolderRequest) (*models.Folder, error)

	// CreateChild creates a folder under parentID; ErrNotFound when the
	// parent does not resolve. Default-subfolder provisioning and bookmark
	// propagation run afterwards as best-effort steps.
	CreateChild(ctx context.Context, parentID string, req *CreateFolderRequest) (*models.Folder, error)

	// Get returns the folder with nested visible subfolders down to depth
	// levels; depth 0 yields no nesting
	Get(ctx context.Context, id string, depth int, vis models.VisibilityContext) (*models.FolderNode, error)

	// List pages root folders matching the filter
	List(ctx context.Context, filter models.FolderFilter) (*models.FolderPage, error)

	// Update renames a folder or changes its display metadata
	Update(ctx context.Context, id string, req *UpdateFolderRequest) (*models.Folder, error)

	// Delete removes a folder by ID
	Delete(ctx context.Context, id string) error

	// Posts lists the visible posts directly inside a folder
	Posts(ctx context.Context, id string, vis models.VisibilityContext) ([]models.Post, error)

	// CollectPosts lists the visible posts of the folder plus those of its
	// direct subfolders (one level of descent only)
	CollectPosts(ctx context.Context, id string, vis models.VisibilityContext) ([]models.Post, error)
}
