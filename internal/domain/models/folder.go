package models

import (
	"time"
)

// Folder is a named tree node grouping posts and/or child folders.
// ParentID nil means root level; the structure is a finite forest because
// no re-parenting operation exists after creation.
type Folder struct {
	ID            string     `json:"id" db:"id"`
	Name          string     `json:"name" db:"name"`
	ParentID      *string    `json:"parent_id" db:"parent_id"`
	IsPublished   bool       `json:"is_published" db:"is_published"`
	Description   string     `json:"description,omitempty" db:"description"`
	Color         string     `json:"color,omitempty" db:"color"`
	OwnerID       *string    `json:"owner_id,omitempty" db:"owner_id"`
	DepartmentIDs []int64    `json:"department_ids"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt     *time.Time `json:"deleted_at,omitempty" db:"deleted_at"`
}

// FolderNode is a folder with its nested visible subfolders, built by
// bounded-depth lookups (one indexed parent-id query per level).
type FolderNode struct {
	Folder
	Folders []*FolderNode `json:"folders"`
}

// FolderFilter carries one optional field per filter dimension for
// root-folder listing. Absent fields impose no constraint.
type FolderFilter struct {
	NameContains  *string
	DepartmentID  *int64
	OnlyPublished bool

	Limit  int
	Offset int
}

// FolderPage is a paginated slice of root folders plus the unpaginated total.
type FolderPage struct {
	Folders []Folder `json:"folders"`
	Total   int      `json:"total"`
}
