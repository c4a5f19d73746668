package models

import "time"

// Post is a publishable content item with a department scope, a clearance
// level, and an optional parent folder.
type Post struct {
	ID            string    `json:"id" db:"id"`
	Title         string    `json:"title" db:"title"`
	Message       string    `json:"message" db:"message"`
	FolderID      *string   `json:"folder_id" db:"folder_id"`
	PostTypeID    int64     `json:"post_type_id" db:"post_type_id"`
	Level         int       `json:"level" db:"level"`
	IsPublished   bool      `json:"is_published" db:"is_published"`
	DepartmentIDs []int64   `json:"department_ids"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

// PostType names a category of post. Default subfolders provisioned under a
// new folder take their names from post types.
type PostType struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}
