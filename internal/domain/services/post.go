package services

import (
	"context"

	"atrium/internal/domain/models"
)

// CreatePostRequest carries the inputs for post creation.
type CreatePostRequest struct {
	Title         string  `json:"title"`
	Message       string  `json:"message"`
	FolderID      *string `json:"folder_id"`
	PostTypeID    int64   `json:"post_type_id"`
	Level         int     `json:"level"`
	IsPublished   bool    `json:"is_published"`
	DepartmentIDs []int64 `json:"department_ids"`
}

// PostService manages post records. Creation, retrieval and the
// department-scoped listing live in this core; everything else about posts
// is visibility-driven reads through folders.
type PostService interface {
	Create(ctx context.Context, req *CreatePostRequest) (*models.Post, error)
	Get(ctx context.Context, id string, vis models.VisibilityContext) (*models.Post, error)

	// ListByDepartment lists a department's posts visible to the requester
	ListByDepartment(ctx context.Context, departmentID int64, vis models.VisibilityContext) ([]models.Post, error)
}
