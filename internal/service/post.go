package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"atrium/internal/config"
	"atrium/internal/domain"
	"atrium/internal/domain/models"
	"atrium/internal/domain/repositories"
	"atrium/internal/domain/services"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type postService struct {
	postRepo   repositories.PostRepository
	folderRepo repositories.FolderRepository
	txManager  repositories.TransactionManager
	logger     *slog.Logger
}

// NewPostService creates a new post service
func NewPostService(
	postRepo repositories.PostRepository,
	folderRepo repositories.FolderRepository,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) services.PostService {
	return &postService{
		postRepo:   postRepo,
		folderRepo: folderRepo,
		txManager:  txManager,
		logger:     logger,
	}
}

// Create inserts a post with its department scope
func (s *postService) Create(ctx context.Context, req *services.CreatePostRequest) (*models.Post, error) {
	if err := s.validateCreateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if req.FolderID != nil {
		if _, err := s.folderRepo.GetByID(ctx, *req.FolderID); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	post := &models.Post{
		Title:         req.Title,
		Message:       req.Message,
		FolderID:      req.FolderID,
		PostTypeID:    req.PostTypeID,
		Level:         req.Level,
		IsPublished:   req.IsPublished,
		DepartmentIDs: req.DepartmentIDs,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		return s.postRepo.Create(txCtx, post)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("post created",
		"id", post.ID,
		"title", post.Title,
		"level", post.Level,
		"departments", post.DepartmentIDs,
	)

	return post, nil
}

// Get retrieves a post if the requester's visibility context allows it
func (s *postService) Get(ctx context.Context, id string, vis models.VisibilityContext) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !models.PostVisible(post, vis) {
		return nil, fmt.Errorf("post %s: %w", id, domain.ErrNotFound)
	}

	return post, nil
}

// ListByDepartment lists a department's posts visible to the requester
func (s *postService) ListByDepartment(ctx context.Context, departmentID int64, vis models.VisibilityContext) ([]models.Post, error) {
	posts, err := s.postRepo.ListByDepartment(ctx, departmentID)
	if err != nil {
		return nil, err
	}

	return filterPosts(posts, vis), nil
}

func (s *postService) validateCreateRequest(req *services.CreatePostRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Title,
			validation.Required,
			validation.Length(1, config.MaxPostTitleLength),
		),
		validation.Field(&req.PostTypeID, validation.Required),
		validation.Field(&req.Level, validation.Min(0)),
	)
}
