package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"atrium/internal/config"
	"atrium/internal/domain"
	"atrium/internal/domain/models"
	"atrium/internal/domain/repositories"
	"atrium/internal/domain/services"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type folderService struct {
	folderRepo  repositories.FolderRepository
	postRepo    repositories.PostRepository
	provisioner services.ProvisionService
	bookmarks   services.BookmarkService
	txManager   repositories.TransactionManager
	logger      *slog.Logger
}

// NewFolderService creates a new folder service
func NewFolderService(
	folderRepo repositories.FolderRepository,
	postRepo repositories.PostRepository,
	provisioner services.ProvisionService,
	bookmarks services.BookmarkService,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) services.FolderService {
	return &folderService{
		folderRepo:  folderRepo,
		postRepo:    postRepo,
		provisioner: provisioner,
		bookmarks:   bookmarks,
		txManager:   txManager,
		logger:      logger,
	}
}

// CreateRoot creates a folder with no parent
func (s *folderService) CreateRoot(ctx context.Context, req *services.CreateFolderRequest) (*models.Folder, error) {
	if err := s.validateCreateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	folder, err := s.insertFolder(ctx, nil, req)
	if err != nil {
		return nil, err
	}

	s.logger.Info("root folder created",
		"id", folder.ID,
		"name", folder.Name,
		"departments", folder.DepartmentIDs,
	)

	s.runSecondaryEffects(ctx, folder, req, false)

	return folder, nil
}

// CreateChild creates a folder under parentID. Provisioning and bookmark
// propagation run afterwards as best-effort steps: their failures are logged
// and never change the reported outcome of the creation itself.
func (s *folderService) CreateChild(ctx context.Context, parentID string, req *services.CreateFolderRequest) (*models.Folder, error) {
	if err := s.validateCreateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	parent, err := s.folderRepo.GetByID(ctx, parentID)
	if err != nil {
		return nil, err
	}

	folder, err := s.insertFolder(ctx, &parent.ID, req)
	if err != nil {
		return nil, err
	}

	s.logger.Info("child folder created",
		"id", folder.ID,
		"name", folder.Name,
		"parent_id", parent.ID,
		"departments", folder.DepartmentIDs,
	)

	s.runSecondaryEffects(ctx, folder, req, true)

	return folder, nil
}

// insertFolder writes the folder row and its department links atomically.
func (s *folderService) insertFolder(ctx context.Context, parentID *string, req *services.CreateFolderRequest) (*models.Folder, error) {
	now := time.Now()
	folder := &models.Folder{
		Name:          strings.TrimSpace(req.Name),
		ParentID:      parentID,
		IsPublished:   req.IsPublished,
		Description:   req.Description,
		Color:         req.Color,
		OwnerID:       req.OwnerID,
		DepartmentIDs: req.DepartmentIDs,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		return s.folderRepo.Create(txCtx, folder)
	})
	if err != nil {
		return nil, err
	}

	return folder, nil
}

// runSecondaryEffects triggers the best-effort post-creation steps. Neither
// step runs in the creation transaction; a partial outcome is tolerated and
// only logged.
func (s *folderService) runSecondaryEffects(ctx context.Context, folder *models.Folder, req *services.CreateFolderRequest, isChild bool) {
	if isChild && req.ProvisionDefaults {
		created, err := s.provisioner.ProvisionDefaults(ctx, folder)
		if err != nil {
			s.logger.Error("default subfolder provisioning failed",
				"folder_id", folder.ID,
				"error", err,
			)
		} else {
			s.logger.Info("default subfolders provisioned",
				"folder_id", folder.ID,
				"created", created,
			)
		}
	}

	if req.BookmarkDepartments != "" {
		count, err := s.bookmarks.Propagate(ctx, folder.ID, req.BookmarkDepartments)
		if err != nil {
			s.logger.Error("bookmark propagation failed",
				"folder_id", folder.ID,
				"departments", req.BookmarkDepartments,
				"error", err,
			)
		} else {
			s.logger.Info("folder bookmarked for department members",
				"folder_id", folder.ID,
				"users", count,
			)
		}
	}
}

// Get returns the folder with nested visible subfolders down to depth levels.
// Each level is fetched by an indexed parent-id lookup and independently
// filtered, so a hidden descendant leaves its ancestors and siblings intact.
func (s *folderService) Get(ctx context.Context, id string, depth int, vis models.VisibilityContext) (*models.FolderNode, error) {
	folder, err := s.folderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !models.FolderVisible(folder, vis) {
		return nil, fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
	}

	if depth > config.MaxTreeDepth {
		depth = config.MaxTreeDepth
	}

	return s.buildSubtree(ctx, folder, depth, vis)
}

// buildSubtree recurses with a decreasing depth counter; depth <= 0
// terminates with no nested subfolders. Termination is guaranteed because
// the counter is finite regardless of the stored structure.
func (s *folderService) buildSubtree(ctx context.Context, folder *models.Folder, depth int, vis models.VisibilityContext) (*models.FolderNode, error) {
	node := &models.FolderNode{
		Folder:  *folder,
		Folders: []*models.FolderNode{},
	}

	if depth <= 0 {
		return node, nil
	}

	children, err := s.folderRepo.ListChildren(ctx, folder.ID)
	if err != nil {
		return nil, fmt.Errorf("list child folders: %w", err)
	}

	for i := range children {
		child := &children[i]
		if !models.FolderVisible(child, vis) {
			continue
		}

		childNode, err := s.buildSubtree(ctx, child, depth-1, vis)
		if err != nil {
			return nil, err
		}
		node.Folders = append(node.Folders, childNode)
	}

	return node, nil
}

// List pages root folders matching the filter
func (s *folderService) List(ctx context.Context, filter models.FolderFilter) (*models.FolderPage, error) {
	folders, total, err := s.folderRepo.ListRoots(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &models.FolderPage{
		Folders: folders,
		Total:   total,
	}, nil
}

// Update renames a folder or changes its display metadata
func (s *folderService) Update(ctx context.Context, id string, req *services.UpdateFolderRequest) (*models.Folder, error) {
	if err := s.validateUpdateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	folder, err := s.folderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		folder.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		folder.Description = *req.Description
	}
	if req.Color != nil {
		folder.Color = *req.Color
	}
	if req.IsPublished != nil {
		folder.IsPublished = *req.IsPublished
	}
	folder.UpdatedAt = time.Now()

	if err := s.folderRepo.Update(ctx, folder); err != nil {
		return nil, err
	}

	s.logger.Info("folder updated",
		"id", folder.ID,
		"name", folder.Name,
	)

	return folder, nil
}

// Delete removes a folder by ID
func (s *folderService) Delete(ctx context.Context, id string) error {
	if err := s.folderRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("folder deleted", "id", id)
	return nil
}

// Posts lists the visible posts directly inside a folder
func (s *folderService) Posts(ctx context.Context, id string, vis models.VisibilityContext) ([]models.Post, error) {
	if _, err := s.folderRepo.GetByID(ctx, id); err != nil {
		return nil, err
	}

	posts, err := s.postRepo.ListByFolder(ctx, id)
	if err != nil {
		return nil, err
	}

	return filterPosts(posts, vis), nil
}

// CollectPosts lists the visible posts of the folder plus those of its
// direct subfolders. Only one level of descent is aggregated; deeper
// descendants are out of scope for this operation.
func (s *folderService) CollectPosts(ctx context.Context, id string, vis models.VisibilityContext) ([]models.Post, error) {
	folder, err := s.folderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	children, err := s.folderRepo.ListChildren(ctx, folder.ID)
	if err != nil {
		return nil, fmt.Errorf("list child folders: %w", err)
	}

	folderIDs := []string{folder.ID}
	for i := range children {
		if models.FolderVisible(&children[i], vis) {
			folderIDs = append(folderIDs, children[i].ID)
		}
	}

	posts, err := s.postRepo.ListByFolders(ctx, folderIDs)
	if err != nil {
		return nil, err
	}

	return filterPosts(posts, vis), nil
}

func filterPosts(posts []models.Post, vis models.VisibilityContext) []models.Post {
	visible := []models.Post{}
	for i := range posts {
		if models.PostVisible(&posts[i], vis) {
			visible = append(visible, posts[i])
		}
	}
	return visible
}

func (s *folderService) validateCreateRequest(req *services.CreateFolderRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Name,
			validation.Required,
			validation.Length(1, config.MaxFolderNameLength),
		),
	)
}

func (s *folderService) validateUpdateRequest(req *services.UpdateFolderRequest) error {
	if req.Name == nil && req.Description == nil && req.Color == nil && req.IsPublished == nil {
		return fmt.Errorf("at least one field must be provided")
	}

	if req.Name != nil {
		return validation.Validate(*req.Name,
			validation.Required,
			validation.Length(1, config.MaxFolderNameLength),
		)
	}

	return nil
}
