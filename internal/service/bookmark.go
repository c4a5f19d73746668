package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"atrium/internal/domain"
	"atrium/internal/domain/repositories"
	"atrium/internal/domain/services"
)

type bookmarkService struct {
	folderRepo repositories.FolderRepository
	userRepo   repositories.UserRepository
	logger     *slog.Logger
}

// NewBookmarkService creates a new bookmark propagation service
func NewBookmarkService(
	folderRepo repositories.FolderRepository,
	userRepo repositories.UserRepository,
	logger *slog.Logger,
) services.BookmarkService {
	return &bookmarkService{
		folderRepo: folderRepo,
		userRepo:   userRepo,
		logger:     logger,
	}
}

// Propagate bookmarks the folder for every member of the listed departments.
// The list is deliberately independent of the folder's own department scope,
// so a folder can be bookmarked for departments that cannot otherwise see it.
func (s *bookmarkService) Propagate(ctx context.Context, folderID, departmentList string) (int, error) {
	if _, err := s.folderRepo.GetByID(ctx, folderID); err != nil {
		return 0, err
	}

	departmentIDs, err := ParseDepartmentList(departmentList)
	if err != nil {
		return 0, err
	}

	if len(departmentIDs) == 0 {
		s.logger.Warn("bookmark propagation got an empty department list",
			"folder_id", folderID,
		)
		return 0, nil
	}

	users, err := s.userRepo.ListByDepartments(ctx, departmentIDs)
	if err != nil {
		return 0, err
	}

	if len(users) == 0 {
		s.logger.Warn("bookmark propagation resolved no users",
			"folder_id", folderID,
			"departments", departmentIDs,
		)
		return 0, nil
	}

	userIDs := make([]string, len(users))
	for i, u := range users {
		userIDs[i] = u.ID
	}

	if err := s.folderRepo.AddBookmarks(ctx, folderID, userIDs); err != nil {
		return 0, err
	}

	s.logger.Info("folder bookmarked",
		"folder_id", folderID,
		"departments", departmentIDs,
		"users", len(userIDs),
	)

	return len(userIDs), nil
}

// ParseDepartmentList parses a comma-delimited department id list.
// Blank entries are skipped; a non-numeric entry is a validation error.
func ParseDepartmentList(list string) ([]int64, error) {
	ids := []int64{}
	for _, token := range strings.Split(list, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}

		id, err := strconv.ParseInt(token, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: department id %q is not numeric", domain.ErrValidation, token)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
