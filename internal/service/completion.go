package service

import (
	"context"
	"log/slog"

	"atrium/internal/domain/models"
	"atrium/internal/domain/repositories"
	"atrium/internal/domain/services"
)

type completionService struct {
	departmentRepo repositories.DepartmentRepository
	postRepo       repositories.PostRepository
	userRepo       repositories.UserRepository
	readRepo       repositories.ReadRecordRepository
	logger         *slog.Logger
}

// NewCompletionService creates a new read-completion monitor
func NewCompletionService(
	departmentRepo repositories.DepartmentRepository,
	postRepo repositories.PostRepository,
	userRepo repositories.UserRepository,
	readRepo repositories.ReadRecordRepository,
	logger *slog.Logger,
) services.CompletionService {
	return &completionService{
		departmentRepo: departmentRepo,
		postRepo:       postRepo,
		userRepo:       userRepo,
		readRepo:       readRepo,
		logger:         logger,
	}
}

// Report recomputes the cross-department incompleteness report from current
// data. A user's entitled set is their department's posts at or below their
// clearance level; they are incomplete when they have read fewer posts than
// that. Users with nothing to read are never reported, and departments where
// everyone is caught up are omitted entirely.
func (s *completionService) Report(ctx context.Context) ([]models.DepartmentCompletion, error) {
	departments, err := s.departmentRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	report := []models.DepartmentCompletion{}
	for _, dept := range departments {
		posts, err := s.postRepo.ListByDepartment(ctx, dept.ID)
		if err != nil {
			return nil, err
		}

		states, err := s.userRepo.ListReadStates(ctx, dept.ID)
		if err != nil {
			return nil, err
		}

		incomplete := []models.UserCompletion{}
		for _, state := range states {
			entitled := map[string]bool{}
			for _, post := range posts {
				if post.Level <= state.Level {
					entitled[post.ID] = true
				}
			}
			if len(entitled) == 0 {
				continue
			}

			// Reads of posts outside the entitled set do not count
			readCount := 0
			for _, postID := range state.ReadPostIDs {
				if entitled[postID] {
					readCount++
				}
			}
			if readCount >= len(entitled) {
				continue
			}

			incomplete = append(incomplete, models.UserCompletion{
				UserID:      state.UserID,
				ReadCount:   readCount,
				UnreadCount: len(entitled) - readCount,
			})
		}

		if len(incomplete) > 0 {
			report = append(report, models.DepartmentCompletion{
				DepartmentID: dept.ID,
				Name:         dept.Name,
				Users:        incomplete,
			})
		}
	}

	s.logger.Info("completion report built",
		"departments", len(departments),
		"departments_with_incomplete_users", len(report),
	)

	return report, nil
}

// MarkRead records that a user has read a post. Repeated calls for the same
// pair return the original record unchanged.
func (s *completionService) MarkRead(ctx context.Context, userID, postID string) (*models.ReadRecord, error) {
	record, err := s.readRepo.CreateOnce(ctx, userID, postID)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("read record ensured",
		"user_id", userID,
		"post_id", postID,
		"record_id", record.ID,
	)

	return record, nil
}

// HasRead returns the read record for a pair, or ErrNotFound
func (s *completionService) HasRead(ctx context.Context, userID, postID string) (*models.ReadRecord, error) {
	return s.readRepo.Get(ctx, userID, postID)
}
