package services

import (
	"context"

	"atrium/internal/domain/models"
)

// CompletionService reports, per department, which users have acknowledged
// fewer posts than their clearance entitles them to. The aggregate is always
// recomputed on demand from current data, never cached.
type CompletionService interface {
	// Report builds the cross-department incompleteness report
	Report(ctx context.Context) ([]models.DepartmentCompletion, error)

	// MarkRead records that a user has read a post; repeated calls for the
	// same pair return the original record unchanged
	MarkRead(ctx context.Context, userID, postID string) (*models.ReadRecord, error)

	// HasRead returns the read record for a pair, or ErrNotFound
	HasRead(ctx context.Context, userID, postID string) (*models.ReadRecord, error)
}
