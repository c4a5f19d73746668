package repositories

import (
	"context"

	"atrium/internal/domain/models"
)

// ReadRecordRepository defines data access for per-(user, post) read markers.
type ReadRecordRepository interface {
	// CreateOnce inserts a read record unless one already exists for the
	// pair, in which case the original record is returned unchanged.
	CreateOnce(ctx context.Context, userID, postID string) (*models.ReadRecord, error)

	// Get retrieves the record for a pair; ErrNotFound when absent
	Get(ctx context.Context, userID, postID string) (*models.ReadRecord, error)
}
