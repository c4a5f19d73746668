package services

import (
	"context"

	"atrium/internal/domain/models"
)

// SearchService runs the cross-entity weighted substring search over users,
// published folders and published posts, merging the hits into one
// score-ranked, paginated collection.
type SearchService interface {
	Search(ctx context.Context, opts *models.SearchOptions) (*models.SearchResults, error)
}
