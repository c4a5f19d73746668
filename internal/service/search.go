package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"atrium/internal/domain"
	"atrium/internal/domain/models"
	"atrium/internal/domain/repositories"
	"atrium/internal/domain/services"
)

type searchService struct {
	userRepo   repositories.UserRepository
	folderRepo repositories.FolderRepository
	postRepo   repositories.PostRepository
	logger     *slog.Logger
}

// NewSearchService creates a new cross-entity search service
func NewSearchService(
	userRepo repositories.UserRepository,
	folderRepo repositories.FolderRepository,
	postRepo repositories.PostRepository,
	logger *slog.Logger,
) services.SearchService {
	return &searchService{
		userRepo:   userRepo,
		folderRepo: folderRepo,
		postRepo:   postRepo,
		logger:     logger,
	}
}

// Search runs the three substring lookups, scores every hit by summing the
// weights of its matching fields, merges the hits (users before folders
// before posts), sorts by descending score with a stable tie-break, and
// pages the sorted collection.
func (s *searchService) Search(ctx context.Context, opts *models.SearchOptions) (*models.SearchResults, error) {
	opts.ApplyDefaults()
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	needle := strings.ToLower(opts.Query)
	hits := []models.SearchHit{}

	users, err := s.userRepo.Search(ctx, opts.Query)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		score := 0
		if containsFold(u.FirstName, needle) {
			score += models.WeightUserFirstName
		}
		if containsFold(u.MiddleName, needle) {
			score += models.WeightUserMiddleName
		}
		if containsFold(u.LastName, needle) {
			score += models.WeightUserLastName
		}
		if score == 0 {
			continue
		}
		hits = append(hits, models.SearchHit{
			Kind:  models.SearchKindUser,
			ID:    u.ID,
			Label: displayName(u),
			Score: score,
		})
	}

	folders, err := s.folderRepo.SearchPublished(ctx, opts.Query)
	if err != nil {
		return nil, err
	}
	for _, f := range folders {
		if !containsFold(f.Name, needle) {
			continue
		}
		hits = append(hits, models.SearchHit{
			Kind:  models.SearchKindFolder,
			ID:    f.ID,
			Label: f.Name,
			Score: models.WeightFolderName,
		})
	}

	posts, err := s.postRepo.SearchPublished(ctx, opts.Query, opts.DepartmentID, opts.MinLevel)
	if err != nil {
		return nil, err
	}
	for _, p := range posts {
		score := 0
		if containsFold(p.Title, needle) {
			score += models.WeightPostTitle
		}
		if containsFold(p.Message, needle) {
			score += models.WeightPostMessage
		}
		if score == 0 {
			continue
		}
		hits = append(hits, models.SearchHit{
			Kind:  models.SearchKindPost,
			ID:    p.ID,
			Label: p.Title,
			Score: score,
		})
	}

	// Stable sort preserves the users/folders/posts production order among
	// equal scores, which makes pagination deterministic.
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Score > hits[j].Score
	})

	total := len(hits)
	page := paginateHits(hits, opts.Skip, opts.Take)

	s.logger.Debug("search completed",
		"query", opts.Query,
		"total", total,
		"returned", len(page),
	)

	return &models.SearchResults{
		Total: total,
		Skip:  opts.Skip,
		Take:  opts.Take,
		Page:  page,
	}, nil
}

func paginateHits(hits []models.SearchHit, skip, take int) []models.SearchHit {
	if skip >= len(hits) {
		return []models.SearchHit{}
	}
	end := skip + take
	if end > len(hits) {
		end = len(hits)
	}
	return hits[skip:end]
}

func containsFold(haystack, lowerNeedle string) bool {
	if haystack == "" {
		return false
	}
	return strings.Contains(strings.ToLower(haystack), lowerNeedle)
}

func displayName(u models.User) string {
	parts := []string{u.FirstName}
	if u.MiddleName != "" {
		parts = append(parts, u.MiddleName)
	}
	if u.LastName != "" {
		parts = append(parts, u.LastName)
	}
	return strings.Join(parts, " ")
}
