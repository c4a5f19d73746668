package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atrium/internal/domain"
	"atrium/internal/domain/models"
	"atrium/internal/domain/services"
)

// newSearchFixture returns a service whose repos yield, for the query "jo":
// a first-name match (3), a title match (3), a middle-name match (2) and a
// folder-name match (2), in that sorted order.
func newSearchFixture() services.SearchService {
	userRepo := newStubUserRepo()
	userRepo.searchHits = []models.User{
		{ID: "u-john", FirstName: "John", LastName: "Smith"},
		{ID: "u-marcus", FirstName: "Marcus", MiddleName: "Jon", LastName: "Okafor"},
	}

	folderRepo := newStubFolderRepo()
	folderRepo.searchHits = []models.Folder{
		{ID: "f-jobs", Name: "Job Postings", IsPublished: true},
	}

	postRepo := newStubPostRepo()
	postRepo.searchHits = []models.Post{
		{ID: "p-joint", Title: "Joint review", Message: "agenda", IsPublished: true},
	}

	return NewSearchService(userRepo, folderRepo, postRepo, testLogger())
}

func TestSearchScoringAndOrder(t *testing.T) {
	svc := newSearchFixture()

	results, err := svc.Search(context.Background(), &models.SearchOptions{Query: "jo"})
	require.NoError(t, err)

	assert.Equal(t, 4, results.Total)
	require.Len(t, results.Page, 4)

	// Descending score; the stable sort keeps users before folders before
	// posts among equal scores
	assert.Equal(t, "u-john", results.Page[0].ID)
	assert.Equal(t, 3, results.Page[0].Score)
	assert.Equal(t, "p-joint", results.Page[1].ID)
	assert.Equal(t, 3, results.Page[1].Score)
	assert.Equal(t, "u-marcus", results.Page[2].ID)
	assert.Equal(t, 2, results.Page[2].Score)
	assert.Equal(t, "f-jobs", results.Page[3].ID)
	assert.Equal(t, 2, results.Page[3].Score)

	assert.Equal(t, models.SearchKindUser, results.Page[0].Kind)
	assert.Equal(t, "John Smith", results.Page[0].Label)
	assert.Equal(t, "Marcus Jon Okafor", results.Page[2].Label)
}

func TestSearchPagination(t *testing.T) {
	svc := newSearchFixture()
	ctx := context.Background()

	results, err := svc.Search(ctx, &models.SearchOptions{Query: "jo", Skip: 0, Take: 1})
	require.NoError(t, err)
	assert.Equal(t, 4, results.Total, "total counts the whole collection, not the page")
	require.Len(t, results.Page, 1)
	assert.Equal(t, "u-john", results.Page[0].ID)

	results, err = svc.Search(ctx, &models.SearchOptions{Query: "jo", Skip: 1, Take: 2})
	require.NoError(t, err)
	require.Len(t, results.Page, 2)
	assert.Equal(t, "p-joint", results.Page[0].ID)
	assert.Equal(t, "u-marcus", results.Page[1].ID)

	results, err = svc.Search(ctx, &models.SearchOptions{Query: "jo", Skip: 100})
	require.NoError(t, err)
	assert.Equal(t, 4, results.Total)
	assert.Empty(t, results.Page)
}

func TestSearchEmptyQuery(t *testing.T) {
	svc := newSearchFixture()

	_, err := svc.Search(context.Background(), &models.SearchOptions{Query: ""})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestSearchRejectsOversizedTake(t *testing.T) {
	svc := newSearchFixture()

	_, err := svc.Search(context.Background(), &models.SearchOptions{
		Query: "jo",
		Take:  models.MaxSearchTake + 1,
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
}
