package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atrium/internal/domain"
	"atrium/internal/domain/models"
)

func TestReportEntitlementMath(t *testing.T) {
	departmentRepo := &stubDepartmentRepo{departments: []models.Department{
		{ID: 1, Name: "Engineering"},
		{ID: 2, Name: "Sales"},
	}}

	postRepo := newStubPostRepo()
	postRepo.byDepartment[1] = []models.Post{
		{ID: "p1", Level: 0},
		{ID: "p2", Level: 1},
		{ID: "p3", Level: 3},
	}
	postRepo.byDepartment[2] = []models.Post{
		{ID: "p4", Level: 0},
	}

	userRepo := newStubUserRepo()
	userRepo.readStates[1] = []models.UserReadState{
		// entitled to p1+p2, read one: 1 unread
		{UserID: "behind", Level: 1, ReadPostIDs: []string{"p1"}},
		// entitled to p1 only and has read it: complete
		{UserID: "done", Level: 0, ReadPostIDs: []string{"p1"}},
		// reads outside the entitled set do not count
		{UserID: "stray", Level: 0, ReadPostIDs: []string{"p3", "elsewhere"}},
		// entitled to p1 only, read nothing: 1 unread
		{UserID: "fresh", Level: 0, ReadPostIDs: []string{}},
	}
	userRepo.readStates[2] = []models.UserReadState{
		{UserID: "sales-done", Level: 0, ReadPostIDs: []string{"p4"}},
	}

	svc := NewCompletionService(departmentRepo, postRepo, userRepo, newStubReadRecordRepo(), testLogger())

	report, err := svc.Report(context.Background())
	require.NoError(t, err)

	require.Len(t, report, 1, "departments with everyone caught up are omitted")
	assert.Equal(t, int64(1), report[0].DepartmentID)
	assert.Equal(t, "Engineering", report[0].Name)

	byUser := map[string]models.UserCompletion{}
	for _, u := range report[0].Users {
		byUser[u.UserID] = u
	}
	require.Len(t, byUser, 3)
	assert.Equal(t, 1, byUser["behind"].ReadCount)
	assert.Equal(t, 1, byUser["behind"].UnreadCount)
	assert.Equal(t, 0, byUser["fresh"].ReadCount)
	assert.Equal(t, 1, byUser["fresh"].UnreadCount)
	assert.Equal(t, 0, byUser["stray"].ReadCount)
	assert.Equal(t, 1, byUser["stray"].UnreadCount)
}

func TestReportSkipsUsersWithNothingToRead(t *testing.T) {
	departmentRepo := &stubDepartmentRepo{departments: []models.Department{
		{ID: 1, Name: "Engineering"},
	}}

	postRepo := newStubPostRepo()
	postRepo.byDepartment[1] = []models.Post{
		{ID: "p1", Level: 5},
	}

	userRepo := newStubUserRepo()
	userRepo.readStates[1] = []models.UserReadState{
		{UserID: "junior", Level: 0, ReadPostIDs: []string{}},
	}

	svc := NewCompletionService(departmentRepo, postRepo, userRepo, newStubReadRecordRepo(), testLogger())

	report, err := svc.Report(context.Background())
	require.NoError(t, err)
	assert.Empty(t, report, "a user entitled to nothing is never incomplete")
}

func TestMarkReadIsIdempotent(t *testing.T) {
	readRepo := newStubReadRecordRepo()
	svc := NewCompletionService(&stubDepartmentRepo{}, newStubPostRepo(), newStubUserRepo(), readRepo, testLogger())
	ctx := context.Background()

	first, err := svc.MarkRead(ctx, "u1", "p1")
	require.NoError(t, err)

	second, err := svc.MarkRead(ctx, "u1", "p1")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 1, readRepo.creates, "repeat marks reuse the original record")
}

func TestHasRead(t *testing.T) {
	readRepo := newStubReadRecordRepo()
	svc := NewCompletionService(&stubDepartmentRepo{}, newStubPostRepo(), newStubUserRepo(), readRepo, testLogger())
	ctx := context.Background()

	_, err := svc.HasRead(ctx, "u1", "p1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.MarkRead(ctx, "u1", "p1")
	require.NoError(t, err)

	rec, err := svc.HasRead(ctx, "u1", "p1")
	require.NoError(t, err)
	assert.True(t, rec.Acknowledged)
}
