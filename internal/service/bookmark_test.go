package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atrium/internal/domain"
	"atrium/internal/domain/models"
)

func TestParseDepartmentList(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []int64
		wantErr bool
	}{
		{
			name:  "plain list",
			input: "1,2",
			want:  []int64{1, 2},
		},
		{
			name:  "whitespace tolerated",
			input: " 1 , 2 , 3 ",
			want:  []int64{1, 2, 3},
		},
		{
			name:  "blank entries skipped",
			input: "1,,2,",
			want:  []int64{1, 2},
		},
		{
			name:  "empty string",
			input: "",
			want:  []int64{},
		},
		{
			name:    "non-numeric entry",
			input:   "1,abc",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDepartmentList(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPropagateMissingFolder(t *testing.T) {
	svc := NewBookmarkService(newStubFolderRepo(), newStubUserRepo(), testLogger())

	_, err := svc.Propagate(context.Background(), "missing", "1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPropagateNoUsersIsNotAnError(t *testing.T) {
	folderRepo := newStubFolderRepo()
	folderRepo.add(models.Folder{ID: "f", Name: "Folder", IsPublished: true})

	svc := NewBookmarkService(folderRepo, newStubUserRepo(), testLogger())

	count, err := svc.Propagate(context.Background(), "f", "1,2")
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Empty(t, folderRepo.bookmarks["f"])
}

func TestPropagateEmptyListIsNotAnError(t *testing.T) {
	folderRepo := newStubFolderRepo()
	folderRepo.add(models.Folder{ID: "f", Name: "Folder", IsPublished: true})

	svc := NewBookmarkService(folderRepo, newStubUserRepo(), testLogger())

	count, err := svc.Propagate(context.Background(), "f", " , ")
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestPropagateBookmarksEveryMember(t *testing.T) {
	folderRepo := newStubFolderRepo()
	folderRepo.add(models.Folder{ID: "f", Name: "Folder", IsPublished: true})

	userRepo := newStubUserRepo()
	userRepo.byDepartment[1] = []models.User{
		{ID: "u1", DepartmentID: 1},
		{ID: "u2", DepartmentID: 1},
	}
	userRepo.byDepartment[2] = []models.User{
		{ID: "u3", DepartmentID: 2},
	}

	svc := NewBookmarkService(folderRepo, userRepo, testLogger())

	count, err := svc.Propagate(context.Background(), "f", "1,2")
	require.NoError(t, err)
	assert.Equal(t, 3, count)
	assert.ElementsMatch(t, []string{"u1", "u2", "u3"}, folderRepo.bookmarks["f"])
}
