package models

import "testing"

func int64Ptr(i int64) *int64 { return &i }

func intPtr(i int) *int { return &i }

func TestFolderVisible(t *testing.T) {
	tests := []struct {
		name   string
		folder Folder
		ctx    VisibilityContext
		want   bool
	}{
		{
			name:   "unrestricted sees drafts",
			folder: Folder{IsPublished: false},
			ctx:    Unrestricted(),
			want:   true,
		},
		{
			name:   "only published hides drafts",
			folder: Folder{IsPublished: false},
			ctx:    VisibilityContext{OnlyPublished: true},
			want:   false,
		},
		{
			name:   "only published passes published",
			folder: Folder{IsPublished: true},
			ctx:    VisibilityContext{OnlyPublished: true},
			want:   true,
		},
		{
			name:   "department match",
			folder: Folder{IsPublished: true, DepartmentIDs: []int64{1, 2}},
			ctx:    VisibilityContext{DepartmentID: int64Ptr(2)},
			want:   true,
		},
		{
			name:   "department mismatch",
			folder: Folder{IsPublished: true, DepartmentIDs: []int64{1, 2}},
			ctx:    VisibilityContext{DepartmentID: int64Ptr(3)},
			want:   false,
		},
		{
			name:   "unscoped folder fails a department-scoped view",
			folder: Folder{IsPublished: true},
			ctx:    VisibilityContext{DepartmentID: int64Ptr(1)},
			want:   false,
		},
		{
			name:   "viewer level does not constrain folders",
			folder: Folder{IsPublished: true},
			ctx:    VisibilityContext{ViewerLevel: intPtr(0)},
			want:   true,
		},
		{
			name:   "all conditions together",
			folder: Folder{IsPublished: true, DepartmentIDs: []int64{5}},
			ctx:    VisibilityContext{OnlyPublished: true, DepartmentID: int64Ptr(5), ViewerLevel: intPtr(0)},
			want:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FolderVisible(&tt.folder, tt.ctx); got != tt.want {
				t.Errorf("FolderVisible() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPostVisible(t *testing.T) {
	tests := []struct {
		name string
		post Post
		ctx  VisibilityContext
		want bool
	}{
		{
			name: "unrestricted sees everything",
			post: Post{IsPublished: false, Level: 9},
			ctx:  Unrestricted(),
			want: true,
		},
		{
			name: "only published hides drafts",
			post: Post{IsPublished: false},
			ctx:  VisibilityContext{OnlyPublished: true},
			want: false,
		},
		{
			name: "viewer below post level",
			post: Post{IsPublished: true, Level: 3},
			ctx:  VisibilityContext{ViewerLevel: intPtr(2)},
			want: false,
		},
		{
			name: "viewer at post level",
			post: Post{IsPublished: true, Level: 3},
			ctx:  VisibilityContext{ViewerLevel: intPtr(3)},
			want: true,
		},
		{
			name: "viewer above post level",
			post: Post{IsPublished: true, Level: 1},
			ctx:  VisibilityContext{ViewerLevel: intPtr(4)},
			want: true,
		},
		{
			name: "department mismatch",
			post: Post{IsPublished: true, DepartmentIDs: []int64{2}},
			ctx:  VisibilityContext{DepartmentID: int64Ptr(1)},
			want: false,
		},
		{
			name: "publish passes but level fails",
			post: Post{IsPublished: true, Level: 5},
			ctx:  VisibilityContext{OnlyPublished: true, ViewerLevel: intPtr(1)},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PostVisible(&tt.post, tt.ctx); got != tt.want {
				t.Errorf("PostVisible() = %v, want %v", got, tt.want)
			}
		})
	}
}
