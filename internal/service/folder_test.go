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

func newFolderServiceForTest(folderRepo *stubFolderRepo, postRepo *stubPostRepo, userRepo *stubUserRepo, typeRepo *stubPostTypeRepo) services.FolderService {
	logger := testLogger()
	provisioner := NewProvisionService(folderRepo, typeRepo, logger)
	bookmarks := NewBookmarkService(folderRepo, userRepo, logger)
	return NewFolderService(folderRepo, postRepo, provisioner, bookmarks, noopTxManager{}, logger)
}

func TestFolderServiceGetDepthBounds(t *testing.T) {
	folderRepo := newStubFolderRepo()
	root := folderRepo.add(models.Folder{ID: "root", Name: "Root", IsPublished: true})
	c1 := folderRepo.add(models.Folder{ID: "c1", Name: "Level 1", ParentID: &root.ID, IsPublished: true})
	c2 := folderRepo.add(models.Folder{ID: "c2", Name: "Level 2", ParentID: &c1.ID, IsPublished: true})
	folderRepo.add(models.Folder{ID: "c3", Name: "Level 3", ParentID: &c2.ID, IsPublished: true})

	svc := newFolderServiceForTest(folderRepo, newStubPostRepo(), newStubUserRepo(), &stubPostTypeRepo{})
	ctx := context.Background()

	node, err := svc.Get(ctx, "root", 2, models.Unrestricted())
	require.NoError(t, err)
	require.Len(t, node.Folders, 1)
	require.Len(t, node.Folders[0].Folders, 1)
	assert.Empty(t, node.Folders[0].Folders[0].Folders, "depth 2 must stop above level 3")

	node, err = svc.Get(ctx, "root", 0, models.Unrestricted())
	require.NoError(t, err)
	assert.Empty(t, node.Folders, "depth 0 yields no nesting")

	// Requests beyond the configured maximum are capped, not rejected
	node, err = svc.Get(ctx, "root", 500, models.Unrestricted())
	require.NoError(t, err)
	assert.Len(t, node.Folders, 1)
}

func TestFolderServiceGetFiltersEachLevel(t *testing.T) {
	folderRepo := newStubFolderRepo()
	root := folderRepo.add(models.Folder{ID: "root", Name: "Root", IsPublished: true})
	visible := folderRepo.add(models.Folder{ID: "pub", Name: "Published", ParentID: &root.ID, IsPublished: true})
	folderRepo.add(models.Folder{ID: "draft", Name: "Draft", ParentID: &root.ID, IsPublished: false})
	folderRepo.add(models.Folder{ID: "pub-child", Name: "Nested", ParentID: &visible.ID, IsPublished: true})

	svc := newFolderServiceForTest(folderRepo, newStubPostRepo(), newStubUserRepo(), &stubPostTypeRepo{})
	vis := models.VisibilityContext{OnlyPublished: true}

	node, err := svc.Get(context.Background(), "root", 5, vis)
	require.NoError(t, err)
	require.Len(t, node.Folders, 1, "unpublished sibling is pruned")
	assert.Equal(t, "pub", node.Folders[0].ID)
	assert.Len(t, node.Folders[0].Folders, 1, "visible descendants of visible folders remain")
}

func TestFolderServiceGetHiddenFolderIsNotFound(t *testing.T) {
	folderRepo := newStubFolderRepo()
	folderRepo.add(models.Folder{ID: "draft", Name: "Draft", IsPublished: false})

	svc := newFolderServiceForTest(folderRepo, newStubPostRepo(), newStubUserRepo(), &stubPostTypeRepo{})

	_, err := svc.Get(context.Background(), "draft", 1, models.VisibilityContext{OnlyPublished: true})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFolderServiceCreateChildMissingParent(t *testing.T) {
	svc := newFolderServiceForTest(newStubFolderRepo(), newStubPostRepo(), newStubUserRepo(), &stubPostTypeRepo{})

	_, err := svc.CreateChild(context.Background(), "missing", &services.CreateFolderRequest{Name: "Child"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFolderServiceCreateRootValidation(t *testing.T) {
	svc := newFolderServiceForTest(newStubFolderRepo(), newStubPostRepo(), newStubUserRepo(), &stubPostTypeRepo{})

	_, err := svc.CreateRoot(context.Background(), &services.CreateFolderRequest{Name: ""})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestFolderServiceCreateChildSecondaryEffects(t *testing.T) {
	folderRepo := newStubFolderRepo()
	parent := folderRepo.add(models.Folder{ID: "parent", Name: "Parent", IsPublished: true})

	userRepo := newStubUserRepo()
	userRepo.byDepartment[1] = []models.User{
		{ID: "u1", FirstName: "John", LastName: "Smith", DepartmentID: 1},
		{ID: "u2", FirstName: "Joanna", LastName: "Mills", DepartmentID: 1},
	}

	typeRepo := &stubPostTypeRepo{types: []models.PostType{
		{ID: 1, Name: "memo"},
		{ID: 2, Name: "notice"},
	}}

	svc := newFolderServiceForTest(folderRepo, newStubPostRepo(), userRepo, typeRepo)

	folder, err := svc.CreateChild(context.Background(), parent.ID, &services.CreateFolderRequest{
		Name:                "Team Board",
		IsPublished:         true,
		DepartmentIDs:       []int64{1},
		ProvisionDefaults:   true,
		BookmarkDepartments: "1",
	})
	require.NoError(t, err)

	names := []string{}
	for _, f := range folderRepo.created {
		if f.ParentID != nil && *f.ParentID == folder.ID {
			names = append(names, f.Name)
		}
	}
	assert.ElementsMatch(t, []string{"Memo", "Notice"}, names)

	assert.ElementsMatch(t, []string{"u1", "u2"}, folderRepo.bookmarks[folder.ID])
}

func TestFolderServiceCreateRootSkipsProvisioning(t *testing.T) {
	folderRepo := newStubFolderRepo()
	typeRepo := &stubPostTypeRepo{types: []models.PostType{{ID: 1, Name: "memo"}}}

	svc := newFolderServiceForTest(folderRepo, newStubPostRepo(), newStubUserRepo(), typeRepo)

	folder, err := svc.CreateRoot(context.Background(), &services.CreateFolderRequest{
		Name:              "Root Board",
		ProvisionDefaults: true,
	})
	require.NoError(t, err)

	assert.Empty(t, folderRepo.children[folder.ID], "provisioning only runs for child folders")
}

func TestFolderServiceCollectPostsOneLevel(t *testing.T) {
	folderRepo := newStubFolderRepo()
	root := folderRepo.add(models.Folder{ID: "root", Name: "Root", IsPublished: true})
	child := folderRepo.add(models.Folder{ID: "child", Name: "Child", ParentID: &root.ID, IsPublished: true})
	folderRepo.add(models.Folder{ID: "hidden", Name: "Hidden", ParentID: &root.ID, IsPublished: false})
	grandchild := folderRepo.add(models.Folder{ID: "grand", Name: "Grandchild", ParentID: &child.ID, IsPublished: true})

	postRepo := newStubPostRepo()
	postRepo.add(models.Post{ID: "p1", Title: "Root post", FolderID: &root.ID, IsPublished: true})
	postRepo.add(models.Post{ID: "p2", Title: "Child post", FolderID: &child.ID, IsPublished: true})
	postRepo.add(models.Post{ID: "p3", Title: "Child draft", FolderID: &child.ID, IsPublished: false})
	postRepo.add(models.Post{ID: "p4", Title: "Hidden post", FolderID: strPtr("hidden"), IsPublished: true})
	postRepo.add(models.Post{ID: "p5", Title: "Too deep", FolderID: &grandchild.ID, IsPublished: true})

	svc := newFolderServiceForTest(folderRepo, postRepo, newStubUserRepo(), &stubPostTypeRepo{})

	posts, err := svc.CollectPosts(context.Background(), "root", models.VisibilityContext{OnlyPublished: true})
	require.NoError(t, err)

	ids := []string{}
	for _, p := range posts {
		ids = append(ids, p.ID)
	}
	assert.ElementsMatch(t, []string{"p1", "p2"}, ids)
}

func TestFolderServicePostsAppliesLevel(t *testing.T) {
	folderRepo := newStubFolderRepo()
	root := folderRepo.add(models.Folder{ID: "root", Name: "Root", IsPublished: true})

	postRepo := newStubPostRepo()
	postRepo.add(models.Post{ID: "low", Title: "General", FolderID: &root.ID, Level: 0, IsPublished: true})
	postRepo.add(models.Post{ID: "high", Title: "Restricted", FolderID: &root.ID, Level: 3, IsPublished: true})

	svc := newFolderServiceForTest(folderRepo, postRepo, newStubUserRepo(), &stubPostTypeRepo{})
	vis := models.VisibilityContext{OnlyPublished: true, ViewerLevel: intPtr(1)}

	posts, err := svc.Posts(context.Background(), "root", vis)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "low", posts[0].ID)
}

func TestFolderServiceUpdateRequiresAField(t *testing.T) {
	folderRepo := newStubFolderRepo()
	folderRepo.add(models.Folder{ID: "f", Name: "Folder", IsPublished: true})

	svc := newFolderServiceForTest(folderRepo, newStubPostRepo(), newStubUserRepo(), &stubPostTypeRepo{})

	_, err := svc.Update(context.Background(), "f", &services.UpdateFolderRequest{})
	assert.ErrorIs(t, err, domain.ErrValidation)

	updated, err := svc.Update(context.Background(), "f", &services.UpdateFolderRequest{Name: strPtr("  Renamed  ")})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
}
