package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"atrium/internal/domain"
	"atrium/internal/domain/models"
	"atrium/internal/domain/repositories"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type noopTxManager struct{}

func (noopTxManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	return fn(ctx)
}

// stubFolderRepo is an in-memory FolderRepository. Folders added through
// add() or Create() are retrievable by id and listed under their parent.
type stubFolderRepo struct {
	folders    map[string]*models.Folder
	children   map[string][]models.Folder
	bookmarks  map[string][]string
	created    []*models.Folder
	failNames  map[string]bool
	searchHits []models.Folder
	nextID     int
}

func newStubFolderRepo() *stubFolderRepo {
	return &stubFolderRepo{
		folders:   map[string]*models.Folder{},
		children:  map[string][]models.Folder{},
		bookmarks: map[string][]string{},
		failNames: map[string]bool{},
	}
}

func (s *stubFolderRepo) add(f models.Folder) *models.Folder {
	s.folders[f.ID] = &f
	if f.ParentID != nil {
		s.children[*f.ParentID] = append(s.children[*f.ParentID], f)
	}
	return &f
}

func (s *stubFolderRepo) Create(ctx context.Context, folder *models.Folder) error {
	if s.failNames[folder.Name] {
		return errors.New("insert failed")
	}
	s.nextID++
	if folder.ID == "" {
		folder.ID = "folder-" + strconv.Itoa(s.nextID)
	}
	s.created = append(s.created, folder)
	s.add(*folder)
	return nil
}

func (s *stubFolderRepo) GetByID(ctx context.Context, id string) (*models.Folder, error) {
	f, ok := s.folders[id]
	if !ok {
		return nil, fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
	}
	out := *f
	return &out, nil
}

func (s *stubFolderRepo) Update(ctx context.Context, folder *models.Folder) error {
	if _, ok := s.folders[folder.ID]; !ok {
		return fmt.Errorf("folder %s: %w", folder.ID, domain.ErrNotFound)
	}
	out := *folder
	s.folders[folder.ID] = &out
	return nil
}

func (s *stubFolderRepo) Delete(ctx context.Context, id string) error {
	if _, ok := s.folders[id]; !ok {
		return fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
	}
	delete(s.folders, id)
	return nil
}

func (s *stubFolderRepo) ListChildren(ctx context.Context, parentID string) ([]models.Folder, error) {
	return s.children[parentID], nil
}

func (s *stubFolderRepo) ListRoots(ctx context.Context, filter models.FolderFilter) ([]models.Folder, int, error) {
	roots := []models.Folder{}
	for _, f := range s.folders {
		if f.ParentID == nil {
			roots = append(roots, *f)
		}
	}
	return roots, len(roots), nil
}

func (s *stubFolderRepo) AddBookmarks(ctx context.Context, folderID string, userIDs []string) error {
	s.bookmarks[folderID] = append(s.bookmarks[folderID], userIDs...)
	return nil
}

func (s *stubFolderRepo) SearchPublished(ctx context.Context, query string) ([]models.Folder, error) {
	return s.searchHits, nil
}

type stubPostRepo struct {
	posts        map[string]*models.Post
	byFolder     map[string][]models.Post
	byDepartment map[int64][]models.Post
	searchHits   []models.Post
	nextID       int
}

func newStubPostRepo() *stubPostRepo {
	return &stubPostRepo{
		posts:        map[string]*models.Post{},
		byFolder:     map[string][]models.Post{},
		byDepartment: map[int64][]models.Post{},
	}
}

func (s *stubPostRepo) add(p models.Post) *models.Post {
	s.posts[p.ID] = &p
	if p.FolderID != nil {
		s.byFolder[*p.FolderID] = append(s.byFolder[*p.FolderID], p)
	}
	return &p
}

func (s *stubPostRepo) Create(ctx context.Context, post *models.Post) error {
	s.nextID++
	if post.ID == "" {
		post.ID = "post-" + strconv.Itoa(s.nextID)
	}
	s.add(*post)
	return nil
}

func (s *stubPostRepo) GetByID(ctx context.Context, id string) (*models.Post, error) {
	p, ok := s.posts[id]
	if !ok {
		return nil, fmt.Errorf("post %s: %w", id, domain.ErrNotFound)
	}
	out := *p
	return &out, nil
}

func (s *stubPostRepo) ListByFolder(ctx context.Context, folderID string) ([]models.Post, error) {
	return s.byFolder[folderID], nil
}

func (s *stubPostRepo) ListByFolders(ctx context.Context, folderIDs []string) ([]models.Post, error) {
	posts := []models.Post{}
	for _, id := range folderIDs {
		posts = append(posts, s.byFolder[id]...)
	}
	return posts, nil
}

func (s *stubPostRepo) ListByDepartment(ctx context.Context, departmentID int64) ([]models.Post, error) {
	return s.byDepartment[departmentID], nil
}

func (s *stubPostRepo) SearchPublished(ctx context.Context, query string, departmentID *int64, minLevel int) ([]models.Post, error) {
	return s.searchHits, nil
}

type stubPostTypeRepo struct {
	types []models.PostType
}

func (s *stubPostTypeRepo) List(ctx context.Context) ([]models.PostType, error) {
	return s.types, nil
}

type stubUserRepo struct {
	users        map[string]*models.User
	byDepartment map[int64][]models.User
	readStates   map[int64][]models.UserReadState
	searchHits   []models.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{
		users:        map[string]*models.User{},
		byDepartment: map[int64][]models.User{},
		readStates:   map[int64][]models.UserReadState{},
	}
}

func (s *stubUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
	}
	out := *u
	return &out, nil
}

func (s *stubUserRepo) ListByDepartments(ctx context.Context, departmentIDs []int64) ([]models.User, error) {
	users := []models.User{}
	for _, id := range departmentIDs {
		users = append(users, s.byDepartment[id]...)
	}
	return users, nil
}

func (s *stubUserRepo) ListReadStates(ctx context.Context, departmentID int64) ([]models.UserReadState, error) {
	return s.readStates[departmentID], nil
}

func (s *stubUserRepo) Search(ctx context.Context, query string) ([]models.User, error) {
	return s.searchHits, nil
}

type stubDepartmentRepo struct {
	departments []models.Department
}

func (s *stubDepartmentRepo) Create(ctx context.Context, department *models.Department) error {
	department.ID = int64(len(s.departments) + 1)
	s.departments = append(s.departments, *department)
	return nil
}

func (s *stubDepartmentRepo) GetByID(ctx context.Context, id int64) (*models.Department, error) {
	for _, d := range s.departments {
		if d.ID == id {
			out := d
			return &out, nil
		}
	}
	return nil, fmt.Errorf("department %d: %w", id, domain.ErrNotFound)
}

func (s *stubDepartmentRepo) List(ctx context.Context) ([]models.Department, error) {
	return s.departments, nil
}

type stubReadRecordRepo struct {
	records map[string]*models.ReadRecord
	creates int
}

func newStubReadRecordRepo() *stubReadRecordRepo {
	return &stubReadRecordRepo{records: map[string]*models.ReadRecord{}}
}

func readKey(userID, postID string) string {
	return userID + "|" + postID
}

func (s *stubReadRecordRepo) CreateOnce(ctx context.Context, userID, postID string) (*models.ReadRecord, error) {
	if rec, ok := s.records[readKey(userID, postID)]; ok {
		out := *rec
		return &out, nil
	}
	s.creates++
	rec := &models.ReadRecord{
		ID:           "read-" + strconv.Itoa(s.creates),
		UserID:       userID,
		PostID:       postID,
		Acknowledged: true,
	}
	s.records[readKey(userID, postID)] = rec
	out := *rec
	return &out, nil
}

func (s *stubReadRecordRepo) Get(ctx context.Context, userID, postID string) (*models.ReadRecord, error) {
	rec, ok := s.records[readKey(userID, postID)]
	if !ok {
		return nil, fmt.Errorf("read record for user %s post %s: %w", userID, postID, domain.ErrNotFound)
	}
	out := *rec
	return &out, nil
}

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }
