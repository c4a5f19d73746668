package service

import (
	"context"
	"log/slog"
	"time"
	"unicode"
	"unicode/utf8"

	"atrium/internal/domain/models"
	"atrium/internal/domain/repositories"
	"atrium/internal/domain/services"
)

type provisionService struct {
	folderRepo   repositories.FolderRepository
	postTypeRepo repositories.PostTypeRepository
	logger       *slog.Logger
}

// NewProvisionService creates a new default-subfolder provisioner
func NewProvisionService(
	folderRepo repositories.FolderRepository,
	postTypeRepo repositories.PostTypeRepository,
	logger *slog.Logger,
) services.ProvisionService {
	return &provisionService{
		folderRepo:   folderRepo,
		postTypeRepo: postTypeRepo,
		logger:       logger,
	}
}

// ProvisionDefaults creates one published child per known post type under
// the parent, inheriting its department scope and owner. The loop is
// best-effort: no transaction spans it, order among children is not
// guaranteed, and one failed creation does not block the rest.
func (s *provisionService) ProvisionDefaults(ctx context.Context, parent *models.Folder) (int, error) {
	types, err := s.postTypeRepo.List(ctx)
	if err != nil {
		return 0, err
	}

	created := 0
	for _, t := range types {
		now := time.Now()
		child := &models.Folder{
			Name:          CapitalizeFirst(t.Name),
			ParentID:      &parent.ID,
			IsPublished:   true,
			OwnerID:       parent.OwnerID,
			DepartmentIDs: parent.DepartmentIDs,
			CreatedAt:     now,
			UpdatedAt:     now,
		}

		if err := s.folderRepo.Create(ctx, child); err != nil {
			s.logger.Error("default subfolder creation failed",
				"parent_id", parent.ID,
				"name", child.Name,
				"error", err,
			)
			continue
		}

		s.logger.Debug("default subfolder created",
			"parent_id", parent.ID,
			"id", child.ID,
			"name", child.Name,
		)
		created++
	}

	return created, nil
}

// CapitalizeFirst upper-cases the first rune and leaves the rest unchanged:
// "memo" becomes "Memo", "notice board" becomes "Notice board".
func CapitalizeFirst(name string) string {
	if name == "" {
		return name
	}

	r, size := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError && size <= 1 {
		return name
	}

	return string(unicode.ToUpper(r)) + name[size:]
}
