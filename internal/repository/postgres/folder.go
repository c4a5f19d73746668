package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"atrium/internal/domain"
	"atrium/internal/domain/models"
	"atrium/internal/domain/repositories"
)

// PostgresFolderRepository implements the FolderRepository interface
type PostgresFolderRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewFolderRepository creates a new folder repository
func NewFolderRepository(config *RepositoryConfig) repositories.FolderRepository {
	return &PostgresFolderRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// folderColumns is the SELECT list shared by every folder query. Department
// ids are aggregated alongside so the visibility predicate can run on the
// loaded record.
func (r *PostgresFolderRepository) folderColumns() string {
	return `
		f.id::text, f.name, f.parent_id::text, f.is_published,
		f.description, f.color, f.owner_id::text,
		COALESCE(ARRAY_AGG(fd.department_id) FILTER (WHERE fd.department_id IS NOT NULL), '{}'),
		f.created_at, f.updated_at
	`
}

func scanFolder(row pgx.Row) (*models.Folder, error) {
	var f models.Folder
	err := row.Scan(
		&f.ID,
		&f.Name,
		&f.ParentID,
		&f.IsPublished,
		&f.Description,
		&f.Color,
		&f.OwnerID,
		&f.DepartmentIDs,
		&f.CreatedAt,
		&f.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// Create inserts a folder and its department associations. Callers wrap it
// in a transaction when the association set must land atomically with the row.
func (r *PostgresFolderRepository) Create(ctx context.Context, folder *models.Folder) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (name, parent_id, is_published, description, color, owner_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id::text, created_at, updated_at
	`, r.tables.Folders)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		folder.Name,
		folder.ParentID,
		folder.IsPublished,
		folder.Description,
		folder.Color,
		folder.OwnerID,
		folder.CreatedAt,
		folder.UpdatedAt,
	).Scan(&folder.ID, &folder.CreatedAt, &folder.UpdatedAt)

	if err != nil {
		if IsPgForeignKeyError(err) {
			return fmt.Errorf("parent folder: %w", domain.ErrNotFound)
		}
		return fmt.Errorf("create folder: %w", err)
	}

	if len(folder.DepartmentIDs) > 0 {
		linkQuery := fmt.Sprintf(`
			INSERT INTO %s (folder_id, department_id)
			SELECT $1::uuid, unnest($2::bigint[])
			ON CONFLICT DO NOTHING
		`, r.tables.FolderDepartments)

		if _, err := executor.Exec(ctx, linkQuery, folder.ID, folder.DepartmentIDs); err != nil {
			if IsPgForeignKeyError(err) {
				return fmt.Errorf("department: %w", domain.ErrNotFound)
			}
			return fmt.Errorf("link folder departments: %w", err)
		}
	}

	return nil
}

// GetByID retrieves a folder by ID with its department set
func (r *PostgresFolderRepository) GetByID(ctx context.Context, id string) (*models.Folder, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s f
		LEFT JOIN %s fd ON fd.folder_id = f.id
		WHERE f.id = $1 AND f.deleted_at IS NULL
		GROUP BY f.id
	`, r.folderColumns(), r.tables.Folders, r.tables.FolderDepartments)

	executor := GetExecutor(ctx, r.pool)
	folder, err := scanFolder(executor.QueryRow(ctx, query, id))
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get folder: %w", err)
	}

	return folder, nil
}

// Update persists name and display metadata changes
func (r *PostgresFolderRepository) Update(ctx context.Context, folder *models.Folder) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET name = $1, description = $2, color = $3, is_published = $4, updated_at = $5
		WHERE id = $6 AND deleted_at IS NULL
	`, r.tables.Folders)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query,
		folder.Name,
		folder.Description,
		folder.Color,
		folder.IsPublished,
		folder.UpdatedAt,
		folder.ID,
	)
	if err != nil {
		return fmt.Errorf("update folder: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("folder %s: %w", folder.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete soft-deletes a folder. Descendant cleanup is an external concern.
func (r *PostgresFolderRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET deleted_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`, r.tables.Folders)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete folder: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// ListChildren lists the immediate child folders of parentID
func (r *PostgresFolderRepository) ListChildren(ctx context.Context, parentID string) ([]models.Folder, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s f
		LEFT JOIN %s fd ON fd.folder_id = f.id
		WHERE f.parent_id = $1 AND f.deleted_at IS NULL
		GROUP BY f.id
		ORDER BY f.created_at
	`, r.folderColumns(), r.tables.Folders, r.tables.FolderDepartments)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, parentID)
	if err != nil {
		return nil, fmt.Errorf("list child folders: %w", err)
	}
	defer rows.Close()

	return collectFolders(rows)
}

// ListRoots lists root-level folders matching the filter plus the
// unpaginated match count. Filter dimensions compose into WHERE conditions
// one by one; absent dimensions add nothing.
func (r *PostgresFolderRepository) ListRoots(ctx context.Context, filter models.FolderFilter) ([]models.Folder, int, error) {
	conds := []string{"f.parent_id IS NULL", "f.deleted_at IS NULL"}
	var args []interface{}

	if filter.NameContains != nil {
		args = append(args, "%"+*filter.NameContains+"%")
		conds = append(conds, fmt.Sprintf("f.name ILIKE $%d", len(args)))
	}
	if filter.DepartmentID != nil {
		args = append(args, *filter.DepartmentID)
		conds = append(conds, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM %s x WHERE x.folder_id = f.id AND x.department_id = $%d)",
			r.tables.FolderDepartments, len(args)))
	}
	if filter.OnlyPublished {
		conds = append(conds, "f.is_published")
	}

	where := strings.Join(conds, " AND ")
	executor := GetExecutor(ctx, r.pool)

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s f WHERE %s`, r.tables.Folders, where)
	var total int
	if err := executor.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count root folders: %w", err)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	args = append(args, limit)
	limitPos := len(args)
	args = append(args, filter.Offset)
	offsetPos := len(args)

	listQuery := fmt.Sprintf(`
		SELECT %s
		FROM %s f
		LEFT JOIN %s fd ON fd.folder_id = f.id
		WHERE %s
		GROUP BY f.id
		ORDER BY f.created_at
		LIMIT $%d OFFSET $%d
	`, r.folderColumns(), r.tables.Folders, r.tables.FolderDepartments, where, limitPos, offsetPos)

	rows, err := executor.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list root folders: %w", err)
	}
	defer rows.Close()

	folders, err := collectFolders(rows)
	if err != nil {
		return nil, 0, err
	}

	return folders, total, nil
}

// AddBookmarks attaches the folder to each user's bookmark set.
// ON CONFLICT DO NOTHING makes repeat propagation a no-op (set union).
func (r *PostgresFolderRepository) AddBookmarks(ctx context.Context, folderID string, userIDs []string) error {
	if len(userIDs) == 0 {
		return nil
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (folder_id, user_id)
		SELECT $1::uuid, unnest($2::uuid[])
		ON CONFLICT DO NOTHING
	`, r.tables.FolderBookmarks)

	executor := GetExecutor(ctx, r.pool)
	if _, err := executor.Exec(ctx, query, folderID, userIDs); err != nil {
		if IsPgForeignKeyError(err) {
			return fmt.Errorf("folder %s: %w", folderID, domain.ErrNotFound)
		}
		return fmt.Errorf("add bookmarks: %w", err)
	}

	return nil
}

// SearchPublished finds published folders whose name contains the query
func (r *PostgresFolderRepository) SearchPublished(ctx context.Context, query string) ([]models.Folder, error) {
	sql := fmt.Sprintf(`
		SELECT %s
		FROM %s f
		LEFT JOIN %s fd ON fd.folder_id = f.id
		WHERE f.name ILIKE $1 AND f.is_published AND f.deleted_at IS NULL
		GROUP BY f.id
		ORDER BY f.created_at
	`, r.folderColumns(), r.tables.Folders, r.tables.FolderDepartments)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, sql, "%"+query+"%")
	if err != nil {
		return nil, fmt.Errorf("search folders: %w", err)
	}
	defer rows.Close()

	return collectFolders(rows)
}

func collectFolders(rows pgx.Rows) ([]models.Folder, error) {
	folders := []models.Folder{}
	for rows.Next() {
		folder, err := scanFolder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan folder: %w", err)
		}
		folders = append(folders, *folder)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate folders: %w", err)
	}

	return folders, nil
}
