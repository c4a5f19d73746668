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

// PostgresPostRepository implements the PostRepository interface
type PostgresPostRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewPostRepository creates a new post repository
func NewPostRepository(config *RepositoryConfig) repositories.PostRepository {
	return &PostgresPostRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

func (r *PostgresPostRepository) postColumns() string {
	return `
		p.id::text, p.title, p.message, p.folder_id::text, p.post_type_id,
		p.level, p.is_published,
		COALESCE(ARRAY_AGG(pd.department_id) FILTER (WHERE pd.department_id IS NOT NULL), '{}'),
		p.created_at, p.updated_at
	`
}

func scanPost(row pgx.Row) (*models.Post, error) {
	var p models.Post
	err := row.Scan(
		&p.ID,
		&p.Title,
		&p.Message,
		&p.FolderID,
		&p.PostTypeID,
		&p.Level,
		&p.IsPublished,
		&p.DepartmentIDs,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserts a post and its department associations
func (r *PostgresPostRepository) Create(ctx context.Context, post *models.Post) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (title, message, folder_id, post_type_id, level, is_published, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id::text, created_at, updated_at
	`, r.tables.Posts)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		post.Title,
		post.Message,
		post.FolderID,
		post.PostTypeID,
		post.Level,
		post.IsPublished,
		post.CreatedAt,
		post.UpdatedAt,
	).Scan(&post.ID, &post.CreatedAt, &post.UpdatedAt)

	if err != nil {
		if IsPgForeignKeyError(err) {
			return fmt.Errorf("post reference: %w", domain.ErrNotFound)
		}
		return fmt.Errorf("create post: %w", err)
	}

	if len(post.DepartmentIDs) > 0 {
		linkQuery := fmt.Sprintf(`
			INSERT INTO %s (post_id, department_id)
			SELECT $1::uuid, unnest($2::bigint[])
			ON CONFLICT DO NOTHING
		`, r.tables.PostDepartments)

		if _, err := executor.Exec(ctx, linkQuery, post.ID, post.DepartmentIDs); err != nil {
			if IsPgForeignKeyError(err) {
				return fmt.Errorf("department: %w", domain.ErrNotFound)
			}
			return fmt.Errorf("link post departments: %w", err)
		}
	}

	return nil
}

// GetByID retrieves a post by ID with its department set
func (r *PostgresPostRepository) GetByID(ctx context.Context, id string) (*models.Post, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s p
		LEFT JOIN %s pd ON pd.post_id = p.id
		WHERE p.id = $1
		GROUP BY p.id
	`, r.postColumns(), r.tables.Posts, r.tables.PostDepartments)

	executor := GetExecutor(ctx, r.pool)
	post, err := scanPost(executor.QueryRow(ctx, query, id))
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("post %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get post: %w", err)
	}

	return post, nil
}

// ListByFolder lists the posts directly inside one folder
func (r *PostgresPostRepository) ListByFolder(ctx context.Context, folderID string) ([]models.Post, error) {
	return r.ListByFolders(ctx, []string{folderID})
}

// ListByFolders lists the posts of several folders in one query
func (r *PostgresPostRepository) ListByFolders(ctx context.Context, folderIDs []string) ([]models.Post, error) {
	if len(folderIDs) == 0 {
		return []models.Post{}, nil
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s p
		LEFT JOIN %s pd ON pd.post_id = p.id
		WHERE p.folder_id = ANY($1::uuid[])
		GROUP BY p.id
		ORDER BY p.created_at
	`, r.postColumns(), r.tables.Posts, r.tables.PostDepartments)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, folderIDs)
	if err != nil {
		return nil, fmt.Errorf("list posts by folders: %w", err)
	}
	defer rows.Close()

	return collectPosts(rows)
}

// ListByDepartment lists every post associated with a department
func (r *PostgresPostRepository) ListByDepartment(ctx context.Context, departmentID int64) ([]models.Post, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s p
		LEFT JOIN %s pd ON pd.post_id = p.id
		WHERE EXISTS (SELECT 1 FROM %s x WHERE x.post_id = p.id AND x.department_id = $1)
		GROUP BY p.id
		ORDER BY p.created_at
	`, r.postColumns(), r.tables.Posts, r.tables.PostDepartments, r.tables.PostDepartments)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, departmentID)
	if err != nil {
		return nil, fmt.Errorf("list posts by department: %w", err)
	}
	defer rows.Close()

	return collectPosts(rows)
}

// SearchPublished finds published posts whose title or message contains the
// query, optionally scoped to a department, with level >= minLevel
func (r *PostgresPostRepository) SearchPublished(ctx context.Context, query string, departmentID *int64, minLevel int) ([]models.Post, error) {
	conds := []string{"p.is_published"}
	args := []interface{}{"%" + query + "%"}
	conds = append(conds, "(p.title ILIKE $1 OR p.message ILIKE $1)")

	args = append(args, minLevel)
	conds = append(conds, fmt.Sprintf("p.level >= $%d", len(args)))

	if departmentID != nil {
		args = append(args, *departmentID)
		conds = append(conds, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM %s x WHERE x.post_id = p.id AND x.department_id = $%d)",
			r.tables.PostDepartments, len(args)))
	}

	sql := fmt.Sprintf(`
		SELECT %s
		FROM %s p
		LEFT JOIN %s pd ON pd.post_id = p.id
		WHERE %s
		GROUP BY p.id
		ORDER BY p.created_at
	`, r.postColumns(), r.tables.Posts, r.tables.PostDepartments, strings.Join(conds, " AND "))

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("search posts: %w", err)
	}
	defer rows.Close()

	return collectPosts(rows)
}

func collectPosts(rows pgx.Rows) ([]models.Post, error) {
	posts := []models.Post{}
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, *post)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate posts: %w", err)
	}

	return posts, nil
}

// PostgresPostTypeRepository implements the PostTypeRepository interface
type PostgresPostTypeRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewPostTypeRepository creates a new post type repository
func NewPostTypeRepository(config *RepositoryConfig) repositories.PostTypeRepository {
	return &PostgresPostTypeRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// List lists all known post types
func (r *PostgresPostTypeRepository) List(ctx context.Context) ([]models.PostType, error) {
	query := fmt.Sprintf(`SELECT id, name FROM %s ORDER BY id`, r.tables.PostTypes)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list post types: %w", err)
	}
	defer rows.Close()

	types := []models.PostType{}
	for rows.Next() {
		var t models.PostType
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, fmt.Errorf("scan post type: %w", err)
		}
		types = append(types, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate post types: %w", err)
	}

	return types, nil
}
