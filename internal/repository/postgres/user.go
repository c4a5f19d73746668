package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"atrium/internal/domain"
	"atrium/internal/domain/models"
	"atrium/internal/domain/repositories"
)

// PostgresUserRepository implements the UserRepository interface
type PostgresUserRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewUserRepository creates a new user repository
func NewUserRepository(config *RepositoryConfig) repositories.UserRepository {
	return &PostgresUserRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

const userColumns = `u.id::text, u.first_name, u.middle_name, u.last_name, u.department_id, u.level, u.created_at`

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(
		&u.ID,
		&u.FirstName,
		&u.MiddleName,
		&u.LastName,
		&u.DepartmentID,
		&u.Level,
		&u.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByID retrieves a user by ID
func (r *PostgresUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s u WHERE u.id = $1`, userColumns, r.tables.Users)

	executor := GetExecutor(ctx, r.pool)
	user, err := scanUser(executor.QueryRow(ctx, query, id))
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	return user, nil
}

// ListByDepartments lists every user whose department is in the set
func (r *PostgresUserRepository) ListByDepartments(ctx context.Context, departmentIDs []int64) ([]models.User, error) {
	if len(departmentIDs) == 0 {
		return []models.User{}, nil
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s u
		WHERE u.department_id = ANY($1::bigint[])
		ORDER BY u.created_at
	`, userColumns, r.tables.Users)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, departmentIDs)
	if err != nil {
		return nil, fmt.Errorf("list users by departments: %w", err)
	}
	defer rows.Close()

	return collectUsers(rows)
}

// ListReadStates loads one department's users with their clearance levels
// and already-read post id sets in a single aggregated query.
func (r *PostgresUserRepository) ListReadStates(ctx context.Context, departmentID int64) ([]models.UserReadState, error) {
	query := fmt.Sprintf(`
		SELECT u.id::text, u.level,
		       COALESCE(ARRAY_AGG(rr.post_id::text) FILTER (WHERE rr.post_id IS NOT NULL), '{}')
		FROM %s u
		LEFT JOIN %s rr ON rr.user_id = u.id
		WHERE u.department_id = $1
		GROUP BY u.id
		ORDER BY u.id
	`, r.tables.Users, r.tables.ReadRecords)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, departmentID)
	if err != nil {
		return nil, fmt.Errorf("list read states: %w", err)
	}
	defer rows.Close()

	states := []models.UserReadState{}
	for rows.Next() {
		var s models.UserReadState
		if err := rows.Scan(&s.UserID, &s.Level, &s.ReadPostIDs); err != nil {
			return nil, fmt.Errorf("scan read state: %w", err)
		}
		states = append(states, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate read states: %w", err)
	}

	return states, nil
}

// Search finds users whose first, middle or last name contains the query
func (r *PostgresUserRepository) Search(ctx context.Context, query string) ([]models.User, error) {
	sql := fmt.Sprintf(`
		SELECT %s
		FROM %s u
		WHERE u.first_name ILIKE $1 OR u.middle_name ILIKE $1 OR u.last_name ILIKE $1
		ORDER BY u.created_at
	`, userColumns, r.tables.Users)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, sql, "%"+query+"%")
	if err != nil {
		return nil, fmt.Errorf("search users: %w", err)
	}
	defer rows.Close()

	return collectUsers(rows)
}

func collectUsers(rows pgx.Rows) ([]models.User, error) {
	users := []models.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, *user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}

	return users, nil
}
