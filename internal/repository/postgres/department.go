package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"atrium/internal/domain"
	"atrium/internal/domain/models"
	"atrium/internal/domain/repositories"
)

// PostgresDepartmentRepository implements the DepartmentRepository interface
type PostgresDepartmentRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewDepartmentRepository creates a new department repository
func NewDepartmentRepository(config *RepositoryConfig) repositories.DepartmentRepository {
	return &PostgresDepartmentRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create inserts a department; a duplicate name yields a ConflictError
// carrying the existing department's id.
func (r *PostgresDepartmentRepository) Create(ctx context.Context, department *models.Department) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (name)
		VALUES ($1)
		RETURNING id, created_at
	`, r.tables.Departments)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, department.Name).Scan(&department.ID, &department.CreatedAt)

	if err != nil {
		if IsPgDuplicateError(err) {
			existingID, queryErr := r.getExistingDepartmentID(ctx, department.Name)
			if queryErr != nil {
				return fmt.Errorf("department '%s' already exists: %w", department.Name, domain.ErrConflict)
			}
			return &domain.ConflictError{
				Message:      fmt.Sprintf("department '%s' already exists", department.Name),
				ResourceType: "department",
				ResourceID:   existingID,
			}
		}
		return fmt.Errorf("create department: %w", err)
	}

	return nil
}

// GetByID retrieves a department by ID
func (r *PostgresDepartmentRepository) GetByID(ctx context.Context, id int64) (*models.Department, error) {
	query := fmt.Sprintf(`
		SELECT id, name, created_at
		FROM %s
		WHERE id = $1
	`, r.tables.Departments)

	var department models.Department
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, id).Scan(
		&department.ID,
		&department.Name,
		&department.CreatedAt,
	)

	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("department %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get department: %w", err)
	}

	return &department, nil
}

// List lists all departments ordered by id
func (r *PostgresDepartmentRepository) List(ctx context.Context) ([]models.Department, error) {
	query := fmt.Sprintf(`
		SELECT id, name, created_at
		FROM %s
		ORDER BY id
	`, r.tables.Departments)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list departments: %w", err)
	}
	defer rows.Close()

	departments := []models.Department{}
	for rows.Next() {
		var department models.Department
		if err := rows.Scan(&department.ID, &department.Name, &department.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan department: %w", err)
		}
		departments = append(departments, department)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate departments: %w", err)
	}

	return departments, nil
}

func (r *PostgresDepartmentRepository) getExistingDepartmentID(ctx context.Context, name string) (string, error) {
	query := fmt.Sprintf(`SELECT id::text FROM %s WHERE name = $1`, r.tables.Departments)

	var id string
	executor := GetExecutor(ctx, r.pool)
	if err := executor.QueryRow(ctx, query, name).Scan(&id); err != nil {
		return "", fmt.Errorf("get existing department ID: %w", err)
	}

	return id, nil
}
