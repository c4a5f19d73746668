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

// PostgresReadRecordRepository implements the ReadRecordRepository interface
type PostgresReadRecordRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewReadRecordRepository creates a new read record repository
func NewReadRecordRepository(config *RepositoryConfig) repositories.ReadRecordRepository {
	return &PostgresReadRecordRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

const readRecordColumns = `id::text, user_id::text, post_id::text, acknowledged, created_at, updated_at`

func scanReadRecord(row pgx.Row) (*models.ReadRecord, error) {
	var rec models.ReadRecord
	err := row.Scan(
		&rec.ID,
		&rec.UserID,
		&rec.PostID,
		&rec.Acknowledged,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// CreateOnce inserts a read record unless one already exists for the pair.
// The unique (user_id, post_id) constraint plus ON CONFLICT DO NOTHING make
// the operation idempotent; on conflict the original record is returned
// unchanged.
func (r *PostgresReadRecordRepository) CreateOnce(ctx context.Context, userID, postID string) (*models.ReadRecord, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (user_id, post_id, acknowledged)
		VALUES ($1, $2, TRUE)
		ON CONFLICT (user_id, post_id) DO NOTHING
		RETURNING %s
	`, r.tables.ReadRecords, readRecordColumns)

	executor := GetExecutor(ctx, r.pool)
	rec, err := scanReadRecord(executor.QueryRow(ctx, query, userID, postID))
	if err == nil {
		return rec, nil
	}

	if IsPgForeignKeyError(err) {
		return nil, fmt.Errorf("user or post: %w", domain.ErrNotFound)
	}
	if !IsPgNoRowsError(err) {
		return nil, fmt.Errorf("create read record: %w", err)
	}

	// Conflict path: the pair already has a record
	return r.Get(ctx, userID, postID)
}

// Get retrieves the record for a pair; ErrNotFound when absent
func (r *PostgresReadRecordRepository) Get(ctx context.Context, userID, postID string) (*models.ReadRecord, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE user_id = $1 AND post_id = $2
	`, readRecordColumns, r.tables.ReadRecords)

	executor := GetExecutor(ctx, r.pool)
	rec, err := scanReadRecord(executor.QueryRow(ctx, query, userID, postID))
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("read record for user %s post %s: %w", userID, postID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get read record: %w", err)
	}

	return rec, nil
}
