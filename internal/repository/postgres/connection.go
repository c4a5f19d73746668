package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"atrium/internal/domain/repositories"
)

// RepositoryConfig holds configuration for repository implementations
type RepositoryConfig struct {
	Pool   *pgxpool.Pool
	Tables *TableNames
	Logger *slog.Logger
}

// TableNames holds dynamically prefixed table names
type TableNames struct {
	Departments       string
	PostTypes         string
	Users             string
	Folders           string
	FolderDepartments string
	FolderBookmarks   string
	Posts             string
	PostDepartments   string
	ReadRecords       string
}

// NewTableNames creates table names with the given prefix
func NewTableNames(prefix string) *TableNames {
	return &TableNames{
		Departments:       prefix + "departments",
		PostTypes:         prefix + "post_types",
		Users:             prefix + "users",
		Folders:           prefix + "folders",
		FolderDepartments: prefix + "folder_departments",
		FolderBookmarks:   prefix + "folder_bookmarks",
		Posts:             prefix + "posts",
		PostDepartments:   prefix + "post_departments",
		ReadRecords:       prefix + "read_records",
	}
}

// CreateConnectionPool creates a new pgx connection pool.
//
// If the connection goes through a transaction-pooling PgBouncer (port 6543),
// prepared statements break with "prepared statement already exists" errors,
// so QueryExecModeCacheDescribe is selected automatically there. An explicit
// default_query_exec_mode in the connection string takes precedence.
//
// The fmt.Sprintf table-name interpolation used by the repositories is safe
// with prepared statements because the SQL string is assembled before being
// sent; each environment prefix gets its own statements.
func CreateConnectionPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse connection string: %w", err)
	}

	config.MaxConns = 25
	config.MinConns = 5

	if config.ConnConfig.Port == 6543 && config.ConnConfig.DefaultQueryExecMode == pgx.QueryExecModeCacheStatement {
		config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeCacheDescribe
		slog.Debug("auto-configured cache_describe mode for PgBouncer compatibility", "port", 6543)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}

// GetExecutor returns the appropriate query executor for the context.
// If a transaction is present in the context, it returns the transaction;
// otherwise the pool. This lets repositories automatically participate in
// transactions when one exists.
func GetExecutor(ctx context.Context, pool *pgxpool.Pool) repositories.DBTX {
	if tx := repositories.GetTx(ctx); tx != nil {
		return tx
	}
	return pool
}
