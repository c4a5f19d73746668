package main

import (
	"context"
	_ "embed"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"atrium/internal/config"
	"atrium/internal/domain/services"
	"atrium/internal/repository/postgres"
	"atrium/internal/service"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

//go:embed fixtures.yaml
var fixturesYAML []byte

type fixtureSet struct {
	Departments []struct {
		Name string `yaml:"name"`
	} `yaml:"departments"`
	PostTypes []string        `yaml:"post_types"`
	Users     []fixtureUser   `yaml:"users"`
	Folders   []fixtureFolder `yaml:"folders"`
}

type fixtureUser struct {
	FirstName  string `yaml:"first_name"`
	MiddleName string `yaml:"middle_name"`
	LastName   string `yaml:"last_name"`
	Department string `yaml:"department"`
	Level      int    `yaml:"level"`
}

type fixtureFolder struct {
	Name                string          `yaml:"name"`
	Published           bool            `yaml:"published"`
	Description         string          `yaml:"description"`
	Color               string          `yaml:"color"`
	Departments         []string        `yaml:"departments"`
	BookmarkDepartments []string        `yaml:"bookmark_departments"`
	ProvisionDefaults   bool            `yaml:"provision_defaults"`
	Posts               []fixturePost   `yaml:"posts"`
	Children            []fixtureFolder `yaml:"children"`
}

type fixturePost struct {
	Title       string   `yaml:"title"`
	Message     string   `yaml:"message"`
	Type        string   `yaml:"type"`
	Level       int      `yaml:"level"`
	Published   bool     `yaml:"published"`
	Departments []string `yaml:"departments"`
}

func main() {
	// Parse command-line flags
	dropTables := flag.Bool("drop-tables", false, "Drop all tables before seeding (fresh start)")
	schemaOnly := flag.Bool("schema-only", false, "Only set up schema, don't seed fixtures")
	flag.Parse()

	// Load .env file
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// SAFETY: Prevent destructive operations in production
	if cfg.Environment == "prod" && *dropTables {
		log.Fatalf("BLOCKED: Cannot run --drop-tables in production environment")
	}

	// Setup logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	log.Printf("Seeding database (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)

	// Create database connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	// Create table names
	tables := postgres.NewTableNames(cfg.TablePrefix)

	// Drop tables if requested
	if *dropTables {
		log.Println("Dropping all tables...")
		if err := dropAllTables(ctx, pool, tables); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
		log.Println("Tables dropped")
	}

	// Run schema to ensure tables exist
	log.Println("Ensuring database schema is up to date...")
	if err := runSchema(ctx, pool, tables, cfg.TablePrefix); err != nil {
		log.Fatalf("Failed to run schema: %v", err)
	}
	log.Println("Schema ready")

	if *schemaOnly {
		log.Println("Schema setup complete (schema-only mode)")
		return
	}

	var fixtures fixtureSet
	if err := yaml.Unmarshal(fixturesYAML, &fixtures); err != nil {
		log.Fatalf("Failed to parse fixtures: %v", err)
	}

	// Create repositories and services
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	folderRepo := postgres.NewFolderRepository(repoConfig)
	postRepo := postgres.NewPostRepository(repoConfig)
	postTypeRepo := postgres.NewPostTypeRepository(repoConfig)
	userRepo := postgres.NewUserRepository(repoConfig)
	departmentRepo := postgres.NewDepartmentRepository(repoConfig)
	txManager := postgres.NewTransactionManager(pool)

	provisionService := service.NewProvisionService(folderRepo, postTypeRepo, logger)
	bookmarkService := service.NewBookmarkService(folderRepo, userRepo, logger)
	folderService := service.NewFolderService(folderRepo, postRepo, provisionService, bookmarkService, txManager, logger)
	postService := service.NewPostService(postRepo, folderRepo, txManager, logger)
	departmentService := service.NewDepartmentService(departmentRepo, logger)

	// Departments first; everything else references them by name
	log.Println("Seeding departments...")
	departmentIDs := make(map[string]int64, len(fixtures.Departments))
	for _, d := range fixtures.Departments {
		dept, err := departmentService.Create(ctx, &services.CreateDepartmentRequest{Name: d.Name})
		if err != nil {
			log.Printf("Skipping department %q: %v", d.Name, err)
			continue
		}
		departmentIDs[d.Name] = dept.ID
	}

	log.Println("Seeding post types...")
	if err := seedPostTypes(ctx, pool, tables, fixtures.PostTypes); err != nil {
		log.Fatalf("Failed to seed post types: %v", err)
	}
	postTypeIDs, err := loadPostTypeIDs(ctx, pool, tables)
	if err != nil {
		log.Fatalf("Failed to load post types: %v", err)
	}

	log.Println("Seeding users...")
	for _, u := range fixtures.Users {
		deptID, ok := departmentIDs[u.Department]
		if !ok {
			log.Printf("Skipping user %s %s: unknown department %q", u.FirstName, u.LastName, u.Department)
			continue
		}
		if err := seedUser(ctx, pool, tables, u, deptID); err != nil {
			log.Printf("Failed to create user %s %s: %v", u.FirstName, u.LastName, err)
		}
	}

	log.Println("Seeding folders and posts...")
	for _, f := range fixtures.Folders {
		if err := seedFolder(ctx, folderService, postService, f, nil, departmentIDs, postTypeIDs); err != nil {
			log.Printf("Failed to seed folder %q: %v", f.Name, err)
		}
	}

	log.Println("Seeding complete")
}

// seedFolder creates a folder (root when parentID is nil), its posts, and
// recursively its children.
func seedFolder(
	ctx context.Context,
	folderService services.FolderService,
	postService services.PostService,
	f fixtureFolder,
	parentID *string,
	departmentIDs map[string]int64,
	postTypeIDs map[string]int64,
) error {
	req := &services.CreateFolderRequest{
		Name:                f.Name,
		Description:         f.Description,
		Color:               f.Color,
		IsPublished:         f.Published,
		DepartmentIDs:       resolveDepartments(f.Departments, departmentIDs),
		ProvisionDefaults:   f.ProvisionDefaults,
		BookmarkDepartments: departmentList(f.BookmarkDepartments, departmentIDs),
	}

	var (
		folderID string
		err      error
	)
	if parentID == nil {
		folder, createErr := folderService.CreateRoot(ctx, req)
		if createErr != nil {
			return createErr
		}
		folderID = folder.ID
	} else {
		folder, createErr := folderService.CreateChild(ctx, *parentID, req)
		if createErr != nil {
			return createErr
		}
		folderID = folder.ID
	}

	for _, p := range f.Posts {
		typeID, ok := postTypeIDs[p.Type]
		if !ok {
			log.Printf("Skipping post %q: unknown post type %q", p.Title, p.Type)
			continue
		}
		_, err = postService.Create(ctx, &services.CreatePostRequest{
			Title:         p.Title,
			Message:       p.Message,
			FolderID:      &folderID,
			PostTypeID:    typeID,
			Level:         p.Level,
			IsPublished:   p.Published,
			DepartmentIDs: resolveDepartments(p.Departments, departmentIDs),
		})
		if err != nil {
			log.Printf("Failed to create post %q: %v", p.Title, err)
		}
	}

	for _, child := range f.Children {
		if err := seedFolder(ctx, folderService, postService, child, &folderID, departmentIDs, postTypeIDs); err != nil {
			log.Printf("Failed to seed folder %q: %v", child.Name, err)
		}
	}

	return nil
}

func resolveDepartments(names []string, departmentIDs map[string]int64) []int64 {
	ids := make([]int64, 0, len(names))
	for _, name := range names {
		if id, ok := departmentIDs[name]; ok {
			ids = append(ids, id)
		} else {
			log.Printf("Unknown department %q in fixture, skipping", name)
		}
	}
	return ids
}

// departmentList renders department names as the comma-delimited numeric id
// list the bookmark propagator accepts.
func departmentList(names []string, departmentIDs map[string]int64) string {
	parts := make([]string, 0, len(names))
	for _, name := range names {
		if id, ok := departmentIDs[name]; ok {
			parts = append(parts, strconv.FormatInt(id, 10))
		}
	}
	return strings.Join(parts, ",")
}

func seedUser(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames, u fixtureUser, deptID int64) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, first_name, middle_name, last_name, department_id, level)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, tables.Users)
	_, err := pool.Exec(ctx, query, uuid.NewString(), u.FirstName, u.MiddleName, u.LastName, deptID, u.Level)
	return err
}

func seedPostTypes(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames, names []string) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (name)
		VALUES ($1)
		ON CONFLICT (name) DO NOTHING
	`, tables.PostTypes)
	for _, name := range names {
		if _, err := pool.Exec(ctx, query, name); err != nil {
			return err
		}
	}
	return nil
}

func loadPostTypeIDs(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames) (map[string]int64, error) {
	rows, err := pool.Query(ctx, fmt.Sprintf(`SELECT id, name FROM %s`, tables.PostTypes))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make(map[string]int64)
	for rows.Next() {
		var (
			id   int64
			name string
		)
		if err := rows.Scan(&id, &name); err != nil {
			return nil, err
		}
		ids[name] = id
	}
	return ids, rows.Err()
}

// runSchema creates tables if they don't exist
func runSchema(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames, tablePrefix string) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS ` + tables.Departments + ` (
			id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS ` + tables.PostTypes + ` (
			id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
			name TEXT NOT NULL UNIQUE
		)`,
		`CREATE TABLE IF NOT EXISTS ` + tables.Users + ` (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			first_name TEXT NOT NULL,
			middle_name TEXT NOT NULL DEFAULT '',
			last_name TEXT NOT NULL,
			department_id BIGINT NOT NULL REFERENCES ` + tables.Departments + `(id),
			level INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS ` + tables.Folders + ` (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name TEXT NOT NULL,
			parent_id UUID REFERENCES ` + tables.Folders + `(id) ON DELETE CASCADE,
			is_published BOOLEAN NOT NULL DEFAULT FALSE,
			description TEXT NOT NULL DEFAULT '',
			color TEXT NOT NULL DEFAULT '',
			owner_id UUID REFERENCES ` + tables.Users + `(id) ON DELETE SET NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			deleted_at TIMESTAMPTZ
		)`,
		`CREATE TABLE IF NOT EXISTS ` + tables.FolderDepartments + ` (
			folder_id UUID NOT NULL REFERENCES ` + tables.Folders + `(id) ON DELETE CASCADE,
			department_id BIGINT NOT NULL REFERENCES ` + tables.Departments + `(id) ON DELETE CASCADE,
			PRIMARY KEY (folder_id, department_id)
		)`,
		`CREATE TABLE IF NOT EXISTS ` + tables.FolderBookmarks + ` (
			folder_id UUID NOT NULL REFERENCES ` + tables.Folders + `(id) ON DELETE CASCADE,
			user_id UUID NOT NULL REFERENCES ` + tables.Users + `(id) ON DELETE CASCADE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			PRIMARY KEY (folder_id, user_id)
		)`,
		`CREATE TABLE IF NOT EXISTS ` + tables.Posts + ` (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			title TEXT NOT NULL,
			message TEXT NOT NULL DEFAULT '',
			folder_id UUID REFERENCES ` + tables.Folders + `(id) ON DELETE SET NULL,
			post_type_id BIGINT NOT NULL REFERENCES ` + tables.PostTypes + `(id),
			level INTEGER NOT NULL DEFAULT 0,
			is_published BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS ` + tables.PostDepartments + ` (
			post_id UUID NOT NULL REFERENCES ` + tables.Posts + `(id) ON DELETE CASCADE,
			department_id BIGINT NOT NULL REFERENCES ` + tables.Departments + `(id) ON DELETE CASCADE,
			PRIMARY KEY (post_id, department_id)
		)`,
		`CREATE TABLE IF NOT EXISTS ` + tables.ReadRecords + ` (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			user_id UUID NOT NULL REFERENCES ` + tables.Users + `(id) ON DELETE CASCADE,
			post_id UUID NOT NULL REFERENCES ` + tables.Posts + `(id) ON DELETE CASCADE,
			acknowledged BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (user_id, post_id)
		)`,
	}

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}

	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `folders_parent ON ` + tables.Folders + `(parent_id) WHERE deleted_at IS NULL`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `posts_folder ON ` + tables.Posts + `(folder_id)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `users_department ON ` + tables.Users + `(department_id)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `read_records_post ON ` + tables.ReadRecords + `(post_id)`,
	}

	for _, indexSQL := range indexes {
		if _, err := pool.Exec(ctx, indexSQL); err != nil {
			return err
		}
	}

	return nil
}

// dropAllTables drops all tables in reverse order (to respect foreign keys)
func dropAllTables(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames) error {
	tableNames := []string{
		tables.ReadRecords,
		tables.PostDepartments,
		tables.Posts,
		tables.FolderBookmarks,
		tables.FolderDepartments,
		tables.Folders,
		tables.Users,
		tables.PostTypes,
		tables.Departments,
	}

	for _, table := range tableNames {
		dropSQL := "DROP TABLE IF EXISTS " + table + " CASCADE"
		if _, err := pool.Exec(ctx, dropSQL); err != nil {
			return err
		}
		log.Printf("  dropped %s", table)
	}

	return nil
}
