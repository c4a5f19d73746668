package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"atrium/internal/auth"
	"atrium/internal/config"
	"atrium/internal/handler"
	"atrium/internal/middleware"
	"atrium/internal/repository/postgres"
	"atrium/internal/service"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
	)

	// Create JWT verifier
	jwtVerifier, err := auth.NewJWTVerifier(cfg.JWKSURL, logger)
	if err != nil {
		log.Fatalf("Failed to create JWT verifier: %v", err)
	}
	defer jwtVerifier.Close()

	// Create pgx connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	logger.Info("database connected",
		"max_conns", 25,
		"min_conns", 5,
	)

	// Create table names
	tables := postgres.NewTableNames(cfg.TablePrefix)

	// Create repositories
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
	readRecordRepo := postgres.NewReadRecordRepository(repoConfig)
	txManager := postgres.NewTransactionManager(pool)

	// Create services
	provisionService := service.NewProvisionService(folderRepo, postTypeRepo, logger)
	bookmarkService := service.NewBookmarkService(folderRepo, userRepo, logger)
	folderService := service.NewFolderService(folderRepo, postRepo, provisionService, bookmarkService, txManager, logger)
	postService := service.NewPostService(postRepo, folderRepo, txManager, logger)
	departmentService := service.NewDepartmentService(departmentRepo, logger)
	completionService := service.NewCompletionService(departmentRepo, postRepo, userRepo, readRecordRepo, logger)
	searchService := service.NewSearchService(userRepo, folderRepo, postRepo, logger)

	// Create handlers
	folderHandler := handler.NewFolderHandler(folderService, bookmarkService, logger)
	postHandler := handler.NewPostHandler(postService, logger)
	departmentHandler := handler.NewDepartmentHandler(departmentService, logger)
	completionHandler := handler.NewCompletionHandler(completionService, logger)
	searchHandler := handler.NewSearchHandler(searchService, logger)

	logger.Info("services initialized")

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", postHandler.HealthCheck)

	// Folder routes
	mux.HandleFunc("GET /api/folders", folderHandler.ListFolders)
	mux.HandleFunc("POST /api/folders", folderHandler.CreateFolder)
	mux.HandleFunc("GET /api/folders/{id}", folderHandler.GetFolder)
	mux.HandleFunc("PATCH /api/folders/{id}", folderHandler.UpdateFolder)
	mux.HandleFunc("DELETE /api/folders/{id}", folderHandler.DeleteFolder)
	mux.HandleFunc("POST /api/folders/{id}/children", folderHandler.CreateChildFolder)
	mux.HandleFunc("GET /api/folders/{id}/posts", folderHandler.GetFolderPosts)
	mux.HandleFunc("GET /api/folders/{id}/all-posts", folderHandler.GetFolderAllPosts)
	mux.HandleFunc("POST /api/folders/{id}/bookmarks", folderHandler.BookmarkFolder)

	// Post routes
	mux.HandleFunc("GET /api/posts", postHandler.ListPosts)
	mux.HandleFunc("POST /api/posts", postHandler.CreatePost)
	mux.HandleFunc("GET /api/posts/{id}", postHandler.GetPost)
	mux.HandleFunc("POST /api/posts/{id}/read", completionHandler.MarkRead)
	mux.HandleFunc("GET /api/posts/{id}/read", completionHandler.HasRead)

	// Department routes
	mux.HandleFunc("GET /api/departments", departmentHandler.ListDepartments)
	mux.HandleFunc("POST /api/departments", departmentHandler.CreateDepartment)
	mux.HandleFunc("GET /api/departments/completion", completionHandler.GetReport)

	// Search route
	mux.HandleFunc("GET /api/search", searchHandler.Search)

	// Build middleware chain
	var root http.Handler = mux

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS → Recovery → Auth → Routes
	root = middleware.Auth(jwtVerifier)(root)
	root = middleware.Recovery(logger)(root)

	// CORS - Must be before auth to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	})
	root = corsHandler.Handler(root)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      root,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server
	logger.Info("server listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}
