package main

import (
	"context"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/Saikat257-ui/Smart-File-Organizer/internal/auth"
	"github.com/Saikat257-ui/Smart-File-Organizer/internal/config"
	"github.com/Saikat257-ui/Smart-File-Organizer/internal/domain/services"
	"github.com/Saikat257-ui/Smart-File-Organizer/internal/handler"
	"github.com/Saikat257-ui/Smart-File-Organizer/internal/middleware"
	"github.com/Saikat257-ui/Smart-File-Organizer/internal/repository/postgres"
	"github.com/Saikat257-ui/Smart-File-Organizer/internal/service"
	"github.com/Saikat257-ui/Smart-File-Organizer/internal/storage"
	"github.com/Saikat257-ui/Smart-File-Organizer/internal/tagging"

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

	logOutput := io.Writer(os.Stdout)
	if cfg.LogDir != "" {
		logFile, err := config.SetupLogFile(cfg.LogDir, cfg.LogMaxFiles)
		if err != nil {
			log.Fatalf("Failed to set up log file: %v", err)
		}
		defer logFile.Close()
		logOutput = io.MultiWriter(os.Stdout, logFile)
	}

	logger := slog.New(slog.NewJSONHandler(logOutput, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
	)

	// Create JWT verifier for Supabase authentication
	jwtVerifier, err := auth.NewJWTVerifier(cfg.SupabaseJWKSURL, logger)
	if err != nil {
		log.Fatalf("Failed to create JWT verifier: %v", err)
	}
	defer jwtVerifier.Close()

	// Create pgx connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.SupabaseDBURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	logger.Info("database connected")

	// Create object storage client
	objectStore, err := storage.NewMinioStore(ctx,
		cfg.StorageEndpoint,
		cfg.StorageAccessKey,
		cfg.StorageSecretKey,
		cfg.StorageBucket,
		cfg.StorageUseSSL,
		logger,
	)
	if err != nil {
		log.Fatalf("Failed to create object storage client: %v", err)
	}

	// Create repositories
	tables := postgres.NewTableNames(cfg.TablePrefix)
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	fileRepo := postgres.NewFileRepository(repoConfig)
	folderRepo := postgres.NewFolderRepository(repoConfig)

	// Create the tagging service: AI primary path when a key is configured,
	// rule-table fallback always
	ruleTable, err := tagging.LoadRuleTable()
	if err != nil {
		log.Fatalf("Failed to load fallback rule table: %v", err)
	}

	var primaryTagger services.Tagger
	if cfg.AnthropicAPIKey != "" {
		primaryTagger, err = tagging.NewAnthropicTagger(cfg.AnthropicAPIKey, cfg.TaggingModel)
		if err != nil {
			log.Fatalf("Failed to create AI tagger: %v", err)
		}
		logger.Info("AI tagging enabled", "model", cfg.TaggingModel)
	} else {
		logger.Warn("no Anthropic API key configured, tagging runs on fallback rules only")
	}
	tagger := tagging.NewService(primaryTagger, ruleTable, logger)

	// Create services
	fileService := service.NewFileService(fileRepo, folderRepo, objectStore, tagger, logger)
	folderService := service.NewFolderService(folderRepo, logger)
	organizer := service.NewOrganizerService(fileRepo, folderRepo, tagger, logger)

	// Create handlers
	fileHandler := handler.NewFileHandler(fileService, logger)
	folderHandler := handler.NewFolderHandler(folderService, logger)
	organizeHandler := handler.NewOrganizeHandler(organizer, logger)

	logger.Info("services initialized")

	// Create HTTP router
	mux := newRouter(fileHandler, folderHandler, organizeHandler)

	// Build middleware chain
	var root http.Handler = mux

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS → Recovery → Auth → Routes
	root = middleware.AuthMiddleware(jwtVerifier)(root)
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
		ReadTimeout:  60 * time.Second, // Uploads can be slow on bad links
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("server listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}
