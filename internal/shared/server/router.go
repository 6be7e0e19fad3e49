package server

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/demotokens"
	"resume-builder/internal/files"
	"resume-builder/internal/folders"
	"resume-builder/internal/generation"
	"resume-builder/internal/llm"
	"resume-builder/internal/llm/ollama"
	"resume-builder/internal/profiles"
	"resume-builder/internal/shared/config"
	"resume-builder/internal/shared/server/middleware"
	"resume-builder/internal/shared/server/respond"
	"resume-builder/internal/shared/storage/db"
	"resume-builder/internal/shared/storage/object"
	memstore "resume-builder/internal/shared/storage/object/memory"
	s3store "resume-builder/internal/shared/storage/object/s3"
	"resume-builder/internal/users"
)

// NewRouter constructs the Gin engine with middleware and routes registered.
// In production a configured but unusable database is a startup error; other
// environments fall back to in-memory repositories.
func NewRouter(cfg config.Config) (*gin.Engine, error) {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
	)

	// Dependencies
	var sqlDB *sql.DB
	if cfg.DatabaseURL != "" {
		dbConn, err := db.Connect(context.Background(), cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
		if err == nil {
			if mErr := db.RunMigrations(context.Background(), dbConn); mErr != nil {
				dbConn.Close()
				dbConn = nil
				err = mErr
			}
		}
		if err != nil {
			if cfg.Env == "production" {
				return nil, fmt.Errorf("database unavailable: %w", err)
			}
			log.Printf("failed to prepare database, falling back to memory: %v", err)
		}
		sqlDB = dbConn
	}

	var store object.Store
	if cfg.ObjectStoreType == "s3" {
		s3Store, err := s3store.New(context.Background(), s3store.Config{
			Endpoint:  cfg.S3Endpoint,
			PublicURL: cfg.S3PublicURL,
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			UseSSL:    cfg.S3UseSSL,
		})
		if err != nil {
			log.Printf("failed to init s3 store, falling back to memory: %v", err)
			store = memstore.New(cfg.S3Bucket, cfg.S3PublicURL)
		} else {
			store = s3Store
		}
	} else {
		store = memstore.New(cfg.S3Bucket, cfg.S3PublicURL)
	}

	var (
		userRepo    users.Repo
		profileRepo profiles.Repo
		folderRepo  folders.Repo
		fileRepo    files.Repo
		tokenRepo   demotokens.Repo
	)
	if sqlDB != nil {
		userRepo = &users.PGRepo{DB: sqlDB}
		profileRepo = &profiles.PGRepo{DB: sqlDB}
		folderRepo = &folders.PGRepo{DB: sqlDB}
		fileRepo = &files.PGRepo{DB: sqlDB}
		tokenRepo = &demotokens.PGRepo{DB: sqlDB}
	} else {
		userRepo = users.NewMemoryRepo()
		profileRepo = profiles.NewMemoryRepo()
		folderRepo = folders.NewMemoryRepo()
		fileRepo = files.NewMemoryRepo()
		tokenRepo = demotokens.NewMemoryRepo()
	}

	// A nil generator makes the pipeline answer every run with a single
	// terminal error event instead of limping through degraded sections.
	var generator llm.Generator
	if cfg.OllamaHost != "" && cfg.OllamaModel != "" {
		client, err := ollama.NewClient(cfg.OllamaHost, cfg.OllamaPort, cfg.OllamaModel)
		if err != nil {
			log.Printf("failed to init ollama client, generation disabled: %v", err)
		} else {
			generator = client
		}
	} else {
		log.Printf("ollama not configured, generation disabled")
	}

	profileSvc := &profiles.Service{Users: userRepo, Repo: profileRepo}
	profileHandler := profiles.NewHandler(profileSvc)

	folderSvc := &folders.Service{Users: userRepo, Profiles: profileRepo, Repo: folderRepo, Store: store}
	folderHandler := folders.NewHandler(folderSvc)

	fileSvc := &files.Service{Users: userRepo, Profiles: profileRepo, Folders: folderRepo, Repo: fileRepo, Store: store}
	fileHandler := files.NewHandler(fileSvc)

	tokenSvc := &demotokens.Service{Repo: tokenRepo, Secret: cfg.JWTSecret}
	tokenHandler := demotokens.NewHandler(tokenSvc)

	generationSvc := &generation.Service{Profiles: profileRepo, Generator: generator, Limiter: tokenSvc}
	generationHandler := generation.NewHandler(generationSvc)

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	profileHandler.RegisterRoutes(api)
	folderHandler.RegisterRoutes(api)
	fileHandler.RegisterRoutes(api)
	tokenHandler.RegisterRoutes(api)
	generationHandler.RegisterRoutes(api)

	return r, nil
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
