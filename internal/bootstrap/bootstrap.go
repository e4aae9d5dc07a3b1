package bootstrap

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	appControllers "github.com/eventvault/backend/internal/app/controllers"
	appMigrations "github.com/eventvault/backend/internal/app/migrations"
	appRepos "github.com/eventvault/backend/internal/app/repositories"
	appRoutes "github.com/eventvault/backend/internal/app/routes"
	appServices "github.com/eventvault/backend/internal/app/services"
	"github.com/eventvault/backend/internal/config"
	"github.com/eventvault/backend/internal/db"
	appMiddleware "github.com/eventvault/backend/internal/middleware"
	pkgAuth "github.com/eventvault/backend/internal/pkg/auth"
	"github.com/eventvault/backend/internal/pkg/filestorage"
	"github.com/eventvault/backend/internal/pkg/helpers"
	"github.com/eventvault/backend/internal/pkg/logger"
	"github.com/eventvault/backend/internal/pkg/luma"
	"github.com/eventvault/backend/internal/pkg/metrics"
	"github.com/eventvault/backend/internal/pkg/retry"
	"github.com/eventvault/backend/internal/pkg/texel"
	"github.com/eventvault/backend/internal/pkg/websocket"
)

// DefaultConfigPath is used when no --config flag is given
const DefaultConfigPath = "configs/config.yaml"

// Largest accepted media upload
const maxUploadSize = 200 << 20

// Dependencies holds all the application dependencies
type Dependencies struct {
	SyncService       appServices.SyncService
	EventService      appServices.EventService
	FileService       appServices.FileService
	GenerationService appServices.GenerationService

	SyncController       *appControllers.SyncController
	EventController      *appControllers.EventController
	FileController       *appControllers.FileController
	GenerationController *appControllers.GenerationController
	WebSocketHandler     *websocket.Handler

	AuthMiddleware *appMiddleware.AuthMiddleware
	Repos          *appRepos.Repositories
	JWTService     *pkgAuth.JWTService
	Hub            *websocket.Hub
	FileStorage    *filestorage.LocalStorage
	Logger         zerolog.Logger
}

// LoadConfigAndSetupLogger loads .env, the configuration file and the
// environment, then configures the global logger.
func LoadConfigAndSetupLogger(configPath string) (*config.Config, zerolog.Logger, error) {
	// A missing .env file is normal outside local development
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Warn().Err(err).Msg("Failed to load .env file")
	}

	if configPath == "" {
		configPath = DefaultConfigPath
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Str("path", configPath).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logger.Configure(logger.ConfigFrom(cfg.Logging.Level, cfg.Logging.Format))

	lgr := logger.Get()
	lgr.Info().Str("logLevel", cfg.Logging.Level).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// ConnectDatabase opens the connection pool without touching the schema.
func ConnectDatabase(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Str("host", cfg.Database.Host).Str("db", cfg.Database.DBName).Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(ctx, cfg, lgr)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")
	return database.Pool, nil
}

// RunMigrations applies every pending migration of the configured directory.
func RunMigrations(ctx context.Context, cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	migrationsDir := cfg.Database.MigrationsDir
	if _, err := os.Stat(migrationsDir); err != nil {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	lgr.Info().Str("path", migrationsDir).Msg("Running database migrations...")
	if err := appMigrations.NewMigrator(dbPool, lgr).MigrateFromDirectory(ctx, migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")
	return nil
}

// SetupDatabase connects and migrates.
func SetupDatabase(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	dbPool, err := ConnectDatabase(ctx, cfg, lgr)
	if err != nil {
		return nil, err
	}
	if err := RunMigrations(ctx, cfg, dbPool, lgr); err != nil {
		dbPool.Close()
		return nil, err
	}
	return dbPool, nil
}

// NewLumaClient builds the Luma client from cfg.
func NewLumaClient(cfg *config.Config, lgr zerolog.Logger) *luma.Client {
	return luma.NewClient(luma.Config{
		BaseURL: cfg.Luma.BaseURL,
		APIKey:  cfg.Luma.APIKey,
		Timeout: helpers.ParseDuration(cfg.Luma.Timeout, 30*time.Second),
	}, lgr)
}

// NewSyncService wires the sync engine to the repositories and Luma.
func NewSyncService(cfg *config.Config, repos *appRepos.Repositories, lgr zerolog.Logger, opts ...appServices.SyncOption) appServices.SyncService {
	return appServices.NewSyncService(
		repos.EventRepository,
		repos.ParticipantRepository,
		NewLumaClient(cfg, lgr),
		lgr,
		opts...,
	)
}

// NewJWTService returns nil when no secret is configured.
func NewJWTService(cfg *config.Config) *pkgAuth.JWTService {
	if cfg.Auth.JWTSecret == "" {
		return nil
	}
	return pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:   cfg.Auth.JWTSecret,
		TokenIssuer: cfg.Auth.Issuer,
	})
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	// Base URL must match the static file route mounted by the server
	var err error
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Server.StoragePath, cfg.GetPublicURL()+"/uploads", lgr)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	deps.Hub = websocket.NewHub(logger.Component("websocket"))

	deps.SyncService = NewSyncService(cfg, deps.Repos, logger.Component("sync"), appServices.WithNotifier(deps.Hub))
	deps.EventService = appServices.NewEventService(deps.Repos.EventRepository, deps.Repos.ParticipantRepository, lgr)
	deps.FileService = appServices.NewFileService(deps.Repos.FileRepository, deps.Repos.EventRepository, deps.FileStorage, lgr)

	texelClient := texel.NewClient(texel.Config{
		BaseURL: cfg.Texel.BaseURL,
		APIKey:  cfg.Texel.APIKey,
		Timeout: helpers.ParseDuration(cfg.Texel.Timeout, 120*time.Second),
	}, lgr)
	deps.GenerationService = appServices.NewGenerationService(texelClient, retry.DefaultPolicy(cfg.Texel.MaxRetries), logger.Component("texel"))

	deps.JWTService = NewJWTService(cfg)
	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService, cfg.Auth.Enabled)

	deps.SyncController = appControllers.NewSyncController(deps.SyncService, logger.Component("sync"))
	deps.EventController = appControllers.NewEventController(deps.EventService)
	deps.FileController = appControllers.NewFileController(deps.FileService, maxUploadSize)
	deps.GenerationController = appControllers.NewGenerationController(deps.GenerationService)
	deps.WebSocketHandler = websocket.NewHandler(deps.Hub, deps.Repos.EventRepository, logger.Component("websocket"))

	if cfg.Luma.APIKey == "" {
		lgr.Warn().Msg("LUMA_API_KEY is not set; sync requests will fail until it is configured")
	}

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) (*gin.Engine, error) {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	if err := appMiddleware.RegisterValidators(); err != nil {
		return nil, fmt.Errorf("failed to register validators: %w", err)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestLogger(logger.Component("http")))
	router.Use(appMiddleware.CORS(cfg.Server.CORSOrigins))

	appRoutes.SetupSwagger(router)

	appRoutes.SetupRouter(router, appRoutes.Controllers{
		Sync:       deps.SyncController,
		Event:      deps.EventController,
		File:       deps.FileController,
		Generation: deps.GenerationController,
		WebSocket:  deps.WebSocketHandler,
	}, deps.AuthMiddleware)

	if cfg.Metrics.Enabled {
		router.GET(cfg.Metrics.Path, metrics.Handler())
	}

	return router, nil
}
