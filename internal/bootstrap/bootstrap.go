// Package bootstrap wires configuration, storage and HTTP dependencies.
package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/omnalage/skill-exchange-platform/internal/app/controllers"
	appMigrations "github.com/omnalage/skill-exchange-platform/internal/app/migrations"
	appRepos "github.com/omnalage/skill-exchange-platform/internal/app/repositories"
	appRoutes "github.com/omnalage/skill-exchange-platform/internal/app/routes"
	appServices "github.com/omnalage/skill-exchange-platform/internal/app/services"
	"github.com/omnalage/skill-exchange-platform/internal/config"
	"github.com/omnalage/skill-exchange-platform/internal/db"
	appMiddleware "github.com/omnalage/skill-exchange-platform/internal/middleware"
	pkgAuth "github.com/omnalage/skill-exchange-platform/internal/pkg/auth"
	"github.com/omnalage/skill-exchange-platform/internal/pkg/filestorage"
	"github.com/omnalage/skill-exchange-platform/internal/pkg/helpers"
	"github.com/omnalage/skill-exchange-platform/internal/pkg/logger"
	"github.com/omnalage/skill-exchange-platform/internal/pkg/realtime"
	"github.com/omnalage/skill-exchange-platform/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService              appServices.AuthService
	UserService              appServices.UserService
	ConnectionService        appServices.ConnectionService
	ChatService              appServices.ChatService
	RecommendationService    appServices.RecommendationService
	AuthController           *appControllers.AuthController
	UserController           *appControllers.UserController
	ConnectionController     *appControllers.ConnectionController
	ChatController           *appControllers.ChatController
	RecommendationController *appControllers.RecommendationController
	AuthMiddleware           *appMiddleware.AuthMiddleware
	Repos                    *appRepos.Repositories
	JWTService               *pkgAuth.JWTService
	Hub                      *realtime.Hub
	RealtimeHandler          *realtime.Handler
	Logger                   zerolog.Logger
	FileStorage              *filestorage.LocalStorage
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	// Demo data only outside production
	if strings.ToLower(cfg.Server.Mode) != "production" {
		if err := seed.CreateDemoData(context.Background(), dbPool, lgr); err != nil {
			lgr.Error().Err(err).Msg("Failed to seed demo data, proceeding anyway...")
		}
	}

	return dbPool, nil
}

// SetupRedis establishes the Redis connection used for refresh token sessions.
func SetupRedis(cfg *config.Config, lgr zerolog.Logger) (*redis.Client, error) {
	lgr.Info().Str("addr", cfg.Redis.Addr).Msg("Establishing Redis connection...")
	client, err := db.NewRedisClient(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to Redis")
		return nil, err
	}
	return client, nil
}

// BuildDependencies initializes repositories, services and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, redisClient *redis.Client, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool, redisClient)

	baseURL := "http://localhost:" + cfg.Server.Port
	fileStorageBaseURL := baseURL + "/uploads"
	var err error
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Server.StoragePath, fileStorageBaseURL)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	deps.AuthService = appServices.NewAuthService(deps.Repos.UserRepository, deps.Repos.SessionRepository, deps.JWTService)
	deps.UserService = appServices.NewUserService(deps.Repos.UserRepository, deps.FileStorage)
	deps.ConnectionService = appServices.NewConnectionService(deps.Repos.ConnectionRepository, deps.Repos.UserRepository)
	deps.ChatService = appServices.NewChatService(deps.Repos.ConversationRepository)
	deps.RecommendationService = appServices.NewRecommendationService(deps.Repos.UserRepository)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.Hub = realtime.NewHub(lgr)
	deps.RealtimeHandler = realtime.NewHandler(deps.Hub, lgr)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService, lgr)
	deps.UserController = appControllers.NewUserController(deps.UserService, lgr)
	deps.ConnectionController = appControllers.NewConnectionController(deps.ConnectionService, lgr)
	deps.ChatController = appControllers.NewChatController(deps.ChatService, lgr)
	deps.RecommendationController = appControllers.NewRecommendationController(deps.RecommendationService, lgr)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()
	router.Use(appMiddleware.RequestLogger(), gin.Recovery())

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.UserController,
		deps.ConnectionController,
		deps.ChatController,
		deps.RecommendationController,
		deps.RealtimeHandler,
		deps.AuthMiddleware,
	)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
