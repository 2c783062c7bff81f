package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	appControllers "github.com/profrate/profrate/internal/app/controllers"
	appMigrations "github.com/profrate/profrate/internal/app/migrations"
	appRepos "github.com/profrate/profrate/internal/app/repositories"
	appRoutes "github.com/profrate/profrate/internal/app/routes"
	appServices "github.com/profrate/profrate/internal/app/services"
	"github.com/profrate/profrate/internal/config"
	"github.com/profrate/profrate/internal/db"
	appMiddleware "github.com/profrate/profrate/internal/middleware"
	pkgAuth "github.com/profrate/profrate/internal/pkg/auth"
	"github.com/profrate/profrate/internal/pkg/helpers"
	"github.com/profrate/profrate/internal/pkg/logger"
	"github.com/profrate/profrate/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Services                 *appServices.Services
	AuthController           *appControllers.AuthController
	ProfessorController      *appControllers.ProfessorController
	ModuleController         *appControllers.ModuleController
	ModuleInstanceController *appControllers.ModuleInstanceController
	RatingController         *appControllers.RatingController
	AuthMiddleware           *appMiddleware.AuthMiddleware
	Repos                    *appRepos.Repositories
	JWTService               *pkgAuth.JWTService
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger
func LoadConfigAndSetupLogger() (*config.Config, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, err
	}

	logger.Configure(logger.Config{
		Level:  logger.LogLevel(strings.ToLower(cfg.Logging.Level)),
		Pretty: strings.ToLower(cfg.Logging.Format) == "text",
	})

	logger.Info().Str("logLevel", cfg.Logging.Level).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, nil
}

// SetupDatabase establishes the database connection, runs migrations and
// seeds default data.
func SetupDatabase(cfg *config.Config) (*pgxpool.Pool, error) {
	logger.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		logger.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}

	logger.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		logger.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		dbPool.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		logger.Error().Err(err).Msg("Database migration error")
		dbPool.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	logger.Info().Msg("Database migrations successfully applied")

	if err := seed.CreateDefaultData(context.Background(), dbPool); err != nil {
		logger.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbPool, nil
}

// BuildDependencies initializes repositories, services, controllers and
// middleware on top of the connection pool.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool) (*Dependencies, error) {
	deps := &Dependencies{}

	deps.Repos = appRepos.NewRepositories(dbPool)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 30*24*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	deps.Services = appServices.NewServices(deps.Repos, deps.JWTService)

	deps.AuthController = appControllers.NewAuthController(deps.Services.AuthService)
	deps.ProfessorController = appControllers.NewProfessorController(deps.Services.ProfessorService)
	deps.ModuleController = appControllers.NewModuleController(deps.Services.ModuleService)
	deps.ModuleInstanceController = appControllers.NewModuleInstanceController(deps.Services.ModuleInstanceService)
	deps.RatingController = appControllers.NewRatingController(deps.Services.RatingService)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	return deps, nil
}

// SetupRouter creates the Gin engine and registers all routes
func SetupRouter(cfg *config.Config, deps *Dependencies) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestLogger())

	appRoutes.SetupRouter(
		router,
		deps.AuthController,
		deps.ProfessorController,
		deps.ModuleController,
		deps.ModuleInstanceController,
		deps.RatingController,
		deps.AuthMiddleware,
	)

	return router
}
