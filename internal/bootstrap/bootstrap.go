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
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/YousefBawaliz/student-portal-2-backend/internal/app/controllers"
	appMigrations "github.com/YousefBawaliz/student-portal-2-backend/internal/app/migrations"
	appRepos "github.com/YousefBawaliz/student-portal-2-backend/internal/app/repositories"
	appRoutes "github.com/YousefBawaliz/student-portal-2-backend/internal/app/routes"
	appServices "github.com/YousefBawaliz/student-portal-2-backend/internal/app/services"
	"github.com/YousefBawaliz/student-portal-2-backend/internal/config"
	"github.com/YousefBawaliz/student-portal-2-backend/internal/db"
	appMiddleware "github.com/YousefBawaliz/student-portal-2-backend/internal/middleware"
	pkgAuth "github.com/YousefBawaliz/student-portal-2-backend/internal/pkg/auth"
	"github.com/YousefBawaliz/student-portal-2-backend/internal/pkg/helpers"
	"github.com/YousefBawaliz/student-portal-2-backend/internal/pkg/logger"
	"github.com/YousefBawaliz/student-portal-2-backend/internal/scheduler"
	"github.com/YousefBawaliz/student-portal-2-backend/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos          *appRepos.Repositories
	Services       *appServices.Services
	Controllers    *appControllers.Controllers
	AuthMiddleware *appMiddleware.AuthMiddleware
	JWTService     *pkgAuth.JWTService
	Scheduler      *scheduler.Scheduler
	Logger         zerolog.Logger
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

// SetupDatabase establishes the database connection, runs migrations and
// seeds the default admin account.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		dbPool.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	migrator := appMigrations.NewMigrator(dbPool)
	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations applied")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := seed.EnsureAdminUser(ctx, cfg, appRepos.NewUserRepository(dbPool)); err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("admin seed failed: %w", err)
	}

	return dbPool, nil
}

// BuildDependencies wires repositories, services, controllers and middleware.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	accessTokenExp := helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, time.Hour)
	refreshTokenExp := helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour)

	jwtService := pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  accessTokenExp,
		RefreshTokenExp: refreshTokenExp,
		TokenIssuer:     cfg.JWT.Issuer,
	})

	repos := appRepos.NewRepositories(dbPool)
	svcs := appServices.NewServices(repos, jwtService)
	ctrls := appControllers.NewControllers(svcs)
	authMiddleware := appMiddleware.NewAuthMiddleware(jwtService)
	sched := scheduler.New(repos.TokenRepository)

	return &Dependencies{
		Repos:          repos,
		Services:       svcs,
		Controllers:    ctrls,
		AuthMiddleware: authMiddleware,
		JWTService:     jwtService,
		Scheduler:      sched,
		Logger:         lgr,
	}, nil
}

// SetupRouter creates the gin engine with middleware and routes configured.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestLogger())

	appRoutes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware)

	return router
}
