package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	appControllers "github.com/yigit/hogwarts/internal/app/controllers"
	appMigrations "github.com/yigit/hogwarts/internal/app/migrations"
	appRepos "github.com/yigit/hogwarts/internal/app/repositories"
	"github.com/yigit/hogwarts/internal/app/repositories/memory"
	appRoutes "github.com/yigit/hogwarts/internal/app/routes"
	appServices "github.com/yigit/hogwarts/internal/app/services"
	"github.com/yigit/hogwarts/internal/config"
	"github.com/yigit/hogwarts/internal/db"
	appMiddleware "github.com/yigit/hogwarts/internal/middleware"
	"github.com/yigit/hogwarts/internal/pkg/filestorage"
	"github.com/yigit/hogwarts/internal/pkg/logger"
	"github.com/yigit/hogwarts/internal/seed"
)

// Persistence is the selected storage backend
type Persistence struct {
	Repos  *appRepos.Repositories
	Health appControllers.HealthChecker
	// DB is nil for the memory driver
	DB *db.PostgresDB
}

// Close releases the database pool, if any
func (p *Persistence) Close() {
	if p != nil && p.DB != nil {
		p.DB.Close()
	}
}

// Dependencies holds all the application dependencies
type Dependencies struct {
	StudentService appServices.StudentService
	FacultyService appServices.FacultyService
	AvatarService  appServices.AvatarService
	UtilService    appServices.UtilService
	Controllers    appRoutes.Controllers
	Repos          *appRepos.Repositories
	FileStorage    *filestorage.LocalStorage
	Logger         zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		configPath = path
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.ParseLevel(cfg.Logging.Level)
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := logger.Get()
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupPersistence opens the configured backend, applies migrations and seeds default data.
func SetupPersistence(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*Persistence, error) {
	var p *Persistence

	switch cfg.Database.Driver {
	case config.DriverMemory:
		lgr.Info().Msg("Using in-memory persistence")
		store := memory.NewStore()
		p = &Persistence{Repos: store.Repositories(), Health: store}

	case config.DriverPostgres:
		lgr.Info().Msg("Establishing database connection...")
		database, err := db.NewPostgresDB(ctx, cfg)
		if err != nil {
			lgr.Error().Err(err).Msg("Failed to connect to database")
			return nil, err
		}
		lgr.Info().Msg("Database connection successfully established.")

		if err := runMigrations(ctx, cfg, database, lgr); err != nil {
			database.Close()
			return nil, err
		}
		p = &Persistence{Repos: appRepos.NewRepositories(database), Health: database, DB: database}

	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}

	if cfg.Database.Seed {
		if err := seed.CreateDefaultData(ctx, p.Repos, lgr); err != nil {
			lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
		}
	}

	return p, nil
}

func runMigrations(ctx context.Context, cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) error {
	migrationsDir := cfg.Database.MigrationsDir
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	lgr.Info().Str("path", migrationsDir).Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(database.Pool, lgr)
	applied, err := migrator.Apply(ctx, os.DirFS(migrationsDir))
	if err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Int("applied", applied).Msg("Database migrations complete")
	return nil
}

// BuildDependencies initializes services and controllers on top of the repositories.
func BuildDependencies(cfg *config.Config, p *Persistence, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Repos: p.Repos, Logger: lgr}

	var err error
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Avatars.DirPath)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	port, err := cfg.ServerPort()
	if err != nil {
		return nil, err
	}

	deps.StudentService = appServices.NewStudentService(deps.Repos, deps.FileStorage, appServices.RosterConfig{
		Delay: cfg.Roster.PrintDelay,
	})
	deps.FacultyService = appServices.NewFacultyService(deps.Repos)
	deps.AvatarService = appServices.NewAvatarService(deps.Repos, deps.FileStorage)
	deps.UtilService = appServices.NewUtilService()

	deps.Controllers = appRoutes.Controllers{
		Student: appControllers.NewStudentController(deps.StudentService),
		Faculty: appControllers.NewFacultyController(deps.FacultyService),
		Avatar:  appControllers.NewAvatarController(deps.AvatarService),
		Util:    appControllers.NewUtilController(deps.UtilService),
		Info:    appControllers.NewInfoController(port, p.Health),
	}

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestLogger())
	router.Use(cors.New(corsConfig(cfg)))

	appRoutes.SetupSwagger(router)
	appRoutes.SetupRouter(router, deps.Controllers)

	return router
}

func corsConfig(cfg *config.Config) cors.Config {
	corsCfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", appMiddleware.RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", appMiddleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}

	origins := cfg.AllowedOrigins()
	if len(origins) == 0 || slices.Contains(origins, "*") {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = origins
	}
	return corsCfg
}
