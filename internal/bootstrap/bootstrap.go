package bootstrap

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/yigit/hogwarts/internal/app/controllers"
	appRepos "github.com/yigit/hogwarts/internal/app/repositories"
	appRoutes "github.com/yigit/hogwarts/internal/app/routes"
	appServices "github.com/yigit/hogwarts/internal/app/services"
	"github.com/yigit/hogwarts/internal/config"
	"github.com/yigit/hogwarts/internal/db"
	appMiddleware "github.com/yigit/hogwarts/internal/middleware"
	"github.com/yigit/hogwarts/internal/pkg/logger"
	"github.com/yigit/hogwarts/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	StudentService    appServices.StudentService
	FacultyService    appServices.FacultyService
	StudentController *appControllers.StudentController
	FacultyController *appControllers.FacultyController
	Repos             *appRepos.Repositories
	Logger            zerolog.Logger
}

// Database is the open storage backend selected by database.driver
type Database struct {
	Driver   string
	Postgres *db.PostgresDB
	SQLite   *db.SQLiteDB
	Repos    *appRepos.Repositories
}

// Close releases the connection pool or database handle
func (d *Database) Close() error {
	if d == nil {
		return nil
	}
	if d.Postgres != nil {
		d.Postgres.Close()
	}
	if d.SQLite != nil {
		return d.SQLite.Close()
	}
	return nil
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
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

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase opens the configured database, creates the schema and
// seeds the default data when enabled.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*Database, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	database := &Database{Driver: cfg.Database.Driver}

	switch cfg.Database.Driver {
	case config.DriverPostgres:
		lgr.Info().Str("host", cfg.Database.Host).Str("dbname", cfg.Database.DBName).Msg("Establishing database connection...")
		pg, err := db.NewPostgresDB(cfg)
		if err != nil {
			lgr.Error().Err(err).Msg("Failed to connect to database")
			return nil, err
		}
		database.Postgres = pg

		if err := pg.EnsureSchema(ctx); err != nil {
			pg.Close()
			return nil, fmt.Errorf("database schema setup failed: %w", err)
		}
		database.Repos = appRepos.NewRepositories(pg.Pool)

	case config.DriverSQLite:
		lgr.Info().Str("path", cfg.Database.Path).Msg("Opening SQLite database...")
		sqliteDB, err := db.NewSQLiteDB(cfg.Database.Path)
		if err != nil {
			lgr.Error().Err(err).Msg("Failed to open SQLite database")
			return nil, err
		}
		database.SQLite = sqliteDB

		if err := sqliteDB.EnsureSchema(ctx); err != nil {
			_ = sqliteDB.Close()
			return nil, fmt.Errorf("database schema setup failed: %w", err)
		}
		database.Repos = appRepos.NewSQLiteRepositories(sqliteDB.DB)

	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}

	lgr.Info().Str("driver", database.Driver).Msg("Database ready, schema ensured.")

	if cfg.Seed.Enabled {
		if err := seed.CreateDefaultData(ctx, database.Repos.FacultyRepository, lgr); err != nil {
			// Log the error but don't fail the startup
			lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
		}
	}

	return database, nil
}

// BuildDependencies initializes application services and controllers.
func BuildDependencies(database *Database, lgr zerolog.Logger) *Dependencies {
	services := appServices.NewServices(database.Repos)

	return &Dependencies{
		StudentService:    services.StudentService,
		FacultyService:    services.FacultyService,
		StudentController: appControllers.NewStudentController(services.StudentService),
		FacultyController: appControllers.NewFacultyController(services.FacultyService),
		Repos:             database.Repos,
		Logger:            lgr,
	}
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestLogger())
	router.Use(cors.New(corsConfig(cfg.Server.CORSAllowedOrigins)))

	appRoutes.SetupSwagger(router)
	appRoutes.SetupRouter(router, deps.StudentController, deps.FacultyController)

	return router
}

// corsConfig allows every origin when the list is empty or contains "*"
func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", appMiddleware.RequestIDHeader},
		ExposeHeaders: []string{appMiddleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}

	allowed := make([]string, 0, len(origins))
	for _, origin := range origins {
		origin = strings.TrimSpace(origin)
		if origin == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
		if origin != "" {
			allowed = append(allowed, origin)
		}
	}

	if len(allowed) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = allowed
	return cfg
}
