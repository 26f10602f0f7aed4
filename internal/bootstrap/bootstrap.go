package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/lfarias/sisacad/docs" // generated swagger docs
	appControllers "github.com/lfarias/sisacad/internal/app/controllers"
	appMigrations "github.com/lfarias/sisacad/internal/app/migrations"
	appRepos "github.com/lfarias/sisacad/internal/app/repositories"
	appRoutes "github.com/lfarias/sisacad/internal/app/routes"
	appServices "github.com/lfarias/sisacad/internal/app/services"
	"github.com/lfarias/sisacad/internal/config"
	"github.com/lfarias/sisacad/internal/db"
	appMiddleware "github.com/lfarias/sisacad/internal/middleware"
	pkgAuth "github.com/lfarias/sisacad/internal/pkg/auth"
	"github.com/lfarias/sisacad/internal/pkg/helpers"
	"github.com/lfarias/sisacad/internal/pkg/logger"
	"github.com/lfarias/sisacad/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Services             *appServices.Services
	AuthController       *appControllers.AuthController
	ProfileController    *appControllers.ProfileController
	RoleController       *appControllers.RoleController
	CourseController     *appControllers.CourseController
	StudentController    *appControllers.StudentController
	EnrollmentController *appControllers.EnrollmentController
	AuthMiddleware       *appMiddleware.AuthMiddleware
	Repos                *appRepos.Repositories
	JWTService           *pkgAuth.JWTService
	Logger               zerolog.Logger
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

// SetupDatabase establishes the database connection, applies migrations
// and reconciles the seed admin.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.Postgres, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgres(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(database.Pool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		database.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		database.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	repos := appRepos.NewRepositories(database)
	if err := seed.EnsureAdmin(context.Background(), cfg, repos, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to seed default admin, proceeding anyway...")
	}

	deleted, err := repos.TokenRepository.CleanupExpiredTokens(context.Background())
	if err != nil {
		lgr.Warn().Err(err).Msg("Failed to clean up expired refresh tokens, proceeding anyway...")
	} else if deleted > 0 {
		lgr.Info().Int64("deleted", deleted).Msg("Expired refresh tokens removed")
	}

	return database, nil
}

// BuildDependencies initializes repositories, services and controllers.
func BuildDependencies(cfg *config.Config, database *db.Postgres, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(database)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	deps.Services = &appServices.Services{
		AuthService: appServices.NewAuthService(
			deps.Repos.UserRepository,
			deps.Repos.TokenRepository,
			deps.Repos.RoleRepository,
			deps.JWTService,
			lgr,
		),
		ProfileService:    appServices.NewProfileService(deps.Repos.ProfileRepository, lgr),
		RoleService:       appServices.NewRoleService(deps.Repos.RoleRepository, lgr),
		CourseService:     appServices.NewCourseService(deps.Repos.CourseRepository, lgr),
		StudentService:    appServices.NewStudentService(deps.Repos.StudentRepository, lgr),
		EnrollmentService: appServices.NewEnrollmentService(deps.Repos.EnrollmentRepository, lgr),
	}

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.AuthController = appControllers.NewAuthController(deps.Services.AuthService)
	deps.ProfileController = appControllers.NewProfileController(deps.Services.ProfileService)
	deps.RoleController = appControllers.NewRoleController(deps.Services.RoleService)
	deps.CourseController = appControllers.NewCourseController(deps.Services.CourseService)
	deps.StudentController = appControllers.NewStudentController(deps.Services.StudentService)
	deps.EnrollmentController = appControllers.NewEnrollmentController(deps.Services.EnrollmentService)

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

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler,
		ginSwagger.URL("/swagger/doc.json"), ginSwagger.DefaultModelsExpandDepth(1)))

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.ProfileController,
		deps.RoleController,
		deps.CourseController,
		deps.StudentController,
		deps.EnrollmentController,
		deps.AuthMiddleware,
	)

	return router
}
