package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/edupro/talentdesk/docs" // Import generated swagger docs
	appControllers "github.com/edupro/talentdesk/internal/app/controllers"
	appRepos "github.com/edupro/talentdesk/internal/app/repositories"
	appRoutes "github.com/edupro/talentdesk/internal/app/routes"
	appServices "github.com/edupro/talentdesk/internal/app/services"
	"github.com/edupro/talentdesk/internal/config"
	"github.com/edupro/talentdesk/internal/db"
	appMiddleware "github.com/edupro/talentdesk/internal/middleware"
	"github.com/edupro/talentdesk/internal/outbox"
	pkgAuth "github.com/edupro/talentdesk/internal/pkg/auth"
	"github.com/edupro/talentdesk/internal/pkg/helpers"
	"github.com/edupro/talentdesk/internal/pkg/kvstore"
	"github.com/edupro/talentdesk/internal/pkg/logger"
	"github.com/edupro/talentdesk/internal/pkg/mailer"
	"github.com/edupro/talentdesk/internal/pkg/objstore"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService          *appServices.AuthService
	UserService          *appServices.UserService
	CatalogService       *appServices.CatalogService
	AssignmentService    *appServices.AssignmentService
	SubmissionService    *appServices.SubmissionService
	CareerService        *appServices.CareerService
	PayrollService       *appServices.PayrollService
	DashboardService     *appServices.DashboardService
	ReportService        *appServices.ReportService
	FileService          *appServices.FileService
	AuthController       *appControllers.AuthController
	UserController       *appControllers.UserController
	CatalogController    *appControllers.CatalogController
	AssignmentController *appControllers.AssignmentController
	SubmissionController *appControllers.SubmissionController
	CareerController     *appControllers.CareerController
	PayrollController    *appControllers.PayrollController
	DashboardController  *appControllers.DashboardController
	FileController       *appControllers.FileController
	AuthMiddleware       *appMiddleware.AuthMiddleware
	Repos                *appRepos.Repositories
	JWTService           *pkgAuth.JWTService
	KVStore              kvstore.Store
	Mailer               mailer.Sender
	Dispatcher           *outbox.Dispatcher
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

// SetupDatabase connects to MongoDB and ensures the required indexes exist.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*mongo.Client, *mongo.Database, error) {
	lgr.Info().Str("database", cfg.Mongo.Database).Msg("Establishing database connection...")
	client, database, err := db.Connect(context.Background(), cfg.Mongo.URI, cfg.Mongo.Database)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := db.EnsureIndexes(ctx, database); err != nil {
		lgr.Error().Err(err).Msg("Failed to create database indexes")
		_ = client.Disconnect(context.Background())
		return nil, nil, err
	}
	lgr.Info().Msg("Database indexes ensured.")

	return client, database, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, database *mongo.Database, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(database)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	if cfg.Redis.Enabled {
		store, err := kvstore.NewRedisStore(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, "talentdesk")
		if err != nil {
			lgr.Error().Err(err).Msg("Failed to connect to redis")
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		deps.KVStore = store
		lgr.Info().Str("addr", cfg.Redis.Addr).Msg("Using redis key-value store")
	} else {
		deps.KVStore = kvstore.NewMemoryStore()
		lgr.Info().Msg("Using in-memory key-value store")
	}

	objStore, err := objstore.NewMinioStore(context.Background(), objstore.Config{
		Endpoint:  cfg.Storage.Endpoint,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
		Bucket:    cfg.Storage.Bucket,
		Region:    cfg.Storage.Region,
		UseSSL:    cfg.Storage.UseSSL,
	})
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize object storage")
		return nil, fmt.Errorf("failed to initialize object storage: %w", err)
	}

	deps.Mailer = mailer.NewSendGridSender(mailer.Config{
		APIKey:    cfg.Mail.SendGridAPIKey,
		FromName:  cfg.Mail.FromName,
		FromEmail: cfg.Mail.FromEmail,
	})
	deps.Dispatcher = outbox.NewDispatcher(deps.Repos.OutboxRepository, deps.Mailer, lgr)

	// Services
	deps.AuthService = appServices.NewAuthService(
		deps.Repos.UserRepository,
		deps.Repos.TokenRepository,
		deps.Repos.OutboxRepository,
		deps.JWTService,
		deps.KVStore,
		cfg.Server.FrontendURL,
		lgr,
	)
	deps.UserService = appServices.NewUserService(deps.Repos.UserRepository, deps.Repos.TokenRepository, lgr)
	deps.CatalogService = appServices.NewCatalogService(deps.Repos.CatalogRepository, lgr)
	deps.AssignmentService = appServices.NewAssignmentService(
		deps.Repos.AssignmentRepository,
		deps.Repos.CatalogRepository,
		deps.Repos.UserRepository,
		deps.Repos.OutboxRepository,
		lgr,
	)
	deps.SubmissionService = appServices.NewSubmissionService(
		deps.Repos.SubmissionRepository,
		deps.Repos.AssignmentRepository,
		deps.Repos.CatalogRepository,
		deps.Repos.UserRepository,
		deps.Repos.OutboxRepository,
		lgr,
	)
	deps.CareerService = appServices.NewCareerService(deps.Repos.CareerRepository, deps.Repos.OutboxRepository, lgr)
	deps.PayrollService = appServices.NewPayrollService(
		deps.Repos.PayrollRepository,
		deps.Repos.UserRepository,
		deps.Repos.OutboxRepository,
		lgr,
	)
	deps.DashboardService = appServices.NewDashboardService(deps.Repos.DashboardRepository, lgr)
	deps.ReportService = appServices.NewReportService(
		deps.Repos.UserRepository,
		deps.Repos.AssignmentRepository,
		deps.PayrollService,
		lgr,
	)
	deps.FileService = appServices.NewFileService(objStore, lgr)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	// Controllers
	deps.AuthController = appControllers.NewAuthController(deps.AuthService)
	deps.UserController = appControllers.NewUserController(deps.UserService, deps.AuthService)
	deps.CatalogController = appControllers.NewCatalogController(deps.CatalogService)
	deps.AssignmentController = appControllers.NewAssignmentController(deps.AssignmentService)
	deps.SubmissionController = appControllers.NewSubmissionController(deps.SubmissionService)
	deps.CareerController = appControllers.NewCareerController(deps.CareerService)
	deps.PayrollController = appControllers.NewPayrollController(deps.PayrollService)
	deps.DashboardController = appControllers.NewDashboardController(deps.DashboardService, deps.ReportService)
	deps.FileController = appControllers.NewFileController(deps.FileService)

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

	router := gin.Default()

	// Setup Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json"), ginSwagger.DefaultModelsExpandDepth(1)))

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.UserController,
		deps.CatalogController,
		deps.AssignmentController,
		deps.SubmissionController,
		deps.CareerController,
		deps.PayrollController,
		deps.DashboardController,
		deps.FileController,
		deps.AuthMiddleware,
	)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
