package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-clinic-booking/config"
	deliveryHttp "go-clinic-booking/internal/delivery/http"
	"go-clinic-booking/internal/delivery/http/handler"
	"go-clinic-booking/internal/delivery/http/middleware"
	"go-clinic-booking/internal/infrastructure/cache"
	"go-clinic-booking/internal/infrastructure/database"
	"go-clinic-booking/internal/repository"
	"go-clinic-booking/internal/service"
	"go-clinic-booking/internal/usecase"
	"go-clinic-booking/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	Log         *logrus.Logger
	DB          *gorm.DB
	RedisClient *redis.Client
	Store       *usecase.Store
	Server      *http.Server
}

// New loads configuration and opens the storage handle. Everything else is
// built on demand by the command being run.
func New(ctx context.Context) (*App, error) {
	app := &App{}

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	app.Config = cfg

	// Setup logger
	app.Log = setupLogger(cfg.Log)
	app.Log.Info("Configuration loaded successfully")

	// Initialize database
	db, err := database.NewPostgresConnection(ctx, cfg.DB, app.Log)
	if err != nil {
		return nil, err
	}
	app.DB = db
	app.Log.Info("Database connected successfully")

	return app, nil
}

// setupLogger configures the standard logrus logger
func setupLogger(cfg config.LogConfig) *logrus.Logger {
	log := logrus.StandardLogger()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		log.Warnf("Unknown LOG_LEVEL %q, using info", cfg.Level)
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
	log.AddHook(middleware.RequestIDHook{})

	return log
}

// InitSchema creates any missing tables and indexes.
func (app *App) InitSchema(ctx context.Context) error {
	return database.InitializeSchema(ctx, app.DB, app.Log)
}

// BuildServer wires the store and the HTTP surface on top of it.
func (app *App) BuildServer(ctx context.Context) error {
	// Initialize Redis
	redisClient, err := cache.NewRedisClient(ctx, app.Config.Redis, app.Log)
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize repositories
	repos := usecase.Repositories{
		Users:              repository.NewUserRepository(app.DB),
		Specializations:    repository.NewSpecializationRepository(app.DB),
		Doctors:            repository.NewDoctorRepository(app.DB),
		Appointments:       repository.NewAppointmentRepository(app.DB),
		HealthCertificates: repository.NewHealthCertificateRepository(app.DB),
	}

	// Initialize services
	catalogCache := service.NewCatalogCache(redisClient, app.Log, app.Config.Redis.TTL)
	auditService := service.NewAuditService(app.Log)

	// Initialize usecases
	app.Store = usecase.NewStore(app.Log, customValidator, repos, catalogCache, auditService)

	// Initialize handlers
	userHandler := handler.NewUserHandler(app.Store.Users)
	specializationHandler := handler.NewSpecializationHandler(app.Store.Specializations)
	doctorHandler := handler.NewDoctorHandler(app.Store.Doctors)
	appointmentHandler := handler.NewAppointmentHandler(app.Store.Appointments)
	certificateHandler := handler.NewHealthCertificateHandler(app.Store.HealthCertificates)

	// Initialize middleware
	actorMiddleware := middleware.NewActorMiddleware()
	corsMiddleware := middleware.NewCORSMiddleware()
	loggingMiddleware := middleware.NewLoggingMiddleware(app.Log)

	// Initialize router
	router := deliveryHttp.NewRouter(
		userHandler,
		specializationHandler,
		doctorHandler,
		appointmentHandler,
		certificateHandler,
		actorMiddleware,
		corsMiddleware,
		loggingMiddleware,
		app.ping,
	)

	// Create server
	app.Server = &http.Server{
		Addr:              fmt.Sprintf(":%s", app.Config.App.Port),
		Handler:           router.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	return nil
}

func (app *App) ping(ctx context.Context) error {
	sqlDB, err := app.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Run serves HTTP until SIGINT/SIGTERM, then shuts down gracefully.
func (app *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		app.Log.Infof("Server starting on port %s", app.Config.App.Port)
		app.Log.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
	case <-ctx.Done():
	}

	app.Log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(shutdownCtx); err != nil {
		app.Log.Errorf("Server forced to shutdown: %v", err)
	}

	app.Log.Info("Server shutdown complete")
	return nil
}

// Close closes all connections (database, redis)
func (app *App) Close() {
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
