// internal/app.go
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jmoiron/sqlx"

	router "productstore/internal/api"
	"productstore/internal/api/handler"
	"productstore/internal/config"
	"productstore/internal/repository"
	"productstore/internal/repository/postgres"
	"productstore/internal/service"
	"productstore/internal/util"
	"productstore/pkg/db"
)

// Application holds all the initialized components of the application.
type Application struct {
	Config *config.AppConfig
	Logger *slog.Logger
	DB     *sqlx.DB

	// Repositories
	UserRepository    repository.UserRepository
	ProductRepository repository.ProductRepository
	OrderRepository   repository.OrderRepository

	// Services
	UserService    service.UserService
	ProductService service.ProductService
	OrderService   service.OrderService

	// HTTP API
	HTTPHandler http.Handler
}

// NewApplication creates a new Application instance.
func NewApplication() *Application {
	return &Application{}
}

// Initialize initializes all application components.
func (app *Application) Initialize(ctx context.Context) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	app.Config = cfg

	util.InitLogger()
	app.Logger = util.GetLogger()
	app.Logger.Info("Application configuration loaded successfully.")

	database, err := db.NewPostgresDB(app.Config.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = database
	app.Logger.Info("Database connection established.")

	app.UserRepository = postgres.NewUserRepository(app.DB)
	app.ProductRepository = postgres.NewProductRepository(app.DB)
	app.OrderRepository = postgres.NewOrderRepository(app.DB)
	app.Logger.Info("Repositories initialized.")

	app.UserService = service.NewUserService(app.UserRepository)
	app.ProductService = service.NewProductService(app.ProductRepository)
	app.OrderService = service.NewOrderService(app.OrderRepository, app.UserRepository, app.ProductRepository)
	app.Logger.Info("Services initialized.")

	userHandler := handler.NewUserHandler(app.UserService, app.Logger)
	productHandler := handler.NewProductHandler(app.ProductService, app.Logger)
	orderHandler := handler.NewOrderHandler(app.OrderService, app.Logger)
	app.HTTPHandler = router.NewRouter(userHandler, productHandler, orderHandler, app.Logger)
	app.Logger.Info("HTTP router and handlers initialized.")

	return nil
}

// Shutdown gracefully shuts down application resources.
func (app *Application) Shutdown(ctx context.Context) error {
	app.Logger.Info("Shutting down application...")
	if app.DB != nil {
		if err := app.DB.Close(); err != nil {
			app.Logger.Error("Failed to close database connection", "error", err)
			return fmt.Errorf("failed to close database connection: %w", err)
		}
		app.Logger.Info("Database connection closed.")
	}
	app.Logger.Info("Application shut down gracefully.")
	return nil
}
