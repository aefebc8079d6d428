// internal/api/router.go
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"productstore/internal/api/handler"
)

// NewRouter sets up and returns a new HTTP router.
func NewRouter(userHandler *handler.UserHandler, productHandler *handler.ProductHandler, orderHandler *handler.OrderHandler, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middlewares
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(handler.DefaultTimeout))

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	r.Route("/users", func(r chi.Router) {
		r.Post("/", userHandler.Create)
		r.Get("/", userHandler.List)
		r.Get("/{userID}", userHandler.Get)
		r.Put("/{userID}", userHandler.ChangeEmail)
		r.Delete("/{userID}", userHandler.Delete)
	})

	r.Route("/products", func(r chi.Router) {
		r.Post("/", productHandler.Create)
		r.Get("/", productHandler.List)
		r.Get("/{productID}", productHandler.Get)
		r.Get("/{productID}/orders", productHandler.GetWithOrders)
		r.Put("/{productID}", productHandler.Update)
		r.Delete("/{productID}", productHandler.Delete)
	})

	r.Route("/orders", func(r chi.Router) {
		r.Post("/", orderHandler.Create)
		r.Get("/", orderHandler.List)
		r.Get("/{orderID}", orderHandler.Get)
		r.Post("/{orderID}/products", orderHandler.AddProducts)
		r.Get("/{orderID}/products", orderHandler.Products)
		r.Delete("/{orderID}", orderHandler.Delete)
	})

	return r
}
