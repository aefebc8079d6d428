// internal/repository/product_repo.go
package repository

import (
	"context"

	"productstore/internal/domain"
)

// ProductRepository defines the interface for product data operations.
type ProductRepository interface {
	// Save inserts a new product and sets the generated identifier on it.
	Save(ctx context.Context, product *domain.Product) error
	// FindByID retrieves a product by id.
	FindByID(ctx context.Context, id int64) (*domain.Product, error)
	// FindWithOrdersByID retrieves a product with its associated order ids,
	// recomputed through the junction table at query time.
	FindWithOrdersByID(ctx context.Context, id int64) (*domain.Product, error)
	// FindAll retrieves all products ordered by id.
	FindAll(ctx context.Context) ([]domain.Product, error)
	// FindPage retrieves one page of products ordered by id.
	// Page and size must each be >= 1.
	FindPage(ctx context.Context, pageNumber, pageSize int) ([]domain.Product, error)
	// Update replaces a product's name and price by id.
	Update(ctx context.Context, product *domain.Product) error
	// Delete removes a product; the schema cascades its association rows while
	// referencing orders remain untouched.
	Delete(ctx context.Context, id int64) error
}
