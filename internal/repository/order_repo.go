// internal/repository/order_repo.go
package repository

import (
	"context"

	"productstore/internal/domain"
)

// OrderRepository defines the interface for order data operations. The order
// table and its orders_products junction are only ever touched together
// inside one transaction.
type OrderRepository interface {
	// Save inserts the order and one association row per product atomically,
	// setting the generated identifier on the order. The order must carry an
	// owning user with a set id.
	Save(ctx context.Context, order *domain.Order) error
	// FindByID retrieves one fully hydrated order (owning user + products).
	FindByID(ctx context.Context, id int64) (*domain.Order, error)
	// FindAll retrieves all orders ordered by id, fully hydrated.
	FindAll(ctx context.Context) ([]domain.Order, error)
	// FindPage retrieves one page of orders ordered by id.
	// Page and size must each be >= 1.
	FindPage(ctx context.Context, pageNumber, pageSize int) ([]domain.Order, error)
	// Update rewrites the owning-user column and fully replaces the
	// association set in one transaction.
	Update(ctx context.Context, order *domain.Order) error
	// AddProducts associates the given products with the order, skipping pairs
	// that already exist. Runs in one transaction.
	AddProducts(ctx context.Context, orderID int64, productIDs []int64) error
	// Delete removes the order row; association rows go with it via the
	// schema's cascade.
	Delete(ctx context.Context, id int64) error
	// ProductsByOrder returns the flat product list for one order.
	ProductsByOrder(ctx context.Context, orderID int64) ([]domain.Product, error)
}
