// internal/repository/postgres/order_pg.go
package postgres

import (
	"context"
	"fmt"

	"productstore/internal/domain"
	"productstore/internal/repository"
	"productstore/internal/util"
	"productstore/pkg/db"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

// orderRow is the shape produced by joining orders with the owning user and,
// through orders_products, with products. One order contributes one row per
// associated product, or a single row with NULL product columns when it has
// none.
type orderRow struct {
	OrderID      int64            `db:"order_id"`
	UserID       int64            `db:"user_id"`
	UserName     string           `db:"user_name"`
	UserEmail    string           `db:"user_email"`
	ProductID    *int64           `db:"product_id"`
	ProductName  *string          `db:"product_name"`
	ProductPrice *decimal.Decimal `db:"product_price"`
}

const (
	selectOrdersSQL = `
		SELECT o.id AS order_id, o.user_id AS user_id, u.name AS user_name, u.email AS user_email,
		       p.id AS product_id, p.name AS product_name, p.price AS product_price
		FROM orders o
		JOIN users u ON o.user_id = u.id
		LEFT JOIN orders_products op ON o.id = op.order_id
		LEFT JOIN products p ON op.product_id = p.id`

	// Pagination applies to the orders table, not to the joined row set, so a
	// page always holds pageSize orders regardless of how many products each
	// one carries.
	selectOrdersPageSQL = `
		SELECT o.id AS order_id, o.user_id AS user_id, u.name AS user_name, u.email AS user_email,
		       p.id AS product_id, p.name AS product_name, p.price AS product_price
		FROM (SELECT id, user_id FROM orders ORDER BY id LIMIT $1 OFFSET $2) o
		JOIN users u ON o.user_id = u.id
		LEFT JOIN orders_products op ON o.id = op.order_id
		LEFT JOIN products p ON op.product_id = p.id
		ORDER BY o.id, p.id`

	insertOrderSQL         = `INSERT INTO orders (user_id) VALUES ($1) RETURNING id`
	insertOrderProductSQL  = `INSERT INTO orders_products (order_id, product_id) VALUES ($1, $2)`
	orderProductExistsSQL  = `SELECT EXISTS (SELECT 1 FROM orders_products WHERE order_id = $1 AND product_id = $2)`
	deleteOrderProductsSQL = `DELETE FROM orders_products WHERE order_id = $1`
)

// OrderRepository implements repository.OrderRepository for PostgreSQL.
type OrderRepository struct {
	db *sqlx.DB
}

// NewOrderRepository creates a new OrderRepository backed by the given pool.
func NewOrderRepository(db *sqlx.DB) repository.OrderRepository {
	return &OrderRepository{db: db}
}

// Save inserts the order row and its association rows inside one transaction.
// A failure on any statement rolls the whole order back, so a partially
// inserted order never becomes visible.
func (r *OrderRepository) Save(ctx context.Context, order *domain.Order) error {
	if order.User.ID == 0 {
		return util.ErrUserRequired
	}
	return db.InTransaction(ctx, r.db, func(tx *sqlx.Tx) error {
		id, err := db.InsertReturningID(ctx, tx, insertOrderSQL, order.User.ID)
		if err != nil {
			return fmt.Errorf("failed to save order: %w", err)
		}
		if err := insertOrderProducts(ctx, tx, id, order.ProductIDs()); err != nil {
			return err
		}
		order.ID = id
		return nil
	})
}

// FindByID retrieves one fully hydrated order.
func (r *OrderRepository) FindByID(ctx context.Context, id int64) (*domain.Order, error) {
	orders, err := r.queryOrders(ctx, selectOrdersSQL+` WHERE o.id = $1 ORDER BY p.id`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get order by ID %d: %w", id, err)
	}
	if len(orders) == 0 {
		return nil, util.ErrNotFound
	}
	return &orders[0], nil
}

// FindAll retrieves all orders ordered by id.
func (r *OrderRepository) FindAll(ctx context.Context) ([]domain.Order, error) {
	orders, err := r.queryOrders(ctx, selectOrdersSQL+` ORDER BY o.id, p.id`)
	if err != nil {
		return nil, fmt.Errorf("failed to get all orders: %w", err)
	}
	return orders, nil
}

// FindPage retrieves one page of orders ordered by id.
func (r *OrderRepository) FindPage(ctx context.Context, pageNumber, pageSize int) ([]domain.Order, error) {
	if err := validatePage(pageNumber, pageSize); err != nil {
		return nil, err
	}
	orders, err := r.queryOrders(ctx, selectOrdersPageSQL, pageSize, pageOffset(pageNumber, pageSize))
	if err != nil {
		return nil, fmt.Errorf("failed to get orders page %d: %w", pageNumber, err)
	}
	return orders, nil
}

// Update rewrites the owning-user column and fully replaces the association
// set in one transaction. Delete-all-then-reinsert keeps the set consistent:
// an abort mid-update rolls back to the old set, never to a mixed one.
func (r *OrderRepository) Update(ctx context.Context, order *domain.Order) error {
	if order.User.ID == 0 {
		return util.ErrUserRequired
	}
	return db.InTransaction(ctx, r.db, func(tx *sqlx.Tx) error {
		affected, err := db.Exec(ctx, tx, `UPDATE orders SET user_id = $1 WHERE id = $2`, order.User.ID, order.ID)
		if err != nil {
			return fmt.Errorf("failed to update order %d: %w", order.ID, err)
		}
		if affected == 0 {
			return util.ErrNotFound
		}
		if _, err := db.Exec(ctx, tx, deleteOrderProductsSQL, order.ID); err != nil {
			return fmt.Errorf("failed to clear products for order %d: %w", order.ID, err)
		}
		return insertOrderProducts(ctx, tx, order.ID, order.ProductIDs())
	})
}

// AddProducts associates the given products with the order inside one
// transaction, skipping pairs that already exist so re-adding is a no-op
// rather than a duplicate-key failure.
func (r *OrderRepository) AddProducts(ctx context.Context, orderID int64, productIDs []int64) error {
	return db.InTransaction(ctx, r.db, func(tx *sqlx.Tx) error {
		for _, productID := range productIDs {
			var exists bool
			if err := tx.GetContext(ctx, &exists, orderProductExistsSQL, orderID, productID); err != nil {
				return fmt.Errorf("failed to check association of product %d with order %d: %w", productID, orderID, err)
			}
			if exists {
				continue
			}
			if _, err := tx.ExecContext(ctx, insertOrderProductSQL, orderID, productID); err != nil {
				return fmt.Errorf("failed to associate product %d with order %d: %w", productID, orderID, err)
			}
		}
		return nil
	})
}

// Delete removes the order row. Its association rows are removed by the
// schema's cascading foreign key, not by application logic.
func (r *OrderRepository) Delete(ctx context.Context, id int64) error {
	affected, err := db.Exec(ctx, r.db, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete order %d: %w", id, err)
	}
	if affected == 0 {
		return util.ErrNotFound
	}
	return nil
}

// ProductsByOrder returns the flat product list for one order.
func (r *OrderRepository) ProductsByOrder(ctx context.Context, orderID int64) ([]domain.Product, error) {
	products := []domain.Product{}
	query := `SELECT p.id, p.name, p.price
		FROM products p
		JOIN orders_products op ON p.id = op.product_id
		WHERE op.order_id = $1
		ORDER BY p.id`
	if err := r.db.SelectContext(ctx, &products, query, orderID); err != nil {
		return nil, fmt.Errorf("failed to get products for order %d: %w", orderID, err)
	}
	return products, nil
}

func (r *OrderRepository) queryOrders(ctx context.Context, query string, args ...interface{}) ([]domain.Order, error) {
	return db.Query(ctx, r.db, query, decodeOrderRows, args...)
}

// decodeOrderRows pipes the joined rows through the shared assembler.
func decodeOrderRows(rows *sqlx.Rows) ([]domain.Order, error) {
	return assembleRows(rows,
		func(row orderRow) int64 { return row.OrderID },
		func(row orderRow) *domain.Order {
			return &domain.Order{
				ID: row.OrderID,
				User: domain.User{
					ID:       row.UserID,
					Name:     row.UserName,
					Email:    row.UserEmail,
					OrderIDs: []int64{},
				},
				Products: []domain.Product{},
			}
		},
		func(order *domain.Order, row orderRow) {
			if row.ProductID == nil {
				return
			}
			order.Products = append(order.Products, domain.Product{
				ID:    *row.ProductID,
				Name:  *row.ProductName,
				Price: *row.ProductPrice,
			})
		},
	)
}

// insertOrderProducts batch-inserts one association row per product id.
func insertOrderProducts(ctx context.Context, q repository.DBExecutor, orderID int64, productIDs []int64) error {
	for _, productID := range productIDs {
		if _, err := q.ExecContext(ctx, insertOrderProductSQL, orderID, productID); err != nil {
			return fmt.Errorf("failed to associate product %d with order %d: %w", productID, orderID, err)
		}
	}
	return nil
}
