// internal/repository/postgres/product_pg.go
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"productstore/internal/domain"
	"productstore/internal/repository"
	"productstore/internal/util"
	"productstore/pkg/db"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

// productOrderRow is the shape produced by joining one product with its
// associated order ids through orders_products.
type productOrderRow struct {
	ProductID int64           `db:"product_id"`
	Name      string          `db:"product_name"`
	Price     decimal.Decimal `db:"product_price"`
	OrderID   *int64          `db:"order_id"`
}

// ProductRepository implements repository.ProductRepository for PostgreSQL.
type ProductRepository struct {
	db *sqlx.DB
}

// NewProductRepository creates a new ProductRepository backed by the given pool.
func NewProductRepository(db *sqlx.DB) repository.ProductRepository {
	return &ProductRepository{db: db}
}

// Save inserts a new product and sets the generated identifier on it.
func (r *ProductRepository) Save(ctx context.Context, product *domain.Product) error {
	if product.Price.IsNegative() {
		return util.ErrNegativePrice
	}
	id, err := db.InsertReturningID(ctx, r.db, `INSERT INTO products (name, price) VALUES ($1, $2) RETURNING id`,
		product.Name, product.Price)
	if err != nil {
		return fmt.Errorf("failed to save product: %w", err)
	}
	product.ID = id
	return nil
}

// FindByID retrieves a product by id. The derived order-id list is not
// hydrated here; FindWithOrdersByID recomputes it on demand.
func (r *ProductRepository) FindByID(ctx context.Context, id int64) (*domain.Product, error) {
	var product domain.Product
	err := r.db.GetContext(ctx, &product, `SELECT id, name, price FROM products WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get product by ID %d: %w", id, err)
	}
	return &product, nil
}

// FindWithOrdersByID retrieves a product with its order-id list populated
// through the junction table. The list is always recomputed by this query,
// never maintained as a denormalized field on write.
func (r *ProductRepository) FindWithOrdersByID(ctx context.Context, id int64) (*domain.Product, error) {
	query := `SELECT p.id AS product_id, p.name AS product_name, p.price AS product_price, o.id AS order_id
		FROM products p
		LEFT JOIN orders_products op ON p.id = op.product_id
		LEFT JOIN orders o ON op.order_id = o.id
		WHERE p.id = $1
		ORDER BY o.id`
	products, err := db.Query(ctx, r.db, query, decodeProductOrderRows, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get product with orders by ID %d: %w", id, err)
	}
	if len(products) == 0 {
		return nil, util.ErrNotFound
	}
	return &products[0], nil
}

// FindAll retrieves all products ordered by id.
func (r *ProductRepository) FindAll(ctx context.Context) ([]domain.Product, error) {
	products := []domain.Product{}
	if err := r.db.SelectContext(ctx, &products, `SELECT id, name, price FROM products ORDER BY id`); err != nil {
		return nil, fmt.Errorf("failed to get all products: %w", err)
	}
	return products, nil
}

// FindPage retrieves one page of products ordered by id.
func (r *ProductRepository) FindPage(ctx context.Context, pageNumber, pageSize int) ([]domain.Product, error) {
	if err := validatePage(pageNumber, pageSize); err != nil {
		return nil, err
	}
	products := []domain.Product{}
	err := r.db.SelectContext(ctx, &products, `SELECT id, name, price FROM products ORDER BY id LIMIT $1 OFFSET $2`,
		pageSize, pageOffset(pageNumber, pageSize))
	if err != nil {
		return nil, fmt.Errorf("failed to get products page %d: %w", pageNumber, err)
	}
	return products, nil
}

// Update replaces a product's name and price by id.
func (r *ProductRepository) Update(ctx context.Context, product *domain.Product) error {
	if product.Price.IsNegative() {
		return util.ErrNegativePrice
	}
	affected, err := db.Exec(ctx, r.db, `UPDATE products SET name = $1, price = $2 WHERE id = $3`,
		product.Name, product.Price, product.ID)
	if err != nil {
		return fmt.Errorf("failed to update product %d: %w", product.ID, err)
	}
	if affected == 0 {
		return util.ErrNotFound
	}
	return nil
}

// Delete removes the product row. The schema cascades its association rows;
// referencing orders remain, their product lists simply shrink.
func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	affected, err := db.Exec(ctx, r.db, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete product %d: %w", id, err)
	}
	if affected == 0 {
		return util.ErrNotFound
	}
	return nil
}

// decodeProductOrderRows pipes the joined rows through the shared assembler.
func decodeProductOrderRows(rows *sqlx.Rows) ([]domain.Product, error) {
	return assembleRows(rows,
		func(row productOrderRow) int64 { return row.ProductID },
		func(row productOrderRow) *domain.Product {
			return &domain.Product{
				ID:       row.ProductID,
				Name:     row.Name,
				Price:    row.Price,
				OrderIDs: []int64{},
			}
		},
		func(product *domain.Product, row productOrderRow) {
			if row.OrderID == nil {
				return
			}
			product.OrderIDs = append(product.OrderIDs, *row.OrderID)
		},
	)
}
