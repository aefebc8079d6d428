// internal/domain/product.go
package domain

import (
	"github.com/shopspring/decimal" // For precise monetary values
)

// Product represents an item available for ordering.
type Product struct {
	ID    int64           `db:"id" json:"id"`       // Primary key, BIGSERIAL in DB
	Name  string          `db:"name" json:"name"`   // Product name
	Price decimal.Decimal `db:"price" json:"price"` // Non-negative, NUMERIC(12, 2) in DB

	// OrderIDs is derived through the orders_products junction on demand; it
	// is recomputed by query, never maintained as a denormalized field.
	OrderIDs []int64 `json:"order_ids,omitempty"`
}

// NewProduct creates a new Product instance ready for insertion.
func NewProduct(name string, price decimal.Decimal) *Product {
	return &Product{
		Name:  name,
		Price: price,
	}
}

// ApplyUpdate patches the mutable fields in place.
func (p *Product) ApplyUpdate(name string, price decimal.Decimal) {
	p.Name = name
	p.Price = price
}
