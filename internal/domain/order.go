// internal/domain/order.go
package domain

// Order represents a customer order. Every order has exactly one owning user
// and zero or more associated products. Relationships are carried as values
// and identifiers rather than back-pointers, so there are no reference cycles
// between orders and products.
type Order struct {
	ID       int64     `json:"id"`
	User     User      `json:"user"`     // Owning user, required
	Products []Product `json:"products"` // Associated products, zero or more
}

// NewOrder creates a new Order instance for the given user and products.
func NewOrder(user User, products []Product) *Order {
	if products == nil {
		products = []Product{}
	}
	return &Order{
		User:     user,
		Products: products,
	}
}

// ProductIDs returns the identifiers of the order's products, in list order.
func (o *Order) ProductIDs() []int64 {
	ids := make([]int64, 0, len(o.Products))
	for _, p := range o.Products {
		ids = append(ids, p.ID)
	}
	return ids
}
