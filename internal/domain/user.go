// internal/domain/user.go
package domain

// User represents a storefront customer.
type User struct {
	ID    int64  `db:"id" json:"id"`       // Primary key, BIGSERIAL in DB
	Name  string `db:"name" json:"name"`   // Required non-empty
	Email string `db:"email" json:"email"` // Required non-empty, unique at storage level

	// OrderIDs is derived from the orders table on read; it is never written
	// back as a column.
	OrderIDs []int64 `json:"order_ids"`
}

// NewUser creates a new User instance ready for insertion.
func NewUser(name, email string) *User {
	return &User{
		Name:     name,
		Email:    email,
		OrderIDs: []int64{},
	}
}

// ChangeEmail applies an email update in place.
func (u *User) ChangeEmail(email string) {
	u.Email = email
}
