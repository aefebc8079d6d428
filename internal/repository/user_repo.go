// internal/repository/user_repo.go
package repository

import (
	"context"

	"productstore/internal/domain"
)

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	// Save inserts a new user and sets the generated identifier on it.
	Save(ctx context.Context, user *domain.User) error
	// FindByID retrieves a user by id with the derived order-id list populated.
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	// FindAll retrieves all users ordered by id.
	FindAll(ctx context.Context) ([]domain.User, error)
	// FindPage retrieves one page of users ordered by id.
	// Page and size must each be >= 1.
	FindPage(ctx context.Context, pageNumber, pageSize int) ([]domain.User, error)
	// Update replaces a user's name and email by id.
	Update(ctx context.Context, user *domain.User) error
	// UpdateEmail changes only the email of the identified user.
	UpdateEmail(ctx context.Context, id int64, email string) error
	// Delete removes a user; the schema cascades to their orders and those
	// orders' association rows.
	Delete(ctx context.Context, id int64) error
}
