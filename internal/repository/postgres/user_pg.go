// internal/repository/postgres/user_pg.go
package postgres

import (
	"context"
	"errors"
	"fmt"

	"productstore/internal/domain"
	"productstore/internal/repository"
	"productstore/internal/util"
	"productstore/pkg/db"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// userRow is the shape produced by joining users with the ids of their
// orders. A user without orders contributes one row with a NULL order id.
type userRow struct {
	UserID  int64  `db:"user_id"`
	Name    string `db:"name"`
	Email   string `db:"email"`
	OrderID *int64 `db:"order_id"`
}

const selectUsersSQL = `
	SELECT u.id AS user_id, u.name AS name, u.email AS email, o.id AS order_id
	FROM users u
	LEFT JOIN orders o ON u.id = o.user_id`

const selectUsersPageSQL = `
	SELECT u.id AS user_id, u.name AS name, u.email AS email, o.id AS order_id
	FROM (SELECT id, name, email FROM users ORDER BY id LIMIT $1 OFFSET $2) u
	LEFT JOIN orders o ON u.id = o.user_id
	ORDER BY u.id, o.id`

// UserRepository implements repository.UserRepository for PostgreSQL.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new UserRepository backed by the given pool.
func NewUserRepository(db *sqlx.DB) repository.UserRepository {
	return &UserRepository{db: db}
}

// Save inserts a new user and sets the generated identifier on it. Email
// uniqueness is a storage-level constraint; a violation surfaces as
// ErrDuplicateEntry.
func (r *UserRepository) Save(ctx context.Context, user *domain.User) error {
	if user.Name == "" || user.Email == "" {
		return fmt.Errorf("%w: user name and email are required", util.ErrInvalidInput)
	}
	id, err := db.InsertReturningID(ctx, r.db, `INSERT INTO users (name, email) VALUES ($1, $2) RETURNING id`,
		user.Name, user.Email)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: email %q already exists", util.ErrDuplicateEntry, user.Email)
		}
		return fmt.Errorf("failed to save user: %w", err)
	}
	user.ID = id
	return nil
}

// FindByID retrieves a user by id with the derived order-id list populated.
func (r *UserRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	users, err := r.queryUsers(ctx, selectUsersSQL+` WHERE u.id = $1 ORDER BY o.id`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by ID %d: %w", id, err)
	}
	if len(users) == 0 {
		return nil, util.ErrNotFound
	}
	return &users[0], nil
}

// FindAll retrieves all users ordered by id.
func (r *UserRepository) FindAll(ctx context.Context) ([]domain.User, error) {
	users, err := r.queryUsers(ctx, selectUsersSQL+` ORDER BY u.id, o.id`)
	if err != nil {
		return nil, fmt.Errorf("failed to get all users: %w", err)
	}
	return users, nil
}

// FindPage retrieves one page of users ordered by id. Pagination applies to
// the users table before the join, so a page always holds pageSize users.
func (r *UserRepository) FindPage(ctx context.Context, pageNumber, pageSize int) ([]domain.User, error) {
	if err := validatePage(pageNumber, pageSize); err != nil {
		return nil, err
	}
	users, err := r.queryUsers(ctx, selectUsersPageSQL, pageSize, pageOffset(pageNumber, pageSize))
	if err != nil {
		return nil, fmt.Errorf("failed to get users page %d: %w", pageNumber, err)
	}
	return users, nil
}

// Update replaces a user's name and email by id.
func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	if user.Name == "" || user.Email == "" {
		return fmt.Errorf("%w: user name and email are required", util.ErrInvalidInput)
	}
	affected, err := db.Exec(ctx, r.db, `UPDATE users SET name = $1, email = $2 WHERE id = $3`,
		user.Name, user.Email, user.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: email %q already exists", util.ErrDuplicateEntry, user.Email)
		}
		return fmt.Errorf("failed to update user %d: %w", user.ID, err)
	}
	if affected == 0 {
		return util.ErrNotFound
	}
	return nil
}

// UpdateEmail changes only the email of the identified user.
func (r *UserRepository) UpdateEmail(ctx context.Context, id int64, email string) error {
	if email == "" {
		return fmt.Errorf("%w: email is required", util.ErrInvalidInput)
	}
	affected, err := db.Exec(ctx, r.db, `UPDATE users SET email = $1 WHERE id = $2`, email, id)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: email %q already exists", util.ErrDuplicateEntry, email)
		}
		return fmt.Errorf("failed to update email for user %d: %w", id, err)
	}
	if affected == 0 {
		return util.ErrNotFound
	}
	return nil
}

// Delete removes the user row. The schema cascades the delete to the user's
// orders and, transitively, their association rows.
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	affected, err := db.Exec(ctx, r.db, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user %d: %w", id, err)
	}
	if affected == 0 {
		return util.ErrNotFound
	}
	return nil
}

func (r *UserRepository) queryUsers(ctx context.Context, query string, args ...interface{}) ([]domain.User, error) {
	return db.Query(ctx, r.db, query, decodeUserRows, args...)
}

// decodeUserRows pipes the joined rows through the shared assembler.
func decodeUserRows(rows *sqlx.Rows) ([]domain.User, error) {
	return assembleRows(rows,
		func(row userRow) int64 { return row.UserID },
		func(row userRow) *domain.User {
			return &domain.User{
				ID:       row.UserID,
				Name:     row.Name,
				Email:    row.Email,
				OrderIDs: []int64{},
			}
		},
		func(user *domain.User, row userRow) {
			if row.OrderID == nil {
				return
			}
			user.OrderIDs = append(user.OrderIDs, *row.OrderID)
		},
	)
}

// isUniqueViolation reports whether err is a PostgreSQL unique-constraint
// violation.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation"
}
