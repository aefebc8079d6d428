// pkg/db/executor.go
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// ErrNoGeneratedID is returned when an insert declared to return a generated
// identifier produces none.
var ErrNoGeneratedID = errors.New("no generated id returned by insert")

// Queryer is the subset of sqlx operations the statement helpers need.
// Both *sqlx.DB and *sqlx.Tx implement it, so every helper can run either on
// a pooled connection or inside a transaction.
type Queryer interface {
	QueryxContext(ctx context.Context, query string, args ...interface{}) (*sqlx.Rows, error)
	QueryRowxContext(ctx context.Context, query string, args ...interface{}) *sqlx.Row
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// Query runs a parameterized read and hands the raw row stream to decode.
// The rows are closed on every exit path, including a decode failure.
func Query[T any](ctx context.Context, q Queryer, query string, decode func(*sqlx.Rows) (T, error), args ...interface{}) (T, error) {
	var zero T
	rows, err := q.QueryxContext(ctx, query, args...)
	if err != nil {
		return zero, fmt.Errorf("failed to execute query: %w", err)
	}
	defer rows.Close()

	result, err := decode(rows)
	if err != nil {
		return zero, fmt.Errorf("failed to decode rows: %w", err)
	}
	return result, nil
}

// Exec runs a mutating statement and reports how many rows it touched.
func Exec(ctx context.Context, q Queryer, query string, args ...interface{}) (int64, error) {
	result, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to execute statement: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return affected, nil
}

// InsertReturningID runs an insert carrying a RETURNING id clause and scans
// the generated identifier.
func InsertReturningID(ctx context.Context, q Queryer, query string, args ...interface{}) (int64, error) {
	var id int64
	if err := q.QueryRowxContext(ctx, query, args...).Scan(&id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrNoGeneratedID
		}
		return 0, fmt.Errorf("failed to scan generated id: %w", err)
	}
	return id, nil
}
