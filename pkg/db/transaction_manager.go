// pkg/db/transaction_manager.go
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// TxBeginner defines the interface for beginning transactions.
// *sqlx.DB implements this.
type TxBeginner interface {
	BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error)
}

// InTransaction runs op inside a single database transaction. It commits when
// op returns nil and rolls back otherwise. A rollback failure never shadows
// the original error from op; both are surfaced together. The connection is
// returned to the pool in its default commit mode on every exit path, since
// ending the transaction (either way) releases it.
func InTransaction(ctx context.Context, beginner TxBeginner, op func(tx *sqlx.Tx) error) error {
	tx, err := beginner.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := op(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			return errors.Join(err, fmt.Errorf("failed to rollback transaction: %w", rbErr))
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
