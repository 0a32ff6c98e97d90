package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// execer is the write surface shared by *sql.DB and *sql.Tx, so repo
// mutations can run standalone or inside WithTx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// WithTx begins a transaction, runs fn, and commits. If fn or the commit
// fails the transaction is rolled back and the error returned as-is.
func WithTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
