// Package sqlite contains SQLite implementations of the repository
// interfaces and the transaction runner backing them.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
)

// querier is the subset of database/sql shared by *sql.DB and *sql.Tx, so
// repositories work identically inside and outside a transaction.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type txKey struct{}

// conn returns the transaction carried by ctx, or the bare connection.
func conn(ctx context.Context, db *sql.DB) querier {
	if tx, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return tx
	}
	return db
}

// TxRunner implements secondary.TxRunner over a single SQLite connection.
// The open transaction travels in the context, so every repository call
// made inside InTx joins it; a nested InTx joins the outer transaction
// instead of opening a second one.
type TxRunner struct {
	db *sql.DB
}

// NewTxRunner creates a transaction runner for the given database.
func NewTxRunner(db *sql.DB) *TxRunner {
	return &TxRunner{db: db}
}

// InTx runs fn inside one transaction. Any error from fn rolls the whole
// batch back; the commit happens only after fn returns cleanly.
func (r *TxRunner) InTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return fn(ctx)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	committed = true
	return nil
}
