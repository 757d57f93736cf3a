package db

import (
	"context"
	"database/sql"
	"fmt"
)

// UnitOfWork manages transactional boundaries. The callback receives a DBTX
// backed by a *sql.Tx; callers create tx-scoped repositories from it.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx DBTX) error) error
	// WithinReadTx runs fn in a deferred transaction so multi-table reads
	// observe one consistent snapshot. fn must not write.
	WithinReadTx(ctx context.Context, fn func(ctx context.Context, tx DBTX) error) error
}

// SQLiteUnitOfWork implements UnitOfWork using database/sql transactions.
type SQLiteUnitOfWork struct {
	db *sql.DB
}

func NewSQLiteUnitOfWork(db *sql.DB) *SQLiteUnitOfWork {
	return &SQLiteUnitOfWork{db: db}
}

func (u *SQLiteUnitOfWork) WithinTx(ctx context.Context, fn func(ctx context.Context, tx DBTX) error) error {
	return u.run(ctx, nil, fn)
}

// WithinReadTx begins deferred, so readers never wait on the write lock, and
// sets query_only for the duration so a write inside fn fails.
func (u *SQLiteUnitOfWork) WithinReadTx(ctx context.Context, fn func(ctx context.Context, tx DBTX) error) error {
	return u.run(ctx, &sql.TxOptions{ReadOnly: true}, func(ctx context.Context, tx DBTX) (err error) {
		if _, err := tx.ExecContext(ctx, "PRAGMA query_only = ON"); err != nil {
			return fmt.Errorf("entering read-only mode: %w", err)
		}
		// query_only belongs to the pooled connection, not the transaction.
		defer func() {
			if _, offErr := tx.ExecContext(context.WithoutCancel(ctx), "PRAGMA query_only = OFF"); offErr != nil && err == nil {
				err = fmt.Errorf("leaving read-only mode: %w", offErr)
			}
		}()
		return fn(ctx, tx)
	})
}

func (u *SQLiteUnitOfWork) run(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context, tx DBTX) error) error {
	tx, err := u.db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(ctx, tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback failed: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}
