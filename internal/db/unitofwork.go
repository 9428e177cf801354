package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"
)

// UnitOfWork runs fn inside one transaction. Callers build tx-scoped
// repositories from the DBTX they receive.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx DBTX) error) error
}

// SQLiteUnitOfWork commits when fn returns nil and rolls back otherwise.
// Rollbacks are logged with the error that caused them.
type SQLiteUnitOfWork struct {
	db     *sql.DB
	logger *slog.Logger
}

type UoWOption func(*SQLiteUnitOfWork)

// WithTxLogger sets where rollbacks are reported.
func WithTxLogger(l *slog.Logger) UoWOption {
	return func(u *SQLiteUnitOfWork) {
		if l != nil {
			u.logger = l
		}
	}
}

func NewSQLiteUnitOfWork(db *sql.DB, opts ...UoWOption) *SQLiteUnitOfWork {
	u := &SQLiteUnitOfWork{db: db, logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

func (u *SQLiteUnitOfWork) WithinTx(ctx context.Context, fn func(ctx context.Context, tx DBTX) error) error {
	tx, err := u.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	began := time.Now()

	committed := false
	defer func() {
		if committed {
			return
		}
		// Reached on error returns and on panics alike.
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			u.logger.ErrorContext(ctx, "transaction rollback failed", "error", rbErr)
		}
	}()

	if err := fn(ctx, tx); err != nil {
		u.logger.WarnContext(ctx, "transaction rolled back",
			"error", err,
			"duration_ms", time.Since(began).Milliseconds(),
		)
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	committed = true
	return nil
}
