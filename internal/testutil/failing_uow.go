package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"sync/atomic"

	"github.com/alexanderramin/muster/internal/db"
)

// FailOnNthExecUoW runs a roster write in a real transaction but makes the
// FailOn-th write fail with Err. Import and member removal tests use it to
// check that a half-applied roster change leaves no rows behind.
//
// Only ExecContext counts as a write, starting at 1. Lookups are untouched.
type FailOnNthExecUoW struct {
	DB     *sql.DB
	FailOn int32
	Err    error
}

func (u *FailOnNthExecUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	tx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning roster transaction: %w", err)
	}

	if err := fn(ctx, &writeCounter{DBTX: tx, failOn: u.FailOn, err: u.Err}); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// writeCounter passes reads through and fails the configured write.
type writeCounter struct {
	db.DBTX
	writes atomic.Int32
	failOn int32
	err    error
}

func (w *writeCounter) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if w.writes.Add(1) == w.failOn {
		return nil, w.err
	}
	return w.DBTX.ExecContext(ctx, query, args...)
}
