package store

import (
	"context"
	"database/sql"
)

// DBTX is the parameterized-query surface every backend runs its SQL through.
// Both *sql.DB and *sql.Tx satisfy it, so a store built on a connection pool
// and one bound to a transaction share the same code.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	PrepareContext(ctx context.Context, query string) (*sql.Stmt, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var (
	_ DBTX = (*sql.DB)(nil)
	_ DBTX = (*sql.Tx)(nil)
)
