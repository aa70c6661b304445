// Package postgres provides PostgreSQL implementations of repository interfaces.
package postgres

import (
	"context"
	"database/sql"
)

// DBTX is the storage handle every repository runs its statements on.
// *sql.DB, *sql.Tx and circuitbreaker.DBCircuitBreaker all satisfy it; the
// repositories never open, close or begin on it.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}
