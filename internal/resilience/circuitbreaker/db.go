package circuitbreaker

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sony/gobreaker"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

// DBCircuitBreaker is a storage handle that routes Query and Exec through a
// breaker. Repositories take it in place of *sql.DB.
type DBCircuitBreaker struct {
	cb *CircuitBreaker
	db *sql.DB
}

// DBConfig opens the storage breaker after five straight failures and probes
// again after 30 seconds.
func DBConfig() Config {
	return Config{
		Name:         "database",
		MaxRequests:  3,
		Interval:     time.Minute,
		Timeout:      30 * time.Second,
		MinRequests:  5,
		TripRatio:    1.0,
		IsSuccessful: IsHealthyDBResult,
	}
}

// IsHealthyDBResult reports whether err proves the database is reachable:
// nil, no rows, or a statement the server rejected for its data (Postgres
// classes 22 and 23, SQLite constraint, mismatch and too-big codes).
func IsHealthyDBResult(err error) bool {
	if err == nil || errors.Is(err, sql.ErrNoRows) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return strings.HasPrefix(pgErr.Code, "22") || strings.HasPrefix(pgErr.Code, "23")
	}
	var liteErr *msqlite.Error
	if errors.As(err, &liteErr) {
		switch liteErr.Code() & 0xff {
		case sqlite3lib.SQLITE_CONSTRAINT, sqlite3lib.SQLITE_MISMATCH, sqlite3lib.SQLITE_TOOBIG:
			return true
		}
	}
	return false
}

// NewDBCircuitBreaker guards db with DBConfig.
func NewDBCircuitBreaker(db *sql.DB) *DBCircuitBreaker {
	return NewDBCircuitBreakerWithConfig(db, DBConfig())
}

func NewDBCircuitBreakerWithConfig(db *sql.DB, cfg Config) *DBCircuitBreaker {
	return &DBCircuitBreaker{
		cb: New(cfg),
		db: db,
	}
}

// QueryContext fails fast with gobreaker.ErrOpenState while the breaker is open.
func (dcb *DBCircuitBreaker) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	result, err := dcb.cb.Execute(func() (interface{}, error) {
		return dcb.db.QueryContext(ctx, query, args...)
	})
	if err != nil {
		return nil, err
	}
	return result.(*sql.Rows), nil
}

// ExecContext fails fast with gobreaker.ErrOpenState while the breaker is open.
func (dcb *DBCircuitBreaker) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	result, err := dcb.cb.Execute(func() (interface{}, error) {
		return dcb.db.ExecContext(ctx, query, args...)
	})
	if err != nil {
		return nil, err
	}
	return result.(sql.Result), nil
}

// QueryRowContext executes a query that returns at most one row.
// sql.Row defers its error until Scan, so this call bypasses the breaker.
func (dcb *DBCircuitBreaker) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	return dcb.db.QueryRowContext(ctx, query, args...)
}

func (dcb *DBCircuitBreaker) State() gobreaker.State { return dcb.cb.State() }

// IsOpen lets the health check report a degraded store.
func (dcb *DBCircuitBreaker) IsOpen() bool { return dcb.cb.IsOpen() }

// DB returns the guarded pool, for pings and pool stats.
func (dcb *DBCircuitBreaker) DB() *sql.DB { return dcb.db }
