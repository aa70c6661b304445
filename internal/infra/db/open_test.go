package db

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestDefaultConnectionConfig(t *testing.T) {
	cfg := DefaultConnectionConfig()

	assert.Equal(t, 25, cfg.MaxOpenConns)
	assert.Equal(t, 10, cfg.MaxIdleConns)
	assert.Equal(t, 1*time.Hour, cfg.ConnMaxLifetime)
	assert.Equal(t, 30*time.Minute, cfg.ConnMaxIdleTime)
}

func TestConnectionConfigFromEnv_Defaults(t *testing.T) {
	t.Setenv("DB_MAX_OPEN_CONNS", "")
	t.Setenv("DB_MAX_IDLE_CONNS", "")
	t.Setenv("DB_CONN_MAX_LIFETIME", "")
	t.Setenv("DB_CONN_MAX_IDLE_TIME", "")

	assert.Equal(t, DefaultConnectionConfig(), ConnectionConfigFromEnv(discardLogger()))
}

func TestConnectionConfigFromEnv_Overrides(t *testing.T) {
	t.Setenv("DB_MAX_OPEN_CONNS", "50")
	t.Setenv("DB_MAX_IDLE_CONNS", "5")
	t.Setenv("DB_CONN_MAX_LIFETIME", "2h")
	t.Setenv("DB_CONN_MAX_IDLE_TIME", "10m")

	cfg := ConnectionConfigFromEnv(discardLogger())

	assert.Equal(t, 50, cfg.MaxOpenConns)
	assert.Equal(t, 5, cfg.MaxIdleConns)
	assert.Equal(t, 2*time.Hour, cfg.ConnMaxLifetime)
	assert.Equal(t, 10*time.Minute, cfg.ConnMaxIdleTime)
}

func TestConnectionConfigFromEnv_InvalidValuesFallBack(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "non-numeric open conns", key: "DB_MAX_OPEN_CONNS", value: "invalid"},
		{name: "zero open conns", key: "DB_MAX_OPEN_CONNS", value: "0"},
		{name: "negative idle conns", key: "DB_MAX_IDLE_CONNS", value: "-10"},
		{name: "bad lifetime", key: "DB_CONN_MAX_LIFETIME", value: "forever"},
		{name: "negative idle time", key: "DB_CONN_MAX_IDLE_TIME", value: "-1m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			var buf bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&buf, nil))

			cfg := ConnectionConfigFromEnv(logger)

			assert.Equal(t, DefaultConnectionConfig(), cfg)
			assert.Contains(t, buf.String(), tt.key)
		})
	}
}

func TestOpen_MissingDSN(t *testing.T) {
	_, err := Open(context.Background(), "", DefaultConnectionConfig(), discardLogger())
	assert.True(t, errors.Is(err, ErrMissingDSN))
}

func TestPing(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectPing()

	require.NoError(t, ping(context.Background(), db))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOpenSQLite_Memory(t *testing.T) {
	ctx := context.Background()

	db, err := OpenSQLite(ctx, ":memory:")
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	var n int
	require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM blogful_articles").Scan(&n))
	assert.Equal(t, 0, n)
}

func TestOpenSQLite_EmptyPath(t *testing.T) {
	_, err := OpenSQLite(context.Background(), "  ")
	assert.Error(t, err)
}
