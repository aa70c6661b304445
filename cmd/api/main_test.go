package main

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"blogful/internal/config"
	"blogful/internal/handler/http/requestid"
	"blogful/internal/infra/db"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

/* ───────── ヘルパ ───────── */

func newTestServer(t *testing.T, breaker bool) http.Handler {
	t.Helper()
	database, err := db.OpenSQLite(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	cfg := &config.App{
		DBDriver:         config.DriverSQLite,
		Version:          "test",
		RequestTimeout:   5 * time.Second,
		RateLimitRPS:     0,
		RateLimitBurst:   1,
		DBBreakerEnabled: breaker,
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return setupServer(logger, cfg, database).Handler
}

func serve(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	h.ServeHTTP(rr, req)
	return rr
}

/* ───────── テスト ───────── */

func TestSetupServer_ArticleRoundTrip(t *testing.T) {
	for _, breaker := range []bool{true, false} {
		h := newTestServer(t, breaker)

		rr := serve(h, http.MethodPost, "/articles", `{"title":"hello","date_published":"2029-01-22T16:28:32.615Z"}`)
		require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
		assert.NotEmpty(t, rr.Header().Get(requestid.RequestIDHeader))

		rr = serve(h, http.MethodGet, "/articles/1", "")
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"title":"hello"`)
	}
}

func TestSetupServer_OperationalEndpoints(t *testing.T) {
	h := newTestServer(t, true)

	assert.Equal(t, http.StatusOK, serve(h, http.MethodGet, "/live", "").Code)
	assert.Equal(t, http.StatusOK, serve(h, http.MethodGet, "/ready", "").Code)

	rr := serve(h, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"version":"test"`)

	rr = serve(h, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "blogful_http_requests_total")

	rr = serve(h, http.MethodGet, "/swagger/doc.json", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Blogful API")
}

func TestSetupServer_CatalogNotMountedOnSQLite(t *testing.T) {
	h := newTestServer(t, false)
	assert.Equal(t, http.StatusNotFound, serve(h, http.MethodGet, "/products", "").Code)
}
