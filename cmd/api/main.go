package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpSwagger "github.com/swaggo/http-swagger/v2"

	"blogful/internal/config"
	pgRepo "blogful/internal/infra/adapter/persistence/postgres"
	sqliteRepo "blogful/internal/infra/adapter/persistence/sqlite"
	"blogful/internal/infra/db"
	"blogful/internal/observability/logging"
	"blogful/internal/observability/tracing"
	"blogful/internal/resilience/circuitbreaker"

	artUC "blogful/internal/usecase/article"
	catUC "blogful/internal/usecase/catalog"

	hhttp "blogful/internal/handler/http"
	harticle "blogful/internal/handler/http/article"
	hcatalog "blogful/internal/handler/http/catalog"
	"blogful/internal/handler/http/requestid"

	_ "blogful/docs" // swagger docs
)

// @title           Blogful API
// @version         1.0
// @description     Articles CRUD and catalog listings over Postgres.

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /

const (
	cleanupInterval = time.Minute
	clientTTL       = 10 * time.Minute
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		slog.Error("failed to load .env", slog.Any("error", err))
		os.Exit(1)
	}
	cfg, err := config.LoadApp()
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logger := initLogger(cfg)

	if cfg.TracingEnabled {
		shutdown := tracing.InitProvider("blogful-api", cfg.TraceSampleRatio, logger)
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				logger.Error("failed to shut down tracer provider", slog.Any("error", err))
			}
		}()
	}

	database, err := initDatabase(context.Background(), cfg, logger)
	if err != nil {
		logger.Error("failed to open database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	components := setupServer(logger, cfg, database)
	runServer(logger, cfg, components)
}

func initLogger(cfg *config.App) *slog.Logger {
	logger := logging.New(os.Stdout, logging.ParseLevel(os.Getenv("LOG_LEVEL")), cfg.LogFormat)
	slog.SetDefault(logger)
	return logger
}

func initDatabase(ctx context.Context, cfg *config.App, logger *slog.Logger) (*sql.DB, error) {
	switch cfg.DBDriver {
	case config.DriverSQLite:
		logger.Info("using sqlite storage", slog.String("path", cfg.SQLitePath))
		return db.OpenSQLite(ctx, cfg.SQLitePath)
	default:
		return db.Open(ctx, cfg.DatabaseURL, db.ConnectionConfigFromEnv(logger), logger)
	}
}

// ServerComponents holds what runServer needs besides the config.
type ServerComponents struct {
	Handler http.Handler
	Limiter *hhttp.RateLimiter
}

// storageHandle is the handle shared by every repository.
type storageHandle interface {
	pgRepo.DBTX
	sqliteRepo.DBTX
}

func setupServer(logger *slog.Logger, cfg *config.App, database *sql.DB) *ServerComponents {
	var (
		handle  storageHandle = database
		breaker hhttp.BreakerProbe
	)
	if cfg.DBBreakerEnabled {
		cb := circuitbreaker.NewDBCircuitBreaker(database)
		handle, breaker = cb, cb
		logger.Info("database circuit breaker enabled")
	}

	limiter := hhttp.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	if cfg.RateLimitRPS <= 0 {
		logger.Warn("rate limiting is DISABLED - not recommended for production")
	}

	mux := http.NewServeMux()
	mux.Handle("GET /health", &hhttp.HealthHandler{DB: database, Version: cfg.Version, Breaker: breaker, Limiter: limiter})
	mux.Handle("GET /ready", &hhttp.ReadyHandler{DB: database})
	mux.Handle("GET /live", hhttp.LiveHandler{})
	mux.Handle("GET /metrics", hhttp.MetricsHandler())
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	registerRoutes(mux, logger, cfg.DBDriver, handle)

	handler := hhttp.Chain(mux,
		requestid.Middleware,
		tracing.Middleware,
		hhttp.Recover(logger),
		hhttp.Logging(logger),
		hhttp.MetricsMiddleware,
		hhttp.InputValidation(),
		limiter.Limit,
		hhttp.Timeout(cfg.RequestTimeout),
	)
	return &ServerComponents{Handler: handler, Limiter: limiter}
}

// registerRoutes mounts the article routes and, on Postgres, the catalog
// listings. The catalog tables only exist in the Postgres schema.
func registerRoutes(mux *http.ServeMux, logger *slog.Logger, driver string, handle storageHandle) {
	if driver == config.DriverSQLite {
		harticle.Register(mux, artUC.Service{Repo: sqliteRepo.NewArticleRepo(handle)})
		logger.Warn("catalog routes are not available on sqlite storage")
		return
	}
	harticle.Register(mux, artUC.Service{Repo: pgRepo.NewArticleRepo(handle)})
	hcatalog.Register(mux, &catUC.Service{
		Products: pgRepo.NewProductRepo(handle),
		Shopping: pgRepo.NewShoppingListRepo(handle),
		Videos:   pgRepo.NewVideoViewRepo(handle),
	})
}

func runServer(logger *slog.Logger, cfg *config.App, components *ServerComponents) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go components.Limiter.RunCleanup(ctx, cleanupInterval, clientTTL, logger)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           components.Handler,
		ReadHeaderTimeout: 10 * time.Second, // Slowloris
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting",
			slog.String("addr", cfg.HTTPAddr),
			slog.String("version", cfg.Version),
			slog.String("db_driver", cfg.DBDriver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("listen: %w", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
		logger.Info("shutting down server...")
	case err := <-errCh:
		logger.Error("server failed", slog.Any("error", err))
	}

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
	}
	logger.Info("server stopped")
}
