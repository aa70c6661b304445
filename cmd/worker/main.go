package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata" // WORKER_TIMEZONE on images without zoneinfo

	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"

	appconfig "blogful/internal/config"
	pgRepo "blogful/internal/infra/adapter/persistence/postgres"
	"blogful/internal/infra/db"
	workerPkg "blogful/internal/infra/worker"
	"blogful/internal/observability/logging"
	"blogful/internal/observability/tracing"
	"blogful/internal/pkg/config"
	"blogful/internal/resilience/circuitbreaker"
	catUC "blogful/internal/usecase/catalog"
)

func main() {
	if err := appconfig.LoadDotEnv(); err != nil {
		slog.Error("failed to load .env", slog.Any("error", err))
		os.Exit(1)
	}
	logger := logging.NewLogger()
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("worker stopped with error", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Fail-open: invalid settings fall back to defaults.
	metrics := workerPkg.NewWorkerMetrics()
	cfg := workerPkg.LoadConfigFromEnv(logger, metrics.ConfigMetrics)
	logger.Info("worker configuration loaded",
		slog.String("cron_schedule", cfg.CronSchedule),
		slog.String("timezone", cfg.Timezone),
		slog.Duration("report_timeout", cfg.ReportTimeout),
		slog.Int("max_concurrent", cfg.MaxConcurrent),
		slog.Int("window_days", cfg.WindowDays),
		slog.Int("health_port", cfg.HealthPort),
		slog.Int("metrics_port", cfg.MetricsPort))

	if config.LoadEnvBool("TRACING_ENABLED", false).Value {
		shutdown := tracing.InitProvider("blogful-worker", 1, logger)
		defer func() { _ = shutdown(context.Background()) }()
	}

	plan, err := workerPkg.LoadPlan(cfg.ReportsFile, cfg.WindowDays)
	if err != nil {
		return err
	}
	logger.Info("report plan loaded",
		slog.String("file", cfg.ReportsFile),
		slog.Int("active_reports", len(plan.Active())))

	database, err := db.Open(ctx, os.Getenv("DATABASE_URL"), db.ConnectionConfigFromEnv(logger), logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()
	handle := circuitbreaker.NewDBCircuitBreaker(database)

	runner := &workerPkg.Runner{
		Catalog: &catUC.Service{
			Products: pgRepo.NewProductRepo(handle),
			Shopping: pgRepo.NewShoppingListRepo(handle),
			Videos:   pgRepo.NewVideoViewRepo(handle),
		},
		Plan:          plan,
		Metrics:       metrics,
		Logger:        logger,
		Timeout:       cfg.ReportTimeout,
		MaxConcurrent: cfg.MaxConcurrent,
	}
	health := workerPkg.NewHealthServer(fmt.Sprintf(":%d", cfg.HealthPort), logger)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return ignoreClosed(health.Start(gctx)) })
	g.Go(func() error {
		return ignoreClosed(workerPkg.StartMetricsServer(gctx, fmt.Sprintf(":%d", cfg.MetricsPort), logger))
	})
	g.Go(func() error { return schedule(gctx, logger, cfg, runner, health) })
	return g.Wait()
}

// schedule runs the plan on the cron schedule until ctx is done.
func schedule(ctx context.Context, logger *slog.Logger, cfg *workerPkg.WorkerConfig, runner *workerPkg.Runner, health *workerPkg.HealthServer) error {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Error("invalid timezone, using UTC", slog.String("timezone", cfg.Timezone), slog.Any("error", err))
		loc = time.UTC
	}

	c := cron.New(
		cron.WithLocation(loc),
		cron.WithParser(config.CronParser),
		cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
	)
	job := func() {
		summary, err := runner.Run(ctx)
		health.RecordRun(summary)
		if err != nil {
			logger.Warn("report run had failures", slog.Int("failed", summary.Failed))
		}
	}
	if _, err := c.AddFunc(cfg.CronSchedule, job); err != nil {
		return fmt.Errorf("add cron job: %w", err)
	}

	if config.LoadEnvBool("REPORT_RUN_ON_START", false).Value {
		job()
	}

	c.Start()
	health.SetReady(true)
	logger.Info("worker started", slog.String("schedule", cfg.CronSchedule), slog.String("timezone", loc.String()))

	<-ctx.Done()
	health.SetReady(false)
	// wait for a running job to finish
	<-c.Stop().Done()
	logger.Info("worker stopped")
	return nil
}

func ignoreClosed(err error) error {
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
