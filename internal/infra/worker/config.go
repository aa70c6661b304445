// Package worker holds the building blocks of the report worker: its
// fail-open configuration, the YAML report plan, the report runner and the
// health and metrics surfaces.
package worker

import (
	"fmt"
	"log/slog"
	"time"

	"blogful/internal/pkg/config"
)

// WorkerConfig controls when and how the report worker runs.
type WorkerConfig struct {
	// CronSchedule is a five-field cron expression, e.g. "0 6 * * *".
	CronSchedule string
	// Timezone is the IANA zone the schedule is evaluated in.
	Timezone string
	// ReportTimeout bounds one full run of the plan.
	ReportTimeout time.Duration
	// MaxConcurrent caps how many reports of a run execute at once.
	MaxConcurrent int
	// WindowDays is the default day window for reports that take one.
	WindowDays int
	HealthPort  int
	MetricsPort int
	// ReportsFile is an optional YAML report plan. Empty means DefaultPlan.
	ReportsFile string
}

// DefaultConfig runs every report once a day at 06:00 UTC over the last week.
func DefaultConfig() WorkerConfig {
	return WorkerConfig{
		CronSchedule:  "0 6 * * *",
		Timezone:      "UTC",
		ReportTimeout: 5 * time.Minute,
		MaxConcurrent: 3,
		WindowDays:    7,
		HealthPort:    9091,
		MetricsPort:   9090,
	}
}

// Validate reports every invalid field at once.
func (c *WorkerConfig) Validate() error {
	var errs []error

	if err := config.ValidateCronSchedule(c.CronSchedule); err != nil {
		errs = append(errs, fmt.Errorf("cron schedule: %w", err))
	}
	if err := config.ValidateTimezone(c.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("timezone: %w", err))
	}
	if err := validateReportTimeout(c.ReportTimeout); err != nil {
		errs = append(errs, fmt.Errorf("report timeout: %w", err))
	}
	if err := config.ValidateIntRange(c.MaxConcurrent, 1, 10); err != nil {
		errs = append(errs, fmt.Errorf("max concurrent: %w", err))
	}
	if err := config.ValidateIntRange(c.WindowDays, 0, 36500); err != nil {
		errs = append(errs, fmt.Errorf("window days: %w", err))
	}
	if err := config.ValidateIntRange(c.HealthPort, 1024, 65535); err != nil {
		errs = append(errs, fmt.Errorf("health port: %w", err))
	}
	if err := config.ValidateIntRange(c.MetricsPort, 1024, 65535); err != nil {
		errs = append(errs, fmt.Errorf("metrics port: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation failed: %v", errs)
	}
	return nil
}

func validateReportTimeout(d time.Duration) error {
	if err := config.ValidatePositiveDuration(d); err != nil {
		return err
	}
	if d < time.Second || d > time.Hour {
		return fmt.Errorf("duration %v outside [1s, 1h]", d)
	}
	return nil
}

// fallbackTracker logs fallbacks and remembers which fields fell back.
type fallbackTracker struct {
	logger *slog.Logger
	fields []string
}

func track[T any](t *fallbackTracker, field string, r config.LoadResult[T]) T {
	if r.FallbackApplied {
		t.fields = append(t.fields, field)
		for _, w := range r.Warnings {
			t.logger.Warn("Configuration fallback applied",
				slog.String("field", field),
				slog.String("warning", w))
		}
	}
	return r.Value
}

// LoadConfigFromEnv reads the worker settings. Invalid values fall back to
// DefaultConfig, are logged and are counted in metrics; the result is
// always usable.
//
//	CRON_SCHEDULE, WORKER_TIMEZONE, REPORT_TIMEOUT, REPORT_MAX_CONCURRENT,
//	REPORT_WINDOW_DAYS, WORKER_HEALTH_PORT, METRICS_PORT, REPORTS_FILE
func LoadConfigFromEnv(logger *slog.Logger, metrics *config.ConfigMetrics) *WorkerConfig {
	cfg := DefaultConfig()
	t := &fallbackTracker{logger: logger}

	cfg.CronSchedule = track(t, "cron_schedule",
		config.LoadEnvWithFallback("CRON_SCHEDULE", cfg.CronSchedule, config.ValidateCronSchedule))
	cfg.Timezone = track(t, "timezone",
		config.LoadEnvWithFallback("WORKER_TIMEZONE", cfg.Timezone, config.ValidateTimezone))
	cfg.ReportTimeout = track(t, "report_timeout",
		config.LoadEnvDuration("REPORT_TIMEOUT", cfg.ReportTimeout, validateReportTimeout))
	cfg.MaxConcurrent = track(t, "max_concurrent",
		config.LoadEnvInt("REPORT_MAX_CONCURRENT", cfg.MaxConcurrent, config.IntRange(1, 10)))
	cfg.WindowDays = track(t, "window_days",
		config.LoadEnvInt("REPORT_WINDOW_DAYS", cfg.WindowDays, config.IntRange(0, 36500)))
	cfg.HealthPort = track(t, "health_port",
		config.LoadEnvInt("WORKER_HEALTH_PORT", cfg.HealthPort, config.IntRange(1024, 65535)))
	cfg.MetricsPort = track(t, "metrics_port",
		config.LoadEnvInt("METRICS_PORT", cfg.MetricsPort, config.IntRange(1024, 65535)))
	cfg.ReportsFile = config.LoadEnvString("REPORTS_FILE", "")

	if metrics != nil {
		metrics.RecordLoad(t.fields)
	}
	return &cfg
}
