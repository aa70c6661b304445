package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"blogful/internal/domain/entity"
	"blogful/internal/observability/logging"
	"blogful/internal/observability/tracing"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"
)

// Catalog is the subset of the catalog service the reports read.
type Catalog interface {
	MostPopularVideos(ctx context.Context, days int) ([]entity.VideoViewCount, error)
	TotalCostPerCategory(ctx context.Context) ([]entity.CategoryTotal, error)
	ShoppingItemsAddedAfter(ctx context.Context, days int) ([]entity.ShoppingItemAdded, error)
}

// ReportResult is the outcome of one report.
type ReportResult struct {
	Name     string        `json:"name"`
	Kind     ReportKind    `json:"kind"`
	Rows     int           `json:"rows"`
	Duration time.Duration `json:"duration_ns"`
	Error    string        `json:"error,omitempty"`
}

// RunSummary is the outcome of one run of the plan.
type RunSummary struct {
	StartedAt time.Time      `json:"started_at"`
	Duration  time.Duration  `json:"duration_ns"`
	Reports   []ReportResult `json:"reports"`
	Failed    int            `json:"failed"`
}

// Runner executes the plan against the catalog.
type Runner struct {
	Catalog       Catalog
	Plan          Plan
	Metrics       *WorkerMetrics
	Logger        *slog.Logger
	Timeout       time.Duration
	MaxConcurrent int
}

// Run executes every active report concurrently. A failing report does not
// stop the others; the returned error joins every failure.
func (r *Runner) Run(ctx context.Context) (summary RunSummary, err error) {
	ctx, span := tracing.StartSpan(ctx, "worker.run")
	defer func() { tracing.EndSpan(span, err) }()

	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	reports := r.Plan.Active()
	summary = RunSummary{StartedAt: time.Now(), Reports: make([]ReportResult, len(reports))}
	errs := make([]error, len(reports))

	var g errgroup.Group
	if r.MaxConcurrent > 0 {
		g.SetLimit(r.MaxConcurrent)
	}
	for i, rep := range reports {
		g.Go(func() error {
			summary.Reports[i], errs[i] = r.runReport(ctx, rep)
			return nil
		})
	}
	_ = g.Wait()

	for _, res := range summary.Reports {
		if res.Error != "" {
			summary.Failed++
		}
	}
	summary.Duration = time.Since(summary.StartedAt)
	span.SetAttributes(attribute.Int("reports", len(reports)), attribute.Int("failed", summary.Failed))

	r.Logger.Info("report run finished",
		slog.Int("reports", len(reports)),
		slog.Int("failed", summary.Failed),
		slog.Duration("duration", summary.Duration))
	return summary, errors.Join(errs...)
}

func (r *Runner) runReport(ctx context.Context, rep Report) (ReportResult, error) {
	start := time.Now()
	rows, err := r.query(ctx, rep)
	res := ReportResult{Name: rep.Name, Kind: rep.Kind, Rows: rows, Duration: time.Since(start)}
	if r.Metrics != nil {
		r.Metrics.RecordRun(rep.Name, res.Duration, rows, err)
	}
	if err != nil {
		res.Error = logging.SanitizeError(err)
		r.Logger.Error("report failed",
			slog.String("report", rep.Name),
			slog.String("error", res.Error))
		return res, fmt.Errorf("report %s: %w", rep.Name, err)
	}
	return res, nil
}

func (r *Runner) query(ctx context.Context, rep Report) (int, error) {
	switch rep.Kind {
	case KindPopularVideos:
		counts, err := r.Catalog.MostPopularVideos(ctx, rep.Window())
		if err != nil {
			return 0, err
		}
		if r.Metrics != nil {
			r.Metrics.SetVideoViews(counts)
		}
		for _, c := range counts {
			r.Logger.Info("popular video",
				slog.String("report", rep.Name),
				slog.String("video", c.VideoName),
				slog.String("region", c.Region),
				slog.Int64("views", c.Views))
		}
		return len(counts), nil

	case KindCategoryTotals:
		totals, err := r.Catalog.TotalCostPerCategory(ctx)
		if err != nil {
			return 0, err
		}
		if r.Metrics != nil {
			r.Metrics.SetCategoryTotals(totals)
		}
		for _, t := range totals {
			r.Logger.Info("category total",
				slog.String("report", rep.Name),
				slog.String("category", t.Category),
				slog.Float64("total", t.Total))
		}
		return len(totals), nil

	case KindRecentItems:
		items, err := r.Catalog.ShoppingItemsAddedAfter(ctx, rep.Window())
		if err != nil {
			return 0, err
		}
		r.Logger.Info("recent shopping items",
			slog.String("report", rep.Name),
			slog.Int("days", rep.Window()),
			slog.Int("items", len(items)))
		return len(items), nil
	}
	return 0, fmt.Errorf("unknown report kind %q", rep.Kind)
}
