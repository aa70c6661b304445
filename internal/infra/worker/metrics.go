package worker

import (
	"time"

	"blogful/internal/domain/entity"
	"blogful/internal/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// WorkerMetrics exposes report runs and the latest report values.
type WorkerMetrics struct {
	*config.ConfigMetrics

	// ReportRunsTotal counts report executions by report and status
	// (success/failure).
	ReportRunsTotal *prometheus.CounterVec

	ReportDurationSeconds *prometheus.HistogramVec

	// ReportRows is the row count of the latest successful run per report.
	ReportRows *prometheus.GaugeVec

	LastSuccessTimestamp *prometheus.GaugeVec

	// CategoryTotal is the latest summed price per shopping list category.
	CategoryTotal *prometheus.GaugeVec

	// VideoViews is the latest view count per video and region.
	VideoViews *prometheus.GaugeVec
}

// NewWorkerMetrics registers the worker metrics with the default registry.
func NewWorkerMetrics() *WorkerMetrics {
	return NewWorkerMetricsWith(prometheus.DefaultRegisterer)
}

// NewWorkerMetricsWith registers the worker metrics with reg.
func NewWorkerMetricsWith(reg prometheus.Registerer) *WorkerMetrics {
	factory := promauto.With(reg)
	return &WorkerMetrics{
		ConfigMetrics: config.NewConfigMetricsWith("worker", reg),

		ReportRunsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "worker_report_runs_total",
			Help: "Total number of report runs by report and status",
		}, []string{"report", "status"}),

		ReportDurationSeconds: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "worker_report_duration_seconds",
			Help:    "Duration of one report run in seconds",
			Buckets: []float64{.01, .05, .1, .5, 1, 5, 30, 60},
		}, []string{"report"}),

		ReportRows: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "worker_report_rows",
			Help: "Rows returned by the latest successful report run",
		}, []string{"report"}),

		LastSuccessTimestamp: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "worker_report_last_success_timestamp",
			Help: "Unix timestamp of the last successful report run",
		}, []string{"report"}),

		CategoryTotal: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "blogful_shopping_category_total",
			Help: "Summed shopping list price per category at the latest report",
		}, []string{"category"}),

		VideoViews: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "blogful_video_views",
			Help: "Views per video and region within the report window",
		}, []string{"video", "region"}),
	}
}

// RecordRun records one report execution.
func (m *WorkerMetrics) RecordRun(report string, d time.Duration, rows int, err error) {
	m.ReportDurationSeconds.WithLabelValues(report).Observe(d.Seconds())
	if err != nil {
		m.ReportRunsTotal.WithLabelValues(report, "failure").Inc()
		return
	}
	m.ReportRunsTotal.WithLabelValues(report, "success").Inc()
	m.ReportRows.WithLabelValues(report).Set(float64(rows))
	m.LastSuccessTimestamp.WithLabelValues(report).SetToCurrentTime()
}

// SetCategoryTotals replaces the category gauges with totals.
func (m *WorkerMetrics) SetCategoryTotals(totals []entity.CategoryTotal) {
	m.CategoryTotal.Reset()
	for _, t := range totals {
		m.CategoryTotal.WithLabelValues(t.Category).Set(t.Total)
	}
}

// SetVideoViews replaces the video view gauges with counts.
func (m *WorkerMetrics) SetVideoViews(counts []entity.VideoViewCount) {
	m.VideoViews.Reset()
	for _, c := range counts {
		m.VideoViews.WithLabelValues(c.VideoName, c.Region).Set(float64(c.Views))
	}
}
