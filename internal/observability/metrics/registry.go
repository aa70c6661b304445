// Package metrics provides centralized Prometheus metrics for the application.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Storage metrics track the statements the repositories run.
var (
	// DBOperationsTotal counts repository operations by name and outcome.
	DBOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "blogful_db_operations_total",
			Help: "Total number of repository operations",
		},
		[]string{"operation", "status"},
	)

	// DBOperationDuration measures repository operation duration
	DBOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "blogful_db_operation_duration_seconds",
			Help:    "Repository operation duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 10),
		},
		[]string{"operation"},
	)

	// ConstraintViolationsTotal counts writes rejected by a schema constraint.
	ConstraintViolationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "blogful_constraint_violations_total",
			Help: "Total number of statements rejected by a storage constraint",
		},
		[]string{"kind"},
	)

	// DBConnectionsOpen tracks open connections in the pool
	DBConnectionsOpen = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "blogful_db_connections_open",
			Help: "Number of open database connections",
		},
	)

	// DBConnectionsIdle tracks idle database connections
	DBConnectionsIdle = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "blogful_db_connections_idle",
			Help: "Number of idle database connections",
		},
	)
)

// Business metrics track application-specific operations
var (
	// ArticleMutationsTotal counts article writes by kind and whether a row was affected.
	ArticleMutationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "blogful_article_mutations_total",
			Help: "Total number of article inserts, updates and deletes",
		},
		[]string{"mutation", "affected"},
	)

	// CatalogQueriesTotal counts catalog query executions by query name.
	CatalogQueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "blogful_catalog_queries_total",
			Help: "Total number of catalog queries executed",
		},
		[]string{"query"},
	)

	// CatalogRowsReturned measures how many rows each catalog query returned.
	CatalogRowsReturned = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "blogful_catalog_rows_returned",
			Help:    "Number of rows returned by a catalog query",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250, 1000},
		},
		[]string{"query"},
	)
)
