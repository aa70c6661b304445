package metrics

import (
	"database/sql"
	"time"
)

// RecordDBOperation records the outcome and duration of a repository operation.
func RecordDBOperation(operation string, duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	DBOperationsTotal.WithLabelValues(operation, status).Inc()
	DBOperationDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordConstraintViolation increments the violation counter for kind.
func RecordConstraintViolation(kind string) {
	ConstraintViolationsTotal.WithLabelValues(kind).Inc()
}

// RecordArticleMutation records an insert, update or delete and whether it touched a row.
func RecordArticleMutation(mutation string, rowsAffected int64) {
	affected := "true"
	if rowsAffected == 0 {
		affected = "false"
	}
	ArticleMutationsTotal.WithLabelValues(mutation, affected).Inc()
}

// RecordCatalogQuery records one catalog query and its result size.
func RecordCatalogQuery(query string, rows int) {
	CatalogQueriesTotal.WithLabelValues(query).Inc()
	CatalogRowsReturned.WithLabelValues(query).Observe(float64(rows))
}

// UpdateDBPoolStats copies pool statistics into the connection gauges.
func UpdateDBPoolStats(stats sql.DBStats) {
	DBConnectionsOpen.Set(float64(stats.OpenConnections))
	DBConnectionsIdle.Set(float64(stats.Idle))
}
