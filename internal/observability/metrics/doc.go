// Package metrics provides Prometheus metrics registry and recording utilities.
//
// This package centralizes the non-HTTP metrics of the service:
//   - Repository operation counts and durations
//   - Constraint violations by kind
//   - Article mutations and catalog query result sizes
//   - Database pool gauges
//
// HTTP request metrics live next to the middleware in internal/handler/http.
// All metrics are registered with the Prometheus default registry and exposed
// via the /metrics endpoint.
//
// Example usage:
//
//	import "blogful/internal/observability/metrics"
//
//	start := time.Now()
//	rows, err := repo.SearchByName(ctx, term)
//	metrics.RecordDBOperation("products.search", time.Since(start), err)
//	metrics.RecordCatalogQuery("search_products", len(rows))
package metrics
