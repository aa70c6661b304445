// Package resilience groups the fault handling around the storage handle.
//
// circuitbreaker.DBCircuitBreaker wraps *sql.DB and satisfies the same DBTX
// interface the repositories take, so it can be swapped in at wiring time:
//
//	repo := postgres.NewArticleRepo(circuitbreaker.NewDBCircuitBreaker(sqlDB))
//
// retry only guards the startup ping in infra/db. Statements issued by the
// repositories are not retried and their errors reach the caller as is.
package resilience
