// Package observability groups the service's logging, metrics and tracing
// subpackages.
//
//   - logging: slog construction and request-scoped loggers
//   - metrics: Prometheus collectors for repositories and use cases
//   - tracing: OpenTelemetry provider setup and HTTP span middleware
package observability
