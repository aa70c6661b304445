// Package http holds the HTTP server plumbing: middleware, health and
// metrics endpoints. Resource handlers live in subpackages.
package http

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"blogful/internal/handler/http/respond"
	"blogful/internal/observability/logging"
	"blogful/internal/observability/metrics"
)

// Health states.
const (
	StatusHealthy   = "healthy"
	StatusDegraded  = "degraded"
	StatusUnhealthy = "unhealthy"
)

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp string                 `json:"timestamp"`
	Checks    map[string]CheckStatus `json:"checks"`
	Version   string                 `json:"version"`
}

// CheckStatus is the result of one health check.
type CheckStatus struct {
	Status  string         `json:"status"`
	Message string         `json:"message,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

// BreakerProbe reports whether the storage circuit breaker is open.
type BreakerProbe interface {
	IsOpen() bool
}

// HealthHandler pings the database and reports pool, breaker and rate
// limiter state. It answers 503 only when the database is unreachable.
type HealthHandler struct {
	DB      *sql.DB
	Version string
	Breaker BreakerProbe
	Limiter *RateLimiter
}

// ServeHTTP godoc
// @Summary      Health check
// @Tags         ops
// @Produce      json
// @Success      200 {object} HealthResponse
// @Failure      503 {object} HealthResponse
// @Router       /health [get]
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	checks := map[string]CheckStatus{"database": h.checkDatabase(ctx)}
	if h.Breaker != nil {
		checks["circuit_breaker"] = h.checkBreaker()
	}
	if h.Limiter != nil {
		checks["rate_limiter"] = CheckStatus{
			Status:  StatusHealthy,
			Details: map[string]any{"active_clients": h.Limiter.Clients()},
		}
	}

	status, code := StatusHealthy, http.StatusOK
	for _, c := range checks {
		switch c.Status {
		case StatusUnhealthy:
			status, code = StatusUnhealthy, http.StatusServiceUnavailable
		case StatusDegraded:
			if status == StatusHealthy {
				status = StatusDegraded
			}
		}
	}

	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	respond.JSON(w, code, HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
		Version:   h.Version,
	})
}

func (h *HealthHandler) checkDatabase(ctx context.Context) CheckStatus {
	if h.DB == nil {
		return CheckStatus{Status: StatusUnhealthy, Message: "not configured"}
	}
	if err := h.DB.PingContext(ctx); err != nil {
		return CheckStatus{Status: StatusUnhealthy, Message: logging.SanitizeError(err)}
	}

	stats := h.DB.Stats()
	metrics.UpdateDBPoolStats(stats)
	details := map[string]any{
		"max_open_connections": stats.MaxOpenConnections,
		"open_connections":     stats.OpenConnections,
		"in_use":               stats.InUse,
		"idle":                 stats.Idle,
		"wait_count":           stats.WaitCount,
		"wait_duration_ms":     stats.WaitDuration.Milliseconds(),
	}
	if stats.MaxOpenConnections > 0 {
		util := float64(stats.InUse) / float64(stats.MaxOpenConnections) * 100
		details["utilization_percent"] = util
		if util >= 80 {
			return CheckStatus{Status: StatusDegraded, Message: "connection pool utilization above 80%", Details: details}
		}
	}
	return CheckStatus{Status: StatusHealthy, Details: details}
}

func (h *HealthHandler) checkBreaker() CheckStatus {
	if h.Breaker.IsOpen() {
		return CheckStatus{Status: StatusDegraded, Message: "database circuit breaker is open"}
	}
	return CheckStatus{Status: StatusHealthy}
}

// ReadyHandler answers 200 once the database accepts connections.
type ReadyHandler struct {
	DB *sql.DB
}

func (h *ReadyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if h.DB == nil {
		http.Error(w, "database not configured", http.StatusServiceUnavailable)
		return
	}
	if err := h.DB.PingContext(ctx); err != nil {
		http.Error(w, "database not ready", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/plain")
	_, _ = w.Write([]byte("ready"))
}

// LiveHandler always answers 200.
type LiveHandler struct{}

func (LiveHandler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	_, _ = w.Write([]byte("alive"))
}
