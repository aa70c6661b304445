// Package circuitbreaker stops sending statements to a storage backend that
// keeps failing. It is built on github.com/sony/gobreaker.
package circuitbreaker

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sony/gobreaker"
)

// stateGauge exports 0 closed, 1 half-open, 2 open, matching gobreaker.State.
var stateGauge = promauto.NewGaugeVec(prometheus.GaugeOpts{
	Name: "blogful_circuit_breaker_state",
	Help: "Circuit breaker state (0 closed, 1 half-open, 2 open)",
}, []string{"name"})

// Config tunes one breaker.
type Config struct {
	Name string

	// MaxRequests may pass while half-open.
	MaxRequests uint32

	// Interval clears the closed-state counts. Zero never clears them.
	Interval time.Duration

	// Timeout is the open period before a half-open probe.
	Timeout time.Duration

	// The breaker opens once at least MinRequests were seen and the failed
	// share reaches TripRatio.
	MinRequests uint32
	TripRatio   float64

	// IsSuccessful decides which errors leave the counts alone.
	// Nil means only a nil error is a success.
	IsSuccessful func(err error) bool

	// Logger receives state changes. Nil uses slog.Default().
	Logger *slog.Logger
}

// CircuitBreaker is a named gobreaker whose state is logged and exported.
type CircuitBreaker struct {
	breaker *gobreaker.CircuitBreaker
}

// New builds a closed breaker from cfg.
func New(cfg Config) *CircuitBreaker {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	stateGauge.WithLabelValues(cfg.Name).Set(float64(gobreaker.StateClosed))

	return &CircuitBreaker{breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:         cfg.Name,
		MaxRequests:  cfg.MaxRequests,
		Interval:     cfg.Interval,
		Timeout:      cfg.Timeout,
		ReadyToTrip:  tripWhen(cfg.MinRequests, cfg.TripRatio),
		IsSuccessful: cfg.IsSuccessful,
		OnStateChange: func(name string, from, to gobreaker.State) {
			stateGauge.WithLabelValues(name).Set(float64(to))
			logger.Warn("circuit breaker state changed",
				slog.String("circuit", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()))
		},
	})}
}

func tripWhen(minRequests uint32, ratio float64) func(gobreaker.Counts) bool {
	return func(c gobreaker.Counts) bool {
		if c.Requests == 0 || c.Requests < minRequests {
			return false
		}
		return float64(c.TotalFailures)/float64(c.Requests) >= ratio
	}
}

// Execute runs fn unless the breaker is open, in which case it returns
// gobreaker.ErrOpenState (or ErrTooManyRequests while half-open).
func (cb *CircuitBreaker) Execute(fn func() (interface{}, error)) (interface{}, error) {
	return cb.breaker.Execute(fn)
}

func (cb *CircuitBreaker) State() gobreaker.State { return cb.breaker.State() }

// IsOpen reports whether calls are currently rejected.
func (cb *CircuitBreaker) IsOpen() bool {
	return cb.breaker.State() == gobreaker.StateOpen
}
