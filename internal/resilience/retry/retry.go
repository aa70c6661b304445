// Package retry waits out a storage backend that is still starting. Only the
// bootstrap ping uses it; statements issued by repositories are never retried.
package retry

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
)

// Config shapes the backoff between attempts.
type Config struct {
	// MaxAttempts counts the first call.
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
	// Jitter adds up to this fraction of each delay, in [0, 1].
	Jitter float64
}

// ConnectConfig covers a database container that comes up a few seconds
// after the service: six attempts over roughly fifteen seconds.
func ConnectConfig() Config {
	return Config{
		MaxAttempts:  6,
		InitialDelay: 500 * time.Millisecond,
		MaxDelay:     5 * time.Second,
		Multiplier:   2.0,
		Jitter:       0.1,
	}
}

// ErrExhausted wraps the last error once every attempt failed.
var ErrExhausted = errors.New("retry attempts exhausted")

// WithBackoff calls fn until it succeeds, returns a non-retryable error, ctx
// ends or the attempts run out. Failed attempts are logged on slog.Default().
func WithBackoff(ctx context.Context, cfg Config, fn func() error) error {
	return Do(ctx, cfg, slog.Default(), fn)
}

// Do is WithBackoff with an explicit logger.
func Do(ctx context.Context, cfg Config, logger *slog.Logger, fn func() error) error {
	delays := delaySchedule(cfg)
	var err error
	for attempt := 1; ; attempt++ {
		if err = fn(); err == nil {
			if attempt > 1 {
				logger.Info("storage reachable after retry", slog.Int("attempt", attempt))
			}
			return nil
		}
		if !IsRetryable(err) {
			return err
		}
		if attempt >= cfg.MaxAttempts {
			return fmt.Errorf("%w after %d attempts: %w", ErrExhausted, attempt, err)
		}

		wait := delays(attempt)
		logger.Warn("storage not reachable, retrying",
			slog.Int("attempt", attempt),
			slog.Int("max_attempts", cfg.MaxAttempts),
			slog.Duration("delay", wait),
			slog.Any("error", err))

		timer := time.NewTimer(wait)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return fmt.Errorf("retry aborted: %w", ctx.Err())
		}
	}
}

// delaySchedule returns the wait after the given failed attempt (1-based):
// InitialDelay * Multiplier^(attempt-1), capped at MaxDelay, plus jitter.
func delaySchedule(cfg Config) func(attempt int) time.Duration {
	return func(attempt int) time.Duration {
		d := float64(cfg.InitialDelay)
		for i := 1; i < attempt; i++ {
			d *= cfg.Multiplier
			if cfg.MaxDelay > 0 && d >= float64(cfg.MaxDelay) {
				d = float64(cfg.MaxDelay)
				break
			}
		}
		return withJitter(time.Duration(d), cfg.Jitter)
	}
}

func withJitter(d time.Duration, fraction float64) time.Duration {
	if fraction <= 0 || d <= 0 {
		return d
	}
	fraction = min(fraction, 1.0)
	// #nosec G404 -- jitter does not need cryptographic randomness.
	return d + time.Duration(rand.Float64()*float64(d)*fraction)
}

// IsRetryable reports whether err looks like the server is not up yet.
// Any answer from the server other than "starting up" is final.
func IsRetryable(err error) bool {
	switch {
	case err == nil,
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "57P03" // cannot_connect_now
	}
	if errors.Is(err, driver.ErrBadConn) || pgconn.SafeToRetry(err) {
		return true
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	for _, errno := range []syscall.Errno{syscall.ECONNREFUSED, syscall.ECONNRESET, syscall.ETIMEDOUT, syscall.ENETUNREACH} {
		if errors.Is(err, errno) {
			return true
		}
	}
	return false
}
