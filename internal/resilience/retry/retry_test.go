package retry

import (
	"bytes"
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"syscall"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
)

func fastConfig(attempts int) Config {
	return Config{
		MaxAttempts:  attempts,
		InitialDelay: time.Millisecond,
		MaxDelay:     5 * time.Millisecond,
		Multiplier:   2.0,
	}
}

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

var refused = fmt.Errorf("dial tcp: %w", syscall.ECONNREFUSED)

func TestDo_FirstAttempt(t *testing.T) {
	calls := 0
	err := WithBackoff(context.Background(), fastConfig(3), func() error {
		calls++
		return nil
	})
	if err != nil || calls != 1 {
		t.Fatalf("err=%v calls=%d", err, calls)
	}
}

func TestDo_RecoversAndLogs(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	calls := 0
	err := Do(context.Background(), fastConfig(5), logger, func() error {
		calls++
		if calls < 3 {
			return refused
		}
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
	if !bytes.Contains(buf.Bytes(), []byte("storage reachable after retry")) {
		t.Errorf("missing recovery log: %s", buf.String())
	}
}

func TestDo_Exhausted(t *testing.T) {
	calls := 0
	err := WithBackoff(context.Background(), fastConfig(3), func() error {
		calls++
		return refused
	})
	if !errors.Is(err, ErrExhausted) || !errors.Is(err, syscall.ECONNREFUSED) {
		t.Fatalf("expected exhausted wrapping the last error, got %v", err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestDo_NonRetryableStopsImmediately(t *testing.T) {
	authErr := &pgconn.PgError{Code: "28P01"}
	calls := 0
	err := WithBackoff(context.Background(), fastConfig(5), func() error {
		calls++
		return authErr
	})
	if !errors.Is(err, authErr) || calls != 1 {
		t.Fatalf("err=%v calls=%d", err, calls)
	}
}

func TestDo_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cfg := fastConfig(10)
	cfg.InitialDelay = time.Hour
	cfg.MaxDelay = time.Hour

	calls := 0
	err := WithBackoff(ctx, cfg, func() error {
		calls++
		cancel()
		return refused
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestDelaySchedule(t *testing.T) {
	next := delaySchedule(Config{InitialDelay: 100 * time.Millisecond, MaxDelay: time.Second, Multiplier: 3})
	want := []time.Duration{100 * time.Millisecond, 300 * time.Millisecond, 900 * time.Millisecond, time.Second, time.Second}
	for i, w := range want {
		if got := next(i + 1); got != w {
			t.Errorf("attempt %d: delay = %v, want %v", i+1, got, w)
		}
	}
}

func TestWithJitter(t *testing.T) {
	base := 100 * time.Millisecond
	for i := 0; i < 50; i++ {
		got := withJitter(base, 0.2)
		if got < base || got > base+20*time.Millisecond {
			t.Fatalf("jittered delay %v outside [100ms, 120ms]", got)
		}
	}
	if got := withJitter(base, 0); got != base {
		t.Errorf("zero fraction changed the delay: %v", got)
	}
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		retryable bool
	}{
		{name: "nil", err: nil, retryable: false},
		{name: "context canceled", err: context.Canceled, retryable: false},
		{name: "deadline exceeded", err: fmt.Errorf("ping: %w", context.DeadlineExceeded), retryable: false},
		{name: "bad conn", err: driver.ErrBadConn, retryable: true},
		{name: "connection refused", err: refused, retryable: true},
		{name: "network timeout", err: timeoutErr{}, retryable: true},
		{name: "dial op error", err: &net.OpError{Op: "dial", Err: errors.New("no route")}, retryable: true},
		{name: "database starting up", err: &pgconn.PgError{Code: "57P03"}, retryable: true},
		{name: "not-null violation", err: &pgconn.PgError{Code: "23502"}, retryable: false},
		{name: "generic error", err: errors.New("boom"), retryable: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRetryable(tt.err); got != tt.retryable {
				t.Errorf("IsRetryable(%v) = %v, want %v", tt.err, got, tt.retryable)
			}
		})
	}
}

func TestConnectConfig(t *testing.T) {
	cfg := ConnectConfig()
	if cfg.MaxAttempts < 2 || cfg.InitialDelay <= 0 || cfg.MaxDelay < cfg.InitialDelay {
		t.Errorf("unexpected connect config: %+v", cfg)
	}
}
