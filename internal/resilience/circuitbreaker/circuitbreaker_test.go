package circuitbreaker

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sony/gobreaker"
)

func testConfig(name string) Config {
	return Config{
		Name:        name,
		MaxRequests: 1,
		Interval:    10 * time.Second,
		Timeout:     20 * time.Second,
		MinRequests: 5,
		TripRatio:   0.6,
	}
}

var errBoom = errors.New("boom")

func fail() (interface{}, error) { return nil, errBoom }

func TestNew_StartsClosed(t *testing.T) {
	cb := New(testConfig("cb-new"))

	if cb.State() != gobreaker.StateClosed || cb.IsOpen() {
		t.Errorf("expected closed, got %v", cb.State())
	}
	if got := testutil.ToFloat64(stateGauge.WithLabelValues("cb-new")); got != 0 {
		t.Errorf("state gauge = %v, want 0", got)
	}
}

func TestExecute_ReturnsResult(t *testing.T) {
	cb := New(testConfig("cb-ok"))

	got, err := cb.Execute(func() (interface{}, error) { return 42, nil })
	if err != nil || got != 42 {
		t.Fatalf("Execute = %v, %v", got, err)
	}

	_, err = cb.Execute(fail)
	if !errors.Is(err, errBoom) {
		t.Fatalf("Execute should pass fn's error through, got %v", err)
	}
}

func TestTripRatio(t *testing.T) {
	cb := New(testConfig("cb-ratio"))

	// 2 successes + 3 failures = 60% at the fifth request
	for i := 0; i < 2; i++ {
		_, _ = cb.Execute(func() (interface{}, error) { return nil, nil })
	}
	for i := 0; i < 2; i++ {
		_, _ = cb.Execute(fail)
	}
	if cb.IsOpen() {
		t.Fatal("opened before MinRequests")
	}
	_, _ = cb.Execute(fail)
	if !cb.IsOpen() {
		t.Fatalf("expected open at 60%% failures, got %v", cb.State())
	}
	if got := testutil.ToFloat64(stateGauge.WithLabelValues("cb-ratio")); got != float64(gobreaker.StateOpen) {
		t.Errorf("state gauge = %v, want open", got)
	}

	_, err := cb.Execute(func() (interface{}, error) { return "unreachable", nil })
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Errorf("expected ErrOpenState, got %v", err)
	}
}

func TestIsSuccessful_KeepsCircuitClosed(t *testing.T) {
	rejected := errors.New("rejected by server")
	cfg := testConfig("cb-classify")
	cfg.IsSuccessful = func(err error) bool { return err == nil || errors.Is(err, rejected) }
	cb := New(cfg)

	for i := 0; i < 10; i++ {
		_, err := cb.Execute(func() (interface{}, error) { return nil, rejected })
		if !errors.Is(err, rejected) {
			t.Fatalf("expected the function's error, got %v", err)
		}
	}
	if cb.IsOpen() {
		t.Error("accepted errors must not trip the circuit")
	}
}

func TestTripWhen(t *testing.T) {
	trip := tripWhen(3, 0.5)
	tests := []struct {
		counts gobreaker.Counts
		want   bool
	}{
		{gobreaker.Counts{}, false},
		{gobreaker.Counts{Requests: 2, TotalFailures: 2}, false},
		{gobreaker.Counts{Requests: 4, TotalFailures: 1}, false},
		{gobreaker.Counts{Requests: 4, TotalFailures: 2}, true},
	}
	for _, tt := range tests {
		if got := trip(tt.counts); got != tt.want {
			t.Errorf("trip(%+v) = %v, want %v", tt.counts, got, tt.want)
		}
	}
}
