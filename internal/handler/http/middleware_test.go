package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"blogful/internal/handler/http/requestid"
	"blogful/internal/handler/http/respond"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

/* ───────── ヘルパ ───────── */

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func requestFrom(remote string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	req.RemoteAddr = remote
	return req
}

// frozenLimiter returns a limiter whose clock only moves when advanced.
func frozenLimiter(rps float64, burst int) (*RateLimiter, *time.Time) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(rps, burst)
	rl.now = func() time.Time { return now }
	return rl, &now
}

/* ───────── Chain ───────── */

func TestChain_Order(t *testing.T) {
	var order []string
	mk := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}
	h := Chain(okHandler(), mk("a"), mk("b"), mk("c"))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, []string{"a", "b", "c"}, order)
}

/* ───────── RateLimiter ───────── */

func TestRateLimiter_BurstThenReject(t *testing.T) {
	rl, _ := frozenLimiter(1, 3)
	h := rl.Limit(okHandler())

	for i := 0; i < 3; i++ {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, requestFrom("192.168.1.1:1234"))
		require.Equal(t, http.StatusOK, rr.Code, "request %d", i+1)
	}

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, requestFrom("192.168.1.1:1234"))
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.Equal(t, "1", rr.Header().Get("Retry-After"))
}

func TestRateLimiter_Refills(t *testing.T) {
	rl, now := frozenLimiter(1, 1)
	h := rl.Limit(okHandler())

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, requestFrom("10.0.0.1:1"))
	require.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, requestFrom("10.0.0.1:1"))
	require.Equal(t, http.StatusTooManyRequests, rr.Code)

	*now = now.Add(time.Second)
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, requestFrom("10.0.0.1:1"))
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestRateLimiter_DifferentClients(t *testing.T) {
	rl, _ := frozenLimiter(1, 1)
	h := rl.Limit(okHandler())

	for _, addr := range []string{"10.0.0.1:1", "10.0.0.2:1", "10.0.0.3:1"} {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, requestFrom(addr))
		assert.Equal(t, http.StatusOK, rr.Code, addr)
	}
	assert.Equal(t, 3, rl.Clients())
}

func TestRateLimiter_DisabledPassesThrough(t *testing.T) {
	rl := NewRateLimiter(0, 1)
	h := rl.Limit(okHandler())
	for i := 0; i < 50; i++ {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, requestFrom("10.0.0.1:1"))
		require.Equal(t, http.StatusOK, rr.Code)
	}
}

func TestRateLimiter_Concurrent(t *testing.T) {
	rl, _ := frozenLimiter(1, 10)
	h := rl.Limit(okHandler())

	var wg sync.WaitGroup
	var mu sync.Mutex
	codes := map[int]int{}
	for i := 0; i < 30; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, requestFrom("172.16.0.1:9"))
			mu.Lock()
			codes[rr.Code]++
			mu.Unlock()
		}()
	}
	wg.Wait()
	assert.Equal(t, 10, codes[http.StatusOK])
	assert.Equal(t, 20, codes[http.StatusTooManyRequests])
}

func TestRateLimiter_Cleanup(t *testing.T) {
	rl, now := frozenLimiter(5, 5)
	rl.limiterFor("old")
	*now = now.Add(10 * time.Minute)
	rl.limiterFor("fresh")

	removed := rl.Cleanup(5 * time.Minute)
	assert.Equal(t, 1, removed)
	assert.Equal(t, 1, rl.Clients())
}

/* ───────── clientIP ───────── */

func TestClientIP(t *testing.T) {
	tests := []struct {
		name    string
		remote  string
		headers map[string]string
		trust   bool
		want    string
	}{
		{name: "remote addr", remote: "192.168.1.1:1234", want: "192.168.1.1"},
		{name: "ipv6 remote addr", remote: "[::1]:80", want: "::1"},
		{name: "no port", remote: "192.168.1.1", want: "192.168.1.1"},
		{
			name:    "forwarded ignored without trust",
			remote:  "10.0.0.1:1",
			headers: map[string]string{"X-Forwarded-For": "203.0.113.5"},
			want:    "10.0.0.1",
		},
		{
			name:    "first forwarded address when trusted",
			remote:  "10.0.0.1:1",
			headers: map[string]string{"X-Forwarded-For": "203.0.113.5, 10.0.0.1"},
			trust:   true,
			want:    "203.0.113.5",
		},
		{
			name:    "x-real-ip when trusted",
			remote:  "10.0.0.1:1",
			headers: map[string]string{"X-Real-IP": "198.51.100.7"},
			trust:   true,
			want:    "198.51.100.7",
		},
		{
			name:    "garbage forwarded falls back",
			remote:  "10.0.0.1:1",
			headers: map[string]string{"X-Forwarded-For": "not-an-ip"},
			trust:   true,
			want:    "10.0.0.1",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := requestFrom(tt.remote)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, clientIP(req, tt.trust))
		})
	}
}

/* ───────── Logging / Recover ───────── */

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	h := requestid.Middleware(Logging(logger)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte("created"))
	})))

	req := httptest.NewRequest(http.MethodPost, "/articles?x=1", nil)
	req.Header.Set(requestid.RequestIDHeader, "req-42")
	h.ServeHTTP(httptest.NewRecorder(), req)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "request completed", entry["msg"])
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "req-42", entry["request_id"])
	assert.Equal(t, "/articles", entry["path"])
	assert.Equal(t, "x=1", entry["query"])
	assert.EqualValues(t, 201, entry["status"])
	assert.EqualValues(t, 7, entry["bytes"])
}

func TestLogging_StoresRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	h := requestid.Middleware(Logging(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respond.FromError(w, r, errors.New("connection refused"))
	})))

	req := httptest.NewRequest(http.MethodGet, "/articles", nil)
	req.Header.Set(requestid.RequestIDHeader, "req-43")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	for _, line := range lines {
		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		assert.Equal(t, "req-43", entry["request_id"], line)
	}
	assert.Contains(t, lines[0], "internal server error")
	assert.Contains(t, lines[1], "request completed")
}

func TestLogging_ServerErrorLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	h := Logging(logger)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Contains(t, buf.String(), `"level":"ERROR"`)
}

func TestRecover(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	h := Recover(logger)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("kaboom")
	}))

	rr := httptest.NewRecorder()
	assert.NotPanics(t, func() {
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/articles/1", nil))
	})
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Contains(t, rr.Body.String(), "internal server error")
	assert.True(t, strings.Contains(buf.String(), "kaboom"))
}

func TestRecover_AbortHandlerRepanics(t *testing.T) {
	h := Recover(slog.Default())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic(http.ErrAbortHandler)
	}))
	assert.Panics(t, func() {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	})
}
