package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/netip"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
)

type observed struct {
	method string
	path   string
	status int
}

type recordingMetrics struct{ calls []observed }

func (m *recordingMetrics) ObserveHTTPRequest(method, path string, status int, _ time.Duration) {
	m.calls = append(m.calls, observed{method: method, path: path, status: status})
}

func TestRateLimiter_PerIP(t *testing.T) {
	limiter := NewRateLimiter(1, 2)
	current := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return current }

	assert.True(t, limiter.Allow("10.0.0.1"))
	assert.True(t, limiter.Allow("10.0.0.1"))
	assert.False(t, limiter.Allow("10.0.0.1"), "burst exhausted")
	assert.True(t, limiter.Allow("10.0.0.2"), "other IP has its own bucket")

	current = current.Add(time.Second)
	assert.True(t, limiter.Allow("10.0.0.1"), "token refilled")
}

func TestRateLimiter_EvictsIdle(t *testing.T) {
	limiter := NewRateLimiter(1, 1)
	current := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return current }

	limiter.Allow("10.0.0.1")
	current = current.Add(limiterIdleTTL + time.Second)
	limiter.Allow("10.0.0.2")

	assert.NotContains(t, limiter.limiters, "10.0.0.1")
	assert.Contains(t, limiter.limiters, "10.0.0.2")
}

func TestRateLimiter_Middleware(t *testing.T) {
	limiter := NewRateLimiter(1, 1)
	limiter.now = func() time.Time { return time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC) }

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})
	h := limiter.Middleware(next)

	send := func(forwarded string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", nil)
		req.RemoteAddr = "198.51.100.20:40000"
		req.Header.Set("X-Forwarded-For", forwarded)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusCreated, send("192.168.1.5").Code)

	// подмена заголовка не дает нового bucket
	for i := 0; i < 50; i++ {
		rec := send(fmt.Sprintf("203.0.113.%d", i))
		require.Equal(t, http.StatusTooManyRequests, rec.Code)
		assert.Equal(t, "1", rec.Header().Get("Retry-After"))
		assert.Contains(t, rec.Body.String(), msgTooManyRequests)
	}
	assert.Len(t, limiter.limiters, 1)
}

func TestRateLimiter_TrustedProxy(t *testing.T) {
	limiter := NewRateLimiter(1, 1, netip.MustParsePrefix("10.0.0.0/8"))
	limiter.now = func() time.Time { return time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC) }

	h := limiter.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	send := func(forwarded string) int {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", nil)
		req.RemoteAddr = "10.0.0.2:40000"
		req.Header.Set("X-Forwarded-For", forwarded)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusCreated, send("198.51.100.7"))
	// клиент дописал свой адрес слева, прокси добавил реальный справа
	assert.Equal(t, http.StatusTooManyRequests, send("1.2.3.4, 198.51.100.7"))
	assert.Equal(t, http.StatusTooManyRequests, send("5.6.7.8, 198.51.100.7, 10.0.0.9"))
	assert.Equal(t, http.StatusCreated, send("198.51.100.8"), "other client behind the proxy")
}

func TestRateLimiter_ClientIP(t *testing.T) {
	tests := []struct {
		name      string
		trusted   []netip.Prefix
		remote    string
		forwarded string
		want      string
	}{
		{name: "no header", remote: "172.16.0.3:53211", want: "172.16.0.3"},
		{name: "header ignored without trusted proxies", remote: "172.16.0.3:53211", forwarded: "8.8.8.8", want: "172.16.0.3"},
		{name: "header ignored from untrusted peer", trusted: []netip.Prefix{netip.MustParsePrefix("10.0.0.0/8")}, remote: "172.16.0.3:53211", forwarded: "8.8.8.8", want: "172.16.0.3"},
		{name: "rightmost untrusted hop", trusted: []netip.Prefix{netip.MustParsePrefix("10.0.0.0/8")}, remote: "10.1.1.1:80", forwarded: " 8.8.8.8 , 9.9.9.9, 10.2.2.2", want: "9.9.9.9"},
		{name: "garbage hop falls back to peer", trusted: []netip.Prefix{netip.MustParsePrefix("10.0.0.0/8")}, remote: "10.1.1.1:80", forwarded: "8.8.8.8, bogus", want: "10.1.1.1"},
		{name: "only proxies in chain", trusted: []netip.Prefix{netip.MustParsePrefix("10.0.0.0/8")}, remote: "10.1.1.1:80", forwarded: "10.3.3.3", want: "10.1.1.1"},
		{name: "no port in remote addr", remote: "unix", want: "unix"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limiter := NewRateLimiter(1, 1, tt.trusted...)
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			if tt.forwarded != "" {
				req.Header.Set("X-Forwarded-For", tt.forwarded)
			}

			assert.Equal(t, tt.want, limiter.clientIP(req))
		})
	}
}

func TestMetrics_UsesRouteTemplate(t *testing.T) {
	collector := &recordingMetrics{}

	r := mux.NewRouter()
	r.Use(Metrics(collector))
	r.HandleFunc("/api/v1/bookings/{bookingId}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}).Methods(http.MethodGet)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/bookings/5d0c8a52-4a8e-4b61-a7b3-7f6f7e1f2a10", nil))

	require.Len(t, collector.calls, 1)
	assert.Equal(t, observed{method: http.MethodGet, path: "/api/v1/bookings/{bookingId}", status: http.StatusNotFound}, collector.calls[0])
}

func TestLogging_RequestID(t *testing.T) {
	var seen string
	h := Logging(logger.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestID(r.Context())
	}))

	t.Run("generated", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.NotEmpty(t, seen)
		assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))
	})

	t.Run("propagated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set(RequestIDHeader, "req-42")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, "req-42", seen)
		assert.Equal(t, "req-42", rec.Header().Get(RequestIDHeader))
	})
}
