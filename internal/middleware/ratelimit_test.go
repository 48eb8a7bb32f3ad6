package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newLimiter(t *testing.T, rate int, whitelist ...string) *RateLimiter {
	t.Helper()
	rl := NewRateLimiter(rate, time.Minute, whitelist, slog.New(slog.NewTextHandler(io.Discard, nil)))
	t.Cleanup(rl.Stop)
	return rl
}

func TestAllow(t *testing.T) {
	rl := newLimiter(t, 2)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	assert.True(t, rl.Allow("1.2.3.4"))
	assert.True(t, rl.Allow("1.2.3.4"))
	assert.False(t, rl.Allow("1.2.3.4"))
	assert.True(t, rl.Allow("5.6.7.8"))

	now = now.Add(61 * time.Second)
	assert.True(t, rl.Allow("1.2.3.4"))
}

func TestEvict(t *testing.T) {
	rl := newLimiter(t, 2)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	rl.Allow("1.2.3.4")
	now = now.Add(3 * time.Minute)
	rl.evict(2 * time.Minute)

	assert.Equal(t, 0, rl.Stats()["tracked_ips"])
}

func TestMiddleware(t *testing.T) {
	rl := newLimiter(t, 1, "10.0.0.1")
	h := rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	do := func(remote, xff string) int {
		req := httptest.NewRequest(http.MethodGet, "/v1/routes", nil)
		req.RemoteAddr = remote
		if xff != "" {
			req.Header.Set("X-Forwarded-For", xff)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusNoContent, do("192.0.2.1:1234", ""))
	assert.Equal(t, http.StatusTooManyRequests, do("192.0.2.1:1234", ""))
	assert.Equal(t, http.StatusNoContent, do("192.0.2.2:1234", "203.0.113.9, 192.0.2.2"))
	assert.Equal(t, http.StatusTooManyRequests, do("192.0.2.3:1234", "203.0.113.9"))

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusNoContent, do("10.0.0.1:1234", ""))
	}

	assert.Equal(t, int64(2), rl.Stats()["blocked"])
}
