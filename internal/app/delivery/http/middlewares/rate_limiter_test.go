package middlewares

import (
	"net/http"
	"net/http/httptest"
	"praktis-service/internal/pkg/constvars"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func TestRateLimiter(t *testing.T) {
	okHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("requests within the burst pass", func(t *testing.T) {
		limiter := NewRateLimiter(3, time.Second, time.Minute)
		handler := limiter.Limit(okHandler)

		for i := 0; i < 3; i++ {
			req := httptest.NewRequest("POST", "/api/v1/appointments", nil)
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)
			assert.Equal(t, http.StatusOK, rr.Code)
		}
	})

	t.Run("exceeding the burst blocks with Retry-After", func(t *testing.T) {
		limiter := NewRateLimiter(2, time.Second, time.Minute)
		handler := limiter.Limit(okHandler)

		for i := 0; i < 2; i++ {
			req := httptest.NewRequest("POST", "/api/v1/appointments", nil)
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)
			require.Equal(t, http.StatusOK, rr.Code)
		}

		req := httptest.NewRequest("POST", "/api/v1/appointments", nil)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusTooManyRequests, rr.Code)
		assert.Equal(t, "60", rr.Header().Get(constvars.HeaderRetryAfter))

		// The IP stays on the block list for subsequent requests.
		rr = httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusTooManyRequests, rr.Code)
		assert.NotEmpty(t, rr.Header().Get(constvars.HeaderRetryAfter))
	})

	t.Run("refill is spread across the window", func(t *testing.T) {
		limiter := NewRateLimiter(4, time.Second, time.Minute)
		handler := limiter.Limit(okHandler)

		req := httptest.NewRequest("POST", "/api/v1/appointments", nil)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		require.Equal(t, http.StatusOK, rr.Code)

		limiter.mu.Lock()
		defer limiter.mu.Unlock()
		require.Len(t, limiter.limiters, 1)
		for _, l := range limiter.limiters {
			assert.Equal(t, rate.Every(250*time.Millisecond), l.Limit(),
				"4 requests per second should refill one token every 250ms")
		}
	})

	t.Run("non-positive rate still admits one request", func(t *testing.T) {
		limiter := NewRateLimiter(0, time.Second, time.Minute)
		handler := limiter.Limit(okHandler)

		req := httptest.NewRequest("POST", "/api/v1/appointments", nil)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusOK, rr.Code)
	})
}
