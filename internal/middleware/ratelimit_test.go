package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newRateLimitedHandler(t *testing.T, mr *miniredis.Miniredis, limit int) http.Handler {
	t.Helper()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return RateLimitMiddleware(client, RateLimitConfig{
		RequestsPerWindow: limit,
		Window:            time.Second,
		KeyPrefix:         "test_rate_limit",
	}, zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
}

func TestProperty_RateLimitBlocksExactlyTheExcess(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("the window admits the limit and blocks the rest with 429", prop.ForAll(
		func(limit int, excess int) bool {
			mr := miniredis.RunT(t)
			handler := newRateLimitedHandler(t, mr, limit)

			allowed, blocked := 0, 0
			for i := 0; i < limit+excess; i++ {
				req := httptest.NewRequest("GET", "/api/products", nil)
				req.RemoteAddr = "192.168.1.100:52000"
				w := httptest.NewRecorder()

				handler.ServeHTTP(w, req)

				switch w.Code {
				case http.StatusOK:
					allowed++
				case http.StatusTooManyRequests:
					blocked++
				}
			}

			return allowed == limit && blocked == excess
		},
		gen.IntRange(3, 20),
		gen.IntRange(1, 10),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestRateLimit_HeadersArePresent(t *testing.T) {
	mr := miniredis.RunT(t)
	handler := newRateLimitedHandler(t, mr, 5)

	req := httptest.NewRequest("GET", "/api/products", nil)
	req.RemoteAddr = "192.168.1.101:52000"
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, "5", w.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "4", w.Header().Get("X-RateLimit-Remaining"))
}

func TestRateLimit_BlockedResponseCarriesRetryAfter(t *testing.T) {
	mr := miniredis.RunT(t)
	handler := newRateLimitedHandler(t, mr, 1)

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest("GET", "/api/products", nil)
		req.RemoteAddr = "192.168.1.102:52000"
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		if i == 1 {
			assert.Equal(t, http.StatusTooManyRequests, w.Code)
			assert.NotEmpty(t, w.Header().Get("Retry-After"))
			assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
		}
	}
}

func TestRateLimit_ClientsAreIsolated(t *testing.T) {
	mr := miniredis.RunT(t)
	handler := newRateLimitedHandler(t, mr, 1)

	for _, addr := range []string{"10.0.0.1:1000", "10.0.0.2:1000"} {
		req := httptest.NewRequest("GET", "/api/products", nil)
		req.RemoteAddr = addr
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code, "each client has its own window")
	}
}

func TestRateLimit_FailsOpenWhenRedisIsDown(t *testing.T) {
	mr := miniredis.RunT(t)
	handler := newRateLimitedHandler(t, mr, 1)
	mr.Close()

	req := httptest.NewRequest("GET", "/api/products", nil)
	req.RemoteAddr = "192.168.1.103:52000"
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code, "a broken limiter must not take the storefront down")
}
