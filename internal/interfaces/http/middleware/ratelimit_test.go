package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRateLimiter(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	t.Run("blocks requests exceeding limit", func(t *testing.T) {
		limiter := NewMemoryRateLimiter(ctx, 3, time.Minute)
		for i := 0; i < 3; i++ {
			remaining, ok, err := limiter.Allow(ctx, "client1")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, 2-i, remaining)
		}
		_, ok, _ := limiter.Allow(ctx, "client1")
		assert.False(t, ok)

		_, ok, _ = limiter.Allow(ctx, "client2")
		assert.True(t, ok, "other clients keep their own window")
	})

	t.Run("resets after window", func(t *testing.T) {
		limiter := NewMemoryRateLimiter(ctx, 1, time.Minute)
		now := time.Now()
		limiter.now = func() time.Time { return now }

		_, ok, _ := limiter.Allow(ctx, "client3")
		assert.True(t, ok)
		_, ok, _ = limiter.Allow(ctx, "client3")
		assert.False(t, ok)

		now = now.Add(time.Minute)
		_, ok, _ = limiter.Allow(ctx, "client3")
		assert.True(t, ok)
	})

	t.Run("concurrent access", func(t *testing.T) {
		limiter := NewMemoryRateLimiter(ctx, 50, time.Minute)
		var wg sync.WaitGroup
		var mu sync.Mutex
		allowed := 0
		for i := 0; i < 100; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if _, ok, _ := limiter.Allow(ctx, "shared"); ok {
					mu.Lock()
					allowed++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()
		assert.Equal(t, 50, allowed)
	})
}

func TestRedisRateLimiter(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	ctx := context.Background()

	limiter := NewRedisRateLimiter(client, 2, time.Minute)
	_, ok, err := limiter.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, ok)
	remaining, ok, _ := limiter.Allow(ctx, "10.0.0.1")
	assert.True(t, ok)
	assert.Equal(t, 0, remaining)
	_, ok, _ = limiter.Allow(ctx, "10.0.0.1")
	assert.False(t, ok)

	assert.Equal(t, time.Minute, mr.TTL("ratelimit:10.0.0.1"))
	mr.FastForward(time.Minute)

	_, ok, _ = limiter.Allow(ctx, "10.0.0.1")
	assert.True(t, ok)
}

func TestRedisRateLimiter_WindowKeepsTTL(t *testing.T) {
	ctx := context.Background()

	t.Run("counter without ttl gets one", func(t *testing.T) {
		mr := miniredis.RunT(t)
		client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		t.Cleanup(func() { _ = client.Close() })
		require.NoError(t, mr.Set("ratelimit:10.0.0.2", "5"))

		limiter := NewRedisRateLimiter(client, 2, time.Minute)
		_, ok, err := limiter.Allow(ctx, "10.0.0.2")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, time.Minute, mr.TTL("ratelimit:10.0.0.2"))

		mr.FastForward(time.Minute)
		_, ok, err = limiter.Allow(ctx, "10.0.0.2")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("later calls keep the window start", func(t *testing.T) {
		mr := miniredis.RunT(t)
		client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		t.Cleanup(func() { _ = client.Close() })

		limiter := NewRedisRateLimiter(client, 5, time.Minute)
		_, _, err := limiter.Allow(ctx, "10.0.0.3")
		require.NoError(t, err)
		mr.FastForward(40 * time.Second)
		_, _, err = limiter.Allow(ctx, "10.0.0.3")
		require.NoError(t, err)
		assert.Equal(t, 20*time.Second, mr.TTL("ratelimit:10.0.0.3"))
	})

	t.Run("failed call does not block the client", func(t *testing.T) {
		mr := miniredis.RunT(t)
		client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		t.Cleanup(func() { _ = client.Close() })
		client.AddHook(&failFirstPipeline{})

		limiter := NewRedisRateLimiter(client, 2, time.Second)
		_, _, err := limiter.Allow(ctx, "10.0.0.4")
		assert.Error(t, err)

		for i := 0; i < 2; i++ {
			_, ok, err := limiter.Allow(ctx, "10.0.0.4")
			require.NoError(t, err)
			assert.True(t, ok)
		}
		_, ok, _ := limiter.Allow(ctx, "10.0.0.4")
		assert.False(t, ok)
		assert.Equal(t, time.Second, mr.TTL("ratelimit:10.0.0.4"))

		mr.FastForward(time.Second)
		_, ok, err = limiter.Allow(ctx, "10.0.0.4")
		require.NoError(t, err)
		assert.True(t, ok)
	})
}

// failFirstPipeline fails the first pipelined round-trip
type failFirstPipeline struct {
	failed atomic.Bool
}

func (h *failFirstPipeline) DialHook(next redis.DialHook) redis.DialHook { return next }

func (h *failFirstPipeline) ProcessHook(next redis.ProcessHook) redis.ProcessHook { return next }

func (h *failFirstPipeline) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		if h.failed.CompareAndSwap(false, true) {
			return errors.New("transient failure")
		}
		return next(ctx, cmds)
	}
}

type failingLimiter struct{}

func (failingLimiter) Allow(context.Context, string) (int, bool, error) {
	return 0, false, errors.New("redis down")
}
func (failingLimiter) Limit() int { return 1 }

func TestRateLimitMiddleware(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	t.Run("sets headers and rejects with 429", func(t *testing.T) {
		router := newTestRouter(RateLimit(NewMemoryRateLimiter(ctx, 1, time.Minute)))

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "1", w.Header().Get("X-RateLimit-Limit"))
		assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))

		w = httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Contains(t, w.Body.String(), "ERR_RATE_LIMITED")
	})

	t.Run("custom key", func(t *testing.T) {
		router := newTestRouter(RateLimitByKey(NewMemoryRateLimiter(ctx, 1, time.Minute), func(c *gin.Context) string {
			return c.GetHeader("X-Api-Key")
		}))
		for _, key := range []string{"a", "b"} {
			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			req.Header.Set("X-Api-Key", key)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, http.StatusOK, w.Code)
		}
	})

	t.Run("limiter failure lets request through", func(t *testing.T) {
		router := newTestRouter(RateLimit(failingLimiter{}))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
