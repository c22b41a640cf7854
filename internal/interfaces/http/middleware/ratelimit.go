package middleware

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/storefront/backend/internal/infrastructure/logger"
	"github.com/storefront/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// Limiter decides whether one more request fits in the key's current window
type Limiter interface {
	Allow(ctx context.Context, key string) (remaining int, allowed bool, err error)
	Limit() int
}

// MemoryRateLimiter is a fixed-window limiter for a single instance
type MemoryRateLimiter struct {
	mu      sync.Mutex
	clients map[string]*window
	limit   int
	window  time.Duration
	now     func() time.Time
}

type window struct {
	used  int
	start time.Time
}

// NewMemoryRateLimiter creates an in-process limiter. Expired windows are
// swept until ctx is cancelled.
func NewMemoryRateLimiter(ctx context.Context, limit int, every time.Duration) *MemoryRateLimiter {
	rl := &MemoryRateLimiter{
		clients: make(map[string]*window),
		limit:   limit,
		window:  every,
		now:     time.Now,
	}
	go rl.sweep(ctx)
	return rl
}

func (rl *MemoryRateLimiter) sweep(ctx context.Context) {
	ticker := time.NewTicker(rl.window * 2)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rl.mu.Lock()
			now := rl.now()
			for key, w := range rl.clients {
				if now.Sub(w.start) > rl.window*2 {
					delete(rl.clients, key)
				}
			}
			rl.mu.Unlock()
		}
	}
}

// Limit returns the request budget per window
func (rl *MemoryRateLimiter) Limit() int { return rl.limit }

// Allow consumes one request from key's window
func (rl *MemoryRateLimiter) Allow(_ context.Context, key string) (int, bool, error) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	w, ok := rl.clients[key]
	if !ok || now.Sub(w.start) >= rl.window {
		w = &window{start: now}
		rl.clients[key] = w
	}
	if w.used >= rl.limit {
		return 0, false, nil
	}
	w.used++
	return rl.limit - w.used, true, nil
}

// RedisRateLimiter shares fixed windows between instances through Redis
type RedisRateLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
	prefix string
}

// NewRedisRateLimiter creates a limiter keyed under "ratelimit:"
func NewRedisRateLimiter(client *redis.Client, limit int, every time.Duration) *RedisRateLimiter {
	return &RedisRateLimiter{client: client, limit: limit, window: every, prefix: "ratelimit:"}
}

// Limit returns the request budget per window
func (rl *RedisRateLimiter) Limit() int { return rl.limit }

// Allow increments the key's counter. The TTL is set in the same transaction
// with NX, so a counter never outlives its window even after a failed call.
func (rl *RedisRateLimiter) Allow(ctx context.Context, key string) (int, bool, error) {
	redisKey := rl.prefix + key
	var incr *redis.IntCmd
	_, err := rl.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, redisKey)
		pipe.ExpireNX(ctx, redisKey, rl.window)
		return nil
	})
	if err != nil {
		return 0, false, err
	}
	used := int(incr.Val())
	if used > rl.limit {
		return 0, false, nil
	}
	return rl.limit - used, true, nil
}

// RateLimit limits requests per client IP
func RateLimit(limiter Limiter) gin.HandlerFunc {
	return RateLimitByKey(limiter, func(c *gin.Context) string { return c.ClientIP() })
}

// RateLimitByKey limits requests per key. A limiter error lets the request through.
func RateLimitByKey(limiter Limiter, keyFunc func(*gin.Context) string) gin.HandlerFunc {
	return func(c *gin.Context) {
		remaining, allowed, err := limiter.Allow(c.Request.Context(), keyFunc(c))
		if err != nil {
			logger.L(c.Request.Context()).Warn("rate limiter unavailable", zap.Error(err))
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(limiter.Limit()))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		if !allowed {
			abortWithError(c, dto.ErrCodeRateLimited, "Too many requests. Please try again later.")
			return
		}
		c.Next()
	}
}
