package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/storefront/backend/internal/domain/tagging"
	"github.com/storefront/backend/internal/infrastructure/auth"
	"github.com/storefront/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// Factory builds the Redis backed stores from configuration. When Redis is
// disabled, or unreachable and not required, it hands out in-memory stores.
type Factory struct {
	redisConfig config.RedisConfig
	taggingCfg  config.TaggingConfig
	logger      *zap.Logger
	client      *redis.Client
}

// FactoryOption is a functional option for configuring the factory
type FactoryOption func(*Factory)

// WithLogger sets the logger for the factory and the caches it creates
func WithLogger(logger *zap.Logger) FactoryOption {
	return func(f *Factory) {
		f.logger = logger
	}
}

// NewFactory creates a new factory
func NewFactory(redisCfg config.RedisConfig, taggingCfg config.TaggingConfig, opts ...FactoryOption) *Factory {
	f := &Factory{
		redisConfig: redisCfg,
		taggingCfg:  taggingCfg,
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Open connects to Redis when it is enabled
func (f *Factory) Open(ctx context.Context) error {
	if !f.redisConfig.Enabled {
		f.logger.Info("Redis disabled, using in-memory stores")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:         f.redisConfig.Addr(),
		Password:     f.redisConfig.Password,
		DB:           f.redisConfig.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		if f.redisConfig.Required {
			return fmt.Errorf("redis required but unavailable: %w", err)
		}
		f.logger.Warn("Redis unavailable, falling back to in-memory stores", zap.Error(err))
		return nil
	}

	f.logger.Info("Connected to Redis", zap.String("addr", f.redisConfig.Addr()))
	f.client = client
	return nil
}

// Client returns the Redis client, nil when running without Redis
func (f *Factory) Client() *redis.Client {
	return f.client
}

// ContentTypeCache returns the shared tier of the kind registry,
// nil without Redis since the registry already keeps descriptors in process
func (f *Factory) ContentTypeCache() tagging.ContentTypeCache {
	if f.client == nil {
		return nil
	}
	return NewRedisContentTypeCache(f.client, f.redisConfig.KeyPrefix,
		WithTTL(f.taggingCfg.CacheTTL), WithCacheLogger(f.logger))
}

// TokenBlacklist returns the store of revoked access tokens
func (f *Factory) TokenBlacklist() auth.TokenBlacklist {
	if f.client == nil {
		return auth.NewInMemoryTokenBlacklist()
	}
	prefix := f.redisConfig.KeyPrefix
	if prefix == "" {
		prefix = defaultKeyPrefix
	}
	return auth.NewRedisTokenBlacklist(f.client, prefix)
}

// Close closes the Redis client
func (f *Factory) Close() error {
	if f.client == nil {
		return nil
	}
	return f.client.Close()
}
