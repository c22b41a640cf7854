package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/storefront/backend/internal/domain/tagging"
	"go.uber.org/zap"
)

const defaultKeyPrefix = "storefront:"

// RedisContentTypeCache shares kind descriptors between server instances
type RedisContentTypeCache struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
	logger    *zap.Logger
}

// cachedContentType is the JSON form stored under each key
type cachedContentType struct {
	ID       uint64 `json:"id"`
	AppLabel string `json:"app_label"`
	Model    string `json:"model"`
}

// RedisContentTypeCacheOption configures a RedisContentTypeCache
type RedisContentTypeCacheOption func(*RedisContentTypeCache)

// WithTTL sets the expiry of cached descriptors. Zero keeps them forever.
func WithTTL(ttl time.Duration) RedisContentTypeCacheOption {
	return func(c *RedisContentTypeCache) {
		c.ttl = ttl
	}
}

// WithCacheLogger sets the logger for the cache
func WithCacheLogger(logger *zap.Logger) RedisContentTypeCacheOption {
	return func(c *RedisContentTypeCache) {
		c.logger = logger
	}
}

// NewRedisContentTypeCache wraps an existing client.
// The caller keeps ownership of the client.
func NewRedisContentTypeCache(client *redis.Client, keyPrefix string, opts ...RedisContentTypeCacheOption) *RedisContentTypeCache {
	if keyPrefix == "" {
		keyPrefix = defaultKeyPrefix
	}
	c := &RedisContentTypeCache{
		client:    client,
		keyPrefix: keyPrefix,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *RedisContentTypeCache) key(kind tagging.EntityKind) string {
	return c.keyPrefix + "content_type:" + kind.AppLabel() + "." + kind.Model()
}

// Get returns the cached descriptor for kind
func (c *RedisContentTypeCache) Get(ctx context.Context, kind tagging.EntityKind) (*tagging.ContentType, bool, error) {
	key := c.key(kind)

	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get content type from cache: %w", err)
	}

	var cached cachedContentType
	if err := json.Unmarshal(data, &cached); err != nil {
		c.logger.Warn("Dropping corrupted content type cache entry", zap.String("key", key), zap.Error(err))
		_ = c.client.Del(ctx, key)
		return nil, false, nil
	}
	return &tagging.ContentType{ID: cached.ID, AppLabel: cached.AppLabel, Model: cached.Model}, true, nil
}

// Set stores the descriptor for kind
func (c *RedisContentTypeCache) Set(ctx context.Context, kind tagging.EntityKind, ct *tagging.ContentType) error {
	if ct == nil {
		return nil
	}
	data, err := json.Marshal(cachedContentType{ID: ct.ID, AppLabel: ct.AppLabel, Model: ct.Model})
	if err != nil {
		return fmt.Errorf("failed to marshal content type: %w", err)
	}
	if err := c.client.Set(ctx, c.key(kind), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set content type in cache: %w", err)
	}
	c.logger.Debug("Cached content type", zap.String("kind", kind.String()), zap.Uint64("content_type_id", ct.ID))
	return nil
}

// Delete evicts the descriptor of kind
func (c *RedisContentTypeCache) Delete(ctx context.Context, kind tagging.EntityKind) error {
	if err := c.client.Del(ctx, c.key(kind)).Err(); err != nil {
		return fmt.Errorf("failed to delete content type from cache: %w", err)
	}
	return nil
}
