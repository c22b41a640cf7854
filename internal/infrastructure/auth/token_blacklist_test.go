package auth

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryTokenBlacklist(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	b := NewInMemoryTokenBlacklist()
	b.now = func() time.Time { return now }

	require.NoError(t, b.Revoke(ctx, "jti-1", time.Minute))
	require.NoError(t, b.Revoke(ctx, "jti-expired", 0))

	revoked, err := b.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = b.IsRevoked(ctx, "jti-expired")
	require.NoError(t, err)
	assert.False(t, revoked)

	now = now.Add(2 * time.Minute)
	revoked, err = b.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)
	assert.Empty(t, b.revoked)
}

func TestInMemoryTokenBlacklist_RevokePrunesExpired(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	b := NewInMemoryTokenBlacklist()
	b.now = func() time.Time { return now }

	require.NoError(t, b.Revoke(ctx, "never-seen-again", time.Minute))
	require.NoError(t, b.Revoke(ctx, "long-lived", time.Hour))

	now = now.Add(2 * time.Minute)
	require.NoError(t, b.Revoke(ctx, "fresh", time.Minute))

	assert.NotContains(t, b.revoked, "never-seen-again")
	assert.Contains(t, b.revoked, "long-lived")
	assert.Contains(t, b.revoked, "fresh")
}

func TestRedisTokenBlacklist(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	b := NewRedisTokenBlacklist(client, "test:")

	require.NoError(t, b.Revoke(ctx, "jti-1", time.Minute))
	assert.True(t, mr.Exists("test:token:revoked:jti-1"))

	revoked, err := b.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	mr.FastForward(2 * time.Minute)
	revoked, err = b.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)
}
