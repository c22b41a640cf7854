package telemetry

import (
	"context"
	"runtime/pprof"
	"testing"

	"github.com/storefront/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewProfiler_Disabled(t *testing.T) {
	p, err := NewProfiler(config.TelemetryConfig{ProfilingEnabled: false}, zap.NewNop())
	require.NoError(t, err)
	assert.False(t, p.Enabled())
	assert.NoError(t, p.Stop())
	assert.NoError(t, p.Stop())
}

func TestNewProfiler_MissingServer(t *testing.T) {
	_, err := NewProfiler(config.TelemetryConfig{ProfilingEnabled: true, ServiceName: "storefront"}, zap.NewNop())
	assert.ErrorIs(t, err, ErrProfilerAddress)
}

func TestWithProfilingLabels(t *testing.T) {
	var kind string
	var ok bool
	WithProfilingLabels(context.Background(), func(ctx context.Context) {
		kind, ok = pprof.Label(ctx, "content_kind")
	}, "content_kind", "store.product")
	assert.True(t, ok)
	assert.Equal(t, "store.product", kind)

	called := false
	WithProfilingLabels(context.Background(), func(ctx context.Context) {
		called = true
		_, ok = pprof.Label(ctx, "content_kind")
	})
	assert.True(t, called)
	assert.False(t, ok)
}
