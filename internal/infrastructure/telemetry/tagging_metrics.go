package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/metric"
)

// Lookup results
const (
	ResultOK          = "ok"
	ResultEmpty       = "empty"
	ResultUnknownKind = "unknown_kind"
	ResultError       = "error"
)

// Cache layers of the content type registry
const (
	CacheLayerLocal  = "local"
	CacheLayerShared = "shared"
)

// TaggingMetrics instruments tag lookups and the content type registry.
// All methods are safe on a nil receiver.
type TaggingMetrics struct {
	lookups        *Counter
	lookupDuration *Histogram
	registrations  *Counter
	cacheResults   *Counter
}

// NewTaggingMetrics creates the tagging instruments on meter
func NewTaggingMetrics(meter metric.Meter) (*TaggingMetrics, error) {
	lookups, err := NewCounter(meter, "tag_lookups_total", "Tag lookups by content kind and result", "{lookup}")
	if err != nil {
		return nil, err
	}
	lookupDuration, err := NewHistogram(meter, "tag_lookup_duration_seconds",
		"Latency of fetching the tags of one object", "s", DBDurationBuckets)
	if err != nil {
		return nil, err
	}
	registrations, err := NewCounter(meter, "content_type_registrations_total",
		"Content types resolved from the database", "{registration}")
	if err != nil {
		return nil, err
	}
	cacheResults, err := NewCounter(meter, "content_type_cache_total",
		"Content type cache hits and misses by layer", "{lookup}")
	if err != nil {
		return nil, err
	}
	return &TaggingMetrics{
		lookups:        lookups,
		lookupDuration: lookupDuration,
		registrations:  registrations,
		cacheResults:   cacheResults,
	}, nil
}

// RecordLookup records one GetTagsFor call
func (m *TaggingMetrics) RecordLookup(ctx context.Context, kind, result string, d time.Duration) {
	if m == nil {
		return
	}
	m.lookups.Inc(ctx, KeyContentKind.String(kind), KeyResult.String(result))
	m.lookupDuration.RecordDuration(ctx, d, KeyContentKind.String(kind))
}

// RecordRegistration records a content type resolved through the repository
func (m *TaggingMetrics) RecordRegistration(ctx context.Context, kind string) {
	if m == nil {
		return
	}
	m.registrations.Inc(ctx, KeyContentKind.String(kind))
}

// RecordCache records a hit or miss on a registry cache layer
func (m *TaggingMetrics) RecordCache(ctx context.Context, layer string, hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheResults.Inc(ctx, KeyCacheLayer.String(layer), KeyResult.String(result))
}
