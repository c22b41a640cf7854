package tagging

import (
	"context"
	"sync"

	"github.com/storefront/backend/internal/domain/tagging"
	"github.com/storefront/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// ContentTypeRegistry maps entity kinds to their persisted content types.
//
// Resolution goes through three tiers: an in-process map, an optional shared
// cache, then the repository, which registers the kind on first use. The
// in-process map is append-only; concurrent first lookups may all reach the
// repository, whose GetOrCreate returns the same row to each of them.
type ContentTypeRegistry struct {
	repo    tagging.ContentTypeRepository
	shared  tagging.ContentTypeCache
	local   sync.Map // tagging.EntityKind -> *tagging.ContentType
	metrics *telemetry.TaggingMetrics
	logger  *zap.Logger
}

// RegistryOption configures a ContentTypeRegistry
type RegistryOption func(*ContentTypeRegistry)

// WithSharedCache adds a cache tier shared between processes
func WithSharedCache(cache tagging.ContentTypeCache) RegistryOption {
	return func(r *ContentTypeRegistry) {
		r.shared = cache
	}
}

// WithRegistryMetrics records cache and registration metrics
func WithRegistryMetrics(m *telemetry.TaggingMetrics) RegistryOption {
	return func(r *ContentTypeRegistry) {
		r.metrics = m
	}
}

// WithRegistryLogger sets the logger used for cache failures
func WithRegistryLogger(logger *zap.Logger) RegistryOption {
	return func(r *ContentTypeRegistry) {
		r.logger = logger
	}
}

// NewContentTypeRegistry creates a registry backed by repo
func NewContentTypeRegistry(repo tagging.ContentTypeRepository, opts ...RegistryOption) *ContentTypeRegistry {
	r := &ContentTypeRegistry{repo: repo, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the content type of kind, registering it if needed.
// Repository errors are returned unchanged. Shared cache errors are logged and
// the lookup falls through to the repository.
func (r *ContentTypeRegistry) Resolve(ctx context.Context, kind tagging.EntityKind) (*tagging.ContentType, error) {
	if !kind.IsValid() {
		return nil, tagging.ErrUnknownKind
	}

	if v, ok := r.local.Load(kind); ok {
		r.metrics.RecordCache(ctx, telemetry.CacheLayerLocal, true)
		return copyContentType(v.(*tagging.ContentType)), nil
	}
	r.metrics.RecordCache(ctx, telemetry.CacheLayerLocal, false)

	if r.shared != nil {
		ct, found, err := r.shared.Get(ctx, kind)
		if err != nil {
			r.logger.Warn("Content type cache read failed", zap.String("kind", kind.String()), zap.Error(err))
		}
		r.metrics.RecordCache(ctx, telemetry.CacheLayerShared, found)
		if found {
			return r.remember(kind, ct), nil
		}
	}

	ct, err := r.repo.GetOrCreate(ctx, kind.AppLabel(), kind.Model())
	if err != nil {
		return nil, err
	}
	r.metrics.RecordRegistration(ctx, kind.String())

	if r.shared != nil {
		if err := r.shared.Set(ctx, kind, ct); err != nil {
			r.logger.Warn("Content type cache write failed", zap.String("kind", kind.String()), zap.Error(err))
		}
	}
	return r.remember(kind, ct), nil
}

// remember stores ct unless another goroutine already did; the first stored
// value wins so every caller sees one descriptor per kind.
func (r *ContentTypeRegistry) remember(kind tagging.EntityKind, ct *tagging.ContentType) *tagging.ContentType {
	actual, _ := r.local.LoadOrStore(kind, copyContentType(ct))
	return copyContentType(actual.(*tagging.ContentType))
}

// Warm resolves every taggable kind
func (r *ContentTypeRegistry) Warm(ctx context.Context) error {
	for _, kind := range tagging.AllKinds() {
		if _, err := r.Resolve(ctx, kind); err != nil {
			return err
		}
	}
	r.logger.Info("Content type registry warmed", zap.Int("kinds", len(tagging.AllKinds())))
	return nil
}

// List returns every registered content type ordered by id
func (r *ContentTypeRegistry) List(ctx context.Context) ([]ContentTypeResponse, error) {
	cts, err := r.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]ContentTypeResponse, len(cts))
	for i := range cts {
		out[i] = ToContentTypeResponse(&cts[i])
	}
	return out, nil
}

func copyContentType(ct *tagging.ContentType) *tagging.ContentType {
	c := *ct
	return &c
}
