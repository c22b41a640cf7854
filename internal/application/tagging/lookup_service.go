package tagging

import (
	"context"
	"errors"
	"time"

	"github.com/storefront/backend/internal/domain/tagging"
	"github.com/storefront/backend/internal/infrastructure/telemetry"
)

// LookupService answers "which tags does this entity carry"
type LookupService struct {
	registry *ContentTypeRegistry
	itemRepo tagging.TaggedItemRepository
	metrics  *telemetry.TaggingMetrics
}

// NewLookupService creates a new LookupService. metrics may be nil.
func NewLookupService(registry *ContentTypeRegistry, itemRepo tagging.TaggedItemRepository, metrics *telemetry.TaggingMetrics) *LookupService {
	return &LookupService{registry: registry, itemRepo: itemRepo, metrics: metrics}
}

// GetTagsFor returns the associations on (kind, id) joined with their tags,
// ordered by association id. The entity does not need to exist; no match yields
// an empty slice and a nil error. The kind is registered on first use.
func (s *LookupService) GetTagsFor(ctx context.Context, kind tagging.EntityKind, id uint64) ([]tagging.TaggedItem, error) {
	start := time.Now()
	ctx, span := telemetry.StartServiceSpan(ctx, "lookup", "get_tags_for",
		telemetry.WithAttribute(telemetry.AttrContentKind, kind.String()),
		telemetry.WithAttribute(telemetry.AttrObjectID, id),
	)
	defer span.End()

	var (
		items []tagging.TaggedItem
		err   error
	)
	telemetry.WithProfilingLabels(ctx, func(ctx context.Context) {
		items, err = s.getTagsFor(ctx, kind, id)
	}, "content_kind", kind.String())

	result := telemetry.ResultOK
	switch {
	case errors.Is(err, tagging.ErrUnknownKind):
		result = telemetry.ResultUnknownKind
	case err != nil:
		result = telemetry.ResultError
		telemetry.RecordError(span, err)
	case len(items) == 0:
		result = telemetry.ResultEmpty
	}
	telemetry.SetAttributes(span, telemetry.AttrResultCount, len(items))
	s.metrics.RecordLookup(ctx, kind.String(), result, time.Since(start))

	return items, err
}

func (s *LookupService) getTagsFor(ctx context.Context, kind tagging.EntityKind, id uint64) ([]tagging.TaggedItem, error) {
	target, err := tagging.NewTargetRef(kind, id)
	if err != nil {
		return nil, err
	}
	ct, err := s.registry.Resolve(ctx, target.Kind)
	if err != nil {
		return nil, err
	}
	items, err := s.itemRepo.FindByTarget(ctx, ct.ID, target.ID)
	if err != nil {
		return nil, err
	}
	for i := range items {
		items[i].ContentType = ct
	}
	if items == nil {
		items = []tagging.TaggedItem{}
	}
	return items, nil
}

// GetTagsForTarget parses kindName and renders GetTagsFor for API responses
func (s *LookupService) GetTagsForTarget(ctx context.Context, kindName string, id uint64) ([]TaggedItemResponse, error) {
	kind, err := tagging.ParseEntityKind(kindName)
	if err != nil {
		s.metrics.RecordLookup(ctx, "invalid", telemetry.ResultUnknownKind, 0)
		return nil, err
	}
	items, err := s.GetTagsFor(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	return ToTaggedItemResponses(items), nil
}
