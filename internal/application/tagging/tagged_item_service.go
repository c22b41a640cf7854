package tagging

import (
	"context"
	"errors"

	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/tagging"
	"github.com/storefront/backend/internal/infrastructure/telemetry"
)

// ErrTagNotFound is returned when attaching a tag that does not exist
var ErrTagNotFound = shared.NewDomainError("INVALID_TAG", "Tag not found")

// TaggedItemService attaches tags to entities and detaches them
type TaggedItemService struct {
	tagRepo  tagging.TagRepository
	itemRepo tagging.TaggedItemRepository
	registry *ContentTypeRegistry
}

// NewTaggedItemService creates a new TaggedItemService
func NewTaggedItemService(
	tagRepo tagging.TagRepository,
	itemRepo tagging.TaggedItemRepository,
	registry *ContentTypeRegistry,
) *TaggedItemService {
	return &TaggedItemService{tagRepo: tagRepo, itemRepo: itemRepo, registry: registry}
}

// Attach tags the entity (kind, object id). The entity itself is not looked up;
// the association holds a weak reference to it. Attaching the same tag twice
// creates two associations.
func (s *TaggedItemService) Attach(ctx context.Context, req AttachTagRequest) (*TaggedItemResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "tagged_item", "attach",
		telemetry.WithAttribute(telemetry.AttrTagID, req.TagID),
		telemetry.WithAttribute(telemetry.AttrContentKind, req.Kind),
		telemetry.WithAttribute(telemetry.AttrObjectID, req.ObjectID),
	)
	defer span.End()

	kind, err := tagging.ParseEntityKind(req.Kind)
	if err != nil {
		return nil, err
	}
	target, err := tagging.NewTargetRef(kind, req.ObjectID)
	if err != nil {
		return nil, err
	}

	tag, err := s.tagRepo.FindByID(ctx, req.TagID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, ErrTagNotFound
		}
		telemetry.RecordError(span, err)
		return nil, err
	}

	ct, err := s.registry.Resolve(ctx, target.Kind)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	item, err := tagging.NewTaggedItem(tag, ct, target.ID)
	if err != nil {
		return nil, err
	}
	if err := s.itemRepo.Save(ctx, item); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	resp := ToTaggedItemResponse(item)
	return &resp, nil
}

// GetByID retrieves an association with its tag and kind
func (s *TaggedItemService) GetByID(ctx context.Context, id uint64) (*TaggedItemResponse, error) {
	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToTaggedItemResponse(item)
	return &resp, nil
}

// Detach removes one association. The tag and the entity are untouched.
func (s *TaggedItemService) Detach(ctx context.Context, id uint64) error {
	return s.itemRepo.Delete(ctx, id)
}
