package tagging

import (
	"context"

	"github.com/storefront/backend/internal/domain/shared"
)

// TagRepository defines the interface for tag persistence
type TagRepository interface {
	// FindByID finds a tag by its ID
	FindByID(ctx context.Context, id uint64) (*Tag, error)

	// FindAll finds all tags matching the filter (Search matches the label)
	FindAll(ctx context.Context, filter shared.Filter) ([]Tag, error)

	// Count counts tags matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// Save creates or updates a tag
	Save(ctx context.Context, tag *Tag) error

	// Delete deletes a tag together with every association that references it
	Delete(ctx context.Context, id uint64) error
}

// TaggedItemRepository defines the interface for tag association persistence
type TaggedItemRepository interface {
	// FindByID finds an association by its ID, with its tag and content type loaded
	FindByID(ctx context.Context, id uint64) (*TaggedItem, error)

	// FindByTarget returns the associations of one entity with their tags joined,
	// ordered by association id. An empty slice is returned when there are none.
	FindByTarget(ctx context.Context, contentTypeID, objectID uint64) ([]TaggedItem, error)

	// FindByTag returns every association of a tag
	FindByTag(ctx context.Context, tagID uint64) ([]TaggedItem, error)

	// Save creates an association
	Save(ctx context.Context, item *TaggedItem) error

	// Delete removes a single association
	Delete(ctx context.Context, id uint64) error
}

// ContentTypeRepository persists kind descriptors
type ContentTypeRepository interface {
	// GetOrCreate returns the descriptor for (appLabel, model), inserting it when absent.
	// Concurrent callers for the same key receive the same row.
	GetOrCreate(ctx context.Context, appLabel, model string) (*ContentType, error)

	// FindAll lists every registered descriptor ordered by id
	FindAll(ctx context.Context) ([]ContentType, error)
}

// ContentTypeCache is an optional shared cache tier in front of ContentTypeRepository
type ContentTypeCache interface {
	// Get returns the cached descriptor for kind, or false when absent
	Get(ctx context.Context, kind EntityKind) (*ContentType, bool, error)

	// Set stores the descriptor for kind
	Set(ctx context.Context, kind EntityKind, ct *ContentType) error
}
