package tagging

import (
	"fmt"

	"github.com/storefront/backend/internal/domain/shared"
)

// TargetRef identifies a tagged entity by kind and primary key.
// The referenced row is not required to exist.
type TargetRef struct {
	Kind EntityKind
	ID   uint64
}

// NewTargetRef validates and builds a target reference
func NewTargetRef(kind EntityKind, id uint64) (TargetRef, error) {
	if !kind.IsValid() {
		return TargetRef{}, ErrUnknownKind
	}
	if id == 0 {
		return TargetRef{}, shared.NewDomainError("INVALID_TARGET", "Target id must be a positive integer")
	}
	return TargetRef{Kind: kind, ID: id}, nil
}

// String returns "kind:id"
func (r TargetRef) String() string {
	return fmt.Sprintf("%s:%d", r.Kind, r.ID)
}

// TaggedItem links one Tag to one entity of a given kind
type TaggedItem struct {
	shared.BaseEntity
	TagID         uint64
	ContentTypeID uint64
	ObjectID      uint64

	// Tag is populated when the item is loaded together with its tag
	Tag *Tag
	// ContentType is populated when the item is loaded together with its descriptor
	ContentType *ContentType
}

// NewTaggedItem builds an unsaved association of tag to the target described by ct
func NewTaggedItem(tag *Tag, ct *ContentType, objectID uint64) (*TaggedItem, error) {
	if tag == nil || tag.IsNew() {
		return nil, shared.NewDomainError("INVALID_TAG", "Tag must be persisted before it can be attached")
	}
	if ct == nil || ct.ID == 0 {
		return nil, shared.NewDomainError("INVALID_CONTENT_TYPE", "Content type must be registered")
	}
	if objectID == 0 {
		return nil, shared.NewDomainError("INVALID_TARGET", "Target id must be a positive integer")
	}
	return &TaggedItem{
		TagID:         tag.ID,
		ContentTypeID: ct.ID,
		ObjectID:      objectID,
		Tag:           tag,
		ContentType:   ct,
	}, nil
}

// Target returns the referenced entity, when the content type is loaded
func (i *TaggedItem) Target() (TargetRef, error) {
	if i.ContentType == nil {
		return TargetRef{}, shared.NewDomainError("INVALID_STATE", "Content type not loaded")
	}
	kind, err := i.ContentType.Kind()
	if err != nil {
		return TargetRef{}, err
	}
	return TargetRef{Kind: kind, ID: i.ObjectID}, nil
}
