package tagging

import (
	"github.com/storefront/backend/internal/domain/tagging"
)

// CreateTagRequest represents a request to create a tag
type CreateTagRequest struct {
	Label string `json:"label" binding:"required,max=255"`
}

// UpdateTagRequest represents a request to relabel a tag
type UpdateTagRequest struct {
	Label string `json:"label" binding:"required,max=255"`
}

// TagListFilter represents filter options for the tag list
type TagListFilter struct {
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// AttachTagRequest represents a request to tag an entity
type AttachTagRequest struct {
	TagID    uint64 `json:"tag_id" binding:"required,min=1"`
	Kind     string `json:"kind" binding:"required,kind"`
	ObjectID uint64 `json:"object_id" binding:"required,min=1"`
}

// TagResponse represents a tag in API responses
type TagResponse struct {
	ID    uint64 `json:"id"`
	Label string `json:"label"`
}

// TaggedItemResponse represents an association in API responses
type TaggedItemResponse struct {
	ID       uint64       `json:"id"`
	TagID    uint64       `json:"tag_id"`
	Tag      *TagResponse `json:"tag,omitempty"`
	Kind     string       `json:"kind,omitempty"`
	ObjectID uint64       `json:"object_id"`
}

// ContentTypeResponse represents a registered content type
type ContentTypeResponse struct {
	ID       uint64 `json:"id"`
	AppLabel string `json:"app_label"`
	Model    string `json:"model"`
}

// ToTagResponse converts a domain Tag to TagResponse
func ToTagResponse(t *tagging.Tag) TagResponse {
	return TagResponse{ID: t.ID, Label: t.Label}
}

// ToTagResponses converts a slice of domain Tags
func ToTagResponses(tags []tagging.Tag) []TagResponse {
	out := make([]TagResponse, len(tags))
	for i := range tags {
		out[i] = ToTagResponse(&tags[i])
	}
	return out
}

// ToTaggedItemResponse converts an association. Kind is filled when the content
// type is loaded, Tag when the tag is.
func ToTaggedItemResponse(item *tagging.TaggedItem) TaggedItemResponse {
	resp := TaggedItemResponse{
		ID:       item.ID,
		TagID:    item.TagID,
		ObjectID: item.ObjectID,
	}
	if item.Tag != nil {
		tag := ToTagResponse(item.Tag)
		resp.Tag = &tag
	}
	if item.ContentType != nil {
		if kind, err := item.ContentType.Kind(); err == nil {
			resp.Kind = kind.String()
		}
	}
	return resp
}

// ToTaggedItemResponses converts a slice of associations
func ToTaggedItemResponses(items []tagging.TaggedItem) []TaggedItemResponse {
	out := make([]TaggedItemResponse, len(items))
	for i := range items {
		out[i] = ToTaggedItemResponse(&items[i])
	}
	return out
}

// ToContentTypeResponse converts a domain ContentType
func ToContentTypeResponse(ct *tagging.ContentType) ContentTypeResponse {
	return ContentTypeResponse{ID: ct.ID, AppLabel: ct.AppLabel, Model: ct.Model}
}
