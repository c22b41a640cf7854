package tagging

import (
	"context"

	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/tagging"
)

// TagService handles tag administration
type TagService struct {
	tagRepo  tagging.TagRepository
	itemRepo tagging.TaggedItemRepository
}

// NewTagService creates a new TagService
func NewTagService(tagRepo tagging.TagRepository, itemRepo tagging.TaggedItemRepository) *TagService {
	return &TagService{tagRepo: tagRepo, itemRepo: itemRepo}
}

// Create creates a new tag
func (s *TagService) Create(ctx context.Context, req CreateTagRequest) (*TagResponse, error) {
	tag, err := tagging.NewTag(req.Label)
	if err != nil {
		return nil, err
	}
	if err := s.tagRepo.Save(ctx, tag); err != nil {
		return nil, err
	}
	resp := ToTagResponse(tag)
	return &resp, nil
}

// GetByID retrieves a tag
func (s *TagService) GetByID(ctx context.Context, id uint64) (*TagResponse, error) {
	tag, err := s.tagRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToTagResponse(tag)
	return &resp, nil
}

// List retrieves tags ordered by label
func (s *TagService) List(ctx context.Context, filter TagListFilter) ([]TagResponse, int64, error) {
	domainFilter := shared.DefaultFilter()
	domainFilter.Search = filter.Search
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}

	tags, err := s.tagRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.tagRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToTagResponses(tags), total, nil
}

// Update relabels a tag
func (s *TagService) Update(ctx context.Context, id uint64, req UpdateTagRequest) (*TagResponse, error) {
	tag, err := s.tagRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := tag.Relabel(req.Label); err != nil {
		return nil, err
	}
	if err := s.tagRepo.Save(ctx, tag); err != nil {
		return nil, err
	}
	resp := ToTagResponse(tag)
	return &resp, nil
}

// Delete deletes a tag together with every association that uses it
func (s *TagService) Delete(ctx context.Context, id uint64) error {
	return s.tagRepo.Delete(ctx, id)
}

// Items lists the associations of a tag in storage order
func (s *TagService) Items(ctx context.Context, id uint64) ([]TaggedItemResponse, error) {
	if _, err := s.tagRepo.FindByID(ctx, id); err != nil {
		return nil, err
	}
	items, err := s.itemRepo.FindByTag(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToTaggedItemResponses(items), nil
}
