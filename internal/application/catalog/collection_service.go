package catalog

import (
	"context"
	"errors"

	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
)

// CollectionService handles collection-related business operations
type CollectionService struct {
	collectionRepo catalog.CollectionRepository
	productRepo    catalog.ProductRepository
}

// NewCollectionService creates a new CollectionService
func NewCollectionService(collectionRepo catalog.CollectionRepository, productRepo catalog.ProductRepository) *CollectionService {
	return &CollectionService{
		collectionRepo: collectionRepo,
		productRepo:    productRepo,
	}
}

// Create creates a new collection
func (s *CollectionService) Create(ctx context.Context, req CreateCollectionRequest) (*CollectionResponse, error) {
	collection, err := catalog.NewCollection(req.Title)
	if err != nil {
		return nil, err
	}
	if err := s.setFeatured(ctx, collection, req.FeaturedProductID); err != nil {
		return nil, err
	}

	if err := s.collectionRepo.Save(ctx, collection); err != nil {
		return nil, err
	}

	response := ToCollectionResponse(collection)
	return &response, nil
}

// GetByID retrieves a collection with its product count
func (s *CollectionService) GetByID(ctx context.Context, id uint64) (*CollectionResponse, error) {
	collection, err := s.collectionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToCollectionResponse(collection)
	return &response, nil
}

// List retrieves collections ordered by title
func (s *CollectionService) List(ctx context.Context, filter ListFilter) ([]CollectionResponse, int64, error) {
	domainFilter := filter.toFilter()
	collections, err := s.collectionRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.collectionRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToCollectionResponses(collections), total, nil
}

// Update renames a collection and changes its featured product
func (s *CollectionService) Update(ctx context.Context, id uint64, req UpdateCollectionRequest) (*CollectionResponse, error) {
	collection, err := s.collectionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := collection.Rename(req.Title); err != nil {
		return nil, err
	}
	if err := s.setFeatured(ctx, collection, req.FeaturedProductID); err != nil {
		return nil, err
	}

	if err := s.collectionRepo.Save(ctx, collection); err != nil {
		return nil, err
	}

	response := ToCollectionResponse(collection)
	return &response, nil
}

// Delete deletes a collection that no product belongs to
func (s *CollectionService) Delete(ctx context.Context, id uint64) error {
	if _, err := s.collectionRepo.FindByID(ctx, id); err != nil {
		return err
	}
	hasProducts, err := s.collectionRepo.HasProducts(ctx, id)
	if err != nil {
		return err
	}
	if hasProducts {
		return catalog.ErrCollectionHasProducts
	}
	return s.collectionRepo.Delete(ctx, id)
}

func (s *CollectionService) setFeatured(ctx context.Context, collection *catalog.Collection, productID *uint64) error {
	if productID != nil && *productID != 0 {
		if _, err := s.productRepo.FindByID(ctx, *productID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return shared.NewDomainError("INVALID_PRODUCT", "Featured product not found")
			}
			return err
		}
	}
	collection.Feature(productID)
	return nil
}
