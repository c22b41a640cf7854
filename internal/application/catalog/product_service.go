package catalog

import (
	"context"
	"errors"

	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/telemetry"
)

var (
	errCollectionMissing = shared.NewDomainError("INVALID_COLLECTION", "Collection not found")
	errPromotionMissing  = shared.NewDomainError("INVALID_PROMOTION", "One or more promotions do not exist")
)

// ProductService handles product-related business operations
type ProductService struct {
	productRepo    catalog.ProductRepository
	collectionRepo catalog.CollectionRepository
	promotionRepo  catalog.PromotionRepository
}

// NewProductService creates a new ProductService
func NewProductService(
	productRepo catalog.ProductRepository,
	collectionRepo catalog.CollectionRepository,
	promotionRepo catalog.PromotionRepository,
) *ProductService {
	return &ProductService{
		productRepo:    productRepo,
		collectionRepo: collectionRepo,
		promotionRepo:  promotionRepo,
	}
}

// Create creates a new product
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	if err := s.checkReferences(ctx, req.CollectionID, req.PromotionIDs); err != nil {
		return nil, err
	}

	product, err := catalog.NewProduct(req.Title, req.Description, req.UnitPrice, req.Inventory, req.CollectionID)
	if err != nil {
		return nil, err
	}
	if err := product.SetSlug(req.Slug); err != nil {
		return nil, err
	}
	product.SetPromotions(req.PromotionIDs)

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// GetByID retrieves a product by ID
func (s *ProductService) GetByID(ctx context.Context, id uint64) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// List retrieves products matching the filter
func (s *ProductService) List(ctx context.Context, filter ProductListFilter) ([]ProductResponse, int64, error) {
	query := filter.toQuery()

	products, err := s.productRepo.FindAll(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.productRepo.Count(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	return ToProductResponses(products), total, nil
}

// Update replaces the editable attributes of a product
func (s *ProductService) Update(ctx context.Context, id uint64, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkReferences(ctx, req.CollectionID, req.PromotionIDs); err != nil {
		return nil, err
	}

	if err := product.Update(req.Title, req.Description, req.UnitPrice, req.Inventory, req.CollectionID); err != nil {
		return nil, err
	}
	if err := product.SetSlug(req.Slug); err != nil {
		return nil, err
	}
	product.SetPromotions(req.PromotionIDs)

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// Delete deletes a product no order item references.
// Cart lines for the product go with it; tag associations stay.
func (s *ProductService) Delete(ctx context.Context, id uint64) error {
	if _, err := s.productRepo.FindByID(ctx, id); err != nil {
		return err
	}
	hasItems, err := s.productRepo.HasOrderItems(ctx, id)
	if err != nil {
		return err
	}
	if hasItems {
		return catalog.ErrProductHasOrderItems
	}
	return s.productRepo.Delete(ctx, id)
}

// ClearInventory resets the stock of the given products to zero
func (s *ProductService) ClearInventory(ctx context.Context, req ClearInventoryRequest) (*ClearInventoryResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "product", "clear_inventory",
		telemetry.WithAttribute("product.count", len(req.ProductIDs)),
	)
	defer span.End()

	updated, err := s.productRepo.ClearInventory(ctx, req.ProductIDs)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	telemetry.SetAttributes(span, "product.updated", updated)
	return &ClearInventoryResponse{Updated: updated}, nil
}

func (s *ProductService) checkReferences(ctx context.Context, collectionID uint64, promotionIDs []uint64) error {
	if _, err := s.collectionRepo.FindByID(ctx, collectionID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return errCollectionMissing
		}
		return err
	}
	if len(promotionIDs) == 0 {
		return nil
	}
	ok, err := s.promotionRepo.ExistAll(ctx, promotionIDs)
	if err != nil {
		return err
	}
	if !ok {
		return errPromotionMissing
	}
	return nil
}
