package catalog

import (
	"context"

	"github.com/storefront/backend/internal/domain/catalog"
)

// PromotionService handles promotion administration
type PromotionService struct {
	promotionRepo catalog.PromotionRepository
}

// NewPromotionService creates a new PromotionService
func NewPromotionService(promotionRepo catalog.PromotionRepository) *PromotionService {
	return &PromotionService{promotionRepo: promotionRepo}
}

// Create creates a new promotion
func (s *PromotionService) Create(ctx context.Context, req CreatePromotionRequest) (*PromotionResponse, error) {
	promotion, err := catalog.NewPromotion(req.Description, req.Discount)
	if err != nil {
		return nil, err
	}
	if err := s.promotionRepo.Save(ctx, promotion); err != nil {
		return nil, err
	}
	response := ToPromotionResponse(promotion)
	return &response, nil
}

// GetByID retrieves a promotion
func (s *PromotionService) GetByID(ctx context.Context, id uint64) (*PromotionResponse, error) {
	promotion, err := s.promotionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToPromotionResponse(promotion)
	return &response, nil
}

// List retrieves promotions
func (s *PromotionService) List(ctx context.Context, filter ListFilter) ([]PromotionResponse, int64, error) {
	domainFilter := filter.toFilter()
	promotions, err := s.promotionRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.promotionRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToPromotionResponses(promotions), total, nil
}

// Delete deletes a promotion. Products lose the link, not the product.
func (s *PromotionService) Delete(ctx context.Context, id uint64) error {
	return s.promotionRepo.Delete(ctx, id)
}
