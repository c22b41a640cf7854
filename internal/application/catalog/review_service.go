package catalog

import (
	"context"

	"github.com/storefront/backend/internal/domain/catalog"
)

// ReviewService manages the reviews nested under a product
type ReviewService struct {
	reviewRepo  catalog.ReviewRepository
	productRepo catalog.ProductRepository
}

// NewReviewService creates a new ReviewService
func NewReviewService(reviewRepo catalog.ReviewRepository, productRepo catalog.ProductRepository) *ReviewService {
	return &ReviewService{reviewRepo: reviewRepo, productRepo: productRepo}
}

// List returns the reviews of a product, newest first
func (s *ReviewService) List(ctx context.Context, productID uint64, filter ListFilter) ([]ReviewResponse, int64, error) {
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		return nil, 0, err
	}
	reviews, err := s.reviewRepo.FindByProduct(ctx, productID, filter.toFilter())
	if err != nil {
		return nil, 0, err
	}
	total, err := s.reviewRepo.CountByProduct(ctx, productID)
	if err != nil {
		return nil, 0, err
	}
	return ToReviewResponses(reviews), total, nil
}

// Create adds a review to a product
func (s *ReviewService) Create(ctx context.Context, productID uint64, req CreateReviewRequest) (*ReviewResponse, error) {
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		return nil, err
	}
	review, err := catalog.NewReview(productID, req.Name, req.Description)
	if err != nil {
		return nil, err
	}
	if err := s.reviewRepo.Save(ctx, review); err != nil {
		return nil, err
	}
	response := ToReviewResponse(review)
	return &response, nil
}

// GetByID retrieves one review of a product
func (s *ReviewService) GetByID(ctx context.Context, productID, id uint64) (*ReviewResponse, error) {
	review, err := s.reviewRepo.FindByID(ctx, productID, id)
	if err != nil {
		return nil, err
	}
	response := ToReviewResponse(review)
	return &response, nil
}

// Update edits a review
func (s *ReviewService) Update(ctx context.Context, productID, id uint64, req UpdateReviewRequest) (*ReviewResponse, error) {
	review, err := s.reviewRepo.FindByID(ctx, productID, id)
	if err != nil {
		return nil, err
	}
	if err := review.Update(req.Name, req.Description); err != nil {
		return nil, err
	}
	if err := s.reviewRepo.Save(ctx, review); err != nil {
		return nil, err
	}
	response := ToReviewResponse(review)
	return &response, nil
}

// Delete removes a review of a product
func (s *ReviewService) Delete(ctx context.Context, productID, id uint64) error {
	return s.reviewRepo.Delete(ctx, productID, id)
}
