package persistence

import (
	"context"
	"errors"

	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormReviewRepository implements catalog.ReviewRepository using GORM
type GormReviewRepository struct {
	db *gorm.DB
}

// NewGormReviewRepository creates a new GormReviewRepository
func NewGormReviewRepository(db *gorm.DB) *GormReviewRepository {
	return &GormReviewRepository{db: db}
}

// FindByID finds a review of a product
func (r *GormReviewRepository) FindByID(ctx context.Context, productID, id uint64) (*catalog.Review, error) {
	var m models.ReviewModel
	err := r.db.WithContext(ctx).Where("product_id = ? AND id = ?", productID, id).Take(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return m.ToDomain(), nil
}

// FindByProduct lists the reviews of a product, newest first
func (r *GormReviewRepository) FindByProduct(ctx context.Context, productID uint64, filter shared.Filter) ([]catalog.Review, error) {
	var ms []models.ReviewModel
	query := r.db.WithContext(ctx).Where("product_id = ?", productID).Order("date DESC, id DESC")
	if filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}
	if err := query.Find(&ms).Error; err != nil {
		return nil, err
	}
	out := make([]catalog.Review, len(ms))
	for i := range ms {
		out[i] = *ms[i].ToDomain()
	}
	return out, nil
}

// CountByProduct counts the reviews of a product
func (r *GormReviewRepository) CountByProduct(ctx context.Context, productID uint64) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.ReviewModel{}).Where("product_id = ?", productID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a review
func (r *GormReviewRepository) Save(ctx context.Context, review *catalog.Review) error {
	m := models.ReviewModelFromDomain(review)
	if err := r.db.WithContext(ctx).Omit("Product").Save(m).Error; err != nil {
		return err
	}
	review.ID = m.ID
	return nil
}

// Delete removes a review of the given product
func (r *GormReviewRepository) Delete(ctx context.Context, productID, id uint64) error {
	result := r.db.WithContext(ctx).Where("product_id = ? AND id = ?", productID, id).Delete(&models.ReviewModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
