package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/tagging"
	"github.com/storefront/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormTagRepository implements tagging.TagRepository using GORM
type GormTagRepository struct {
	db *gorm.DB
}

// NewGormTagRepository creates a new GormTagRepository
func NewGormTagRepository(db *gorm.DB) *GormTagRepository {
	return &GormTagRepository{db: db}
}

// FindByID finds a tag by its ID
func (r *GormTagRepository) FindByID(ctx context.Context, id uint64) (*tagging.Tag, error) {
	var m models.TagModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return m.ToDomain(), nil
}

// FindAll finds tags whose label contains filter.Search, ordered by label
func (r *GormTagRepository) FindAll(ctx context.Context, filter shared.Filter) ([]tagging.Tag, error) {
	var ms []models.TagModel
	query := r.applySearch(r.db.WithContext(ctx).Model(&models.TagModel{}), filter).
		Order(orderClause(filter.OrderBy, filter.OrderDir, TagSortFields, "label ASC, id ASC"))
	if filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}
	if err := query.Find(&ms).Error; err != nil {
		return nil, err
	}

	tags := make([]tagging.Tag, len(ms))
	for i := range ms {
		tags[i] = *ms[i].ToDomain()
	}
	return tags, nil
}

// Count counts tags matching the filter
func (r *GormTagRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applySearch(r.db.WithContext(ctx).Model(&models.TagModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormTagRepository) applySearch(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if s := strings.TrimSpace(filter.Search); s != "" {
		query = query.Where("LOWER(label) LIKE ?", "%"+strings.ToLower(s)+"%")
	}
	return query
}

// Save creates or updates a tag
func (r *GormTagRepository) Save(ctx context.Context, tag *tagging.Tag) error {
	m := models.TagModelFromDomain(tag)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	tag.ID = m.ID
	return nil
}

// Delete deletes a tag and every association that references it in one transaction
func (r *GormTagRepository) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tag_id = ?", id).Delete(&models.TaggedItemModel{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.TagModel{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}
