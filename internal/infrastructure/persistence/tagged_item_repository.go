package persistence

import (
	"context"
	"errors"

	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/tagging"
	"github.com/storefront/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTaggedItemRepository implements tagging.TaggedItemRepository using GORM
type GormTaggedItemRepository struct {
	db *gorm.DB
}

// NewGormTaggedItemRepository creates a new GormTaggedItemRepository
func NewGormTaggedItemRepository(db *gorm.DB) *GormTaggedItemRepository {
	return &GormTaggedItemRepository{db: db}
}

// FindByID finds an association with its tag and content type
func (r *GormTaggedItemRepository) FindByID(ctx context.Context, id uint64) (*tagging.TaggedItem, error) {
	var m models.TaggedItemModel
	err := r.db.WithContext(ctx).
		InnerJoins("Tag").
		InnerJoins("ContentType").
		Where("tagged_items.id = ?", id).
		Take(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return m.ToDomain(), nil
}

// FindByTarget returns the associations of one entity joined with their tags
// in a single query, in storage order.
func (r *GormTaggedItemRepository) FindByTarget(ctx context.Context, contentTypeID, objectID uint64) ([]tagging.TaggedItem, error) {
	var ms []models.TaggedItemModel
	err := r.db.WithContext(ctx).
		InnerJoins("Tag").
		Where("tagged_items.content_type_id = ? AND tagged_items.object_id = ?", contentTypeID, objectID).
		Order("tagged_items.id ASC").
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	return toTaggedItems(ms), nil
}

// FindByTag returns every association of a tag with its content type
func (r *GormTaggedItemRepository) FindByTag(ctx context.Context, tagID uint64) ([]tagging.TaggedItem, error) {
	var ms []models.TaggedItemModel
	err := r.db.WithContext(ctx).
		InnerJoins("ContentType").
		Where("tagged_items.tag_id = ?", tagID).
		Order("tagged_items.id ASC").
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	return toTaggedItems(ms), nil
}

// Save creates an association
func (r *GormTaggedItemRepository) Save(ctx context.Context, item *tagging.TaggedItem) error {
	m := models.TaggedItemModelFromDomain(item)
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(m).Error; err != nil {
		return err
	}
	item.ID = m.ID
	return nil
}

// Delete removes a single association
func (r *GormTaggedItemRepository) Delete(ctx context.Context, id uint64) error {
	result := r.db.WithContext(ctx).Delete(&models.TaggedItemModel{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func toTaggedItems(ms []models.TaggedItemModel) []tagging.TaggedItem {
	items := make([]tagging.TaggedItem, len(ms))
	for i := range ms {
		items[i] = *ms[i].ToDomain()
	}
	return items
}
