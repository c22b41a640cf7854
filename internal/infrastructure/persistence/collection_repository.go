package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

const collectionWithCount = "collections.*, " +
	"(SELECT COUNT(*) FROM products WHERE products.collection_id = collections.id) AS products_count"

// GormCollectionRepository implements catalog.CollectionRepository using GORM
type GormCollectionRepository struct {
	db *gorm.DB
}

// NewGormCollectionRepository creates a new GormCollectionRepository
func NewGormCollectionRepository(db *gorm.DB) *GormCollectionRepository {
	return &GormCollectionRepository{db: db}
}

// FindByID finds a collection annotated with its product count
func (r *GormCollectionRepository) FindByID(ctx context.Context, id uint64) (*catalog.Collection, error) {
	var m models.CollectionModel
	err := r.db.WithContext(ctx).Model(&models.CollectionModel{}).
		Select(collectionWithCount).
		Where("collections.id = ?", id).
		Take(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return m.ToDomain(), nil
}

// FindAll lists collections annotated with product counts
func (r *GormCollectionRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Collection, error) {
	var ms []models.CollectionModel
	query := r.applySearch(r.db.WithContext(ctx).Model(&models.CollectionModel{}), filter).
		Select(collectionWithCount).
		Order(orderClause(filter.OrderBy, filter.OrderDir, CollectionSortFields, "title ASC, id ASC"))
	if filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}
	if err := query.Find(&ms).Error; err != nil {
		return nil, err
	}

	out := make([]catalog.Collection, len(ms))
	for i := range ms {
		out[i] = *ms[i].ToDomain()
	}
	return out, nil
}

// Count counts collections matching the filter
func (r *GormCollectionRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	if err := r.applySearch(r.db.WithContext(ctx).Model(&models.CollectionModel{}), filter).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormCollectionRepository) applySearch(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if s := strings.TrimSpace(filter.Search); s != "" {
		query = query.Where("LOWER(collections.title) LIKE ?", "%"+strings.ToLower(s)+"%")
	}
	return query
}

// Save creates or updates a collection
func (r *GormCollectionRepository) Save(ctx context.Context, collection *catalog.Collection) error {
	m := models.CollectionModelFromDomain(collection)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	collection.ID = m.ID
	return nil
}

// Delete deletes a collection
func (r *GormCollectionRepository) Delete(ctx context.Context, id uint64) error {
	result := r.db.WithContext(ctx).Delete(&models.CollectionModel{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// HasProducts reports whether any product belongs to the collection
func (r *GormCollectionRepository) HasProducts(ctx context.Context, id uint64) (bool, error) {
	return exists(ctx, r.db, &models.ProductModel{}, "collection_id = ?", id)
}

// exists reports whether at least one row of model matches the condition
func exists(ctx context.Context, db *gorm.DB, model any, cond string, args ...any) (bool, error) {
	var found int
	err := db.WithContext(ctx).Model(model).Select("1").Where(cond, args...).Limit(1).Scan(&found).Error
	if err != nil {
		return false, err
	}
	return found == 1, nil
}
