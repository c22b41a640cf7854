package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormProductRepository implements catalog.ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// FindByID finds a product by its ID, with promotion ids loaded
func (r *GormProductRepository) FindByID(ctx context.Context, id uint64) (*catalog.Product, error) {
	var m models.ProductModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	products, err := r.withPromotions(ctx, []models.ProductModel{m})
	if err != nil {
		return nil, err
	}
	return &products[0], nil
}

// FindByIDs finds several products at once, in id order
func (r *GormProductRepository) FindByIDs(ctx context.Context, ids []uint64) ([]catalog.Product, error) {
	if len(ids) == 0 {
		return []catalog.Product{}, nil
	}
	var ms []models.ProductModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("id ASC").Find(&ms).Error; err != nil {
		return nil, err
	}
	return r.withPromotions(ctx, ms)
}

// FindAll finds all products matching the query
func (r *GormProductRepository) FindAll(ctx context.Context, q catalog.ProductQuery) ([]catalog.Product, error) {
	var ms []models.ProductModel
	query := r.applyQuery(r.db.WithContext(ctx).Model(&models.ProductModel{}), q).
		Order(orderClause(q.OrderBy, q.OrderDir, ProductSortFields, "title ASC, id ASC"))
	if q.PageSize > 0 {
		query = query.Offset(q.Offset()).Limit(q.PageSize)
	}
	if err := query.Find(&ms).Error; err != nil {
		return nil, err
	}
	return r.withPromotions(ctx, ms)
}

// Count counts products matching the query
func (r *GormProductRepository) Count(ctx context.Context, q catalog.ProductQuery) (int64, error) {
	var count int64
	if err := r.applyQuery(r.db.WithContext(ctx).Model(&models.ProductModel{}), q).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormProductRepository) applyQuery(query *gorm.DB, q catalog.ProductQuery) *gorm.DB {
	if s := strings.TrimSpace(q.Search); s != "" {
		pattern := "%" + strings.ToLower(s) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}
	if q.UnitPriceLT != nil {
		query = query.Where("unit_price < ?", *q.UnitPriceLT)
	}
	if q.UnitPriceGT != nil {
		query = query.Where("unit_price > ?", *q.UnitPriceGT)
	}
	if q.InventoryLT != nil {
		query = query.Where("inventory < ?", *q.InventoryLT)
	}
	if q.InventoryGT != nil {
		query = query.Where("inventory > ?", *q.InventoryGT)
	}
	if q.CollectionID != nil {
		query = query.Where("collection_id = ?", *q.CollectionID)
	}
	switch q.InventoryStatus {
	case catalog.InventoryLow:
		query = query.Where("inventory < ?", catalog.LowInventoryThreshold)
	case catalog.InventoryOK:
		query = query.Where("inventory >= ?", catalog.LowInventoryThreshold)
	}
	return query
}

// withPromotions maps models to domain products and loads their promotion ids in one query
func (r *GormProductRepository) withPromotions(ctx context.Context, ms []models.ProductModel) ([]catalog.Product, error) {
	products := make([]catalog.Product, len(ms))
	if len(ms) == 0 {
		return products, nil
	}

	index := make(map[uint64]int, len(ms))
	ids := make([]uint64, len(ms))
	for i := range ms {
		products[i] = *ms[i].ToDomain()
		index[ms[i].ID] = i
		ids[i] = ms[i].ID
	}

	var links []models.ProductPromotionModel
	err := r.db.WithContext(ctx).
		Where("product_id IN ?", ids).
		Order("product_id ASC, promotion_id ASC").
		Find(&links).Error
	if err != nil {
		return nil, err
	}
	for _, l := range links {
		p := &products[index[l.ProductID]]
		p.PromotionIDs = append(p.PromotionIDs, l.PromotionID)
	}
	return products, nil
}

// Save creates or updates a product and replaces its promotion links
func (r *GormProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	m := models.ProductModelFromDomain(product)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Collection").Save(m).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", m.ID).Delete(&models.ProductPromotionModel{}).Error; err != nil {
			return err
		}
		if len(product.PromotionIDs) == 0 {
			return nil
		}
		links := make([]models.ProductPromotionModel, len(product.PromotionIDs))
		for i, pid := range product.PromotionIDs {
			links[i] = models.ProductPromotionModel{ProductID: m.ID, PromotionID: pid}
		}
		return tx.Omit("Product", "Promotion").Create(&links).Error
	})
	if err != nil {
		return err
	}
	product.ID = m.ID
	return nil
}

// Delete deletes a product. Cart lines, reviews and promotion links are removed,
// collections featuring it are cleared. Tag associations are left in place.
func (r *GormProductRepository) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&models.CartItemModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", id).Delete(&models.ReviewModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", id).Delete(&models.ProductPromotionModel{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.CollectionModel{}).
			Where("featured_product_id = ?", id).
			Update("featured_product_id", nil).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.ProductModel{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// HasOrderItems reports whether any order item references the product
func (r *GormProductRepository) HasOrderItems(ctx context.Context, id uint64) (bool, error) {
	return exists(ctx, r.db, &models.OrderItemModel{}, "product_id = ?", id)
}

// ClearInventory sets inventory to zero for the given products
func (r *GormProductRepository) ClearInventory(ctx context.Context, ids []uint64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).Model(&models.ProductModel{}).
		Where("id IN ?", ids).
		Updates(map[string]any{"inventory": 0, "last_update": time.Now()})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
