package persistence

import (
	"context"
	"errors"

	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/trade"
	"github.com/storefront/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormCartRepository implements trade.CartRepository using GORM
type GormCartRepository struct {
	db *gorm.DB
}

// NewGormCartRepository creates a new GormCartRepository
func NewGormCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// FindByID finds a cart with its items priced from their products
func (r *GormCartRepository) FindByID(ctx context.Context, id uint64) (*trade.Cart, error) {
	var m models.CartModel
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("cart_items.id ASC") }).
		Preload("Items.Product").
		First(&m, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return m.ToDomain(), nil
}

// Create inserts an empty cart
func (r *GormCartRepository) Create(ctx context.Context, cart *trade.Cart) error {
	m := &models.CartModel{CreatedAt: cart.CreatedAt}
	if err := r.db.WithContext(ctx).Omit("Items").Create(m).Error; err != nil {
		return err
	}
	cart.ID = m.ID
	return nil
}

// Delete deletes a cart and its items
func (r *GormCartRepository) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("cart_id = ?", id).Delete(&models.CartItemModel{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.CartModel{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// SaveItem creates or updates a cart line
func (r *GormCartRepository) SaveItem(ctx context.Context, item *trade.CartItem) error {
	m := models.CartItemModelFromDomain(item)
	if err := r.db.WithContext(ctx).Omit("Product").Save(m).Error; err != nil {
		return err
	}
	item.ID = m.ID
	return nil
}

// DeleteItem removes a line from the cart
func (r *GormCartRepository) DeleteItem(ctx context.Context, cartID, itemID uint64) error {
	result := r.db.WithContext(ctx).Where("cart_id = ? AND id = ?", cartID, itemID).Delete(&models.CartItemModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
