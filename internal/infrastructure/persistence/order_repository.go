package persistence

import (
	"context"
	"errors"

	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/trade"
	"github.com/storefront/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormOrderRepository implements trade.OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

func preloadOrderItems(db *gorm.DB) *gorm.DB {
	return db.Order("order_items.id ASC")
}

// FindByID finds an order with its items
func (r *GormOrderRepository) FindByID(ctx context.Context, id uint64) (*trade.Order, error) {
	var m models.OrderModel
	if err := r.db.WithContext(ctx).Preload("Items", preloadOrderItems).First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return m.ToDomain(), nil
}

// FindAll lists orders newest first
func (r *GormOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]trade.Order, error) {
	var ms []models.OrderModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.OrderModel{}), filter).
		Preload("Items", preloadOrderItems).
		Order(orderClause(filter.OrderBy, filter.OrderDir, OrderSortFields, "placed_at DESC, id DESC"))
	if filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}
	if err := query.Find(&ms).Error; err != nil {
		return nil, err
	}
	out := make([]trade.Order, len(ms))
	for i := range ms {
		out[i] = *ms[i].ToDomain()
	}
	return out, nil
}

// Count counts orders matching the filter
func (r *GormOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	if err := r.applyFilter(r.db.WithContext(ctx).Model(&models.OrderModel{}), filter).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormOrderRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if v, ok := filter.Filters["customer_id"]; ok {
		query = query.Where("customer_id = ?", v)
	}
	if v, ok := filter.Filters["payment_status"]; ok {
		query = query.Where("payment_status = ?", v)
	}
	return query
}

// Create inserts the order and its items in one transaction
func (r *GormOrderRepository) Create(ctx context.Context, order *trade.Order) error {
	m := models.OrderModelFromDomain(order)
	items := m.Items
	m.Items = nil

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Customer", "Items").Create(m).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].OrderID = m.ID
		}
		if len(items) == 0 {
			return nil
		}
		return tx.Omit("Product").Create(&items).Error
	})
	if err != nil {
		return err
	}

	order.ID = m.ID
	for i := range order.Items {
		order.Items[i].ID = items[i].ID
		order.Items[i].OrderID = m.ID
	}
	return nil
}

// UpdatePaymentStatus persists the order's payment status
func (r *GormOrderRepository) UpdatePaymentStatus(ctx context.Context, order *trade.Order) error {
	result := r.db.WithContext(ctx).Model(&models.OrderModel{}).
		Where("id = ?", order.ID).
		Update("payment_status", order.PaymentStatus)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete deletes an order
func (r *GormOrderRepository) Delete(ctx context.Context, id uint64) error {
	result := r.db.WithContext(ctx).Delete(&models.OrderModel{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// HasItems reports whether the order has any items
func (r *GormOrderRepository) HasItems(ctx context.Context, id uint64) (bool, error) {
	return exists(ctx, r.db, &models.OrderItemModel{}, "order_id = ?", id)
}
