package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/storefront/backend/internal/domain/partner"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

const customerWithCount = "customers.*, " +
	"(SELECT COUNT(*) FROM orders WHERE orders.customer_id = customers.id) AS orders_count"

// GormCustomerRepository implements partner.CustomerRepository using GORM
type GormCustomerRepository struct {
	db *gorm.DB
}

// NewGormCustomerRepository creates a new GormCustomerRepository
func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

// FindByID finds a customer annotated with its order count
func (r *GormCustomerRepository) FindByID(ctx context.Context, id uint64) (*partner.Customer, error) {
	var m models.CustomerModel
	err := r.db.WithContext(ctx).Model(&models.CustomerModel{}).
		Select(customerWithCount).
		Where("customers.id = ?", id).
		Take(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return m.ToDomain(), nil
}

// FindAll lists customers ordered by name
func (r *GormCustomerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Customer, error) {
	var ms []models.CustomerModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.CustomerModel{}), filter).
		Select(customerWithCount).
		Order(orderClause(filter.OrderBy, filter.OrderDir, CustomerSortFields, "first_name ASC, last_name ASC, id ASC"))
	if filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}
	if err := query.Find(&ms).Error; err != nil {
		return nil, err
	}
	out := make([]partner.Customer, len(ms))
	for i := range ms {
		out[i] = *ms[i].ToDomain()
	}
	return out, nil
}

// Count counts customers matching the filter
func (r *GormCustomerRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	if err := r.applyFilter(r.db.WithContext(ctx).Model(&models.CustomerModel{}), filter).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormCustomerRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if s := strings.TrimSpace(filter.Search); s != "" {
		prefix := strings.ToLower(s) + "%"
		query = query.Where("LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ?", prefix, prefix)
	}
	if m, ok := filter.Filters["membership"]; ok {
		query = query.Where("membership = ?", m)
	}
	return query
}

// ExistsByEmail reports whether a customer other than excludeID uses email
func (r *GormCustomerRepository) ExistsByEmail(ctx context.Context, email string, excludeID uint64) (bool, error) {
	return exists(ctx, r.db, &models.CustomerModel{}, "LOWER(email) = ? AND id <> ?", strings.ToLower(email), excludeID)
}

// Save creates or updates a customer
func (r *GormCustomerRepository) Save(ctx context.Context, customer *partner.Customer) error {
	m := models.CustomerModelFromDomain(customer)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	customer.ID = m.ID
	return nil
}

// Delete deletes a customer and its addresses
func (r *GormCustomerRepository) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("customer_id = ?", id).Delete(&models.AddressModel{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.CustomerModel{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// HasOrders reports whether the customer has placed any order
func (r *GormCustomerRepository) HasOrders(ctx context.Context, id uint64) (bool, error) {
	return exists(ctx, r.db, &models.OrderModel{}, "customer_id = ?", id)
}

// GormAddressRepository implements partner.AddressRepository using GORM
type GormAddressRepository struct {
	db *gorm.DB
}

// NewGormAddressRepository creates a new GormAddressRepository
func NewGormAddressRepository(db *gorm.DB) *GormAddressRepository {
	return &GormAddressRepository{db: db}
}

// FindByCustomer lists a customer's addresses
func (r *GormAddressRepository) FindByCustomer(ctx context.Context, customerID uint64) ([]partner.Address, error) {
	var ms []models.AddressModel
	if err := r.db.WithContext(ctx).Where("customer_id = ?", customerID).Order("id ASC").Find(&ms).Error; err != nil {
		return nil, err
	}
	out := make([]partner.Address, len(ms))
	for i := range ms {
		out[i] = *ms[i].ToDomain()
	}
	return out, nil
}

// Save creates or updates an address
func (r *GormAddressRepository) Save(ctx context.Context, address *partner.Address) error {
	m := models.AddressModelFromDomain(address)
	if err := r.db.WithContext(ctx).Omit("Customer").Save(m).Error; err != nil {
		return err
	}
	address.ID = m.ID
	return nil
}

// Delete removes an address of the given customer
func (r *GormAddressRepository) Delete(ctx context.Context, customerID, id uint64) error {
	result := r.db.WithContext(ctx).Where("customer_id = ? AND id = ?", customerID, id).Delete(&models.AddressModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
