package partner

import (
	"context"

	"github.com/storefront/backend/internal/domain/shared"
)

// CustomerRepository defines the interface for customer persistence
type CustomerRepository interface {
	// FindByID finds a customer, annotated with its order count
	FindByID(ctx context.Context, id uint64) (*Customer, error)

	// FindAll lists customers ordered by first and last name.
	// Search matches the beginning of either name, case-insensitively.
	// Filters["membership"] narrows by tier.
	FindAll(ctx context.Context, filter shared.Filter) ([]Customer, error)

	// Count counts customers matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// ExistsByEmail reports whether a customer other than excludeID uses email
	ExistsByEmail(ctx context.Context, email string, excludeID uint64) (bool, error)

	// Save creates or updates a customer
	Save(ctx context.Context, customer *Customer) error

	// Delete deletes a customer and its addresses
	Delete(ctx context.Context, id uint64) error

	// HasOrders reports whether the customer has placed any order
	HasOrders(ctx context.Context, id uint64) (bool, error)
}

// AddressRepository defines the interface for address persistence
type AddressRepository interface {
	FindByCustomer(ctx context.Context, customerID uint64) ([]Address, error)
	Save(ctx context.Context, address *Address) error
	// Delete removes an address of the given customer
	Delete(ctx context.Context, customerID, id uint64) error
}
