package trade

import (
	"context"

	"github.com/storefront/backend/internal/domain/shared"
)

// OrderRepository defines the interface for order persistence
type OrderRepository interface {
	// FindByID finds an order with its items
	FindByID(ctx context.Context, id uint64) (*Order, error)

	// FindAll lists orders newest first.
	// Filters["customer_id"] and Filters["payment_status"] narrow the result.
	FindAll(ctx context.Context, filter shared.Filter) ([]Order, error)

	// Count counts orders matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// Create inserts the order and its items in one transaction
	Create(ctx context.Context, order *Order) error

	// UpdatePaymentStatus persists the order's payment status
	UpdatePaymentStatus(ctx context.Context, order *Order) error

	// Delete deletes an order that has no items
	Delete(ctx context.Context, id uint64) error

	// HasItems reports whether the order has any items
	HasItems(ctx context.Context, id uint64) (bool, error)
}

// CartRepository defines the interface for cart persistence
type CartRepository interface {
	// FindByID finds a cart with its items and their current unit prices
	FindByID(ctx context.Context, id uint64) (*Cart, error)

	// Create inserts an empty cart
	Create(ctx context.Context, cart *Cart) error

	// Delete deletes a cart and its items
	Delete(ctx context.Context, id uint64) error

	// SaveItem creates or updates a cart line
	SaveItem(ctx context.Context, item *CartItem) error

	// DeleteItem removes a line from the cart
	DeleteItem(ctx context.Context, cartID, itemID uint64) error
}
