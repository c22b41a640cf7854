package trade

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/shared"
)

// MaxQuantity is the largest quantity a single line can hold (positive smallint)
const MaxQuantity = 32767

// PaymentStatus is the payment state of an order
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "P"
	PaymentComplete PaymentStatus = "C"
	PaymentFailed   PaymentStatus = "F"
)

// Label returns the display name of the status
func (s PaymentStatus) Label() string {
	switch s {
	case PaymentPending:
		return "Pending"
	case PaymentComplete:
		return "Complete"
	case PaymentFailed:
		return "Failed"
	}
	return ""
}

// IsValid reports whether s is a known status
func (s PaymentStatus) IsValid() bool {
	return s.Label() != ""
}

// ErrOrderHasItems is returned when deleting an order whose items still reference it
var ErrOrderHasItems = shared.NewDomainError("DELETE_PROTECTED", "The order has order items")

// ErrEmptyOrder is returned when an order is placed without lines
var ErrEmptyOrder = shared.NewDomainError("INVALID_ORDER", "Order must contain at least one item")

// Order is a customer purchase
type Order struct {
	shared.BaseEntity
	PlacedAt      time.Time
	PaymentStatus PaymentStatus
	CustomerID    uint64
	Items         []OrderItem
}

// OrderItem is one product line of an order, priced at the time it was placed
type OrderItem struct {
	shared.BaseEntity
	OrderID   uint64
	ProductID uint64
	Quantity  int
	UnitPrice decimal.Decimal
}

// NewOrder creates a pending order for a customer
func NewOrder(customerID uint64) (*Order, error) {
	if customerID == 0 {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Order must reference a customer")
	}
	return &Order{
		PlacedAt:      time.Now(),
		PaymentStatus: PaymentPending,
		CustomerID:    customerID,
	}, nil
}

// AddItem appends a line to the order
func (o *Order) AddItem(productID uint64, quantity int, unitPrice decimal.Decimal) error {
	if productID == 0 {
		return shared.NewDomainError("INVALID_PRODUCT", "Order item must reference a product")
	}
	if err := validateQuantity(quantity); err != nil {
		return err
	}
	if unitPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	o.Items = append(o.Items, OrderItem{
		OrderID:   o.ID,
		ProductID: productID,
		Quantity:  quantity,
		UnitPrice: unitPrice.Round(2),
	})
	return nil
}

// SetPaymentStatus moves the order to a new payment state
func (o *Order) SetPaymentStatus(status PaymentStatus) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_PAYMENT_STATUS", "Payment status must be one of P, C, F")
	}
	if o.PaymentStatus == PaymentComplete && status != PaymentComplete {
		return shared.NewDomainError("INVALID_STATE", "A completed payment cannot be reverted")
	}
	o.PaymentStatus = status
	return nil
}

// Total returns the sum of quantity * unit price over all lines
func (o *Order) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// Subtotal returns quantity * unit price
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

func validateQuantity(quantity int) error {
	if quantity < 1 || quantity > MaxQuantity {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be between 1 and 32767")
	}
	return nil
}
