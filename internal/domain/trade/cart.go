package trade

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/shared"
)

// Cart is an anonymous shopping basket
type Cart struct {
	shared.BaseEntity
	CreatedAt time.Time
	Items     []CartItem
}

// CartItem is a product line in a cart. Removed with its cart or its product.
type CartItem struct {
	shared.BaseEntity
	CartID    uint64
	ProductID uint64
	Quantity  int

	// UnitPrice is the current product price, filled when the cart is read
	UnitPrice decimal.Decimal
}

// NewCart creates an empty cart
func NewCart() *Cart {
	return &Cart{CreatedAt: time.Now()}
}

// FindItem returns the line for a product, if any
func (c *Cart) FindItem(productID uint64) *CartItem {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return &c.Items[i]
		}
	}
	return nil
}

// AddItem adds quantity of a product. An existing line for the product is increased.
// The returned item is the line that was created or changed.
func (c *Cart) AddItem(productID uint64, quantity int) (*CartItem, error) {
	if productID == 0 {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Cart item must reference a product")
	}
	if err := validateQuantity(quantity); err != nil {
		return nil, err
	}
	if item := c.FindItem(productID); item != nil {
		if err := validateQuantity(item.Quantity + quantity); err != nil {
			return nil, err
		}
		item.Quantity += quantity
		return item, nil
	}
	c.Items = append(c.Items, CartItem{CartID: c.ID, ProductID: productID, Quantity: quantity})
	return &c.Items[len(c.Items)-1], nil
}

// SetQuantity changes the quantity of a line
func (i *CartItem) SetQuantity(quantity int) error {
	if err := validateQuantity(quantity); err != nil {
		return err
	}
	i.Quantity = quantity
	return nil
}

// TotalPrice returns the sum of quantity * unit price over all lines
func (c *Cart) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.TotalPrice())
	}
	return total
}

// TotalPrice returns quantity * unit price
func (i CartItem) TotalPrice() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
