package trade

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/trade"
)

// OrderItemRequest is one line of a new order
type OrderItemRequest struct {
	ProductID uint64 `json:"product_id" binding:"required,min=1"`
	Quantity  int    `json:"quantity" binding:"required,min=1,max=32767"`
}

// CreateOrderRequest represents a request to place an order
type CreateOrderRequest struct {
	CustomerID uint64             `json:"customer_id" binding:"required,min=1"`
	Items      []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

// UpdatePaymentStatusRequest changes the payment state of an order
type UpdatePaymentStatusRequest struct {
	PaymentStatus string `json:"payment_status" binding:"required,oneof=P C F"`
}

// OrderListFilter represents filter options for the order list
type OrderListFilter struct {
	CustomerID    uint64 `form:"customer_id"`
	PaymentStatus string `form:"payment_status" binding:"omitempty,oneof=P C F"`
	Page          int    `form:"page" binding:"omitempty,min=1"`
	PageSize      int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// OrderItemResponse represents an order line in API responses
type OrderItemResponse struct {
	ID        uint64          `json:"id"`
	ProductID uint64          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID                 uint64              `json:"id"`
	PlacedAt           time.Time           `json:"placed_at"`
	PaymentStatus      string              `json:"payment_status"`
	PaymentStatusLabel string              `json:"payment_status_label"`
	CustomerID         uint64              `json:"customer_id"`
	Items              []OrderItemResponse `json:"items"`
	Total              decimal.Decimal     `json:"total"`
}

// CreateCartItemRequest adds a product to a cart
type CreateCartItemRequest struct {
	ProductID uint64 `json:"product_id" binding:"required,min=1"`
	Quantity  int    `json:"quantity" binding:"required,min=1,max=32767"`
}

// UpdateCartItemRequest changes the quantity of a cart line
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1,max=32767"`
}

// CartItemResponse represents a cart line in API responses
type CartItemResponse struct {
	ID         uint64          `json:"id"`
	ProductID  uint64          `json:"product_id"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

// CartResponse represents a cart in API responses
type CartResponse struct {
	ID         uint64             `json:"id"`
	CreatedAt  time.Time          `json:"created_at"`
	Items      []CartItemResponse `json:"items"`
	TotalPrice decimal.Decimal    `json:"total_price"`
}

// ToOrderResponse converts a domain Order to OrderResponse
func ToOrderResponse(o *trade.Order) OrderResponse {
	items := make([]OrderItemResponse, len(o.Items))
	for i, item := range o.Items {
		items[i] = OrderItemResponse{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Subtotal:  item.Subtotal(),
		}
	}
	return OrderResponse{
		ID:                 o.ID,
		PlacedAt:           o.PlacedAt,
		PaymentStatus:      string(o.PaymentStatus),
		PaymentStatusLabel: o.PaymentStatus.Label(),
		CustomerID:         o.CustomerID,
		Items:              items,
		Total:              o.Total(),
	}
}

// ToOrderResponses converts a slice of domain Orders
func ToOrderResponses(orders []trade.Order) []OrderResponse {
	out := make([]OrderResponse, len(orders))
	for i := range orders {
		out[i] = ToOrderResponse(&orders[i])
	}
	return out
}

// ToCartItemResponse converts a domain CartItem
func ToCartItemResponse(item *trade.CartItem) CartItemResponse {
	return CartItemResponse{
		ID:         item.ID,
		ProductID:  item.ProductID,
		Quantity:   item.Quantity,
		UnitPrice:  item.UnitPrice,
		TotalPrice: item.TotalPrice(),
	}
}

// ToCartResponse converts a domain Cart to CartResponse
func ToCartResponse(c *trade.Cart) CartResponse {
	items := make([]CartItemResponse, len(c.Items))
	for i := range c.Items {
		items[i] = ToCartItemResponse(&c.Items[i])
	}
	return CartResponse{
		ID:         c.ID,
		CreatedAt:  c.CreatedAt,
		Items:      items,
		TotalPrice: c.TotalPrice(),
	}
}
