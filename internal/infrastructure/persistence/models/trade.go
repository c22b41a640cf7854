package models

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/trade"
)

// OrderModel is the persistence model for the Order domain entity.
type OrderModel struct {
	BaseModel
	PlacedAt      time.Time           `gorm:"not null;index"`
	PaymentStatus trade.PaymentStatus `gorm:"type:varchar(1);not null;default:'P';index"`
	CustomerID    uint64              `gorm:"not null;index"`
	Customer      *CustomerModel      `gorm:"foreignKey:CustomerID;constraint:OnDelete:RESTRICT"`
	Items         []OrderItemModel    `gorm:"foreignKey:OrderID;constraint:OnDelete:RESTRICT"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// ToDomain converts the persistence model to a domain Order, including loaded items.
func (m *OrderModel) ToDomain() *trade.Order {
	o := &trade.Order{
		BaseEntity:    m.BaseModel.ToDomain(),
		PlacedAt:      m.PlacedAt,
		PaymentStatus: m.PaymentStatus,
		CustomerID:    m.CustomerID,
	}
	if len(m.Items) > 0 {
		o.Items = make([]trade.OrderItem, len(m.Items))
		for i := range m.Items {
			o.Items[i] = *m.Items[i].ToDomain()
		}
	}
	return o
}

// OrderModelFromDomain creates a new persistence model from a domain Order, including items.
func OrderModelFromDomain(o *trade.Order) *OrderModel {
	m := &OrderModel{
		PlacedAt:      o.PlacedAt,
		PaymentStatus: o.PaymentStatus,
		CustomerID:    o.CustomerID,
	}
	m.FromDomainBaseEntity(o.BaseEntity)
	for i := range o.Items {
		m.Items = append(m.Items, *OrderItemModelFromDomain(&o.Items[i]))
	}
	return m
}

// OrderItemModel is the persistence model for an order line.
type OrderItemModel struct {
	BaseModel
	OrderID   uint64          `gorm:"not null;index"`
	ProductID uint64          `gorm:"not null;index"`
	Product   *ProductModel   `gorm:"foreignKey:ProductID;constraint:OnDelete:RESTRICT"`
	Quantity  int             `gorm:"type:smallint;not null"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(6,2);not null"`
}

// TableName returns the table name for GORM
func (OrderItemModel) TableName() string {
	return "order_items"
}

// ToDomain converts the persistence model to a domain OrderItem.
func (m *OrderItemModel) ToDomain() *trade.OrderItem {
	return &trade.OrderItem{
		BaseEntity: m.BaseModel.ToDomain(),
		OrderID:    m.OrderID,
		ProductID:  m.ProductID,
		Quantity:   m.Quantity,
		UnitPrice:  m.UnitPrice,
	}
}

// OrderItemModelFromDomain creates a new persistence model from a domain OrderItem.
func OrderItemModelFromDomain(i *trade.OrderItem) *OrderItemModel {
	m := &OrderItemModel{
		OrderID:   i.OrderID,
		ProductID: i.ProductID,
		Quantity:  i.Quantity,
		UnitPrice: i.UnitPrice,
	}
	m.FromDomainBaseEntity(i.BaseEntity)
	return m
}

// CartModel is the persistence model for the Cart domain entity.
type CartModel struct {
	BaseModel
	CreatedAt time.Time       `gorm:"not null"`
	Items     []CartItemModel `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (CartModel) TableName() string {
	return "carts"
}

// ToDomain converts the persistence model to a domain Cart, including loaded items.
func (m *CartModel) ToDomain() *trade.Cart {
	c := &trade.Cart{
		BaseEntity: m.BaseModel.ToDomain(),
		CreatedAt:  m.CreatedAt,
	}
	for i := range m.Items {
		c.Items = append(c.Items, *m.Items[i].ToDomain())
	}
	return c
}

// CartItemModel is the persistence model for a cart line. (cart_id, product_id) is unique.
type CartItemModel struct {
	BaseModel
	CartID    uint64        `gorm:"not null;uniqueIndex:idx_cart_item_product,priority:1"`
	ProductID uint64        `gorm:"not null;uniqueIndex:idx_cart_item_product,priority:2"`
	Product   *ProductModel `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Quantity  int           `gorm:"type:smallint;not null"`
}

// TableName returns the table name for GORM
func (CartItemModel) TableName() string {
	return "cart_items"
}

// ToDomain converts the persistence model to a domain CartItem.
// UnitPrice is taken from the product when it was preloaded.
func (m *CartItemModel) ToDomain() *trade.CartItem {
	item := &trade.CartItem{
		BaseEntity: m.BaseModel.ToDomain(),
		CartID:     m.CartID,
		ProductID:  m.ProductID,
		Quantity:   m.Quantity,
	}
	if m.Product != nil {
		item.UnitPrice = m.Product.UnitPrice
	}
	return item
}

// CartItemModelFromDomain creates a new persistence model from a domain CartItem.
func CartItemModelFromDomain(i *trade.CartItem) *CartItemModel {
	m := &CartItemModel{
		CartID:    i.CartID,
		ProductID: i.ProductID,
		Quantity:  i.Quantity,
	}
	m.FromDomainBaseEntity(i.BaseEntity)
	return m
}
