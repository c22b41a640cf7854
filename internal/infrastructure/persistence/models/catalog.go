package models

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/catalog"
)

// CollectionModel is the persistence model for the Collection domain entity.
// featured_product_id references products with ON DELETE SET NULL in the SQL
// migrations; it carries no GORM association to keep the schema graph acyclic.
type CollectionModel struct {
	BaseModel
	Title             string  `gorm:"type:varchar(255);not null;index"`
	FeaturedProductID *uint64 `gorm:"index"`
	ProductsCount     int64   `gorm:"->;-:migration"`
}

// TableName returns the table name for GORM
func (CollectionModel) TableName() string {
	return "collections"
}

// ToDomain converts the persistence model to a domain Collection entity.
func (m *CollectionModel) ToDomain() *catalog.Collection {
	return &catalog.Collection{
		BaseEntity:        m.BaseModel.ToDomain(),
		Title:             m.Title,
		FeaturedProductID: m.FeaturedProductID,
		ProductsCount:     m.ProductsCount,
	}
}

// FromDomain populates the persistence model from a domain Collection entity.
func (m *CollectionModel) FromDomain(c *catalog.Collection) {
	m.FromDomainBaseEntity(c.BaseEntity)
	m.Title = c.Title
	m.FeaturedProductID = c.FeaturedProductID
}

// CollectionModelFromDomain creates a new persistence model from a domain Collection entity.
func CollectionModelFromDomain(c *catalog.Collection) *CollectionModel {
	m := &CollectionModel{}
	m.FromDomain(c)
	return m
}

// PromotionModel is the persistence model for the Promotion domain entity.
type PromotionModel struct {
	BaseModel
	Description string  `gorm:"type:varchar(255);not null"`
	Discount    float64 `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (PromotionModel) TableName() string {
	return "promotions"
}

// ToDomain converts the persistence model to a domain Promotion entity.
func (m *PromotionModel) ToDomain() *catalog.Promotion {
	return &catalog.Promotion{
		BaseEntity:  m.BaseModel.ToDomain(),
		Description: m.Description,
		Discount:    m.Discount,
	}
}

// PromotionModelFromDomain creates a new persistence model from a domain Promotion entity.
func PromotionModelFromDomain(p *catalog.Promotion) *PromotionModel {
	m := &PromotionModel{Description: p.Description, Discount: p.Discount}
	m.FromDomainBaseEntity(p.BaseEntity)
	return m
}

// ProductModel is the persistence model for the Product domain entity.
type ProductModel struct {
	BaseModel
	Title        string           `gorm:"type:varchar(255);not null"`
	Slug         string           `gorm:"type:varchar(255);not null;index"`
	Description  string           `gorm:"type:text"`
	UnitPrice    decimal.Decimal  `gorm:"type:decimal(6,2);not null"`
	Inventory    int              `gorm:"not null;default:0"`
	LastUpdate   time.Time        `gorm:"not null"`
	CollectionID uint64           `gorm:"not null;index"`
	Collection   *CollectionModel `gorm:"foreignKey:CollectionID;constraint:OnDelete:RESTRICT"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain Product entity.
// Promotion ids are loaded separately from product_promotions.
func (m *ProductModel) ToDomain() *catalog.Product {
	return &catalog.Product{
		BaseEntity:   m.BaseModel.ToDomain(),
		Title:        m.Title,
		Slug:         m.Slug,
		Description:  m.Description,
		UnitPrice:    m.UnitPrice,
		Inventory:    m.Inventory,
		LastUpdate:   m.LastUpdate,
		CollectionID: m.CollectionID,
	}
}

// FromDomain populates the persistence model from a domain Product entity.
func (m *ProductModel) FromDomain(p *catalog.Product) {
	m.FromDomainBaseEntity(p.BaseEntity)
	m.Title = p.Title
	m.Slug = p.Slug
	m.Description = p.Description
	m.UnitPrice = p.UnitPrice
	m.Inventory = p.Inventory
	m.LastUpdate = p.LastUpdate
	m.CollectionID = p.CollectionID
}

// ProductModelFromDomain creates a new persistence model from a domain Product entity.
func ProductModelFromDomain(p *catalog.Product) *ProductModel {
	m := &ProductModel{}
	m.FromDomain(p)
	return m
}

// ProductPromotionModel is the join row between products and promotions.
type ProductPromotionModel struct {
	ProductID   uint64          `gorm:"primaryKey"`
	Product     *ProductModel   `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	PromotionID uint64          `gorm:"primaryKey;index"`
	Promotion   *PromotionModel `gorm:"foreignKey:PromotionID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (ProductPromotionModel) TableName() string {
	return "product_promotions"
}

// ReviewModel is the persistence model for the Review domain entity.
type ReviewModel struct {
	BaseModel
	ProductID   uint64        `gorm:"not null;index"`
	Product     *ProductModel `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Name        string        `gorm:"type:varchar(255);not null"`
	Description string        `gorm:"type:text;not null"`
	Date        time.Time     `gorm:"type:date;not null"`
}

// TableName returns the table name for GORM
func (ReviewModel) TableName() string {
	return "reviews"
}

// ToDomain converts the persistence model to a domain Review entity.
func (m *ReviewModel) ToDomain() *catalog.Review {
	return &catalog.Review{
		BaseEntity:  m.BaseModel.ToDomain(),
		ProductID:   m.ProductID,
		Name:        m.Name,
		Description: m.Description,
		Date:        m.Date,
	}
}

// ReviewModelFromDomain creates a new persistence model from a domain Review entity.
func ReviewModelFromDomain(r *catalog.Review) *ReviewModel {
	m := &ReviewModel{
		ProductID:   r.ProductID,
		Name:        r.Name,
		Description: r.Description,
		Date:        r.Date,
	}
	m.FromDomainBaseEntity(r.BaseEntity)
	return m
}
