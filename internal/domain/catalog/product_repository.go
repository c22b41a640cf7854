package catalog

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/shared"
)

// ProductQuery narrows a product listing
type ProductQuery struct {
	shared.Filter
	UnitPriceLT     *decimal.Decimal
	UnitPriceGT     *decimal.Decimal
	InventoryLT     *int
	InventoryGT     *int
	CollectionID    *uint64
	InventoryStatus InventoryStatus
}

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// FindByID finds a product by its ID, with promotion ids loaded
	FindByID(ctx context.Context, id uint64) (*Product, error)

	// FindByIDs finds several products at once
	FindByIDs(ctx context.Context, ids []uint64) ([]Product, error)

	// FindAll finds all products matching the query
	FindAll(ctx context.Context, query ProductQuery) ([]Product, error)

	// Count counts products matching the query
	Count(ctx context.Context, query ProductQuery) (int64, error)

	// Save creates or updates a product and its promotion links
	Save(ctx context.Context, product *Product) error

	// Delete deletes a product
	Delete(ctx context.Context, id uint64) error

	// HasOrderItems reports whether any order item references the product
	HasOrderItems(ctx context.Context, id uint64) (bool, error)

	// ClearInventory sets inventory to zero for the given products and returns the rows updated
	ClearInventory(ctx context.Context, ids []uint64) (int64, error)
}

// CollectionRepository defines the interface for collection persistence
type CollectionRepository interface {
	// FindByID finds a collection, annotated with its product count
	FindByID(ctx context.Context, id uint64) (*Collection, error)

	// FindAll lists collections ordered by title, annotated with product counts
	FindAll(ctx context.Context, filter shared.Filter) ([]Collection, error)

	// Count counts collections matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// Save creates or updates a collection
	Save(ctx context.Context, collection *Collection) error

	// Delete deletes a collection
	Delete(ctx context.Context, id uint64) error

	// HasProducts reports whether any product belongs to the collection
	HasProducts(ctx context.Context, id uint64) (bool, error)
}

// PromotionRepository defines the interface for promotion persistence
type PromotionRepository interface {
	FindByID(ctx context.Context, id uint64) (*Promotion, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Promotion, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	// ExistAll reports whether every id refers to a promotion
	ExistAll(ctx context.Context, ids []uint64) (bool, error)
	Save(ctx context.Context, promotion *Promotion) error
	Delete(ctx context.Context, id uint64) error
}

// ReviewRepository defines the interface for review persistence
type ReviewRepository interface {
	// FindByID finds a review of a product
	FindByID(ctx context.Context, productID, id uint64) (*Review, error)
	// FindByProduct lists the reviews of a product, newest first
	FindByProduct(ctx context.Context, productID uint64, filter shared.Filter) ([]Review, error)
	CountByProduct(ctx context.Context, productID uint64) (int64, error)
	Save(ctx context.Context, review *Review) error
	Delete(ctx context.Context, productID, id uint64) error
}
