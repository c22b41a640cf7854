package catalog

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
)

// =============================================================================
// Collection
// =============================================================================

// CreateCollectionRequest represents a request to create a collection
type CreateCollectionRequest struct {
	Title             string  `json:"title" binding:"required,max=255"`
	FeaturedProductID *uint64 `json:"featured_product_id"`
}

// UpdateCollectionRequest represents a request to update a collection
type UpdateCollectionRequest struct {
	Title             string  `json:"title" binding:"required,max=255"`
	FeaturedProductID *uint64 `json:"featured_product_id"`
}

// CollectionResponse represents a collection in API responses
type CollectionResponse struct {
	ID                uint64  `json:"id"`
	Title             string  `json:"title"`
	FeaturedProductID *uint64 `json:"featured_product_id"`
	ProductsCount     int64   `json:"products_count"`
}

// ToCollectionResponse converts a domain Collection to CollectionResponse
func ToCollectionResponse(c *catalog.Collection) CollectionResponse {
	return CollectionResponse{
		ID:                c.ID,
		Title:             c.Title,
		FeaturedProductID: c.FeaturedProductID,
		ProductsCount:     c.ProductsCount,
	}
}

// ToCollectionResponses converts a slice of domain Collections
func ToCollectionResponses(collections []catalog.Collection) []CollectionResponse {
	out := make([]CollectionResponse, len(collections))
	for i := range collections {
		out[i] = ToCollectionResponse(&collections[i])
	}
	return out
}

// =============================================================================
// Promotion
// =============================================================================

// CreatePromotionRequest represents a request to create a promotion
type CreatePromotionRequest struct {
	Description string  `json:"description" binding:"required,max=255"`
	Discount    float64 `json:"discount" binding:"min=0"`
}

// PromotionResponse represents a promotion in API responses
type PromotionResponse struct {
	ID          uint64  `json:"id"`
	Description string  `json:"description"`
	Discount    float64 `json:"discount"`
}

// ToPromotionResponse converts a domain Promotion to PromotionResponse
func ToPromotionResponse(p *catalog.Promotion) PromotionResponse {
	return PromotionResponse{ID: p.ID, Description: p.Description, Discount: p.Discount}
}

// ToPromotionResponses converts a slice of domain Promotions
func ToPromotionResponses(promotions []catalog.Promotion) []PromotionResponse {
	out := make([]PromotionResponse, len(promotions))
	for i := range promotions {
		out[i] = ToPromotionResponse(&promotions[i])
	}
	return out
}

// =============================================================================
// Product
// =============================================================================

// CreateProductRequest represents a request to create a product
type CreateProductRequest struct {
	Title        string          `json:"title" binding:"required,max=255"`
	Slug         string          `json:"slug" binding:"max=255"`
	Description  string          `json:"description"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Inventory    int             `json:"inventory" binding:"min=0"`
	CollectionID uint64          `json:"collection_id" binding:"required,min=1"`
	PromotionIDs []uint64        `json:"promotion_ids"`
}

// UpdateProductRequest represents a request to update a product
type UpdateProductRequest = CreateProductRequest

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID              uint64          `json:"id"`
	Title           string          `json:"title"`
	Slug            string          `json:"slug"`
	Description     string          `json:"description"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	PriceWithTax    decimal.Decimal `json:"price_with_tax"`
	Inventory       int             `json:"inventory"`
	InventoryStatus string          `json:"inventory_status"`
	LastUpdate      time.Time       `json:"last_update"`
	CollectionID    uint64          `json:"collection_id"`
	PromotionIDs    []uint64        `json:"promotion_ids"`
}

// ProductListFilter represents filter options for the product list
type ProductListFilter struct {
	UnitPriceLT     *decimal.Decimal `form:"unit_price__lt"`
	UnitPriceGT     *decimal.Decimal `form:"unit_price__gt"`
	InventoryLT     *int             `form:"inventory__lt"`
	InventoryGT     *int             `form:"inventory__gt"`
	CollectionID    *uint64          `form:"collection_id"`
	InventoryStatus string           `form:"inventory_status" binding:"omitempty,oneof=low ok"`
	Search          string           `form:"search"`
	Ordering        string           `form:"ordering" binding:"omitempty,oneof=unit_price -unit_price last_update -last_update title -title"`
	Page            int              `form:"page" binding:"omitempty,min=1"`
	PageSize        int              `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// ClearInventoryRequest lists the products whose stock is reset
type ClearInventoryRequest struct {
	ProductIDs []uint64 `json:"product_ids" binding:"required,min=1,dive,min=1"`
}

// ClearInventoryResponse reports how many products were updated
type ClearInventoryResponse struct {
	Updated int64 `json:"updated"`
}

// ToProductResponse converts a domain Product to ProductResponse
func ToProductResponse(p *catalog.Product) ProductResponse {
	promotions := p.PromotionIDs
	if promotions == nil {
		promotions = []uint64{}
	}
	return ProductResponse{
		ID:              p.ID,
		Title:           p.Title,
		Slug:            p.Slug,
		Description:     p.Description,
		UnitPrice:       p.UnitPrice,
		PriceWithTax:    p.PriceWithTax(),
		Inventory:       p.Inventory,
		InventoryStatus: string(p.InventoryStatus()),
		LastUpdate:      p.LastUpdate,
		CollectionID:    p.CollectionID,
		PromotionIDs:    promotions,
	}
}

// ToProductResponses converts a slice of domain Products
func ToProductResponses(products []catalog.Product) []ProductResponse {
	out := make([]ProductResponse, len(products))
	for i := range products {
		out[i] = ToProductResponse(&products[i])
	}
	return out
}

// toQuery maps the API filter onto a repository query. Ordering uses a
// leading "-" for descending order.
func (f ProductListFilter) toQuery() catalog.ProductQuery {
	q := catalog.ProductQuery{
		Filter:       pageFilter(f.Search, f.Page, f.PageSize),
		UnitPriceLT:  f.UnitPriceLT,
		UnitPriceGT:  f.UnitPriceGT,
		InventoryLT:  f.InventoryLT,
		InventoryGT:  f.InventoryGT,
		CollectionID: f.CollectionID,
	}
	switch strings.ToLower(f.InventoryStatus) {
	case "low":
		q.InventoryStatus = catalog.InventoryLow
	case "ok":
		q.InventoryStatus = catalog.InventoryOK
	}
	if f.Ordering != "" {
		q.OrderBy = strings.TrimPrefix(f.Ordering, "-")
		q.OrderDir = "asc"
		if strings.HasPrefix(f.Ordering, "-") {
			q.OrderDir = "desc"
		}
	}
	return q
}

// =============================================================================
// Review
// =============================================================================

// CreateReviewRequest represents a request to review a product
type CreateReviewRequest struct {
	Name        string `json:"name" binding:"required,max=255"`
	Description string `json:"description" binding:"required"`
}

// UpdateReviewRequest represents a request to edit a review
type UpdateReviewRequest = CreateReviewRequest

// ReviewResponse represents a review in API responses
type ReviewResponse struct {
	ID          uint64    `json:"id"`
	ProductID   uint64    `json:"product_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
}

// ToReviewResponse converts a domain Review to ReviewResponse
func ToReviewResponse(r *catalog.Review) ReviewResponse {
	return ReviewResponse{
		ID:          r.ID,
		ProductID:   r.ProductID,
		Name:        r.Name,
		Description: r.Description,
		Date:        r.Date,
	}
}

// ToReviewResponses converts a slice of domain Reviews
func ToReviewResponses(reviews []catalog.Review) []ReviewResponse {
	out := make([]ReviewResponse, len(reviews))
	for i := range reviews {
		out[i] = ToReviewResponse(&reviews[i])
	}
	return out
}

// ListFilter is the plain search and paging filter shared by the simple listings
type ListFilter struct {
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

func (f ListFilter) toFilter() shared.Filter {
	return pageFilter(f.Search, f.Page, f.PageSize)
}

func pageFilter(search string, page, pageSize int) shared.Filter {
	filter := shared.DefaultFilter()
	filter.Search = search
	if page > 0 {
		filter.Page = page
	}
	if pageSize > 0 {
		filter.PageSize = pageSize
	}
	return filter
}
