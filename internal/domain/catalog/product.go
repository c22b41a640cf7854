package catalog

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/shared"
)

// LowInventoryThreshold is the stock level below which a product is reported as low
const LowInventoryThreshold = 10

var (
	// TaxRate is applied on top of the unit price to compute the price with tax
	TaxRate = decimal.NewFromFloat(1.1)
	// MinUnitPrice is the lowest accepted unit price
	MinUnitPrice = decimal.NewFromInt(1)
	// MaxUnitPrice is the largest value that fits a decimal(6,2) column
	MaxUnitPrice = decimal.RequireFromString("9999.99")
)

// ErrProductHasOrderItems is returned when deleting a product that orders still reference
var ErrProductHasOrderItems = shared.NewDomainError("DELETE_PROTECTED", "The product is associated with order items")

// InventoryStatus is the coarse stock level shown to administrators
type InventoryStatus string

const (
	InventoryLow InventoryStatus = "Low"
	InventoryOK  InventoryStatus = "OK"
)

// Product is a sellable item in the catalog
type Product struct {
	shared.BaseEntity
	Title        string
	Slug         string
	Description  string
	UnitPrice    decimal.Decimal
	Inventory    int
	LastUpdate   time.Time
	CollectionID uint64
	PromotionIDs []uint64
}

// NewProduct creates a new product in a collection
func NewProduct(title, description string, unitPrice decimal.Decimal, inventory int, collectionID uint64) (*Product, error) {
	p := &Product{}
	if err := p.Update(title, description, unitPrice, inventory, collectionID); err != nil {
		return nil, err
	}
	p.Slug = Slugify(p.Title)
	return p, nil
}

// Update replaces the editable attributes of the product
func (p *Product) Update(title, description string, unitPrice decimal.Decimal, inventory int, collectionID uint64) error {
	title, err := validateTitle("Product", title)
	if err != nil {
		return err
	}
	if err := validateUnitPrice(unitPrice); err != nil {
		return err
	}
	if inventory < 0 {
		return shared.NewDomainError("INVALID_INVENTORY", "Inventory cannot be negative")
	}
	if collectionID == 0 {
		return shared.NewDomainError("INVALID_COLLECTION", "Product must belong to a collection")
	}

	p.Title = title
	p.Description = strings.TrimSpace(description)
	p.UnitPrice = unitPrice.Round(2)
	p.Inventory = inventory
	p.CollectionID = collectionID
	p.LastUpdate = time.Now()
	return nil
}

// SetSlug sets an explicit slug, falling back to the slugified title when empty
func (p *Product) SetSlug(slug string) error {
	if strings.TrimSpace(slug) == "" {
		p.Slug = Slugify(p.Title)
		return nil
	}
	s := Slugify(slug)
	if s == "-" {
		return shared.NewDomainError("INVALID_SLUG", "Slug must contain letters or digits")
	}
	p.Slug = s
	return nil
}

// SetPromotions replaces the promotions the product takes part in
func (p *Product) SetPromotions(ids []uint64) {
	seen := make(map[uint64]struct{}, len(ids))
	out := make([]uint64, 0, len(ids))
	for _, id := range ids {
		if id == 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	p.PromotionIDs = out
}

// PriceWithTax returns the unit price with tax applied, rounded to cents
func (p *Product) PriceWithTax() decimal.Decimal {
	return p.UnitPrice.Mul(TaxRate).Round(2)
}

// InventoryStatus reports whether stock is low
func (p *Product) InventoryStatus() InventoryStatus {
	if p.Inventory < LowInventoryThreshold {
		return InventoryLow
	}
	return InventoryOK
}

// ClearInventory sets the stock to zero
func (p *Product) ClearInventory() {
	p.Inventory = 0
	p.LastUpdate = time.Now()
}

func validateUnitPrice(price decimal.Decimal) error {
	if price.LessThan(MinUnitPrice) {
		return shared.NewDomainError("INVALID_PRICE", "Unit price must be at least 1")
	}
	if price.GreaterThan(MaxUnitPrice) {
		return shared.NewDomainError("INVALID_PRICE", "Unit price cannot exceed 9999.99")
	}
	return nil
}
