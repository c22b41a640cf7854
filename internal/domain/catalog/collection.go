package catalog

import (
	"strings"
	"unicode/utf8"

	"github.com/storefront/backend/internal/domain/shared"
)

// ErrCollectionHasProducts is returned when deleting a collection that products still belong to
var ErrCollectionHasProducts = shared.NewDomainError("DELETE_PROTECTED", "The collection is associated with products")

// Collection groups products for browsing
type Collection struct {
	shared.BaseEntity
	Title             string
	FeaturedProductID *uint64

	// ProductsCount is filled by queries that annotate the collection
	ProductsCount int64
}

// NewCollection creates a new collection
func NewCollection(title string) (*Collection, error) {
	title, err := validateTitle("Collection", title)
	if err != nil {
		return nil, err
	}
	return &Collection{Title: title}, nil
}

// Rename changes the collection title
func (c *Collection) Rename(title string) error {
	title, err := validateTitle("Collection", title)
	if err != nil {
		return err
	}
	c.Title = title
	return nil
}

// Feature sets or clears the featured product
func (c *Collection) Feature(productID *uint64) {
	if productID != nil && *productID == 0 {
		productID = nil
	}
	c.FeaturedProductID = productID
}

func validateTitle(entity, title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", shared.NewDomainError("INVALID_TITLE", entity+" title cannot be empty")
	}
	if utf8.RuneCountInString(title) > 255 {
		return "", shared.NewDomainError("INVALID_TITLE", entity+" title cannot exceed 255 characters")
	}
	return title, nil
}
