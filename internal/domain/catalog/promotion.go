package catalog

import (
	"strings"
	"unicode/utf8"

	"github.com/storefront/backend/internal/domain/shared"
)

// Promotion is a discount campaign products can take part in
type Promotion struct {
	shared.BaseEntity
	Description string
	Discount    float64
}

// NewPromotion creates a new promotion
func NewPromotion(description string, discount float64) (*Promotion, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Promotion description cannot be empty")
	}
	if utf8.RuneCountInString(description) > 255 {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Promotion description cannot exceed 255 characters")
	}
	if discount < 0 {
		return nil, shared.NewDomainError("INVALID_DISCOUNT", "Discount cannot be negative")
	}
	return &Promotion{Description: description, Discount: discount}, nil
}
