package catalog

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/storefront/backend/internal/domain/shared"
)

// Review is a customer's written opinion of a product
type Review struct {
	shared.BaseEntity
	ProductID   uint64
	Name        string
	Description string
	Date        time.Time
}

// NewReview creates a review for a product
func NewReview(productID uint64, name, description string) (*Review, error) {
	if productID == 0 {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Review must reference a product")
	}
	r := &Review{ProductID: productID, Date: time.Now()}
	if err := r.Update(name, description); err != nil {
		return nil, err
	}
	return r, nil
}

// Update changes the reviewer name and text
func (r *Review) Update(name, description string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Reviewer name cannot be empty")
	}
	if utf8.RuneCountInString(name) > 255 {
		return shared.NewDomainError("INVALID_NAME", "Reviewer name cannot exceed 255 characters")
	}
	description = strings.TrimSpace(description)
	if description == "" {
		return shared.NewDomainError("INVALID_DESCRIPTION", "Review text cannot be empty")
	}
	r.Name = name
	r.Description = description
	return nil
}
