// Package tagging holds the generic tag association model: tags, the entity
// kinds they can be attached to, and the content types that stand in for a
// kind inside the tagged_items table.
package tagging

import (
	"strings"

	"github.com/storefront/backend/internal/domain/shared"
)

// AppLabel is the application namespace every store content type is registered under
const AppLabel = "store"

// EntityKind is the closed set of entity types a tag may be attached to
type EntityKind string

const (
	KindProduct    EntityKind = "product"
	KindCollection EntityKind = "collection"
	KindPromotion  EntityKind = "promotion"
	KindCustomer   EntityKind = "customer"
	KindOrder      EntityKind = "order"
	KindCart       EntityKind = "cart"
	KindReview     EntityKind = "review"
)

// ErrUnknownKind is returned when a kind name does not map to a taggable entity
var ErrUnknownKind = shared.NewDomainError("UNKNOWN_KIND", "Entity kind is not taggable")

// AllKinds returns every taggable kind in declaration order
func AllKinds() []EntityKind {
	return []EntityKind{
		KindProduct,
		KindCollection,
		KindPromotion,
		KindCustomer,
		KindOrder,
		KindCart,
		KindReview,
	}
}

// ParseEntityKind maps a kind name to its EntityKind. Matching is case-insensitive.
func ParseEntityKind(name string) (EntityKind, error) {
	k := EntityKind(strings.ToLower(strings.TrimSpace(name)))
	if !k.IsValid() {
		return "", ErrUnknownKind
	}
	return k, nil
}

// IsValid reports whether k is one of the taggable kinds
func (k EntityKind) IsValid() bool {
	switch k {
	case KindProduct, KindCollection, KindPromotion, KindCustomer, KindOrder, KindCart, KindReview:
		return true
	}
	return false
}

// String returns the kind name
func (k EntityKind) String() string {
	return string(k)
}

// AppLabel returns the application namespace of the kind
func (k EntityKind) AppLabel() string {
	return AppLabel
}

// Model returns the model name used to register the kind
func (k EntityKind) Model() string {
	return string(k)
}
