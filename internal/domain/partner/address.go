package partner

import (
	"strings"

	"github.com/storefront/backend/internal/domain/shared"
)

// Address is a postal address of a customer. Removed together with the customer.
type Address struct {
	shared.BaseEntity
	CustomerID uint64
	Street     string
	City       string
}

// NewAddress creates an address for a customer
func NewAddress(customerID uint64, street, city string) (*Address, error) {
	if customerID == 0 {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Address must belong to a customer")
	}
	street = strings.TrimSpace(street)
	city = strings.TrimSpace(city)
	if street == "" || len(street) > 255 {
		return nil, shared.NewDomainError("INVALID_STREET", "Street is required and cannot exceed 255 characters")
	}
	if city == "" || len(city) > 255 {
		return nil, shared.NewDomainError("INVALID_CITY", "City is required and cannot exceed 255 characters")
	}
	return &Address{CustomerID: customerID, Street: street, City: city}, nil
}
