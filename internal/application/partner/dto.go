package partner

import (
	"time"

	"github.com/storefront/backend/internal/domain/partner"
	"github.com/storefront/backend/internal/domain/shared"
)

// Date is a calendar day rendered as YYYY-MM-DD
type Date struct {
	time.Time
}

const dateLayout = "2006-01-02"

// UnmarshalJSON parses "YYYY-MM-DD"
func (d *Date) UnmarshalJSON(b []byte) error {
	s := string(b)
	if s == "null" || s == `""` {
		d.Time = time.Time{}
		return nil
	}
	t, err := time.Parse(`"`+dateLayout+`"`, s)
	if err != nil {
		return shared.NewDomainError("INVALID_BIRTHDATE", "Birthdate must use the YYYY-MM-DD format")
	}
	d.Time = t
	return nil
}

// MarshalJSON renders "YYYY-MM-DD"
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

func (d *Date) ptr() *time.Time {
	if d == nil || d.IsZero() {
		return nil
	}
	t := d.Time
	return &t
}

// CreateCustomerRequest represents a request to create a customer
type CreateCustomerRequest struct {
	FirstName string `json:"first_name" binding:"required,max=255"`
	LastName  string `json:"last_name" binding:"required,max=255"`
	Email     string `json:"email" binding:"required,email,max=254"`
	Phone     string `json:"phone" binding:"max=20"`
	Birthdate *Date  `json:"birthdate"`
}

// UpdateCustomerRequest represents a request to update a customer's details
type UpdateCustomerRequest = CreateCustomerRequest

// UpdateMembershipRequest changes the loyalty tier
type UpdateMembershipRequest struct {
	Membership string `json:"membership" binding:"required,oneof=B S G"`
}

// CustomerListFilter represents filter options for the customer list
type CustomerListFilter struct {
	Search     string `form:"search"`
	Membership string `form:"membership" binding:"omitempty,oneof=B S G"`
	Page       int    `form:"page" binding:"omitempty,min=1"`
	PageSize   int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// CustomerResponse represents a customer in API responses
type CustomerResponse struct {
	ID              uint64 `json:"id"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	FullName        string `json:"full_name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Birthdate       *Date  `json:"birthdate"`
	Membership      string `json:"membership"`
	MembershipLabel string `json:"membership_label"`
	OrdersCount     int64  `json:"orders_count"`
}

// AddAddressRequest represents a request to add an address to a customer
type AddAddressRequest struct {
	Street string `json:"street" binding:"required,max=255"`
	City   string `json:"city" binding:"required,max=255"`
}

// AddressResponse represents an address in API responses
type AddressResponse struct {
	ID         uint64 `json:"id"`
	CustomerID uint64 `json:"customer_id"`
	Street     string `json:"street"`
	City       string `json:"city"`
}

// ToCustomerResponse converts a domain Customer to CustomerResponse
func ToCustomerResponse(c *partner.Customer) CustomerResponse {
	resp := CustomerResponse{
		ID:              c.ID,
		FirstName:       c.FirstName,
		LastName:        c.LastName,
		FullName:        c.FullName(),
		Email:           c.Email,
		Phone:           c.Phone,
		Membership:      string(c.Membership),
		MembershipLabel: c.Membership.Label(),
		OrdersCount:     c.OrdersCount,
	}
	if c.Birthdate != nil {
		resp.Birthdate = &Date{Time: *c.Birthdate}
	}
	return resp
}

// ToCustomerResponses converts a slice of domain Customers
func ToCustomerResponses(customers []partner.Customer) []CustomerResponse {
	out := make([]CustomerResponse, len(customers))
	for i := range customers {
		out[i] = ToCustomerResponse(&customers[i])
	}
	return out
}

// ToAddressResponse converts a domain Address to AddressResponse
func ToAddressResponse(a *partner.Address) AddressResponse {
	return AddressResponse{ID: a.ID, CustomerID: a.CustomerID, Street: a.Street, City: a.City}
}

// ToAddressResponses converts a slice of domain Addresses
func ToAddressResponses(addresses []partner.Address) []AddressResponse {
	out := make([]AddressResponse, len(addresses))
	for i := range addresses {
		out[i] = ToAddressResponse(&addresses[i])
	}
	return out
}
