package partner

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/storefront/backend/internal/domain/shared"
)

// Membership is the loyalty tier of a customer
type Membership string

const (
	MembershipBronze Membership = "B"
	MembershipSilver Membership = "S"
	MembershipGold   Membership = "G"
)

// Label returns the display name of the tier
func (m Membership) Label() string {
	switch m {
	case MembershipBronze:
		return "Bronze"
	case MembershipSilver:
		return "Silver"
	case MembershipGold:
		return "Gold"
	}
	return ""
}

// IsValid reports whether m is a known tier
func (m Membership) IsValid() bool {
	return m.Label() != ""
}

// ErrCustomerHasOrders is returned when deleting a customer that orders still reference
var ErrCustomerHasOrders = shared.NewDomainError("DELETE_PROTECTED", "The customer has placed orders")

// ErrEmailTaken is returned when another customer already uses the email
var ErrEmailTaken = shared.NewDomainError("ALREADY_EXISTS", "A customer with this email already exists")

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Customer is a person who can place orders
type Customer struct {
	shared.BaseEntity
	FirstName  string
	LastName   string
	Email      string
	Phone      string
	Birthdate  *time.Time
	Membership Membership

	// OrdersCount is filled by queries that annotate the customer
	OrdersCount int64
}

// NewCustomer creates a bronze-tier customer
func NewCustomer(firstName, lastName, email, phone string, birthdate *time.Time) (*Customer, error) {
	c := &Customer{Membership: MembershipBronze}
	if err := c.Update(firstName, lastName, email, phone, birthdate); err != nil {
		return nil, err
	}
	return c, nil
}

// Update replaces the customer's contact details
func (c *Customer) Update(firstName, lastName, email, phone string, birthdate *time.Time) error {
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	if err := validateName("First name", firstName); err != nil {
		return err
	}
	if err := validateName("Last name", lastName); err != nil {
		return err
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if err := validateEmail(email); err != nil {
		return err
	}
	phone = strings.TrimSpace(phone)
	if len(phone) > 20 {
		return shared.NewDomainError("INVALID_PHONE", "Phone cannot exceed 20 characters")
	}
	if birthdate != nil && birthdate.After(time.Now()) {
		return shared.NewDomainError("INVALID_BIRTHDATE", "Birthdate cannot be in the future")
	}

	c.FirstName = firstName
	c.LastName = lastName
	c.Email = email
	c.Phone = phone
	c.Birthdate = birthdate
	return nil
}

// SetMembership changes the loyalty tier
func (c *Customer) SetMembership(m Membership) error {
	if !m.IsValid() {
		return shared.NewDomainError("INVALID_MEMBERSHIP", "Membership must be one of B, S, G")
	}
	c.Membership = m
	return nil
}

// FullName returns "first last"
func (c *Customer) FullName() string {
	return c.FirstName + " " + c.LastName
}

func validateName(field, name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", field+" cannot be empty")
	}
	if utf8.RuneCountInString(name) > 255 {
		return shared.NewDomainError("INVALID_NAME", field+" cannot exceed 255 characters")
	}
	return nil
}

func validateEmail(email string) error {
	if email == "" {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	if len(email) > 254 {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 254 characters")
	}
	if !emailRegex.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}
	return nil
}
