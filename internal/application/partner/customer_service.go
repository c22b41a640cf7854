package partner

import (
	"context"

	"github.com/storefront/backend/internal/domain/partner"
	"github.com/storefront/backend/internal/domain/shared"
)

// CustomerService handles customer-related business operations
type CustomerService struct {
	customerRepo partner.CustomerRepository
	addressRepo  partner.AddressRepository
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(customerRepo partner.CustomerRepository, addressRepo partner.AddressRepository) *CustomerService {
	return &CustomerService{
		customerRepo: customerRepo,
		addressRepo:  addressRepo,
	}
}

// Create creates a new bronze-tier customer
func (s *CustomerService) Create(ctx context.Context, req CreateCustomerRequest) (*CustomerResponse, error) {
	customer, err := partner.NewCustomer(req.FirstName, req.LastName, req.Email, req.Phone, req.Birthdate.ptr())
	if err != nil {
		return nil, err
	}

	// Email is unique across customers
	if err := s.checkEmail(ctx, customer.Email, 0); err != nil {
		return nil, err
	}

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}

	response := ToCustomerResponse(customer)
	return &response, nil
}

// GetByID retrieves a customer with its order count
func (s *CustomerService) GetByID(ctx context.Context, id uint64) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToCustomerResponse(customer)
	return &response, nil
}

// List retrieves customers ordered by name
func (s *CustomerService) List(ctx context.Context, filter CustomerListFilter) ([]CustomerResponse, int64, error) {
	domainFilter := shared.DefaultFilter()
	domainFilter.Search = filter.Search
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.Membership != "" {
		domainFilter = domainFilter.With("membership", filter.Membership)
	}

	customers, err := s.customerRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.customerRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToCustomerResponses(customers), total, nil
}

// Update replaces a customer's contact details
func (s *CustomerService) Update(ctx context.Context, id uint64, req UpdateCustomerRequest) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := customer.Update(req.FirstName, req.LastName, req.Email, req.Phone, req.Birthdate.ptr()); err != nil {
		return nil, err
	}
	if err := s.checkEmail(ctx, customer.Email, customer.ID); err != nil {
		return nil, err
	}

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}

	response := ToCustomerResponse(customer)
	return &response, nil
}

// UpdateMembership changes a customer's loyalty tier
func (s *CustomerService) UpdateMembership(ctx context.Context, id uint64, req UpdateMembershipRequest) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := customer.SetMembership(partner.Membership(req.Membership)); err != nil {
		return nil, err
	}
	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}

	response := ToCustomerResponse(customer)
	return &response, nil
}

// Delete deletes a customer who has placed no orders, together with its addresses
func (s *CustomerService) Delete(ctx context.Context, id uint64) error {
	if _, err := s.customerRepo.FindByID(ctx, id); err != nil {
		return err
	}
	hasOrders, err := s.customerRepo.HasOrders(ctx, id)
	if err != nil {
		return err
	}
	if hasOrders {
		return partner.ErrCustomerHasOrders
	}
	return s.customerRepo.Delete(ctx, id)
}

// AddAddress adds a postal address to a customer
func (s *CustomerService) AddAddress(ctx context.Context, customerID uint64, req AddAddressRequest) (*AddressResponse, error) {
	if _, err := s.customerRepo.FindByID(ctx, customerID); err != nil {
		return nil, err
	}
	address, err := partner.NewAddress(customerID, req.Street, req.City)
	if err != nil {
		return nil, err
	}
	if err := s.addressRepo.Save(ctx, address); err != nil {
		return nil, err
	}
	response := ToAddressResponse(address)
	return &response, nil
}

// ListAddresses lists the addresses of a customer
func (s *CustomerService) ListAddresses(ctx context.Context, customerID uint64) ([]AddressResponse, error) {
	if _, err := s.customerRepo.FindByID(ctx, customerID); err != nil {
		return nil, err
	}
	addresses, err := s.addressRepo.FindByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return ToAddressResponses(addresses), nil
}

// DeleteAddress removes one address of a customer
func (s *CustomerService) DeleteAddress(ctx context.Context, customerID, addressID uint64) error {
	return s.addressRepo.Delete(ctx, customerID, addressID)
}

func (s *CustomerService) checkEmail(ctx context.Context, email string, excludeID uint64) error {
	taken, err := s.customerRepo.ExistsByEmail(ctx, email, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return partner.ErrEmailTaken
	}
	return nil
}
