package trade

import (
	"context"
	"errors"

	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/partner"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/trade"
	"github.com/storefront/backend/internal/infrastructure/telemetry"
)

var (
	errCustomerMissing = shared.NewDomainError("INVALID_CUSTOMER", "Customer not found")
	errProductMissing  = shared.NewDomainError("INVALID_PRODUCT", "One or more products do not exist")
)

// OrderService handles order placement and payment updates
type OrderService struct {
	orderRepo    trade.OrderRepository
	customerRepo partner.CustomerRepository
	productRepo  catalog.ProductRepository
}

// NewOrderService creates a new OrderService
func NewOrderService(
	orderRepo trade.OrderRepository,
	customerRepo partner.CustomerRepository,
	productRepo catalog.ProductRepository,
) *OrderService {
	return &OrderService{
		orderRepo:    orderRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
	}
}

// Create places an order. Each line is priced at the product's current unit price.
func (s *OrderService) Create(ctx context.Context, req CreateOrderRequest) (*OrderResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "order", "create",
		telemetry.WithAttribute(telemetry.AttrCustomerID, req.CustomerID),
	)
	defer span.End()

	if len(req.Items) == 0 {
		return nil, trade.ErrEmptyOrder
	}
	if _, err := s.customerRepo.FindByID(ctx, req.CustomerID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, errCustomerMissing
		}
		return nil, err
	}

	ids := make([]uint64, 0, len(req.Items))
	for _, item := range req.Items {
		ids = append(ids, item.ProductID)
	}
	products, err := s.productRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	prices := make(map[uint64]catalog.Product, len(products))
	for _, p := range products {
		prices[p.ID] = p
	}

	order, err := trade.NewOrder(req.CustomerID)
	if err != nil {
		return nil, err
	}
	for _, item := range req.Items {
		product, ok := prices[item.ProductID]
		if !ok {
			return nil, errProductMissing
		}
		if err := order.AddItem(item.ProductID, item.Quantity, product.UnitPrice); err != nil {
			return nil, err
		}
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	telemetry.SetAttributes(span, telemetry.AttrOrderID, order.ID)

	response := ToOrderResponse(order)
	return &response, nil
}

// GetByID retrieves an order with its items
func (s *OrderService) GetByID(ctx context.Context, id uint64) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToOrderResponse(order)
	return &response, nil
}

// List retrieves orders, newest first
func (s *OrderService) List(ctx context.Context, filter OrderListFilter) ([]OrderResponse, int64, error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.CustomerID > 0 {
		domainFilter = domainFilter.With("customer_id", filter.CustomerID)
	}
	if filter.PaymentStatus != "" {
		domainFilter = domainFilter.With("payment_status", filter.PaymentStatus)
	}

	orders, err := s.orderRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.orderRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToOrderResponses(orders), total, nil
}

// UpdatePaymentStatus moves an order to a new payment state
func (s *OrderService) UpdatePaymentStatus(ctx context.Context, id uint64, req UpdatePaymentStatusRequest) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := order.SetPaymentStatus(trade.PaymentStatus(req.PaymentStatus)); err != nil {
		return nil, err
	}
	if err := s.orderRepo.UpdatePaymentStatus(ctx, order); err != nil {
		return nil, err
	}
	response := ToOrderResponse(order)
	return &response, nil
}

// Delete deletes an order that has no items left
func (s *OrderService) Delete(ctx context.Context, id uint64) error {
	if _, err := s.orderRepo.FindByID(ctx, id); err != nil {
		return err
	}
	hasItems, err := s.orderRepo.HasItems(ctx, id)
	if err != nil {
		return err
	}
	if hasItems {
		return trade.ErrOrderHasItems
	}
	return s.orderRepo.Delete(ctx, id)
}
