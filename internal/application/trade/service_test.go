package trade

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/partner"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/trade"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Mock Repositories
// =============================================================================

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uint64) (*trade.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.Order), args.Error(1)
}

func (m *MockOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]trade.Order, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]trade.Order), args.Error(1)
}

func (m *MockOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) Create(ctx context.Context, order *trade.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) UpdatePaymentStatus(ctx context.Context, order *trade.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) Delete(ctx context.Context, id uint64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOrderRepository) HasItems(ctx context.Context, id uint64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type MockCartRepository struct {
	mock.Mock
}

func (m *MockCartRepository) FindByID(ctx context.Context, id uint64) (*trade.Cart, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.Cart), args.Error(1)
}

func (m *MockCartRepository) Create(ctx context.Context, cart *trade.Cart) error {
	args := m.Called(ctx, cart)
	return args.Error(0)
}

func (m *MockCartRepository) Delete(ctx context.Context, id uint64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCartRepository) SaveItem(ctx context.Context, item *trade.CartItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockCartRepository) DeleteItem(ctx context.Context, cartID, itemID uint64) error {
	args := m.Called(ctx, cartID, itemID)
	return args.Error(0)
}

type MockCustomerRepository struct {
	mock.Mock
	partner.CustomerRepository
}

func (m *MockCustomerRepository) FindByID(ctx context.Context, id uint64) (*partner.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Customer), args.Error(1)
}

type MockProductRepository struct {
	mock.Mock
	catalog.ProductRepository
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uint64) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDs(ctx context.Context, ids []uint64) ([]catalog.Product, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func product(id uint64, price string) catalog.Product {
	return catalog.Product{BaseEntity: shared.BaseEntity{ID: id}, Title: "p", UnitPrice: decimal.RequireFromString(price)}
}

// =============================================================================
// Orders
// =============================================================================

func TestOrderService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("snapshots unit prices", func(t *testing.T) {
		orders := new(MockOrderRepository)
		customers := new(MockCustomerRepository)
		products := new(MockProductRepository)
		customers.On("FindByID", mock.Anything, uint64(1)).Return(&partner.Customer{BaseEntity: shared.BaseEntity{ID: 1}}, nil)
		products.On("FindByIDs", mock.Anything, []uint64{10, 11}).Return([]catalog.Product{product(10, "2.50"), product(11, "4.00")}, nil)
		orders.On("Create", mock.Anything, mock.AnythingOfType("*trade.Order")).
			Run(func(args mock.Arguments) { args.Get(1).(*trade.Order).ID = 100 }).
			Return(nil)
		svc := NewOrderService(orders, customers, products)

		resp, err := svc.Create(ctx, CreateOrderRequest{
			CustomerID: 1,
			Items:      []OrderItemRequest{{ProductID: 10, Quantity: 2}, {ProductID: 11, Quantity: 1}},
		})
		require.NoError(t, err)
		assert.Equal(t, uint64(100), resp.ID)
		assert.Equal(t, "P", resp.PaymentStatus)
		require.Len(t, resp.Items, 2)
		assert.True(t, decimal.RequireFromString("2.50").Equal(resp.Items[0].UnitPrice))
		assert.True(t, decimal.RequireFromString("9.00").Equal(resp.Total))
	})

	t.Run("empty order", func(t *testing.T) {
		svc := NewOrderService(new(MockOrderRepository), new(MockCustomerRepository), new(MockProductRepository))
		_, err := svc.Create(ctx, CreateOrderRequest{CustomerID: 1})
		assert.ErrorIs(t, err, trade.ErrEmptyOrder)
	})

	t.Run("unknown customer", func(t *testing.T) {
		customers := new(MockCustomerRepository)
		customers.On("FindByID", mock.Anything, uint64(2)).Return(nil, shared.ErrNotFound)
		svc := NewOrderService(new(MockOrderRepository), customers, new(MockProductRepository))

		_, err := svc.Create(ctx, CreateOrderRequest{CustomerID: 2, Items: []OrderItemRequest{{ProductID: 1, Quantity: 1}}})
		assert.ErrorIs(t, err, errCustomerMissing)
	})

	t.Run("unknown product", func(t *testing.T) {
		orders := new(MockOrderRepository)
		customers := new(MockCustomerRepository)
		products := new(MockProductRepository)
		customers.On("FindByID", mock.Anything, uint64(1)).Return(&partner.Customer{}, nil)
		products.On("FindByIDs", mock.Anything, []uint64{10}).Return([]catalog.Product{}, nil)
		svc := NewOrderService(orders, customers, products)

		_, err := svc.Create(ctx, CreateOrderRequest{CustomerID: 1, Items: []OrderItemRequest{{ProductID: 10, Quantity: 1}}})
		assert.ErrorIs(t, err, errProductMissing)
		orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestOrderService_PaymentStatusAndDelete(t *testing.T) {
	ctx := context.Background()
	completed := &trade.Order{BaseEntity: shared.BaseEntity{ID: 1}, PaymentStatus: trade.PaymentComplete}

	orders := new(MockOrderRepository)
	orders.On("FindByID", mock.Anything, uint64(1)).Return(completed, nil)
	orders.On("HasItems", mock.Anything, uint64(1)).Return(true, nil)
	svc := NewOrderService(orders, new(MockCustomerRepository), new(MockProductRepository))

	_, err := svc.UpdatePaymentStatus(ctx, 1, UpdatePaymentStatusRequest{PaymentStatus: "P"})
	assert.ErrorIs(t, err, shared.ErrInvalidState)
	orders.AssertNotCalled(t, "UpdatePaymentStatus", mock.Anything, mock.Anything)

	err = svc.Delete(ctx, 1)
	assert.ErrorIs(t, err, trade.ErrOrderHasItems)
	assert.Equal(t, "The order has order items", err.Error())
}

func TestOrderService_List(t *testing.T) {
	orders := new(MockOrderRepository)
	orders.On("FindAll", mock.Anything, mock.MatchedBy(func(f shared.Filter) bool {
		return f.Filters["customer_id"] == uint64(4) && f.Filters["payment_status"] == "C"
	})).Return([]trade.Order{}, nil)
	orders.On("Count", mock.Anything, mock.Anything).Return(int64(0), nil)
	svc := NewOrderService(orders, new(MockCustomerRepository), new(MockProductRepository))

	list, total, err := svc.List(context.Background(), OrderListFilter{CustomerID: 4, PaymentStatus: "C"})
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.Zero(t, total)
}

// =============================================================================
// Carts
// =============================================================================

func TestCartService_AddItem(t *testing.T) {
	ctx := context.Background()

	t.Run("merges quantity of an existing line", func(t *testing.T) {
		cart := &trade.Cart{BaseEntity: shared.BaseEntity{ID: 1}, Items: []trade.CartItem{
			{BaseEntity: shared.BaseEntity{ID: 5}, CartID: 1, ProductID: 10, Quantity: 2},
		}}
		p := product(10, "3.00")
		carts := new(MockCartRepository)
		products := new(MockProductRepository)
		carts.On("FindByID", mock.Anything, uint64(1)).Return(cart, nil)
		products.On("FindByID", mock.Anything, uint64(10)).Return(&p, nil)
		carts.On("SaveItem", mock.Anything, mock.MatchedBy(func(i *trade.CartItem) bool {
			return i.ID == 5 && i.Quantity == 5
		})).Return(nil)
		svc := NewCartService(carts, products)

		resp, err := svc.AddItem(ctx, 1, CreateCartItemRequest{ProductID: 10, Quantity: 3})
		require.NoError(t, err)
		assert.Equal(t, 5, resp.Quantity)
		assert.True(t, decimal.RequireFromString("15.00").Equal(resp.TotalPrice))
		carts.AssertExpectations(t)
	})

	t.Run("unknown product", func(t *testing.T) {
		carts := new(MockCartRepository)
		products := new(MockProductRepository)
		carts.On("FindByID", mock.Anything, uint64(1)).Return(&trade.Cart{BaseEntity: shared.BaseEntity{ID: 1}}, nil)
		products.On("FindByID", mock.Anything, uint64(99)).Return(nil, shared.ErrNotFound)
		svc := NewCartService(carts, products)

		_, err := svc.AddItem(ctx, 1, CreateCartItemRequest{ProductID: 99, Quantity: 1})
		var de *shared.DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, "INVALID_PRODUCT", de.Code)
	})

	t.Run("quantity overflow", func(t *testing.T) {
		cart := &trade.Cart{BaseEntity: shared.BaseEntity{ID: 1}, Items: []trade.CartItem{
			{BaseEntity: shared.BaseEntity{ID: 5}, CartID: 1, ProductID: 10, Quantity: trade.MaxQuantity},
		}}
		p := product(10, "3.00")
		carts := new(MockCartRepository)
		products := new(MockProductRepository)
		carts.On("FindByID", mock.Anything, uint64(1)).Return(cart, nil)
		products.On("FindByID", mock.Anything, uint64(10)).Return(&p, nil)
		svc := NewCartService(carts, products)

		_, err := svc.AddItem(ctx, 1, CreateCartItemRequest{ProductID: 10, Quantity: 1})
		var de *shared.DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, "INVALID_QUANTITY", de.Code)
		carts.AssertNotCalled(t, "SaveItem", mock.Anything, mock.Anything)
	})
}

func TestCartService_UpdateItemQuantity(t *testing.T) {
	cart := &trade.Cart{BaseEntity: shared.BaseEntity{ID: 1}, Items: []trade.CartItem{
		{BaseEntity: shared.BaseEntity{ID: 5}, CartID: 1, ProductID: 10, Quantity: 2, UnitPrice: decimal.NewFromInt(4)},
	}}
	carts := new(MockCartRepository)
	carts.On("FindByID", mock.Anything, uint64(1)).Return(cart, nil)
	carts.On("SaveItem", mock.Anything, mock.Anything).Return(nil)
	svc := NewCartService(carts, new(MockProductRepository))

	resp, err := svc.UpdateItemQuantity(context.Background(), 1, 5, UpdateCartItemRequest{Quantity: 7})
	require.NoError(t, err)
	assert.Equal(t, 7, resp.Quantity)
	assert.True(t, decimal.NewFromInt(28).Equal(resp.TotalPrice))

	_, err = svc.UpdateItemQuantity(context.Background(), 1, 6, UpdateCartItemRequest{Quantity: 1})
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
