package trade

import (
	"context"
	"errors"

	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/trade"
)

// CartService manages anonymous shopping carts
type CartService struct {
	cartRepo    trade.CartRepository
	productRepo catalog.ProductRepository
}

// NewCartService creates a new CartService
func NewCartService(cartRepo trade.CartRepository, productRepo catalog.ProductRepository) *CartService {
	return &CartService{cartRepo: cartRepo, productRepo: productRepo}
}

// Create creates an empty cart
func (s *CartService) Create(ctx context.Context) (*CartResponse, error) {
	cart := trade.NewCart()
	if err := s.cartRepo.Create(ctx, cart); err != nil {
		return nil, err
	}
	response := ToCartResponse(cart)
	return &response, nil
}

// GetByID retrieves a cart with its lines priced at current product prices
func (s *CartService) GetByID(ctx context.Context, id uint64) (*CartResponse, error) {
	cart, err := s.cartRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToCartResponse(cart)
	return &response, nil
}

// Delete deletes a cart and its lines
func (s *CartService) Delete(ctx context.Context, id uint64) error {
	return s.cartRepo.Delete(ctx, id)
}

// AddItem adds a product to the cart. A product already in the cart has its quantity increased.
func (s *CartService) AddItem(ctx context.Context, cartID uint64, req CreateCartItemRequest) (*CartItemResponse, error) {
	cart, err := s.cartRepo.FindByID(ctx, cartID)
	if err != nil {
		return nil, err
	}
	product, err := s.productRepo.FindByID(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INVALID_PRODUCT", "No product with the given ID was found")
		}
		return nil, err
	}

	item, err := cart.AddItem(req.ProductID, req.Quantity)
	if err != nil {
		return nil, err
	}
	if err := s.cartRepo.SaveItem(ctx, item); err != nil {
		return nil, err
	}
	item.UnitPrice = product.UnitPrice

	response := ToCartItemResponse(item)
	return &response, nil
}

// UpdateItemQuantity sets the quantity of a cart line
func (s *CartService) UpdateItemQuantity(ctx context.Context, cartID, itemID uint64, req UpdateCartItemRequest) (*CartItemResponse, error) {
	cart, err := s.cartRepo.FindByID(ctx, cartID)
	if err != nil {
		return nil, err
	}
	item := findCartItem(cart, itemID)
	if item == nil {
		return nil, shared.ErrNotFound
	}
	if err := item.SetQuantity(req.Quantity); err != nil {
		return nil, err
	}
	if err := s.cartRepo.SaveItem(ctx, item); err != nil {
		return nil, err
	}
	response := ToCartItemResponse(item)
	return &response, nil
}

// RemoveItem deletes a line from the cart
func (s *CartService) RemoveItem(ctx context.Context, cartID, itemID uint64) error {
	return s.cartRepo.DeleteItem(ctx, cartID, itemID)
}

func findCartItem(cart *trade.Cart, itemID uint64) *trade.CartItem {
	for i := range cart.Items {
		if cart.Items[i].ID == itemID {
			return &cart.Items[i]
		}
	}
	return nil
}
