package handler

import (
	"github.com/gin-gonic/gin"
	tradeapp "github.com/storefront/backend/internal/application/trade"
)

// CartHandler handles anonymous shopping carts
type CartHandler struct {
	BaseHandler
	cartService *tradeapp.CartService
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(cartService *tradeapp.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// Create godoc
// @Summary      Create an empty cart
// @Tags         carts
// @Produce      json
// @Success      201 {object} dto.Response{data=tradeapp.CartResponse}
// @Router       /store/carts [post]
func (h *CartHandler) Create(c *gin.Context) {
	cart, err := h.cartService.Create(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, cart)
}

// GetByID godoc
// @Summary      Get a cart with its items and total
// @Tags         carts
// @Produce      json
// @Param        id path int true "Cart ID"
// @Success      200 {object} dto.Response{data=tradeapp.CartResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /store/carts/{id} [get]
func (h *CartHandler) GetByID(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	cart, err := h.cartService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, cart)
}

// Delete godoc
// @Summary      Delete a cart
// @Tags         carts
// @Param        id path int true "Cart ID"
// @Success      204
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /store/carts/{id} [delete]
func (h *CartHandler) Delete(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	if err := h.cartService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// AddItem godoc
// @Summary      Add a product to a cart
// @Description  Adding a product already in the cart increases its quantity
// @Tags         carts
// @Accept       json
// @Produce      json
// @Param        id path int true "Cart ID"
// @Param        request body tradeapp.CreateCartItemRequest true "Cart item"
// @Success      201 {object} dto.Response{data=tradeapp.CartItemResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /store/carts/{id}/items [post]
func (h *CartHandler) AddItem(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req tradeapp.CreateCartItemRequest
	if !h.bindJSON(c, &req) {
		return
	}

	item, err := h.cartService.AddItem(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, item)
}

// UpdateItem godoc
// @Summary      Change the quantity of a cart item
// @Tags         carts
// @Accept       json
// @Produce      json
// @Param        id path int true "Cart ID"
// @Param        item_id path int true "Cart item ID"
// @Param        request body tradeapp.UpdateCartItemRequest true "Quantity"
// @Success      200 {object} dto.Response{data=tradeapp.CartItemResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /store/carts/{id}/items/{item_id} [patch]
func (h *CartHandler) UpdateItem(c *gin.Context) {
	cartID, itemID, ok := h.itemPath(c)
	if !ok {
		return
	}
	var req tradeapp.UpdateCartItemRequest
	if !h.bindJSON(c, &req) {
		return
	}

	item, err := h.cartService.UpdateItemQuantity(c.Request.Context(), cartID, itemID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}

// RemoveItem godoc
// @Summary      Remove an item from a cart
// @Tags         carts
// @Param        id path int true "Cart ID"
// @Param        item_id path int true "Cart item ID"
// @Success      204
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /store/carts/{id}/items/{item_id} [delete]
func (h *CartHandler) RemoveItem(c *gin.Context) {
	cartID, itemID, ok := h.itemPath(c)
	if !ok {
		return
	}

	if err := h.cartService.RemoveItem(c.Request.Context(), cartID, itemID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

func (h *CartHandler) itemPath(c *gin.Context) (cartID, itemID uint64, ok bool) {
	if cartID, ok = h.pathID(c, "id"); !ok {
		return 0, 0, false
	}
	if itemID, ok = h.pathID(c, "item_id"); !ok {
		return 0, 0, false
	}
	return cartID, itemID, true
}
