package handler

import (
	"github.com/gin-gonic/gin"
	catalogapp "github.com/storefront/backend/internal/application/catalog"
)

// PromotionHandler handles promotion-related API endpoints
type PromotionHandler struct {
	BaseHandler
	promotionService *catalogapp.PromotionService
}

// NewPromotionHandler creates a new PromotionHandler
func NewPromotionHandler(promotionService *catalogapp.PromotionService) *PromotionHandler {
	return &PromotionHandler{promotionService: promotionService}
}

// Create godoc
// @Summary      Create a promotion
// @Tags         promotions
// @Accept       json
// @Produce      json
// @Param        request body catalogapp.CreatePromotionRequest true "Promotion creation request"
// @Success      201 {object} dto.Response{data=catalogapp.PromotionResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /store/promotions [post]
func (h *PromotionHandler) Create(c *gin.Context) {
	var req catalogapp.CreatePromotionRequest
	if !h.bindJSON(c, &req) {
		return
	}

	promotion, err := h.promotionService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, promotion)
}

// GetByID godoc
// @Summary      Get promotion by ID
// @Tags         promotions
// @Produce      json
// @Param        id path int true "Promotion ID"
// @Success      200 {object} dto.Response{data=catalogapp.PromotionResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /store/promotions/{id} [get]
func (h *PromotionHandler) GetByID(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	promotion, err := h.promotionService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, promotion)
}

// List godoc
// @Summary      List promotions
// @Tags         promotions
// @Produce      json
// @Param        search query string false "Search term for description"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} dto.Response{data=[]catalogapp.PromotionResponse,meta=dto.Meta}
// @Router       /store/promotions [get]
func (h *PromotionHandler) List(c *gin.Context) {
	var filter catalogapp.ListFilter
	if !h.bindQuery(c, &filter) {
		return
	}

	promotions, total, err := h.promotionService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, promotions, total, filter.Page, filter.PageSize)
}

// Delete godoc
// @Summary      Delete a promotion
// @Tags         promotions
// @Param        id path int true "Promotion ID"
// @Success      204
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /store/promotions/{id} [delete]
func (h *PromotionHandler) Delete(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	if err := h.promotionService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
