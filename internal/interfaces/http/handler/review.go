package handler

import (
	"github.com/gin-gonic/gin"
	catalogapp "github.com/storefront/backend/internal/application/catalog"
)

// ReviewHandler handles the reviews nested under a product
type ReviewHandler struct {
	BaseHandler
	reviewService *catalogapp.ReviewService
}

// NewReviewHandler creates a new ReviewHandler
func NewReviewHandler(reviewService *catalogapp.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// List godoc
// @Summary      List reviews of a product
// @Tags         reviews
// @Produce      json
// @Param        id path int true "Product ID"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} dto.Response{data=[]catalogapp.ReviewResponse,meta=dto.Meta}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /store/products/{id}/reviews [get]
func (h *ReviewHandler) List(c *gin.Context) {
	productID, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var filter catalogapp.ListFilter
	if !h.bindQuery(c, &filter) {
		return
	}

	reviews, total, err := h.reviewService.List(c.Request.Context(), productID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, reviews, total, filter.Page, filter.PageSize)
}

// Create godoc
// @Summary      Review a product
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Param        id path int true "Product ID"
// @Param        request body catalogapp.CreateReviewRequest true "Review"
// @Success      201 {object} dto.Response{data=catalogapp.ReviewResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /store/products/{id}/reviews [post]
func (h *ReviewHandler) Create(c *gin.Context) {
	productID, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req catalogapp.CreateReviewRequest
	if !h.bindJSON(c, &req) {
		return
	}

	review, err := h.reviewService.Create(c.Request.Context(), productID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, review)
}

// GetByID godoc
// @Summary      Get a review
// @Tags         reviews
// @Produce      json
// @Param        id path int true "Product ID"
// @Param        review_id path int true "Review ID"
// @Success      200 {object} dto.Response{data=catalogapp.ReviewResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /store/products/{id}/reviews/{review_id} [get]
func (h *ReviewHandler) GetByID(c *gin.Context) {
	productID, reviewID, ok := h.reviewPath(c)
	if !ok {
		return
	}

	review, err := h.reviewService.GetByID(c.Request.Context(), productID, reviewID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, review)
}

// Update godoc
// @Summary      Edit a review
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Param        id path int true "Product ID"
// @Param        review_id path int true "Review ID"
// @Param        request body catalogapp.UpdateReviewRequest true "Review"
// @Success      200 {object} dto.Response{data=catalogapp.ReviewResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /store/products/{id}/reviews/{review_id} [put]
func (h *ReviewHandler) Update(c *gin.Context) {
	productID, reviewID, ok := h.reviewPath(c)
	if !ok {
		return
	}
	var req catalogapp.UpdateReviewRequest
	if !h.bindJSON(c, &req) {
		return
	}

	review, err := h.reviewService.Update(c.Request.Context(), productID, reviewID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, review)
}

// Delete godoc
// @Summary      Delete a review
// @Tags         reviews
// @Param        id path int true "Product ID"
// @Param        review_id path int true "Review ID"
// @Success      204
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /store/products/{id}/reviews/{review_id} [delete]
func (h *ReviewHandler) Delete(c *gin.Context) {
	productID, reviewID, ok := h.reviewPath(c)
	if !ok {
		return
	}

	if err := h.reviewService.Delete(c.Request.Context(), productID, reviewID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

func (h *ReviewHandler) reviewPath(c *gin.Context) (productID, reviewID uint64, ok bool) {
	if productID, ok = h.pathID(c, "id"); !ok {
		return 0, 0, false
	}
	if reviewID, ok = h.pathID(c, "review_id"); !ok {
		return 0, 0, false
	}
	return productID, reviewID, true
}
