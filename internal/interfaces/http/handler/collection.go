package handler

import (
	"github.com/gin-gonic/gin"
	catalogapp "github.com/storefront/backend/internal/application/catalog"
)

// CollectionHandler handles collection-related API endpoints
type CollectionHandler struct {
	BaseHandler
	collectionService *catalogapp.CollectionService
}

// NewCollectionHandler creates a new CollectionHandler
func NewCollectionHandler(collectionService *catalogapp.CollectionService) *CollectionHandler {
	return &CollectionHandler{collectionService: collectionService}
}

// Create godoc
// @Summary      Create a collection
// @Tags         collections
// @Accept       json
// @Produce      json
// @Param        request body catalogapp.CreateCollectionRequest true "Collection creation request"
// @Success      201 {object} dto.Response{data=catalogapp.CollectionResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /store/collections [post]
func (h *CollectionHandler) Create(c *gin.Context) {
	var req catalogapp.CreateCollectionRequest
	if !h.bindJSON(c, &req) {
		return
	}

	collection, err := h.collectionService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, collection)
}

// GetByID godoc
// @Summary      Get collection by ID
// @Description  Retrieve a collection with the number of products it holds
// @Tags         collections
// @Produce      json
// @Param        id path int true "Collection ID"
// @Success      200 {object} dto.Response{data=catalogapp.CollectionResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /store/collections/{id} [get]
func (h *CollectionHandler) GetByID(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	collection, err := h.collectionService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, collection)
}

// List godoc
// @Summary      List collections
// @Tags         collections
// @Produce      json
// @Param        search query string false "Search term for title"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} dto.Response{data=[]catalogapp.CollectionResponse,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /store/collections [get]
func (h *CollectionHandler) List(c *gin.Context) {
	var filter catalogapp.ListFilter
	if !h.bindQuery(c, &filter) {
		return
	}

	collections, total, err := h.collectionService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, collections, total, filter.Page, filter.PageSize)
}

// Update godoc
// @Summary      Update a collection
// @Tags         collections
// @Accept       json
// @Produce      json
// @Param        id path int true "Collection ID"
// @Param        request body catalogapp.UpdateCollectionRequest true "Collection update request"
// @Success      200 {object} dto.Response{data=catalogapp.CollectionResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /store/collections/{id} [put]
func (h *CollectionHandler) Update(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req catalogapp.UpdateCollectionRequest
	if !h.bindJSON(c, &req) {
		return
	}

	collection, err := h.collectionService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, collection)
}

// Delete godoc
// @Summary      Delete a collection
// @Description  Refused with 405 while products belong to the collection
// @Tags         collections
// @Param        id path int true "Collection ID"
// @Success      204
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      405 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /store/collections/{id} [delete]
func (h *CollectionHandler) Delete(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	if err := h.collectionService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
