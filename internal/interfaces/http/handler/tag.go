package handler

import (
	"github.com/gin-gonic/gin"
	taggingapp "github.com/storefront/backend/internal/application/tagging"
)

// TagHandler handles tag administration and the associations between tags and entities
type TagHandler struct {
	BaseHandler
	tagService  *taggingapp.TagService
	itemService *taggingapp.TaggedItemService
}

// NewTagHandler creates a new TagHandler
func NewTagHandler(tagService *taggingapp.TagService, itemService *taggingapp.TaggedItemService) *TagHandler {
	return &TagHandler{tagService: tagService, itemService: itemService}
}

// Create godoc
// @Summary      Create a tag
// @Tags         tags
// @Accept       json
// @Produce      json
// @Param        request body taggingapp.CreateTagRequest true "Tag"
// @Success      201 {object} dto.Response{data=taggingapp.TagResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /tags [post]
func (h *TagHandler) Create(c *gin.Context) {
	var req taggingapp.CreateTagRequest
	if !h.bindJSON(c, &req) {
		return
	}

	tag, err := h.tagService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, tag)
}

// GetByID godoc
// @Summary      Get tag by ID
// @Tags         tags
// @Produce      json
// @Param        id path int true "Tag ID"
// @Success      200 {object} dto.Response{data=taggingapp.TagResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /tags/{id} [get]
func (h *TagHandler) GetByID(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	tag, err := h.tagService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, tag)
}

// List godoc
// @Summary      List tags
// @Tags         tags
// @Produce      json
// @Param        search query string false "Search term for label"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} dto.Response{data=[]taggingapp.TagResponse,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /tags [get]
func (h *TagHandler) List(c *gin.Context) {
	var filter taggingapp.TagListFilter
	if !h.bindQuery(c, &filter) {
		return
	}

	tags, total, err := h.tagService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, tags, total, filter.Page, filter.PageSize)
}

// Update godoc
// @Summary      Relabel a tag
// @Tags         tags
// @Accept       json
// @Produce      json
// @Param        id path int true "Tag ID"
// @Param        request body taggingapp.UpdateTagRequest true "Tag"
// @Success      200 {object} dto.Response{data=taggingapp.TagResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /tags/{id} [put]
func (h *TagHandler) Update(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req taggingapp.UpdateTagRequest
	if !h.bindJSON(c, &req) {
		return
	}

	tag, err := h.tagService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, tag)
}

// Delete godoc
// @Summary      Delete a tag
// @Description  Every association that uses the tag is deleted with it
// @Tags         tags
// @Param        id path int true "Tag ID"
// @Success      204
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /tags/{id} [delete]
func (h *TagHandler) Delete(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	if err := h.tagService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Items godoc
// @Summary      List the associations of a tag
// @Tags         tags
// @Produce      json
// @Param        id path int true "Tag ID"
// @Success      200 {object} dto.Response{data=[]taggingapp.TaggedItemResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /tags/{id}/items [get]
func (h *TagHandler) Items(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	items, err := h.tagService.Items(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, items)
}

// Attach godoc
// @Summary      Tag an entity
// @Description  The target entity is not looked up. Attaching the same tag twice creates two associations.
// @Tags         tags
// @Accept       json
// @Produce      json
// @Param        request body taggingapp.AttachTagRequest true "Association"
// @Success      201 {object} dto.Response{data=taggingapp.TaggedItemResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /tags/items [post]
func (h *TagHandler) Attach(c *gin.Context) {
	var req taggingapp.AttachTagRequest
	if !h.bindJSON(c, &req) {
		return
	}

	item, err := h.itemService.Attach(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, item)
}

// GetItem godoc
// @Summary      Get an association
// @Tags         tags
// @Produce      json
// @Param        id path int true "Association ID"
// @Success      200 {object} dto.Response{data=taggingapp.TaggedItemResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /tags/items/{id} [get]
func (h *TagHandler) GetItem(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	item, err := h.itemService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}

// Detach godoc
// @Summary      Remove an association
// @Tags         tags
// @Param        id path int true "Association ID"
// @Success      204
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /tags/items/{id} [delete]
func (h *TagHandler) Detach(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	if err := h.itemService.Detach(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
