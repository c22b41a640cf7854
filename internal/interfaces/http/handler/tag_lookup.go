package handler

import (
	"github.com/gin-gonic/gin"
	taggingapp "github.com/storefront/backend/internal/application/tagging"
)

// TagLookupHandler answers which tags an entity carries
type TagLookupHandler struct {
	BaseHandler
	lookupService *taggingapp.LookupService
	registry      *taggingapp.ContentTypeRegistry
}

// NewTagLookupHandler creates a new TagLookupHandler
func NewTagLookupHandler(lookupService *taggingapp.LookupService, registry *taggingapp.ContentTypeRegistry) *TagLookupHandler {
	return &TagLookupHandler{lookupService: lookupService, registry: registry}
}

// GetTagsFor godoc
// @Summary      Get the tags of an entity
// @Description  Returns the associations on the entity joined with their tags, ordered by association id.
// @Description  The entity does not need to exist. An unknown kind is rejected with ERR_UNKNOWN_KIND.
// @Tags         tags
// @Produce      json
// @Param        kind path string true "Entity kind" Enums(product, collection, promotion, customer, order, cart, review)
// @Param        id path int true "Entity ID"
// @Success      200 {object} dto.Response{data=[]taggingapp.TaggedItemResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /tags/targets/{kind}/{id} [get]
func (h *TagLookupHandler) GetTagsFor(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	items, err := h.lookupService.GetTagsForTarget(c.Request.Context(), c.Param("kind"), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, items)
}

// ListContentTypes godoc
// @Summary      List registered content types
// @Tags         tags
// @Produce      json
// @Success      200 {object} dto.Response{data=[]taggingapp.ContentTypeResponse}
// @Router       /tags/content-types [get]
func (h *TagLookupHandler) ListContentTypes(c *gin.Context) {
	cts, err := h.registry.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, cts)
}
