package handler

import (
	"net/http"
	"testing"

	taggingapp "github.com/storefront/backend/internal/application/tagging"
	"github.com/storefront/backend/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagLookup_UnknownKind(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/v1/tags/targets/warehouse/1", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, dto.ErrCodeUnknownKind, decodeError(t, w).Code)
}

func TestTagLookup_NoTagsYieldsEmptyList(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/v1/tags/targets/product/999", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, string(mustField(t, w, "data")))

	// the lookup registered the kind as a side effect
	cts := decode[[]taggingapp.ContentTypeResponse](t, s.do(t, http.MethodGet, "/api/v1/tags/content-types", nil, ""))
	require.Len(t, cts, 1)
	assert.Equal(t, "store", cts[0].AppLabel)
	assert.Equal(t, "product", cts[0].Model)
}

func TestTagLookup_InvalidObjectID(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/v1/tags/targets/product/abc", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTagLookup_JoinsTagsInIDOrder(t *testing.T) {
	s := newTestServer(t)
	token := s.adminToken(t)

	red := s.created(t, "/api/v1/tags", map[string]any{"label": "red"}, token)
	sale := s.created(t, "/api/v1/tags", map[string]any{"label": "sale"}, token)

	s.created(t, "/api/v1/tags/items", map[string]any{"tag_id": sale, "kind": "product", "object_id": 7}, token)
	s.created(t, "/api/v1/tags/items", map[string]any{"tag_id": red, "kind": "product", "object_id": 7}, token)
	s.created(t, "/api/v1/tags/items", map[string]any{"tag_id": red, "kind": "collection", "object_id": 7}, token)
	s.created(t, "/api/v1/tags/items", map[string]any{"tag_id": red, "kind": "product", "object_id": 8}, token)

	items := decode[[]taggingapp.TaggedItemResponse](t, s.do(t, http.MethodGet, "/api/v1/tags/targets/Product/7", nil, ""))
	require.Len(t, items, 2)
	assert.Less(t, items[0].ID, items[1].ID)
	require.NotNil(t, items[0].Tag)
	assert.Equal(t, "sale", items[0].Tag.Label)
	assert.Equal(t, "red", items[1].Tag.Label)
	assert.Equal(t, "product", items[1].Kind)
	assert.Equal(t, uint64(7), items[1].ObjectID)
}

func TestTagLookup_DuplicateAttachKeepsBoth(t *testing.T) {
	s := newTestServer(t)
	token := s.adminToken(t)

	tag := s.created(t, "/api/v1/tags", map[string]any{"label": "featured"}, token)
	first := s.created(t, "/api/v1/tags/items", map[string]any{"tag_id": tag, "kind": "order", "object_id": 1}, token)
	second := s.created(t, "/api/v1/tags/items", map[string]any{"tag_id": tag, "kind": "order", "object_id": 1}, token)
	assert.NotEqual(t, first, second)

	items := decode[[]taggingapp.TaggedItemResponse](t, s.do(t, http.MethodGet, "/api/v1/tags/targets/order/1", nil, ""))
	assert.Len(t, items, 2)
}

func TestTagWrites_RequireToken(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/v1/tags", map[string]any{"label": "red"}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(t, http.MethodPost, "/api/v1/tags/items", map[string]any{"tag_id": 1, "kind": "product", "object_id": 1}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(t, http.MethodGet, "/api/v1/tags", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestTagAttach_Validation(t *testing.T) {
	s := newTestServer(t)
	token := s.adminToken(t)
	tag := s.created(t, "/api/v1/tags", map[string]any{"label": "red"}, token)

	t.Run("unknown kind", func(t *testing.T) {
		w := s.do(t, http.MethodPost, "/api/v1/tags/items", map[string]any{"tag_id": tag, "kind": "invoice", "object_id": 1}, token)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.ErrCodeUnknownKind, decodeError(t, w).Code)
	})

	t.Run("missing tag", func(t *testing.T) {
		w := s.do(t, http.MethodPost, "/api/v1/tags/items", map[string]any{"tag_id": 9999, "kind": "product", "object_id": 1}, token)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "ERR_INVALID_TAG", decodeError(t, w).Code)
	})

	t.Run("missing object id", func(t *testing.T) {
		w := s.do(t, http.MethodPost, "/api/v1/tags/items", map[string]any{"tag_id": tag, "kind": "product"}, token)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		info := decodeError(t, w)
		assert.Equal(t, dto.ErrCodeValidation, info.Code)
		require.NotEmpty(t, info.Details)
		assert.Equal(t, "object_id", info.Details[0].Field)
	})
}

func TestTagDelete_CascadesToAssociations(t *testing.T) {
	s := newTestServer(t)
	token := s.adminToken(t)

	tag := s.created(t, "/api/v1/tags", map[string]any{"label": "clearance"}, token)
	item := s.created(t, "/api/v1/tags/items", map[string]any{"tag_id": tag, "kind": "cart", "object_id": 3}, token)

	items := decode[[]taggingapp.TaggedItemResponse](t, s.do(t, http.MethodGet, "/api/v1/tags/"+itoa(tag)+"/items", nil, ""))
	require.Len(t, items, 1)

	w := s.do(t, http.MethodDelete, "/api/v1/tags/"+itoa(tag), nil, token)
	require.Equal(t, http.StatusNoContent, w.Code)

	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodGet, "/api/v1/tags/items/"+itoa(item), nil, "").Code)
	items = decode[[]taggingapp.TaggedItemResponse](t, s.do(t, http.MethodGet, "/api/v1/tags/targets/cart/3", nil, ""))
	assert.Empty(t, items)
}

func TestTagDetach(t *testing.T) {
	s := newTestServer(t)
	token := s.adminToken(t)

	tag := s.created(t, "/api/v1/tags", map[string]any{"label": "new"}, token)
	item := s.created(t, "/api/v1/tags/items", map[string]any{"tag_id": tag, "kind": "review", "object_id": 2}, token)

	require.Equal(t, http.StatusNoContent, s.do(t, http.MethodDelete, "/api/v1/tags/items/"+itoa(item), nil, token).Code)
	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodDelete, "/api/v1/tags/items/"+itoa(item), nil, token).Code)

	// the tag itself survives
	got := decode[taggingapp.TagResponse](t, s.do(t, http.MethodGet, "/api/v1/tags/"+itoa(tag), nil, ""))
	assert.Equal(t, "new", got.Label)
}

func TestTagUpdateAndList(t *testing.T) {
	s := newTestServer(t)
	token := s.adminToken(t)

	id := s.created(t, "/api/v1/tags", map[string]any{"label": "blue"}, token)
	s.created(t, "/api/v1/tags", map[string]any{"label": "green"}, token)

	w := s.do(t, http.MethodPut, "/api/v1/tags/"+itoa(id), map[string]any{"label": "navy"}, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "navy", decode[taggingapp.TagResponse](t, w).Label)

	w = s.do(t, http.MethodGet, "/api/v1/tags?search=nav", nil, "")
	tags := decode[[]taggingapp.TagResponse](t, w)
	require.Len(t, tags, 1)
	assert.Equal(t, id, tags[0].ID)
}
