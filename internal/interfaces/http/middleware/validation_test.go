package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/storefront/backend/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type attachBody struct {
	TagID uint64 `json:"tag_id" binding:"required,min=1"`
	Kind  string `json:"kind" binding:"required,kind"`
	Title string `json:"title" binding:"omitempty,max=5"`
}

func bindRouter(t *testing.T) *gin.Engine {
	t.Helper()
	require.NoError(t, SetupValidator())
	router := gin.New()
	router.POST("/bind", func(c *gin.Context) {
		var body attachBody
		if err := c.ShouldBindJSON(&body); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	})
	return router
}

func postBind(router *gin.Engine, body string) (*httptest.ResponseRecorder, dto.Response) {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/bind", bytes.NewBufferString(body)))
	var resp dto.Response
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return w, resp
}

func TestValidation_KindTag(t *testing.T) {
	router := bindRouter(t)

	w, _ := postBind(router, `{"tag_id":1,"kind":"Product"}`)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w, resp := postBind(router, `{"tag_id":1,"kind":"supplier"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodeUnknownKind, resp.Error.Code)
	require.Len(t, resp.Error.Details, 1)
	assert.Equal(t, "kind", resp.Error.Details[0].Field)
}

func TestValidation_FieldDetails(t *testing.T) {
	router := bindRouter(t)

	w, resp := postBind(router, `{"kind":"supplier","title":"too long"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)

	fields := map[string]string{}
	for _, d := range resp.Error.Details {
		fields[d.Field] = d.Message
	}
	assert.Equal(t, "This field is required", fields["tag_id"])
	assert.Equal(t, "Must be at most 5 characters", fields["title"])
	assert.Contains(t, fields["kind"], "product")
}

func TestValidation_MalformedJSON(t *testing.T) {
	router := bindRouter(t)
	w, resp := postBind(router, `{"tag_id":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodeInvalidJSON, resp.Error.Code)
}
