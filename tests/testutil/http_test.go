package testutil

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestClient(t *testing.T) {
	engine := gin.New()
	engine.POST("/things", func(c *gin.Context) {
		var body map[string]string
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": gin.H{"code": "ERR_INVALID_JSON"}})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"success": true, "data": gin.H{"id": 42, "auth": c.GetHeader("Authorization")}})
	})

	client := NewClient(t, engine)
	client.Token = "abc"
	assert.Equal(t, uint64(42), client.Create("/things", map[string]string{"name": "x"}))

	w := client.Do(http.MethodPost, "/things", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "ERR_INVALID_JSON", ErrorCode(t, w))

	w = client.Do(http.MethodPost, "/things", map[string]string{})
	env := Decode[map[string]json.RawMessage](t, w)
	assert.True(t, env.Success)
	assert.JSONEq(t, `"Bearer abc"`, string(env.Data["auth"]))
}
