package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/storefront/backend/internal/infrastructure/auth"
	"github.com/storefront/backend/internal/infrastructure/config"
	"github.com/storefront/backend/internal/infrastructure/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                "test-secret-key-at-least-32-chars",
		AccessTokenExpiration: 15 * time.Minute,
		Issuer:                "storefront-test",
	})
}

func issueToken(t *testing.T, svc *auth.JWTService, roles ...string) string {
	t.Helper()
	tok, err := svc.GenerateAccessToken("admin", roles)
	require.NoError(t, err)
	return tok.Token
}

func newProtectedRouter(cfg JWTMiddlewareConfig, extra ...gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	chain := append([]gin.HandlerFunc{JWTAuthMiddleware(cfg)}, extra...)
	chain = append(chain, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"username": GetJWTUsername(c),
			"subject":  logger.GetSubject(c.Request.Context()),
		})
	})
	router.GET("/test", chain...)
	return router
}

func doGet(router *gin.Engine, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	if header != "" {
		req.Header.Set(AuthHeaderKey, header)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestJWTAuthMiddleware(t *testing.T) {
	svc := newTestJWTService()
	router := newProtectedRouter(JWTMiddlewareConfig{JWTService: svc})

	t.Run("valid token", func(t *testing.T) {
		w := doGet(router, BearerPrefix+issueToken(t, svc, auth.RoleAdmin))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"username":"admin","subject":"admin"}`, w.Body.String())
	})

	t.Run("missing header", func(t *testing.T) {
		w := doGet(router, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "ERR_TOKEN_INVALID")
	})

	t.Run("wrong scheme", func(t *testing.T) {
		w := doGet(router, "Basic YWRtaW46cGFzcw==")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		w := doGet(router, BearerPrefix+"not.a.token")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "ERR_TOKEN_INVALID")
	})

	t.Run("token signed with another secret", func(t *testing.T) {
		other := auth.NewJWTService(config.JWTConfig{
			Secret:                "another-secret-key-at-least-32-chars",
			AccessTokenExpiration: time.Minute,
			Issuer:                "storefront-test",
		})
		w := doGet(router, BearerPrefix+issueToken(t, other))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestJWTAuthMiddleware_Revoked(t *testing.T) {
	svc := newTestJWTService()
	blacklist := auth.NewInMemoryTokenBlacklist()
	router := newProtectedRouter(JWTMiddlewareConfig{JWTService: svc, TokenBlacklist: blacklist})

	token := issueToken(t, svc)
	assert.Equal(t, http.StatusOK, doGet(router, BearerPrefix+token).Code)

	claims, err := svc.ValidateAccessToken(token)
	require.NoError(t, err)
	require.NoError(t, blacklist.Revoke(context.Background(), claims.ID, time.Minute))

	w := doGet(router, BearerPrefix+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "ERR_TOKEN_REVOKED")
}

func TestRequireRole(t *testing.T) {
	svc := newTestJWTService()
	router := newProtectedRouter(JWTMiddlewareConfig{JWTService: svc}, RequireRole(auth.RoleAdmin))

	assert.Equal(t, http.StatusOK, doGet(router, BearerPrefix+issueToken(t, svc, auth.RoleAdmin)).Code)

	w := doGet(router, BearerPrefix+issueToken(t, svc, "viewer"))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "ERR_FORBIDDEN")

	bare := gin.New()
	bare.GET("/test", RequireRole(auth.RoleAdmin), func(c *gin.Context) { c.Status(http.StatusOK) })
	assert.Equal(t, http.StatusUnauthorized, doGet(bare, "").Code)
}
