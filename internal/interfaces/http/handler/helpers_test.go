package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	catalogapp "github.com/storefront/backend/internal/application/catalog"
	partnerapp "github.com/storefront/backend/internal/application/partner"
	taggingapp "github.com/storefront/backend/internal/application/tagging"
	tradeapp "github.com/storefront/backend/internal/application/trade"
	"github.com/storefront/backend/internal/infrastructure/auth"
	"github.com/storefront/backend/internal/infrastructure/config"
	"github.com/storefront/backend/internal/infrastructure/persistence"
	"github.com/storefront/backend/internal/interfaces/http/dto"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
	if err := middleware.SetupValidator(); err != nil {
		panic(err)
	}
}

// testServer wires the real services over an in-memory sqlite database
type testServer struct {
	engine *gin.Engine
	db     *persistence.Database
	jwt    *auth.JWTService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	db, err := persistence.NewDatabase(&config.DatabaseConfig{Driver: "sqlite", SQLitePath: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate())
	t.Cleanup(func() { _ = db.Close() })

	gdb := db.DB
	collectionRepo := persistence.NewGormCollectionRepository(gdb)
	promotionRepo := persistence.NewGormPromotionRepository(gdb)
	productRepo := persistence.NewGormProductRepository(gdb)
	reviewRepo := persistence.NewGormReviewRepository(gdb)
	customerRepo := persistence.NewGormCustomerRepository(gdb)
	addressRepo := persistence.NewGormAddressRepository(gdb)
	orderRepo := persistence.NewGormOrderRepository(gdb)
	cartRepo := persistence.NewGormCartRepository(gdb)
	tagRepo := persistence.NewGormTagRepository(gdb)
	itemRepo := persistence.NewGormTaggedItemRepository(gdb)
	registry := taggingapp.NewContentTypeRegistry(persistence.NewGormContentTypeRepository(gdb))

	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                "test-secret-key-at-least-32-chars",
		AccessTokenExpiration: 15 * time.Minute,
		Issuer:                "storefront-test",
	})
	requireJWT := middleware.JWTAuthMiddleware(middleware.JWTMiddlewareConfig{JWTService: jwtService})

	collections := NewCollectionHandler(catalogapp.NewCollectionService(collectionRepo, productRepo))
	promotions := NewPromotionHandler(catalogapp.NewPromotionService(promotionRepo))
	products := NewProductHandler(catalogapp.NewProductService(productRepo, collectionRepo, promotionRepo))
	reviews := NewReviewHandler(catalogapp.NewReviewService(reviewRepo, productRepo))
	customers := NewCustomerHandler(partnerapp.NewCustomerService(customerRepo, addressRepo))
	orders := NewOrderHandler(tradeapp.NewOrderService(orderRepo, customerRepo, productRepo))
	carts := NewCartHandler(tradeapp.NewCartService(cartRepo, productRepo))
	tags := NewTagHandler(taggingapp.NewTagService(tagRepo, itemRepo), taggingapp.NewTaggedItemService(tagRepo, itemRepo, registry))
	lookup := NewTagLookupHandler(taggingapp.NewLookupService(registry, itemRepo, nil), registry)

	engine := gin.New()
	engine.Use(middleware.RequestID())
	api := engine.Group("/api/v1")

	store := api.Group("/store")
	store.POST("/collections", collections.Create)
	store.GET("/collections", collections.List)
	store.GET("/collections/:id", collections.GetByID)
	store.DELETE("/collections/:id", collections.Delete)
	store.POST("/promotions", promotions.Create)
	store.POST("/products", products.Create)
	store.GET("/products", products.List)
	store.GET("/products/:id", products.GetByID)
	store.DELETE("/products/:id", products.Delete)
	store.POST("/products/:id/reviews", reviews.Create)
	store.GET("/products/:id/reviews", reviews.List)
	store.POST("/customers", customers.Create)
	store.DELETE("/customers/:id", customers.Delete)
	store.PATCH("/customers/:id/membership", customers.UpdateMembership)
	store.POST("/customers/:id/addresses", customers.AddAddress)
	store.GET("/customers/:id/addresses", customers.ListAddresses)
	store.POST("/orders", orders.Create)
	store.GET("/orders/:id", orders.GetByID)
	store.PATCH("/orders/:id/payment-status", orders.UpdatePaymentStatus)
	store.DELETE("/orders/:id", orders.Delete)
	store.POST("/carts", carts.Create)
	store.GET("/carts/:id", carts.GetByID)
	store.POST("/carts/:id/items", carts.AddItem)
	store.PATCH("/carts/:id/items/:item_id", carts.UpdateItem)

	api.POST("/admin/products/clear-inventory", requireJWT, middleware.RequireRole(auth.RoleAdmin), products.ClearInventory)

	tagGroup := api.Group("/tags")
	tagGroup.GET("", tags.List)
	tagGroup.GET("/content-types", lookup.ListContentTypes)
	tagGroup.GET("/targets/:kind/:id", lookup.GetTagsFor)
	tagGroup.GET("/items/:id", tags.GetItem)
	tagGroup.GET("/:id", tags.GetByID)
	tagGroup.GET("/:id/items", tags.Items)
	tagGroup.POST("", requireJWT, tags.Create)
	tagGroup.PUT("/:id", requireJWT, tags.Update)
	tagGroup.DELETE("/:id", requireJWT, tags.Delete)
	tagGroup.POST("/items", requireJWT, tags.Attach)
	tagGroup.DELETE("/items/:id", requireJWT, tags.Detach)

	return &testServer{engine: engine, db: db, jwt: jwtService}
}

func (s *testServer) adminToken(t *testing.T) string {
	t.Helper()
	tok, err := s.jwt.GenerateAccessToken("admin", []string{auth.RoleAdmin})
	require.NoError(t, err)
	return tok.Token
}

// do sends a request with an optional JSON body and bearer token
func (s *testServer) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(middleware.AuthHeaderKey, middleware.BearerPrefix+token)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

// created posts body and returns the id of the created resource
func (s *testServer) created(t *testing.T, path string, body any, token string) uint64 {
	t.Helper()
	w := s.do(t, http.MethodPost, path, body, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var resp struct {
		Data struct {
			ID uint64 `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotZero(t, resp.Data.ID)
	return resp.Data.ID
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var resp struct {
		Success bool `json:"success"`
		Data    T    `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	require.True(t, resp.Success, w.Body.String())
	return resp.Data
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) *dto.ErrorInfo {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	require.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	return resp.Error
}

func (s *testServer) seedProduct(t *testing.T, title string, inventory int) (collectionID, productID uint64) {
	t.Helper()
	collectionID = s.created(t, "/api/v1/store/collections", map[string]any{"title": title + " collection"}, "")
	productID = s.created(t, "/api/v1/store/products", map[string]any{
		"title":         title,
		"unit_price":    "10.00",
		"inventory":     inventory,
		"collection_id": collectionID,
	}, "")
	return collectionID, productID
}

// mustField returns the raw JSON of a top-level envelope field
func mustField(t *testing.T, w *httptest.ResponseRecorder, name string) json.RawMessage {
	t.Helper()
	var env map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	raw, ok := env[name]
	require.True(t, ok, "missing %q in %s", name, w.Body.String())
	return raw
}

func itoa(id uint64) string {
	return strconv.FormatUint(id, 10)
}

func jsonUnmarshal(raw json.RawMessage, v any) error {
	return json.Unmarshal(raw, v)
}
