package router

import (
	"github.com/gin-gonic/gin"
	"github.com/storefront/backend/internal/interfaces/http/handler"
)

// Handlers are the HTTP handlers served under the versioned API
type Handlers struct {
	System      *handler.SystemHandler
	Auth        *handler.AuthHandler
	Collections *handler.CollectionHandler
	Promotions  *handler.PromotionHandler
	Products    *handler.ProductHandler
	Reviews     *handler.ReviewHandler
	Customers   *handler.CustomerHandler
	Orders      *handler.OrderHandler
	Carts       *handler.CartHandler
	Tags        *handler.TagHandler
	TagLookup   *handler.TagLookupHandler
}

// Guards are the access checks applied to protected routes
type Guards struct {
	// Authenticated requires a valid bearer token
	Authenticated gin.HandlerFunc
	// Admin requires the admin role; it runs after Authenticated
	Admin gin.HandlerFunc
}

// SystemGroup serves ping and build information
func SystemGroup(h Handlers) *DomainGroup {
	return NewDomainGroup("system", "").
		GET("/ping", h.System.Ping).
		GET("/system/info", h.System.GetSystemInfo)
}

// AuthGroup issues and revokes admin tokens
func AuthGroup(h Handlers, g Guards) *DomainGroup {
	return NewDomainGroup("auth", "/auth").
		POST("/token", h.Auth.IssueToken).
		DELETE("/token", g.Authenticated, h.Auth.RevokeToken)
}

// StoreGroup serves the catalog, customers, orders and carts
func StoreGroup(h Handlers) *DomainGroup {
	store := NewDomainGroup("store", "/store")

	store.Group("collections", "/collections").
		GET("", h.Collections.List).
		POST("", h.Collections.Create).
		GET("/:id", h.Collections.GetByID).
		PUT("/:id", h.Collections.Update).
		DELETE("/:id", h.Collections.Delete)

	store.Group("promotions", "/promotions").
		GET("", h.Promotions.List).
		POST("", h.Promotions.Create).
		GET("/:id", h.Promotions.GetByID).
		DELETE("/:id", h.Promotions.Delete)

	store.Group("products", "/products").
		GET("", h.Products.List).
		POST("", h.Products.Create).
		GET("/:id", h.Products.GetByID).
		PUT("/:id", h.Products.Update).
		DELETE("/:id", h.Products.Delete).
		GET("/:id/reviews", h.Reviews.List).
		POST("/:id/reviews", h.Reviews.Create).
		GET("/:id/reviews/:review_id", h.Reviews.GetByID).
		PUT("/:id/reviews/:review_id", h.Reviews.Update).
		DELETE("/:id/reviews/:review_id", h.Reviews.Delete)

	store.Group("customers", "/customers").
		GET("", h.Customers.List).
		POST("", h.Customers.Create).
		GET("/:id", h.Customers.GetByID).
		PUT("/:id", h.Customers.Update).
		DELETE("/:id", h.Customers.Delete).
		PATCH("/:id/membership", h.Customers.UpdateMembership).
		GET("/:id/addresses", h.Customers.ListAddresses).
		POST("/:id/addresses", h.Customers.AddAddress).
		DELETE("/:id/addresses/:address_id", h.Customers.DeleteAddress)

	store.Group("orders", "/orders").
		GET("", h.Orders.List).
		POST("", h.Orders.Create).
		GET("/:id", h.Orders.GetByID).
		DELETE("/:id", h.Orders.Delete).
		PATCH("/:id/payment-status", h.Orders.UpdatePaymentStatus)

	store.Group("carts", "/carts").
		POST("", h.Carts.Create).
		GET("/:id", h.Carts.GetByID).
		DELETE("/:id", h.Carts.Delete).
		POST("/:id/items", h.Carts.AddItem).
		PATCH("/:id/items/:item_id", h.Carts.UpdateItem).
		DELETE("/:id/items/:item_id", h.Carts.RemoveItem)

	return store
}

// TagGroup serves tags, associations and lookups. Reads are public, writes need a token.
func TagGroup(h Handlers, g Guards) *DomainGroup {
	tags := NewDomainGroup("tags", "/tags").
		GET("", h.Tags.List).
		GET("/:id", h.Tags.GetByID).
		GET("/:id/items", h.Tags.Items).
		GET("/items/:id", h.Tags.GetItem).
		GET("/targets/:kind/:id", h.TagLookup.GetTagsFor).
		GET("/content-types", h.TagLookup.ListContentTypes)

	tags.Group("tag-writes", "").
		Use(g.Authenticated).
		POST("", h.Tags.Create).
		PUT("/:id", h.Tags.Update).
		DELETE("/:id", h.Tags.Delete).
		POST("/items", h.Tags.Attach).
		DELETE("/items/:id", h.Tags.Detach)

	return tags
}

// AdminGroup serves bulk maintenance operations for the admin role
func AdminGroup(h Handlers, g Guards) *DomainGroup {
	return NewDomainGroup("admin", "/admin").
		Use(g.Authenticated, g.Admin).
		POST("/products/clear-inventory", h.Products.ClearInventory)
}

// RegisterAPI registers every API group on r
func RegisterAPI(r *Router, h Handlers, g Guards) *Router {
	return r.Register(
		SystemGroup(h),
		AuthGroup(h, g),
		StoreGroup(h),
		TagGroup(h, g),
		AdminGroup(h, g),
	)
}
