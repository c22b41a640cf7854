package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	catalogapp "github.com/storefront/backend/internal/application/catalog"
	partnerapp "github.com/storefront/backend/internal/application/partner"
	taggingapp "github.com/storefront/backend/internal/application/tagging"
	tradeapp "github.com/storefront/backend/internal/application/trade"
	"github.com/storefront/backend/internal/infrastructure/auth"
	"github.com/storefront/backend/internal/infrastructure/cache"
	"github.com/storefront/backend/internal/infrastructure/config"
	"github.com/storefront/backend/internal/infrastructure/logger"
	"github.com/storefront/backend/internal/infrastructure/persistence"
	"github.com/storefront/backend/internal/infrastructure/telemetry"
	"github.com/storefront/backend/internal/interfaces/http/handler"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
	"github.com/storefront/backend/internal/interfaces/http/router"
	"go.uber.org/zap"

	_ "github.com/storefront/backend/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

//	@title			Storefront API
//	@version		1.0
//	@description	Storefront catalog, orders and carts with generic tagging of any store entity.
//	@termsOfService	http://swagger.io/terms/

//	@contact.name	API Support
//	@contact.url	https://github.com/storefront/backend

//	@license.name	Apache 2.0
//	@license.url	http://www.apache.org/licenses/LICENSE-2.0.html

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	logCfg := &logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	}
	bootLog, err := logger.New(logCfg)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}

	ctx := context.Background()

	// The OTLP log bridge needs a logger of its own before the real one exists
	logProvider, err := telemetry.NewLoggerProvider(ctx, cfg.Telemetry, bootLog)
	if err != nil {
		bootLog.Fatal("Failed to initialize log export", zap.Error(err))
	}
	log, err := logger.New(logCfg, logProvider.Core(logger.ParseLevel(cfg.Log.Level)))
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting Storefront Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	profiler, err := telemetry.NewProfiler(cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to start profiler", zap.Error(err))
	}
	tracerProvider, err := telemetry.NewTracerProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}
	if cfg.Telemetry.SpanProfiles && profiler.Enabled() {
		tracerProvider.EnableSpanProfiles()
	}
	meterProvider, err := telemetry.NewMeterProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize metrics", zap.Error(err))
	}

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level),
		logger.WithSlowThreshold(cfg.Telemetry.DBSlowQueryThresh))
	db, err := persistence.NewDatabase(&cfg.Database, persistence.WithLogger(gormLog))
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected", zap.String("driver", db.Driver))

	if err := telemetry.NewDBTracingPlugin(cfg.Telemetry, db.Driver, log).Register(db.DB); err != nil {
		log.Fatal("Failed to register database tracing", zap.Error(err))
	}
	dbMetrics, err := telemetry.RegisterDBMetrics(db.DB, meterProvider, cfg.Telemetry.DBSlowQueryThresh, log)
	if err != nil {
		log.Fatal("Failed to register database metrics", zap.Error(err))
	}

	// Postgres schemas are owned by cmd/migrate
	if db.Driver == "sqlite" {
		if err := db.AutoMigrate(); err != nil {
			log.Fatal("Failed to migrate sqlite schema", zap.Error(err))
		}
	}

	caches := cache.NewFactory(cfg.Redis, cfg.Tagging, cache.WithLogger(log))
	if err := caches.Open(ctx); err != nil {
		log.Fatal("Failed to connect to redis", zap.Error(err))
	}
	defer func() {
		if err := caches.Close(); err != nil {
			log.Error("Error closing redis", zap.Error(err))
		}
	}()

	taggingMetrics, err := telemetry.NewTaggingMetrics(meterProvider.Meter("storefront/tagging"))
	if err != nil {
		log.Fatal("Failed to create tagging metrics", zap.Error(err))
	}

	// Repositories
	collectionRepo := persistence.NewGormCollectionRepository(db.DB)
	promotionRepo := persistence.NewGormPromotionRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	reviewRepo := persistence.NewGormReviewRepository(db.DB)
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	addressRepo := persistence.NewGormAddressRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	cartRepo := persistence.NewGormCartRepository(db.DB)
	tagRepo := persistence.NewGormTagRepository(db.DB)
	taggedItemRepo := persistence.NewGormTaggedItemRepository(db.DB)
	contentTypeRepo := persistence.NewGormContentTypeRepository(db.DB)

	// Services
	registry := taggingapp.NewContentTypeRegistry(contentTypeRepo,
		taggingapp.WithSharedCache(caches.ContentTypeCache()),
		taggingapp.WithRegistryMetrics(taggingMetrics),
		taggingapp.WithRegistryLogger(log),
	)
	if cfg.Tagging.WarmRegistry {
		if err := registry.Warm(ctx); err != nil {
			log.Fatal("Failed to warm content type registry", zap.Error(err))
		}
	}

	collectionService := catalogapp.NewCollectionService(collectionRepo, productRepo)
	promotionService := catalogapp.NewPromotionService(promotionRepo)
	productService := catalogapp.NewProductService(productRepo, collectionRepo, promotionRepo)
	reviewService := catalogapp.NewReviewService(reviewRepo, productRepo)
	customerService := partnerapp.NewCustomerService(customerRepo, addressRepo)
	orderService := tradeapp.NewOrderService(orderRepo, customerRepo, productRepo)
	cartService := tradeapp.NewCartService(cartRepo, productRepo)
	tagService := taggingapp.NewTagService(tagRepo, taggedItemRepo)
	taggedItemService := taggingapp.NewTaggedItemService(tagRepo, taggedItemRepo, registry)
	lookupService := taggingapp.NewLookupService(registry, taggedItemRepo, taggingMetrics)

	jwtService := auth.NewJWTService(cfg.JWT)
	blacklist := caches.TokenBlacklist()

	if err := middleware.SetupValidator(); err != nil {
		log.Fatal("Failed to register validators", zap.Error(err))
	}

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Fatal("Invalid trusted proxies", zap.Error(err))
	}

	rootCtx, stopBackground := context.WithCancel(ctx)
	defer stopBackground()

	engine.Use(
		logger.Recovery(log),
		middleware.RequestID(),
		logger.GinMiddleware(log),
		middleware.TracingWithConfig(middleware.TracingConfig{
			ServiceName: cfg.Telemetry.ServiceName,
			Enabled:     tracerProvider.Enabled(),
		}),
		middleware.SpanAttributes(),
		middleware.SpanErrorMarker(),
		middleware.HTTPMetrics(meterProvider.Meter("storefront/http"), log),
		middleware.Profiling(profiler.Enabled()),
		middleware.CORSWithConfig(middleware.CORSConfigFrom(cfg.HTTP)),
		middleware.SecureWithConfig(middleware.DefaultSecurityConfig()),
		middleware.BodyLimit(cfg.HTTP.MaxBodySize),
	)
	if cfg.HTTP.RateLimitEnabled {
		var limiter middleware.Limiter
		if client := caches.Client(); client != nil {
			limiter = middleware.NewRedisRateLimiter(client, cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		} else {
			limiter = middleware.NewMemoryRateLimiter(rootCtx, cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		}
		engine.Use(middleware.RateLimit(limiter))
	}

	authenticated := middleware.JWTAuthMiddleware(middleware.JWTMiddlewareConfig{
		JWTService:     jwtService,
		TokenBlacklist: blacklist,
		Logger:         log,
	})

	checks := []handler.HealthCheck{{
		Name: "database",
		Ping: func(context.Context) error { return db.Ping() },
	}}
	if client := caches.Client(); client != nil {
		checks = append(checks, handler.HealthCheck{
			Name: "redis",
			Ping: func(ctx context.Context) error { return client.Ping(ctx).Err() },
		})
	}
	systemHandler := handler.NewSystemHandler(cfg.App.Name, cfg.App.Env, checks...)
	engine.GET("/health", systemHandler.Health)

	if cfg.Swagger.Enabled {
		engine.GET("/swagger/*any",
			middleware.SwaggerProtection(cfg.Swagger, authenticated),
			ginSwagger.WrapHandler(swaggerFiles.Handler),
		)
	}

	r := router.NewRouter(engine)
	router.RegisterAPI(r, router.Handlers{
		System:      systemHandler,
		Auth:        handler.NewAuthHandler(auth.NewAdminAuthenticator(cfg.Admin), jwtService, blacklist),
		Collections: handler.NewCollectionHandler(collectionService),
		Promotions:  handler.NewPromotionHandler(promotionService),
		Products:    handler.NewProductHandler(productService),
		Reviews:     handler.NewReviewHandler(reviewService),
		Customers:   handler.NewCustomerHandler(customerService),
		Orders:      handler.NewOrderHandler(orderService),
		Carts:       handler.NewCartHandler(cartService),
		Tags:        handler.NewTagHandler(tagService, taggedItemService),
		TagLookup:   handler.NewTagLookupHandler(lookupService, registry),
	}, router.Guards{
		Authenticated: authenticated,
		Admin:         middleware.RequireRole(auth.RoleAdmin),
	})
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr), zap.String("api", r.BasePath()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	stopBackground()

	if dbMetrics != nil {
		if err := dbMetrics.Close(); err != nil {
			log.Warn("Failed to unregister database metrics", zap.Error(err))
		}
	}
	if err := meterProvider.Shutdown(shutdownCtx); err != nil {
		log.Warn("Failed to flush metrics", zap.Error(err))
	}
	if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
		log.Warn("Failed to flush traces", zap.Error(err))
	}
	if err := profiler.Stop(); err != nil {
		log.Warn("Failed to stop profiler", zap.Error(err))
	}
	if err := logProvider.Shutdown(shutdownCtx); err != nil {
		log.Warn("Failed to flush logs", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
