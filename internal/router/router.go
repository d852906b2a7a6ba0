package router

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"autoparts/internal/config"
	"autoparts/internal/handler"
	"autoparts/internal/middleware"
	"autoparts/internal/repository"
	"autoparts/internal/service"
	"autoparts/internal/worker"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← FallbackStore ← Postgres/Redis.
// dispatcher may be nil, which disables background jobs. ctx bounds the
// lifetime of the rate limiter's purge goroutine.
func New(ctx context.Context, cfg *config.Config, store *repository.FallbackStore, dispatcher *worker.Dispatcher) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	limiter := middleware.NewRateLimiter(cfg.RateLimitPerMinute, time.Minute)
	limiter.StartPurge(ctx, 5*time.Minute)

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(limiter.Handler())

	// ── Services ─────────────────────────────────────────────────────────────
	reorderSvc := service.NewReorderService(store, dispatcher)
	categorySvc := service.NewCategoryService(store)
	supplierSvc := service.NewSupplierService(store, reorderSvc)
	productSvc := service.NewProductService(store)
	shopSvc := service.NewShopService(store)
	inventorySvc := service.NewInventoryService(store, dispatcher)
	alertSvc := service.NewAlertService(store)
	saleSvc := service.NewSaleService(store, dispatcher)
	dashboardSvc := service.NewDashboardService(store)

	// ── Handlers ─────────────────────────────────────────────────────────────
	categoriesH := handler.NewCategoriesHandler(categorySvc)
	suppliersH := handler.NewSuppliersHandler(supplierSvc)
	productsH := handler.NewProductsHandler(productSvc)
	shopsH := handler.NewShopsHandler(shopSvc)
	inventoryH := handler.NewInventoryHandler(inventorySvc)
	alertsH := handler.NewAlertsHandler(alertSvc)
	salesH := handler.NewSalesHandler(saleSvc)
	reordersH := handler.NewReordersHandler(reorderSvc)
	dashboardH := handler.NewDashboardHandler(dashboardSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	r.GET("/health", handler.Health(store))

	v1 := r.Group("/v1", middleware.Identity(cfg.JWTSecret))
	{
		v1.GET("/dashboard", dashboardH.Summary)
		v1.GET("/stock-status", inventoryH.StockStatus)

		categories := v1.Group("/categories")
		{
			categories.GET("", categoriesH.List)
			categories.POST("", categoriesH.Create)
			categories.PUT("/:id", categoriesH.Update)
			categories.DELETE("/:id", categoriesH.Delete)
		}

		suppliers := v1.Group("/suppliers")
		{
			suppliers.GET("", suppliersH.List)
			suppliers.POST("", suppliersH.Create)
			suppliers.GET("/:id", suppliersH.Get)
			suppliers.PUT("/:id", suppliersH.Update)
			suppliers.DELETE("/:id", suppliersH.Delete)
			suppliers.GET("/:id/products", suppliersH.Products)
			suppliers.POST("/:id/orders", suppliersH.OrderStock)
		}

		products := v1.Group("/products")
		{
			products.GET("", productsH.List)
			products.POST("", productsH.Create)
			products.GET("/:id", productsH.Get)
			products.PUT("/:id", productsH.Update)
			products.DELETE("/:id", productsH.Delete)
		}

		shops := v1.Group("/shops")
		{
			shops.GET("", shopsH.List)
			shops.POST("", shopsH.Create)
			shops.GET("/:id", shopsH.Get)
			shops.PUT("/:id", shopsH.Update)
		}

		inventory := v1.Group("/inventory")
		{
			inventory.GET("", inventoryH.List)
			inventory.POST("", inventoryH.Create)
			inventory.GET("/:id", inventoryH.Get)
			inventory.PATCH("/:id", inventoryH.Adjust)
		}

		alerts := v1.Group("/alerts")
		{
			alerts.GET("", alertsH.List)
			alerts.POST("/scan", alertsH.Scan)
			alerts.POST("/:id/acknowledge", alertsH.Acknowledge)
		}

		sales := v1.Group("/sales")
		{
			sales.GET("", salesH.List)
			sales.POST("", salesH.Create)
			sales.GET("/:id", salesH.Get)
			sales.GET("/:id/receipt", salesH.Receipt)
		}

		reorders := v1.Group("/reorders")
		{
			reorders.GET("", reordersH.List)
			reorders.POST("", reordersH.Create)
			reorders.GET("/:id", reordersH.Get)
			reorders.POST("/:id/status", reordersH.Transition)
		}
	}

	return r
}
