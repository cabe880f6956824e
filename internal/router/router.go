package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"backoffice/internal/domain"
	"backoffice/internal/handler"
	"backoffice/internal/logger"
	"backoffice/internal/metrics"
	"backoffice/internal/middleware"
	"backoffice/internal/service"
)

// Handlers groups the HTTP handlers mounted by Setup.
type Handlers struct {
	Auth     *handler.AuthHandler
	User     *handler.UserHandler
	Brand    *handler.BrandHandler
	Category *handler.CategoryHandler
	Campaign *handler.CampaignHandler
	Product  *handler.ProductHandler
	Image    *handler.ImageHandler
	Supplier *handler.SupplierHandler
	Purchase *handler.PurchaseHandler
	Stats    *handler.StatsHandler
	Health   *handler.HealthHandler
}

// Options holds the cross-cutting settings of the engine.
type Options struct {
	Log            *zap.Logger
	AllowedOrigins []string
	// Metrics is optional; when set, requests are recorded and exposed on MetricsPath.
	Metrics     *metrics.HTTPMetrics
	MetricsPath string
}

// Setup configures the Gin engine with all routes and middleware.
func Setup(authSvc service.AuthService, h Handlers, opts Options) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.RequestID())
	r.Use(logger.Recovery(opts.Log))
	r.Use(logger.GinMiddleware(opts.Log))
	r.Use(middleware.CORS(opts.AllowedOrigins))
	if opts.Metrics != nil {
		r.Use(opts.Metrics.Middleware())
		r.GET(opts.MetricsPath, opts.Metrics.Handler())
	}

	// Health checks
	r.GET("/healthz", h.Health.Liveness)
	r.GET("/readyz", h.Health.Readiness)

	v1 := r.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/login", h.Auth.Login)
	auth.POST("/refresh", h.Auth.RefreshToken)

	// Protected routes - require valid JWT
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authSvc))

	protected.GET("/auth/me", h.Auth.Me)

	catalog := middleware.RequireCapability(domain.CapManageCatalog)
	deletes := middleware.RequireCapability(domain.CapDeleteRecords)
	manageUsers := middleware.RequireCapability(domain.CapManageUsers)

	// User management; self read/update is checked in the handler and service
	users := protected.Group("/users")
	users.POST("", manageUsers, h.User.Create)
	users.GET("", manageUsers, h.User.List)
	users.GET("/:id", h.User.GetByID)
	users.PUT("/:id", h.User.Update)
	users.DELETE("/:id", manageUsers, h.User.Delete)

	brands := protected.Group("/brands")
	brands.GET("", h.Brand.List)
	brands.GET("/:id", h.Brand.GetByID)
	brands.POST("", catalog, h.Brand.Create)
	brands.PUT("/:id", catalog, h.Brand.Update)
	brands.DELETE("/:id", deletes, h.Brand.Delete)

	categories := protected.Group("/categories")
	categories.GET("", h.Category.List)
	categories.GET("/tree", h.Category.Tree)
	categories.GET("/:id", h.Category.GetByID)
	categories.POST("", catalog, h.Category.Create)
	categories.PUT("/:id", catalog, h.Category.Update)
	categories.DELETE("/:id", deletes, h.Category.Delete)

	campaigns := protected.Group("/campaigns")
	campaigns.GET("", h.Campaign.List)
	campaigns.GET("/:id", h.Campaign.GetByID)
	campaigns.POST("", catalog, h.Campaign.Create)
	campaigns.PUT("/:id", catalog, h.Campaign.Update)
	campaigns.DELETE("/:id", deletes, h.Campaign.Delete)

	products := protected.Group("/products")
	products.GET("", h.Product.List)
	products.GET("/lookup", h.Product.Lookup)
	products.GET("/:id", h.Product.GetByID)
	products.POST("", catalog, h.Product.Create)
	products.PUT("/:id", catalog, h.Product.Update)
	products.DELETE("/:id", deletes, h.Product.Delete)

	images := protected.Group("/images")
	images.GET("", h.Image.List)
	images.GET("/:id", h.Image.GetByID)
	images.POST("/upload", catalog, h.Image.Upload)
	images.DELETE("/:id", deletes, h.Image.Delete)

	suppliers := protected.Group("/suppliers")
	suppliers.GET("", h.Supplier.List)
	suppliers.GET("/:id", h.Supplier.GetByID)
	suppliers.GET("/:id/offer", h.Supplier.Offer)
	suppliers.GET("/:id/purchases", h.Supplier.Purchases)
	suppliers.POST("", catalog, h.Supplier.Create)
	suppliers.PUT("/:id", catalog, h.Supplier.Update)
	suppliers.DELETE("/:id", deletes, h.Supplier.Delete)
	suppliers.POST("/:id/recommended-products", catalog, h.Supplier.AddRecommendedProduct)
	suppliers.DELETE("/:id/recommended-products/:productId", catalog, h.Supplier.RemoveRecommendedProduct)

	purchases := protected.Group("/purchases")
	purchases.POST("/quote", h.Purchase.Quote)
	purchases.GET("/export", h.Purchase.Export)
	purchases.GET("", h.Purchase.List)
	purchases.POST("", h.Purchase.Create)
	purchases.GET("/:id", h.Purchase.GetByID)
	purchases.PUT("/:id", h.Purchase.Update)
	purchases.DELETE("/:id", deletes, h.Purchase.Delete)
	purchases.POST("/:id/items", h.Purchase.AddItem)
	purchases.PATCH("/:id/items/:itemId", h.Purchase.UpdateItem)
	purchases.DELETE("/:id/items/:itemId", h.Purchase.RemoveItem)
	purchases.PUT("/:id/status", middleware.RequireCapability(domain.CapCommitPurchases), h.Purchase.UpdateStatus)
	purchases.POST("/:id/convert", h.Purchase.Convert)
	purchases.POST("/:id/send", h.Purchase.Send)

	protected.GET("/stats", middleware.RequireCapability(domain.CapViewStats), h.Stats.GetStats)

	return r
}
