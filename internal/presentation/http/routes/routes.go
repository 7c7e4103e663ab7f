package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/retailpk/fbrpos-api/internal/config"
	domainRepo "github.com/retailpk/fbrpos-api/internal/domain/repository"
	"github.com/retailpk/fbrpos-api/internal/presentation/http/handler"
	"github.com/retailpk/fbrpos-api/internal/presentation/http/middleware"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Product  *handler.ProductHandler
	Category *handler.CategoryHandler
	TaxRate  *handler.TaxRateHandler
	Customer *handler.CustomerHandler
	Branch   *handler.BranchHandler
	Sale     *handler.SaleHandler
	POS      *handler.POSHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Per-client rate limiter
		rateLimiter := middleware.NewClientRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: deps.Cfg.RateLimit.RequestsPerSecond,
			BurstSize:         deps.Cfg.RateLimit.BurstSize,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		v1.Use(rateLimiter.Middleware())

		registerCatalogRoutes(v1, h)
		registerCustomerRoutes(v1, h)
		registerBranchRoutes(v1, h)
		registerSaleRoutes(v1, h, deps)
		registerPOSRoutes(v1, h, deps)
	}

	return router
}

func registerCatalogRoutes(v1 *gin.RouterGroup, h *Handlers) {
	products := v1.Group("/products")
	{
		products.GET("", h.Product.List)
		products.POST("", h.Product.Create)
		products.GET("/:id", h.Product.Get)
		products.PUT("/:id", h.Product.Update)
		products.DELETE("/:id", h.Product.Delete)
	}

	categories := v1.Group("/categories")
	{
		categories.GET("", h.Category.List)
		categories.POST("", h.Category.Create)
		categories.GET("/:id", h.Category.Get)
		categories.GET("/:id/children", h.Category.ListChildren)
		categories.PUT("/:id", h.Category.Update)
		categories.DELETE("/:id", h.Category.Delete)
	}

	taxRates := v1.Group("/tax-rates")
	{
		taxRates.GET("", h.TaxRate.List)
		taxRates.POST("", h.TaxRate.Create)
		taxRates.GET("/:id", h.TaxRate.Get)
		taxRates.PUT("/:id", h.TaxRate.Update)
		taxRates.DELETE("/:id", h.TaxRate.Delete)
	}
}

func registerCustomerRoutes(v1 *gin.RouterGroup, h *Handlers) {
	customers := v1.Group("/customers")
	{
		customers.GET("", h.Customer.List)
		customers.POST("", h.Customer.Create)
		customers.GET("/:id", h.Customer.Get)
		customers.PUT("/:id", h.Customer.Update)
		customers.DELETE("/:id", h.Customer.Delete)
	}
}

func registerBranchRoutes(v1 *gin.RouterGroup, h *Handlers) {
	branches := v1.Group("/branches")
	{
		branches.GET("", h.Branch.List)
		branches.POST("", h.Branch.Create)
		branches.GET("/:id", h.Branch.Get)
		branches.PUT("/:id", h.Branch.Update)
		branches.DELETE("/:id", h.Branch.Delete)
		branches.GET("/:id/devices", h.Branch.ListBranchDevices)
		branches.POST("/:id/devices", h.Branch.CreateDevice)
	}

	devices := v1.Group("/devices")
	{
		devices.GET("", h.Branch.ListDevices)
		devices.GET("/:id", h.Branch.GetDevice)
		devices.PUT("/:id", h.Branch.UpdateDevice)
		devices.DELETE("/:id", h.Branch.DeleteDevice)
	}
}

func registerSaleRoutes(v1 *gin.RouterGroup, h *Handlers, deps *Deps) {
	sales := v1.Group("/sales")
	{
		sales.GET("", h.Sale.List)
		// Sale submission uses idempotency middleware to prevent duplicate invoices
		sales.POST("", middleware.IdempotencyRequired(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		}), h.Sale.Create)
		sales.GET("/stats/daily", h.Sale.GetDailyStats)
		sales.GET("/stats/monthly", h.Sale.GetMonthlyStats)
		sales.GET("/export", h.Sale.Export)
		sales.GET("/:id", h.Sale.Get)
		sales.POST("/:id/sync-fbr", h.Sale.SyncFBR)
		sales.GET("/:id/fbr-status", h.Sale.GetFBRStatus)
	}
}

func registerPOSRoutes(v1 *gin.RouterGroup, h *Handlers, deps *Deps) {
	sessions := v1.Group("/pos/sessions")
	{
		sessions.POST("", h.POS.CreateSession)
		sessions.GET("/:id/cart", h.POS.GetCart)
		sessions.DELETE("/:id", h.POS.DeleteSession)

		sessions.POST("/:id/cart/items", h.POS.AddItem)
		sessions.PUT("/:id/cart/items/:productId/quantity", h.POS.SetQuantity)
		sessions.PUT("/:id/cart/items/:productId/discount", h.POS.SetLineDiscount)
		sessions.POST("/:id/cart/items/:productId/toggle-tax", h.POS.ToggleTax)
		sessions.DELETE("/:id/cart/items/:productId", h.POS.RemoveItem)

		sessions.PUT("/:id/cart/selection", h.POS.UpdateSelection)
		sessions.POST("/:id/cart/payments", h.POS.AddPayment)
		sessions.DELETE("/:id/cart/payments/:index", h.POS.RemovePayment)
		sessions.POST("/:id/cart/clear", h.POS.ClearCart)

		// Checkout uses idempotency middleware to prevent double submission
		sessions.POST("/:id/checkout", middleware.IdempotencyRequired(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		}), h.POS.Checkout)
	}
}
