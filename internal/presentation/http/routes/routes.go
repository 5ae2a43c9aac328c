package routes

import (
	"time"

	"github.com/danuartha/warungpos-api/internal/config"
	"github.com/danuartha/warungpos-api/internal/presentation/http/handler"
	"github.com/danuartha/warungpos-api/internal/presentation/http/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Sale   *handler.SaleHandler
	Order  *handler.OrderHandler
	Report *handler.ReportHandler
	Item   *handler.ItemHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	Cfg *config.Config
	Log *zap.Logger
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(deps.Log))
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

	rateLimiter := middleware.NewClientRateLimiter(middleware.RateLimiterConfig{
		RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
		BurstSize:         deps.Cfg.RateLimit.Requests,
		CleanupInterval:   5 * time.Minute,
		EntryTTL:          10 * time.Minute,
	})
	v1.Use(rateLimiter.Middleware())

	// Sales: the sole mutation entry point for checkouts
	v1.POST("/sales", h.Sale.Create)

	// Orders and receipts (read-only)
	v1.GET("/orders", h.Order.ListOrders)
	v1.GET("/orders/:id", h.Order.GetOrder)
	v1.GET("/receipts", h.Order.ListReceipts)
	v1.GET("/receipts/:id", h.Order.GetReceipt)

	// Daily sales reports
	v1.GET("/reports/summary", h.Report.GetSummary)

	// Catalog
	items := v1.Group("/items")
	{
		items.POST("", h.Item.Create)
		items.GET("", h.Item.List)
		items.GET("/:id", h.Item.Get)
		items.PUT("/:id/price", h.Item.UpdatePrice)
		items.DELETE("/:id", h.Item.Delete)
	}
	categories := v1.Group("/categories")
	{
		categories.POST("", h.Item.CreateCategory)
		categories.GET("", h.Item.ListCategories)
	}

	return router
}
