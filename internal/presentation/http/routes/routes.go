package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/slowlifemotors/garage-pos/internal/config"
	"github.com/slowlifemotors/garage-pos/internal/presentation/http/handler"
	"github.com/slowlifemotors/garage-pos/internal/presentation/http/middleware"
	"github.com/slowlifemotors/garage-pos/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth    *handler.AuthHandler
	Order   *handler.OrderHandler
	Payroll *handler.PayrollHandler
	Raffle  *handler.RaffleHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager *utils.JWTManager
	Cfg        *config.Config
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
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
		// Public routes, rate limited by client IP. The built-in
		// defaults apply unless the config sets a rate.
		limiterCfg := middleware.DefaultRateLimiterConfig()
		if deps.Cfg.RateLimit.Requests > 0 && deps.Cfg.RateLimit.Duration > 0 {
			limiterCfg.RequestsPerSecond = float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration)
			limiterCfg.BurstSize = deps.Cfg.RateLimit.Requests
		}
		loginLimiter := middleware.NewIPRateLimiter(limiterCfg)

		auth := v1.Group("/auth")
		auth.Use(loginLimiter.Middleware())
		{
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.Refresh)
		}

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		registerOrderRoutes(protected, h)
		registerPayrollRoutes(protected, h)
		registerRaffleRoutes(protected, h)
	}

	return router
}

func registerOrderRoutes(protected *gin.RouterGroup, h *Handlers) {
	orders := protected.Group("/orders")
	{
		orders.POST("/checkout", h.Order.Checkout)
		orders.GET("", h.Order.List)
		orders.GET("/:id", h.Order.Get)
		orders.POST("/:id/lines/:lineId/void", h.Order.VoidLine)
	}
}

func registerPayrollRoutes(protected *gin.RouterGroup, h *Handlers) {
	payroll := protected.Group("/payroll")
	{
		payroll.GET("/me", h.Payroll.Me)

		// Statements for other staff are a management view; actually
		// paying someone out is reserved for admins.
		payroll.GET("/staff/:id", middleware.RequireRole("admin", "manager"), h.Payroll.Staff)
		payroll.POST("/staff/:id/payments", middleware.RequireRole("admin"), h.Payroll.RecordPayment)
	}
}

func registerRaffleRoutes(protected *gin.RouterGroup, h *Handlers) {
	raffle := protected.Group("/raffle")
	{
		raffle.GET("/summary", h.Raffle.Summary)

		// Draws and ledger corrections are management operations.
		raffle.GET("/draw", middleware.RequireRole("admin", "manager"), h.Raffle.Draw)
		raffle.DELETE("/entries/:id", middleware.RequireRole("admin", "manager"), h.Raffle.DeleteEntry)
	}
}
