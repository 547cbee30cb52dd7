package routes

import (
	"github.com/gin-gonic/gin"

	"studia/internal/interfaces/http/handlers"
	"studia/internal/interfaces/http/middleware"
)

// CheckoutRouteConfig holds dependencies for checkout routes.
type CheckoutRouteConfig struct {
	CheckoutHandler      *handlers.CheckoutHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

// SetupCheckoutRoutes configures checkout routes.
func SetupCheckoutRoutes(engine *gin.Engine, cfg *CheckoutRouteConfig) {
	checkout := engine.Group("/checkout")
	checkout.Use(cfg.AuthMiddleware.RequireAuth())
	checkout.Use(cfg.PermissionMiddleware.RequirePermission("checkout", "create"))
	{
		checkout.POST("/purchase", cfg.CheckoutHandler.CreatePurchase)
		checkout.POST("/boost", cfg.CheckoutHandler.CreateBoost)
		checkout.POST("/subscription", cfg.CheckoutHandler.CreateSubscription)
	}
}
