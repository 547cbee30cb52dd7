package routes

import (
	"github.com/gin-gonic/gin"

	"studia/internal/interfaces/http/handlers"
	"studia/internal/interfaces/http/middleware"
)

// BillingRouteConfig holds dependencies for plan and subscription routes.
type BillingRouteConfig struct {
	BillingHandler *handlers.BillingHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// SetupBillingRoutes configures billing routes.
func SetupBillingRoutes(engine *gin.Engine, cfg *BillingRouteConfig) {
	engine.GET("/plans", cfg.BillingHandler.ListPlans)

	billing := engine.Group("/billing")
	billing.Use(cfg.AuthMiddleware.RequireAuth())
	{
		billing.GET("/subscription", cfg.BillingHandler.GetMySubscription)
	}
}
