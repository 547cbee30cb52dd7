package routes

import (
	"github.com/gin-gonic/gin"

	"studia/internal/interfaces/http/handlers"
	"studia/internal/interfaces/http/middleware"
)

// AuthRouteConfig holds dependencies for authentication routes.
type AuthRouteConfig struct {
	AuthHandler    *handlers.AuthHandler
	AuthMiddleware *middleware.AuthMiddleware
	LoginLimiter   *middleware.RateLimiter
}

// SetupAuthRoutes configures authentication routes.
func SetupAuthRoutes(engine *gin.Engine, cfg *AuthRouteConfig) {
	auth := engine.Group("/auth")
	{
		auth.POST("/register", cfg.LoginLimiter.Limit(), cfg.AuthHandler.Register)
		auth.POST("/login", cfg.LoginLimiter.Limit(), cfg.AuthHandler.Login)
		auth.POST("/refresh", cfg.AuthHandler.Refresh)

		auth.GET("/oauth/google", cfg.AuthHandler.GoogleLogin)
		auth.GET("/oauth/google/callback", cfg.AuthHandler.GoogleCallback)

		authProtected := auth.Group("")
		authProtected.Use(cfg.AuthMiddleware.RequireAuth())
		{
			authProtected.GET("/me", cfg.AuthHandler.GetMe)
			authProtected.POST("/logout", cfg.AuthHandler.Logout)
		}
	}
}
