package routes

import (
	"github.com/gin-gonic/gin"

	"studia/internal/interfaces/http/handlers"
	"studia/internal/interfaces/http/middleware"
)

// LibraryRouteConfig holds dependencies for buyer and author read routes.
type LibraryRouteConfig struct {
	LibraryHandler *handlers.LibraryHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// SetupLibraryRoutes configures library and sales routes.
func SetupLibraryRoutes(engine *gin.Engine, cfg *LibraryRouteConfig) {
	library := engine.Group("/library")
	library.Use(cfg.AuthMiddleware.RequireAuth())
	{
		library.GET("", cfg.LibraryHandler.ListLibrary)
	}

	sales := engine.Group("/sales")
	sales.Use(cfg.AuthMiddleware.RequireAuth())
	{
		sales.GET("", cfg.LibraryHandler.ListSales)
	}
}
