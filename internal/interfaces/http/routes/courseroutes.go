package routes

import (
	"github.com/gin-gonic/gin"

	"studia/internal/interfaces/http/handlers"
	"studia/internal/interfaces/http/middleware"
)

// CourseRouteConfig holds dependencies for catalog and authoring routes.
type CourseRouteConfig struct {
	CourseHandler        *handlers.CourseHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

// SetupCourseRoutes configures course routes. The catalog is public;
// course detail resolves the optional viewer so entitled buyers see the
// asset URLs.
func SetupCourseRoutes(engine *gin.Engine, cfg *CourseRouteConfig) {
	courses := engine.Group("/courses")
	{
		courses.GET("", cfg.CourseHandler.Search)

		coursesProtected := courses.Group("")
		coursesProtected.Use(cfg.AuthMiddleware.RequireAuth())
		{
			coursesProtected.GET("/mine", cfg.CourseHandler.ListMine)

			coursesWrite := coursesProtected.Group("")
			coursesWrite.Use(cfg.PermissionMiddleware.RequirePermission("courses", "write"))
			{
				coursesWrite.POST("", cfg.CourseHandler.Create)
				coursesWrite.PUT("/:id", cfg.CourseHandler.Update)
				coursesWrite.POST("/:id/publish", cfg.CourseHandler.Publish)
				coursesWrite.POST("/:id/unpublish", cfg.CourseHandler.Unpublish)
				coursesWrite.DELETE("/:id", cfg.CourseHandler.Delete)
			}
		}

		courses.GET("/:id", cfg.AuthMiddleware.OptionalAuth(), cfg.CourseHandler.Get)
	}
}
