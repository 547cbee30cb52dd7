package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"studia/internal/interfaces/http/middleware"
	"studia/internal/interfaces/http/routes"

	_ "studia/docs"
)

// setupRouter builds the engine, installs the global middleware chain,
// and registers every route group.
func (c *Container) setupRouter() {
	engine := gin.New()

	engine.Use(middleware.Recovery())
	engine.Use(middleware.Logger(c.log))
	engine.Use(middleware.CORS(c.cfg.Server.AllowedOrigins))
	engine.Use(middleware.SecurityHeaders())
	engine.Use(middleware.CSRF())

	engine.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	routes.SetupAuthRoutes(engine, &routes.AuthRouteConfig{
		AuthHandler:    c.hdlrs.auth,
		AuthMiddleware: c.authMiddleware,
		LoginLimiter:   c.loginLimiter,
	})

	routes.SetupCourseRoutes(engine, &routes.CourseRouteConfig{
		CourseHandler:        c.hdlrs.course,
		AuthMiddleware:       c.authMiddleware,
		PermissionMiddleware: c.permissionMiddleware,
	})

	routes.SetupCheckoutRoutes(engine, &routes.CheckoutRouteConfig{
		CheckoutHandler:      c.hdlrs.checkout,
		AuthMiddleware:       c.authMiddleware,
		PermissionMiddleware: c.permissionMiddleware,
	})

	routes.SetupWebhookRoutes(engine, &routes.WebhookRouteConfig{
		WebhookHandler: c.hdlrs.webhook,
	})

	routes.SetupBillingRoutes(engine, &routes.BillingRouteConfig{
		BillingHandler: c.hdlrs.billing,
		AuthMiddleware: c.authMiddleware,
	})

	routes.SetupLibraryRoutes(engine, &routes.LibraryRouteConfig{
		LibraryHandler: c.hdlrs.library,
		AuthMiddleware: c.authMiddleware,
	})

	c.engine = engine
}
