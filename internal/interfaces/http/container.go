package http

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"studia/internal/application/billing/paymentgateway"
	"studia/internal/infrastructure/auth"
	"studia/internal/infrastructure/config"
	"studia/internal/infrastructure/email"
	"studia/internal/infrastructure/permission"
	"studia/internal/interfaces/http/middleware"
	"studia/internal/shared/logger"
)

// Container wires infrastructure, repositories, use cases, and handlers
// together, and owns graceful shutdown of the shared clients.
type Container struct {
	engine *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
	log    logger.Interface
	redis  *redis.Client

	repos *repositories
	ucs   *useCases
	hdlrs *handlerSet

	authMiddleware       *middleware.AuthMiddleware
	permissionMiddleware *middleware.PermissionMiddleware
	loginLimiter         *middleware.RateLimiter

	jwtService   *auth.JWTService
	oauthClient  *auth.GoogleOAuthClient
	emailService *email.SMTPEmailService
	enforcer     *permission.Enforcer
	gateway      paymentgateway.PaymentGateway
}

// NewContainer builds the fully wired application container.
func NewContainer(db *gorm.DB, cfg *config.Config, log logger.Interface) (*Container, error) {
	c := &Container{
		db:  db,
		cfg: cfg,
		log: log,
		redis: redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.GetAddr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}),
	}

	c.wireRepositories()
	if err := c.wireServices(); err != nil {
		return nil, fmt.Errorf("failed to wire services: %w", err)
	}
	c.wireUseCases()
	c.wireHandlers()
	c.setupRouter()

	return c, nil
}

// Engine exposes the configured gin engine.
func (c *Container) Engine() *gin.Engine {
	return c.engine
}

// Shutdown releases the container's shared clients.
func (c *Container) Shutdown(ctx context.Context) error {
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			c.log.Warnw("failed to close redis client", "error", err)
		}
	}
	return nil
}
