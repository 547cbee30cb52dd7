package http

import (
	"fmt"
	"time"

	"studia/internal/application/billing/paymentgateway"
	"studia/internal/infrastructure/auth"
	"studia/internal/infrastructure/email"
	"studia/internal/infrastructure/permission"
	"studia/internal/interfaces/http/middleware"
)

// casbinModelPath is resolved relative to the working directory, like
// the viper config search path.
const casbinModelPath = "configs/rbac_model.conf"

func (c *Container) wireServices() error {
	c.jwtService = auth.NewJWTService(
		c.cfg.Auth.JWT.Secret,
		c.cfg.Auth.JWT.AccessExpMinutes,
		c.cfg.Auth.JWT.RefreshExpDays,
	)

	c.oauthClient = auth.NewGoogleOAuthClient(auth.GoogleOAuthConfig{
		ClientID:     c.cfg.OAuth.Google.ClientID,
		ClientSecret: c.cfg.OAuth.Google.ClientSecret,
		RedirectURL:  c.cfg.OAuth.Google.RedirectURL,
	})

	if c.cfg.Email.Enabled {
		c.emailService = email.NewSMTPEmailService(email.SMTPConfig{
			Host:        c.cfg.Email.SMTPHost,
			Port:        c.cfg.Email.SMTPPort,
			Username:    c.cfg.Email.SMTPUser,
			Password:    c.cfg.Email.SMTPPassword,
			FromAddress: c.cfg.Email.FromAddress,
			FromName:    c.cfg.Email.FromName,
			BaseURL:     c.cfg.Server.BaseURL,
		})
	}

	enforcer, err := permission.NewEnforcer(c.db, casbinModelPath, c.log)
	if err != nil {
		return fmt.Errorf("failed to create enforcer: %w", err)
	}
	if err := enforcer.SeedPolicies(); err != nil {
		return fmt.Errorf("failed to seed policies: %w", err)
	}
	c.enforcer = enforcer

	c.authMiddleware = middleware.NewAuthMiddleware(c.jwtService, c.repos.user, c.log)
	c.permissionMiddleware = middleware.NewPermissionMiddleware(c.enforcer, c.log)
	c.loginLimiter = middleware.NewRateLimiter(c.redis, 10, time.Minute)

	c.gateway = paymentgateway.NewStripeGateway(paymentgateway.StripeGatewayConfig{
		SecretKey:     c.cfg.Stripe.SecretKey,
		WebhookSecret: c.cfg.Stripe.WebhookSecret,
	}, c.log)

	return nil
}
