package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"studia/internal/domain/user"
	"studia/internal/infrastructure/auth"
	"studia/internal/shared/constants"
	apperrors "studia/internal/shared/errors"
	"studia/internal/shared/logger"
	"studia/internal/shared/utils"
)

type AuthMiddleware struct {
	jwtService *auth.JWTService
	userRepo   user.Repository
	logger     logger.Interface
}

func NewAuthMiddleware(jwtService *auth.JWTService, userRepo user.Repository, logger logger.Interface) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		userRepo:   userRepo,
		logger:     logger,
	}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := m.extractToken(c)
		if token == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "missing authorization token")
			c.Abort()
			return
		}

		claims, err := m.jwtService.Verify(token)
		if err != nil {
			authErr := apperrors.NewTokenInvalidError("access token")
			if errors.Is(err, jwt.ErrTokenExpired) {
				authErr = apperrors.NewTokenExpiredError("access token")
			}
			m.logger.Warnw("failed to verify token",
				"error", err,
				"security_event", apperrors.IsSecurityEvent(authErr),
			)
			utils.ErrorResponseWithError(c, authErr)
			c.Abort()
			return
		}

		if claims.TokenType != auth.TokenTypeAccess {
			utils.ErrorResponseWithError(c, apperrors.NewTokenInvalidError("token type"))
			c.Abort()
			return
		}

		// Tokens carry the public SID. Resolve it so handlers work with
		// internal IDs, and so deactivated accounts lose access before
		// the token expires.
		account, err := m.userRepo.GetBySID(c.Request.Context(), claims.UserSID)
		if err != nil {
			m.logger.Warnw("failed to resolve token user", "user_sid", claims.UserSID, "error", err)
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}
		if !account.CanLogin() {
			utils.ErrorResponse(c, http.StatusForbidden, "account is not active")
			c.Abort()
			return
		}

		c.Set("user_id", account.ID())
		c.Set("user_sid", account.SID())
		c.Set(constants.ContextKeyUserRole, account.Role().String())

		c.Next()
	}
}

// OptionalAuth resolves the caller when a valid token is present and
// stays silent otherwise.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := m.extractToken(c)
		if token == "" {
			c.Next()
			return
		}

		claims, err := m.jwtService.Verify(token)
		if err != nil || claims.TokenType != auth.TokenTypeAccess {
			c.Next()
			return
		}

		account, err := m.userRepo.GetBySID(c.Request.Context(), claims.UserSID)
		if err == nil && account.CanLogin() {
			c.Set("user_id", account.ID())
			c.Set("user_sid", account.SID())
			c.Set(constants.ContextKeyUserRole, account.Role().String())
		}

		c.Next()
	}
}

// extractToken reads the access token from the auth cookie, falling
// back to the Authorization header.
func (m *AuthMiddleware) extractToken(c *gin.Context) string {
	if token := utils.GetTokenFromCookie(c, utils.AccessTokenCookie); token != "" {
		return token
	}

	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}
