package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"studia/internal/shared/utils"
)

// csrfExactPaths lists exact paths exempt from CSRF validation.
// These are unauthenticated endpoints with no cookie session to protect.
var csrfExactPaths = map[string]struct{}{
	"/auth/login":    {},
	"/auth/register": {},
	"/auth/refresh":  {},
	// Logout is exempt because the CSRF cookie may have expired alongside
	// the access token. It is already protected by RequireAuth middleware.
	"/auth/logout": {},
}

// csrfPrefixPaths lists path prefixes exempt from CSRF validation.
// OAuth redirects and provider webhooks carry no CSRF header.
var csrfPrefixPaths = []string{
	"/auth/oauth/",
	"/webhooks/",
}

// CSRF returns a middleware that validates CSRF tokens using the Double Submit Cookie pattern.
// For mutating requests (POST, PUT, DELETE, PATCH), it compares the csrf_token cookie value
// against the X-CSRF-Token header value. Safe methods (GET, HEAD, OPTIONS) are always skipped.
func CSRF() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Skip safe HTTP methods
		if isSafeMethod(c.Request.Method) {
			c.Next()
			return
		}

		// Skip exempt paths
		if isCSRFExempt(c.Request.URL.Path) {
			c.Next()
			return
		}

		// Requests authenticated with a Bearer header are not cookie
		// sessions and cannot be forged cross-site.
		if strings.HasPrefix(c.GetHeader("Authorization"), "Bearer ") {
			c.Next()
			return
		}

		cookieToken, err := c.Cookie(utils.CSRFTokenCookie)
		if err != nil || cookieToken == "" {
			utils.ErrorResponse(c, http.StatusForbidden, "missing CSRF cookie")
			c.Abort()
			return
		}

		headerToken := c.GetHeader("X-CSRF-Token")
		if headerToken == "" {
			utils.ErrorResponse(c, http.StatusForbidden, "missing CSRF token header")
			c.Abort()
			return
		}

		if subtle.ConstantTimeCompare([]byte(cookieToken), []byte(headerToken)) != 1 {
			utils.ErrorResponse(c, http.StatusForbidden, "invalid CSRF token")
			c.Abort()
			return
		}

		c.Next()
	}
}

func isSafeMethod(method string) bool {
	return method == http.MethodGet || method == http.MethodHead || method == http.MethodOptions
}

func isCSRFExempt(path string) bool {
	if _, ok := csrfExactPaths[path]; ok {
		return true
	}
	for _, prefix := range csrfPrefixPaths {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}
