// internal/middleware/auth_middleware.go
package middleware

import (
	"net/http"
	"strings"

	"cprice-service/internal/pkg/jwt"
	"cprice-service/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// Context keys set by Auth.
const (
	ctxUserID      = "user_id"
	ctxUsername    = "username"
	ctxRole        = "role"
	ctxPermissions = "permissions"
	ctxClaims      = "claims"
)

type AuthMiddleware struct {
	tokens *jwt.Manager
}

func NewAuthMiddleware(tokens *jwt.Manager) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// Auth is the base authentication middleware that validates JWT tokens.
func (m *AuthMiddleware) Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			response.Error(c, http.StatusUnauthorized, "missing authorization token", nil)
			return
		}

		claims, err := m.tokens.Verify(token)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "invalid or expired token", err)
			return
		}

		c.Set(ctxUserID, claims.UserID)
		c.Set(ctxUsername, claims.Username)
		c.Set(ctxRole, claims.Role)
		c.Set(ctxPermissions, claims.PermissionSet())
		c.Set(ctxClaims, claims)

		c.Next()
	}
}

// RequirePermission requires the caller to hold a (module, action) grant.
// Admins pass every check. MUST be used after Auth().
func (m *AuthMiddleware) RequirePermission(module, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if IsAdmin(c) {
			c.Next()
			return
		}

		if !GetPermissions(c).Has(module, action) {
			response.Error(c, http.StatusForbidden, "permission denied", nil)
			return
		}

		c.Next()
	}
}

// AdminOnly restricts a route to the admin role. MUST be used after Auth().
func (m *AuthMiddleware) AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !IsAdmin(c) {
			response.Error(c, http.StatusForbidden, "admin access required", nil)
			return
		}
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}
