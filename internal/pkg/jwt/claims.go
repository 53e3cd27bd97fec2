// internal/pkg/jwt/claims.go
package jwt

import (
	"github.com/golang-jwt/jwt/v5"

	"cprice-service/internal/pkg/permission"
)

// Claims represents the JWT claims carried by a back-office principal.
type Claims struct {
	UserID      string             `json:"user_id"`
	Username    string             `json:"username"`
	Role        string             `json:"role"`
	Permissions []permission.Grant `json:"permissions,omitempty"`
	jwt.RegisteredClaims
}

// IsAdmin reports whether the principal holds the admin role.
func (c *Claims) IsAdmin() bool {
	return c.Role == "admin"
}

// PermissionSet materializes the grant list into a capability set.
func (c *Claims) PermissionSet() *permission.Set {
	return permission.NewSet(c.Permissions)
}
