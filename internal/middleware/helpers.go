// internal/middleware/helpers.go
package middleware

import (
	"cprice-service/internal/domain/inquiry"
	"cprice-service/internal/pkg/permission"

	"github.com/gin-gonic/gin"
)

// GetUserID gets the authenticated user id from context.
func GetUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get(ctxUserID)
	if !exists {
		return "", false
	}
	id, ok := v.(string)
	return id, ok
}

// MustGetUserID gets the user id from context or panics.
func MustGetUserID(c *gin.Context) string {
	id, exists := GetUserID(c)
	if !exists {
		panic("user_id not found in context")
	}
	return id
}

// GetUsername gets the authenticated username from context.
func GetUsername(c *gin.Context) string {
	v, exists := c.Get(ctxUsername)
	if !exists {
		return ""
	}
	username, _ := v.(string)
	return username
}

// GetPermissions gets the caller's capability set from context.
func GetPermissions(c *gin.Context) *permission.Set {
	v, exists := c.Get(ctxPermissions)
	if !exists {
		return nil
	}
	set, ok := v.(*permission.Set)
	if !ok {
		return nil
	}
	return set
}

// IsAuthenticated checks if the request carries a validated token.
func IsAuthenticated(c *gin.Context) bool {
	_, exists := c.Get(ctxUserID)
	return exists
}

// IsAdmin checks if the caller holds the admin role.
func IsAdmin(c *gin.Context) bool {
	v, exists := c.Get(ctxRole)
	if !exists {
		return false
	}
	role, _ := v.(string)
	return role == "admin"
}

// Viewer builds the masking viewer for the authenticated caller.
func Viewer(c *gin.Context) inquiry.Viewer {
	return inquiry.Viewer{
		UserID: MustGetUserID(c),
		Admin:  IsAdmin(c),
	}
}
