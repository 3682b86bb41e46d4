package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/stocknest/stocknest_backend/internal/core/domain"
)

const (
	userIDKey      = contextKey("userID")
	userRoleKey    = contextKey("userRole")
	permissionsKey = contextKey("permissions")
)

// GetUserIDFromContext retrieves the authenticated user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	if v, exists := c.Get(string(userIDKey)); exists {
		if userID, ok := v.(string); ok {
			return userID, true
		}
		return "", false
	}
	// check in the request context as well
	if v := c.Request.Context().Value(userIDKey); v != nil {
		if userID, ok := v.(string); ok {
			return userID, true
		}
	}
	return "", false
}

// GetUserRoleFromContext retrieves the authenticated user's role from the Gin context.
func GetUserRoleFromContext(c *gin.Context) (domain.Role, bool) {
	if v, exists := c.Get(string(userRoleKey)); exists {
		if role, ok := v.(domain.Role); ok {
			return role, true
		}
	}
	return "", false
}

// GetPermissionsFromContext retrieves the authenticated user's permission set
// from the Gin context.
func GetPermissionsFromContext(c *gin.Context) []domain.Permission {
	if v, exists := c.Get(string(permissionsKey)); exists {
		if perms, ok := v.([]domain.Permission); ok {
			return perms
		}
	}
	return nil
}
