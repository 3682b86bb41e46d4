package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stocknest/stocknest_backend/internal/core/domain"
)

// RequireRoles creates a middleware that allows only callers whose role is in
// the given set. AuthMiddleware must run first.
func RequireRoles(roles ...domain.Role) gin.HandlerFunc {
	allowed := make(map[domain.Role]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *gin.Context) {
		role, ok := GetUserRoleFromContext(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorBody(http.StatusUnauthorized, "Authentication required"))
			return
		}
		if !allowed[role] {
			GetLoggerFromCtx(c.Request.Context()).Warn("Role not permitted for route", "role", string(role))
			c.AbortWithStatusJSON(http.StatusForbidden, errorBody(http.StatusForbidden, "Insufficient role"))
			return
		}
		c.Next()
	}
}

// RequirePermission creates a middleware that allows callers holding the given
// permission. Admins and managers implicitly hold every permission.
func RequirePermission(perm domain.Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := GetUserRoleFromContext(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorBody(http.StatusUnauthorized, "Authentication required"))
			return
		}
		user := domain.User{Role: role, Permissions: GetPermissionsFromContext(c)}
		if !user.HasPermission(perm) {
			GetLoggerFromCtx(c.Request.Context()).Warn("Permission not granted for route", "permission", string(perm))
			c.AbortWithStatusJSON(http.StatusForbidden, errorBody(http.StatusForbidden, "Insufficient permissions"))
			return
		}
		c.Next()
	}
}
