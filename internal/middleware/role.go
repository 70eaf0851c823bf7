package middleware

import (
	"net/http"

	"boatwork/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// RequireRole ensures that the authenticated user has the specified role
func RequireRole(requiredRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Role not found in token")
			c.Abort()
			return
		}

		if role.(string) != requiredRole {
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Access denied: insufficient permissions")
			c.Abort()
			return
		}

		c.Next()
	}
}

// OwnerOnly restricts a route to boat owners.
func OwnerOnly() gin.HandlerFunc {
	return RequireRole("owner")
}

// ProviderOnly restricts a route to service providers.
func ProviderOnly() gin.HandlerFunc {
	return RequireRole("provider")
}
