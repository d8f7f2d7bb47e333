package middleware

import (
	"net/http" // HTTP status codes

	"cashcard_system/internal/domain" // Role helpers

	"github.com/gin-gonic/gin" // Gin web framework
)

// RequireRole rejects principals that lack role. It must run after Authenticate.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get(UsernameKey); !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		if !domain.HasRole(Roles(c), role) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}
		c.Next()
	}
}
