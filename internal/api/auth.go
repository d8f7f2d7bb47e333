package api

import (
	"net/http" // HTTP status codes
	"time"     // Token lifetime

	"cashcard_system/internal/middleware" // Principal lookup
	"cashcard_system/internal/utils"      // JWT helpers

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// TokenResponse carries a bearer token
type TokenResponse struct {
	Token string `json:"token"` // Signed JWT
}

// TokenHandler issues a bearer token for the already authenticated principal
func TokenHandler(secret string, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := middleware.Username(c)
		token, err := utils.GenerateJWT(username, middleware.Roles(c), secret, ttl)
		if err != nil {
			logrus.WithFields(logrus.Fields{"username": username, "error": err.Error()}).Error("Failed to generate token")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}
		c.JSON(http.StatusOK, TokenResponse{Token: token})
	}
}
