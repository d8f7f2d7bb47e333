package middleware

import (
	"net/http" // HTTP status codes
	"strings"  // String manipulation

	"cashcard_system/internal/repository" // Credential store
	"cashcard_system/internal/utils"      // Password, JWT and attempt helpers

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logrus for structured logging
)

// Context keys set by Authenticate
const (
	UsernameKey = "username"
	RolesKey    = "roles"
)

// AuthOptions configures the optional parts of Authenticate
type AuthOptions struct {
	Realm     string               // Basic auth realm, defaults to "cashcards"
	JWTSecret string               // Accept bearer tokens signed with this secret when non-empty
	Limiter   utils.AttemptLimiter // Lock identities out after repeated failures when non-nil
}

// Authenticate resolves the principal from HTTP Basic credentials or a bearer token.
// Every request is checked on its own; nothing is kept between requests.
func Authenticate(users repository.UserRepository, opts AuthOptions) gin.HandlerFunc {
	realm := opts.Realm
	if realm == "" {
		realm = "cashcards"
	}
	challenge := `Basic realm="` + realm + `"`

	unauthorized := func(c *gin.Context, msg string) {
		c.Header("WWW-Authenticate", challenge)
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
	}

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization") // Get Authorization header
		if authHeader == "" {
			unauthorized(c, "Authentication required")
			return
		}

		// Bearer tokens carry their own roles
		if strings.HasPrefix(authHeader, "Bearer ") {
			if opts.JWTSecret == "" {
				unauthorized(c, "Bearer tokens are not accepted")
				return
			}
			claims, err := utils.ParseJWT(strings.TrimPrefix(authHeader, "Bearer "), opts.JWTSecret)
			if err != nil {
				unauthorized(c, "Invalid or expired token")
				return
			}
			proceedAs(c, claims.Username, claims.Roles)
			return
		}

		username, password, ok := c.Request.BasicAuth()
		if !ok {
			unauthorized(c, "Missing or invalid Authorization header")
			return
		}
		ctx := c.Request.Context()

		if opts.Limiter != nil {
			locked, err := opts.Limiter.Locked(ctx, username)
			if err != nil {
				logrus.WithFields(logrus.Fields{"username": username, "error": err.Error()}).Error("Attempt limiter unavailable")
			} else if locked {
				c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many failed attempts"})
				return
			}
		}

		user, err := users.FindByUsername(ctx, username)
		if err != nil {
			logrus.WithFields(logrus.Fields{"username": username, "error": err.Error()}).Error("Credential lookup failed")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Authentication failed"})
			return
		}
		if user == nil || !utils.CheckPassword(user.Password, password) {
			logrus.WithFields(logrus.Fields{
				"username":  username,
				"client_ip": c.ClientIP(),
			}).Warn("Rejected credentials")
			if opts.Limiter != nil {
				if err := opts.Limiter.Fail(ctx, username); err != nil {
					logrus.WithFields(logrus.Fields{"username": username, "error": err.Error()}).Error("Failed to record attempt")
				}
			}
			unauthorized(c, "Invalid credentials")
			return
		}
		if opts.Limiter != nil {
			if err := opts.Limiter.Reset(ctx, username); err != nil {
				logrus.WithFields(logrus.Fields{"username": username, "error": err.Error()}).Error("Failed to reset attempts")
			}
		}
		proceedAs(c, user.Username, user.RoleList())
	}
}

// proceedAs stores the principal and hands over to the next handler
func proceedAs(c *gin.Context, username string, roles []string) {
	c.Set(UsernameKey, username)
	c.Set(RolesKey, roles)
	c.Next()
}

// Username returns the authenticated principal, empty when none
func Username(c *gin.Context) string {
	return c.GetString(UsernameKey)
}

// Roles returns the roles of the authenticated principal
func Roles(c *gin.Context) []string {
	return c.GetStringSlice(RolesKey)
}
