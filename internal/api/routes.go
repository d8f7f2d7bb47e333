package api

import (
	"net/http" // HTTP status codes
	"strings"  // Path prefix checks
	"time"     // Token lifetime

	"cashcard_system/internal/domain"     // Role names
	"cashcard_system/internal/middleware" // Access control gate
	"cashcard_system/internal/repository" // Persistence gateway
	"cashcard_system/internal/utils"      // Attempt limiter

	"github.com/gin-gonic/gin" // Gin web framework
	"gorm.io/gorm"             // GORM ORM library
)

// Dependencies are the collaborators the routes are built from
type Dependencies struct {
	DB          *gorm.DB
	CashCards   repository.CashCardRepository
	Users       repository.UserRepository
	Limiter     utils.AttemptLimiter // Optional
	JWTSecret   string               // Optional, enables /auth/token
	JWTTTL      time.Duration
	MaxPageSize int
}

// RegisterRoutes wires every endpoint onto r
func RegisterRoutes(r *gin.Engine, deps Dependencies) {
	auth := middleware.Authenticate(deps.Users, middleware.AuthOptions{
		JWTSecret: deps.JWTSecret,
		Limiter:   deps.Limiter,
	})

	r.GET("/healthz", HealthHandler(deps.DB)) // Unauthenticated liveness check

	// Token issuance (any authenticated role)
	if deps.JWTSecret != "" {
		r.GET("/auth/token", auth, TokenHandler(deps.JWTSecret, deps.JWTTTL))
	}

	// Cash card routes (card owners only)
	cards := r.Group("/cashcards")
	cards.Use(auth, middleware.RequireRole(domain.RoleCardOwner))
	cards.GET("/:id", GetCashCardHandler(deps.CashCards))
	cards.POST("", CreateCashCardHandler(deps.CashCards))
	cards.GET("", ListCashCardsHandler(deps.CashCards, deps.MaxPageSize))
	cards.PUT("/:id", UpdateCashCardHandler(deps.CashCards))
	cards.DELETE("/:id", DeleteCashCardHandler(deps.CashCards))

	// Unmatched paths under /cashcards pass the same gate before their 404
	r.NoRoute(
		underCashCards(auth),
		underCashCards(middleware.RequireRole(domain.RoleCardOwner)),
		func(c *gin.Context) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		},
	)
}

// underCashCards runs h only for paths inside the /cashcards tree
func underCashCards(h gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := c.Request.URL.Path
		if p == "/cashcards" || strings.HasPrefix(p, "/cashcards/") {
			h(c) // Aborts on a failed check
			return
		}
		c.Next() // Outside the tree, straight to the 404
	}
}
