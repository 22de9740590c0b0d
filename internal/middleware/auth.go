package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/01moynul/storefront-golang/internal/models"
)

// Authorizer resolves a bearer token to the session user.
type Authorizer interface {
	Authorize(token string) (models.User, error)
}

// AuthMiddleware rejects requests without a valid bearer token for the
// current session user.
func AuthMiddleware(a Authorizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token format (must be Bearer)"})
			return
		}

		user, err := a.Authorize(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": models.ErrLoginRequired.Message})
			return
		}

		c.Set("userEmail", user.Email)
		c.Next()
	}
}
