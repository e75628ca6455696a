package middleware

import (
	"net/http"
	"strings"

	"github.com/ds124wfegd/eventhub/internal/entity"
	"github.com/ds124wfegd/eventhub/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	identityKey = "identity"
)

// Identity is the authenticated subject attached to the request after the
// bearer token is verified.
type Identity struct {
	UserID int64
	Email  string
	Role   entity.UserRole
}

// Auth verifies the Authorization bearer token and attaches the identity to
// the context. Requests without a valid token are rejected.
func Auth(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token format"})
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := service.ParseToken(jwtSecret, tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(identityKey, &Identity{
			UserID: claims.UserID,
			Email:  claims.Email,
			Role:   claims.Role,
		})

		c.Next()
	}
}

// GetIdentity returns the identity attached by Auth, or nil if absent.
func GetIdentity(c *gin.Context) *Identity {
	value, exists := c.Get(identityKey)
	if !exists {
		return nil
	}
	identity, ok := value.(*Identity)
	if !ok {
		return nil
	}
	return identity
}
