package middleware

import (
	"net/http"

	"github.com/ds124wfegd/eventhub/internal/entity"

	"github.com/gin-gonic/gin"
)

// RequireRoles is the authorization gate: the caller's role must be in the
// allow-list. An empty allow-list permits every caller through. Denies when
// no identity is attached, when the role value is not recognized, or when the
// recognized role is not allowed.
func RequireRoles(roles ...entity.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		if len(roles) == 0 {
			c.Next()
			return
		}

		identity := GetIdentity(c)
		if identity == nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}

		if !identity.Role.Valid() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}

		for _, role := range roles {
			if identity.Role == role {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	}
}
