package auth

import (
	"github.com/gin-gonic/gin"
)

// OptionalMiddleware inspects for a token and sets the userID if present and valid,
// but does not fail if the token is missing or invalid.
func OptionalMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID, ok := userFromHeader(c, secret); ok {
			c.Set(ContextUserID, userID)
		}
		c.Next()
	}
}
