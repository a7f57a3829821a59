package auth

import (
	"net/http"
	"strings"

	"gamehub/backend/pkg/jwt"

	"github.com/gin-gonic/gin"
)

// ContextUserID is the gin context key holding the authenticated user's ID.
const ContextUserID = "userID"

// Middleware rejects requests without a valid bearer token and stores the
// token's user ID on the context.
func Middleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := userFromHeader(c, secret)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized. Please sign in."})
			return
		}
		c.Set(ContextUserID, userID)
		c.Next()
	}
}

// UserID returns the authenticated user's ID, if any.
func UserID(c *gin.Context) (uint, bool) {
	v, exists := c.Get(ContextUserID)
	if !exists {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok && id != 0
}

func userFromHeader(c *gin.Context, secret string) (uint, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return 0, false
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return 0, false
	}
	userID, err := jwt.ParseToken(parts[1], secret)
	if err != nil {
		return 0, false
	}
	return userID, true
}
