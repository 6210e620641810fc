package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/healix-app/healix-be/internal/auth"
)

const (
	userIDKey = "user_id"
	emailKey  = "email"
)

// BearerToken reads the token from the Authorization header, falling back to
// the token query parameter used by browser WebSocket clients.
func BearerToken(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); h != "" {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	return c.Query("token")
}

// JWTAuth rejects requests without a valid session token
func JWTAuth(issuer *auth.Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := BearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing token"})
			return
		}

		claims, err := issuer.Parse(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Set(userIDKey, claims.UserID)
		c.Set(emailKey, claims.Email)
		c.Next()
	}
}

// GetUserID returns the authenticated user id, empty outside JWTAuth
func GetUserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}

// GetEmail returns the authenticated user's email, empty outside JWTAuth
func GetEmail(c *gin.Context) string {
	return c.GetString(emailKey)
}
