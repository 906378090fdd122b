package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/rodrigojspires/caminhos-hekate-sub006/internal/services"
)

// JWTAuth authenticates REST calls with a bearer token and exposes the
// caller's user id to handlers as "user_id".
func JWTAuth(authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			return
		}

		userID, err := authService.ValidateToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set("user_id", userID)
		c.Next()
	}
}

// UserID reads the authenticated user id set by JWTAuth.
func UserID(c *gin.Context) uint {
	return c.GetUint("user_id")
}
