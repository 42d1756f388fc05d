package middleware

import (
	"net/http"
	"strings"

	"barberbook/models"
	"barberbook/services/session"

	"github.com/gin-gonic/gin"
)

const sessionKey = "session"

// SessionAuthMiddleware verifies the Bearer ID token against the identity
// provider and stores the materialized session in the request context.
func SessionAuthMiddleware(sessions session.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		idToken := strings.TrimPrefix(authHeader, "Bearer ")

		user, err := sessions.Authenticate(c.Request.Context(), idToken)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Set(sessionKey, *user)
		c.Next()
	}
}

// AdminOnlyMiddleware rejects requests whose derived session role is not
// admin. It must run after SessionAuthMiddleware.
func AdminOnlyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := SessionFrom(c)
		if !ok || user.Role != models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		c.Next()
	}
}

// SessionFrom extracts the session placed by SessionAuthMiddleware.
func SessionFrom(c *gin.Context) (models.User, bool) {
	v, ok := c.Get(sessionKey)
	if !ok {
		return models.User{}, false
	}
	user, ok := v.(models.User)
	return user, ok
}
