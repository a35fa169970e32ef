package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"olcmelab/internal/security"
)

// SubjectKey is the context key under which the authenticated user's
// email is stored for downstream handlers.
const SubjectKey = "subject_email"

// AuthRequired validates the bearer token on every request of a
// protected route group and rejects the request before any handler
// logic runs.
func AuthRequired(secret, alg string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Authorization header is required"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Authorization header format must be Bearer {token}"})
			return
		}

		subject, err := security.VerifyAccessToken(parts[1], secret, alg)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Invalid token"})
			return
		}

		c.Set(SubjectKey, subject)
		c.Next()
	}
}
