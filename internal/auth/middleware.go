package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/binhbb2204/movie-stats-viz/pkg/logger"
	"github.com/binhbb2204/movie-stats-viz/pkg/utils"
)

const (
	ContextSubject = "subject"
	ContextRole    = "role"
)

// AuthMiddleware rejects requests without a valid bearer token signed with
// jwtSecret and stores the token's subject and role on the context.
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	log := logger.GetLogger().WithContext("component", "auth")

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			return
		}

		claims, err := utils.ValidateJWT(parts[1], jwtSecret)
		if err != nil {
			log.Warn("token_rejected", "path", c.FullPath(), "error", err.Error())
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set(ContextSubject, claims.Subject)
		c.Set(ContextRole, claims.Role)
		c.Next()
	}
}

// RequireRole must run after AuthMiddleware.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(ContextRole) != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
			return
		}
		c.Next()
	}
}
