package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/fuzumoe/linktorch-search/internal/service"
)

// JWTAuthMiddleware returns middleware that enforces Bearer JWT Auth.
func JWTAuthMiddleware(ts service.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization header missing or not Bearer"})
			return
		}
		claims, err := ts.Validate(strings.TrimPrefix(auth, "Bearer "))
		if err != nil {
			msg := "invalid token"
			if errors.Is(err, service.ErrTokenExpired) {
				msg = "token has expired"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
			return
		}
		// store the client name and token ID (jti) in context
		c.Set("subject", claims.Subject)
		c.Set("jti", claims.ID)
		c.Next()
	}
}
