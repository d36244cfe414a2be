package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"identity-service/internal/auth"
)

// claimsContextKey is where the auth gate stores verified claims for
// downstream handlers.
const claimsContextKey = "authClaims"

// publicRoutes is the static allow-list served without authentication,
// matched exactly on method and path before any credential parsing.
var publicRoutes = map[string]struct{}{
	"POST /login": {},
	"POST /users": {},
	"GET /health": {},
}

// authGate rejects requests to protected routes unless they carry a valid
// bearer token, and attaches the verified claims to the request context.
func (h *Handler) authGate() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := publicRoutes[c.Request.Method+" "+c.Request.URL.Path]; ok {
			c.Next()
			return
		}

		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization header required"})
			return
		}

		claims, err := h.tokens.Verify(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			msg := "invalid token"
			if errors.Is(err, auth.ErrExpiredToken) {
				msg = "token expired"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
			return
		}

		c.Set(claimsContextKey, claims)
		c.Next()
	}
}

// claimsFromContext returns the claims the auth gate attached, if any.
func claimsFromContext(c *gin.Context) (*auth.Claims, bool) {
	value, ok := c.Get(claimsContextKey)
	if !ok {
		return nil, false
	}
	claims, ok := value.(*auth.Claims)
	return claims, ok
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
