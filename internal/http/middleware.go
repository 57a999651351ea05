package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"blog-api/internal/apperr"
	"blog-api/internal/auth"
)

const claimsContextKey = "authClaims"

// RequireAuth is the access gate: it extracts a bearer token from the
// Authorization header, verifies it, and attaches the claims to the request
// context. Missing credential material aborts with 401, present-but-invalid
// with 403.
func RequireAuth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		parts := strings.SplitN(header, " ", 2)
		if header == "" || len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			writeError(c, apperr.New(apperr.KindUnauthorized,
				"Unauthorized",
				"Access token required"))
			c.Abort()
			return
		}

		claims, err := auth.Verify(parts[1], secret)
		if err != nil {
			writeError(c, apperr.New(apperr.KindForbidden,
				"Forbidden",
				"Invalid or expired token"))
			c.Abort()
			return
		}

		c.Set(claimsContextKey, claims)
		c.Next()
	}
}

// ClaimsFrom returns the verified claims the access gate attached, if any.
func ClaimsFrom(c *gin.Context) (*auth.Claims, bool) {
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
