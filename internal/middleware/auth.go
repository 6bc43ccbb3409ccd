package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"community-api/internal/auth"
	"community-api/internal/domain"
	"community-api/internal/response"
)

// Auth returns a middleware that validates the bearer token, rejects revoked
// tokens and stores the authenticated identity in the gin context
func Auth(tokens *auth.TokenManager, blacklist auth.TokenBlacklist) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			return
		}

		claims, err := tokens.Parse(tokenString)
		if err != nil {
			response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "Invalid or expired token")
			c.Abort()
			return
		}

		revoked, err := blacklist.IsRevoked(c.Request.Context(), tokenString)
		if err != nil || revoked {
			response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("user_role", claims.Role)
		c.Set("jwtToken", tokenString)

		c.Next()
	}
}

// OptionalAuth resolves the viewer identity when a valid token is present but
// lets unauthenticated requests through. Used on public read endpoints where
// enrichment depends on the viewer.
func OptionalAuth(tokens *auth.TokenManager, blacklist auth.TokenBlacklist) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.Next()
			return
		}

		claims, err := tokens.Parse(parts[1])
		if err != nil {
			c.Next()
			return
		}

		if revoked, err := blacklist.IsRevoked(c.Request.Context(), parts[1]); err != nil || revoked {
			c.Next()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("user_role", claims.Role)
		c.Set("jwtToken", parts[1])

		c.Next()
	}
}

// RequireAdmin rejects requests from non-admin users. Must run after Auth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("user_role")
		if !exists {
			response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "Authentication required")
			c.Abort()
			return
		}

		if userRole, ok := role.(domain.UserRole); !ok || userRole != domain.UserRoleAdmin {
			response.SendError(c, http.StatusForbidden, response.ErrCodeForbidden, "Admin role required")
			c.Abort()
			return
		}

		c.Next()
	}
}

// bearerToken extracts the token from the Authorization header, sending an
// unauthorized response when the header is missing or malformed
func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "Authorization header is required")
		c.Abort()
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "Invalid authorization header format")
		c.Abort()
		return "", false
	}

	return parts[1], true
}
