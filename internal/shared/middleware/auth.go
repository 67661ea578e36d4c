package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"kiosk-backend/internal/shared/identity"
	res "kiosk-backend/internal/shared/response"
	"kiosk-backend/pkg/jwt"
)

// OptionalAuth resolves the caller's identity without requiring one.
// A missing or invalid token leaves the request anonymous; endpoints
// that personalize on identity (loyalty balance in the menu, order
// history) degrade gracefully.
func OptionalAuth(jwtManager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractBearerToken(c)
		if token == "" {
			identity.Store(c, identity.Anonymous())
			c.Next()
			return
		}

		claims, err := jwtManager.ValidateToken(token)
		if err != nil {
			identity.Store(c, identity.Anonymous())
			c.Next()
			return
		}

		identity.Store(c, identity.Authenticated(claims.UserID, claims.Email, claims.Role))
		c.Next()
	}
}

// RequireAuth rejects requests without a valid token
func RequireAuth(jwtManager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractBearerToken(c)
		if token == "" {
			res.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authorization token required")
			c.Abort()
			return
		}

		claims, err := jwtManager.ValidateToken(token)
		if err != nil {
			res.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid or expired token")
			c.Abort()
			return
		}

		identity.Store(c, identity.Authenticated(claims.UserID, claims.Email, claims.Role))
		c.Next()
	}
}

// RequireStaff rejects authenticated callers without the staff role.
// Must run after RequireAuth.
func RequireStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := identity.FromContext(c)
		if !id.IsStaff() {
			res.Error(c, http.StatusForbidden, "FORBIDDEN", "Staff access required")
			c.Abort()
			return
		}
		c.Next()
	}
}

func extractBearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
