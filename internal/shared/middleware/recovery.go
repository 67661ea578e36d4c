package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	res "kiosk-backend/internal/shared/response"
	"kiosk-backend/pkg/logger"
)

// Recovery turns panics into 500 responses instead of dropped connections
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered", map[string]interface{}{
					"panic":      r,
					"path":       c.Request.URL.Path,
					"method":     c.Request.Method,
					"request_id": c.GetString(RequestIDKey),
					"stack":      string(debug.Stack()),
				})
				res.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
				c.Abort()
			}
		}()
		c.Next()
	}
}
