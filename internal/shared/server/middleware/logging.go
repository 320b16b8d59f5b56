package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/shared/telemetry"
)

// Logging emits one request.complete line per request. Server errors are
// logged at error level. Probe and scrape paths are skipped.
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions || quietPath(c.Request.URL.Path) {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		id := IdentityFromContext(c)
		fields := map[string]any{
			"request_id":  RequestIDFromContext(c),
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"route":       c.FullPath(),
			"status":      c.Writer.Status(),
			"bytes":       c.Writer.Size(),
			"duration_ms": float64(time.Since(start).Microseconds()) / 1000.0,
			"user_id":     id.UserID,
			"is_guest":    id.Guest,
			"client_ip":   c.ClientIP(),
		}
		for _, key := range []string{"resumeId", "exportId"} {
			if v := c.GetString(key); v != "" {
				fields[logKeys[key]] = v
			}
		}

		if c.Writer.Status() >= http.StatusInternalServerError {
			telemetry.Error("request.complete", fields)
			return
		}
		telemetry.Info("request.complete", fields)
	}
}

var logKeys = map[string]string{
	"resumeId": "resume_id",
	"exportId": "export_id",
}

func quietPath(path string) bool {
	return path == "/metrics" || path == "/api/v1/health"
}
