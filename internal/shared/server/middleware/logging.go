package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"legalease-client/internal/shared/metrics"
	"legalease-client/internal/shared/telemetry"
)

// DocumentIDKey is set by handlers that operate on an uploaded document.
const DocumentIDKey = "documentId"

// Logging emits one structured log line per request and records its latency.
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		elapsed := float64(time.Since(start).Microseconds()) / 1000.0
		status := c.Writer.Status()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.ObserveRequest(route, status, elapsed)

		documentID, _ := c.Get(DocumentIDKey)
		telemetry.Info("request.complete", map[string]any{
			"request_id":  RequestIDFromContext(c),
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"route":       route,
			"status":      status,
			"duration_ms": elapsed,
			"document_id": documentID,
			"client_ip":   c.ClientIP(),
		})
	}
}
