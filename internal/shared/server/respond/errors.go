package respond

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"legalease-client/internal/shared/telemetry"
)

// ErrorResponse is the flat error body the LegalEase client understands:
// Error carries a short code or text, Message the human-readable detail.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Error logs and aborts with a standardized error response. An empty message
// leaves only the error field, which clients then surface as-is.
func Error(c *gin.Context, status int, code, message string) {
	logFn := telemetry.Warn
	if status >= http.StatusInternalServerError {
		logFn = telemetry.Error
	}
	logFn("http.error", map[string]any{
		"status":     status,
		"code":       code,
		"message":    message,
		"path":       c.Request.URL.Path,
		"method":     c.Request.Method,
		"request_id": c.GetString("requestId"),
	})

	c.AbortWithStatusJSON(status, ErrorResponse{Error: code, Message: message})
}
