package respond

import (
	"github.com/gin-gonic/gin"

	"resume-intake/internal/shared/telemetry"
)

// ErrorResponse is the error body. Msg carries the human readable message
// existing clients display; Code is a stable machine identifier.
type ErrorResponse struct {
	Msg     string      `json:"msg"`
	Code    string      `json:"code"`
	Details interface{} `json:"details,omitempty"`
}

// Error sends a standardized error response and aborts the chain.
func Error(c *gin.Context, status int, code, message string, details interface{}) {
	telemetry.Error("http.error", map[string]any{
		"status":     status,
		"code":       code,
		"message":    message,
		"path":       c.Request.URL.Path,
		"method":     c.Request.Method,
		"request_id": c.GetString("requestId"),
	})

	c.AbortWithStatusJSON(status, ErrorResponse{
		Msg:     message,
		Code:    code,
		Details: details,
	})
}
