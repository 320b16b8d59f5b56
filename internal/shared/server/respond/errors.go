package respond

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/shared/telemetry"
)

// Problem is the body of every non-2xx API response.
type Problem struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// Envelope nests a Problem under "error".
type Envelope struct {
	Error Problem `json:"error"`
}

// Error aborts the request with status and the error envelope. Client errors
// are logged at warn, server errors at error.
func Error(c *gin.Context, status int, code, message string, details any) {
	logProblem(c, status, code, message)
	c.AbortWithStatusJSON(status, Envelope{Error: Problem{Code: code, Message: message, Details: details}})
}

// Internal answers 500 internal_error with message. err is attached to the
// log line only and never reaches the client.
func Internal(c *gin.Context, err error, message string) {
	if err != nil {
		_ = c.Error(err)
	}
	Error(c, http.StatusInternalServerError, "internal_error", message, nil)
}

func logProblem(c *gin.Context, status int, code, message string) {
	fields := map[string]any{
		"status":  status,
		"code":    code,
		"message": message,
	}
	if c.Request != nil {
		fields["method"] = c.Request.Method
		fields["path"] = c.Request.URL.Path
	}
	if rid := c.GetString("requestId"); rid != "" {
		fields["request_id"] = rid
	}
	if uid := c.GetString("userId"); uid != "" {
		fields["user_id"] = uid
		fields["is_guest"] = c.GetBool("isGuest")
	}
	if errs := c.Errors.Last(); errs != nil {
		fields["cause"] = errs.Error()
	}
	if status >= http.StatusInternalServerError {
		telemetry.Error("http.error", fields)
		return
	}
	telemetry.Warn("http.error", fields)
}
