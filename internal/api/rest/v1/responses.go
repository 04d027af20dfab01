package v1

import (
	"time"

	"github.com/gin-gonic/gin"
)

// Envelope is the uniform JSON response body. Every endpoint answers with
// either data or an error message, never both.
type Envelope struct {
	Success   bool        `json:"success"`
	Data      interface{} `json:"data,omitempty"`
	Error     string      `json:"error,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

func respondData(ctx *gin.Context, status int, data interface{}) {
	ctx.JSON(status, Envelope{
		Success:   true,
		Data:      data,
		Timestamp: time.Now().UTC(),
	})
}

func respondError(ctx *gin.Context, status int, message string) {
	ctx.JSON(status, Envelope{
		Success:   false,
		Error:     message,
		Timestamp: time.Now().UTC(),
	})
}

func abortError(ctx *gin.Context, status int, message string) {
	ctx.AbortWithStatusJSON(status, Envelope{
		Success:   false,
		Error:     message,
		Timestamp: time.Now().UTC(),
	})
}
