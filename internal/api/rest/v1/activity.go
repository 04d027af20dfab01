package v1

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/domain/system"
	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/pkg/logger"
)

// RecordActivity appends an audit-trail entry for every successful mutating
// request of an authenticated caller. Failed requests and reads are not
// recorded.
func RecordActivity(repo system.ActivityRepository, logger logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		switch c.Request.Method {
		case http.MethodPost, http.MethodPut, http.MethodDelete:
		default:
			return
		}
		if c.Writer.Status() >= http.StatusBadRequest {
			return
		}

		claims, ok := claimsFromContext(c)
		if !ok {
			return
		}

		entry := &system.ActivityLog{
			ID:        uuid.New().String(),
			UserID:    claims.UserID,
			Action:    fmt.Sprintf("%s %s", c.Request.Method, c.FullPath()),
			Detail:    fmt.Sprintf("status=%d", c.Writer.Status()),
			CreatedAt: time.Now(),
		}
		if err := repo.Create(c.Request.Context(), entry); err != nil {
			logger.Warn("failed to record activity: ", err)
		}
	}
}
