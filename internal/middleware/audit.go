package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dpointtt/sun-class-app/internal/models"
	appErrors "github.com/dpointtt/sun-class-app/pkg/errors"
	"github.com/dpointtt/sun-class-app/pkg/middleware/requestid"
)

type auditRecorder interface {
	Record(ctx context.Context, entry models.AuditLog)
}

// Audit records the outcome of a form action after the handler has answered.
func Audit(recorder auditRecorder, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		if recorder == nil {
			return
		}

		status := c.Writer.Status()
		entry := models.AuditLog{
			UserID:    CurrentIdentity(c).UserID,
			Action:    action,
			ClassID:   c.Param(ClassIDParam),
			Outcome:   outcomeFor(status),
			RequestID: requestid.Value(c),
			IPAddress: c.ClientIP(),
			UserAgent: c.GetHeader("User-Agent"),
		}
		if last := c.Errors.Last(); last != nil {
			entry.Message = appErrors.FromError(last.Err).Message
		} else {
			entry.Message = strconv.Itoa(status)
		}

		recorder.Record(context.WithoutCancel(c.Request.Context()), entry)
	}
}

func outcomeFor(status int) string {
	switch {
	case status == http.StatusNoContent:
		return models.AuditOutcomeNoop
	case status < http.StatusBadRequest && status != http.StatusSeeOther:
		return models.AuditOutcomeSuccess
	default:
		return models.AuditOutcomeFailure
	}
}
