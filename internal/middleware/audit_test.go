package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dpointtt/sun-class-app/internal/models"
	appErrors "github.com/dpointtt/sun-class-app/pkg/errors"
	"github.com/dpointtt/sun-class-app/pkg/middleware/requestid"
)

type fakeRecorder struct{ entries []models.AuditLog }

func (f *fakeRecorder) Record(ctx context.Context, entry models.AuditLog) {
	f.entries = append(f.entries, entry)
}

func TestAuditRecordsOutcome(t *testing.T) {
	gin.SetMode(gin.TestMode)
	recorder := &fakeRecorder{}
	router := gin.New()
	router.Use(requestid.Middleware())
	router.POST("/class/:class_id/submissions/:submission_id/grade", func(c *gin.Context) {
		c.Set(ContextIdentityKey, models.Identity{Credential: "t", UserID: "1"})
		c.Next()
	}, Audit(recorder, models.AuditActionGrade), func(c *gin.Context) {
		switch c.Query("case") {
		case "blank":
			c.Status(http.StatusNoContent)
		case "fail":
			err := appErrors.Clone(appErrors.ErrUnprocessable, "Grade out of range")
			_ = c.Error(err)
			c.JSON(err.Status, gin.H{"success": false})
		default:
			c.JSON(http.StatusOK, gin.H{"success": true})
		}
	})

	for _, q := range []string{"ok", "blank", "fail"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/class/3/submissions/5/grade?case="+q, nil))
	}

	require.Len(t, recorder.entries, 3)
	assert.Equal(t, models.AuditOutcomeSuccess, recorder.entries[0].Outcome)
	assert.Equal(t, models.AuditOutcomeNoop, recorder.entries[1].Outcome)
	assert.Equal(t, models.AuditOutcomeFailure, recorder.entries[2].Outcome)
	assert.Equal(t, "Grade out of range", recorder.entries[2].Message)
	assert.Equal(t, "3", recorder.entries[0].ClassID)
	assert.Equal(t, "1", recorder.entries[0].UserID)
	assert.NotEmpty(t, recorder.entries[0].RequestID)
}
