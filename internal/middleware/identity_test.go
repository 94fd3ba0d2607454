package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/dpointtt/sun-class-app/internal/models"
	appErrors "github.com/dpointtt/sun-class-app/pkg/errors"
)

type fakeResolver struct {
	teacher bool
	err     error
	calls   int
}

func (f *fakeResolver) Resolve(ctx context.Context, base models.Identity, classID int64) (models.Identity, error) {
	f.calls++
	base.ClassID = classID
	if f.err != nil {
		return base, f.err
	}
	base.IsTeacher = f.teacher
	base.Resolved = true
	return base, nil
}

func classRouter(resolver *fakeResolver, seen *models.Identity) *gin.Engine {
	gin.SetMode(gin.TestMode)
	guard := NewSessionGuard(newStore(), &fakeAuth{}, "")
	router := gin.New()
	router.GET("/class/:class_id", func(c *gin.Context) {
		c.Set(ContextIdentityKey, models.Identity{Credential: "token-1"})
		c.Next()
	}, ClassIdentity(resolver, guard), func(c *gin.Context) {
		*seen = CurrentIdentity(c)
		c.Status(http.StatusOK)
	})
	return router
}

func TestClassIdentityResolvesRole(t *testing.T) {
	var seen models.Identity
	router := classRouter(&fakeResolver{teacher: true}, &seen)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/class/3", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, seen.TeacherOf(3))
}

func TestClassIdentityStopsOnFailure(t *testing.T) {
	var seen models.Identity
	resolver := &fakeResolver{err: appErrors.Clone(appErrors.ErrForbidden, "Not a member")}
	router := classRouter(resolver, &seen)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/class/3", nil))

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, seen.Authenticated())
}

func TestClassIdentityRejectsBadClassID(t *testing.T) {
	var seen models.Identity
	resolver := &fakeResolver{}
	router := classRouter(resolver, &seen)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/class/abc", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Zero(t, resolver.calls)
}
