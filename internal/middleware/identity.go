package middleware

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dpointtt/sun-class-app/internal/models"
	appErrors "github.com/dpointtt/sun-class-app/pkg/errors"
)

// ClassIDParam is the route parameter naming the class.
const ClassIDParam = "class_id"

type roleResolver interface {
	Resolve(ctx context.Context, base models.Identity, classID int64) (models.Identity, error)
}

// ClassIdentity resolves the caller's role in the class named by the route before any
// class-scoped handler runs. A failed resolution stops the request.
func ClassIdentity(resolver roleResolver, guard *SessionGuard) gin.HandlerFunc {
	return func(c *gin.Context) {
		classID, err := strconv.ParseInt(c.Param(ClassIDParam), 10, 64)
		if err != nil || classID <= 0 {
			guard.Fail(c, appErrors.Clone(appErrors.ErrNotFound, "Class not found"))
			return
		}

		id, err := resolver.Resolve(c.Request.Context(), CurrentIdentity(c), classID)
		c.Set(ContextIdentityKey, id)
		if err != nil {
			guard.Fail(c, err)
			return
		}
		c.Next()
	}
}
