package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dpointtt/sun-class-app/internal/models"
	appErrors "github.com/dpointtt/sun-class-app/pkg/errors"
	"github.com/dpointtt/sun-class-app/pkg/response"
	"github.com/dpointtt/sun-class-app/pkg/session"
)

// ContextIdentityKey is the gin context key storing the caller's identity.
const ContextIdentityKey = "identity"

type authenticator interface {
	Authenticate(ctx context.Context, credential string) (models.Identity, error)
	Expire(ctx context.Context, credential string)
}

// SessionGuard ties the browser session cookie to the session workflow.
type SessionGuard struct {
	store     *session.Store
	auth      authenticator
	loginPath string
}

// NewSessionGuard constructs a SessionGuard. loginPath defaults to /login.
func NewSessionGuard(store *session.Store, auth authenticator, loginPath string) *SessionGuard {
	if loginPath == "" {
		loginPath = "/login"
	}
	return &SessionGuard{store: store, auth: auth, loginPath: loginPath}
}

// Require admits requests whose stored credential still identifies somebody and
// redirects everyone else to the login surface.
func (g *SessionGuard) Require() gin.HandlerFunc {
	return func(c *gin.Context) {
		credential := g.store.Credential(c.Request)
		if credential == "" {
			g.redirect(c)
			return
		}

		id, err := g.auth.Authenticate(c.Request.Context(), credential)
		if err != nil {
			if appErrors.IsSessionExpired(err) {
				_ = g.store.Evict(c.Writer, c.Request)
				g.redirect(c)
				return
			}
			_ = c.Error(err)
			response.Error(c, err)
			c.Abort()
			return
		}

		c.Set(ContextIdentityKey, id)
		c.Next()
	}
}

// Fail renders a workflow failure. A credential the collaborator no longer accepts is
// discarded and the caller is sent to the login surface; everything else is reported as
// an action result or a page error depending on the request method.
func (g *SessionGuard) Fail(c *gin.Context, err error) {
	_ = c.Error(err)
	if appErrors.IsSessionExpired(err) {
		if credential := g.store.Credential(c.Request); credential != "" {
			g.auth.Expire(c.Request.Context(), credential)
		}
		_ = g.store.Evict(c.Writer, c.Request)
		g.redirect(c)
		return
	}
	if c.Request.Method == http.MethodGet {
		response.Error(c, err)
	} else {
		response.ActionError(c, err)
	}
	c.Abort()
}

// LoginPath returns where unauthenticated callers are sent.
func (g *SessionGuard) LoginPath() string {
	return g.loginPath
}

func (g *SessionGuard) redirect(c *gin.Context) {
	c.Redirect(http.StatusSeeOther, g.loginPath)
	c.Abort()
}

// CurrentIdentity returns the identity stored by the session guard and class gate.
func CurrentIdentity(c *gin.Context) models.Identity {
	value, exists := c.Get(ContextIdentityKey)
	if !exists {
		return models.Identity{}
	}
	id, ok := value.(models.Identity)
	if !ok {
		return models.Identity{}
	}
	return id
}
