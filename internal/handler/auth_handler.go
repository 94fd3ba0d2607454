package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/dpointtt/sun-class-app/internal/dto"
	"github.com/dpointtt/sun-class-app/internal/models"
	appErrors "github.com/dpointtt/sun-class-app/pkg/errors"
	"github.com/dpointtt/sun-class-app/pkg/response"
	"github.com/dpointtt/sun-class-app/pkg/session"
)

type sessionWorkflow interface {
	Login(ctx context.Context, form dto.LoginForm) (string, *models.SessionResult, error)
	Register(ctx context.Context, form dto.RegisterForm) (string, *models.SessionResult, error)
	Logout(ctx context.Context, id models.Identity) error
}

// AuthHandler signs browsers in and out.
type AuthHandler struct {
	sessions sessionWorkflow
	store    *session.Store
	fail     failureRenderer
}

// NewAuthHandler creates a new handler.
func NewAuthHandler(sessions sessionWorkflow, store *session.Store, fail failureRenderer) *AuthHandler {
	return &AuthHandler{sessions: sessions, store: store, fail: fail}
}

// Login godoc
// @Summary Sign in
// @Description Exchange email and password for a session cookie
// @Tags Session
// @Accept x-www-form-urlencoded
// @Produce json
// @Param email formData string true "Email"
// @Param password formData string true "Password"
// @Success 200 {object} response.ActionResult
// @Failure 400 {object} response.ActionResult
// @Failure 401 {object} response.ActionResult
// @Router /login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var form dto.LoginForm
	if err := bindForm(c, &form); err != nil {
		h.fail.Fail(c, err)
		return
	}
	credential, result, err := h.sessions.Login(c.Request.Context(), form)
	if err != nil {
		h.fail.Fail(c, err)
		return
	}
	h.start(c, credential, result)
}

// Register godoc
// @Summary Create an account
// @Description Register and sign in
// @Tags Session
// @Accept x-www-form-urlencoded
// @Produce json
// @Param name formData string true "Name"
// @Param email formData string true "Email"
// @Param password formData string true "Password"
// @Success 200 {object} response.ActionResult
// @Failure 400 {object} response.ActionResult
// @Failure 409 {object} response.ActionResult
// @Router /register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var form dto.RegisterForm
	if err := bindForm(c, &form); err != nil {
		h.fail.Fail(c, err)
		return
	}
	credential, result, err := h.sessions.Register(c.Request.Context(), form)
	if err != nil {
		h.fail.Fail(c, err)
		return
	}
	h.start(c, credential, result)
}

// Logout godoc
// @Summary Sign out
// @Description End the Classroom API session and discard the session cookie
// @Tags Session
// @Produce json
// @Success 200 {object} response.ActionResult
// @Router /logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	credential := h.store.Credential(c.Request)
	_ = h.store.Evict(c.Writer, c.Request)
	if credential == "" {
		response.Action(c, nil)
		return
	}
	if err := h.sessions.Logout(c.Request.Context(), models.Identity{Credential: credential}); err != nil {
		_ = c.Error(err)
		response.ActionError(c, err)
		return
	}
	response.Action(c, nil)
}

func (h *AuthHandler) start(c *gin.Context, credential string, result *models.SessionResult) {
	if err := h.store.SetCredential(c.Writer, c.Request, credential); err != nil {
		h.fail.Fail(c, appErrors.Wrap(err, appErrors.ErrInternal, "Could not start the session"))
		return
	}
	response.Action(c, result)
}
