package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dpointtt/sun-class-app/internal/dto"
	"github.com/dpointtt/sun-class-app/internal/models"
	"github.com/dpointtt/sun-class-app/pkg/response"
)

type profileWorkflow interface {
	Get(ctx context.Context, id models.Identity) (*models.UserProfile, error)
	Edit(ctx context.Context, id models.Identity, form dto.EditProfileForm) (*models.UserProfile, error)
}

// UserHandler serves the caller's own profile.
type UserHandler struct {
	profiles profileWorkflow
	fail     failureRenderer
}

// NewUserHandler constructs UserHandler.
func NewUserHandler(profiles profileWorkflow, fail failureRenderer) *UserHandler {
	return &UserHandler{profiles: profiles, fail: fail}
}

// Profile godoc
// @Summary Current profile
// @Tags Profile
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 303 "redirect to login"
// @Router /profile [get]
func (h *UserHandler) Profile(c *gin.Context) {
	profile, err := h.profiles.Get(c.Request.Context(), identity(c))
	if err != nil {
		h.fail.Fail(c, err)
		return
	}
	response.JSON(c, http.StatusOK, profile)
}

// EditProfile godoc
// @Summary Edit profile
// @Tags Profile
// @Accept x-www-form-urlencoded
// @Produce json
// @Param name formData string true "Name"
// @Param avatar_url formData string false "Avatar URL"
// @Success 200 {object} response.ActionResult
// @Failure 400 {object} response.ActionResult
// @Router /profile [post]
func (h *UserHandler) EditProfile(c *gin.Context) {
	var form dto.EditProfileForm
	if err := bindForm(c, &form); err != nil {
		h.fail.Fail(c, err)
		return
	}
	profile, err := h.profiles.Edit(c.Request.Context(), identity(c), form)
	if err != nil {
		h.fail.Fail(c, err)
		return
	}
	response.Action(c, profile)
}
