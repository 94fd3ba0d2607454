package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dpointtt/sun-class-app/internal/dto"
	"github.com/dpointtt/sun-class-app/internal/models"
	"github.com/dpointtt/sun-class-app/pkg/response"
)

type classWorkflow interface {
	Create(ctx context.Context, id models.Identity, form dto.CreateClassForm) (*models.CreatedClass, error)
	Join(ctx context.Context, id models.Identity, form dto.JoinClassForm) error
	Load(ctx context.Context, id models.Identity, classID int64) (*models.ClassPage, error)
	ListMine(ctx context.Context, id models.Identity) (*models.ClassList, error)
}

// ClassHandler manages HTTP endpoints for classes.
type ClassHandler struct {
	classes classWorkflow
	fail    failureRenderer
}

// NewClassHandler constructs ClassHandler.
func NewClassHandler(classes classWorkflow, fail failureRenderer) *ClassHandler {
	return &ClassHandler{classes: classes, fail: fail}
}

// Home godoc
// @Summary Own classes
// @Description Classes the caller teaches and the ones they are enrolled in
// @Tags Classes
// @Produce json
// @Success 200 {object} response.Envelope
// @Router / [get]
func (h *ClassHandler) Home(c *gin.Context) {
	list, err := h.classes.ListMine(c.Request.Context(), identity(c))
	if err != nil {
		h.fail.Fail(c, err)
		return
	}
	response.JSON(c, http.StatusOK, list)
}

// Create godoc
// @Summary Create class
// @Tags Classes
// @Accept x-www-form-urlencoded
// @Produce json
// @Param title formData string true "Title"
// @Param description formData string false "Description"
// @Success 200 {object} response.ActionResult
// @Failure 400 {object} response.ActionResult
// @Router /actions/create-class [post]
func (h *ClassHandler) Create(c *gin.Context) {
	var form dto.CreateClassForm
	if err := bindForm(c, &form); err != nil {
		h.fail.Fail(c, err)
		return
	}
	created, err := h.classes.Create(c.Request.Context(), identity(c), form)
	if err != nil {
		h.fail.Fail(c, err)
		return
	}
	response.Action(c, created)
}

// Join godoc
// @Summary Join class
// @Tags Classes
// @Accept x-www-form-urlencoded
// @Produce json
// @Param joinCode formData string true "Join code"
// @Success 200 {object} response.ActionResult
// @Failure 404 {object} response.ActionResult
// @Failure 409 {object} response.ActionResult
// @Router /actions/join-class [post]
func (h *ClassHandler) Join(c *gin.Context) {
	var form dto.JoinClassForm
	if err := bindForm(c, &form); err != nil {
		h.fail.Fail(c, err)
		return
	}
	if err := h.classes.Join(c.Request.Context(), identity(c), form); err != nil {
		h.fail.Fail(c, err)
		return
	}
	response.Action(c, nil)
}

// Show godoc
// @Summary Class page
// @Tags Classes
// @Produce json
// @Param class_id path int true "Class ID"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /class/{class_id} [get]
func (h *ClassHandler) Show(c *gin.Context) {
	page, err := h.classes.Load(c.Request.Context(), identity(c), classID(c))
	if err != nil {
		h.fail.Fail(c, err)
		return
	}
	response.JSON(c, http.StatusOK, page)
}
