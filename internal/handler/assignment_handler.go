package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dpointtt/sun-class-app/internal/dto"
	"github.com/dpointtt/sun-class-app/internal/models"
	appErrors "github.com/dpointtt/sun-class-app/pkg/errors"
	"github.com/dpointtt/sun-class-app/pkg/response"
)

type assignmentWorkflow interface {
	Create(ctx context.Context, id models.Identity, classID int64, form dto.CreateAssignmentForm) (*models.CreatedAssignment, error)
	Load(ctx context.Context, id models.Identity, classID, assignmentID int64) (*models.AssignmentData, error)
}

type submissionWorkflow interface {
	Upload(ctx context.Context, id models.Identity, classID, assignmentID int64, files []models.UploadFile) error
	DeleteFile(ctx context.Context, id models.Identity, classID, assignmentID, fileID int64) error
	Cancel(ctx context.Context, id models.Identity, classID, assignmentID int64) error
	List(ctx context.Context, id models.Identity, classID int64) ([]models.SubmissionListItem, error)
	Get(ctx context.Context, id models.Identity, classID, submissionID int64) (*models.SubmissionDetail, error)
	DownloadFile(ctx context.Context, id models.Identity, classID, fileID int64) (*models.Download, error)
}

type materialWorkflow interface {
	Save(ctx context.Context, id models.Identity, classID, assignmentID int64, files []models.UploadFile) error
	Download(ctx context.Context, id models.Identity, classID, fileID int64) (*models.Download, error)
}

// AssignmentHandler serves the assignment page and the student's submission actions.
type AssignmentHandler struct {
	assignments assignmentWorkflow
	submissions submissionWorkflow
	materials   materialWorkflow
	fail        failureRenderer
}

// NewAssignmentHandler constructs AssignmentHandler.
func NewAssignmentHandler(assignments assignmentWorkflow, submissions submissionWorkflow, materials materialWorkflow, fail failureRenderer) *AssignmentHandler {
	return &AssignmentHandler{assignments: assignments, submissions: submissions, materials: materials, fail: fail}
}

// Create godoc
// @Summary Create assignment
// @Tags Assignments
// @Accept x-www-form-urlencoded
// @Produce json
// @Param class_id path int true "Class ID"
// @Param title formData string true "Title"
// @Param description formData string false "Description"
// @Param due_date formData string true "Due date (2025-01-10T23:59)"
// @Param points formData string true "Points"
// @Success 200 {object} response.ActionResult
// @Failure 400 {object} response.ActionResult
// @Failure 403 {object} response.ActionResult
// @Router /class/{class_id}/assignments [post]
func (h *AssignmentHandler) Create(c *gin.Context) {
	var form dto.CreateAssignmentForm
	if err := bindForm(c, &form); err != nil {
		h.fail.Fail(c, err)
		return
	}
	created, err := h.assignments.Create(c.Request.Context(), identity(c), classID(c), form)
	if err != nil {
		h.fail.Fail(c, err)
		return
	}
	response.Action(c, created)
}

// Show godoc
// @Summary Assignment page
// @Description Assignment with materials, the caller's submission files, status and grade
// @Tags Assignments
// @Produce json
// @Param class_id path int true "Class ID"
// @Param assignment_id path int true "Assignment ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /class/{class_id}/assignment/{assignment_id} [get]
func (h *AssignmentHandler) Show(c *gin.Context) {
	assignmentID, err := pathID(c, "assignment_id", "Assignment")
	if err != nil {
		h.fail.Fail(c, err)
		return
	}
	data, err := h.assignments.Load(c.Request.Context(), identity(c), classID(c), assignmentID)
	if err != nil {
		h.fail.Fail(c, err)
		return
	}
	response.JSON(c, http.StatusOK, data)
}

// UploadFiles godoc
// @Summary Upload submission files
// @Description Attach files to the caller's submission. Posting no files submits as is.
// @Tags Submissions
// @Accept multipart/form-data
// @Produce json
// @Param class_id path int true "Class ID"
// @Param assignment_id path int true "Assignment ID"
// @Param files formData file false "Files"
// @Success 200 {object} response.ActionResult
// @Failure 404 {object} response.ActionResult
// @Router /class/{class_id}/assignment/{assignment_id}/files [post]
func (h *AssignmentHandler) UploadFiles(c *gin.Context) {
	assignmentID, err := pathID(c, "assignment_id", "Assignment")
	if err != nil {
		h.fail.Fail(c, err)
		return
	}
	files, cleanup, err := uploadedFiles(c)
	if err != nil {
		h.fail.Fail(c, err)
		return
	}
	defer cleanup()

	if err := h.submissions.Upload(c.Request.Context(), identity(c), classID(c), assignmentID, files); err != nil {
		h.fail.Fail(c, err)
		return
	}
	response.Action(c, nil)
}

// DeleteFile godoc
// @Summary Delete a submission file
// @Tags Submissions
// @Accept x-www-form-urlencoded
// @Produce json
// @Param class_id path int true "Class ID"
// @Param assignment_id path int true "Assignment ID"
// @Param fileId formData int true "File ID"
// @Success 200 {object} response.ActionResult
// @Failure 400 {object} response.ActionResult
// @Failure 404 {object} response.ActionResult
// @Router /class/{class_id}/assignment/{assignment_id}/files/delete [post]
func (h *AssignmentHandler) DeleteFile(c *gin.Context) {
	assignmentID, err := pathID(c, "assignment_id", "Assignment")
	if err != nil {
		h.fail.Fail(c, err)
		return
	}
	var form dto.DeleteFileForm
	if err := bindForm(c, &form); err != nil {
		h.fail.Fail(c, err)
		return
	}
	fileID, err := strconv.ParseInt(strings.TrimSpace(form.FileID), 10, 64)
	if err != nil || fileID <= 0 {
		h.fail.Fail(c, appErrors.Clone(appErrors.ErrValidation, "Choose a file to delete."))
		return
	}

	if err := h.submissions.DeleteFile(c.Request.Context(), identity(c), classID(c), assignmentID, fileID); err != nil {
		h.fail.Fail(c, err)
		return
	}
	response.Action(c, nil)
}

// CancelSubmission godoc
// @Summary Cancel submission
// @Description Withdraw the caller's submission and discard its files
// @Tags Submissions
// @Produce json
// @Param class_id path int true "Class ID"
// @Param assignment_id path int true "Assignment ID"
// @Success 200 {object} response.ActionResult
// @Failure 404 {object} response.ActionResult
// @Failure 409 {object} response.ActionResult
// @Router /class/{class_id}/assignment/{assignment_id}/cancel [post]
func (h *AssignmentHandler) CancelSubmission(c *gin.Context) {
	assignmentID, err := pathID(c, "assignment_id", "Assignment")
	if err != nil {
		h.fail.Fail(c, err)
		return
	}
	if err := h.submissions.Cancel(c.Request.Context(), identity(c), classID(c), assignmentID); err != nil {
		h.fail.Fail(c, err)
		return
	}
	response.Action(c, nil)
}

// SaveMaterials godoc
// @Summary Save materials
// @Description Attach reference files to an assignment
// @Tags Assignments
// @Accept multipart/form-data
// @Produce json
// @Param class_id path int true "Class ID"
// @Param assignment_id path int true "Assignment ID"
// @Param files formData file true "Files"
// @Success 200 {object} response.ActionResult
// @Failure 400 {object} response.ActionResult
// @Failure 403 {object} response.ActionResult
// @Router /class/{class_id}/assignment/{assignment_id}/materials [post]
func (h *AssignmentHandler) SaveMaterials(c *gin.Context) {
	assignmentID, err := pathID(c, "assignment_id", "Assignment")
	if err != nil {
		h.fail.Fail(c, err)
		return
	}
	files, cleanup, err := uploadedFiles(c)
	if err != nil {
		h.fail.Fail(c, err)
		return
	}
	defer cleanup()

	if err := h.materials.Save(c.Request.Context(), identity(c), classID(c), assignmentID, files); err != nil {
		h.fail.Fail(c, err)
		return
	}
	response.Action(c, nil)
}
