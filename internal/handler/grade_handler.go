package handler

import (
	"context"
	"mime"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dpointtt/sun-class-app/internal/dto"
	"github.com/dpointtt/sun-class-app/internal/models"
	"github.com/dpointtt/sun-class-app/internal/service"
	appErrors "github.com/dpointtt/sun-class-app/pkg/errors"
	"github.com/dpointtt/sun-class-app/pkg/response"
)

type gradingWorkflow interface {
	Grade(ctx context.Context, id models.Identity, classID, submissionID int64, raw string) (bool, error)
	CancelGrade(ctx context.Context, id models.Identity, classID, submissionID int64) error
}

type gradebookExporter interface {
	Gradebook(ctx context.Context, id models.Identity, classID int64, rawFormat string) (*service.ExportFile, error)
}

// GradeHandler serves the teacher's submissions views and grading actions.
type GradeHandler struct {
	submissions submissionWorkflow
	grading     gradingWorkflow
	export      gradebookExporter
	fail        failureRenderer
}

// NewGradeHandler constructs GradeHandler.
func NewGradeHandler(submissions submissionWorkflow, grading gradingWorkflow, export gradebookExporter, fail failureRenderer) *GradeHandler {
	return &GradeHandler{submissions: submissions, grading: grading, export: export, fail: fail}
}

// ListSubmissions godoc
// @Summary Class submissions
// @Description Every submission of the class, most recently submitted first
// @Tags Grading
// @Produce json
// @Param class_id path int true "Class ID"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /class/{class_id}/submissions [get]
func (h *GradeHandler) ListSubmissions(c *gin.Context) {
	items, err := h.submissions.List(c.Request.Context(), identity(c), classID(c))
	if err != nil {
		h.fail.Fail(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items)
}

// ShowSubmission godoc
// @Summary Submission detail
// @Tags Grading
// @Produce json
// @Param class_id path int true "Class ID"
// @Param submission_id path int true "Submission ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /class/{class_id}/submissions/{submission_id} [get]
func (h *GradeHandler) ShowSubmission(c *gin.Context) {
	submissionID, err := pathID(c, "submission_id", "Submission")
	if err != nil {
		h.fail.Fail(c, err)
		return
	}
	detail, err := h.submissions.Get(c.Request.Context(), identity(c), classID(c), submissionID)
	if err != nil {
		h.fail.Fail(c, err)
		return
	}
	response.JSON(c, http.StatusOK, detail)
}

// Grade godoc
// @Summary Grade submission
// @Description A blank grade changes nothing and answers 204
// @Tags Grading
// @Accept x-www-form-urlencoded
// @Produce json
// @Param class_id path int true "Class ID"
// @Param submission_id path int true "Submission ID"
// @Param grade formData string false "Grade"
// @Success 200 {object} response.ActionResult
// @Success 204 "blank grade"
// @Failure 400 {object} response.ActionResult
// @Failure 422 {object} response.ActionResult
// @Router /class/{class_id}/submissions/{submission_id}/grade [post]
func (h *GradeHandler) Grade(c *gin.Context) {
	submissionID, err := pathID(c, "submission_id", "Submission")
	if err != nil {
		h.fail.Fail(c, err)
		return
	}
	var form dto.GradeForm
	if err := bindForm(c, &form); err != nil {
		h.fail.Fail(c, err)
		return
	}
	applied, err := h.grading.Grade(c.Request.Context(), identity(c), classID(c), submissionID, form.Grade)
	if err != nil {
		h.fail.Fail(c, err)
		return
	}
	if !applied {
		response.NoContent(c)
		return
	}
	response.Action(c, nil)
}

// CancelGrade godoc
// @Summary Cancel grade
// @Description Clear the grade, grading time and grader of a submission
// @Tags Grading
// @Produce json
// @Param class_id path int true "Class ID"
// @Param submission_id path int true "Submission ID"
// @Success 200 {object} response.ActionResult
// @Failure 404 {object} response.ActionResult
// @Router /class/{class_id}/submissions/{submission_id}/cancel-grade [post]
func (h *GradeHandler) CancelGrade(c *gin.Context) {
	submissionID, err := pathID(c, "submission_id", "Submission")
	if err != nil {
		h.fail.Fail(c, err)
		return
	}
	if err := h.grading.CancelGrade(c.Request.Context(), identity(c), classID(c), submissionID); err != nil {
		h.fail.Fail(c, err)
		return
	}
	response.Action(c, nil)
}

// Export godoc
// @Summary Export gradebook
// @Tags Grading
// @Produce text/csv
// @Produce application/pdf
// @Param class_id path int true "Class ID"
// @Param format query string false "csv or pdf"
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Router /class/{class_id}/submissions/export [get]
func (h *GradeHandler) Export(c *gin.Context) {
	var query dto.ExportQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.fail.Fail(c, appErrors.Wrap(err, appErrors.ErrValidation, "Invalid export request."))
		return
	}
	file, err := h.export.Gradebook(c.Request.Context(), identity(c), classID(c), query.Format)
	if err != nil {
		h.fail.Fail(c, err)
		return
	}
	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": file.FileName}))
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, file.ContentType, file.Body)
}
