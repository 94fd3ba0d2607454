package handler

import (
	"github.com/gin-gonic/gin"
)

// FileHandler streams submission and material files.
type FileHandler struct {
	submissions submissionWorkflow
	materials   materialWorkflow
	fail        failureRenderer
}

// NewFileHandler constructs FileHandler.
func NewFileHandler(submissions submissionWorkflow, materials materialWorkflow, fail failureRenderer) *FileHandler {
	return &FileHandler{submissions: submissions, materials: materials, fail: fail}
}

// SubmissionFile godoc
// @Summary Download a submission file
// @Tags Files
// @Produce octet-stream
// @Param class_id path int true "Class ID"
// @Param file_id path int true "File ID"
// @Success 200 {file} file
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /class/{class_id}/files/submission/{file_id} [get]
func (h *FileHandler) SubmissionFile(c *gin.Context) {
	fileID, err := pathID(c, "file_id", "File")
	if err != nil {
		h.fail.Fail(c, err)
		return
	}
	download, err := h.submissions.DownloadFile(c.Request.Context(), identity(c), classID(c), fileID)
	if err != nil {
		h.fail.Fail(c, err)
		return
	}
	attachment(c, download)
}

// MaterialFile godoc
// @Summary Download a material file
// @Tags Files
// @Produce octet-stream
// @Param class_id path int true "Class ID"
// @Param file_id path int true "File ID"
// @Success 200 {file} file
// @Failure 404 {object} response.Envelope
// @Router /class/{class_id}/files/material/{file_id} [get]
func (h *FileHandler) MaterialFile(c *gin.Context) {
	fileID, err := pathID(c, "file_id", "File")
	if err != nil {
		h.fail.Fail(c, err)
		return
	}
	download, err := h.materials.Download(c.Request.Context(), identity(c), classID(c), fileID)
	if err != nil {
		h.fail.Fail(c, err)
		return
	}
	attachment(c, download)
}
