package handler

import (
	"errors"
	"mime"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dpointtt/sun-class-app/internal/middleware"
	"github.com/dpointtt/sun-class-app/internal/models"
	"github.com/dpointtt/sun-class-app/pkg/apiclient"
	appErrors "github.com/dpointtt/sun-class-app/pkg/errors"
)

// failureRenderer turns workflow errors into responses.
type failureRenderer interface {
	Fail(c *gin.Context, err error)
}

func identity(c *gin.Context) models.Identity {
	return middleware.CurrentIdentity(c)
}

// classID returns the class id already validated by the class identity gate.
func classID(c *gin.Context) int64 {
	return identity(c).ClassID
}

func pathID(c *gin.Context, name, what string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, appErrors.Clone(appErrors.ErrNotFound, what+" not found")
	}
	return id, nil
}

func bindForm(c *gin.Context, dst interface{}) error {
	if err := c.ShouldBind(dst); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation, "Invalid form submission.")
	}
	return nil
}

// uploadedFiles collects the files posted under the files field. A request that is not
// multipart carries no files. The returned cleanup closes every opened part.
func uploadedFiles(c *gin.Context) ([]models.UploadFile, func(), error) {
	form, err := c.MultipartForm()
	if err != nil {
		if errors.Is(err, http.ErrNotMultipart) {
			return nil, func() {}, nil
		}
		return nil, func() {}, appErrors.Wrap(err, appErrors.ErrValidation, "Could not read the uploaded files.")
	}

	headers := form.File[apiclient.FilesField]
	opened := make([]multipart.File, 0, len(headers))
	cleanup := func() {
		for _, f := range opened {
			_ = f.Close()
		}
	}

	files := make([]models.UploadFile, 0, len(headers))
	for _, header := range headers {
		f, err := header.Open()
		if err != nil {
			cleanup()
			return nil, func() {}, appErrors.Wrap(err, appErrors.ErrValidation, "Could not read the uploaded files.")
		}
		opened = append(opened, f)
		files = append(files, models.UploadFile{
			FileName:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Content:     f,
		})
	}
	return files, cleanup, nil
}

// attachment streams a file to the browser as a download.
func attachment(c *gin.Context, download *models.Download) {
	defer download.Body.Close()

	contentType := download.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	name := strings.TrimSpace(download.FileName)
	if name == "" {
		name = "download"
	}
	size := download.Size
	if size <= 0 {
		size = -1
	}

	c.DataFromReader(http.StatusOK, size, contentType, download.Body, map[string]string{
		"Content-Disposition": mime.FormatMediaType("attachment", map[string]string{"filename": name}),
		"Cache-Control":       "no-store",
	})
}
