package stubapi

import (
	"errors"
	"mime"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dpointtt/sun-class-app/internal/models"
	appErrors "github.com/dpointtt/sun-class-app/pkg/errors"
)

// filesField is the multipart field carrying uploads.
const filesField = "files"

// Handler serves the Classroom API routes.
type Handler struct {
	store      *Store
	tokens     *Tokens
	cookieName string
	secure     bool
	logger     *zap.Logger
}

func (h *Handler) fail(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	if appErr.Kind == appErrors.KindInternal {
		h.logger.Error("stub api failure", zap.String("path", c.FullPath()), zap.Error(err))
	}
	c.String(appErr.Status, appErr.Message)
	c.Abort()
}

func (h *Handler) param(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.String(http.StatusNotFound, "Not found")
		c.Abort()
		return 0, false
	}
	return id, true
}

func (h *Handler) params(c *gin.Context, names ...string) ([]int64, bool) {
	ids := make([]int64, 0, len(names))
	for _, name := range names {
		id, ok := h.param(c, name)
		if !ok {
			return nil, false
		}
		ids = append(ids, id)
	}
	return ids, true
}

func (h *Handler) bind(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.String(http.StatusBadRequest, "Malformed JSON body")
		c.Abort()
		return false
	}
	return true
}

func (h *Handler) setCredential(c *gin.Context, userID int64) bool {
	token, expires, err := h.tokens.Issue(userID)
	if err != nil {
		h.fail(c, appErrors.Wrap(err, appErrors.ErrInternal, "Could not issue a credential"))
		return false
	}
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     h.cookieName,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return true
}

// Register handles POST /auth/register.
func (h *Handler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if !h.bind(c, &req) {
		return
	}
	resp, err := h.store.Register(req.Name, req.Email, req.Password)
	if err != nil {
		h.fail(c, err)
		return
	}
	if h.setCredential(c, resp.UserID) {
		c.JSON(http.StatusCreated, resp)
	}
}

// Login handles POST /auth/login.
func (h *Handler) Login(c *gin.Context) {
	var req models.LoginRequest
	if !h.bind(c, &req) {
		return
	}
	resp, err := h.store.Authenticate(req.Email, req.Password)
	if err != nil {
		h.fail(c, err)
		return
	}
	if h.setCredential(c, resp.UserID) {
		c.JSON(http.StatusOK, resp)
	}
}

// Logout handles POST /auth/logout.
func (h *Handler) Logout(c *gin.Context) {
	if raw, err := c.Cookie(h.cookieName); err == nil {
		h.tokens.Revoke(raw)
	}
	http.SetCookie(c.Writer, &http.Cookie{Name: h.cookieName, Value: "", Path: "/", MaxAge: -1, HttpOnly: true})
	c.Status(http.StatusNoContent)
}

// User handles GET /user.
func (h *Handler) User(c *gin.Context) {
	profile, err := h.store.Profile(currentUser(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// EditProfile handles POST /user/profile/edit.
func (h *Handler) EditProfile(c *gin.Context) {
	var req models.EditProfileRequest
	if !h.bind(c, &req) {
		return
	}
	profile, err := h.store.EditProfile(currentUser(c), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// Classes handles GET /user/classes.
func (h *Handler) Classes(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Classes(currentUser(c)))
}

// CreateClass handles POST /class/create.
func (h *Handler) CreateClass(c *gin.Context) {
	var req models.CreateClassRequest
	if !h.bind(c, &req) {
		return
	}
	created, err := h.store.CreateClass(currentUser(c), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// JoinClass handles POST /class/join.
func (h *Handler) JoinClass(c *gin.Context) {
	var req models.JoinClassRequest
	if !h.bind(c, &req) {
		return
	}
	if err := h.store.JoinClass(currentUser(c), req.JoinCode); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Class handles GET /class/:id.
func (h *Handler) Class(c *gin.Context) {
	classID, ok := h.param(c, "id")
	if !ok {
		return
	}
	data, err := h.store.Class(currentUser(c), classID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, data)
}

// Role handles GET /class/:id/role.
func (h *Handler) Role(c *gin.Context) {
	classID, ok := h.param(c, "id")
	if !ok {
		return
	}
	role, err := h.store.Role(currentUser(c), classID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, role)
}

// CreateAssignment handles POST /class/:id/create-assignment.
func (h *Handler) CreateAssignment(c *gin.Context) {
	classID, ok := h.param(c, "id")
	if !ok {
		return
	}
	var req models.CreateAssignmentRequest
	if !h.bind(c, &req) {
		return
	}
	created, err := h.store.CreateAssignment(currentUser(c), classID, req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// Assignment handles GET /class/:id/assignment/:aid.
func (h *Handler) Assignment(c *gin.Context) {
	ids, ok := h.params(c, "id", "aid")
	if !ok {
		return
	}
	data, err := h.store.Assignment(currentUser(c), ids[0], ids[1])
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, data)
}

// Submit handles POST /class/:id/assignment/:aid/submit.
func (h *Handler) Submit(c *gin.Context) {
	ids, ok := h.params(c, "id", "aid")
	if !ok {
		return
	}
	uploads, cleanup, ok := h.uploads(c)
	if !ok {
		return
	}
	defer cleanup()
	if err := h.store.Submit(currentUser(c), ids[0], ids[1], uploads); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteFile handles DELETE /class/:id/assignment/:aid/delete-file/:fid.
func (h *Handler) DeleteFile(c *gin.Context) {
	ids, ok := h.params(c, "id", "aid", "fid")
	if !ok {
		return
	}
	if err := h.store.DeleteFile(currentUser(c), ids[0], ids[1], ids[2]); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// CancelSubmission handles DELETE /class/:id/assignment/:aid/cancel-submission.
func (h *Handler) CancelSubmission(c *gin.Context) {
	ids, ok := h.params(c, "id", "aid")
	if !ok {
		return
	}
	if err := h.store.CancelSubmission(currentUser(c), ids[0], ids[1]); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AddMaterials handles POST /class/:id/assignment/:aid/add-materials.
func (h *Handler) AddMaterials(c *gin.Context) {
	ids, ok := h.params(c, "id", "aid")
	if !ok {
		return
	}
	uploads, cleanup, ok := h.uploads(c)
	if !ok {
		return
	}
	defer cleanup()
	if err := h.store.AddMaterials(currentUser(c), ids[0], ids[1], uploads); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Submissions handles GET /class/:id/submissions.
func (h *Handler) Submissions(c *gin.Context) {
	classID, ok := h.param(c, "id")
	if !ok {
		return
	}
	items, err := h.store.Submissions(currentUser(c), classID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// Submission handles GET /class/:id/submissions/:sid.
func (h *Handler) Submission(c *gin.Context) {
	ids, ok := h.params(c, "id", "sid")
	if !ok {
		return
	}
	detail, err := h.store.Submission(currentUser(c), ids[0], ids[1])
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// Grade handles POST /class/:id/submissions/:sid/grade.
func (h *Handler) Grade(c *gin.Context) {
	ids, ok := h.params(c, "id", "sid")
	if !ok {
		return
	}
	var req models.GradeRequest
	if !h.bind(c, &req) {
		return
	}
	if err := h.store.Grade(currentUser(c), ids[0], ids[1], req.Grade); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// CancelGrade handles PUT /class/:id/submissions/:sid/cancel-grade.
func (h *Handler) CancelGrade(c *gin.Context) {
	ids, ok := h.params(c, "id", "sid")
	if !ok {
		return
	}
	if err := h.store.CancelGrade(currentUser(c), ids[0], ids[1]); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SubmissionFile handles GET /class/:id/download-submission-file/:fid.
func (h *Handler) SubmissionFile(c *gin.Context) {
	h.download(c, models.FileTypeSubmission)
}

// MaterialFile handles GET /class/:id/download-material-file/:fid.
func (h *Handler) MaterialFile(c *gin.Context) {
	h.download(c, models.FileTypeMaterial)
}

func (h *Handler) download(c *gin.Context, fileType string) {
	ids, ok := h.params(c, "id", "fid")
	if !ok {
		return
	}
	f, err := h.store.File(currentUser(c), ids[0], ids[1], fileType)
	if err != nil {
		h.fail(c, err)
		return
	}
	blob, err := h.store.blobs.Open(f.blob)
	if err != nil {
		h.fail(c, appErrors.Wrap(err, appErrors.ErrInternal, "Could not read the file"))
		return
	}
	defer blob.Close()

	contentType := f.contentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.DataFromReader(http.StatusOK, f.size, contentType, blob, map[string]string{
		"Content-Disposition": mime.FormatMediaType("attachment", map[string]string{"filename": f.name}),
	})
}

// uploads reads every part of the files field. A multipart body without parts is valid.
func (h *Handler) uploads(c *gin.Context) ([]Upload, func(), bool) {
	noop := func() {}
	form, err := c.MultipartForm()
	if err != nil {
		if errors.Is(err, http.ErrNotMultipart) {
			c.String(http.StatusBadRequest, "Expected a multipart form")
		} else {
			c.String(http.StatusBadRequest, "Malformed multipart form")
		}
		c.Abort()
		return nil, noop, false
	}

	headers := form.File[filesField]
	uploads := make([]Upload, 0, len(headers))
	closers := make([]func() error, 0, len(headers))
	cleanup := func() {
		for _, closeFn := range closers {
			_ = closeFn()
		}
	}
	for _, header := range headers {
		f, err := header.Open()
		if err != nil {
			cleanup()
			h.fail(c, appErrors.Wrap(err, appErrors.ErrInternal, "Could not read the upload"))
			return nil, noop, false
		}
		closers = append(closers, f.Close)
		uploads = append(uploads, Upload{Name: header.Filename, ContentType: header.Header.Get("Content-Type"), Content: f})
	}
	return uploads, cleanup, true
}
