package stubapi

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dpointtt/sun-class-app/pkg/storage"
)

// Options configures the stub API.
type Options struct {
	JWTSecret         string
	TokenTTL          time.Duration
	CookieName        string
	SecureCookie      bool
	AllowCancelGraded bool
	Storage           *storage.LocalStorage
	Logger            *zap.Logger
}

// NewHandler builds the handler and its in-memory store.
func NewHandler(opts Options) *Handler {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	cookieName := opts.CookieName
	if cookieName == "" {
		cookieName = "auth_token"
	}
	return &Handler{
		store:      NewStore(opts.Storage, opts.AllowCancelGraded),
		tokens:     NewTokens(opts.JWTSecret, opts.TokenTTL),
		cookieName: cookieName,
		secure:     opts.SecureCookie,
		logger:     logger,
	}
}

// Mount registers every Classroom API route on r.
func (h *Handler) Mount(r gin.IRouter) {
	auth := r.Group("/auth")
	auth.POST("/register", h.Register)
	auth.POST("/login", h.Login)
	auth.POST("/logout", h.Logout)

	authed := r.Group("", requireUser(h.tokens, h.cookieName))
	authed.GET("/user", h.User)
	authed.GET("/user/profile", h.User)
	authed.POST("/user/profile/edit", h.EditProfile)
	authed.GET("/user/classes", h.Classes)

	authed.POST("/class/create", h.CreateClass)
	authed.POST("/class/join", h.JoinClass)

	class := authed.Group("/class/:id")
	class.GET("", h.Class)
	class.GET("/role", h.Role)
	class.POST("/create-assignment", h.CreateAssignment)
	class.GET("/assignment/:aid", h.Assignment)
	class.POST("/assignment/:aid/submit", h.Submit)
	class.DELETE("/assignment/:aid/delete-file/:fid", h.DeleteFile)
	class.DELETE("/assignment/:aid/cancel-submission", h.CancelSubmission)
	class.POST("/assignment/:aid/add-materials", h.AddMaterials)
	class.GET("/submissions", h.Submissions)
	class.GET("/submissions/:sid", h.Submission)
	class.POST("/submissions/:sid/grade", h.Grade)
	class.PUT("/submissions/:sid/cancel-grade", h.CancelGrade)
	class.GET("/download-submission-file/:fid", h.SubmissionFile)
	class.GET("/download-material-file/:fid", h.MaterialFile)
}

// NewRouter returns a gin engine serving the stub under /api.
func NewRouter(opts Options, middleware ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware...)
	NewHandler(opts).Mount(r.Group("/api"))
	return r
}
