package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/dpointtt/sun-class-app/internal/middleware"
	"github.com/dpointtt/sun-class-app/internal/models"
	"github.com/dpointtt/sun-class-app/internal/service"
)

// Handlers groups the web tier's handlers.
type Handlers struct {
	Auth       *AuthHandler
	Class      *ClassHandler
	User       *UserHandler
	Assignment *AssignmentHandler
	Grade      *GradeHandler
	File       *FileHandler
}

// Register mounts page loads and form actions. Everything except the session actions sits
// behind the session guard; class routes additionally resolve the caller's role first.
func Register(r gin.IRouter, h Handlers, guard *middleware.SessionGuard, identities *service.IdentityService, audit *service.AuditService) {
	r.POST("/login", middleware.Audit(audit, models.AuditActionLogin), h.Auth.Login)
	r.POST("/register", middleware.Audit(audit, models.AuditActionRegister), h.Auth.Register)
	r.POST("/logout", middleware.Audit(audit, models.AuditActionLogout), h.Auth.Logout)

	authed := r.Group("/", guard.Require())
	authed.GET("/", h.Class.Home)
	authed.POST("/actions/create-class", middleware.Audit(audit, models.AuditActionCreateClass), h.Class.Create)
	authed.POST("/actions/join-class", middleware.Audit(audit, models.AuditActionJoinClass), h.Class.Join)
	authed.GET("/profile", h.User.Profile)
	authed.POST("/profile", middleware.Audit(audit, models.AuditActionEditProfile), h.User.EditProfile)

	class := authed.Group("/class/:"+middleware.ClassIDParam, middleware.ClassIdentity(identities, guard))
	class.GET("", h.Class.Show)
	class.POST("/assignments", middleware.Audit(audit, models.AuditActionCreateAssignment), h.Assignment.Create)

	assignment := class.Group("/assignment/:assignment_id")
	assignment.GET("", h.Assignment.Show)
	assignment.POST("/files", middleware.Audit(audit, models.AuditActionUploadFiles), h.Assignment.UploadFiles)
	assignment.POST("/files/delete", middleware.Audit(audit, models.AuditActionDeleteFile), h.Assignment.DeleteFile)
	assignment.POST("/cancel", middleware.Audit(audit, models.AuditActionCancelSubmission), h.Assignment.CancelSubmission)
	assignment.POST("/materials", middleware.Audit(audit, models.AuditActionSaveMaterials), h.Assignment.SaveMaterials)

	submissions := class.Group("/submissions")
	submissions.GET("", h.Grade.ListSubmissions)
	submissions.GET("/export", h.Grade.Export)
	submissions.GET("/:submission_id", h.Grade.ShowSubmission)
	submissions.POST("/:submission_id/grade", middleware.Audit(audit, models.AuditActionGrade), h.Grade.Grade)
	submissions.POST("/:submission_id/cancel-grade", middleware.Audit(audit, models.AuditActionCancelGrade), h.Grade.CancelGrade)

	class.GET("/files/submission/:file_id", h.File.SubmissionFile)
	class.GET("/files/material/:file_id", h.File.MaterialFile)
}
