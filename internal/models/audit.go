package models

import "time"

// Audit outcomes.
const (
	AuditOutcomeSuccess = "success"
	AuditOutcomeFailure = "failure"
	AuditOutcomeNoop    = "noop"
)

// Audited form actions.
const (
	AuditActionLogin            = "login"
	AuditActionRegister         = "register"
	AuditActionLogout           = "logout"
	AuditActionCreateClass      = "create_class"
	AuditActionJoinClass        = "join_class"
	AuditActionEditProfile      = "edit_profile"
	AuditActionCreateAssignment = "create_assignment"
	AuditActionUploadFiles      = "upload_files"
	AuditActionDeleteFile       = "delete_file"
	AuditActionCancelSubmission = "cancel_submission"
	AuditActionSaveMaterials    = "save_materials"
	AuditActionGrade            = "grade_submission"
	AuditActionCancelGrade      = "cancel_grade"
)

// AuditLog records the outcome of one form action.
type AuditLog struct {
	ID        int64     `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"user_id"`
	Action    string    `db:"action" json:"action"`
	ClassID   string    `db:"class_id" json:"class_id"`
	Outcome   string    `db:"outcome" json:"outcome"`
	Message   string    `db:"message" json:"message"`
	RequestID string    `db:"request_id" json:"request_id"`
	IPAddress string    `db:"ip_address" json:"ip_address"`
	UserAgent string    `db:"user_agent" json:"user_agent"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
