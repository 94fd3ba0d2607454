package dto

// Form payloads posted by the browser. Field names in messages come from the label tag.

// LoginForm signs an existing account in.
type LoginForm struct {
	Email    string `form:"email" json:"email" validate:"required,email" label:"Email"`
	Password string `form:"password" json:"password" validate:"required" label:"Password"`
}

// RegisterForm creates an account.
type RegisterForm struct {
	Name     string `form:"name" json:"name" validate:"required" label:"Name"`
	Email    string `form:"email" json:"email" validate:"required,email" label:"Email"`
	Password string `form:"password" json:"password" validate:"required,min=6" label:"Password"`
}

// EditProfileForm renames the caller.
type EditProfileForm struct {
	Name      string `form:"name" json:"name" validate:"required" label:"Name"`
	AvatarURL string `form:"avatar_url" json:"avatar_url" validate:"omitempty,url" label:"Avatar URL"`
}

// CreateClassForm creates a class owned by the caller.
type CreateClassForm struct {
	Title       string `form:"title" json:"title" validate:"required" label:"Title"`
	Description string `form:"description" json:"description"`
}

// JoinClassForm presents a join code.
type JoinClassForm struct {
	JoinCode string `form:"joinCode" json:"join_code" validate:"required" label:"Join code"`
}

// CreateAssignmentForm carries raw form values; Points is parsed by the workflow.
type CreateAssignmentForm struct {
	Title       string `form:"title" json:"title" validate:"required" label:"Title"`
	Description string `form:"description" json:"description"`
	DueDate     string `form:"due_date" json:"due_date" validate:"required" label:"Due date"`
	Points      string `form:"points" json:"points" validate:"required" label:"Points"`
}

// DeleteFileForm names the submission file to detach.
type DeleteFileForm struct {
	FileID string `form:"fileId" json:"file_id" validate:"required,numeric" label:"File"`
}

// GradeForm carries the raw grade value. Blank means nothing to do.
type GradeForm struct {
	Grade string `form:"grade" json:"grade"`
}

// ExportQuery selects the gradebook format. Unknown formats are rejected by export.ParseFormat.
type ExportQuery struct {
	Format string `form:"format" json:"format"`
}
