package models

// DueDateLayout is the minute-precision layout used for due dates.
const DueDateLayout = "2006-01-02T15:04"

// AssignmentInfo is an assignment entry inside a class record.
type AssignmentInfo struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	DueDate string `json:"due_date"`
}

// AssignmentData is the assignment page, personalised for the caller.
type AssignmentData struct {
	ID              int64            `json:"id"`
	ClassID         int64            `json:"class_id"`
	Title           string           `json:"title"`
	ClassTitle      string           `json:"class_title"`
	Description     string           `json:"description"`
	DueDate         string           `json:"due_date"`
	Points          int64            `json:"points"`
	Materials       []AssignmentFile `json:"materials"`
	SubmissionFiles []AssignmentFile `json:"submission_files"`
	IsSubmitted     bool             `json:"is_submitted"`
	Grade           *float64         `json:"grade"`
}

// CreateAssignmentRequest is the collaborator payload for POST /class/{id}/create-assignment.
type CreateAssignmentRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	DueDate     string `json:"due_date"`
	Points      int64  `json:"points"`
}

// CreatedAssignment identifies a newly created assignment.
type CreatedAssignment struct {
	ID int64 `json:"id"`
}
