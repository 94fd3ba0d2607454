package models

// SubmissionListItem is one row of the teacher's submissions list.
type SubmissionListItem struct {
	ID              int64    `json:"id"`
	AssignmentID    int64    `json:"assignment_id"`
	AssignmentTitle string   `json:"assignment_title"`
	StudentName     string   `json:"student_name"`
	SubmittedAt     *string  `json:"submitted_at"`
	IsGraded        bool     `json:"is_graded"`
	Grade           *float64 `json:"grade"`
}

// SubmissionDetail is the teacher's view of a single submission.
type SubmissionDetail struct {
	ID               int64            `json:"id"`
	AssignmentID     int64            `json:"assignment_id"`
	AssignmentTitle  string           `json:"assignment_title"`
	AssignmentPoints int64            `json:"assignment_points"`
	StudentName      string           `json:"student_name"`
	SubmittedAt      *string          `json:"submitted_at"`
	IsGraded         bool             `json:"is_graded"`
	Grade            *float64         `json:"grade"`
	GradedAt         *string          `json:"graded_at"`
	GraderName       *string          `json:"grader_name"`
	Files            []AssignmentFile `json:"files"`
}

// GradeRequest is the collaborator payload for POST /class/{id}/submissions/{sid}/grade.
type GradeRequest struct {
	Grade float64 `json:"grade"`
}
