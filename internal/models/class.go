package models

// ClassRole values tag class members.
const (
	ClassRoleTeacher = "teacher"
	ClassRoleStudent = "student"
)

// ClassSummary is one entry of the caller's class list.
type ClassSummary struct {
	ID                 int64   `json:"id"`
	Title              string  `json:"title"`
	Teacher            string  `json:"teacher"`
	UpcomingAssignment *string `json:"upcoming_assignment"`
}

// ClassList groups the caller's classes by role.
type ClassList struct {
	EnrolledClasses []ClassSummary `json:"enrolled_classes"`
	TeachingClasses []ClassSummary `json:"teaching_classes"`
}

// ClassUser is a role-tagged member.
type ClassUser struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

// ClassData is the full class record as returned by the Classroom API.
type ClassData struct {
	ID          int64            `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Teacher     string           `json:"teacher"`
	Assignments []AssignmentInfo `json:"assignments"`
	Users       []ClassUser      `json:"users"`
	JoinCode    string           `json:"join_code"`
}

// ClassPage is the class page load: the record plus the caller's resolved role.
type ClassPage struct {
	Class     *ClassData `json:"class"`
	IsTeacher bool       `json:"is_teacher"`
}

// CreatedClass identifies a newly created class.
type CreatedClass struct {
	ID       int64  `json:"id"`
	JoinCode string `json:"join_code"`
}

// CreateClassRequest is the collaborator payload for POST /class/create.
type CreateClassRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// JoinClassRequest is the collaborator payload for POST /class/join.
type JoinClassRequest struct {
	JoinCode string `json:"join_code"`
}

// ClassRoleResponse answers GET /class/{id}/role.
type ClassRoleResponse struct {
	IsTeacher bool `json:"is_teacher"`
}
