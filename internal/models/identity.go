package models

// Identity is the authenticated caller threaded through every workflow call.
// IsTeacher is meaningful only when Resolved is true for ClassID.
type Identity struct {
	Credential string
	UserID     string
	ClassID    int64
	IsTeacher  bool
	Resolved   bool
}

// Authenticated reports whether a credential is present.
func (i Identity) Authenticated() bool {
	return i.Credential != ""
}

// MemberOf reports whether the role was resolved for classID.
func (i Identity) MemberOf(classID int64) bool {
	return i.Authenticated() && i.Resolved && i.ClassID == classID
}

// TeacherOf reports whether the caller teaches classID.
func (i Identity) TeacherOf(classID int64) bool {
	return i.MemberOf(classID) && i.IsTeacher
}
