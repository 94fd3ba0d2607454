package stubapi

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dpointtt/sun-class-app/internal/models"
	appErrors "github.com/dpointtt/sun-class-app/pkg/errors"
	"github.com/dpointtt/sun-class-app/pkg/storage"
)

type fixture struct {
	store        *Store
	teacher      int64
	student      int64
	classID      int64
	assignmentID int64
}

func newFixture(t *testing.T, allowCancelGraded bool) *fixture {
	t.Helper()
	blobs, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	store := NewStore(blobs, allowCancelGraded)

	teacher, err := store.Register("Tess", "tess@example.com", "secret1")
	require.NoError(t, err)
	student, err := store.Register("Sam", "sam@example.com", "secret1")
	require.NoError(t, err)

	created, err := store.CreateClass(teacher.UserID, models.CreateClassRequest{Title: "Algebra I"})
	require.NoError(t, err)
	require.NoError(t, store.JoinClass(student.UserID, created.JoinCode))

	assignment, err := store.CreateAssignment(teacher.UserID, created.ID, models.CreateAssignmentRequest{
		Title: "HW1", DueDate: "2025-01-10T23:59", Points: 100,
	})
	require.NoError(t, err)

	return &fixture{store: store, teacher: teacher.UserID, student: student.UserID, classID: created.ID, assignmentID: assignment.ID}
}

func upload(name, body string) Upload {
	return Upload{Name: name, ContentType: "text/plain", Content: strings.NewReader(body)}
}

func status(err error) int {
	return appErrors.FromError(err).Status
}

func (f *fixture) submissionID(t *testing.T) int64 {
	t.Helper()
	items, err := f.store.Submissions(f.teacher, f.classID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	return items[0].ID
}

func TestJoinPolicies(t *testing.T) {
	f := newFixture(t, false)
	class, err := f.store.Class(f.teacher, f.classID)
	require.NoError(t, err)

	assert.Equal(t, http.StatusConflict, status(f.store.JoinClass(f.student, class.JoinCode)))
	assert.Equal(t, http.StatusConflict, status(f.store.JoinClass(f.teacher, class.JoinCode)))
	assert.Equal(t, http.StatusNotFound, status(f.store.JoinClass(f.student, "NOPE0000")))

	studentView, err := f.store.Class(f.student, f.classID)
	require.NoError(t, err)
	assert.Empty(t, studentView.JoinCode)
	assert.Equal(t, []models.ClassUser{{Name: "Tess", Role: "teacher"}, {Name: "Sam", Role: "student"}}, studentView.Users)
}

func TestRoleAndMembership(t *testing.T) {
	f := newFixture(t, false)
	outsider, err := f.store.Register("Olga", "olga@example.com", "secret1")
	require.NoError(t, err)

	role, err := f.store.Role(f.teacher, f.classID)
	require.NoError(t, err)
	assert.True(t, role.IsTeacher)

	role, err = f.store.Role(f.student, f.classID)
	require.NoError(t, err)
	assert.False(t, role.IsTeacher)

	_, err = f.store.Role(outsider.UserID, f.classID)
	assert.Equal(t, http.StatusForbidden, status(err))
	_, err = f.store.Class(outsider.UserID, 999)
	assert.Equal(t, http.StatusNotFound, status(err))
}

func TestUploadsAccumulateUnderOneSubmission(t *testing.T) {
	f := newFixture(t, false)

	require.NoError(t, f.store.Submit(f.student, f.classID, f.assignmentID, []Upload{upload("a.txt", "a")}))
	require.NoError(t, f.store.Submit(f.student, f.classID, f.assignmentID, []Upload{upload("b.txt", "b")}))

	data, err := f.store.Assignment(f.student, f.classID, f.assignmentID)
	require.NoError(t, err)
	assert.True(t, data.IsSubmitted)
	require.Len(t, data.SubmissionFiles, 2)
	assert.Equal(t, "a.txt", data.SubmissionFiles[0].FileName)
	assert.Equal(t, models.FileTypeSubmission, data.SubmissionFiles[1].FileType)

	items, err := f.store.Submissions(f.teacher, f.classID)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestSubmitWithoutFilesMarksSubmitted(t *testing.T) {
	f := newFixture(t, false)
	require.NoError(t, f.store.Submit(f.student, f.classID, f.assignmentID, nil))

	data, err := f.store.Assignment(f.student, f.classID, f.assignmentID)
	require.NoError(t, err)
	assert.True(t, data.IsSubmitted)
	assert.Empty(t, data.SubmissionFiles)
}

func TestTeacherCannotSubmit(t *testing.T) {
	f := newFixture(t, false)
	err := f.store.Submit(f.teacher, f.classID, f.assignmentID, nil)
	assert.Equal(t, http.StatusForbidden, status(err))
}

func TestDeletingLastFileReturnsToUnsubmitted(t *testing.T) {
	f := newFixture(t, false)
	require.NoError(t, f.store.Submit(f.student, f.classID, f.assignmentID, []Upload{upload("a.txt", "a"), upload("b.txt", "b")}))

	data, err := f.store.Assignment(f.student, f.classID, f.assignmentID)
	require.NoError(t, err)
	first, second := *data.SubmissionFiles[0].ID, *data.SubmissionFiles[1].ID

	require.NoError(t, f.store.DeleteFile(f.student, f.classID, f.assignmentID, first))
	data, err = f.store.Assignment(f.student, f.classID, f.assignmentID)
	require.NoError(t, err)
	assert.True(t, data.IsSubmitted)
	assert.Len(t, data.SubmissionFiles, 1)

	require.NoError(t, f.store.DeleteFile(f.student, f.classID, f.assignmentID, second))
	data, err = f.store.Assignment(f.student, f.classID, f.assignmentID)
	require.NoError(t, err)
	assert.False(t, data.IsSubmitted)
	assert.Empty(t, data.SubmissionFiles)

	assert.Equal(t, http.StatusNotFound, status(f.store.DeleteFile(f.student, f.classID, f.assignmentID, second)))
}

func TestCancelSubmission(t *testing.T) {
	f := newFixture(t, false)
	assert.Equal(t, http.StatusNotFound, status(f.store.CancelSubmission(f.student, f.classID, f.assignmentID)))

	require.NoError(t, f.store.Submit(f.student, f.classID, f.assignmentID, []Upload{upload("a.txt", "a")}))
	require.NoError(t, f.store.CancelSubmission(f.student, f.classID, f.assignmentID))

	data, err := f.store.Assignment(f.student, f.classID, f.assignmentID)
	require.NoError(t, err)
	assert.False(t, data.IsSubmitted)
	assert.Empty(t, data.SubmissionFiles)
}

func TestCancelGradedSubmission(t *testing.T) {
	for _, allow := range []bool{false, true} {
		f := newFixture(t, allow)
		require.NoError(t, f.store.Submit(f.student, f.classID, f.assignmentID, []Upload{upload("a.txt", "a")}))
		require.NoError(t, f.store.Grade(f.teacher, f.classID, f.submissionID(t), 92))

		err := f.store.CancelSubmission(f.student, f.classID, f.assignmentID)
		if allow {
			assert.NoError(t, err)
		} else {
			assert.Equal(t, http.StatusConflict, status(err))
		}
	}
}

func TestGradePolicies(t *testing.T) {
	f := newFixture(t, false)
	require.NoError(t, f.store.Submit(f.student, f.classID, f.assignmentID, []Upload{upload("a.txt", "a")}))
	sid := f.submissionID(t)

	assert.Equal(t, http.StatusUnprocessableEntity, status(f.store.Grade(f.teacher, f.classID, sid, 101)))
	assert.Equal(t, http.StatusUnprocessableEntity, status(f.store.Grade(f.teacher, f.classID, sid, -1)))
	assert.Equal(t, http.StatusNotFound, status(f.store.Grade(f.teacher, f.classID, 999, 50)))
	assert.Equal(t, http.StatusForbidden, status(f.store.Grade(f.student, f.classID, sid, 50)))

	require.NoError(t, f.store.Grade(f.teacher, f.classID, sid, 100))
	detail, err := f.store.Submission(f.teacher, f.classID, sid)
	require.NoError(t, err)
	assert.True(t, detail.IsGraded)
	assert.Equal(t, 100.0, *detail.Grade)
	assert.Equal(t, "Tess", *detail.GraderName)
	assert.NotNil(t, detail.GradedAt)

	assert.Equal(t, http.StatusConflict, status(f.store.Submit(f.student, f.classID, f.assignmentID, nil)))
}

func TestFractionalGradeWithinRangeIsKept(t *testing.T) {
	f := newFixture(t, false)
	require.NoError(t, f.store.Submit(f.student, f.classID, f.assignmentID, []Upload{upload("a.txt", "a")}))
	sid := f.submissionID(t)

	require.NoError(t, f.store.Grade(f.teacher, f.classID, sid, 92.5))
	detail, err := f.store.Submission(f.teacher, f.classID, sid)
	require.NoError(t, err)
	assert.Equal(t, 92.5, *detail.Grade)
	assert.Equal(t, http.StatusUnprocessableEntity, status(f.store.Grade(f.teacher, f.classID, sid, 100.5)))
}

func TestCancelGradeKeepsSubmission(t *testing.T) {
	f := newFixture(t, false)
	require.NoError(t, f.store.Submit(f.student, f.classID, f.assignmentID, []Upload{upload("a.txt", "a")}))
	sid := f.submissionID(t)
	before, err := f.store.Submission(f.teacher, f.classID, sid)
	require.NoError(t, err)

	assert.Equal(t, http.StatusConflict, status(f.store.CancelGrade(f.teacher, f.classID, sid)))
	require.NoError(t, f.store.Grade(f.teacher, f.classID, sid, 80))
	require.NoError(t, f.store.CancelGrade(f.teacher, f.classID, sid))

	after, err := f.store.Submission(f.teacher, f.classID, sid)
	require.NoError(t, err)
	assert.False(t, after.IsGraded)
	assert.Nil(t, after.Grade)
	assert.Nil(t, after.GradedAt)
	assert.Nil(t, after.GraderName)
	assert.Equal(t, before.SubmittedAt, after.SubmittedAt)
	assert.Len(t, after.Files, 1)
}

func TestSubmissionsNewestFirst(t *testing.T) {
	f := newFixture(t, false)
	second, err := f.store.Register("Ann", "ann@example.com", "secret1")
	require.NoError(t, err)
	class, err := f.store.Class(f.teacher, f.classID)
	require.NoError(t, err)
	require.NoError(t, f.store.JoinClass(second.UserID, class.JoinCode))

	clock := time.Date(2025, 1, 9, 10, 0, 0, 0, time.UTC)
	f.store.now = func() time.Time { return clock }
	require.NoError(t, f.store.Submit(f.student, f.classID, f.assignmentID, nil))
	clock = clock.Add(time.Hour)
	require.NoError(t, f.store.Submit(second.UserID, f.classID, f.assignmentID, nil))

	items, err := f.store.Submissions(f.teacher, f.classID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Ann", items[0].StudentName)
	assert.Equal(t, "Sam", items[1].StudentName)
	assert.Equal(t, "2025-01-09T11:00:00Z", *items[0].SubmittedAt)
}

func TestMaterialsAndFileAccess(t *testing.T) {
	f := newFixture(t, false)
	assert.Equal(t, http.StatusBadRequest, status(f.store.AddMaterials(f.teacher, f.classID, f.assignmentID, nil)))
	assert.Equal(t, http.StatusForbidden, status(f.store.AddMaterials(f.student, f.classID, f.assignmentID, []Upload{upload("x", "x")})))
	require.NoError(t, f.store.AddMaterials(f.teacher, f.classID, f.assignmentID, []Upload{upload("notes.txt", "notes")}))

	data, err := f.store.Assignment(f.student, f.classID, f.assignmentID)
	require.NoError(t, err)
	require.Len(t, data.Materials, 1)
	materialID := *data.Materials[0].ID

	file, err := f.store.File(f.student, f.classID, materialID, models.FileTypeMaterial)
	require.NoError(t, err)
	assert.Equal(t, "notes.txt", file.name)
	assert.EqualValues(t, 5, file.size)

	_, err = f.store.File(f.student, f.classID, materialID, models.FileTypeSubmission)
	assert.Equal(t, http.StatusNotFound, status(err))
}

func TestClassesListing(t *testing.T) {
	f := newFixture(t, false)
	f.store.now = func() time.Time { return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC) }

	teaching := f.store.Classes(f.teacher)
	require.Len(t, teaching.TeachingClasses, 1)
	assert.Empty(t, teaching.EnrolledClasses)
	require.NotNil(t, teaching.TeachingClasses[0].UpcomingAssignment)
	assert.Equal(t, "HW1", *teaching.TeachingClasses[0].UpcomingAssignment)

	enrolled := f.store.Classes(f.student)
	require.Len(t, enrolled.EnrolledClasses, 1)
	assert.Equal(t, "Tess", enrolled.EnrolledClasses[0].Teacher)
}

func TestAuthenticate(t *testing.T) {
	f := newFixture(t, false)
	_, err := f.store.Authenticate("sam@example.com", "wrong")
	assert.Equal(t, http.StatusUnauthorized, status(err))

	resp, err := f.store.Authenticate(" SAM@example.com ", "secret1")
	require.NoError(t, err)
	assert.Equal(t, f.student, resp.UserID)

	_, err = f.store.Register("Sam", "sam@example.com", "secret1")
	assert.Equal(t, http.StatusConflict, status(err))
}
