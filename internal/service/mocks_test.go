package service

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/dpointtt/sun-class-app/internal/models"
)

// fakeCollaborator records every dispatched call and answers from canned fields.
type fakeCollaborator struct {
	calls []string
	err   error

	createdClass *models.CreatedClass
	class        *models.ClassData
	classList    *models.ClassList
	role         *models.ClassRoleResponse
	assignment   *models.AssignmentData
	submissions  []models.SubmissionListItem
	detail       *models.SubmissionDetail
	profile      *models.UserProfile

	lastCredential string
	lastFiles      []models.UploadFile
	lastGrade      float64
	lastAssignment models.CreateAssignmentRequest
	lastClass      models.CreateClassRequest
	lastJoin       models.JoinClassRequest
	issued         string
}

func (f *fakeCollaborator) record(name, credential string) error {
	f.calls = append(f.calls, name)
	f.lastCredential = credential
	return f.err
}

func (f *fakeCollaborator) Create(ctx context.Context, credential string, req models.CreateClassRequest) (*models.CreatedClass, error) {
	f.lastClass = req
	if err := f.record("create_class", credential); err != nil {
		return nil, err
	}
	return f.createdClass, nil
}

func (f *fakeCollaborator) Join(ctx context.Context, credential string, req models.JoinClassRequest) error {
	f.lastJoin = req
	return f.record("join_class", credential)
}

func (f *fakeCollaborator) Get(ctx context.Context, credential string, classID int64) (*models.ClassData, error) {
	if err := f.record("load_class", credential); err != nil {
		return nil, err
	}
	return f.class, nil
}

func (f *fakeCollaborator) ListForUser(ctx context.Context, credential string) (*models.ClassList, error) {
	if err := f.record("list_classes", credential); err != nil {
		return nil, err
	}
	return f.classList, nil
}

func (f *fakeCollaborator) Role(ctx context.Context, credential string, classID int64) (*models.ClassRoleResponse, error) {
	if err := f.record("role", credential); err != nil {
		return nil, err
	}
	return f.role, nil
}

type fakeAssignments struct{ *fakeCollaborator }

func (f fakeAssignments) Create(ctx context.Context, credential string, classID int64, req models.CreateAssignmentRequest) (*models.CreatedAssignment, error) {
	f.lastAssignment = req
	if err := f.record("create_assignment", credential); err != nil {
		return nil, err
	}
	return &models.CreatedAssignment{ID: 9}, nil
}

func (f fakeAssignments) Get(ctx context.Context, credential string, classID, assignmentID int64) (*models.AssignmentData, error) {
	if err := f.record("load_assignment", credential); err != nil {
		return nil, err
	}
	return f.assignment, nil
}

func (f *fakeCollaborator) AddMaterials(ctx context.Context, credential string, classID, assignmentID int64, files []models.UploadFile) error {
	f.lastFiles = files
	return f.record("add_materials", credential)
}

func (f *fakeCollaborator) DownloadMaterial(ctx context.Context, credential string, classID, fileID int64) (*models.Download, error) {
	if err := f.record("download_material", credential); err != nil {
		return nil, err
	}
	return &models.Download{Body: io.NopCloser(strings.NewReader("m")), FileName: "m.txt"}, nil
}

type fakeSubmissions struct{ *fakeCollaborator }

func (f fakeSubmissions) Submit(ctx context.Context, credential string, classID, assignmentID int64, files []models.UploadFile) error {
	f.lastFiles = files
	return f.record("submit", credential)
}

func (f fakeSubmissions) DeleteFile(ctx context.Context, credential string, classID, assignmentID, fileID int64) error {
	return f.record("delete_file", credential)
}

func (f fakeSubmissions) Cancel(ctx context.Context, credential string, classID, assignmentID int64) error {
	return f.record("cancel_submission", credential)
}

func (f fakeSubmissions) List(ctx context.Context, credential string, classID int64) ([]models.SubmissionListItem, error) {
	if err := f.record("list_submissions", credential); err != nil {
		return nil, err
	}
	return f.submissions, nil
}

func (f fakeSubmissions) Get(ctx context.Context, credential string, classID, submissionID int64) (*models.SubmissionDetail, error) {
	if err := f.record("get_submission", credential); err != nil {
		return nil, err
	}
	return f.detail, nil
}

func (f fakeSubmissions) DownloadFile(ctx context.Context, credential string, classID, fileID int64) (*models.Download, error) {
	if err := f.record("download_submission_file", credential); err != nil {
		return nil, err
	}
	return &models.Download{Body: io.NopCloser(strings.NewReader("s")), FileName: "s.txt"}, nil
}

func (f *fakeCollaborator) Grade(ctx context.Context, credential string, classID, submissionID int64, grade float64) error {
	f.lastGrade = grade
	return f.record("grade", credential)
}

func (f *fakeCollaborator) CancelGrade(ctx context.Context, credential string, classID, submissionID int64) error {
	return f.record("cancel_grade", credential)
}

func (f *fakeCollaborator) Login(ctx context.Context, req models.LoginRequest) (string, *models.AuthResponse, error) {
	if err := f.record("login", ""); err != nil {
		return "", nil, err
	}
	return f.issued, &models.AuthResponse{UserID: 7, Email: req.Email}, nil
}

func (f *fakeCollaborator) Register(ctx context.Context, req models.RegisterRequest) (string, *models.AuthResponse, error) {
	if err := f.record("register", ""); err != nil {
		return "", nil, err
	}
	return f.issued, &models.AuthResponse{UserID: 8, Email: req.Email}, nil
}

func (f *fakeCollaborator) Logout(ctx context.Context, credential string) error {
	return f.record("logout", credential)
}

func (f *fakeCollaborator) Check(ctx context.Context, credential string) error {
	return f.record("check", credential)
}

func (f *fakeCollaborator) Profile(ctx context.Context, credential string) (*models.UserProfile, error) {
	if err := f.record("profile", credential); err != nil {
		return nil, err
	}
	return f.profile, nil
}

func (f *fakeCollaborator) EditProfile(ctx context.Context, credential string, req models.EditProfileRequest) (*models.UserProfile, error) {
	if err := f.record("edit_profile", credential); err != nil {
		return nil, err
	}
	return &models.UserProfile{ID: 7, Name: req.Name}, nil
}

type fakeRevocations struct {
	revoked map[string]time.Time
	err     error
}

func (f *fakeRevocations) Revoke(ctx context.Context, credential string, expiresAt time.Time) error {
	if f.revoked == nil {
		f.revoked = map[string]time.Time{}
	}
	f.revoked[credential] = expiresAt
	return f.err
}

func (f *fakeRevocations) IsRevoked(ctx context.Context, credential string) (bool, error) {
	_, ok := f.revoked[credential]
	return ok, f.err
}

type fakeEvictions struct{ reasons []string }

func (f *fakeEvictions) RecordSessionEviction(reason string) { f.reasons = append(f.reasons, reason) }

func teacher(classID int64) models.Identity {
	return models.Identity{Credential: "cred-t", UserID: "1", ClassID: classID, IsTeacher: true, Resolved: true}
}

func student(classID int64) models.Identity {
	return models.Identity{Credential: "cred-s", UserID: "2", ClassID: classID, Resolved: true}
}

func ptr[T any](v T) *T { return &v }
