package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/dpointtt/sun-class-app/internal/models"
)

type submissionStore interface {
	Submit(ctx context.Context, credential string, classID, assignmentID int64, files []models.UploadFile) error
	DeleteFile(ctx context.Context, credential string, classID, assignmentID, fileID int64) error
	Cancel(ctx context.Context, credential string, classID, assignmentID int64) error
	List(ctx context.Context, credential string, classID int64) ([]models.SubmissionListItem, error)
	Get(ctx context.Context, credential string, classID, submissionID int64) (*models.SubmissionDetail, error)
	DownloadFile(ctx context.Context, credential string, classID, fileID int64) (*models.Download, error)
}

// SubmissionService drives a student's submission and the teacher's submission views.
// Status is never inferred locally; callers re-read the assignment after every mutation.
type SubmissionService struct {
	submissions submissionStore
	logger      *zap.Logger
}

// NewSubmissionService constructs SubmissionService.
func NewSubmissionService(submissions submissionStore, logger *zap.Logger) *SubmissionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SubmissionService{submissions: submissions, logger: logger}
}

// Upload attaches files to the caller's submission. No files means an explicit submit.
func (s *SubmissionService) Upload(ctx context.Context, id models.Identity, classID, assignmentID int64, files []models.UploadFile) error {
	if err := requireMember(id, classID); err != nil {
		return err
	}
	if files == nil {
		files = []models.UploadFile{}
	}
	if err := s.submissions.Submit(ctx, id.Credential, classID, assignmentID, files); err != nil {
		return logFailure(s.logger, "upload files", err,
			zap.Int64("class_id", classID), zap.Int64("assignment_id", assignmentID), zap.Int("files", len(files)))
	}
	return nil
}

// DeleteFile detaches one file from the caller's submission.
func (s *SubmissionService) DeleteFile(ctx context.Context, id models.Identity, classID, assignmentID, fileID int64) error {
	if err := requireMember(id, classID); err != nil {
		return err
	}
	if err := s.submissions.DeleteFile(ctx, id.Credential, classID, assignmentID, fileID); err != nil {
		return logFailure(s.logger, "delete file", err,
			zap.Int64("class_id", classID), zap.Int64("assignment_id", assignmentID), zap.Int64("file_id", fileID))
	}
	return nil
}

// Cancel withdraws the caller's submission and discards its files.
func (s *SubmissionService) Cancel(ctx context.Context, id models.Identity, classID, assignmentID int64) error {
	if err := requireMember(id, classID); err != nil {
		return err
	}
	if err := s.submissions.Cancel(ctx, id.Credential, classID, assignmentID); err != nil {
		return logFailure(s.logger, "cancel submission", err,
			zap.Int64("class_id", classID), zap.Int64("assignment_id", assignmentID))
	}
	return nil
}

// List returns the class submissions exactly in collaborator order.
func (s *SubmissionService) List(ctx context.Context, id models.Identity, classID int64) ([]models.SubmissionListItem, error) {
	if err := requireTeacher(id, classID); err != nil {
		return nil, err
	}
	items, err := s.submissions.List(ctx, id.Credential, classID)
	if err != nil {
		return nil, logFailure(s.logger, "list submissions", err, zap.Int64("class_id", classID))
	}
	return items, nil
}

// Get returns the teacher's detail view of a submission.
func (s *SubmissionService) Get(ctx context.Context, id models.Identity, classID, submissionID int64) (*models.SubmissionDetail, error) {
	if err := requireTeacher(id, classID); err != nil {
		return nil, err
	}
	detail, err := s.submissions.Get(ctx, id.Credential, classID, submissionID)
	if err != nil {
		return nil, logFailure(s.logger, "get submission", err,
			zap.Int64("class_id", classID), zap.Int64("submission_id", submissionID))
	}
	return detail, nil
}

// DownloadFile streams a submission file. Who may read it is decided by the collaborator.
func (s *SubmissionService) DownloadFile(ctx context.Context, id models.Identity, classID, fileID int64) (*models.Download, error) {
	if err := requireMember(id, classID); err != nil {
		return nil, err
	}
	download, err := s.submissions.DownloadFile(ctx, id.Credential, classID, fileID)
	if err != nil {
		return nil, logFailure(s.logger, "download submission file", err,
			zap.Int64("class_id", classID), zap.Int64("file_id", fileID))
	}
	return download, nil
}
