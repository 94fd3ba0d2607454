package repository

import (
	"context"
	"net/http"

	"github.com/dpointtt/sun-class-app/internal/models"
	"github.com/dpointtt/sun-class-app/pkg/apiclient"
)

// SubmissionRepository covers submissions, their files and grades.
type SubmissionRepository struct {
	client *apiclient.Client
}

// NewSubmissionRepository creates a new instance of SubmissionRepository.
func NewSubmissionRepository(client *apiclient.Client) *SubmissionRepository {
	return &SubmissionRepository{client: client}
}

// Submit attaches files to the caller's submission. An empty slice submits without files.
func (r *SubmissionRepository) Submit(ctx context.Context, credential string, classID, assignmentID int64, files []models.UploadFile) error {
	return r.client.Do(ctx, apiclient.Request{
		Method:     http.MethodPost,
		Route:      routeSubmit,
		Path:       apiclient.Path("/class", classID, "assignment", assignmentID, "submit"),
		Credential: credential,
		Multipart:  true,
		Files:      toParts(files),
	}, nil)
}

// DeleteFile detaches one file from the caller's submission.
func (r *SubmissionRepository) DeleteFile(ctx context.Context, credential string, classID, assignmentID, fileID int64) error {
	return r.client.Do(ctx, apiclient.Request{
		Method:     http.MethodDelete,
		Route:      routeDeleteFile,
		Path:       apiclient.Path("/class", classID, "assignment", assignmentID, "delete-file", fileID),
		Credential: credential,
	}, nil)
}

// Cancel withdraws the caller's submission.
func (r *SubmissionRepository) Cancel(ctx context.Context, credential string, classID, assignmentID int64) error {
	return r.client.Do(ctx, apiclient.Request{
		Method:     http.MethodDelete,
		Route:      routeCancelSubmission,
		Path:       apiclient.Path("/class", classID, "assignment", assignmentID, "cancel-submission"),
		Credential: credential,
	}, nil)
}

// List returns the class submissions in collaborator order.
func (r *SubmissionRepository) List(ctx context.Context, credential string, classID int64) ([]models.SubmissionListItem, error) {
	items := make([]models.SubmissionListItem, 0)
	err := r.client.Do(ctx, apiclient.Request{
		Method:     http.MethodGet,
		Route:      routeSubmissions,
		Path:       apiclient.Path("/class", classID, "submissions"),
		Credential: credential,
	}, &items)
	if err != nil {
		return nil, err
	}
	return items, nil
}

// Get returns one submission with its files.
func (r *SubmissionRepository) Get(ctx context.Context, credential string, classID, submissionID int64) (*models.SubmissionDetail, error) {
	var detail models.SubmissionDetail
	err := r.client.Do(ctx, apiclient.Request{
		Method:     http.MethodGet,
		Route:      routeSubmission,
		Path:       apiclient.Path("/class", classID, "submissions", submissionID),
		Credential: credential,
	}, &detail)
	if err != nil {
		return nil, err
	}
	return &detail, nil
}

// Grade sets the grade of a submission.
func (r *SubmissionRepository) Grade(ctx context.Context, credential string, classID, submissionID int64, grade float64) error {
	return r.client.Do(ctx, apiclient.Request{
		Method:     http.MethodPost,
		Route:      routeGrade,
		Path:       apiclient.Path("/class", classID, "submissions", submissionID, "grade"),
		Credential: credential,
		JSON:       models.GradeRequest{Grade: grade},
	}, nil)
}

// CancelGrade clears the grade of a submission.
func (r *SubmissionRepository) CancelGrade(ctx context.Context, credential string, classID, submissionID int64) error {
	return r.client.Do(ctx, apiclient.Request{
		Method:     http.MethodPut,
		Route:      routeCancelGrade,
		Path:       apiclient.Path("/class", classID, "submissions", submissionID, "cancel-grade"),
		Credential: credential,
	}, nil)
}

// DownloadFile streams a submission file.
func (r *SubmissionRepository) DownloadFile(ctx context.Context, credential string, classID, fileID int64) (*models.Download, error) {
	stream, err := r.client.Stream(ctx, apiclient.Request{
		Method:     http.MethodGet,
		Route:      routeSubmissionFile,
		Path:       apiclient.Path("/class", classID, "download-submission-file", fileID),
		Credential: credential,
	})
	if err != nil {
		return nil, err
	}
	return toDownload(stream), nil
}
