package repository

import (
	"context"
	"net/http"

	"github.com/dpointtt/sun-class-app/internal/models"
	"github.com/dpointtt/sun-class-app/pkg/apiclient"
)

// AssignmentRepository covers assignment records and their materials.
type AssignmentRepository struct {
	client *apiclient.Client
}

// NewAssignmentRepository creates a new instance of AssignmentRepository.
func NewAssignmentRepository(client *apiclient.Client) *AssignmentRepository {
	return &AssignmentRepository{client: client}
}

// Create adds an assignment to the class.
func (r *AssignmentRepository) Create(ctx context.Context, credential string, classID int64, req models.CreateAssignmentRequest) (*models.CreatedAssignment, error) {
	var created models.CreatedAssignment
	err := r.client.Do(ctx, apiclient.Request{
		Method:     http.MethodPost,
		Route:      routeCreateAssignment,
		Path:       apiclient.Path("/class", classID, "create-assignment"),
		Credential: credential,
		JSON:       req,
	}, &created)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// Get returns the assignment as seen by the caller.
func (r *AssignmentRepository) Get(ctx context.Context, credential string, classID, assignmentID int64) (*models.AssignmentData, error) {
	var data models.AssignmentData
	err := r.client.Do(ctx, apiclient.Request{
		Method:     http.MethodGet,
		Route:      routeAssignment,
		Path:       apiclient.Path("/class", classID, "assignment", assignmentID),
		Credential: credential,
	}, &data)
	if err != nil {
		return nil, err
	}
	return &data, nil
}

// AddMaterials attaches reference files to the assignment.
func (r *AssignmentRepository) AddMaterials(ctx context.Context, credential string, classID, assignmentID int64, files []models.UploadFile) error {
	return r.client.Do(ctx, apiclient.Request{
		Method:     http.MethodPost,
		Route:      routeAddMaterials,
		Path:       apiclient.Path("/class", classID, "assignment", assignmentID, "add-materials"),
		Credential: credential,
		Multipart:  true,
		Files:      toParts(files),
	}, nil)
}

// DownloadMaterial streams a material file.
func (r *AssignmentRepository) DownloadMaterial(ctx context.Context, credential string, classID, fileID int64) (*models.Download, error) {
	stream, err := r.client.Stream(ctx, apiclient.Request{
		Method:     http.MethodGet,
		Route:      routeMaterialFile,
		Path:       apiclient.Path("/class", classID, "download-material-file", fileID),
		Credential: credential,
	})
	if err != nil {
		return nil, err
	}
	return toDownload(stream), nil
}

func toParts(files []models.UploadFile) []apiclient.File {
	parts := make([]apiclient.File, 0, len(files))
	for _, f := range files {
		parts = append(parts, apiclient.File{Name: f.FileName, ContentType: f.ContentType, Content: f.Content})
	}
	return parts
}

func toDownload(s *apiclient.Stream) *models.Download {
	return &models.Download{Body: s.Body, ContentType: s.ContentType, FileName: s.FileName, Size: s.Size}
}
