package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/dpointtt/sun-class-app/internal/models"
)

type materialStore interface {
	AddMaterials(ctx context.Context, credential string, classID, assignmentID int64, files []models.UploadFile) error
	DownloadMaterial(ctx context.Context, credential string, classID, fileID int64) (*models.Download, error)
}

// MaterialService attaches and serves teacher reference files.
type MaterialService struct {
	materials materialStore
	logger    *zap.Logger
}

// NewMaterialService constructs MaterialService.
func NewMaterialService(materials materialStore, logger *zap.Logger) *MaterialService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MaterialService{materials: materials, logger: logger}
}

// Save attaches at least one file to the assignment's materials.
func (s *MaterialService) Save(ctx context.Context, id models.Identity, classID, assignmentID int64, files []models.UploadFile) error {
	if len(files) == 0 {
		return validationError("Select at least one file.")
	}
	if err := requireTeacher(id, classID); err != nil {
		return err
	}
	if err := s.materials.AddMaterials(ctx, id.Credential, classID, assignmentID, files); err != nil {
		return logFailure(s.logger, "save materials", err,
			zap.Int64("class_id", classID), zap.Int64("assignment_id", assignmentID), zap.Int("files", len(files)))
	}
	return nil
}

// Download streams a material file.
func (s *MaterialService) Download(ctx context.Context, id models.Identity, classID, fileID int64) (*models.Download, error) {
	if err := requireMember(id, classID); err != nil {
		return nil, err
	}
	download, err := s.materials.DownloadMaterial(ctx, id.Credential, classID, fileID)
	if err != nil {
		return nil, logFailure(s.logger, "download material", err,
			zap.Int64("class_id", classID), zap.Int64("file_id", fileID))
	}
	return download, nil
}
