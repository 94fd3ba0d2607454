package service

import (
	"context"
	"math"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/dpointtt/sun-class-app/internal/models"
)

type gradeStore interface {
	Grade(ctx context.Context, credential string, classID, submissionID int64, grade float64) error
	CancelGrade(ctx context.Context, credential string, classID, submissionID int64) error
}

// GradingService grades submissions and withdraws grades.
// Range checks and submission existence are left to the collaborator.
type GradingService struct {
	grades gradeStore
	logger *zap.Logger
}

// NewGradingService constructs GradingService.
func NewGradingService(grades gradeStore, logger *zap.Logger) *GradingService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GradingService{grades: grades, logger: logger}
}

// Grade forwards a grade. A blank value is a no-op reported as applied == false with no error.
func (s *GradingService) Grade(ctx context.Context, id models.Identity, classID, submissionID int64, raw string) (bool, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		s.logger.Debug("blank grade ignored", zap.Int64("submission_id", submissionID))
		return false, nil
	}
	grade, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(grade) || math.IsInf(grade, 0) {
		return false, validationError("Grade must be a number.")
	}
	if err := requireTeacher(id, classID); err != nil {
		return false, err
	}
	if err := s.grades.Grade(ctx, id.Credential, classID, submissionID, grade); err != nil {
		return false, logFailure(s.logger, "grade submission", err,
			zap.Int64("class_id", classID), zap.Int64("submission_id", submissionID), zap.Float64("grade", grade))
	}
	return true, nil
}

// CancelGrade clears grade, grading time and grader. Submission time and files stay.
func (s *GradingService) CancelGrade(ctx context.Context, id models.Identity, classID, submissionID int64) error {
	if err := requireTeacher(id, classID); err != nil {
		return err
	}
	if err := s.grades.CancelGrade(ctx, id.Credential, classID, submissionID); err != nil {
		return logFailure(s.logger, "cancel grade", err,
			zap.Int64("class_id", classID), zap.Int64("submission_id", submissionID))
	}
	return nil
}
