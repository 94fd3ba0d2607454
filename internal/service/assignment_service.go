package service

import (
	"context"
	"math"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/dpointtt/sun-class-app/internal/dto"
	"github.com/dpointtt/sun-class-app/internal/models"
)

type assignmentStore interface {
	Create(ctx context.Context, credential string, classID int64, req models.CreateAssignmentRequest) (*models.CreatedAssignment, error)
	Get(ctx context.Context, credential string, classID, assignmentID int64) (*models.AssignmentData, error)
}

// AssignmentService creates and loads assignments.
type AssignmentService struct {
	assignments assignmentStore
	validator   *Validator
	logger      *zap.Logger
}

// NewAssignmentService constructs AssignmentService.
func NewAssignmentService(assignments assignmentStore, validate *Validator, logger *zap.Logger) *AssignmentService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssignmentService{assignments: assignments, validator: validate, logger: logger}
}

// Create adds an assignment. Invalid input is rejected before dispatch.
func (s *AssignmentService) Create(ctx context.Context, id models.Identity, classID int64, form dto.CreateAssignmentForm) (*models.CreatedAssignment, error) {
	form.Title = strings.TrimSpace(form.Title)
	form.DueDate = strings.TrimSpace(form.DueDate)
	form.Points = strings.TrimSpace(form.Points)
	if err := s.validator.Struct(form); err != nil {
		return nil, err
	}
	dueDate, err := ParseDueDate(form.DueDate)
	if err != nil {
		return nil, err
	}
	points, err := ParsePoints(form.Points)
	if err != nil {
		return nil, err
	}
	if err := requireTeacher(id, classID); err != nil {
		return nil, err
	}

	created, err := s.assignments.Create(ctx, id.Credential, classID, models.CreateAssignmentRequest{
		Title:       form.Title,
		Description: strings.TrimSpace(form.Description),
		DueDate:     dueDate,
		Points:      points,
	})
	if err != nil {
		return nil, logFailure(s.logger, "create assignment", err, zap.Int64("class_id", classID))
	}
	return created, nil
}

// Load returns the assignment as seen by the caller.
func (s *AssignmentService) Load(ctx context.Context, id models.Identity, classID, assignmentID int64) (*models.AssignmentData, error) {
	if err := requireMember(id, classID); err != nil {
		return nil, err
	}
	data, err := s.assignments.Get(ctx, id.Credential, classID, assignmentID)
	if err != nil {
		return nil, logFailure(s.logger, "load assignment", err,
			zap.Int64("class_id", classID), zap.Int64("assignment_id", assignmentID))
	}
	return data, nil
}

// ParsePoints accepts a non-negative whole number.
func ParsePoints(raw string) (int64, error) {
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, validationError("Points must be a number.")
	}
	if value < 0 || value != math.Trunc(value) || value > math.MaxInt32 {
		return 0, validationError("Points must be a non-negative whole number.")
	}
	return int64(value), nil
}

// ParseDueDate accepts the minute-precision layout or RFC 3339 and renders the former.
func ParseDueDate(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", validationError("Due date is required.")
	}
	if t, err := time.Parse(models.DueDateLayout, raw); err == nil {
		return t.Format(models.DueDateLayout), nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC().Format(models.DueDateLayout), nil
	}
	return "", validationError("Due date must look like 2025-01-10T23:59.")
}
