package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/dpointtt/sun-class-app/internal/dto"
	"github.com/dpointtt/sun-class-app/internal/models"
)

type classroomStore interface {
	Create(ctx context.Context, credential string, req models.CreateClassRequest) (*models.CreatedClass, error)
	Join(ctx context.Context, credential string, req models.JoinClassRequest) error
	Get(ctx context.Context, credential string, classID int64) (*models.ClassData, error)
	ListForUser(ctx context.Context, credential string) (*models.ClassList, error)
}

// ClassService creates, joins and loads classes.
type ClassService struct {
	classes   classroomStore
	validator *Validator
	logger    *zap.Logger
}

// NewClassService constructs ClassService.
func NewClassService(classes classroomStore, validate *Validator, logger *zap.Logger) *ClassService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ClassService{classes: classes, validator: validate, logger: logger}
}

// Create registers a class owned by the caller. An empty title never reaches the collaborator.
func (s *ClassService) Create(ctx context.Context, id models.Identity, form dto.CreateClassForm) (*models.CreatedClass, error) {
	form.Title = strings.TrimSpace(form.Title)
	if err := s.validator.Struct(form); err != nil {
		return nil, err
	}
	if err := requireCredential(id); err != nil {
		return nil, err
	}
	created, err := s.classes.Create(ctx, id.Credential, models.CreateClassRequest{
		Title:       form.Title,
		Description: strings.TrimSpace(form.Description),
	})
	if err != nil {
		return nil, logFailure(s.logger, "create class", err)
	}
	s.logger.Info("class created", zap.Int64("class_id", created.ID), zap.String("user_id", id.UserID))
	return created, nil
}

// Join enrols the caller with a join code.
func (s *ClassService) Join(ctx context.Context, id models.Identity, form dto.JoinClassForm) error {
	form.JoinCode = strings.TrimSpace(form.JoinCode)
	if err := s.validator.Struct(form); err != nil {
		return err
	}
	if err := requireCredential(id); err != nil {
		return err
	}
	if err := s.classes.Join(ctx, id.Credential, models.JoinClassRequest{JoinCode: form.JoinCode}); err != nil {
		return logFailure(s.logger, "join class", err)
	}
	return nil
}

// Load returns the class page for a caller whose role was resolved for classID.
func (s *ClassService) Load(ctx context.Context, id models.Identity, classID int64) (*models.ClassPage, error) {
	if err := requireMember(id, classID); err != nil {
		return nil, err
	}
	class, err := s.classes.Get(ctx, id.Credential, classID)
	if err != nil {
		return nil, logFailure(s.logger, "load class", err, zap.Int64("class_id", classID))
	}
	return &models.ClassPage{Class: class, IsTeacher: id.IsTeacher}, nil
}

// ListMine returns the caller's classes.
func (s *ClassService) ListMine(ctx context.Context, id models.Identity) (*models.ClassList, error) {
	if err := requireCredential(id); err != nil {
		return nil, err
	}
	list, err := s.classes.ListForUser(ctx, id.Credential)
	if err != nil {
		return nil, logFailure(s.logger, "list classes", err)
	}
	return list, nil
}
