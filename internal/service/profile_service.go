package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/dpointtt/sun-class-app/internal/dto"
	"github.com/dpointtt/sun-class-app/internal/models"
)

type profileStore interface {
	Profile(ctx context.Context, credential string) (*models.UserProfile, error)
	EditProfile(ctx context.Context, credential string, req models.EditProfileRequest) (*models.UserProfile, error)
}

// ProfileService reads and edits the caller's profile.
type ProfileService struct {
	profiles  profileStore
	validator *Validator
	logger    *zap.Logger
}

// NewProfileService constructs ProfileService.
func NewProfileService(profiles profileStore, validate *Validator, logger *zap.Logger) *ProfileService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProfileService{profiles: profiles, validator: validate, logger: logger}
}

// Get returns the caller's profile.
func (s *ProfileService) Get(ctx context.Context, id models.Identity) (*models.UserProfile, error) {
	if err := requireCredential(id); err != nil {
		return nil, err
	}
	profile, err := s.profiles.Profile(ctx, id.Credential)
	if err != nil {
		return nil, logFailure(s.logger, "load profile", err)
	}
	return profile, nil
}

// Edit renames the caller.
func (s *ProfileService) Edit(ctx context.Context, id models.Identity, form dto.EditProfileForm) (*models.UserProfile, error) {
	form.Name = strings.TrimSpace(form.Name)
	form.AvatarURL = strings.TrimSpace(form.AvatarURL)
	if err := s.validator.Struct(form); err != nil {
		return nil, err
	}
	if err := requireCredential(id); err != nil {
		return nil, err
	}
	profile, err := s.profiles.EditProfile(ctx, id.Credential, models.EditProfileRequest{Name: form.Name, AvatarURL: form.AvatarURL})
	if err != nil {
		return nil, logFailure(s.logger, "edit profile", err)
	}
	return profile, nil
}
