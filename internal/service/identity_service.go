package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/dpointtt/sun-class-app/internal/models"
	appErrors "github.com/dpointtt/sun-class-app/pkg/errors"
)

type roleReader interface {
	Role(ctx context.Context, credential string, classID int64) (*models.ClassRoleResponse, error)
}

// IdentityService resolves the caller's role within a class.
type IdentityService struct {
	roles  roleReader
	logger *zap.Logger
}

// NewIdentityService constructs IdentityService.
func NewIdentityService(roles roleReader, logger *zap.Logger) *IdentityService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &IdentityService{roles: roles, logger: logger}
}

// Resolve returns base scoped to classID. On failure the returned identity is unresolved,
// so no teacher or member guard passes.
func (s *IdentityService) Resolve(ctx context.Context, base models.Identity, classID int64) (models.Identity, error) {
	unresolved := base
	unresolved.ClassID = classID
	unresolved.IsTeacher = false
	unresolved.Resolved = false

	if err := requireCredential(base); err != nil {
		return unresolved, err
	}
	role, err := s.roles.Role(ctx, base.Credential, classID)
	if err != nil {
		return unresolved, s.fail("resolve class role", err, zap.Int64("class_id", classID))
	}

	resolved := unresolved
	resolved.IsTeacher = role.IsTeacher
	resolved.Resolved = true
	return resolved, nil
}

func (s *IdentityService) fail(op string, err error, fields ...zap.Field) error {
	return logFailure(s.logger, op, err, fields...)
}

func requireCredential(id models.Identity) error {
	if !id.Authenticated() {
		return appErrors.Clone(appErrors.ErrUnauthorized, "Authentication required")
	}
	return nil
}

func requireMember(id models.Identity, classID int64) error {
	if err := requireCredential(id); err != nil {
		return err
	}
	if !id.MemberOf(classID) {
		return appErrors.Clone(appErrors.ErrForbidden, "You are not a member of this class")
	}
	return nil
}

func requireTeacher(id models.Identity, classID int64) error {
	if err := requireMember(id, classID); err != nil {
		return err
	}
	if !id.IsTeacher {
		return appErrors.Clone(appErrors.ErrForbidden, "Only the class teacher can do this")
	}
	return nil
}

// logFailure records a failed collaborator call and returns it as a typed error.
func logFailure(logger *zap.Logger, op string, err error, fields ...zap.Field) error {
	appErr := appErrors.FromError(err)
	fields = append(fields, zap.String("kind", appErr.Kind), zap.Int("status", appErr.Status), zap.Error(err))
	switch appErr.Kind {
	case appErrors.KindTransport, appErrors.KindInternal:
		logger.Error(op+" failed", fields...)
	default:
		logger.Warn(op+" failed", fields...)
	}
	return appErr
}
