package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/dpointtt/sun-class-app/internal/dto"
	"github.com/dpointtt/sun-class-app/internal/models"
	appErrors "github.com/dpointtt/sun-class-app/pkg/errors"
)

type accountStore interface {
	Login(ctx context.Context, req models.LoginRequest) (string, *models.AuthResponse, error)
	Register(ctx context.Context, req models.RegisterRequest) (string, *models.AuthResponse, error)
	Logout(ctx context.Context, credential string) error
	Check(ctx context.Context, credential string) error
}

type revocationStore interface {
	Revoke(ctx context.Context, credential string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, credential string) (bool, error)
}

type evictionRecorder interface {
	RecordSessionEviction(reason string)
}

// Eviction reasons reported to metrics.
const (
	EvictionExpired  = "expired"
	EvictionRevoked  = "revoked"
	EvictionRejected = "rejected"
	EvictionLogout   = "logout"
)

// SessionService signs callers in and out and decides whether a stored credential still
// identifies somebody.
type SessionService struct {
	accounts    accountStore
	revocations revocationStore
	validator   *Validator
	metrics     evictionRecorder
	logger      *zap.Logger
	now         func() time.Time
}

// NewSessionService constructs SessionService. revocations and metrics may be nil.
func NewSessionService(accounts accountStore, revocations revocationStore, validate *Validator, metrics evictionRecorder, logger *zap.Logger) *SessionService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionService{
		accounts:    accounts,
		revocations: revocations,
		validator:   validate,
		metrics:     metrics,
		logger:      logger,
		now:         time.Now,
	}
}

// Login exchanges the form for a fresh credential.
func (s *SessionService) Login(ctx context.Context, form dto.LoginForm) (string, *models.SessionResult, error) {
	form.Email = strings.TrimSpace(form.Email)
	if err := s.validator.Struct(form); err != nil {
		return "", nil, err
	}
	credential, resp, err := s.accounts.Login(ctx, models.LoginRequest{Email: form.Email, Password: form.Password})
	if err != nil {
		return "", nil, logFailure(s.logger, "login", err, zap.String("email", form.Email))
	}
	return credential, &models.SessionResult{UserID: resp.UserID, Email: resp.Email}, nil
}

// Register creates an account and signs it in.
func (s *SessionService) Register(ctx context.Context, form dto.RegisterForm) (string, *models.SessionResult, error) {
	form.Name = strings.TrimSpace(form.Name)
	form.Email = strings.TrimSpace(form.Email)
	if err := s.validator.Struct(form); err != nil {
		return "", nil, err
	}
	credential, resp, err := s.accounts.Register(ctx, models.RegisterRequest{Name: form.Name, Email: form.Email, Password: form.Password})
	if err != nil {
		return "", nil, logFailure(s.logger, "register", err, zap.String("email", form.Email))
	}
	return credential, &models.SessionResult{UserID: resp.UserID, Email: resp.Email}, nil
}

// Logout ends the collaborator session and revokes the credential locally either way.
func (s *SessionService) Logout(ctx context.Context, id models.Identity) error {
	if err := requireCredential(id); err != nil {
		return err
	}
	callErr := s.accounts.Logout(ctx, id.Credential)
	s.revoke(ctx, id.Credential, EvictionLogout)
	if callErr != nil {
		return logFailure(s.logger, "logout", callErr, zap.String("user_id", id.UserID))
	}
	return nil
}

// Authenticate turns a stored credential into an identity. Credentials that expired, were
// revoked or no longer resolve on the collaborator yield a session-expired error.
func (s *SessionService) Authenticate(ctx context.Context, credential string) (models.Identity, error) {
	if strings.TrimSpace(credential) == "" {
		return models.Identity{}, appErrors.Clone(appErrors.ErrUnauthorized, "Authentication required")
	}

	claims := inspectCredential(credential)
	if !claims.expiresAt.IsZero() && !s.now().Before(claims.expiresAt) {
		s.recordEviction(EvictionExpired)
		return models.Identity{}, appErrors.Clone(appErrors.ErrSessionExpired, "Session expired")
	}

	if s.revocations != nil {
		revoked, err := s.revocations.IsRevoked(ctx, credential)
		if err != nil {
			s.logger.Warn("revocation lookup failed", zap.Error(err))
		} else if revoked {
			s.recordEviction(EvictionRevoked)
			return models.Identity{}, appErrors.Clone(appErrors.ErrSessionExpired, "Session expired")
		}
	}

	if err := s.accounts.Check(ctx, credential); err != nil {
		if identityGone(err) {
			s.logger.Info("credential no longer resolves", zap.String("user_id", claims.subject), zap.Error(err))
			s.revoke(ctx, credential, EvictionRejected)
			return models.Identity{}, appErrors.Wrap(err, appErrors.ErrSessionExpired, "Session expired")
		}
		return models.Identity{}, logFailure(s.logger, "check identity", err)
	}

	return models.Identity{Credential: credential, UserID: claims.subject}, nil
}

// Expire revokes a credential a workflow call found to be stale.
func (s *SessionService) Expire(ctx context.Context, credential string) {
	s.revoke(ctx, credential, EvictionRejected)
}

func (s *SessionService) revoke(ctx context.Context, credential, reason string) {
	s.recordEviction(reason)
	if s.revocations == nil {
		return
	}
	if err := s.revocations.Revoke(ctx, credential, inspectCredential(credential).expiresAt); err != nil {
		s.logger.Warn("failed to revoke credential", zap.String("reason", reason), zap.Error(err))
	}
}

func (s *SessionService) recordEviction(reason string) {
	if s.metrics != nil {
		s.metrics.RecordSessionEviction(reason)
	}
}

// identityGone matches the answers of GET /user that mean the credential is dead.
func identityGone(err error) bool {
	var appErr *appErrors.Error
	if !errors.As(err, &appErr) {
		return false
	}
	if appErr.Kind == appErrors.KindSessionExpired {
		return true
	}
	if appErr.Kind != appErrors.KindRejected {
		return false
	}
	return appErr.Status == http.StatusNotFound || appErr.Status == http.StatusUnauthorized || appErr.Status >= http.StatusInternalServerError
}

type credentialClaims struct {
	subject   string
	expiresAt time.Time
}

// inspectCredential reads sub and exp without verifying the signature; the collaborator
// remains the authority on validity.
func inspectCredential(credential string) credentialClaims {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(credential, claims); err != nil {
		return credentialClaims{}
	}
	var out credentialClaims
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		out.expiresAt = exp.Time
	}
	switch sub := claims["sub"].(type) {
	case string:
		out.subject = sub
	case float64:
		out.subject = fmt.Sprintf("%.0f", sub)
	}
	return out
}
