package service

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dpointtt/sun-class-app/internal/dto"
	"github.com/dpointtt/sun-class-app/internal/models"
	appErrors "github.com/dpointtt/sun-class-app/pkg/errors"
)

func signCredential(t *testing.T, sub string, exp time.Time) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": sub,
		"exp": exp.Unix(),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func TestAuthenticateWithoutCredential(t *testing.T) {
	fake := &fakeCollaborator{}
	_, err := NewSessionService(fake, nil, nil, nil, nil).Authenticate(context.Background(), " ")
	assert.ErrorIs(t, err, appErrors.ErrUnauthorized)
	assert.Empty(t, fake.calls)
}

func TestAuthenticateExpiredCredentialSkipsCollaborator(t *testing.T) {
	fake := &fakeCollaborator{}
	evictions := &fakeEvictions{}
	svc := NewSessionService(fake, nil, nil, evictions, nil)

	_, err := svc.Authenticate(context.Background(), signCredential(t, "7", time.Now().Add(-time.Minute)))
	assert.True(t, appErrors.IsSessionExpired(err))
	assert.Empty(t, fake.calls)
	assert.Equal(t, []string{EvictionExpired}, evictions.reasons)
}

func TestAuthenticateRevokedCredential(t *testing.T) {
	fake := &fakeCollaborator{}
	credential := signCredential(t, "7", time.Now().Add(time.Hour))
	revocations := &fakeRevocations{revoked: map[string]time.Time{credential: time.Now().Add(time.Hour)}}
	svc := NewSessionService(fake, revocations, nil, nil, nil)

	_, err := svc.Authenticate(context.Background(), credential)
	assert.True(t, appErrors.IsSessionExpired(err))
	assert.Empty(t, fake.calls)
}

func TestAuthenticateResolvesSubject(t *testing.T) {
	fake := &fakeCollaborator{}
	credential := signCredential(t, "7", time.Now().Add(time.Hour))
	svc := NewSessionService(fake, &fakeRevocations{}, nil, nil, nil)

	id, err := svc.Authenticate(context.Background(), credential)
	require.NoError(t, err)
	assert.Equal(t, "7", id.UserID)
	assert.Equal(t, credential, id.Credential)
	assert.False(t, id.Resolved)
	assert.Equal(t, []string{"check"}, fake.calls)
}

func TestAuthenticateOpaqueCredentialIsCheckedUpstream(t *testing.T) {
	fake := &fakeCollaborator{}
	id, err := NewSessionService(fake, nil, nil, nil, nil).Authenticate(context.Background(), "opaque-token")
	require.NoError(t, err)
	assert.Empty(t, id.UserID)
	assert.Equal(t, []string{"check"}, fake.calls)
}

func TestAuthenticateGoneIdentityRevokesCredential(t *testing.T) {
	for _, status := range []int{http.StatusNotFound, http.StatusUnauthorized, http.StatusInternalServerError} {
		fake := &fakeCollaborator{err: appErrors.FromStatus(status, "")}
		revocations := &fakeRevocations{}
		evictions := &fakeEvictions{}
		svc := NewSessionService(fake, revocations, nil, evictions, nil)
		exp := time.Now().Add(time.Hour).Truncate(time.Second)
		credential := signCredential(t, "7", exp)

		_, err := svc.Authenticate(context.Background(), credential)
		assert.True(t, appErrors.IsSessionExpired(err), status)
		require.Contains(t, revocations.revoked, credential)
		assert.True(t, exp.Equal(revocations.revoked[credential]))
		assert.Equal(t, []string{EvictionRejected}, evictions.reasons)
	}
}

func TestAuthenticateTransportFailureKeepsCredential(t *testing.T) {
	fake := &fakeCollaborator{err: appErrors.Wrap(errors.New("connection refused"), appErrors.ErrTransport, "Failed to reach the classroom service")}
	revocations := &fakeRevocations{}
	svc := NewSessionService(fake, revocations, nil, nil, nil)

	_, err := svc.Authenticate(context.Background(), "opaque-token")
	assert.True(t, appErrors.IsTransport(err))
	assert.Empty(t, revocations.revoked)
}

func TestAuthenticateIgnoresRevocationLookupFailure(t *testing.T) {
	fake := &fakeCollaborator{}
	svc := NewSessionService(fake, &fakeRevocations{err: errors.New("redis down")}, nil, nil, nil)

	_, err := svc.Authenticate(context.Background(), "opaque-token")
	require.NoError(t, err)
	assert.Equal(t, []string{"check"}, fake.calls)
}

func TestLoginValidatesBeforeDispatch(t *testing.T) {
	fake := &fakeCollaborator{issued: "issued-token"}
	svc := NewSessionService(fake, nil, nil, nil, nil)

	_, _, err := svc.Login(context.Background(), dto.LoginForm{Email: "", Password: "x"})
	assert.Equal(t, "Email is required.", appErrors.FromError(err).Message)
	_, _, err = svc.Login(context.Background(), dto.LoginForm{Email: "not-an-email", Password: "x"})
	assert.True(t, appErrors.IsValidation(err))
	assert.Empty(t, fake.calls)

	credential, result, err := svc.Login(context.Background(), dto.LoginForm{Email: " ann@example.com ", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, "issued-token", credential)
	assert.Equal(t, "ann@example.com", result.Email)
}

func TestLoginSurfacesRejection(t *testing.T) {
	fake := &fakeCollaborator{err: appErrors.FromStatus(http.StatusUnauthorized, "Invalid email or password")}
	_, _, err := NewSessionService(fake, nil, nil, nil, nil).Login(context.Background(), dto.LoginForm{Email: "ann@example.com", Password: "bad"})
	assert.ErrorIs(t, err, appErrors.ErrUnauthorized)
	assert.Equal(t, "Invalid email or password", appErrors.FromError(err).Message)
}

func TestRegister(t *testing.T) {
	fake := &fakeCollaborator{issued: "issued-token"}
	svc := NewSessionService(fake, nil, nil, nil, nil)

	_, _, err := svc.Register(context.Background(), dto.RegisterForm{Name: "Ann", Email: "ann@example.com", Password: "123"})
	assert.True(t, appErrors.IsValidation(err))

	credential, result, err := svc.Register(context.Background(), dto.RegisterForm{Name: "Ann", Email: "ann@example.com", Password: "123456"})
	require.NoError(t, err)
	assert.Equal(t, "issued-token", credential)
	assert.EqualValues(t, 8, result.UserID)
}

func TestLogoutRevokesEvenWhenCollaboratorFails(t *testing.T) {
	fake := &fakeCollaborator{err: appErrors.Clone(appErrors.ErrTransport, "down")}
	revocations := &fakeRevocations{}
	evictions := &fakeEvictions{}
	svc := NewSessionService(fake, revocations, nil, evictions, nil)

	err := svc.Logout(context.Background(), models.Identity{Credential: "opaque-token"})
	assert.True(t, appErrors.IsTransport(err))
	assert.Contains(t, revocations.revoked, "opaque-token")
	assert.Equal(t, []string{EvictionLogout}, evictions.reasons)
}

func TestExpireRevokes(t *testing.T) {
	revocations := &fakeRevocations{}
	NewSessionService(&fakeCollaborator{}, revocations, nil, nil, nil).Expire(context.Background(), "opaque-token")
	assert.Contains(t, revocations.revoked, "opaque-token")
}
