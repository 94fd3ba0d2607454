package repository

import (
	"context"
	"net/http"

	"github.com/dpointtt/sun-class-app/internal/models"
	"github.com/dpointtt/sun-class-app/pkg/apiclient"
)

// AccountRepository covers authentication and the caller's profile.
type AccountRepository struct {
	client *apiclient.Client
}

// NewAccountRepository creates a new instance of AccountRepository.
func NewAccountRepository(client *apiclient.Client) *AccountRepository {
	return &AccountRepository{client: client}
}

// Login exchanges email and password for a credential.
func (r *AccountRepository) Login(ctx context.Context, req models.LoginRequest) (string, *models.AuthResponse, error) {
	return r.exchange(ctx, routeLogin, req)
}

// Register creates an account and returns its first credential.
func (r *AccountRepository) Register(ctx context.Context, req models.RegisterRequest) (string, *models.AuthResponse, error) {
	return r.exchange(ctx, routeRegister, req)
}

func (r *AccountRepository) exchange(ctx context.Context, route string, payload interface{}) (string, *models.AuthResponse, error) {
	var resp models.AuthResponse
	credential, err := r.client.Exchange(ctx, apiclient.Request{
		Method: http.MethodPost,
		Route:  route,
		Path:   route,
		JSON:   payload,
	}, &resp)
	if err != nil {
		return "", nil, err
	}
	return credential, &resp, nil
}

// Logout ends the collaborator session.
func (r *AccountRepository) Logout(ctx context.Context, credential string) error {
	return r.client.Do(ctx, apiclient.Request{
		Method:     http.MethodPost,
		Route:      routeLogout,
		Path:       routeLogout,
		Credential: credential,
	}, nil)
}

// Check verifies that the credential still resolves to a user.
func (r *AccountRepository) Check(ctx context.Context, credential string) error {
	return r.client.Do(ctx, apiclient.Request{
		Method:     http.MethodGet,
		Route:      routeUser,
		Path:       routeUser,
		Credential: credential,
	}, nil)
}

// Profile returns the caller's profile.
func (r *AccountRepository) Profile(ctx context.Context, credential string) (*models.UserProfile, error) {
	var profile models.UserProfile
	err := r.client.Do(ctx, apiclient.Request{
		Method:     http.MethodGet,
		Route:      routeProfile,
		Path:       routeProfile,
		Credential: credential,
	}, &profile)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// EditProfile updates the caller's profile.
func (r *AccountRepository) EditProfile(ctx context.Context, credential string, req models.EditProfileRequest) (*models.UserProfile, error) {
	var profile models.UserProfile
	err := r.client.Do(ctx, apiclient.Request{
		Method:     http.MethodPost,
		Route:      routeEditProfile,
		Path:       routeEditProfile,
		Credential: credential,
		JSON:       req,
	}, &profile)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}
