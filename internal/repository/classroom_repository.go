package repository

import (
	"context"
	"net/http"

	"github.com/dpointtt/sun-class-app/internal/models"
	"github.com/dpointtt/sun-class-app/pkg/apiclient"
)

// ClassroomRepository reads and writes class records through the Classroom API.
type ClassroomRepository struct {
	client *apiclient.Client
}

// NewClassroomRepository creates a new instance of ClassroomRepository.
func NewClassroomRepository(client *apiclient.Client) *ClassroomRepository {
	return &ClassroomRepository{client: client}
}

// Create registers a class owned by the caller.
func (r *ClassroomRepository) Create(ctx context.Context, credential string, req models.CreateClassRequest) (*models.CreatedClass, error) {
	var created models.CreatedClass
	err := r.client.Do(ctx, apiclient.Request{
		Method:     http.MethodPost,
		Route:      routeCreateClass,
		Path:       routeCreateClass,
		Credential: credential,
		JSON:       req,
	}, &created)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// Join enrols the caller with a join code.
func (r *ClassroomRepository) Join(ctx context.Context, credential string, req models.JoinClassRequest) error {
	return r.client.Do(ctx, apiclient.Request{
		Method:     http.MethodPost,
		Route:      routeJoinClass,
		Path:       routeJoinClass,
		Credential: credential,
		JSON:       req,
	}, nil)
}

// Get returns the class record.
func (r *ClassroomRepository) Get(ctx context.Context, credential string, classID int64) (*models.ClassData, error) {
	var class models.ClassData
	err := r.client.Do(ctx, apiclient.Request{
		Method:     http.MethodGet,
		Route:      routeClass,
		Path:       apiclient.Path("/class", classID),
		Credential: credential,
	}, &class)
	if err != nil {
		return nil, err
	}
	return &class, nil
}

// Role resolves the caller's role within the class.
func (r *ClassroomRepository) Role(ctx context.Context, credential string, classID int64) (*models.ClassRoleResponse, error) {
	var role models.ClassRoleResponse
	err := r.client.Do(ctx, apiclient.Request{
		Method:     http.MethodGet,
		Route:      routeClassRole,
		Path:       apiclient.Path("/class", classID, "role"),
		Credential: credential,
	}, &role)
	if err != nil {
		return nil, err
	}
	return &role, nil
}

// ListForUser returns the caller's classes grouped by role.
func (r *ClassroomRepository) ListForUser(ctx context.Context, credential string) (*models.ClassList, error) {
	var list models.ClassList
	err := r.client.Do(ctx, apiclient.Request{
		Method:     http.MethodGet,
		Route:      routeUserClasses,
		Path:       routeUserClasses,
		Credential: credential,
	}, &list)
	if err != nil {
		return nil, err
	}
	return &list, nil
}
