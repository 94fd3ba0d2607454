package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dpointtt/sun-class-app/internal/dto"
	"github.com/dpointtt/sun-class-app/internal/models"
	appErrors "github.com/dpointtt/sun-class-app/pkg/errors"
)

func TestProfileGet(t *testing.T) {
	fake := &fakeCollaborator{profile: &models.UserProfile{ID: 7, Name: "Ann"}}
	svc := NewProfileService(fake, nil, nil)

	_, err := svc.Get(context.Background(), models.Identity{})
	assert.ErrorIs(t, err, appErrors.ErrUnauthorized)

	profile, err := svc.Get(context.Background(), models.Identity{Credential: "c"})
	require.NoError(t, err)
	assert.Equal(t, "Ann", profile.Name)
}

func TestProfileEditValidates(t *testing.T) {
	fake := &fakeCollaborator{}
	svc := NewProfileService(fake, nil, nil)

	_, err := svc.Edit(context.Background(), models.Identity{Credential: "c"}, dto.EditProfileForm{Name: " "})
	assert.Equal(t, "Name is required.", appErrors.FromError(err).Message)

	_, err = svc.Edit(context.Background(), models.Identity{Credential: "c"}, dto.EditProfileForm{Name: "Ann", AvatarURL: "not a url"})
	assert.True(t, appErrors.IsValidation(err))
	assert.Empty(t, fake.calls)

	profile, err := svc.Edit(context.Background(), models.Identity{Credential: "c"}, dto.EditProfileForm{Name: " Ann B "})
	require.NoError(t, err)
	assert.Equal(t, "Ann B", profile.Name)
}
