package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromStatusMapsCollaboratorStatuses(t *testing.T) {
	cases := []struct {
		status int
		code   string
	}{
		{http.StatusBadRequest, ErrBadRequest.Code},
		{http.StatusUnauthorized, ErrUnauthorized.Code},
		{http.StatusForbidden, ErrForbidden.Code},
		{http.StatusNotFound, ErrNotFound.Code},
		{http.StatusConflict, ErrConflict.Code},
		{http.StatusUnprocessableEntity, ErrUnprocessable.Code},
		{http.StatusInternalServerError, ErrRejected.Code},
	}
	for _, tc := range cases {
		err := FromStatus(tc.status, " Classroom not found\n")
		assert.Equal(t, tc.code, err.Code)
		assert.Equal(t, KindRejected, err.Kind)
		assert.Equal(t, "Classroom not found", err.Message)
		assert.True(t, IsRejected(err))
	}
	assert.Equal(t, http.StatusInternalServerError, FromStatus(http.StatusInternalServerError, "").Status)
}

func TestFromStatusKeepsTemplateMessageWhenBodyEmpty(t *testing.T) {
	err := FromStatus(http.StatusNotFound, "")
	assert.Equal(t, ErrNotFound.Message, err.Message)
}

func TestWrapKeepsKindAndUnwraps(t *testing.T) {
	cause := fmt.Errorf("dial tcp: connection refused")
	err := Wrap(cause, ErrTransport, "failed to reach classroom api")

	assert.True(t, IsTransport(err))
	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, ErrTransport)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestFromErrorNormalisesUnknownErrors(t *testing.T) {
	err := FromError(errors.New("boom"))
	require.NotNil(t, err)
	assert.Equal(t, ErrInternal.Code, err.Code)
	assert.Nil(t, FromError(nil))

	typed := Clone(ErrValidation, "Title is required.")
	assert.Same(t, typed, FromError(fmt.Errorf("wrapped: %w", typed)))
}

func TestKindHelpers(t *testing.T) {
	assert.True(t, IsValidation(ErrValidation))
	assert.True(t, IsSessionExpired(ErrSessionExpired))
	assert.False(t, IsSessionExpired(ErrUnauthorized))
	assert.False(t, IsRejected(errors.New("plain")))
}
