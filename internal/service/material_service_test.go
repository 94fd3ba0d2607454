package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dpointtt/sun-class-app/internal/models"
	appErrors "github.com/dpointtt/sun-class-app/pkg/errors"
)

func TestSaveMaterialsNeedsFiles(t *testing.T) {
	fake := &fakeCollaborator{}
	err := NewMaterialService(fake, nil).Save(context.Background(), teacher(3), 3, 9, nil)
	assert.Equal(t, "Select at least one file.", appErrors.FromError(err).Message)
	assert.Empty(t, fake.calls)
}

func TestSaveMaterialsIsTeacherOnly(t *testing.T) {
	fake := &fakeCollaborator{}
	svc := NewMaterialService(fake, nil)
	files := []models.UploadFile{{FileName: "notes.pdf", Content: strings.NewReader("x")}}

	assert.ErrorIs(t, svc.Save(context.Background(), student(3), 3, 9, files), appErrors.ErrForbidden)
	assert.Empty(t, fake.calls)

	require.NoError(t, svc.Save(context.Background(), teacher(3), 3, 9, files))
	assert.Equal(t, []string{"add_materials"}, fake.calls)
	assert.Len(t, fake.lastFiles, 1)
}

func TestDownloadMaterial(t *testing.T) {
	fake := &fakeCollaborator{}
	svc := NewMaterialService(fake, nil)

	_, err := svc.Download(context.Background(), models.Identity{Credential: "c"}, 3, 1)
	assert.ErrorIs(t, err, appErrors.ErrForbidden)

	download, err := svc.Download(context.Background(), student(3), 3, 1)
	require.NoError(t, err)
	defer download.Body.Close()
	assert.Equal(t, "m.txt", download.FileName)
}
