package repository

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dpointtt/sun-class-app/internal/models"
	"github.com/dpointtt/sun-class-app/pkg/apiclient"
)

type recorded struct {
	method, path, contentType, body string
}

type callLog struct {
	mu    sync.Mutex
	items []recorded
}

func (l *callLog) add(r recorded) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.items = append(l.items, r)
}

func (l *callLog) len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.items)
}

func (l *callLog) at(i int) recorded {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.items[i]
}

func newRecorder(t *testing.T) (*apiclient.Client, *callLog) {
	t.Helper()
	calls := &callLog{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		calls.add(recorded{r.Method, r.URL.Path, r.Header.Get("Content-Type"), string(body)})
		if cookie, err := r.Cookie("auth_token"); err != nil || cookie.Value != "cred" {
			if !strings.HasPrefix(r.URL.Path, "/api/auth/") {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			http.SetCookie(w, &http.Cookie{Name: "auth_token", Value: "issued"})
		}
		switch {
		case strings.HasSuffix(r.URL.Path, "/submissions"):
			_, _ = io.WriteString(w, `[{"id":2},{"id":1}]`)
		case strings.Contains(r.URL.Path, "/download-"):
			w.Header().Set("Content-Type", "application/pdf")
			_, _ = io.WriteString(w, "%PDF")
		default:
			_, _ = io.WriteString(w, `{}`)
		}
	}))
	t.Cleanup(srv.Close)
	return apiclient.New(apiclient.Options{BaseURL: srv.URL + "/api"}), calls
}

func TestRepositoriesHonourCollaboratorContract(t *testing.T) {
	client, calls := newRecorder(t)
	ctx := context.Background()
	classes := NewClassroomRepository(client)
	assignments := NewAssignmentRepository(client)
	submissions := NewSubmissionRepository(client)
	accounts := NewAccountRepository(client)
	file := []models.UploadFile{{FileName: "hw1.pdf", ContentType: "application/pdf", Content: strings.NewReader("%PDF-1.4")}}

	steps := []struct {
		verb, path string
		call       func() error
	}{
		{"POST", "/api/class/create", func() error { _, err := classes.Create(ctx, "cred", models.CreateClassRequest{Title: "Algebra I"}); return err }},
		{"GET", "/api/class/3", func() error { _, err := classes.Get(ctx, "cred", 3); return err }},
		{"POST", "/api/class/join", func() error { return classes.Join(ctx, "cred", models.JoinClassRequest{JoinCode: "abc"}) }},
		{"POST", "/api/class/3/create-assignment", func() error {
			_, err := assignments.Create(ctx, "cred", 3, models.CreateAssignmentRequest{Title: "HW1"})
			return err
		}},
		{"GET", "/api/class/3/assignment/9", func() error { _, err := assignments.Get(ctx, "cred", 3, 9); return err }},
		{"POST", "/api/class/3/assignment/9/submit", func() error { return submissions.Submit(ctx, "cred", 3, 9, file) }},
		{"DELETE", "/api/class/3/assignment/9/delete-file/5", func() error { return submissions.DeleteFile(ctx, "cred", 3, 9, 5) }},
		{"DELETE", "/api/class/3/assignment/9/cancel-submission", func() error { return submissions.Cancel(ctx, "cred", 3, 9) }},
		{"POST", "/api/class/3/assignment/9/add-materials", func() error { return assignments.AddMaterials(ctx, "cred", 3, 9, file) }},
		{"GET", "/api/class/3/submissions", func() error { _, err := submissions.List(ctx, "cred", 3); return err }},
		{"GET", "/api/class/3/submissions/4", func() error { _, err := submissions.Get(ctx, "cred", 3, 4); return err }},
		{"POST", "/api/class/3/submissions/4/grade", func() error { return submissions.Grade(ctx, "cred", 3, 4, 92) }},
		{"PUT", "/api/class/3/submissions/4/cancel-grade", func() error { return submissions.CancelGrade(ctx, "cred", 3, 4) }},
		{"GET", "/api/class/3/download-submission-file/5", func() error {
			d, err := submissions.DownloadFile(ctx, "cred", 3, 5)
			if err == nil {
				_ = d.Body.Close()
			}
			return err
		}},
		{"GET", "/api/class/3/download-material-file/6", func() error {
			d, err := assignments.DownloadMaterial(ctx, "cred", 3, 6)
			if err == nil {
				_ = d.Body.Close()
			}
			return err
		}},
		{"GET", "/api/class/3/role", func() error { _, err := classes.Role(ctx, "cred", 3); return err }},
		{"GET", "/api/user/profile", func() error { _, err := accounts.Profile(ctx, "cred"); return err }},
		{"POST", "/api/user/profile/edit", func() error {
			_, err := accounts.EditProfile(ctx, "cred", models.EditProfileRequest{Name: "Ann"})
			return err
		}},
		{"GET", "/api/user/classes", func() error { _, err := classes.ListForUser(ctx, "cred"); return err }},
		{"GET", "/api/user", func() error { return accounts.Check(ctx, "cred") }},
		{"POST", "/api/auth/logout", func() error { return accounts.Logout(ctx, "cred") }},
	}

	for i, step := range steps {
		require.NoError(t, step.call(), step.path)
		require.Equal(t, i+1, calls.len(), "exactly one call per operation")
		got := calls.at(i)
		assert.Equal(t, step.verb, got.method, step.path)
		assert.Equal(t, step.path, got.path)
	}
}

func TestRepositoriesSendExpectedBodies(t *testing.T) {
	client, calls := newRecorder(t)
	ctx := context.Background()

	require.NoError(t, NewSubmissionRepository(client).Grade(ctx, "cred", 1, 2, 92))
	assert.JSONEq(t, `{"grade":92}`, calls.at(0).body)
	assert.Equal(t, "application/json", calls.at(0).contentType)

	require.NoError(t, NewSubmissionRepository(client).Submit(ctx, "cred", 1, 2, nil))
	assert.True(t, strings.HasPrefix(calls.at(1).contentType, "multipart/form-data"))

	_, err := NewAssignmentRepository(client).Create(ctx, "cred", 1, models.CreateAssignmentRequest{
		Title: "HW1", DueDate: "2025-01-10T23:59", Points: 100,
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"HW1","description":"","due_date":"2025-01-10T23:59","points":100}`, calls.at(2).body)
}

func TestSubmissionListKeepsCollaboratorOrder(t *testing.T) {
	client, _ := newRecorder(t)
	items, err := NewSubmissionRepository(client).List(context.Background(), "cred", 1)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.EqualValues(t, 2, items[0].ID)
	assert.EqualValues(t, 1, items[1].ID)
}

func TestLoginCapturesIssuedCredential(t *testing.T) {
	client, calls := newRecorder(t)
	cred, _, err := NewAccountRepository(client).Login(context.Background(), models.LoginRequest{Email: "a@b.c", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "issued", cred)
	assert.Equal(t, "/api/auth/login", calls.at(0).path)
}
