package apiclient

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/dpointtt/sun-class-app/pkg/errors"
	"github.com/dpointtt/sun-class-app/pkg/middleware/requestid"
)

type recordingObserver struct {
	routes   []string
	statuses []int
}

func (o *recordingObserver) ObserveUpstream(method, route string, status int, _ time.Duration) {
	o.routes = append(o.routes, method+" "+route)
	o.statuses = append(o.statuses, status)
}

func TestDoAttachesCredentialAndRequestID(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		cookie, err := r.Cookie("auth_token")
		if assert.NoError(t, err) {
			assert.Equal(t, "cred-1", cookie.Value)
		}
		assert.Equal(t, "req-7", r.Header.Get(requestid.HeaderKey))
		assert.Equal(t, "/api/class/12/role", r.URL.Path)
		_, _ = io.WriteString(w, `{"is_teacher":true}`)
	}))
	defer srv.Close()

	obs := &recordingObserver{}
	client := New(Options{BaseURL: srv.URL + "/api/", Observer: obs})
	ctx := requestid.WithContext(context.Background(), "req-7")

	var out struct {
		IsTeacher bool `json:"is_teacher"`
	}
	err := client.Do(ctx, Request{
		Method:     http.MethodGet,
		Route:      "/class/{id}/role",
		Path:       Path("/class", 12, "role"),
		Credential: "cred-1",
	}, &out)
	require.NoError(t, err)
	assert.True(t, out.IsTeacher)
	assert.EqualValues(t, 1, atomic.LoadInt32(&hits))
	assert.Equal(t, []string{"GET /class/{id}/role"}, obs.routes)
	assert.Equal(t, []int{http.StatusOK}, obs.statuses)
}

func TestDoMapsRejections(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/conflict":
			http.Error(w, "You are already a member of this class", http.StatusConflict)
		case "/range":
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = io.WriteString(w, `{"error":"Grade must be between 0 and 100"}`)
		case "/expired":
			w.WriteHeader(http.StatusUnauthorized)
		}
	}))
	defer srv.Close()
	client := New(Options{BaseURL: srv.URL})

	err := client.Do(context.Background(), Request{Method: http.MethodPost, Path: "/conflict", Credential: "c"}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, appErrors.ErrConflict)
	assert.Equal(t, "You are already a member of this class", appErrors.FromError(err).Message)

	err = client.Do(context.Background(), Request{Method: http.MethodPost, Path: "/range", Credential: "c"}, nil)
	assert.ErrorIs(t, err, appErrors.ErrUnprocessable)
	assert.Equal(t, "Grade must be between 0 and 100", appErrors.FromError(err).Message)

	err = client.Do(context.Background(), Request{Method: http.MethodGet, Path: "/expired", Credential: "c"}, nil)
	assert.True(t, appErrors.IsSessionExpired(err))

	err = client.Do(context.Background(), Request{Method: http.MethodPost, Path: "/expired"}, nil)
	assert.ErrorIs(t, err, appErrors.ErrUnauthorized)
}

func TestDoReportsTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	obs := &recordingObserver{}
	client := New(Options{BaseURL: url, Observer: obs})
	err := client.Do(context.Background(), Request{Method: http.MethodGet, Path: "/user", Credential: "c"}, nil)
	assert.True(t, appErrors.IsTransport(err))
	assert.Equal(t, []int{0}, obs.statuses)
}

func TestExchangeCapturesCredentialCookie(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "auth_token", Value: "fresh", Path: "/"})
		_, _ = io.WriteString(w, `{"user_id":1,"email":"a@b.c"}`)
	}))
	defer srv.Close()

	client := New(Options{BaseURL: srv.URL})
	var out struct {
		UserID int64 `json:"user_id"`
	}
	cred, err := client.Exchange(context.Background(), Request{Method: http.MethodPost, Path: "/auth/login", JSON: map[string]string{"email": "a@b.c"}}, &out)
	require.NoError(t, err)
	assert.Equal(t, "fresh", cred)
	assert.EqualValues(t, 1, out.UserID)
}

func TestExchangeWithoutCookieIsRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{}`)
	}))
	defer srv.Close()

	_, err := New(Options{BaseURL: srv.URL}).Exchange(context.Background(), Request{Method: http.MethodPost, Path: "/auth/login"}, nil)
	assert.True(t, appErrors.IsRejected(err))
}

func TestStreamKeepsBodyAndFileName(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Header().Set("Content-Disposition", `attachment; filename="essay.txt"`)
		_, _ = io.WriteString(w, "hello")
	}))
	defer srv.Close()

	stream, err := New(Options{BaseURL: srv.URL}).Stream(context.Background(), Request{Method: http.MethodGet, Path: "/file", Credential: "c"})
	require.NoError(t, err)
	defer stream.Body.Close()

	body, err := io.ReadAll(stream.Body)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(body))
	assert.Equal(t, "essay.txt", stream.FileName)
	assert.Equal(t, "text/plain", stream.ContentType)
}

func TestPathEscapesSegments(t *testing.T) {
	assert.Equal(t, "/class/3/assignment/9", Path("/class", 3, "assignment", 9))
	assert.Equal(t, "/class/a%2Fb", Path("/class", "a/b"))
	assert.True(t, strings.HasPrefix(Path("/user"), "/user"))
}
