// Package apiclient is the session transport to the Classroom API. Every call
// carries the caller's credential as a cookie, forwards the request id and maps
// non-success statuses onto the typed error taxonomy.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	appErrors "github.com/dpointtt/sun-class-app/pkg/errors"
	"github.com/dpointtt/sun-class-app/pkg/middleware/requestid"
)

const maxErrorBody = 4 << 10

// Observer receives one sample per collaborator call. Status is 0 when the call never got an answer.
type Observer interface {
	ObserveUpstream(method, route string, status int, duration time.Duration)
}

// Options configures a Client.
type Options struct {
	BaseURL    string
	Timeout    time.Duration
	CookieName string
	HTTPClient *http.Client
	Logger     *zap.Logger
	Observer   Observer
}

// Client talks to the Classroom API on behalf of a browser session.
type Client struct {
	baseURL    string
	cookieName string
	http       *http.Client
	logger     *zap.Logger
	observer   Observer
}

// Request describes one collaborator call. Route is the path template used for metrics.
// Multipart sends Files as a form even when the slice is empty.
type Request struct {
	Method     string
	Route      string
	Path       string
	Credential string
	JSON       interface{}
	Multipart  bool
	Files      []File
}

// Stream is a streamed response body. The caller closes Body.
type Stream struct {
	Body        io.ReadCloser
	ContentType string
	FileName    string
	Size        int64
}

// New constructs a Client.
func New(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 15 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	cookieName := opts.CookieName
	if cookieName == "" {
		cookieName = "auth_token"
	}
	return &Client{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		cookieName: cookieName,
		http:       httpClient,
		logger:     logger,
		observer:   opts.Observer,
	}
}

// CookieName returns the name of the credential cookie.
func (c *Client) CookieName() string {
	return c.cookieName
}

// Do performs the call and decodes a JSON answer into out when out is non-nil.
func (c *Client) Do(ctx context.Context, req Request, out interface{}) error {
	resp, err := c.send(ctx, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close() //nolint:errcheck
	return decode(resp, out)
}

// Exchange performs the call and returns the credential cookie the collaborator set.
func (c *Client) Exchange(ctx context.Context, req Request, out interface{}) (string, error) {
	resp, err := c.send(ctx, req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close() //nolint:errcheck
	if err := decode(resp, out); err != nil {
		return "", err
	}
	for _, cookie := range resp.Cookies() {
		if cookie.Name == c.cookieName && cookie.Value != "" {
			return cookie.Value, nil
		}
	}
	return "", appErrors.Clone(appErrors.ErrRejected, "classroom api did not issue a credential")
}

// Stream performs the call and hands back the body unread.
func (c *Client) Stream(ctx context.Context, req Request) (*Stream, error) {
	resp, err := c.send(ctx, req)
	if err != nil {
		return nil, err
	}
	return &Stream{
		Body:        resp.Body,
		ContentType: resp.Header.Get("Content-Type"),
		FileName:    fileNameFromDisposition(resp.Header.Get("Content-Disposition")),
		Size:        resp.ContentLength,
	}, nil
}

// send dispatches exactly one HTTP request. Non-2xx answers are returned as typed errors
// with the body already closed.
func (c *Client) send(ctx context.Context, req Request) (*http.Response, error) {
	httpReq, err := c.build(ctx, req)
	if err != nil {
		return nil, err
	}

	route := req.Route
	if route == "" {
		route = req.Path
	}

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	elapsed := time.Since(start)
	if err != nil {
		c.observe(req.Method, route, 0, elapsed)
		c.logger.Warn("classroom api unreachable",
			zap.String("method", req.Method),
			zap.String("route", route),
			zap.Error(err),
		)
		return nil, appErrors.Wrap(err, appErrors.ErrTransport, "Failed to reach the classroom service")
	}
	c.observe(req.Method, route, resp.StatusCode, elapsed)

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		c.logger.Debug("classroom api call",
			zap.String("method", req.Method),
			zap.String("route", route),
			zap.Int("status", resp.StatusCode),
			zap.Duration("latency", elapsed),
		)
		return resp, nil
	}

	defer resp.Body.Close() //nolint:errcheck
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	message := errorMessage(body)
	c.logger.Info("classroom api rejected call",
		zap.String("method", req.Method),
		zap.String("route", route),
		zap.Int("status", resp.StatusCode),
		zap.String("message", message),
	)
	if resp.StatusCode == http.StatusUnauthorized && req.Credential != "" {
		return nil, appErrors.Clone(appErrors.ErrSessionExpired, message)
	}
	return nil, appErrors.FromStatus(resp.StatusCode, message)
}

func (c *Client) build(ctx context.Context, req Request) (*http.Request, error) {
	var (
		body        io.Reader
		contentType string
	)
	switch {
	case req.Multipart:
		payload, ct, err := encodeMultipart(req.Files)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrValidation, "Failed to read uploaded files")
		}
		body, contentType = payload, ct
	case req.JSON != nil:
		payload, err := json.Marshal(req.JSON)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal, "failed to encode request")
		}
		body, contentType = bytes.NewReader(payload), "application/json"
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, c.baseURL+req.Path, body)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal, "failed to build request")
	}
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	httpReq.Header.Set("Accept", "application/json")
	if id := requestid.FromContext(ctx); id != "" {
		httpReq.Header.Set(requestid.HeaderKey, id)
	}
	if req.Credential != "" {
		httpReq.AddCookie(&http.Cookie{Name: c.cookieName, Value: req.Credential})
	}
	return httpReq, nil
}

func (c *Client) observe(method, route string, status int, d time.Duration) {
	if c.observer != nil {
		c.observer.ObserveUpstream(method, route, status, d)
	}
}

func decode(resp *http.Response, out interface{}) error {
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return appErrors.Wrap(err, appErrors.ErrTransport, "Unexpected answer from the classroom service")
	}
	return nil
}

// errorMessage accepts plain-text bodies as well as {"error": "..."} / {"message": "..."} objects.
func errorMessage(body []byte) string {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var payload struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}
		if json.Unmarshal(trimmed, &payload) == nil {
			if payload.Error != "" {
				return payload.Error
			}
			if payload.Message != "" {
				return payload.Message
			}
		}
	}
	return string(trimmed)
}

// Path joins escaped segments onto a route, e.g. Path("/class", 3, "assignment", 9).
func Path(segments ...interface{}) string {
	var b strings.Builder
	for i, segment := range segments {
		s := fmt.Sprint(segment)
		if i == 0 && strings.HasPrefix(s, "/") {
			b.WriteString(s)
			continue
		}
		b.WriteByte('/')
		b.WriteString(url.PathEscape(s))
	}
	return b.String()
}
