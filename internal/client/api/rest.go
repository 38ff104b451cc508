package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"sync"
	"time"

	"github.com/dmitrijs2005/watchb/internal/client/models"
	"github.com/dmitrijs2005/watchb/internal/common"
)

const (
	csrfCookieName = "csrftoken"
	csrfHeaderName = "X-CSRFToken"

	requestTimeout = 15 * time.Second
)

// RESTClient implements Client over net/http. A single instance is shared by
// all services; the bearer token is guarded for concurrent use.
type RESTClient struct {
	baseURL *url.URL
	httpc   *http.Client

	mu     sync.RWMutex
	bearer string
}

// NewRESTClient builds a client for the given backend host
// (e.g. "http://localhost:8000"). The cookie jar is created empty; the server
// populates it with the refresh-token and csrftoken cookies.
func NewRESTClient(backendHost string) (*RESTClient, error) {
	base, err := url.Parse(backendHost)
	if err != nil {
		return nil, fmt.Errorf("invalid backend host %q: %w", backendHost, err)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}

	return &RESTClient{
		baseURL: base,
		httpc:   &http.Client{Jar: jar, Timeout: requestTimeout},
	}, nil
}

func (c *RESTClient) SetBearerToken(token string) {
	c.mu.Lock()
	c.bearer = token
	c.mu.Unlock()
}

func (c *RESTClient) bearerToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.bearer
}

// csrfToken returns the current value of the csrftoken cookie, or "" if the
// server has not set one yet.
func (c *RESTClient) csrfToken() string {
	for _, cookie := range c.httpc.Jar.Cookies(c.baseURL) {
		if cookie.Name == csrfCookieName {
			return cookie.Value
		}
	}
	return ""
}

func isStateChanging(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}

// do issues one request and decodes a JSON response into out (if non-nil).
// Status codes >= 400 are returned as *Error with the decoded body.
func (c *RESTClient) do(ctx context.Context, method, path string, contentType string, body io.Reader, out any) error {
	u := *c.baseURL
	rel, err := url.Parse(path)
	if err != nil {
		return fmt.Errorf("invalid request path %q: %w", path, err)
	}
	full := u.ResolveReference(rel)

	req, err := http.NewRequestWithContext(ctx, method, full.String(), body)
	if err != nil {
		return err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token := c.bearerToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if isStateChanging(method) {
		if csrf := c.csrfToken(); csrf != "" {
			req.Header.Set(csrfHeaderName, csrf)
		}
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w (%v)", method, path, common.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("%s %s: reading response: %w", method, path, err)
	}

	if resp.StatusCode >= 400 {
		return newError(resp.StatusCode, data)
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("%s %s: decoding response: %w", method, path, err)
		}
	}
	return nil
}

func (c *RESTClient) postJSON(ctx context.Context, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}
	return c.do(ctx, http.MethodPost, path, "application/json", body, out)
}

type tokenResponse struct {
	Access string `json:"access"`
}

func (c *RESTClient) SignUp(ctx context.Context, username, email, password string) (SignUpResult, error) {
	req := struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}{username, email, password}

	var res SignUpResult
	if err := c.postJSON(ctx, "/api/users/", req, &res); err != nil {
		return SignUpResult{}, err
	}
	return res, nil
}

func (c *RESTClient) ObtainTokenPair(ctx context.Context, email, password string) (string, error) {
	req := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{email, password}

	var res tokenResponse
	if err := c.postJSON(ctx, "/api/auth/token-pair/obtain/", req, &res); err != nil {
		return "", err
	}
	return res.Access, nil
}

func (c *RESTClient) RefreshTokenPair(ctx context.Context) (string, error) {
	var res tokenResponse
	if err := c.postJSON(ctx, "/api/auth/token-pair/refresh/", nil, &res); err != nil {
		return "", err
	}
	return res.Access, nil
}

func (c *RESTClient) ExpireRefreshToken(ctx context.Context) error {
	return c.postJSON(ctx, "/api/auth/refresh-token/expire/", nil, nil)
}

func (c *RESTClient) GetUser(ctx context.Context, id int64) (models.User, error) {
	var u models.User
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/users/%d/", id), "", nil, &u); err != nil {
		return models.User{}, err
	}
	return u, nil
}

func (c *RESTClient) SearchUsersByEmail(ctx context.Context, email string) ([]models.User, error) {
	var users []models.User
	path := "/api/users/?email=" + url.QueryEscape(email)
	if err := c.do(ctx, http.MethodGet, path, "", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *RESTClient) PatchUser(ctx context.Context, id int64, patch UserPatchRequest) error {
	data, err := json.Marshal(patch)
	if err != nil {
		return err
	}
	path := fmt.Sprintf("/api/users/%d/", id)
	return c.do(ctx, http.MethodPatch, path, "application/json", bytes.NewReader(data), nil)
}

func (c *RESTClient) UploadAvatar(ctx context.Context, id int64, filename string, r io.Reader) (string, error) {
	return c.uploadImage(ctx, id, "avatar", filename, r)
}

func (c *RESTClient) UploadBackground(ctx context.Context, id int64, filename string, r io.Reader) (string, error) {
	return c.uploadImage(ctx, id, "background", filename, r)
}

// uploadImage posts a multipart form with a single file field named after the
// image kind ("avatar" or "background") and returns the stored image URL from
// the response.
func (c *RESTClient) uploadImage(ctx context.Context, id int64, kind, filename string, r io.Reader) (string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	fw, err := mw.CreateFormFile(kind, filename)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(fw, r); err != nil {
		return "", err
	}
	if err := mw.Close(); err != nil {
		return "", err
	}

	path := fmt.Sprintf("/api/users/%d/%s/", id, kind)
	var res map[string]string
	if err := c.do(ctx, http.MethodPost, path, mw.FormDataContentType(), &buf, &res); err != nil {
		return "", err
	}
	return res[kind], nil
}

func (c *RESTClient) DeleteAvatar(ctx context.Context, id int64) error {
	return c.deleteImage(ctx, id, "avatar")
}

func (c *RESTClient) DeleteBackground(ctx context.Context, id int64) error {
	return c.deleteImage(ctx, id, "background")
}

func (c *RESTClient) deleteImage(ctx context.Context, id int64, kind string) error {
	path := fmt.Sprintf("/api/users/%d/%s/", id, kind)
	return c.do(ctx, http.MethodDelete, path, "", nil, nil)
}

func (c *RESTClient) GetMovie(ctx context.Context, id int64) (models.Movie, error) {
	var m models.Movie
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/movies/%d/", id), "", nil, &m); err != nil {
		return models.Movie{}, err
	}
	return m, nil
}

// interface guard
var _ Client = (*RESTClient)(nil)
