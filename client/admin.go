package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"sync"

	"github.com/google/uuid"
	"github.com/jahua/prism-portfolio/models"
)

// TokenStore keeps the admin bearer token between requests.
type TokenStore interface {
	Token() (string, bool)
	SetToken(token string)
	Clear()
}

type MemoryTokenStore struct {
	mu    sync.RWMutex
	token string
}

func (s *MemoryTokenStore) Token() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, s.token != ""
}

func (s *MemoryTokenStore) SetToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

func (s *MemoryTokenStore) Clear() {
	s.SetToken("")
}

type AdminClient struct {
	*Client
	tokens TokenStore
}

// NewAdmin returns an admin client. A nil store keeps the token in memory.
func NewAdmin(c *Client, tokens TokenStore) *AdminClient {
	if tokens == nil {
		tokens = &MemoryTokenStore{}
	}
	return &AdminClient{Client: c, tokens: tokens}
}

// Login stores the token on success. Any non-2xx answer reports false without an error.
func (a *AdminClient) Login(ctx context.Context, password string) (bool, error) {
	resp, err := a.send(ctx, http.MethodPost, "/auth/login", map[string]string{"password": password}, nil)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return false, nil
	}
	var body struct {
		Token string `json:"token"`
	}
	if err := decodeBody(resp, &body); err != nil {
		return false, err
	}
	a.tokens.SetToken(body.Token)
	return true, nil
}

func (a *AdminClient) Logout() {
	a.tokens.Clear()
}

func (a *AdminClient) IsAuthenticated() bool {
	_, ok := a.tokens.Token()
	return ok
}

func (a *AdminClient) GetAllBlogs(ctx context.Context) ([]models.Blog, error) {
	var blogs []models.Blog
	if err := a.authRequest(ctx, http.MethodGet, "/blogs/all", nil, &blogs); err != nil {
		return nil, err
	}
	return blogs, nil
}

func (a *AdminClient) CreateBlog(ctx context.Context, blog any) (*models.Blog, error) {
	var created models.Blog
	if err := a.authRequest(ctx, http.MethodPost, "/blogs", blog, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateBlog sends only the fields in changes, e.g. map[string]any{"published": true}.
func (a *AdminClient) UpdateBlog(ctx context.Context, id uuid.UUID, changes any) (*models.Blog, error) {
	var updated models.Blog
	if err := a.authRequest(ctx, http.MethodPut, "/blogs/"+id.String(), changes, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (a *AdminClient) DeleteBlog(ctx context.Context, id uuid.UUID) (string, error) {
	var resp messageResponse
	err := a.authRequest(ctx, http.MethodDelete, "/blogs/"+id.String(), nil, &resp)
	return resp.Message, err
}

func (a *AdminClient) GetProfile(ctx context.Context) (*models.Profile, error) {
	var profile models.Profile
	if err := a.authRequest(ctx, http.MethodGet, "/profile", nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (a *AdminClient) UpdateProfile(ctx context.Context, changes any) (*models.Profile, error) {
	var profile models.Profile
	if err := a.authRequest(ctx, http.MethodPut, "/profile", changes, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (a *AdminClient) GetAllProjects(ctx context.Context) ([]models.Project, error) {
	var projects []models.Project
	if err := a.authRequest(ctx, http.MethodGet, "/projects/all", nil, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

func (a *AdminClient) GetProject(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	var project models.Project
	if err := a.authRequest(ctx, http.MethodGet, "/projects/"+id.String(), nil, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

func (a *AdminClient) CreateProject(ctx context.Context, project any) (*models.Project, error) {
	var created models.Project
	if err := a.authRequest(ctx, http.MethodPost, "/projects", project, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (a *AdminClient) UpdateProject(ctx context.Context, id uuid.UUID, changes any) (*models.Project, error) {
	var updated models.Project
	if err := a.authRequest(ctx, http.MethodPut, "/projects/"+id.String(), changes, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (a *AdminClient) DeleteProject(ctx context.Context, id uuid.UUID) (string, error) {
	var resp messageResponse
	err := a.authRequest(ctx, http.MethodDelete, "/projects/"+id.String(), nil, &resp)
	return resp.Message, err
}

func (a *AdminClient) GetMessages(ctx context.Context) ([]models.Message, error) {
	var messages []models.Message
	if err := a.authRequest(ctx, http.MethodGet, "/contact", nil, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// UploadFile sends r as the multipart field "image" and returns the public URL.
func (a *AdminClient) UploadFile(ctx context.Context, filename, contentType string, r io.Reader) (string, error) {
	token, ok := a.tokens.Token()
	if !ok {
		return "", ErrNotAuthenticated
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	h := textproto.MIMEHeader{}
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename=%q`, filename))
	h.Set("Content-Type", contentType)
	part, err := mw.CreatePart(h)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, r); err != nil {
		return "", err
	}
	if err := mw.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+apiPrefix+"/upload", &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if err := a.checkSession(resp); err != nil {
		return "", err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", requestError(resp, "failed to upload image")
	}
	var body struct {
		URL string `json:"url"`
	}
	if err := decodeBody(resp, &body); err != nil {
		return "", err
	}
	return body.URL, nil
}

func (a *AdminClient) authRequest(ctx context.Context, method, path string, body, out any) error {
	token, ok := a.tokens.Token()
	if !ok {
		return ErrNotAuthenticated
	}

	resp, err := a.send(ctx, method, path, body, http.Header{"Authorization": {"Bearer " + token}})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := a.checkSession(resp); err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return requestError(resp, "")
	}
	return decodeBody(resp, out)
}

// checkSession drops the stored token when the server no longer accepts it.
func (a *AdminClient) checkSession(resp *http.Response) error {
	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		a.tokens.Clear()
		return ErrSessionExpired
	}
	return nil
}
