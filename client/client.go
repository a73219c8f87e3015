// Package client is a Go client for the portfolio HTTP API.
//
// Client covers the public read endpoints and the contact form. AdminClient wraps a Client
// with a TokenStore and sends the bearer token on every request; a 401 or 403 answer clears
// the stored token and surfaces as ErrSessionExpired.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/jahua/prism-portfolio/models"
)

const apiPrefix = "/api"

var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrSessionExpired   = errors.New("session expired")
)

// RequestError is a non-2xx answer other than an expired session.
type RequestError struct {
	StatusCode int
	Message    string
}

func (e *RequestError) Error() string {
	return e.Message
}

type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int64 `json:"pages"`
}

type BlogPage struct {
	Blogs      []models.Blog `json:"blogs"`
	Pagination Pagination    `json:"pagination"`
}

type ContactForm struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type errorBody struct {
	Error string `json:"error"`
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// New returns a client for the server at baseURL, e.g. "https://example.com".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) GetProfile(ctx context.Context) (*models.Profile, error) {
	var profile models.Profile
	if err := c.request(ctx, http.MethodGet, "/profile", nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// GetBlogs lists published posts. An empty tag lists every post.
func (c *Client) GetBlogs(ctx context.Context, page, limit int, tag string) (*BlogPage, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("limit", strconv.Itoa(limit))
	if tag != "" {
		params.Set("tag", tag)
	}

	var result BlogPage
	if err := c.request(ctx, http.MethodGet, "/blogs?"+params.Encode(), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) GetBlog(ctx context.Context, slug string) (*models.Blog, error) {
	var blog models.Blog
	if err := c.request(ctx, http.MethodGet, "/blogs/"+url.PathEscape(slug), nil, &blog); err != nil {
		return nil, err
	}
	return &blog, nil
}

func (c *Client) GetProjects(ctx context.Context) ([]models.Project, error) {
	var projects []models.Project
	if err := c.request(ctx, http.MethodGet, "/projects", nil, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// SendMessage submits the contact form and returns the server's confirmation text.
func (c *Client) SendMessage(ctx context.Context, form ContactForm) (string, error) {
	var resp messageResponse
	if err := c.request(ctx, http.MethodPost, "/contact", form, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

func (c *Client) request(ctx context.Context, method, path string, body, out any) error {
	resp, err := c.send(ctx, method, path, body, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return requestError(resp, "")
	}
	return decodeBody(resp, out)
}

func (c *Client) send(ctx context.Context, method, path string, body any, header http.Header) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+apiPrefix+path, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	for key, values := range header {
		req.Header[key] = values
	}

	return c.httpClient.Do(req)
}

func decodeBody(resp *http.Response, out any) error {
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s response: %w", resp.Request.URL.Path, err)
	}
	return nil
}

// requestError uses the server's error message when the body carries one.
func requestError(resp *http.Response, fallback string) error {
	var body errorBody
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if json.Unmarshal(raw, &body) == nil && body.Error != "" {
		return &RequestError{StatusCode: resp.StatusCode, Message: body.Error}
	}
	if fallback == "" {
		fallback = fmt.Sprintf("request failed: %d", resp.StatusCode)
	}
	return &RequestError{StatusCode: resp.StatusCode, Message: fallback}
}
