// Package client is a Go client for the wellness journal API, with the
// session handling and optimistic mood tracking used by the CLI.
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
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/justestif/wellness-journal/internal/journal"
)

const userAgent = "wellness-journal-cli/1.0"

// APIError is a non-2xx response from the server.
type APIError struct {
	Status  int
	Message string
	Fields  []journal.FieldError
}

func (e *APIError) Error() string {
	if len(e.Fields) == 0 {
		return fmt.Sprintf("%s (HTTP %d)", e.Message, e.Status)
	}
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Message
	}
	return fmt.Sprintf("%s: %s (HTTP %d)", e.Message, strings.Join(msgs, "; "), e.Status)
}

// IsStatus reports whether err is an APIError with the given status.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}

// AuthResult is returned by Register and Login.
type AuthResult struct {
	User  journal.PublicUser `json:"user"`
	Token string             `json:"token"`
}

// Health is the server liveness report.
type Health struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// Client is a journal API client. It is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client

	mu    sync.RWMutex
	token string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// New creates a client for the server at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the server address the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// SetToken sets the bearer token sent with every request. Empty clears it.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// Token returns the current bearer token.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// Health calls GET /health.
func (c *Client) Health(ctx context.Context) (*Health, error) {
	var out Health
	if err := c.do(ctx, http.MethodGet, "/health", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Register creates an account.
func (c *Client) Register(ctx context.Context, in journal.RegisterInput) (*AuthResult, error) {
	var out AuthResult
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login exchanges credentials for a token.
func (c *Client) Login(ctx context.Context, in journal.LoginInput) (*AuthResult, error) {
	var out AuthResult
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Me returns the account behind the current token.
func (c *Client) Me(ctx context.Context) (*journal.PublicUser, error) {
	var out struct {
		User journal.PublicUser `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

// Logout tells the server the token is being discarded.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil)
}

// ListNotes returns the caller's notes, optionally filtered by category.
func (c *Client) ListNotes(ctx context.Context, category string) ([]journal.Note, error) {
	path := "/api/notes"
	if category != "" {
		path += "?" + url.Values{"category": {category}}.Encode()
	}
	var out []journal.Note
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateNote creates a note.
func (c *Client) CreateNote(ctx context.Context, in journal.NoteInput) (*journal.Note, error) {
	var out journal.Note
	if err := c.do(ctx, http.MethodPost, "/api/notes", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetNote fetches a note by ID.
func (c *Client) GetNote(ctx context.Context, id uuid.UUID) (*journal.Note, error) {
	var out journal.Note
	if err := c.do(ctx, http.MethodGet, "/api/notes/"+id.String(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateNote applies a partial update.
func (c *Client) UpdateNote(ctx context.Context, id uuid.UUID, patch journal.NotePatch) (*journal.Note, error) {
	var out journal.Note
	if err := c.do(ctx, http.MethodPut, "/api/notes/"+id.String(), patch, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteNote deletes a note.
func (c *Client) DeleteNote(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/api/notes/"+id.String(), nil, nil)
}

// UpsertMood records the mood for in.Date.
func (c *Client) UpsertMood(ctx context.Context, in journal.MoodInput) (*journal.Mood, error) {
	var out journal.Mood
	if err := c.do(ctx, http.MethodPost, "/api/moods", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListMoods returns every mood, newest date first.
func (c *Client) ListMoods(ctx context.Context) ([]journal.Mood, error) {
	var out []journal.Mood
	if err := c.do(ctx, http.MethodGet, "/api/moods", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetMood fetches the mood for date.
func (c *Client) GetMood(ctx context.Context, date string) (*journal.Mood, error) {
	var out journal.Mood
	if err := c.do(ctx, http.MethodGet, "/api/moods/"+url.PathEscape(date), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteMood deletes the mood for date.
func (c *Client) DeleteMood(ctx context.Context, date string) error {
	return c.do(ctx, http.MethodDelete, "/api/moods/"+url.PathEscape(date), nil, nil)
}

// do performs a JSON request and decodes a 2xx body into out when non-nil.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		var payload struct {
			Message string               `json:"message"`
			Errors  []journal.FieldError `json:"errors"`
		}
		if json.Unmarshal(data, &payload) == nil && payload.Message != "" {
			apiErr.Message = payload.Message
			apiErr.Fields = payload.Errors
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parsing response: %w", err)
	}
	return nil
}
