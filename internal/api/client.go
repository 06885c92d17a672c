package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/me/baraza/pkg/model"
)

// DefaultBaseURL is the production platform API endpoint.
const DefaultBaseURL = "https://platform.barazahq.com/api/v1"

// Config holds platform API client configuration.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// DefaultConfig returns configuration pointing to the production endpoint.
func DefaultConfig() Config {
	return Config{
		BaseURL: DefaultBaseURL,
		Timeout: 30 * time.Second,
	}
}

// Client is an HTTP client for the remote platform API. The bearer token
// is guarded by a mutex because server handlers share one client across
// requests.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger

	mu    sync.RWMutex
	token string
}

// NewClient creates a platform API client.
func NewClient(cfg Config, logger *slog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		logger:  logger.With("component", "platform"),
	}
}

// SetToken configures the bearer token for subsequent authorized calls.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// ClearToken removes the bearer token.
func (c *Client) ClearToken() {
	c.SetToken("")
}

// WithToken returns a client sharing the same transport and logger but
// carrying its own bearer token. Server handlers use this to act with the
// calling session's token without mutating the shared client.
func (c *Client) WithToken(token string) *Client {
	return &Client{
		baseURL: c.baseURL,
		http:    c.http,
		logger:  c.logger,
		token:   token,
	}
}

func (c *Client) bearer() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// errorBody is the platform API's error response shape.
type errorBody struct {
	Error   *model.APIError `json:"error"`
	Message string          `json:"message"`
}

// do performs a JSON request and decodes the response into out (which
// may be nil). Non-2xx responses are mapped onto *model.APIError.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	url := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok := c.bearer(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	c.logger.Debug("platform request", "method", method, "path", path)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("platform call %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	c.logger.Debug("platform response", "status", resp.StatusCode, "path", path)

	if resp.StatusCode >= 400 {
		return c.statusError(resp.StatusCode, respBody)
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("parse response (status %d): %w", resp.StatusCode, err)
		}
	}
	return nil
}

// statusError maps a platform error response onto a *model.APIError,
// preserving the remote message when one is provided.
func (c *Client) statusError(status int, body []byte) error {
	var eb errorBody
	_ = json.Unmarshal(body, &eb)

	msg := eb.Message
	if eb.Error != nil && eb.Error.Message != "" {
		msg = eb.Error.Message
	}

	switch status {
	case http.StatusUnauthorized:
		if msg == "" {
			msg = "invalid email or password"
		}
		return model.NewUnauthorizedError(msg)
	case http.StatusForbidden:
		if msg == "" {
			msg = "access denied"
		}
		return &model.APIError{Code: model.ErrForbidden, Message: msg}
	case http.StatusNotFound:
		if msg == "" {
			msg = "resource not found"
		}
		return &model.APIError{Code: model.ErrNotFound, Message: msg}
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		if msg == "" {
			msg = "invalid request"
		}
		apiErr := &model.APIError{Code: model.ErrValidation, Message: msg}
		if eb.Error != nil {
			apiErr.Details = eb.Error.Details
		}
		return apiErr
	default:
		if msg == "" {
			msg = fmt.Sprintf("platform returned HTTP %d", status)
		}
		return model.NewUpstreamError(msg)
	}
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}
