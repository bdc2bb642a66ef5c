// Package api is a typed HTTP client for the HomeDrive backend.
//
// Every call is a single request: no retry, no backoff. Non-2xx answers are
// reported as *StatusError; transport and decoding failures are returned
// wrapped and can be told apart with AsStatus.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	pathLogin          = "/auth/login"
	pathRegister       = "/auth/register"
	pathSettings       = "/auth/settings/"
	pathSettingsUpdate = "/auth/settings/update"
	pathChangePassword = "/auth/change_password"
	pathBlockUser      = "/auth/block_user"
	pathFiles          = "/workspace/files"
	pathUpload         = "/workspace/upload"
	pathDownload       = "/workspace/download/"
	pathHealth         = "/health"

	// maxErrorBody bounds how much of an error body is read for its detail.
	maxErrorBody = 64 << 10
)

// TokenSource supplies the bearer token; "" means no Authorization header.
type TokenSource interface {
	Token() string
}

// Config holds client configuration.
type Config struct {
	// BaseURL is the backend origin, e.g. http://localhost:8000.
	BaseURL string
	// HTTPClient performs the requests. Defaults to a client without timeout.
	HTTPClient *http.Client
	// Tokens provides the bearer token per request. May be nil.
	Tokens TokenSource
	// Logger receives request logs. Defaults to a no-op logger.
	Logger *zap.Logger
}

// Client talks to one HomeDrive backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	log        *zap.Logger
}

// New creates a new client.
func New(cfg Config) *Client {
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{}
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: cfg.HTTPClient,
		tokens:     cfg.Tokens,
		log:        cfg.Logger,
	}
}

// BaseURL returns the backend origin without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// applyAuth adds the auth header to a request if a token is held.
func (c *Client) applyAuth(req *http.Request) {
	if c.tokens == nil {
		return
	}
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

// do sends one request and returns the response when the status is 2xx.
// The caller closes the body.
func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build %s %s: %w", method, path, err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)
	c.applyAuth(req)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn("request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.String("request_id", requestID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}

	c.log.Debug("request completed",
		zap.String("method", method),
		zap.String("path", path),
		zap.String("request_id", requestID),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &StatusError{StatusCode: resp.StatusCode, Detail: parseDetail(data)}
	}
	return resp, nil
}

// doJSON sends in as a JSON body (when non-nil) and decodes the answer into
// out (when non-nil).
func (c *Client) doJSON(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	contentType := ""
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s request: %w", path, err)
		}
		body = bytes.NewReader(b)
		contentType = "application/json"
	}

	resp, err := c.do(ctx, method, path, body, contentType)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

// Ping checks that the backend answers GET /health.
func (c *Client) Ping(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodGet, pathHealth, nil, nil)
}
