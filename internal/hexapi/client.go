// ABOUTME: HTTP client wrapper for the catalog API
// ABOUTME: Carries the mutable authorization slot all requests flow through

package hexapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

const defaultTimeout = 30 * time.Second

// Client talks to the catalog API. All requests flow through it so that the
// authorization slot is applied uniformly.
type Client struct {
	base   string
	path   string
	http   *http.Client
	logger *slog.Logger

	mu    sync.Mutex
	token string
}

// New creates a client for the API at baseURL with the given per-account
// path segment. A nil logger disables request logging.
func New(baseURL, path string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Client{
		base:   strings.TrimRight(baseURL, "/"),
		path:   path,
		http:   &http.Client{Timeout: defaultTimeout},
		logger: logger,
	}
}

// SetHTTPClient replaces the underlying http.Client. Intended for tests and
// callers that need custom transport settings.
func (c *Client) SetHTTPClient(hc *http.Client) {
	c.http = hc
}

// SetAuthorization installs token on all subsequent requests. The hosted API
// expects the raw token in the Authorization header, without a scheme prefix.
func (c *Client) SetAuthorization(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

// ClearAuthorization removes the stored token.
func (c *Client) ClearAuthorization() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = ""
}

func (c *Client) authorization() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

// productRoute builds {base}/api/{path}/admin/{suffix}.
func (c *Client) productRoute(suffix string) string {
	return fmt.Sprintf("%s/api/%s/admin/%s", c.base, c.path, suffix)
}

// doJSON performs a JSON request. A non-nil in is encoded as the body; a
// non-nil out receives the decoded success response.
func (c *Client) doJSON(ctx context.Context, method, url string, in, out any) error {
	var body io.Reader
	if in != nil {
		encoded, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.send(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return decodeAPIError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}

// send applies the authorization slot and a request id, then executes.
func (c *Client) send(req *http.Request) (*http.Response, error) {
	if token := c.authorization(); token != "" {
		req.Header.Set("Authorization", token)
	}
	requestID := uuid.NewString()
	req.Header.Set("X-Request-Id", requestID)

	c.logger.Debug("api request",
		"method", req.Method,
		"url", req.URL.String(),
		"request_id", requestID,
	)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}

	c.logger.Debug("api response",
		"status", resp.StatusCode,
		"request_id", requestID,
	)
	return resp, nil
}
