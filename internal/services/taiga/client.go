// Package taiga is the HTTP gateway to the Taiga-style project
// management API: task CRUD, bulk creation, statuses, memberships and
// the surrounding project/story/epic resources.
package taiga

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
)

// HTTPClient abstracts HTTP requests for testing
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Credentials holds the bearer token pair issued at login.
type Credentials struct {
	AuthToken    string `json:"authToken"`
	RefreshToken string `json:"refreshToken"`
}

// TokenStore persists refreshed credentials across runs. The config
// layer provides the file-backed implementation; a nil store is valid
// and keeps tokens in memory only.
type TokenStore interface {
	SaveCredentials(creds Credentials) error
	ClearCredentials() error
}

// Client is the remote task gateway. Every call re-authenticates
// transparently on a 401 (refresh-token exchange) and retries the
// original request exactly once; a second consecutive 401 surfaces as a
// terminal AuthError.
type Client struct {
	http    HTTPClient
	logger  *slog.Logger
	baseURL string
	store   TokenStore

	mu    sync.Mutex
	creds Credentials

	now func() time.Time
}

// NewClient creates a gateway for the API rooted at baseURL
// (e.g. "https://api.taiga.io/api/v1").
func NewClient(httpClient HTTPClient, baseURL string, creds Credentials, store TokenStore, logger *slog.Logger) *Client {
	return &Client{
		http:    httpClient,
		logger:  logger,
		baseURL: baseURL,
		store:   store,
		creds:   creds,
		now:     time.Now,
	}
}

// Credentials returns the current token pair.
func (c *Client) Credentials() Credentials {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.creds
}

func (c *Client) setCredentials(creds Credentials) {
	c.mu.Lock()
	c.creds = creds
	c.mu.Unlock()
}

// request performs an authenticated call and decodes the response body
// into out (when out is non-nil and the body is non-empty). op names the
// logical operation for error reporting.
func (c *Client) request(ctx context.Context, op, method, path string, body any, headers map[string]string, out any) error {
	return c.requestTask(ctx, op, 0, method, path, body, headers, out)
}

// requestTask is request with a task id attached to any resulting error.
func (c *Client) requestTask(ctx context.Context, op string, taskID int, method, path string, body any, headers map[string]string, out any) error {
	c.refreshIfExpiring(ctx)

	status, respBody, err := c.send(ctx, method, path, body, headers, true)
	if err != nil {
		return newTransportError(op, taskID, err)
	}

	if status == http.StatusUnauthorized {
		// Token expired mid-flight: exchange the refresh token and retry
		// the original call exactly once.
		c.logger.Debug("auth token rejected, refreshing", "op", op)
		if err := c.refreshAuthToken(ctx); err != nil {
			return err
		}
		status, respBody, err = c.send(ctx, method, path, body, headers, true)
		if err != nil {
			return newTransportError(op, taskID, err)
		}
		if status == http.StatusUnauthorized {
			c.clearCredentials()
			return newAuthError(fmt.Errorf("refreshed token rejected"))
		}
	}

	if status < 200 || status >= 300 {
		return newRemoteError(op, taskID, status, respBody)
	}

	if out != nil && len(bytes.TrimSpace(respBody)) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return newTransportError(op, taskID, fmt.Errorf("decode response: %w", err))
		}
	}
	return nil
}

// send issues one HTTP request and reads the whole body. withAuth
// attaches the bearer token; login and refresh go without it.
func (c *Client) send(ctx context.Context, method, path string, body any, headers map[string]string, withAuth bool) (int, []byte, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if withAuth {
		if token := c.Credentials().AuthToken; token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("read response: %w", err)
	}
	return resp.StatusCode, respBody, nil
}

func decode(body []byte, out any) error {
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) clearCredentials() {
	c.setCredentials(Credentials{})
	if c.store != nil {
		if err := c.store.ClearCredentials(); err != nil {
			c.logger.Warn("failed to clear stored credentials", "error", err)
		}
	}
}
