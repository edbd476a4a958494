// ABOUTME: HTTP client for the storefront API
// ABOUTME: Attaches the session token, enforces the auth contract on responses

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dontuty123/shopctl/internal/session"
)

// Client is the single shared entry point to the storefront API.
// Every request flows through do, which attaches the bearer token and
// classifies error responses. There is no automatic retry.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	sessions       *session.Service
	onUnauthorized func()
}

// New creates an API client bound to a session service
func New(baseURL string, timeout time.Duration, sessions *session.Service) *Client {
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		sessions: sessions,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// OnUnauthorized registers the hook invoked after a 401 clears the
// session. The TUI resets to its boot state; CLI commands just exit.
func (c *Client) OnUnauthorized(fn func()) {
	c.onUnauthorized = fn
}

// do executes a JSON request against path and decodes the body into
// out when non-nil. Token attachment is best-effort: an empty token
// simply means no Authorization header.
func (c *Client) do(ctx context.Context, method, path string, payload any, out any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/"+strings.TrimPrefix(path, "/"), body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.send(req, out)
}

// send finishes a prepared request; upload paths build their own
// request and join here.
func (c *Client) send(req *http.Request, out any) error {
	req.Header.Set("X-Request-Id", uuid.NewString())
	if token := c.sessions.Current().Token; token != "" {
		req.Header.Set("Authorization", token)
	}

	slog.Debug("api request", "method", req.Method, "path", req.URL.Path, "request_id", req.Header.Get("X-Request-Id"))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.handleRequestError(req.Context(), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return c.handleErrorResponse(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("invalid response from server: %w", err)
	}
	return nil
}

// handleRequestError converts context errors to user-friendly messages
func (c *Client) handleRequestError(ctx context.Context, err error) error {
	if ctx.Err() == context.Canceled {
		return fmt.Errorf("request canceled")
	}
	if ctx.Err() == context.DeadlineExceeded {
		return fmt.Errorf("request timed out")
	}
	return fmt.Errorf("cannot reach %s: %w", c.baseURL, err)
}

// handleErrorResponse classifies error responses per the auth
// contract: 401 terminates the session regardless of endpoint, 422
// carries per-field validation messages, anything else is an APIError.
func (c *Client) handleErrorResponse(resp *http.Response) error {
	switch resp.StatusCode {
	case http.StatusUnauthorized:
		slog.Debug("unauthorized response, clearing session", "path", resp.Request.URL.Path)
		c.sessions.Clear()
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return &APIError{Status: resp.StatusCode, Message: "session expired, please log in again"}

	case http.StatusUnprocessableEntity:
		var body struct {
			Message string            `json:"message"`
			Data    map[string]string `json:"data"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			return &EntityError{Message: "unprocessable request"}
		}
		return &EntityError{Message: body.Message, Fields: body.Data}

	default:
		var body envelope
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil || body.Message == "" {
			return &APIError{Status: resp.StatusCode}
		}
		return &APIError{Status: resp.StatusCode, Message: body.Message}
	}
}
