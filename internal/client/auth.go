// ABOUTME: Authentication endpoints: login, register, logout
// ABOUTME: The only code path that establishes or ends a session

package client

import (
	"context"
	"net/http"

	"github.com/dontuty123/shopctl/internal/session"
)

// Credentials is the body for login and register
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	envelope
	Data AuthData `json:"data"`
}

// Login authenticates and, on success, persists the issued token and
// profile through the session service.
func (c *Client) Login(ctx context.Context, creds Credentials) (*session.Profile, error) {
	var resp authResponse
	if err := c.do(ctx, http.MethodPost, "login", creds, &resp); err != nil {
		return nil, err
	}
	profile := resp.Data.User
	c.sessions.SetCredentials(resp.Data.AccessToken, &profile)
	return &profile, nil
}

// Register creates an account; a successful registration also
// establishes a session, exactly like login.
func (c *Client) Register(ctx context.Context, creds Credentials) (*session.Profile, error) {
	var resp authResponse
	if err := c.do(ctx, http.MethodPost, "register", creds, &resp); err != nil {
		return nil, err
	}
	profile := resp.Data.User
	c.sessions.SetCredentials(resp.Data.AccessToken, &profile)
	return &profile, nil
}

// Logout ends the server session and clears local session state
func (c *Client) Logout(ctx context.Context) error {
	if err := c.do(ctx, http.MethodPost, "logout", nil, nil); err != nil {
		return err
	}
	c.sessions.Clear()
	return nil
}
