// ABOUTME: User profile endpoints: fetch, update, change password, avatar upload
// ABOUTME: Updated profiles are written back to the session cache

package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/dontuty123/shopctl/internal/session"
)

// MaxAvatarSize is the client-side limit for avatar uploads (1 MiB)
const MaxAvatarSize = 1 << 20

// ProfileUpdate is the body for PUT user. Empty fields are omitted so
// partial updates leave other attributes untouched.
type ProfileUpdate struct {
	Name        string `json:"name,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Address     string `json:"address,omitempty"`
	DateOfBirth string `json:"date_of_birth,omitempty"`
	Avatar      string `json:"avatar,omitempty"`
	Password    string `json:"password,omitempty"`
	NewPassword string `json:"new_password,omitempty"`
}

type profileResponse struct {
	envelope
	Data session.Profile `json:"data"`
}

// GetProfile fetches the current user's profile
func (c *Client) GetProfile(ctx context.Context) (*session.Profile, error) {
	var resp profileResponse
	if err := c.do(ctx, http.MethodGet, "me", nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// UpdateProfile submits profile edits and refreshes the cached copy
// with the server-confirmed record.
func (c *Client) UpdateProfile(ctx context.Context, update ProfileUpdate) (*session.Profile, error) {
	var resp profileResponse
	if err := c.do(ctx, http.MethodPut, "user", update, &resp); err != nil {
		return nil, err
	}
	profile := resp.Data
	c.sessions.SetProfile(&profile)
	return &profile, nil
}

// ChangePassword rotates the password via the profile update endpoint
func (c *Client) ChangePassword(ctx context.Context, current, next string) error {
	_, err := c.UpdateProfile(ctx, ProfileUpdate{Password: current, NewPassword: next})
	return err
}

// UploadAvatar uploads an image file and returns the stored avatar
// name. Files over MaxAvatarSize or without an image extension are
// rejected before any network call.
func (c *Client) UploadAvatar(ctx context.Context, path string) (string, error) {
	if err := ValidateAvatarFile(path); err != nil {
		return "", err
	}

	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open avatar file: %w", err)
	}
	defer f.Close()

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	part, err := form.CreateFormFile("image", filepath.Base(path))
	if err != nil {
		return "", fmt.Errorf("failed to build upload form: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return "", fmt.Errorf("failed to read avatar file: %w", err)
	}
	if err := form.Close(); err != nil {
		return "", fmt.Errorf("failed to finish upload form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/user/upload-avatar", &buf)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	var resp struct {
		envelope
		Data string `json:"data"`
	}
	if err := c.send(req, &resp); err != nil {
		return "", err
	}
	return resp.Data, nil
}

// ValidateAvatarFile enforces the client-side upload constraints
func ValidateAvatarFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("cannot read avatar file: %w", err)
	}
	if info.Size() >= MaxAvatarSize {
		return fmt.Errorf("avatar file must be smaller than 1MB")
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp":
		return nil
	}
	return fmt.Errorf("avatar file must be an image")
}
