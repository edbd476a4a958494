// ABOUTME: Persists session state (token + profile) in the XDG config directory
// ABOUTME: The Go analogue of the browser local storage the web client used

package session

import (
	"encoding/json"
	"os"
	"path/filepath"
)

const sessionFile = "session.json"

// Profile is the server-owned user record. The client only caches a
// copy for display and optimistic update after profile edits.
type Profile struct {
	ID          string   `json:"_id"`
	Roles       []string `json:"roles,omitempty"`
	Email       string   `json:"email"`
	Name        string   `json:"name,omitempty"`
	DateOfBirth string   `json:"date_of_birth,omitempty"`
	Address     string   `json:"address,omitempty"`
	Phone       string   `json:"phone,omitempty"`
	Avatar      string   `json:"avatar,omitempty"`
	CreatedAt   string   `json:"createdAt,omitempty"`
	UpdatedAt   string   `json:"updatedAt,omitempty"`
}

// Store reads and writes the persisted session file.
type Store struct {
	configDir string
}

type persistedState struct {
	AccessToken string   `json:"access_token"`
	Profile     *Profile `json:"profile,omitempty"`
}

// NewStore creates a store rooted at the given config directory
func NewStore(configDir string) *Store {
	return &Store{configDir: configDir}
}

func (s *Store) path() string {
	return filepath.Join(s.configDir, sessionFile)
}

// Load reads persisted state from disk. A missing or corrupt file
// yields an empty state, never an error the caller must handle.
func (s *Store) Load() (token string, profile *Profile) {
	data, err := os.ReadFile(s.path())
	if err != nil {
		return "", nil
	}

	var state persistedState
	if err := json.Unmarshal(data, &state); err != nil {
		// Invalid JSON, start fresh
		return "", nil
	}
	return state.AccessToken, state.Profile
}

// Save writes token and profile to disk with owner-only permissions
func (s *Store) Save(token string, profile *Profile) error {
	if err := os.MkdirAll(s.configDir, 0700); err != nil {
		return err
	}

	data, err := json.MarshalIndent(persistedState{
		AccessToken: token,
		Profile:     profile,
	}, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(s.path(), data, 0600)
}

// Clear removes the persisted session file
func (s *Store) Clear() error {
	err := os.Remove(s.path())
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
