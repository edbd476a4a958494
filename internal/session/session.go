// ABOUTME: Process-wide session service holding authentication state
// ABOUTME: Single source of truth for the access token, backed by the store

package session

import (
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Session is a read-only snapshot of the current session state.
// IsAuthenticated is derived from token presence, never set directly.
type Session struct {
	Token           string
	Profile         *Profile
	IsAuthenticated bool
}

// Service owns session state for the whole process. It is constructed
// once at startup and passed to whatever needs it; route guards read
// it and the API client's auth side effects write it.
type Service struct {
	mu          sync.RWMutex
	token       string
	profile     *Profile
	store       *Store
	subscribers []func(Session)
}

// NewService creates a session service hydrated from the store.
// A persisted token whose JWT exp claim is already in the past is
// discarded instead of presenting a dead session.
func NewService(store *Store) *Service {
	svc := &Service{store: store}

	token, profile := store.Load()
	if token != "" && tokenExpired(token, time.Now()) {
		slog.Debug("discarding expired persisted token")
		_ = store.Clear()
		token, profile = "", nil
	}
	svc.token = token
	svc.profile = profile
	return svc
}

// Current returns a snapshot of the session
func (s *Service) Current() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Session{
		Token:           s.token,
		Profile:         s.profile,
		IsAuthenticated: s.token != "",
	}
}

// SetCredentials establishes a session from a login or register
// response. This is the only path that sets a token.
func (s *Service) SetCredentials(token string, profile *Profile) {
	s.mu.Lock()
	s.token = token
	s.profile = profile
	s.mu.Unlock()

	if err := s.store.Save(token, profile); err != nil {
		slog.Error("persisting session failed", "error", err)
	}
	s.notify()
}

// SetProfile updates the cached profile after a server-confirmed edit
func (s *Service) SetProfile(profile *Profile) {
	s.mu.Lock()
	s.profile = profile
	token := s.token
	s.mu.Unlock()

	if err := s.store.Save(token, profile); err != nil {
		slog.Error("persisting session failed", "error", err)
	}
	s.notify()
}

// Clear terminates the session, both in memory and on disk
func (s *Service) Clear() {
	s.mu.Lock()
	s.token = ""
	s.profile = nil
	s.mu.Unlock()

	if err := s.store.Clear(); err != nil {
		slog.Error("clearing persisted session failed", "error", err)
	}
	s.notify()
}

// Subscribe registers an observer invoked after every mutation.
// Observers run on the mutating goroutine; keep them cheap.
func (s *Service) Subscribe(fn func(Session)) {
	s.mu.Lock()
	s.subscribers = append(s.subscribers, fn)
	s.mu.Unlock()
}

func (s *Service) notify() {
	cur := s.Current()
	s.mu.RLock()
	subs := make([]func(Session), len(s.subscribers))
	copy(subs, s.subscribers)
	s.mu.RUnlock()
	for _, fn := range subs {
		fn(cur)
	}
}

// tokenExpired reports whether the bearer token carries an exp claim
// in the past. Claims are read unverified; the server remains the
// authority and will still reject a forged token with a 401.
func tokenExpired(token string, now time.Time) bool {
	raw := strings.TrimPrefix(token, "Bearer ")
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		// Opaque tokens are not our call to judge
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(now)
}
