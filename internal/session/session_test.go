// ABOUTME: Tests for the session service
// ABOUTME: Covers hydration, expiry discard, mutation and notification

package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":  "u1",
		"exp": exp.Unix(),
	})
	signed, err := tok.SignedString([]byte("test-key"))
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}
	return signed
}

func TestNewService_EmptyStore(t *testing.T) {
	svc := NewService(NewStore(t.TempDir()))
	cur := svc.Current()
	if cur.IsAuthenticated || cur.Token != "" || cur.Profile != nil {
		t.Errorf("expected empty session, got %+v", cur)
	}
}

func TestNewService_HydratesFromStore(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)
	token := "Bearer " + signedToken(t, time.Now().Add(time.Hour))
	if err := store.Save(token, &Profile{ID: "u1", Email: "a@b.com"}); err != nil {
		t.Fatalf("saving session: %v", err)
	}

	cur := NewService(NewStore(dir)).Current()
	if !cur.IsAuthenticated {
		t.Error("expected authenticated session")
	}
	if cur.Token != token {
		t.Errorf("expected persisted token, got %q", cur.Token)
	}
	if cur.Profile == nil || cur.Profile.Email != "a@b.com" {
		t.Errorf("expected persisted profile, got %+v", cur.Profile)
	}
}

func TestNewService_DiscardsExpiredToken(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)
	token := "Bearer " + signedToken(t, time.Now().Add(-time.Hour))
	if err := store.Save(token, &Profile{ID: "u1", Email: "a@b.com"}); err != nil {
		t.Fatalf("saving session: %v", err)
	}

	cur := NewService(NewStore(dir)).Current()
	if cur.IsAuthenticated || cur.Token != "" {
		t.Errorf("expected expired token discarded, got %+v", cur)
	}

	// The dead session is also gone from disk
	if tok, _ := store.Load(); tok != "" {
		t.Errorf("expected cleared store, got token %q", tok)
	}
}

func TestNewService_KeepsOpaqueToken(t *testing.T) {
	dir := t.TempDir()
	if err := NewStore(dir).Save("Bearer not-a-jwt", nil); err != nil {
		t.Fatalf("saving session: %v", err)
	}

	cur := NewService(NewStore(dir)).Current()
	if !cur.IsAuthenticated {
		t.Error("opaque tokens must survive hydration")
	}
}

func TestIsAuthenticated_DerivedFromToken(t *testing.T) {
	svc := NewService(NewStore(t.TempDir()))

	svc.SetCredentials("T1", &Profile{Email: "a@b.com"})
	if !svc.Current().IsAuthenticated {
		t.Error("expected authenticated after SetCredentials")
	}

	svc.Clear()
	cur := svc.Current()
	if cur.IsAuthenticated || cur.Token != "" || cur.Profile != nil {
		t.Errorf("expected empty session after Clear, got %+v", cur)
	}
}

func TestSetProfile_KeepsToken(t *testing.T) {
	dir := t.TempDir()
	svc := NewService(NewStore(dir))
	svc.SetCredentials("T1", &Profile{Email: "a@b.com"})

	svc.SetProfile(&Profile{Email: "a@b.com", Name: "Ada"})

	cur := svc.Current()
	if cur.Token != "T1" {
		t.Errorf("expected token unchanged, got %q", cur.Token)
	}
	if cur.Profile == nil || cur.Profile.Name != "Ada" {
		t.Errorf("expected updated profile, got %+v", cur.Profile)
	}

	// Profile update is also persisted
	_, profile := NewStore(dir).Load()
	if profile == nil || profile.Name != "Ada" {
		t.Errorf("expected persisted profile update, got %+v", profile)
	}
}

func TestSubscribe_NotifiedOnEveryMutation(t *testing.T) {
	svc := NewService(NewStore(t.TempDir()))

	var seen []Session
	svc.Subscribe(func(s Session) { seen = append(seen, s) })

	svc.SetCredentials("T1", &Profile{Email: "a@b.com"})
	svc.SetProfile(&Profile{Email: "a@b.com", Name: "Ada"})
	svc.Clear()

	if len(seen) != 3 {
		t.Fatalf("expected 3 notifications, got %d", len(seen))
	}
	if !seen[0].IsAuthenticated || seen[2].IsAuthenticated {
		t.Errorf("notification order wrong: %+v", seen)
	}
}

func TestTokenExpired(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name  string
		token string
		want  bool
	}{
		{"future exp", "Bearer " + signedToken(t, now.Add(time.Hour)), false},
		{"past exp", "Bearer " + signedToken(t, now.Add(-time.Minute)), true},
		{"no prefix", signedToken(t, now.Add(-time.Minute)), true},
		{"opaque", "Bearer not-a-jwt", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tokenExpired(tt.token, now); got != tt.want {
				t.Errorf("tokenExpired(%q) = %v, want %v", tt.token, got, tt.want)
			}
		})
	}
}
