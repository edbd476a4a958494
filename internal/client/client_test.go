// ABOUTME: Tests for the storefront API client
// ABOUTME: Uses httptest to fake the remote API and a temp session store

package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dontuty123/shopctl/internal/session"
)

func newTestClient(t *testing.T, serverURL string) (*Client, *session.Service) {
	t.Helper()
	store := session.NewStore(t.TempDir())
	svc := session.NewService(store)
	return New(serverURL, 5*time.Second, svc), svc
}

func authPayload(token, email string) map[string]any {
	return map[string]any{
		"message": "ok",
		"data": map[string]any{
			"access_token": token,
			"expires":      "7d",
			"user":         map[string]any{"_id": "u1", "email": email},
		},
	}
}

func TestLogin_EstablishesSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/login" {
			t.Errorf("expected path /login, got %s", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		var creds Credentials
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
			t.Fatalf("decoding request body: %v", err)
		}
		if creds.Email != "a@b.com" || creds.Password != "123456" {
			t.Errorf("unexpected credentials: %+v", creds)
		}
		json.NewEncoder(w).Encode(authPayload("T1", "a@b.com"))
	}))
	defer server.Close()

	c, svc := newTestClient(t, server.URL)
	profile, err := c.Login(context.Background(), Credentials{Email: "a@b.com", Password: "123456"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if profile.Email != "a@b.com" {
		t.Errorf("expected profile email a@b.com, got %s", profile.Email)
	}

	cur := svc.Current()
	if !cur.IsAuthenticated {
		t.Error("expected authenticated session after login")
	}
	if cur.Token != "T1" {
		t.Errorf("expected token T1, got %q", cur.Token)
	}
	if cur.Profile == nil || cur.Profile.Email != "a@b.com" {
		t.Errorf("expected cached profile for a@b.com, got %+v", cur.Profile)
	}
}

func TestLogin_PersistsSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(authPayload("T1", "a@b.com"))
	}))
	defer server.Close()

	dir := t.TempDir()
	store := session.NewStore(dir)
	c := New(server.URL, 5*time.Second, session.NewService(store))
	if _, err := c.Login(context.Background(), Credentials{Email: "a@b.com", Password: "123456"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// A fresh service hydrates the same session from disk
	rehydrated := session.NewService(session.NewStore(dir)).Current()
	if rehydrated.Token != "T1" {
		t.Errorf("expected persisted token T1, got %q", rehydrated.Token)
	}
	if rehydrated.Profile == nil || rehydrated.Profile.Email != "a@b.com" {
		t.Errorf("expected persisted profile, got %+v", rehydrated.Profile)
	}
}

func TestRegister_EstablishesSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/register" {
			t.Errorf("expected path /register, got %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(authPayload("T2", "new@b.com"))
	}))
	defer server.Close()

	c, svc := newTestClient(t, server.URL)
	if _, err := c.Register(context.Background(), Credentials{Email: "new@b.com", Password: "123456"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := svc.Current().Token; got != "T2" {
		t.Errorf("expected token T2, got %q", got)
	}
}

func TestTokenAttachment(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		switch r.URL.Path {
		case "/login":
			json.NewEncoder(w).Encode(authPayload("T1", "a@b.com"))
		default:
			json.NewEncoder(w).Encode(map[string]any{"message": "ok", "data": []any{}})
		}
	}))
	defer server.Close()

	c, _ := newTestClient(t, server.URL)

	// No token yet: no Authorization header at all
	if _, err := c.ListCategories(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "" {
		t.Errorf("expected no auth header before login, got %q", gotAuth)
	}

	if _, err := c.Login(context.Background(), Credentials{Email: "a@b.com", Password: "123456"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// With a session every request carries the token verbatim
	if _, err := c.ListPurchases(context.Background(), StatusInCart); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "T1" {
		t.Errorf("expected auth header T1, got %q", gotAuth)
	}
}

func TestLogout_ClearsSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/login":
			json.NewEncoder(w).Encode(authPayload("T1", "a@b.com"))
		case "/logout":
			json.NewEncoder(w).Encode(map[string]any{"message": "logged out"})
		}
	}))
	defer server.Close()

	c, svc := newTestClient(t, server.URL)
	if _, err := c.Login(context.Background(), Credentials{Email: "a@b.com", Password: "123456"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := c.Logout(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cur := svc.Current()
	if cur.IsAuthenticated || cur.Token != "" || cur.Profile != nil {
		t.Errorf("expected cleared session after logout, got %+v", cur)
	}
}

func TestUnauthorized_ClearsSessionFromAnyEndpoint(t *testing.T) {
	calls := []func(c *Client) error{
		func(c *Client) error { _, err := c.GetProfile(context.Background()); return err },
		func(c *Client) error { _, err := c.ListPurchases(context.Background(), StatusInCart); return err },
		func(c *Client) error { _, err := c.UpdatePurchase(context.Background(), "p1", 2); return err },
	}

	for i, call := range calls {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/login":
				json.NewEncoder(w).Encode(authPayload("T1", "a@b.com"))
			default:
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(map[string]any{"message": "expired"})
			}
		}))

		c, svc := newTestClient(t, server.URL)
		if _, err := c.Login(context.Background(), Credentials{Email: "a@b.com", Password: "123456"}); err != nil {
			t.Fatalf("call %d: unexpected login error: %v", i, err)
		}

		hookFired := false
		c.OnUnauthorized(func() { hookFired = true })

		err := call(c)
		if !IsUnauthorized(err) {
			t.Errorf("call %d: expected unauthorized error, got %v", i, err)
		}
		if !hookFired {
			t.Errorf("call %d: expected unauthorized hook to fire", i)
		}
		cur := svc.Current()
		if cur.IsAuthenticated || cur.Token != "" || cur.Profile != nil {
			t.Errorf("call %d: expected cleared session, got %+v", i, cur)
		}
		server.Close()
	}
}

func TestValidationError_KeepsSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/login":
			json.NewEncoder(w).Encode(authPayload("T1", "a@b.com"))
		default:
			w.WriteHeader(http.StatusUnprocessableEntity)
			json.NewEncoder(w).Encode(map[string]any{
				"message": "invalid input",
				"data":    map[string]string{"buy_count": "out of stock"},
			})
		}
	}))
	defer server.Close()

	c, svc := newTestClient(t, server.URL)
	if _, err := c.Login(context.Background(), Credentials{Email: "a@b.com", Password: "123456"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := c.UpdatePurchase(context.Background(), "p1", 99)
	entity := AsEntityError(err)
	if entity == nil {
		t.Fatalf("expected EntityError, got %v", err)
	}
	if entity.Message != "invalid input" {
		t.Errorf("expected message 'invalid input', got %q", entity.Message)
	}
	if entity.FieldError("buy_count") != "out of stock" {
		t.Errorf("expected field error, got %q", entity.FieldError("buy_count"))
	}
	if !svc.Current().IsAuthenticated {
		t.Error("422 must not clear the session")
	}
}

func TestConnectionError_Propagates(t *testing.T) {
	c, _ := newTestClient(t, "http://127.0.0.1:1")
	if _, err := c.ListCategories(context.Background()); err == nil {
		t.Error("expected connection error, got nil")
	}
}

func TestContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
		json.NewEncoder(w).Encode(map[string]any{"message": "ok", "data": []any{}})
	}))
	defer server.Close()

	c, _ := newTestClient(t, server.URL)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := c.ListCategories(ctx); err == nil {
		t.Error("expected error for canceled context, got nil")
	}
}

func TestServerError_CarriesMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]any{"message": "product not found"})
	}))
	defer server.Close()

	c, _ := newTestClient(t, server.URL)
	_, err := c.GetProduct(context.Background(), "missing")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if err.Error() != "product not found" {
		t.Errorf("expected server message, got %q", err.Error())
	}
}
