package oauthkit

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kbukum/oauthkit/config"
	kiterrors "github.com/kbukum/oauthkit/errors"
	"github.com/kbukum/oauthkit/flow"
	"github.com/kbukum/oauthkit/provider"
	"github.com/kbukum/oauthkit/validate"
)

// fakeRealm serves a Keycloak-shaped realm: token, introspection,
// revocation, and logout endpoints under the standard path layout.
type fakeRealm struct {
	srv      *httptest.Server
	refreshs int
	revoked  []string
	logouts  int
}

func newFakeRealm(t *testing.T) *fakeRealm {
	t.Helper()
	f := &fakeRealm{}
	mux := http.NewServeMux()
	base := "/realms/acme/protocol/openid-connect"

	mux.HandleFunc(base+"/token", func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		if r.PostForm.Get("grant_type") == "refresh_token" {
			f.refreshs++
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token":  "issued-access",
			"refresh_token": "issued-refresh",
			"token_type":    "Bearer",
			"expires_in":    3600,
			"scope":         "openid",
		})
	})
	mux.HandleFunc(base+"/token/introspect", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"active": true,
			"sub": "svc-account",
			"realm_access": {"roles": ["admin"]},
			"resource_access": {"finance": {"roles": ["year-report"]}}
		}`))
	})
	mux.HandleFunc(base+"/revoke", func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		f.revoked = append(f.revoked, r.PostForm.Get("token_type_hint"))
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc(base+"/logout", func(w http.ResponseWriter, r *http.Request) {
		f.logouts++
		w.WriteHeader(http.StatusNoContent)
	})

	f.srv = httptest.NewServer(mux)
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeRealm) client(t *testing.T, cfg Config) *Client {
	t.Helper()
	cfg.Provider = provider.Keycloak(f.srv.URL, "acme")
	if cfg.ClientID == "" {
		cfg.ClientID = "relay-client"
		cfg.ClientSecret = "s3cret"
	}
	c, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func TestClientEndToEnd(t *testing.T) {
	realm := newFakeRealm(t)
	client := realm.client(t, Config{
		Validation: &validate.Config{Mode: validate.ModeIntrospection},
	})
	ctx := context.Background()

	cred, err := client.ExchangeClientCredentials(ctx)
	if err != nil {
		t.Fatalf("ExchangeClientCredentials: %v", err)
	}
	if cred.AccessToken() != "issued-access" {
		t.Errorf("access token = %q", cred.AccessToken())
	}

	outcome := client.Validate(ctx, cred)
	if !outcome.OK() {
		t.Fatalf("outcome = %v (reason %q)", outcome.Status, outcome.Reason)
	}
	if !client.HasAuthority(outcome.Claims, "admin") {
		t.Error("realm role admin not granted")
	}
	if !client.HasAuthority(outcome.Claims, "finance:year-report") {
		t.Error("client role finance:year-report not granted")
	}
	if client.HasAuthority(outcome.Claims, "finance:quarterly-report") {
		t.Error("ungranted role reported as granted")
	}

	if err := client.Refresh(ctx, cred); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if realm.refreshs != 1 {
		t.Errorf("refresh grants = %d, want 1", realm.refreshs)
	}

	if err := client.Logout(ctx, cred); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if realm.logouts != 1 {
		t.Errorf("logout calls = %d, want 1", realm.logouts)
	}
}

func TestClientRevoke(t *testing.T) {
	realm := newFakeRealm(t)
	client := realm.client(t, Config{})
	ctx := context.Background()

	cred, err := client.ExchangeClientCredentials(ctx)
	if err != nil {
		t.Fatalf("ExchangeClientCredentials: %v", err)
	}
	if err := client.Revoke(ctx, cred); err != nil {
		t.Fatalf("Revoke: %v", err)
	}
	if len(realm.revoked) != 2 {
		t.Fatalf("revocations = %v, want both kinds", realm.revoked)
	}
}

func TestClientEnsureFresh(t *testing.T) {
	realm := newFakeRealm(t)
	client := realm.client(t, Config{})
	ctx := context.Background()

	cred, err := client.ExchangeClientCredentials(ctx)
	if err != nil {
		t.Fatalf("ExchangeClientCredentials: %v", err)
	}

	// Fresh credential: no refresh round trip.
	if err := client.EnsureFresh(ctx, cred, 0); err != nil {
		t.Fatalf("EnsureFresh: %v", err)
	}
	if realm.refreshs != 0 {
		t.Errorf("refresh grants = %d, want 0 for a fresh credential", realm.refreshs)
	}
}

func TestClientWithoutValidator(t *testing.T) {
	realm := newFakeRealm(t)
	client := realm.client(t, Config{})

	outcome := client.ValidateToken(context.Background(), "whatever")
	if outcome.Status != validate.StatusError {
		t.Fatalf("outcome = %v, want error status", outcome.Status)
	}
	if !kiterrors.IsInvalidRequest(outcome.Err) {
		t.Errorf("err = %v, want invalid-request", outcome.Err)
	}
}

func TestClientAuthorizeURL(t *testing.T) {
	realm := newFakeRealm(t)
	client := realm.client(t, Config{})

	u, err := client.AuthorizeURL("state-1")
	if err != nil {
		t.Fatalf("AuthorizeURL: %v", err)
	}
	if !strings.Contains(u, "/protocol/openid-connect/auth?") {
		t.Errorf("authorize url = %q", u)
	}
	if !strings.Contains(u, "state=state-1") {
		t.Errorf("authorize url missing state: %q", u)
	}
}

func TestConfigMaterializesFromPreset(t *testing.T) {
	cfg := Config{
		Provider:     provider.Keycloak("https://sso.example.com", "acme"),
		ClientID:     "relay",
		ClientSecret: "secret",
		Validation:   &validate.Config{Mode: validate.ModeIntrospection},
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	if cfg.Flow.TokenURL == "" || cfg.Flow.ClientID != "relay" {
		t.Errorf("flow config = %+v", cfg.Flow)
	}
	if cfg.Lifecycle.RevocationURL == "" || cfg.Lifecycle.EndSessionURL == "" {
		t.Errorf("lifecycle config = %+v", cfg.Lifecycle)
	}
	if cfg.Validation.Introspect.URL == "" || cfg.Validation.Introspect.ClientID != "relay" {
		t.Errorf("introspect config = %+v", cfg.Validation.Introspect)
	}
}

func TestConfigExplicitURLsWinOverPreset(t *testing.T) {
	cfg := Config{
		Provider: provider.Keycloak("https://sso.example.com", "acme"),
		ClientID: "relay",
		Flow:     &flow.Config{TokenURL: "https://other.example.com/token"},
	}
	cfg.ApplyDefaults()
	if cfg.Flow.TokenURL != "https://other.example.com/token" {
		t.Errorf("token url = %q, preset overrode an explicit value", cfg.Flow.TokenURL)
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	body := []byte(`
client_id: relay
flow:
  token_url: https://sso.example.com/token
validate:
  mode: local
`)
	if err := os.WriteFile(path, body, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(config.WithConfigFile(path))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.ClientID != "relay" {
		t.Errorf("client_id = %q", cfg.ClientID)
	}
	if cfg.Flow == nil || cfg.Flow.TokenURL != "https://sso.example.com/token" {
		t.Errorf("flow = %+v", cfg.Flow)
	}
	if cfg.Validation == nil || cfg.Validation.Mode != validate.ModeLocal {
		t.Errorf("validation = %+v", cfg.Validation)
	}
}

func TestConfigDescribe(t *testing.T) {
	cfg := Config{}
	if got := cfg.Describe(); got != "unconfigured" {
		t.Errorf("Describe = %q", got)
	}

	cfg = Config{
		Provider:   provider.Keycloak("https://sso.example.com", "acme"),
		ClientID:   "relay",
		Validation: &validate.Config{Mode: validate.ModeLocal},
	}
	cfg.ApplyDefaults()
	desc := cfg.Describe()
	for _, want := range []string{"client=relay", "validate=local", "revocation=yes", "logout=yes"} {
		if !strings.Contains(desc, want) {
			t.Errorf("Describe = %q, missing %q", desc, want)
		}
	}
}
