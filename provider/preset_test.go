package provider

import (
	"testing"

	"github.com/kbukum/oauthkit/flow"
)

func TestKeycloakEndpointLayout(t *testing.T) {
	p := Keycloak("https://sso.example.com/", "acme")

	base := "https://sso.example.com/realms/acme/protocol/openid-connect"
	if p.TokenURL != base+"/token" {
		t.Errorf("token url = %q", p.TokenURL)
	}
	if p.AuthorizationURL != base+"/auth" {
		t.Errorf("authorization url = %q", p.AuthorizationURL)
	}
	if p.IntrospectionURL != base+"/token/introspect" {
		t.Errorf("introspection url = %q", p.IntrospectionURL)
	}
	if p.RevocationURL != base+"/revoke" {
		t.Errorf("revocation url = %q", p.RevocationURL)
	}
	if p.EndSessionURL != base+"/logout" {
		t.Errorf("end-session url = %q", p.EndSessionURL)
	}
	if p.JWKSURL != base+"/certs" {
		t.Errorf("jwks url = %q", p.JWKSURL)
	}
}

func TestPresetFlowConfig(t *testing.T) {
	cfg := Keycloak("https://sso.example.com", "acme").FlowConfig("cli", "secret")
	if cfg.ClientID != "cli" || cfg.ClientSecret != "secret" {
		t.Errorf("client credentials not carried: %q/%q", cfg.ClientID, cfg.ClientSecret)
	}
	if len(cfg.Scopes) != 1 || cfg.Scopes[0] != "openid" {
		t.Errorf("scopes = %v, want [openid]", cfg.Scopes)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("produced config does not validate: %v", err)
	}
}

func TestPresetIntrospectAndLifecycleConfigs(t *testing.T) {
	p := Keycloak("https://sso.example.com", "acme")

	icfg := p.IntrospectConfig("cli", "secret")
	if icfg.URL != p.IntrospectionURL || icfg.ClientID != "cli" {
		t.Errorf("introspect config = %+v", icfg)
	}

	lcfg := p.LifecycleConfig()
	if lcfg.RevocationURL != p.RevocationURL || lcfg.EndSessionURL != p.EndSessionURL {
		t.Errorf("lifecycle config = %+v", lcfg)
	}
}

func TestWellKnownPresets(t *testing.T) {
	if p := Google(); p.TokenURL == "" || p.AuthMethod != flow.AuthMethodPost {
		t.Errorf("google preset = %+v", p)
	}
	if p := GitHub(); p.IntrospectionURL != "" || p.RevocationURL != "" {
		t.Errorf("github preset should have no introspection or revocation: %+v", p)
	}
	if p := AzureAD("common"); p.TokenURL != "https://login.microsoftonline.com/common/oauth2/v2.0/token" {
		t.Errorf("azuread token url = %q", p.TokenURL)
	}
}

func TestRegistry(t *testing.T) {
	reg := NewRegistry()
	reg.Register("sso", Keycloak("https://sso.example.com", "acme"))
	reg.Register("google", Google())

	if p, ok := reg.Get("sso"); !ok || p.Name != "keycloak" {
		t.Errorf("Get(sso) = %+v, %v", p, ok)
	}
	if _, ok := reg.Get("missing"); ok {
		t.Error("Get(missing) found a preset")
	}

	// First registration is the default until overridden.
	if p, ok := reg.Default(); !ok || p.Name != "keycloak" {
		t.Errorf("default = %+v, %v", p, ok)
	}
	if err := reg.SetDefault("google"); err != nil {
		t.Fatalf("SetDefault: %v", err)
	}
	if p, _ := reg.Default(); p.Name != "google" {
		t.Errorf("default after SetDefault = %q", p.Name)
	}
	if err := reg.SetDefault("missing"); err == nil {
		t.Error("SetDefault(missing) succeeded")
	}

	names := reg.Names()
	if len(names) != 2 || names[0] != "google" || names[1] != "sso" {
		t.Errorf("names = %v", names)
	}
}

func TestEmptyRegistryHasNoDefault(t *testing.T) {
	if _, ok := NewRegistry().Default(); ok {
		t.Error("empty registry produced a default")
	}
}
