package provider

import (
	"strings"

	"github.com/kbukum/oauthkit/flow"
	"github.com/kbukum/oauthkit/lifecycle"
	"github.com/kbukum/oauthkit/validate"
)

// Preset bundles the endpoint layout of one authorization server. Empty
// fields mean the provider has no such endpoint.
type Preset struct {
	Name             string
	AuthorizationURL string
	TokenURL         string
	IntrospectionURL string
	RevocationURL    string
	EndSessionURL    string
	JWKSURL          string

	// DefaultScopes are requested when the caller configures none.
	DefaultScopes []string

	// AuthMethod is the client authentication the provider expects.
	AuthMethod flow.AuthMethod

	// ExtraParams are provider-specific token-request parameters.
	ExtraParams map[string]string
}

// FlowConfig builds a grant-exchange configuration for this provider.
func (p Preset) FlowConfig(clientID, clientSecret string) flow.Config {
	return flow.Config{
		TokenURL:         p.TokenURL,
		AuthorizationURL: p.AuthorizationURL,
		ClientID:         clientID,
		ClientSecret:     clientSecret,
		Scopes:           append([]string(nil), p.DefaultScopes...),
		AuthMethod:       p.AuthMethod,
		ExtraParams:      p.ExtraParams,
	}
}

// IntrospectConfig builds a remote-validation configuration for this
// provider.
func (p Preset) IntrospectConfig(clientID, clientSecret string) validate.IntrospectConfig {
	return validate.IntrospectConfig{
		URL:          p.IntrospectionURL,
		ClientID:     clientID,
		ClientSecret: clientSecret,
	}
}

// LifecycleConfig builds a lifecycle configuration for this provider.
func (p Preset) LifecycleConfig() lifecycle.Config {
	return lifecycle.Config{
		RevocationURL: p.RevocationURL,
		EndSessionURL: p.EndSessionURL,
	}
}

// Keycloak derives the full endpoint set of a Keycloak realm from the
// server base URL and realm name.
func Keycloak(baseURL, realm string) Preset {
	base := strings.TrimRight(baseURL, "/") + "/realms/" + realm + "/protocol/openid-connect"
	return Preset{
		Name:             "keycloak",
		AuthorizationURL: base + "/auth",
		TokenURL:         base + "/token",
		IntrospectionURL: base + "/token/introspect",
		RevocationURL:    base + "/revoke",
		EndSessionURL:    base + "/logout",
		JWKSURL:          base + "/certs",
		DefaultScopes:    []string{"openid"},
		AuthMethod:       flow.AuthMethodBasic,
	}
}

// Google returns the Google OAuth2 endpoints. Google validates via its
// legacy tokeninfo endpoint, which answers with bare claims instead of an
// RFC7662 active flag.
func Google() Preset {
	return Preset{
		Name:             "google",
		AuthorizationURL: "https://accounts.google.com/o/oauth2/v2/auth",
		TokenURL:         "https://oauth2.googleapis.com/token",
		IntrospectionURL: "https://oauth2.googleapis.com/tokeninfo",
		RevocationURL:    "https://oauth2.googleapis.com/revoke",
		DefaultScopes:    []string{"openid", "email", "profile"},
		AuthMethod:       flow.AuthMethodPost,
	}
}

// GitHub returns the GitHub OAuth endpoints. GitHub has no introspection or
// revocation endpoint in the OAuth sense; tokens are managed through its
// REST API instead.
func GitHub() Preset {
	return Preset{
		Name:             "github",
		AuthorizationURL: "https://github.com/login/oauth/authorize",
		TokenURL:         "https://github.com/login/oauth/access_token",
		AuthMethod:       flow.AuthMethodPost,
	}
}

// AzureAD returns the Azure AD v2 endpoints for a tenant. Use "common" for
// multi-tenant applications.
func AzureAD(tenant string) Preset {
	base := "https://login.microsoftonline.com/" + tenant + "/oauth2/v2.0"
	return Preset{
		Name:             "azuread",
		AuthorizationURL: base + "/authorize",
		TokenURL:         base + "/token",
		EndSessionURL:    base + "/logout",
		DefaultScopes:    []string{"openid", "profile"},
		AuthMethod:       flow.AuthMethodPost,
	}
}
