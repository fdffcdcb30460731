// Package oauthkit is an OAuth2 / OpenID Connect relying-party toolkit: it
// acquires tokens through the standard grants, tracks them as refreshable
// credentials, validates them locally or via introspection, extracts
// Keycloak-style role authorities, and tears sessions down again.
//
// The subpackages compose freely — flow for grant exchanges, token for the
// credential model, validate for validity checks, lifecycle for refresh,
// revocation and logout, authz for role decisions, provider for well-known
// endpoint presets. The Client in this package wires them together for the
// common case:
//
//	client, err := oauthkit.New(oauthkit.Config{
//	    Provider: provider.Keycloak("https://sso.example.com", "acme"),
//	    ClientID: "relay-client",
//	    ClientSecret: secret,
//	    Validation: &validate.Config{Mode: validate.ModeIntrospection},
//	})
//
//	cred, err := client.ExchangeClientCredentials(ctx)
//	outcome := client.Validate(ctx, cred)
//	if outcome.OK() && client.HasAuthority(outcome.Claims, "finance:year-report") {
//	    ...
//	}
package oauthkit
