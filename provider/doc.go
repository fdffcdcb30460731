// Package provider ships endpoint presets for well-known authorization
// servers, so wiring a client against Keycloak, Google, GitHub, or Azure AD
// is a one-liner instead of five endpoint URLs.
//
//	p := provider.Keycloak("https://sso.example.com", "acme")
//	flows, err := flow.New(p.FlowConfig("my-client", secret))
//
// A preset is plain data. Everything it produces can be edited before use,
// and fully custom providers skip this package entirely.
package provider
