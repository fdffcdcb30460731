// Package validate decides whether a credential is still usable.
//
// Two mutually exclusive strategies exist, selected explicitly by
// configuration — never auto-detected, so trust decisions are always the
// operator's:
//
//   - Local: the access token is decoded as a JWT and its signature and
//     standard claims are checked offline, in the fixed order
//     signature → exp → nbf → iss → aud. No network round trip is made,
//     which also means server-side revocation or logout CANNOT be observed.
//     That blind spot is the documented price of the mode's latency.
//
//   - Introspection: the token is posted to the provider's introspection
//     (or legacy tokeninfo) endpoint and the response's active signal is
//     authoritative. Every check is a network round trip and always reflects
//     current server-side state.
//
// Both strategies answer at two granularities: a whole Credential
// (session-level) or a bare token string (token-level, for tokens obtained
// elsewhere). Results are Outcome values the caller branches on — an invalid
// token is a result, not an error.
package validate
