// Package lifecycle manages an issued credential after acquisition: refresh
// through the refresh_token grant, revocation per RFC7009, and session
// logout against an OIDC end-session endpoint.
//
// Refresh mutates the Credential in place with an atomic state swap, so
// concurrent readers never observe a half-refreshed credential. Revocation
// is idempotent from the caller's view: revoking an already-revoked token
// succeeds, because authorization servers answer 200 either way.
package lifecycle
