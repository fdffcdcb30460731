// Package token holds the credential model: the access/refresh/id token set
// obtained from an authorization server, its expiry window, and its decoded
// (but unverified) claims.
//
// A Credential is created by the flow package and updated in place by the
// lifecycle package. Application code never constructs one directly. Its
// identity (grant type, acquisition time) is fixed for the life of the
// session; the token strings and expiry are replaced as one atomic unit on
// refresh, so a concurrent reader observes either the old state or the new
// state, never a mix.
package token
