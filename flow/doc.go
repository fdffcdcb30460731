// Package flow executes OAuth2 grant exchanges against an authorization
// server's token endpoint: authorization-code, resource-owner password, and
// client-credentials. Each exchange is a single request/response round trip
// producing a *token.Credential.
//
// The password grant is deprecated and security-sensitive; the engine refuses
// it unless the configuration explicitly opts in with AllowPasswordGrant.
//
// The engine never retries. Grant exchanges are not generally idempotent (an
// authorization code is single-use), so retry policy is left entirely to the
// caller — see the retry package for the recommended composition on
// transport failures.
package flow
