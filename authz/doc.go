// Package authz answers authorization questions from verified token claims.
//
// It understands the Keycloak claim shape: realm-wide roles under
// realm_access.roles and per-client roles under resource_access.<client>.roles.
// An authority names one role, "role" for a realm role or "resource:role"
// for a client role, and the reserved resource name "realm" explicitly
// addresses the realm bucket.
//
// Only validate.VerifiedClaims are accepted. Claims decoded without
// verification never reach an authorization decision.
//
//	checker := authz.NewChecker(authz.Config{})
//	allowed := checker.HasAuthority(outcome.Claims, "finance:year-report")
package authz
