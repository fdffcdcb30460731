package authz

import (
	"sort"

	"github.com/kbukum/oauthkit/validate"
)

// Config names the claims the checker reads. The defaults match Keycloak;
// override them for providers that relocate the buckets.
type Config struct {
	// RealmAccessClaim is the claim holding realm-wide roles
	// (default: "realm_access").
	RealmAccessClaim string `yaml:"realm_access_claim" mapstructure:"realm_access_claim"`

	// ResourceAccessClaim is the claim holding the per-client role map
	// (default: "resource_access").
	ResourceAccessClaim string `yaml:"resource_access_claim" mapstructure:"resource_access_claim"`

	// RolesField is the key of the role list inside each bucket
	// (default: "roles").
	RolesField string `yaml:"roles_field" mapstructure:"roles_field"`
}

// ApplyDefaults fills in zero-value fields with the Keycloak claim names.
func (c *Config) ApplyDefaults() {
	if c.RealmAccessClaim == "" {
		c.RealmAccessClaim = "realm_access"
	}
	if c.ResourceAccessClaim == "" {
		c.ResourceAccessClaim = "resource_access"
	}
	if c.RolesField == "" {
		c.RolesField = "roles"
	}
}

// Checker answers role questions against verified claims.
type Checker struct {
	cfg Config
}

// NewChecker creates a checker.
func NewChecker(cfg Config) *Checker {
	cfg.ApplyDefaults()
	return &Checker{cfg: cfg}
}

// HasAuthority reports whether the claims grant the authority. A missing
// bucket, a missing role list, or a malformed claim all answer false;
// absence of evidence is denial, never an error.
func (c *Checker) HasAuthority(claims validate.VerifiedClaims, authority string) bool {
	a := ParseAuthority(authority)
	for _, role := range c.rolesFor(claims, a.Resource) {
		if role == a.Permission {
			return true
		}
	}
	return false
}

// HasAnyAuthority reports whether at least one of the authorities is
// granted.
func (c *Checker) HasAnyAuthority(claims validate.VerifiedClaims, authorities ...string) bool {
	for _, authority := range authorities {
		if c.HasAuthority(claims, authority) {
			return true
		}
	}
	return false
}

// HasMatching reports whether any granted authority matches the pattern.
// Patterns use the same "resource:role" shape with "*" wildcards on either
// side: "finance:*" asks for any role on the finance client, "*:admin" for
// an admin role anywhere.
func (c *Checker) HasMatching(claims validate.VerifiedClaims, pattern string) bool {
	p := ParseAuthority(pattern)
	for _, granted := range c.Authorities(claims) {
		if matchPart(p.Resource, granted.Resource) && matchPart(p.Permission, granted.Permission) {
			return true
		}
	}
	return false
}

func matchPart(pattern, value string) bool {
	return pattern == "*" || pattern == value
}

// Authorities enumerates every authority the claims grant, realm roles
// first, then client roles sorted by client name.
func (c *Checker) Authorities(claims validate.VerifiedClaims) []Authority {
	var out []Authority
	for _, role := range c.rolesFor(claims, RealmResource) {
		out = append(out, Authority{Resource: RealmResource, Permission: role})
	}

	resources, _ := claims[c.cfg.ResourceAccessClaim].(map[string]any)
	names := make([]string, 0, len(resources))
	for name := range resources {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		for _, role := range c.bucketRoles(resources[name]) {
			out = append(out, Authority{Resource: name, Permission: role})
		}
	}
	return out
}

func (c *Checker) rolesFor(claims validate.VerifiedClaims, resource string) []string {
	if resource == RealmResource {
		return c.bucketRoles(claims[c.cfg.RealmAccessClaim])
	}
	resources, _ := claims[c.cfg.ResourceAccessClaim].(map[string]any)
	return c.bucketRoles(resources[resource])
}

// bucketRoles digs the role list out of a bucket value. Claims arrive from
// JSON decoding, so everything is map[string]any and []any underneath.
func (c *Checker) bucketRoles(bucket any) []string {
	m, ok := bucket.(map[string]any)
	if !ok {
		return nil
	}
	list, ok := m[c.cfg.RolesField].([]any)
	if !ok {
		return nil
	}
	roles := make([]string, 0, len(list))
	for _, v := range list {
		if s, ok := v.(string); ok {
			roles = append(roles, s)
		}
	}
	return roles
}
