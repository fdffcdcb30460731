package authz

import "strings"

// RealmResource is the reserved resource name addressing the realm-wide
// role bucket. "realm:admin" and plain "admin" name the same authority.
const RealmResource = "realm"

// Authority is one parsed role requirement. Resource is RealmResource for
// realm-wide roles, otherwise the client the role is scoped to.
type Authority struct {
	Resource   string
	Permission string
}

// IsRealm reports whether the authority addresses the realm bucket.
func (a Authority) IsRealm() bool { return a.Resource == RealmResource }

// String renders the authority back to its wire form.
func (a Authority) String() string {
	if a.IsRealm() {
		return a.Permission
	}
	return a.Resource + ":" + a.Permission
}

// ParseAuthority parses "role" or "resource:role". The split is at the
// FIRST colon, so a role name may itself contain colons. An authority
// without a resource addresses the realm bucket.
func ParseAuthority(s string) Authority {
	resource, permission, found := strings.Cut(s, ":")
	if !found {
		return Authority{Resource: RealmResource, Permission: s}
	}
	return Authority{Resource: resource, Permission: permission}
}
