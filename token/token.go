package token

import (
	"strings"
	"sync"
	"time"
)

// Type identifies how the access token is presented to resource servers.
type Type string

const (
	// TypeBearer tokens are presented as-is in an Authorization header.
	TypeBearer Type = "Bearer"
	// TypeMAC tokens require proof-of-possession (rarely seen in practice).
	TypeMAC Type = "MAC"
)

// ParseType normalizes a wire token_type value ("bearer", "Bearer", ...).
// Unknown values are preserved verbatim.
func ParseType(s string) Type {
	switch {
	case strings.EqualFold(s, string(TypeBearer)):
		return TypeBearer
	case strings.EqualFold(s, string(TypeMAC)):
		return TypeMAC
	default:
		return Type(s)
	}
}

// Credential is one logical session's token set. Identity fields are fixed at
// issuance; the token state is swapped as a unit on refresh.
type Credential struct {
	grantType  string
	obtainedAt time.Time

	mu sync.RWMutex
	st state
}

// state is the swappable part of a Credential. It is replaced wholesale under
// the write lock so readers never see a torn mix of old and new fields.
type state struct {
	accessToken  string
	refreshToken string
	idToken      string
	tokenType    Type
	issuedAt     time.Time
	expiresAt    time.Time // zero = no expiry hint recorded
	scopes       []string
	claims       UnverifiedClaims
}

// Issuance carries the fields of a server token response needed to build a
// Credential. ExpiresAt is already resolved to an absolute timestamp by the
// caller (from expires_in, or from the JWT exp claim); leave it zero when the
// server gave no expiry hint.
type Issuance struct {
	AccessToken  string
	RefreshToken string
	IDToken      string
	TokenType    Type
	ExpiresAt    time.Time
	Scopes       []string
}

// Issue constructs a Credential from a token response. It is intended for the
// flow package; application code obtains Credentials from a grant exchange.
func Issue(grantType string, iss Issuance) *Credential {
	now := time.Now()
	return &Credential{
		grantType:  grantType,
		obtainedAt: now,
		st:         newState(iss, now),
	}
}

func newState(iss Issuance, issuedAt time.Time) state {
	tokenType := iss.TokenType
	if tokenType == "" {
		tokenType = TypeBearer
	}

	// Claims decode never verifies signatures. The access token is preferred;
	// an opaque access token falls back to the ID token when present.
	claims, err := DecodeUnverified(iss.AccessToken)
	if err != nil && iss.IDToken != "" {
		claims, _ = DecodeUnverified(iss.IDToken)
	}

	return state{
		accessToken:  iss.AccessToken,
		refreshToken: iss.RefreshToken,
		idToken:      iss.IDToken,
		tokenType:    tokenType,
		issuedAt:     issuedAt,
		expiresAt:    iss.ExpiresAt,
		scopes:       append([]string(nil), iss.Scopes...),
		claims:       claims,
	}
}

// GrantType returns the grant that originally produced this Credential.
func (c *Credential) GrantType() string { return c.grantType }

// ObtainedAt returns when the session was first established. Unlike IssuedAt
// it does not move on refresh.
func (c *Credential) ObtainedAt() time.Time { return c.obtainedAt }

// AccessToken returns the current access token string.
func (c *Credential) AccessToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.st.accessToken
}

// RefreshToken returns the current refresh token string, or "" when the
// server issued none (refresh is then impossible).
func (c *Credential) RefreshToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.st.refreshToken
}

// IDToken returns the OIDC ID token string, or "" when absent.
func (c *Credential) IDToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.st.idToken
}

// TokenType returns how the access token must be presented.
func (c *Credential) TokenType() Type {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.st.tokenType
}

// IssuedAt returns when the current token set was issued (moves on refresh).
func (c *Credential) IssuedAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.st.issuedAt
}

// ExpiresAt returns the absolute expiry of the current access token. The
// zero time means the server gave no expiry hint and the Credential is
// treated as non-expiring.
func (c *Credential) ExpiresAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.st.expiresAt
}

// Scopes returns the granted scope set.
func (c *Credential) Scopes() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]string(nil), c.st.scopes...)
}

// Claims returns the decoded, UNVERIFIED claims of the current token, or nil
// when the token is opaque. Never authorize based on these; use the validate
// package to obtain verified claims.
func (c *Credential) Claims() UnverifiedClaims {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.st.claims
}

// CanRefresh reports whether a refresh token is available.
func (c *Credential) CanRefresh() bool {
	return c.RefreshToken() != ""
}

// Snapshot is a consistent point-in-time view of a Credential's token state.
type Snapshot struct {
	AccessToken  string
	RefreshToken string
	IDToken      string
	TokenType    Type
	IssuedAt     time.Time
	ExpiresAt    time.Time
	Scopes       []string
	Claims       UnverifiedClaims
}

// Snapshot returns all token fields read under a single lock, guaranteeing
// they belong to the same issuance.
func (c *Credential) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Snapshot{
		AccessToken:  c.st.accessToken,
		RefreshToken: c.st.refreshToken,
		IDToken:      c.st.idToken,
		TokenType:    c.st.tokenType,
		IssuedAt:     c.st.issuedAt,
		ExpiresAt:    c.st.expiresAt,
		Scopes:       append([]string(nil), c.st.scopes...),
		Claims:       c.st.claims,
	}
}

// ExpiredLocally reports whether the access token's recorded expiry has
// passed, allowing skew of clock tolerance. It is a pure offline check:
//
//   - When no expiry was ever recorded it always returns false. This is the
//     documented policy for servers that omit expiry hints, not an error.
//   - It can be wrong in the optimistic direction: the server may have
//     revoked the token while the local expiry still lies ahead. That
//     asymmetry is inherent to offline checking; use introspection via the
//     validate package when current server-side state matters.
func (c *Credential) ExpiredLocally(skew time.Duration) bool {
	return c.ExpiredLocallyAt(time.Now(), skew)
}

// ExpiredLocallyAt is ExpiredLocally evaluated against an explicit clock.
func (c *Credential) ExpiredLocallyAt(now time.Time, skew time.Duration) bool {
	exp := c.ExpiresAt()
	if exp.IsZero() {
		return false
	}
	return now.After(exp.Add(skew))
}

// Refreshed carries the replacement token state from a refresh grant.
// An empty RefreshToken means the server omitted it on rotation and the
// prior refresh token is retained.
type Refreshed struct {
	AccessToken  string
	RefreshToken string
	TokenType    Type
	ExpiresAt    time.Time
	Scopes       []string
}

// ApplyRefresh atomically replaces the token state while preserving the
// Credential's identity. It is intended for the lifecycle package. The swap
// is all-or-nothing: a reader holding Snapshot sees either the complete old
// state or the complete new state.
func (c *Credential) ApplyRefresh(r Refreshed) {
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	next := newState(Issuance{
		AccessToken:  r.AccessToken,
		RefreshToken: r.RefreshToken,
		IDToken:      c.st.idToken,
		TokenType:    r.TokenType,
		ExpiresAt:    r.ExpiresAt,
		Scopes:       r.Scopes,
	}, now)

	if next.refreshToken == "" {
		next.refreshToken = c.st.refreshToken
	}
	// newState already defaulted an absent token type to Bearer, so retention
	// has to look at the wire value.
	if r.TokenType == "" {
		next.tokenType = c.st.tokenType
	}
	if len(next.scopes) == 0 {
		next.scopes = c.st.scopes
	}

	c.st = next
}
