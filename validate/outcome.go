package validate

import (
	"context"

	"github.com/kbukum/oauthkit/token"
)

// Status is the tag of a validation Outcome.
type Status int

const (
	// StatusValid means every check passed; Claims carries the verified
	// claim set.
	StatusValid Status = iota
	// StatusExpired means the token's lifetime has passed. Refreshing may
	// recover the session; re-validation of the same token will not.
	StatusExpired
	// StatusInvalid means a check other than expiry failed (bad signature,
	// wrong issuer, revoked server-side, ...). Reason names the first
	// failing check.
	StatusInvalid
	// StatusError means the check could not be performed at all — a
	// transport or protocol failure during a remote round trip. Err carries
	// the classified error; nothing is known about the token itself.
	StatusError
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusValid:
		return "valid"
	case StatusExpired:
		return "expired"
	case StatusInvalid:
		return "invalid"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// VerifiedClaims holds claims whose authenticity has been established —
// either by signature verification (local mode) or by the authorization
// server echoing them from an introspection response. This type is
// deliberately distinct from token.UnverifiedClaims: authorization decisions
// (see the authz package) accept only this one.
type VerifiedClaims map[string]any

// String returns the named claim as a string, or "" when absent.
func (c VerifiedClaims) String(name string) string {
	v, _ := c[name].(string)
	return v
}

// Subject returns the "sub" claim.
func (c VerifiedClaims) Subject() string { return c.String("sub") }

// Outcome is the tagged result of a validity check. It is a value to branch
// on, never an error to propagate blindly.
type Outcome struct {
	Status Status
	// Claims is set only when Status is StatusValid.
	Claims VerifiedClaims
	// Reason names the first failing check for StatusInvalid.
	Reason string
	// Err is set only when Status is StatusError.
	Err error
}

// OK reports whether the token passed validation. Collapsing the outcome to
// a boolean is the caller's explicit choice; expired, invalid, and
// unperformable checks all collapse to false.
func (o Outcome) OK() bool { return o.Status == StatusValid }

// Valid builds a passing outcome.
func Valid(claims VerifiedClaims) Outcome {
	return Outcome{Status: StatusValid, Claims: claims}
}

// Expired builds an expired outcome.
func Expired() Outcome {
	return Outcome{Status: StatusExpired, Reason: "exp"}
}

// Invalid builds a failing outcome naming the failed check.
func Invalid(reason string) Outcome {
	return Outcome{Status: StatusInvalid, Reason: reason}
}

// Failure builds an outcome for a check that could not be performed.
func Failure(err error) Outcome {
	return Outcome{Status: StatusError, Err: err}
}

// Validator is the uniform contract over both strategies. Implementations:
// *Local and *Introspector, selected via New.
type Validator interface {
	// ValidateToken checks a bare token string (token-level granularity).
	ValidateToken(ctx context.Context, raw string) Outcome

	// ValidateCredential checks a session's current access token
	// (session-level granularity).
	ValidateCredential(ctx context.Context, cred *token.Credential) Outcome
}
