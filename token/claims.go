package token

import (
	"errors"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
)

// UnverifiedClaims holds claims decoded from a JWT WITHOUT signature
// verification. The type exists so unverified content can never be passed
// where verified claims are expected: the validate package returns a
// different type for claims whose signature has been checked.
//
// Use these for inspection only — reading an expiry hint, logging a subject,
// deciding whether a refresh is worth attempting. Never for authorization.
type UnverifiedClaims map[string]any

// DecodeUnverified splits and base64url-decodes a JWT's payload segment.
// It performs no signature or claims validation. Returns an error when the
// string is not a structurally valid JWT (e.g. an opaque token).
func DecodeUnverified(raw string) (UnverifiedClaims, error) {
	if raw == "" {
		return nil, errors.New("token: empty token string")
	}
	claims := gojwt.MapClaims{}
	parser := gojwt.NewParser()
	if _, _, err := parser.ParseUnverified(raw, claims); err != nil {
		return nil, err
	}
	return UnverifiedClaims(claims), nil
}

// String returns the named claim as a string, or "" when absent or not a
// string.
func (c UnverifiedClaims) String(name string) string {
	v, _ := c[name].(string)
	return v
}

// Subject returns the "sub" claim.
func (c UnverifiedClaims) Subject() string { return c.String("sub") }

// Issuer returns the "iss" claim.
func (c UnverifiedClaims) Issuer() string { return c.String("iss") }

// Expiry returns the "exp" claim as an absolute time. ok is false when the
// claim is absent or not numeric.
func (c UnverifiedClaims) Expiry() (exp time.Time, ok bool) {
	return c.numericTime("exp")
}

// NotBefore returns the "nbf" claim as an absolute time.
func (c UnverifiedClaims) NotBefore() (nbf time.Time, ok bool) {
	return c.numericTime("nbf")
}

func (c UnverifiedClaims) numericTime(name string) (time.Time, bool) {
	switch v := c[name].(type) {
	case float64:
		return time.Unix(int64(v), 0), true
	case int64:
		return time.Unix(v, 0), true
	case gojwt.NumericDate:
		return v.Time, true
	}
	return time.Time{}, false
}
