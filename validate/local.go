package validate

import (
	"context"
	"errors"
	"fmt"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"

	"github.com/kbukum/oauthkit/token"
)

// KeyResolver supplies verification key material for a token, keyed by the
// token header's kid hint. Implementations typically wrap a JWKS cache or a
// static key; resolving keys is a delegated capability, not this package's
// concern.
type KeyResolver interface {
	ResolveKey(kid, alg string) (any, error)
}

// KeyResolverFunc adapts an ordinary function to the KeyResolver interface.
type KeyResolverFunc func(kid, alg string) (any, error)

// ResolveKey implements KeyResolver.
func (f KeyResolverFunc) ResolveKey(kid, alg string) (any, error) { return f(kid, alg) }

// StaticKey returns a KeyResolver that always yields the same key,
// regardless of kid.
func StaticKey(key any) KeyResolver {
	return KeyResolverFunc(func(string, string) (any, error) { return key, nil })
}

// LocalConfig configures offline JWT validation.
type LocalConfig struct {
	// Issuer is the expected "iss" claim. Empty skips the issuer check.
	Issuer string `yaml:"issuer" mapstructure:"issuer"`

	// Audience is the expected "aud" claim. Empty skips the audience check.
	Audience string `yaml:"audience" mapstructure:"audience"`

	// AllowedAlgs restricts accepted signing algorithms (default: ["RS256"]).
	AllowedAlgs []string `yaml:"allowed_algs" mapstructure:"allowed_algs"`

	// ClockSkew is the tolerance applied to exp and nbf checks.
	ClockSkew time.Duration `yaml:"clock_skew" mapstructure:"clock_skew"`

	// Keys resolves verification key material (required).
	Keys KeyResolver `yaml:"-" mapstructure:"-"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *LocalConfig) ApplyDefaults() {
	if len(c.AllowedAlgs) == 0 {
		c.AllowedAlgs = []string{"RS256"}
	}
}

// Validate checks required fields.
func (c *LocalConfig) Validate() error {
	if c.Keys == nil {
		return fmt.Errorf("validate: a key resolver is required for local validation")
	}
	return nil
}

// Local validates JWTs offline: signature plus standard claims, checked in
// the fixed order signature → exp → nbf → iss → aud. The outcome always
// names the FIRST failing check, so a token that is both tampered and
// expired reports the signature, never the expiry.
type Local struct {
	cfg    LocalConfig
	parser *gojwt.Parser
}

// NewLocal creates a local validator.
func NewLocal(cfg LocalConfig) (*Local, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Local{
		cfg: cfg,
		parser: gojwt.NewParser(
			gojwt.WithValidMethods(cfg.AllowedAlgs),
			// Claims are checked manually below to keep the failure order
			// deterministic.
			gojwt.WithoutClaimsValidation(),
		),
	}, nil
}

// ValidateToken checks a bare token string. The context is unused — the
// check is fully offline — and accepted only for Validator uniformity.
func (l *Local) ValidateToken(_ context.Context, raw string) Outcome {
	return l.validate(raw)
}

// ValidateCredential checks a Credential's current access token.
func (l *Local) ValidateCredential(_ context.Context, cred *token.Credential) Outcome {
	return l.validate(cred.AccessToken())
}

func (l *Local) validate(raw string) Outcome {
	claims := gojwt.MapClaims{}
	parsed, err := l.parser.ParseWithClaims(raw, claims, l.keyFunc)
	if err != nil {
		if errors.Is(err, gojwt.ErrTokenMalformed) {
			return Invalid("malformed")
		}
		return Invalid("signature")
	}
	if !parsed.Valid {
		return Invalid("signature")
	}

	now := time.Now()

	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		if now.After(exp.Add(l.cfg.ClockSkew)) {
			return Expired()
		}
	}

	if nbf, err := claims.GetNotBefore(); err == nil && nbf != nil {
		if now.Add(l.cfg.ClockSkew).Before(nbf.Time) {
			return Invalid("nbf")
		}
	}

	if l.cfg.Issuer != "" {
		iss, _ := claims.GetIssuer()
		if iss != l.cfg.Issuer {
			return Invalid("iss")
		}
	}

	if l.cfg.Audience != "" {
		aud, _ := claims.GetAudience()
		if !containsString(aud, l.cfg.Audience) {
			return Invalid("aud")
		}
	}

	return Valid(VerifiedClaims(claims))
}

func (l *Local) keyFunc(t *gojwt.Token) (any, error) {
	kid, _ := t.Header["kid"].(string)
	return l.cfg.Keys.ResolveKey(kid, t.Method.Alg())
}

func containsString(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}
