package flow

import (
	"crypto/rand"
	"encoding/hex"
	"io"
	"net/url"
	"strings"

	kiterrors "github.com/kbukum/oauthkit/errors"
)

// AuthorizeOption configures authorization URL composition.
type AuthorizeOption func(*authorizeOptions)

type authorizeOptions struct {
	redirectURI string
	scopes      []string
	nonce       string
	extraParams map[string]string
}

// WithRedirectURI overrides the configured redirect URI for this URL.
func WithRedirectURI(uri string) AuthorizeOption {
	return func(o *authorizeOptions) { o.redirectURI = uri }
}

// WithScopes overrides the configured scopes for this URL.
func WithScopes(scopes ...string) AuthorizeOption {
	return func(o *authorizeOptions) { o.scopes = scopes }
}

// WithNonce adds an OIDC nonce parameter for replay protection.
func WithNonce(nonce string) AuthorizeOption {
	return func(o *authorizeOptions) { o.nonce = nonce }
}

// WithExtraParam adds a custom query parameter (login_hint, prompt, ...).
func WithExtraParam(key, value string) AuthorizeOption {
	return func(o *authorizeOptions) {
		if o.extraParams == nil {
			o.extraParams = make(map[string]string)
		}
		o.extraParams[key] = value
	}
}

// AuthorizeURL composes the front-channel URL that starts the
// authorization-code flow. state should come from GenerateState and be
// checked on the callback.
func (e *Engine) AuthorizeURL(state string, opts ...AuthorizeOption) (string, error) {
	if e.cfg.AuthorizationURL == "" {
		return "", kiterrors.InvalidRequest("flow: authorization_url is not configured")
	}

	var o authorizeOptions
	for _, opt := range opts {
		opt(&o)
	}
	if o.redirectURI == "" {
		o.redirectURI = e.cfg.RedirectURI
	}
	if len(o.scopes) == 0 {
		o.scopes = e.cfg.Scopes
	}

	u, err := url.Parse(e.cfg.AuthorizationURL)
	if err != nil {
		return "", kiterrors.InvalidRequest("flow: invalid authorization_url: " + err.Error())
	}

	q := u.Query()
	q.Set("response_type", "code")
	q.Set("client_id", e.cfg.ClientID)
	if o.redirectURI != "" {
		q.Set("redirect_uri", o.redirectURI)
	}
	if len(o.scopes) > 0 {
		q.Set("scope", strings.Join(o.scopes, " "))
	}
	if state != "" {
		q.Set("state", state)
	}
	if o.nonce != "" {
		q.Set("nonce", o.nonce)
	}
	for k, v := range o.extraParams {
		q.Set(k, v)
	}
	u.RawQuery = q.Encode()

	return u.String(), nil
}

// GenerateState creates a cryptographically secure random state string for
// CSRF protection. Returns a 32-byte hex-encoded string (64 characters).
func GenerateState() (string, error) {
	b := make([]byte, 32)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// GenerateNonce creates a cryptographically secure random nonce for OIDC
// replay protection. Returns a 16-byte hex-encoded string (32 characters).
func GenerateNonce() (string, error) {
	b := make([]byte, 16)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
