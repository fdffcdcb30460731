package oauthkit

import (
	"context"
	"time"

	"github.com/kbukum/oauthkit/authz"
	kiterrors "github.com/kbukum/oauthkit/errors"
	"github.com/kbukum/oauthkit/flow"
	"github.com/kbukum/oauthkit/lifecycle"
	"github.com/kbukum/oauthkit/logger"
	"github.com/kbukum/oauthkit/token"
	"github.com/kbukum/oauthkit/validate"
)

// Client composes the subpackages into one relying-party client: grant
// exchanges, validation, refresh, revocation, logout, and role decisions,
// all against a single configured provider.
type Client struct {
	flows     *flow.Engine
	lifecycle *lifecycle.Manager
	validator validate.Validator
	checker   *authz.Checker
	log       *logger.Logger
}

// New creates a Client from configuration.
func New(cfg Config) (*Client, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log := logger.Nop()
	if cfg.Logger != nil {
		log = logger.New(cfg.Logger)
	}
	cfg.Flow.Logger = log
	cfg.Lifecycle.Logger = log

	flows, err := flow.New(*cfg.Flow)
	if err != nil {
		return nil, err
	}

	lc, err := lifecycle.New(flows, *cfg.Lifecycle)
	if err != nil {
		return nil, err
	}

	var validator validate.Validator
	if cfg.Validation != nil {
		cfg.Validation.Introspect.Logger = log
		validator, err = validate.New(*cfg.Validation)
		if err != nil {
			return nil, err
		}
	}

	var acfg authz.Config
	if cfg.Authz != nil {
		acfg = *cfg.Authz
	}

	log.WithComponent("client").Info("client configured", logger.Fields(
		logger.FieldEndpoint, cfg.Flow.TokenURL,
	))

	return &Client{
		flows:     flows,
		lifecycle: lc,
		validator: validator,
		checker:   authz.NewChecker(acfg),
		log:       log,
	}, nil
}

// Flows exposes the underlying grant-exchange engine.
func (c *Client) Flows() *flow.Engine { return c.flows }

// Lifecycle exposes the underlying lifecycle manager.
func (c *Client) Lifecycle() *lifecycle.Manager { return c.lifecycle }

// AuthorizeURL composes the front-channel authorization URL for the
// authorization-code flow.
func (c *Client) AuthorizeURL(state string, opts ...flow.AuthorizeOption) (string, error) {
	return c.flows.AuthorizeURL(state, opts...)
}

// ExchangeCode trades an authorization code for a credential.
func (c *Client) ExchangeCode(ctx context.Context, code, redirectURI string) (*token.Credential, error) {
	return c.flows.ExchangeCode(ctx, code, redirectURI)
}

// ExchangePassword trades resource-owner credentials for a credential.
// Requires the password grant to be enabled in the flow configuration.
func (c *Client) ExchangePassword(ctx context.Context, username, password string) (*token.Credential, error) {
	return c.flows.ExchangePassword(ctx, username, password)
}

// ExchangeClientCredentials obtains a service-account credential.
func (c *Client) ExchangeClientCredentials(ctx context.Context) (*token.Credential, error) {
	return c.flows.ExchangeClientCredentials(ctx)
}

// Validate checks a credential with the configured strategy.
func (c *Client) Validate(ctx context.Context, cred *token.Credential) validate.Outcome {
	if c.validator == nil {
		return validate.Failure(kiterrors.InvalidRequest("no validation strategy configured"))
	}
	return c.validator.ValidateCredential(ctx, cred)
}

// ValidateToken checks a bare token string with the configured strategy.
func (c *Client) ValidateToken(ctx context.Context, raw string) validate.Outcome {
	if c.validator == nil {
		return validate.Failure(kiterrors.InvalidRequest("no validation strategy configured"))
	}
	return c.validator.ValidateToken(ctx, raw)
}

// Refresh exchanges the credential's refresh token for fresh state.
func (c *Client) Refresh(ctx context.Context, cred *token.Credential) error {
	return c.lifecycle.Refresh(ctx, cred)
}

// EnsureFresh refreshes the credential only when its access token has
// locally expired (within skew) and a refresh token is available. A
// credential without a recorded expiry is left alone.
func (c *Client) EnsureFresh(ctx context.Context, cred *token.Credential, skew time.Duration) error {
	if !cred.ExpiredLocally(skew) {
		return nil
	}
	if !cred.CanRefresh() {
		return kiterrors.InvalidRequest("credential expired and has no refresh token")
	}
	return c.lifecycle.Refresh(ctx, cred)
}

// Revoke revokes both of the credential's tokens.
func (c *Client) Revoke(ctx context.Context, cred *token.Credential) error {
	return c.lifecycle.Revoke(ctx, cred)
}

// Logout terminates the credential's server-side session.
func (c *Client) Logout(ctx context.Context, cred *token.Credential) error {
	return c.lifecycle.Logout(ctx, cred)
}

// HasAuthority reports whether verified claims grant the authority
// ("role" for realm roles, "resource:role" for client roles).
func (c *Client) HasAuthority(claims validate.VerifiedClaims, authority string) bool {
	return c.checker.HasAuthority(claims, authority)
}

// Authorities enumerates every authority the verified claims grant.
func (c *Client) Authorities(claims validate.VerifiedClaims) []authz.Authority {
	return c.checker.Authorities(claims)
}
