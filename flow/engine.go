package flow

import (
	"context"
	"net/url"
	"strings"

	kiterrors "github.com/kbukum/oauthkit/errors"
	"github.com/kbukum/oauthkit/logger"
	"github.com/kbukum/oauthkit/token"
	"github.com/kbukum/oauthkit/transport"
)

// Engine performs grant exchanges for one configured client.
type Engine struct {
	cfg    Config
	client *transport.Client
	log    *logger.Logger
}

// New creates an engine from configuration.
func New(cfg Config) (*Engine, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	client, err := transport.New(cfg.Transport)
	if err != nil {
		return nil, err
	}

	log := cfg.Logger
	if log == nil {
		log = logger.Nop()
	}

	return &Engine{
		cfg:    cfg,
		client: client,
		log:    log.WithComponent("flow"),
	}, nil
}

// Transport returns the engine's transport client so sibling components
// (lifecycle, introspection) can share its pool and TLS settings.
func (e *Engine) Transport() *transport.Client { return e.client }

// Endpoint returns the engine's token-endpoint description.
func (e *Engine) Endpoint() Endpoint { return e.cfg.endpoint() }

// ExchangeCode trades an authorization code for a Credential
// (RFC6749 §4.1.3). redirectURI may be empty when Config.RedirectURI is set;
// it must match the URI used in the front-channel request.
func (e *Engine) ExchangeCode(ctx context.Context, code, redirectURI string) (*token.Credential, error) {
	if redirectURI == "" {
		redirectURI = e.cfg.RedirectURI
	}
	if code == "" {
		return nil, kiterrors.InvalidRequest("flow: authorization code is required")
	}
	if redirectURI == "" {
		return nil, kiterrors.InvalidRequest("flow: redirect URI is required for the authorization-code grant")
	}

	form := e.baseForm(GrantAuthorizationCode)
	form.Set("code", code)
	form.Set("redirect_uri", redirectURI)

	return e.exchange(ctx, GrantAuthorizationCode, form, nil)
}

// ExchangePassword trades resource-owner credentials for a Credential
// (RFC6749 §4.3.2). The grant must have been enabled with
// Config.AllowPasswordGrant; it is refused otherwise.
func (e *Engine) ExchangePassword(ctx context.Context, username, password string) (*token.Credential, error) {
	if !e.cfg.AllowPasswordGrant {
		return nil, kiterrors.InvalidRequest("flow: password grant is disabled; set allow_password_grant to opt in")
	}
	if username == "" || password == "" {
		return nil, kiterrors.InvalidRequest("flow: username and password are required")
	}

	form := e.baseForm(GrantPassword)
	form.Set("username", username)
	form.Set("password", password)
	e.addScope(form)

	return e.exchange(ctx, GrantPassword, form, e.cfg.Scopes)
}

// ExchangeClientCredentials obtains a Credential scoped to the client's own
// identity (RFC6749 §4.4.2). No resource owner is involved; the response
// usually carries no refresh token.
func (e *Engine) ExchangeClientCredentials(ctx context.Context) (*token.Credential, error) {
	form := e.baseForm(GrantClientCredentials)
	e.addScope(form)

	return e.exchange(ctx, GrantClientCredentials, form, e.cfg.Scopes)
}

func (e *Engine) exchange(ctx context.Context, grantType string, form url.Values, requestedScopes []string) (*token.Credential, error) {
	resp, err := PostToken(ctx, e.client, e.cfg.endpoint(), form)
	if err != nil {
		e.log.WithError(err).Warn("token exchange failed",
			logger.Fields(logger.FieldGrantType, grantType, logger.FieldEndpoint, e.cfg.TokenURL))
		return nil, err
	}

	cred := resp.Credential(grantType, requestedScopes)
	e.log.Debug("token exchanged",
		logger.Fields(logger.FieldGrantType, grantType, "expires_at", cred.ExpiresAt()))
	return cred, nil
}

func (e *Engine) baseForm(grantType string) url.Values {
	form := url.Values{}
	form.Set("grant_type", grantType)
	for k, v := range e.cfg.ExtraParams {
		form.Set(k, v)
	}
	return form
}

func (e *Engine) addScope(form url.Values) {
	if len(e.cfg.Scopes) > 0 {
		form.Set("scope", strings.Join(e.cfg.Scopes, " "))
	}
}
