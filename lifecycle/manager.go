package lifecycle

import (
	"context"
	goerrors "errors"
	"net/http"
	"net/url"
	"time"

	kiterrors "github.com/kbukum/oauthkit/errors"
	"github.com/kbukum/oauthkit/flow"
	"github.com/kbukum/oauthkit/logger"
	"github.com/kbukum/oauthkit/token"
	"github.com/kbukum/oauthkit/transport"
)

// TokenKind names which token of a credential an operation targets, using
// the RFC7009 token_type_hint vocabulary.
type TokenKind string

const (
	KindAccessToken  TokenKind = "access_token"
	KindRefreshToken TokenKind = "refresh_token"
)

// Manager performs refresh, revocation, and logout for issued credentials.
// It shares the flow engine's transport and client authentication; the
// refresh grant goes to the same token endpoint as the acquisition grants.
type Manager struct {
	cfg    Config
	client *transport.Client
	ep     flow.Endpoint
	log    *logger.Logger
}

// New creates a lifecycle manager on top of a flow engine.
func New(flows *flow.Engine, cfg Config) (*Manager, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log := cfg.Logger
	if log == nil {
		log = logger.Nop()
	}

	return &Manager{
		cfg:    cfg,
		client: flows.Transport(),
		ep:     flows.Endpoint(),
		log:    log.WithComponent("lifecycle"),
	}, nil
}

// Refresh exchanges the credential's refresh token for fresh token state and
// applies it in place. The credential is mutated only on success; on any
// failure, including context cancellation mid-request, it is left exactly as
// it was.
//
// A server denial (invalid_grant: the refresh token is expired, revoked, or
// already rotated away) is reported as a refresh-denied error so callers can
// distinguish "re-authenticate" from "try again later".
func (m *Manager) Refresh(ctx context.Context, cred *token.Credential) error {
	refreshToken := cred.RefreshToken()
	if refreshToken == "" {
		return kiterrors.InvalidRequest("credential has no refresh token")
	}

	form := url.Values{}
	form.Set("grant_type", flow.GrantRefreshToken)
	form.Set("refresh_token", refreshToken)

	resp, err := flow.PostToken(ctx, m.client, m.ep, form)
	if err != nil {
		err = asRefreshDenial(err)
		m.log.Warn("refresh failed", logger.Fields(
			logger.FieldOperation, "refresh",
			logger.FieldError, err.Error(),
		))
		return err
	}

	cred.ApplyRefresh(token.Refreshed{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		TokenType:    token.ParseType(resp.TokenType),
		ExpiresAt:    resp.ExpiresAt(time.Now()),
		Scopes:       resp.GrantedScopes(nil),
	})

	m.log.Debug("credential refreshed", logger.Fields(
		logger.FieldOperation, "refresh",
	))
	return nil
}

func asRefreshDenial(err error) error {
	kerr, ok := kiterrors.As(err)
	if ok && kerr.Code == kiterrors.CodeOAuth && kerr.OAuthCode == "invalid_grant" {
		return kiterrors.RefreshDenied(kerr.OAuthCode, kerr.Description, kerr.HTTPStatus)
	}
	return err
}

// RevokeToken revokes a single token at the revocation endpoint. Any 2xx
// answer is success; per RFC7009 servers answer 200 for already-revoked and
// unknown tokens alike, which makes the operation idempotent. Revoking one
// kind never touches the other.
func (m *Manager) RevokeToken(ctx context.Context, raw string, kind TokenKind) error {
	if m.cfg.RevocationURL == "" {
		return kiterrors.InvalidRequest("revocation endpoint is not configured")
	}
	if raw == "" {
		return nil
	}

	form := url.Values{}
	form.Set("token", raw)
	form.Set("token_type_hint", string(kind))

	req := transport.Request{
		Method: http.MethodPost,
		URL:    m.cfg.RevocationURL,
		Form:   form,
	}
	m.ep.Apply(&req)

	resp, err := m.client.Do(ctx, req)
	if err != nil {
		return err
	}
	if !resp.IsSuccess() {
		err := flow.ErrorFromResponse(resp)
		m.log.Warn("revocation failed", logger.Fields(
			logger.FieldOperation, "revoke",
			logger.FieldTokenKind, string(kind),
			logger.FieldStatus, resp.StatusCode,
		))
		return err
	}

	m.log.Debug("token revoked", logger.Fields(
		logger.FieldOperation, "revoke",
		logger.FieldTokenKind, string(kind),
	))
	return nil
}

// Revoke revokes both of a credential's tokens, refresh token first. Each
// kind is attempted independently; failures are joined so one kind failing
// never skips the other.
func (m *Manager) Revoke(ctx context.Context, cred *token.Credential) error {
	snap := cred.Snapshot()
	return goerrors.Join(
		m.RevokeToken(ctx, snap.RefreshToken, KindRefreshToken),
		m.RevokeToken(ctx, snap.AccessToken, KindAccessToken),
	)
}

// Logout terminates the credential's server-side session. With an
// end-session endpoint configured it posts the OIDC back-channel logout
// form (id_token_hint plus refresh token, as Keycloak expects); without
// one it degrades to revoking both tokens.
func (m *Manager) Logout(ctx context.Context, cred *token.Credential) error {
	if m.cfg.EndSessionURL == "" {
		return m.Revoke(ctx, cred)
	}

	snap := cred.Snapshot()

	form := url.Values{}
	if snap.IDToken != "" {
		form.Set("id_token_hint", snap.IDToken)
	}
	if snap.RefreshToken != "" {
		form.Set("refresh_token", snap.RefreshToken)
	}

	req := transport.Request{
		Method: http.MethodPost,
		URL:    m.cfg.EndSessionURL,
		Form:   form,
	}
	m.ep.Apply(&req)

	resp, err := m.client.Do(ctx, req)
	if err != nil {
		return err
	}
	// Some providers answer the logout post with a redirect to the
	// post-logout page.
	if !resp.IsSuccess() && resp.StatusCode != http.StatusFound {
		return flow.ErrorFromResponse(resp)
	}

	m.log.Debug("session ended", logger.Fields(
		logger.FieldOperation, "logout",
	))
	return nil
}
