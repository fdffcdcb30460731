package flow

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	kiterrors "github.com/kbukum/oauthkit/errors"
	"github.com/kbukum/oauthkit/token"
	"github.com/kbukum/oauthkit/transport"
)

// Grant type identifiers as they appear on the wire.
const (
	GrantAuthorizationCode = "authorization_code"
	GrantPassword          = "password"
	GrantClientCredentials = "client_credentials"
	GrantRefreshToken      = "refresh_token"
)

// Endpoint describes a token endpoint and the client authentication to use
// against it. The lifecycle package reuses it for the refresh grant, which
// goes to the same endpoint as the three acquisition grants.
type Endpoint struct {
	URL          string
	ClientID     string
	ClientSecret string
	AuthMethod   AuthMethod
}

// TokenResponse is the parsed body of a successful token-endpoint response
// (RFC6749 §5.1).
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	IDToken      string `json:"id_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
	Scope        string `json:"scope"`
}

// errorResponse is the RFC6749 §5.2 error body.
type errorResponse struct {
	Error       string `json:"error"`
	Description string `json:"error_description"`
}

// Apply attaches the endpoint's client authentication to a request:
// basic credentials for client_secret_basic (form-encoded per RFC6749
// §2.3.1), form parameters for client_secret_post. The lifecycle package
// uses it on revocation and end-session requests too.
func (ep Endpoint) Apply(req *transport.Request) {
	switch ep.AuthMethod {
	case AuthMethodPost:
		req.Form.Set("client_id", ep.ClientID)
		if ep.ClientSecret != "" {
			req.Form.Set("client_secret", ep.ClientSecret)
		}
	default:
		req.Auth = transport.BasicAuth(url.QueryEscape(ep.ClientID), url.QueryEscape(ep.ClientSecret))
	}
}

// PostToken submits a form to a token endpoint and parses the response.
//
// Outcomes map onto the error taxonomy: a transport failure passes through
// unchanged, an OAuth2 error body becomes *errors.Error with CodeOAuth, and
// anything unparsable or missing access_token becomes CodeProtocol.
func PostToken(ctx context.Context, client *transport.Client, ep Endpoint, form url.Values) (*TokenResponse, error) {
	req := transport.Request{
		Method: http.MethodPost,
		URL:    ep.URL,
		Form:   form,
	}
	ep.Apply(&req)

	resp, err := client.Do(ctx, req)
	if err != nil {
		return nil, err
	}

	if !resp.IsSuccess() {
		return nil, ErrorFromResponse(resp)
	}

	var tr TokenResponse
	if err := json.Unmarshal(resp.Body, &tr); err != nil {
		return nil, kiterrors.Protocol("token endpoint returned unparsable JSON", err)
	}
	if tr.AccessToken == "" {
		return nil, kiterrors.Protocol("token response missing access_token", nil)
	}
	return &tr, nil
}

// ErrorFromResponse maps a failed endpoint response onto the error
// taxonomy: CodeOAuth when the body carries an RFC6749 §5.2 error object,
// CodeProtocol otherwise.
func ErrorFromResponse(resp *transport.Response) error {
	var er errorResponse
	if err := json.Unmarshal(resp.Body, &er); err != nil || er.Error == "" {
		return kiterrors.Protocol(
			fmt.Sprintf("endpoint returned status %d without an OAuth2 error body", resp.StatusCode), nil)
	}
	return kiterrors.OAuth(er.Error, er.Description, resp.StatusCode)
}

// ExpiresAt resolves the response's expiry hint to an absolute time:
// expires_in when present, otherwise the JWT exp claim of the access token,
// otherwise the zero time (Credential then never expires locally).
func (r *TokenResponse) ExpiresAt(now time.Time) time.Time {
	if r.ExpiresIn > 0 {
		return now.Add(time.Duration(r.ExpiresIn) * time.Second)
	}
	if claims, err := token.DecodeUnverified(r.AccessToken); err == nil {
		if exp, ok := claims.Expiry(); ok {
			return exp
		}
	}
	return time.Time{}
}

// GrantedScopes parses the scope field, falling back to the requested scopes
// when the server omitted it (permitted by RFC6749 when granted == requested).
func (r *TokenResponse) GrantedScopes(requested []string) []string {
	if r.Scope == "" {
		return append([]string(nil), requested...)
	}
	return strings.FieldsFunc(r.Scope, func(c rune) bool { return c == ' ' || c == ',' })
}

// Credential builds the token model instance for this response.
func (r *TokenResponse) Credential(grantType string, requestedScopes []string) *token.Credential {
	return token.Issue(grantType, token.Issuance{
		AccessToken:  r.AccessToken,
		RefreshToken: r.RefreshToken,
		IDToken:      r.IDToken,
		TokenType:    token.ParseType(r.TokenType),
		ExpiresAt:    r.ExpiresAt(time.Now()),
		Scopes:       r.GrantedScopes(requestedScopes),
	})
}
