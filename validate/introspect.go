package validate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	kiterrors "github.com/kbukum/oauthkit/errors"
	"github.com/kbukum/oauthkit/logger"
	"github.com/kbukum/oauthkit/token"
	"github.com/kbukum/oauthkit/transport"
	"github.com/kbukum/oauthkit/validation"
)

// IntrospectConfig configures remote validation against an RFC7662
// introspection endpoint (or a legacy tokeninfo endpoint).
type IntrospectConfig struct {
	// URL is the introspection endpoint (required).
	URL string `yaml:"url" mapstructure:"url" validate:"required,url"`

	// ClientID authenticates the introspection call (required).
	ClientID string `yaml:"client_id" mapstructure:"client_id" validate:"required"`

	// ClientSecret is the client secret for the introspection call.
	ClientSecret string `yaml:"client_secret" mapstructure:"client_secret"`

	// TokenTypeHint is sent as token_type_hint (default: "access_token").
	TokenTypeHint string `yaml:"token_type_hint" mapstructure:"token_type_hint"`

	// Transport configures the HTTP round trips.
	Transport transport.Config `yaml:"transport" mapstructure:"transport" validate:"-"`

	// Logger receives debug/warn events. Nil means no logging.
	Logger *logger.Logger `yaml:"-" mapstructure:"-" validate:"-"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *IntrospectConfig) ApplyDefaults() {
	if c.TokenTypeHint == "" {
		c.TokenTypeHint = "access_token"
	}
	c.Transport.ApplyDefaults()
}

// Validate checks required fields.
func (c *IntrospectConfig) Validate() error {
	if err := validation.Validate(c); err != nil {
		return err
	}
	return c.Transport.Validate()
}

// Introspector validates tokens by asking the authorization server. Every
// check is a network round trip, so the answer always reflects current
// server-side state, including revocation and logout.
type Introspector struct {
	cfg    IntrospectConfig
	client *transport.Client
	log    *logger.Logger
}

// NewIntrospector creates an introspection validator.
func NewIntrospector(cfg IntrospectConfig) (*Introspector, error) {
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

	return &Introspector{
		cfg:    cfg,
		client: client,
		log:    log.WithComponent("introspect"),
	}, nil
}

// ValidateToken posts the token to the introspection endpoint and maps the
// response: active true is StatusValid with the echoed claims, active false
// is StatusInvalid. A 400 or 404 counts as a verdict on the token, any other
// failure is StatusError because nothing was learned about the token itself.
func (i *Introspector) ValidateToken(ctx context.Context, raw string) Outcome {
	form := url.Values{}
	form.Set("token", raw)
	form.Set("token_type_hint", i.cfg.TokenTypeHint)

	resp, err := i.client.Do(ctx, transport.Request{
		Method: http.MethodPost,
		URL:    i.cfg.URL,
		Form:   form,
		Auth:   transport.BasicAuth(i.cfg.ClientID, i.cfg.ClientSecret),
	})
	if err != nil {
		i.log.Warn("introspection request failed", logger.Fields(
			logger.FieldEndpoint, i.cfg.URL,
			logger.FieldError, err.Error(),
		))
		return Failure(err)
	}

	switch {
	case resp.IsSuccess():
		return i.parseBody(resp.Body)
	case resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusNotFound:
		// Keycloak's tokeninfo-style endpoints reject inactive tokens with
		// an error status instead of active:false.
		return Invalid("rejected")
	default:
		return Failure(kiterrors.Protocol(
			fmt.Sprintf("introspection endpoint returned status %d", resp.StatusCode), nil))
	}
}

// ValidateCredential introspects a Credential's current access token.
func (i *Introspector) ValidateCredential(ctx context.Context, cred *token.Credential) Outcome {
	return i.ValidateToken(ctx, cred.AccessToken())
}

func (i *Introspector) parseBody(body []byte) Outcome {
	var claims map[string]any
	if err := json.Unmarshal(body, &claims); err != nil {
		return Failure(kiterrors.Protocol("introspection endpoint returned unparsable JSON", err))
	}

	active, present := claims["active"]
	if !present {
		// Legacy tokeninfo endpoints return the claim set bare; reaching a
		// 2xx at all means the token is good.
		return Valid(VerifiedClaims(claims))
	}
	if isActive, _ := active.(bool); !isActive {
		return Invalid("inactive")
	}

	delete(claims, "active")
	return Valid(VerifiedClaims(claims))
}
