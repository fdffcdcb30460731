package flow

import (
	"github.com/kbukum/oauthkit/logger"
	"github.com/kbukum/oauthkit/transport"
	"github.com/kbukum/oauthkit/validation"
)

// AuthMethod selects how the client authenticates to the token endpoint.
type AuthMethod string

const (
	// AuthMethodBasic sends client credentials in an Authorization header
	// (client_secret_basic, the RFC6749 default).
	AuthMethodBasic AuthMethod = "client_secret_basic"
	// AuthMethodPost sends client credentials as form body parameters
	// (client_secret_post, required by some providers).
	AuthMethodPost AuthMethod = "client_secret_post"
)

// Config configures the grant exchange engine.
type Config struct {
	// TokenURL is the authorization server's token endpoint (required).
	TokenURL string `yaml:"token_url" mapstructure:"token_url" validate:"required,url"`

	// AuthorizationURL is the authorization endpoint, used only to compose
	// authorization-code flow front-channel URLs via AuthorizeURL.
	AuthorizationURL string `yaml:"authorization_url" mapstructure:"authorization_url" validate:"omitempty,url"`

	// ClientID is the OAuth2 client identifier (required).
	ClientID string `yaml:"client_id" mapstructure:"client_id" validate:"required"`

	// ClientSecret is the client secret (empty for public clients).
	ClientSecret string `yaml:"client_secret" mapstructure:"client_secret"`

	// RedirectURI is the default redirect URI for the authorization-code
	// flow. ExchangeCode may override it per call.
	RedirectURI string `yaml:"redirect_uri" mapstructure:"redirect_uri"`

	// Scopes are requested on password and client-credentials exchanges and
	// in authorization URLs. When the server omits the granted scope in its
	// response, these are assumed granted.
	Scopes []string `yaml:"scopes" mapstructure:"scopes"`

	// AllowPasswordGrant opts in to the deprecated resource-owner password
	// grant. ExchangePassword fails unless this is set.
	AllowPasswordGrant bool `yaml:"allow_password_grant" mapstructure:"allow_password_grant"`

	// AuthMethod selects client authentication (default: client_secret_basic).
	AuthMethod AuthMethod `yaml:"auth_method" mapstructure:"auth_method"`

	// ExtraParams are provider-specific parameters added to every token
	// request (e.g. Azure's "resource").
	ExtraParams map[string]string `yaml:"extra_params" mapstructure:"extra_params"`

	// Transport configures the HTTP round trips.
	Transport transport.Config `yaml:"transport" mapstructure:"transport" validate:"-"`

	// Logger receives debug/warn events. Nil means no logging.
	Logger *logger.Logger `yaml:"-" mapstructure:"-" validate:"-"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.AuthMethod == "" {
		c.AuthMethod = AuthMethodBasic
	}
	c.Transport.ApplyDefaults()
}

// Validate checks required fields. Field shapes come from the struct tags;
// the typed AuthMethod constants are checked through the fluent validator.
func (c *Config) Validate() error {
	if err := validation.Validate(c); err != nil {
		return err
	}
	v := validation.New().
		OneOf("auth_method", string(c.AuthMethod), string(AuthMethodBasic), string(AuthMethodPost))
	if err := v.Err(); err != nil {
		return err
	}
	return c.Transport.Validate()
}

// endpoint derives the token-endpoint description used by PostToken.
func (c *Config) endpoint() Endpoint {
	return Endpoint{
		URL:          c.TokenURL,
		ClientID:     c.ClientID,
		ClientSecret: c.ClientSecret,
		AuthMethod:   c.AuthMethod,
	}
}
