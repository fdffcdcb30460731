package oauthkit

import (
	"fmt"

	"github.com/kbukum/oauthkit/authz"
	"github.com/kbukum/oauthkit/config"
	"github.com/kbukum/oauthkit/flow"
	"github.com/kbukum/oauthkit/lifecycle"
	"github.com/kbukum/oauthkit/logger"
	"github.com/kbukum/oauthkit/provider"
	"github.com/kbukum/oauthkit/validate"
)

// Config holds the full client configuration. It composes subpackage
// configs for loading from YAML/env via mapstructure. Sub-configs are
// pointers so unused features are nil and don't force unnecessary
// validation or defaults.
type Config struct {
	// Provider optionally supplies the endpoint layout. Explicitly set
	// URLs in the sub-configs always win over the preset.
	Provider provider.Preset `mapstructure:"-"`

	// ClientID and ClientSecret are applied to every sub-config that
	// needs client credentials.
	ClientID     string `mapstructure:"client_id"`
	ClientSecret string `mapstructure:"client_secret"`

	// Flow configures grant exchanges. Materialized from Provider when
	// nil and a preset is given.
	Flow *flow.Config `mapstructure:"flow"`

	// Validation configures token validity checks (nil disables the
	// Client's Validate methods).
	Validation *validate.Config `mapstructure:"validate"`

	// Lifecycle configures revocation and logout endpoints.
	Lifecycle *lifecycle.Config `mapstructure:"lifecycle"`

	// Authz configures the role-claim layout (Keycloak defaults).
	Authz *authz.Config `mapstructure:"authz"`

	// Logger configures structured logging (nil means no logging).
	Logger *logger.Config `mapstructure:"logger"`
}

// ApplyDefaults materializes sub-configs from the provider preset and the
// top-level client credentials, then applies each sub-config's own
// defaults.
func (c *Config) ApplyDefaults() {
	if c.Flow == nil {
		c.Flow = &flow.Config{}
	}
	if c.Flow.ClientID == "" {
		c.Flow.ClientID = c.ClientID
	}
	if c.Flow.ClientSecret == "" {
		c.Flow.ClientSecret = c.ClientSecret
	}

	p := c.Provider
	if c.Flow.TokenURL == "" {
		c.Flow.TokenURL = p.TokenURL
	}
	if c.Flow.AuthorizationURL == "" {
		c.Flow.AuthorizationURL = p.AuthorizationURL
	}
	if len(c.Flow.Scopes) == 0 {
		c.Flow.Scopes = append([]string(nil), p.DefaultScopes...)
	}
	if c.Flow.AuthMethod == "" && p.AuthMethod != "" {
		c.Flow.AuthMethod = p.AuthMethod
	}

	if c.Lifecycle == nil {
		c.Lifecycle = &lifecycle.Config{}
	}
	if c.Lifecycle.RevocationURL == "" {
		c.Lifecycle.RevocationURL = p.RevocationURL
	}
	if c.Lifecycle.EndSessionURL == "" {
		c.Lifecycle.EndSessionURL = p.EndSessionURL
	}

	if c.Validation != nil && c.Validation.Mode == validate.ModeIntrospection {
		ic := &c.Validation.Introspect
		if ic.URL == "" {
			ic.URL = p.IntrospectionURL
		}
		if ic.ClientID == "" {
			ic.ClientID = c.Flow.ClientID
		}
		if ic.ClientSecret == "" {
			ic.ClientSecret = c.Flow.ClientSecret
		}
	}

	c.Flow.ApplyDefaults()
	c.Lifecycle.ApplyDefaults()
	if c.Authz != nil {
		c.Authz.ApplyDefaults()
	}
	if c.Logger != nil {
		c.Logger.ApplyDefaults()
	}
}

// LoadConfig reads a Config from YAML and OAUTH_-prefixed environment
// variables through the config package. Defaults are not applied; New does
// that.
func LoadConfig(opts ...config.Option) (Config, error) {
	var cfg Config
	if err := config.Load(&cfg, opts...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the materialized configuration. Call ApplyDefaults first;
// New does both.
func (c *Config) Validate() error {
	if c.Flow == nil {
		return fmt.Errorf("oauthkit: flow configuration is required")
	}
	if err := c.Flow.Validate(); err != nil {
		return err
	}
	if c.Lifecycle != nil {
		if err := c.Lifecycle.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Describe returns a human-readable one-liner for startup logs.
func (c *Config) Describe() string {
	if c.Flow == nil || c.Flow.TokenURL == "" {
		return "unconfigured"
	}
	line := fmt.Sprintf("client=%s token=%s", c.Flow.ClientID, c.Flow.TokenURL)
	if c.Validation != nil {
		line += fmt.Sprintf(" validate=%s", c.Validation.Mode)
	}
	if c.Lifecycle != nil && c.Lifecycle.RevocationURL != "" {
		line += " revocation=yes"
	}
	if c.Lifecycle != nil && c.Lifecycle.EndSessionURL != "" {
		line += " logout=yes"
	}
	return line
}
