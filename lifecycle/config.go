package lifecycle

import (
	"github.com/kbukum/oauthkit/logger"
	"github.com/kbukum/oauthkit/validation"
)

// Config configures credential lifecycle operations. The token endpoint and
// client authentication come from the flow engine the Manager is built
// around; only the additional endpoints live here.
type Config struct {
	// RevocationURL is the RFC7009 revocation endpoint. Empty disables
	// Revoke.
	RevocationURL string `yaml:"revocation_url" mapstructure:"revocation_url" validate:"omitempty,url"`

	// EndSessionURL is the OIDC end-session (logout) endpoint. When empty,
	// Logout falls back to revoking both tokens.
	EndSessionURL string `yaml:"end_session_url" mapstructure:"end_session_url" validate:"omitempty,url"`

	// Logger receives debug/warn events. Nil means no logging.
	Logger *logger.Logger `yaml:"-" mapstructure:"-" validate:"-"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {}

// Validate checks field shapes. Both endpoints are optional.
func (c *Config) Validate() error {
	return validation.Validate(c)
}
