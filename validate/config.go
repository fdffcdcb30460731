package validate

import "fmt"

// Mode selects the validation strategy. It is always configured explicitly;
// nothing in this package guesses from the token's shape.
type Mode string

const (
	// ModeLocal validates JWTs offline against key material.
	ModeLocal Mode = "local"
	// ModeIntrospection validates against the server's introspection
	// endpoint.
	ModeIntrospection Mode = "introspection"
)

// Config selects and configures a validation strategy.
type Config struct {
	// Mode picks the strategy (required).
	Mode Mode `yaml:"mode" mapstructure:"mode"`

	// Local configures offline validation; read only when Mode is
	// ModeLocal.
	Local LocalConfig `yaml:"local" mapstructure:"local"`

	// Introspect configures remote validation; read only when Mode is
	// ModeIntrospection.
	Introspect IntrospectConfig `yaml:"introspect" mapstructure:"introspect"`
}

// New builds the Validator the configuration selects.
func New(cfg Config) (Validator, error) {
	switch cfg.Mode {
	case ModeLocal:
		return NewLocal(cfg.Local)
	case ModeIntrospection:
		return NewIntrospector(cfg.Introspect)
	case "":
		return nil, fmt.Errorf("validate: mode is required")
	default:
		return nil, fmt.Errorf("validate: unsupported mode %q", cfg.Mode)
	}
}
