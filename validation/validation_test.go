package validation

import (
	"strings"
	"testing"

	kiterrors "github.com/kbukum/oauthkit/errors"
)

type clientSettings struct {
	ClientID string `mapstructure:"client_id" validate:"required"`
	TokenURL string `mapstructure:"token_url" validate:"required,url"`
	Mode     string `mapstructure:"mode" validate:"omitempty,oneof=local introspection"`
}

func TestValidateStructPasses(t *testing.T) {
	err := Validate(clientSettings{
		ClientID: "relay",
		TokenURL: "https://sso.example.com/token",
		Mode:     "local",
	})
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestValidateStructReportsAllFailures(t *testing.T) {
	err := Validate(clientSettings{Mode: "guess"})
	if !kiterrors.IsInvalidRequest(err) {
		t.Fatalf("err = %v, want invalid-request", err)
	}
	msg := err.Error()
	for _, want := range []string{"client_id is required", "token_url is required", "mode must be one of"} {
		if !strings.Contains(msg, want) {
			t.Errorf("message %q missing %q", msg, want)
		}
	}
}

func TestValidatorCollectsErrors(t *testing.T) {
	v := New().
		Required("client_id", "").
		URL("token_url", "not-a-url").
		OneOf("auth_method", "client_secret_jwt", "client_secret_basic", "client_secret_post").
		Min("timeout", 0, 1)

	if !v.HasErrors() {
		t.Fatal("expected collected errors")
	}
	if got := len(v.Errors()); got != 4 {
		t.Fatalf("errors = %d, want 4", got)
	}
	if err := v.Err(); !kiterrors.IsInvalidRequest(err) {
		t.Fatalf("Err() = %v, want invalid-request", err)
	}
}

func TestValidatorPassesCleanInput(t *testing.T) {
	v := New().
		Required("client_id", "relay").
		URL("token_url", "https://sso.example.com/token").
		OneOf("auth_method", "client_secret_basic", "client_secret_basic", "client_secret_post").
		Custom(true, "scopes", "unused")

	if err := v.Err(); err != nil {
		t.Fatalf("Err() = %v, want nil", err)
	}
}

func TestURLSkipsEmptyValue(t *testing.T) {
	if New().URL("redirect_uri", "").HasErrors() {
		t.Error("empty optional URL flagged")
	}
}

func TestToSnakeCase(t *testing.T) {
	tests := map[string]string{
		"ClientID":  "client_i_d",
		"TokenURL":  "token_u_r_l",
		"Mode":      "mode",
		"AuthcodeX": "authcode_x",
	}
	for in, want := range tests {
		if got := toSnakeCase(in); got != want {
			t.Errorf("toSnakeCase(%q) = %q, want %q", in, got, want)
		}
	}
}
