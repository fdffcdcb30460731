// Package validation validates configuration and request inputs.
//
// It supports struct tag validation (via the validator library) and
// programmatic validation with error collection. Failures surface as
// invalid-request errors from the oauthkit errors package.
//
// # Struct Tag Validation
//
//	type exchangeRequest struct {
//	    Code        string `validate:"required"`
//	    RedirectURI string `validate:"required,url"`
//	}
//	err := validation.Validate(req)
//
// # Programmatic Validation
//
//	v := validation.New()
//	v.Required("client_id", cfg.ClientID)
//	v.URL("token_url", cfg.TokenURL)
//	err := v.Err()
package validation
