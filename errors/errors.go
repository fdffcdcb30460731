// Package errors provides the structured error taxonomy shared by all
// oauthkit packages. Every failure is returned as an explicit *Error value
// with a machine-readable Code, so callers can branch on transport failures,
// server rejections, and protocol mismatches without string matching.
//
// The kit never retries internally. Retry policy belongs to the caller —
// the Retryable flag and IsRetryable helper exist to support that policy,
// not to enforce one.
package errors

import (
	"errors"
	"fmt"
)

// Error is the unified oauthkit error type.
type Error struct {
	// Code classifies the error.
	Code Code `json:"code"`
	// OAuthCode is the OAuth2 "error" field from the server, when present
	// (e.g. "invalid_grant", "invalid_client").
	OAuthCode string `json:"oauth_code,omitempty"`
	// Description is a human-readable message. For server rejections this
	// carries the "error_description" field.
	Description string `json:"description"`
	// HTTPStatus is the HTTP status of the failing response (0 when no
	// response was received).
	HTTPStatus int `json:"-"`
	// Retryable indicates whether the caller may safely retry.
	Retryable bool `json:"retryable"`
	// Cause is the underlying error, if any.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *Error) Error() string {
	switch {
	case e.OAuthCode != "" && e.Description != "":
		return fmt.Sprintf("%s: %s: %s", e.Code, e.OAuthCode, e.Description)
	case e.OAuthCode != "":
		return fmt.Sprintf("%s: %s", e.Code, e.OAuthCode)
	case e.Cause != nil && e.Description == "":
		return fmt.Sprintf("%s: %v", e.Code, e.Cause)
	default:
		return fmt.Sprintf("%s: %s", e.Code, e.Description)
	}
}

// Unwrap returns the underlying cause of the error.
func (e *Error) Unwrap() error { return e.Cause }

// --- Constructors ---

// Transport wraps a network-level failure (DNS, connect, TLS).
func Transport(cause error) *Error {
	return &Error{Code: CodeTransport, Description: "network failure", Retryable: true, Cause: cause}
}

// Timeout wraps a timed-out or cancelled request.
func Timeout(cause error) *Error {
	return &Error{Code: CodeTimeout, Description: "request timed out or was cancelled", Retryable: true, Cause: cause}
}

// Protocol reports a malformed or unexpected server response.
func Protocol(description string, cause error) *Error {
	return &Error{Code: CodeProtocol, Description: description, Cause: cause}
}

// OAuth reports a structured rejection from the authorization server.
func OAuth(oauthCode, description string, httpStatus int) *Error {
	return &Error{Code: CodeOAuth, OAuthCode: oauthCode, Description: description, HTTPStatus: httpStatus}
}

// RefreshDenied reports a refresh grant the server refused. Callers should
// treat this as "re-authenticate from scratch", not as a transient failure.
func RefreshDenied(oauthCode, description string, httpStatus int) *Error {
	return &Error{Code: CodeRefreshDenied, OAuthCode: oauthCode, Description: description, HTTPStatus: httpStatus}
}

// InvalidRequest reports a client-side precondition failure.
func InvalidRequest(description string) *Error {
	return &Error{Code: CodeInvalidRequest, Description: description}
}

// --- Predicates ---

// As extracts an *Error from err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}

// HasCode checks whether err carries the given code.
func HasCode(err error, code Code) bool {
	e, ok := As(err)
	return ok && e.Code == code
}

// IsTransport checks for a network-level failure (including timeouts).
func IsTransport(err error) bool {
	return HasCode(err, CodeTransport) || HasCode(err, CodeTimeout)
}

// IsProtocol checks for a malformed-response failure.
func IsProtocol(err error) bool { return HasCode(err, CodeProtocol) }

// IsOAuth checks for a structured server rejection, including the
// refresh-denied sub-case.
func IsOAuth(err error) bool {
	return HasCode(err, CodeOAuth) || HasCode(err, CodeRefreshDenied)
}

// IsRefreshDenied checks for a refused refresh grant.
func IsRefreshDenied(err error) bool { return HasCode(err, CodeRefreshDenied) }

// IsInvalidRequest checks for a client-side precondition failure.
func IsInvalidRequest(err error) bool { return HasCode(err, CodeInvalidRequest) }

// IsRetryable checks whether the caller may safely retry the operation.
func IsRetryable(err error) bool {
	e, ok := As(err)
	return ok && e.Retryable
}
