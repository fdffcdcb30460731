package errors

// Code is a machine-readable error classification.
type Code string

// Transport-level failures (retryable by caller policy).
const (
	// CodeTransport indicates a network-level failure (DNS, connect, TLS).
	CodeTransport Code = "TRANSPORT"
	// CodeTimeout indicates the request timed out or was cancelled.
	CodeTimeout Code = "TIMEOUT"
)

// Protocol and server failures (terminal for the attempted operation).
const (
	// CodeProtocol indicates a malformed or unexpected server response
	// (unparsable JSON, missing required fields). Points at a server or
	// configuration mismatch rather than a credential problem.
	CodeProtocol Code = "PROTOCOL"
	// CodeOAuth indicates a structured OAuth2 rejection from the
	// authorization server (invalid_grant, invalid_client, ...).
	CodeOAuth Code = "OAUTH"
	// CodeRefreshDenied is the refresh-specific sub-case of CodeOAuth.
	// It signals that the session cannot be recovered by refreshing and
	// the caller must re-authenticate from scratch.
	CodeRefreshDenied Code = "REFRESH_DENIED"
)

// Client-side failures.
const (
	// CodeInvalidRequest indicates a request precondition was not met
	// before any network call was made (missing code, disabled grant, ...).
	CodeInvalidRequest Code = "INVALID_REQUEST"
)

// IsRetryableCode reports whether errors with the given code are safe to
// retry at the caller's discretion. Only transport-level failures qualify;
// a structured server rejection never does.
func IsRetryableCode(code Code) bool {
	return code == CodeTransport || code == CodeTimeout
}
