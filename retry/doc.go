// Package retry re-runs failed operations with exponential backoff.
//
// No oauthkit component retries on its own; a grant exchange or
// introspection call that fails surfaces its error exactly once. Callers
// who want retries opt in by wrapping the call:
//
//	cred, err := retry.Do(ctx, retry.DefaultConfig(), func() (*token.Credential, error) {
//	    return flows.ExchangeClientCredentials(ctx)
//	})
//
// The default policy retries only errors the errors package marks
// retryable, so OAuth denials and protocol violations fail immediately
// while transport hiccups and timeouts are re-attempted.
package retry
