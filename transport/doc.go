// Package transport is the HTTP collaborator consumed by the flow, lifecycle,
// and validate packages. It performs a single request/response round trip with
// caller-supplied cancellation and classifies network-level failures into the
// oauthkit error taxonomy.
//
// The client deliberately does NOT classify HTTP status codes: OAuth2
// endpoints return meaningful error bodies on 4xx responses, and interpreting
// them is the calling package's job. Only failures where no response was
// received at all surface as errors here.
//
// Callers needing connection pooling tweaks, proxies, or instrumented
// round-trippers supply their own *http.Client via Config.HTTPClient.
package transport
