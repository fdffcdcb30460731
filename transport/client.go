package transport

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"

	kiterrors "github.com/kbukum/oauthkit/errors"
)

// Client performs HTTP round trips against authorization-server endpoints.
type Client struct {
	httpClient *http.Client
	config     Config
}

// New creates a new transport client with the given configuration.
func New(cfg Config) (*Client, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		tr := http.DefaultTransport.(*http.Transport).Clone()
		if cfg.TLS != nil {
			tlsCfg, err := cfg.TLS.Build()
			if err != nil {
				return nil, err
			}
			if tlsCfg != nil {
				tr.TLSClientConfig = tlsCfg
			}
		}
		httpClient = &http.Client{
			Transport: tr,
			Timeout:   cfg.Timeout,
		}
	}

	return &Client{httpClient: httpClient, config: cfg}, nil
}

// Request describes an outbound request to an authorization-server endpoint.
type Request struct {
	// Method is the HTTP method.
	Method string
	// URL is the absolute endpoint URL.
	URL string
	// Headers are request-specific headers (merged over client defaults).
	Headers map[string]string
	// Form is the application/x-www-form-urlencoded request body.
	Form url.Values
	// Auth is the endpoint authentication to apply, if any.
	Auth *AuthConfig
}

// Response is the result of a completed round trip. A Response is returned
// for every HTTP status; inspect StatusCode to interpret it.
type Response struct {
	// StatusCode is the HTTP status code.
	StatusCode int
	// ContentType is the response Content-Type header.
	ContentType string
	// Body is the raw response body.
	Body []byte
}

// IsSuccess returns true if the status code is 2xx.
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Do executes the request. It returns an error only when no response was
// received: *errors.Error with CodeTimeout when the context was cancelled,
// its deadline passed, or the client timeout fired; CodeTransport for any
// other network failure.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	httpReq, err := c.buildRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if ctx.Err() != nil || isTimeout(err) {
			return nil, kiterrors.Timeout(err)
		}
		return nil, kiterrors.Transport(err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.config.MaxResponseBytes))
	if err != nil {
		return nil, kiterrors.Transport(err)
	}

	return &Response{
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        body,
	}, nil
}

// isTimeout catches deadlines enforced below the context layer, such as the
// http.Client's own Timeout, which surface without a context error.
func isTimeout(err error) bool {
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func (c *Client) buildRequest(ctx context.Context, req Request) (*http.Request, error) {
	var body io.Reader
	if req.Form != nil {
		body = strings.NewReader(req.Form.Encode())
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, body)
	if err != nil {
		return nil, kiterrors.InvalidRequest("create request: " + err.Error())
	}

	for k, v := range c.config.Headers {
		httpReq.Header.Set(k, v)
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}

	if req.Form != nil && httpReq.Header.Get("Content-Type") == "" {
		httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if httpReq.Header.Get("Accept") == "" {
		httpReq.Header.Set("Accept", "application/json")
	}

	req.Auth.apply(httpReq)

	return httpReq, nil
}
