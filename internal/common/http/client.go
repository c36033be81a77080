// internal/common/http/client.go
package http

import (
	"net/http"
	"time"
)

// Client is the outbound HTTP client shared by provider SDKs.
type Client struct {
	httpClient *http.Client
}

// NewClient returns a client whose requests time out after timeout and carry
// userAgent when it is set.
func NewClient(timeout time.Duration, userAgent string) *Client {
	var transport http.RoundTripper = http.DefaultTransport
	if userAgent != "" {
		transport = &userAgentTransport{base: transport, userAgent: userAgent}
	}
	return &Client{
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
	}
}

func (c *Client) Do(req *http.Request) (*http.Response, error) {
	return c.httpClient.Do(req)
}

// Standard exposes the underlying client for SDKs that take an *http.Client.
func (c *Client) Standard() *http.Client {
	return c.httpClient
}

type userAgentTransport struct {
	base      http.RoundTripper
	userAgent string
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") == "" {
		req = req.Clone(req.Context())
		req.Header.Set("User-Agent", t.userAgent)
	}
	return t.base.RoundTrip(req)
}
