// Package http builds outbound HTTP clients for external API calls.
package http

import (
	"net"
	"net/http"
	"time"
)

// NewHTTPClient returns a client with an overall request timeout and a
// transport tuned for calls to a remote API.
//
// http.DefaultClient has no timeout, so outbound calls must never use it.
// The dial and TLS handshake limits are shorter than the overall timeout so
// an unreachable provider fails fast.
func NewHTTPClient(timeout time.Duration) *http.Client {
	t := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:   true,
		MaxIdleConns:        100,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}
	return &http.Client{Timeout: timeout, Transport: t}
}
