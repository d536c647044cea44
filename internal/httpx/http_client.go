// Package httpx holds the shared HTTP client used for all outbound calls
// (Monday.com API, OpenAI-compatible chat completions).
package httpx

import (
	"net/http"
	"time"
)

const defaultExternalHTTPTimeout = 30 * time.Second

var externalHTTPClient = &http.Client{
	Timeout: defaultExternalHTTPTimeout,
}

// ConfigureExternalHTTPClient applies the configured timeout to the shared
// client. Non-positive seconds keep the default. Returns the applied value
// so startup can log it.
func ConfigureExternalHTTPClient(seconds int) time.Duration {
	timeout := defaultExternalHTTPTimeout
	if seconds > 0 {
		timeout = time.Duration(seconds) * time.Second
	}
	externalHTTPClient.Timeout = timeout
	return timeout
}

// ExternalHTTPClient returns the shared outbound client.
func ExternalHTTPClient() *http.Client {
	return externalHTTPClient
}
