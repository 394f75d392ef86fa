package backend

import (
	"net/http"
	"strings"
	"time"
)

// API endpoint paths on the companion service.
const (
	pathSignUp      = "/signup"
	pathLogin       = "/login"
	pathLogout      = "/logout"
	pathCurrentUser = "/current_user"
)

// HTTP implements API over REST endpoints using plain net/http.
type HTTP struct {
	// baseURL is the base URL for all requests (e.g. "http://localhost:3000")
	baseURL string
	// client is the underlying HTTP client with configured timeout
	client *http.Client
}

// newHTTP creates a new HTTP client with the given base URL.
// It configures a 10-second timeout for all requests; individual calls may
// tighten this further through their context.
func newHTTP(baseURL string) *HTTP {
	return &HTTP{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// New creates the API implementation for the given base URL.
func New(baseURL string) API {
	return newHTTP(baseURL)
}
