// Copyright (c) 2025 Authly
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package httperrors provides user-friendly error handling for HTTP requests.
// It classifies common transport failures (timeout, DNS, connection refused,
// TLS) and prints actionable guidance instead of a raw Go error string.
package httperrors

import (
	"errors"
	"fmt"
	"net"
	"strings"
	"syscall"

	"github.com/pterm/pterm"
)

// FormatNetworkError converts technical HTTP/network errors into user-friendly
// messages, prints them, and returns a wrapped error for logging.
func FormatNetworkError(err error, context string) error {
	if err == nil {
		return nil
	}
	displayErrorMessage(err, context)
	return fmt.Errorf("network error: %w", err)
}

// displayErrorMessage shows a formatted error message based on error type.
func displayErrorMessage(err error, context string) {
	var title string
	var hints []string

	switch {
	case IsTimeoutError(err):
		title = "Request timed out"
		hints = []string{
			"Check your internet connection",
			"The Authly API may be slow or unreachable right now",
			"Try again in a few moments",
		}
	case IsDNSError(err):
		title = "Could not resolve the API host"
		hints = []string{
			"Check the configured API address (authly status shows it)",
			"Check your DNS settings or VPN",
		}
	case IsConnectionRefusedError(err):
		title = "Connection refused"
		hints = []string{
			"Is the Authly API running? (default: http://localhost:3000)",
			"Set AUTHLY_API_URL if the API listens elsewhere",
		}
	case IsTLSError(err):
		title = "Secure connection failed"
		hints = []string{
			"The API's TLS certificate could not be verified",
			"Check the configured API address for typos",
		}
	default:
		title = "Network error"
		hints = []string{"Check your connection and try again"}
	}

	if context != "" {
		title = context + ": " + title
	}
	pterm.Error.Println(title)
	for _, h := range hints {
		pterm.Println("   • " + h)
	}
}

// IsTimeoutError checks if the error is a timeout error.
func IsTimeoutError(err error) bool {
	if err == nil {
		return false
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "deadline exceeded")
}

// IsDNSError checks if the error is a DNS resolution error.
func IsDNSError(err error) bool {
	if err == nil {
		return false
	}
	var dnsErr *net.DNSError
	return errors.As(err, &dnsErr)
}

// IsConnectionRefusedError checks if the error is a connection refused error.
func IsConnectionRefusedError(err error) bool {
	if err == nil {
		return false
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return errors.Is(opErr.Err, syscall.ECONNREFUSED)
	}
	return strings.Contains(strings.ToLower(err.Error()), "connection refused")
}

// IsTLSError checks if the error is a TLS error.
func IsTLSError(err error) bool {
	if err == nil {
		return false
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "tls") ||
		strings.Contains(errStr, "certificate") ||
		strings.Contains(errStr, "handshake")
}

// IsNetworkError reports whether err looks like a transport-level failure
// rather than an API response. Commands use this to fall back to cached
// session data when offline.
func IsNetworkError(err error) bool {
	if err == nil {
		return false
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}
	return IsTimeoutError(err) || IsDNSError(err) || IsConnectionRefusedError(err)
}
