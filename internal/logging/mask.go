// Copyright (c) 2025 Authly
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package logging provides utilities for secure logging and error presentation.
// It masks credentials and session tokens so they are never echoed back to the
// terminal or carried inside error messages shown to users.
package logging

import (
	"regexp"
	"strings"
)

var (
	rePassword = regexp.MustCompile(`(?i)("password"\s*:\s*")([^"]+)(")`)
	rePassKV   = regexp.MustCompile(`(?i)(password=)([^\s;&]+)`)
	reToken    = regexp.MustCompile(`(?i)(token=|bearer\s+)([A-Za-z0-9._-]+)`)
	reAuthHdr  = regexp.MustCompile(`(?i)(authorization:\s*)(\S.*)`)
)

// Mask replaces sensitive values in the input string with "***".
// Covers JSON credential payloads, key=value pairs, bearer tokens, and raw
// Authorization header dumps.
func Mask(s string) string {
	out := s
	out = rePassword.ReplaceAllString(out, "$1***$3")
	out = rePassKV.ReplaceAllString(out, "$1***")
	out = reToken.ReplaceAllString(out, "$1***")
	out = reAuthHdr.ReplaceAllString(out, "$1***")
	// Env-style pairs; mask common secret keys
	for _, k := range []string{"AUTHLY_TOKEN", "ACCESS_TOKEN"} {
		out = strings.ReplaceAll(out, k+"=", k+"=***")
	}
	return out
}
