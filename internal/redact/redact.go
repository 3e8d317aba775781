// Package redact removes sensitive fragments from strings before they reach
// logs or error responses: connection strings, credentials, tokens, file
// paths, and email addresses.
package redact

import "regexp"

// Placeholder substituted for matched sensitive fragments.
const Placeholder = "[REDACTED]"

var patterns = []*regexp.Regexp{
	// Database connection strings with inline credentials
	regexp.MustCompile(`(?i)(postgres|postgresql|mysql|mongodb)://[^@\s]+@`),

	// Password and secret assignments
	regexp.MustCompile(`(?i)(password|passwd|pwd|secret|api[_-]?key|token)([=:\s]['"]?)[^'"&\s]{3,}`),

	// JWT tokens (three base64url segments)
	regexp.MustCompile(`eyJ[a-zA-Z0-9_-]+\.eyJ[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]+`),

	// Filesystem paths
	regexp.MustCompile(`(/[\w.-]+){2,}`),

	// Email addresses
	regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`),
}

// String redacts sensitive fragments from s.
func String(s string) string {
	for _, p := range patterns {
		s = p.ReplaceAllString(s, Placeholder)
	}
	return s
}

// Error redacts the error's message. Returns an empty string for nil.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
