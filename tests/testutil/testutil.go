// Package testutil holds helpers shared by tests across packages.
package testutil

import (
	"net/url"
	"os"
	"testing"
)

// RequireTestEnvironmentOrSkip skips tests that reach outside the process
// (containers, the package-level database) unless GO_ENV=test.
func RequireTestEnvironmentOrSkip(t *testing.T) {
	t.Helper()

	if env := os.Getenv("GO_ENV"); env != "test" {
		t.Skipf("Skipping test: GO_ENV must be 'test' (current: %q)", env)
	}
}

// RedactDatabaseURL hides the password of a database URL so it can be logged
func RedactDatabaseURL(raw string) string {
	if raw == "" {
		return "(not set)"
	}
	u, err := url.Parse(raw)
	if err != nil || u.User == nil {
		return raw
	}
	return u.Redacted()
}
