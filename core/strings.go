package core

import "strings"

// NormalizeEmail lower-cases an email address and strips surrounding
// whitespace, so submitted credentials compare cleanly against the registry.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
