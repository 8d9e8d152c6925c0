// Package validators contains the password policy and email syntax checks
// used by the auth engine, plus the shared request validator for the HTTP
// layer.
package validators

import "regexp"

// Permissive local@domain.tld pattern: ASCII local part, one or more domain
// labels, TLD of two or more letters. Syntax check only, deliverability is
// never probed.
var emailPattern = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)

// ValidateEmail reports whether the address is syntactically plausible.
func ValidateEmail(email string) bool {
	return emailPattern.MatchString(email)
}
