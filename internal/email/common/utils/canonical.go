package utils

import "strings"

// CanonicalTLD returns a top-level domain label in canonical form:
// - Trimmed of surrounding whitespace
// - Lowercased
// - No leading or trailing dots, so ".COM." and "com" compare equal.
func CanonicalTLD(label string) string {
	label = strings.TrimSpace(label)
	label = strings.ToLower(label)
	return strings.Trim(label, ".")
}

// NormalizeAddress prepares a raw address for validation.
// Surrounding whitespace is always trimmed; the address is lowercased only
// when lowercase is true. Interior characters are never touched.
func NormalizeAddress(raw string, lowercase bool) string {
	raw = strings.TrimSpace(raw)
	if lowercase {
		raw = strings.ToLower(raw)
	}
	return raw
}
