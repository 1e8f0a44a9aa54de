package syntax

// KnownTLDs reports whether a label is a registered top-level domain.
// Implementations receive a canonical (lowercase, dot-free) label and must be
// safe for concurrent use.
type KnownTLDs interface {
	Contains(label string) bool
}

// noTLDs knows no top-level domains. It stands in when a Validator is built
// without a table, so a TLD requirement rejects every dotted domain.
type noTLDs struct{}

func (noTLDs) Contains(string) bool { return false }
