package tld

// AllowAll treats every non-empty label as a known top-level domain.
// It backs the "none" TLD source, where only syntax matters.
type AllowAll struct{}

func (AllowAll) Contains(label string) bool { return label != "" }
