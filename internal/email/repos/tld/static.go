package tld

import "github.com/haukened/rr-email/internal/email/common/utils"

// Static is a fixed in-memory set of labels. It is read-only after
// construction and therefore safe for concurrent use.
type Static struct {
	set map[string]struct{}
}

// NewStatic builds a Static from labels, canonicalizing each one and
// dropping empties.
func NewStatic(labels ...string) *Static {
	s := &Static{set: make(map[string]struct{}, len(labels))}
	for _, l := range labels {
		if cl := utils.CanonicalTLD(l); cl != "" {
			s.set[cl] = struct{}{}
		}
	}
	return s
}

// Contains reports membership of the canonical form of label.
func (s *Static) Contains(label string) bool {
	_, ok := s.set[utils.CanonicalTLD(label)]
	return ok
}

// Len returns the number of distinct labels.
func (s *Static) Len() int { return len(s.set) }
