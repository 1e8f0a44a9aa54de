package domain

import (
	"fmt"
	"strings"
	"time"
)

// TLDEntry is a single top-level domain loaded from a list file or feed.
//
// Notes:
// - Name is expected to be lowercase and without dots (normalization handled elsewhere).
// - Source should identify where the entry came from (file path or feed URL/alias).
// - AddedAt records when the entry was ingested.
type TLDEntry struct {
	Name    string    // canonical label, e.g. "com" or "xn--p1ai"
	Source  string    // list/file identifier
	AddedAt time.Time // ingestion timestamp
}

// NewTLDEntry constructs a TLDEntry and validates its fields.
func NewTLDEntry(name, source string, addedAt time.Time) (TLDEntry, error) {
	e := TLDEntry{
		Name:    strings.TrimSpace(name),
		Source:  strings.TrimSpace(source),
		AddedAt: addedAt,
	}
	if err := e.Validate(); err != nil {
		return TLDEntry{}, err
	}
	return e, nil
}

// Validate checks the TLDEntry for required fields.
func (e TLDEntry) Validate() error {
	if e.Name == "" {
		return fmt.Errorf("tld name must not be empty")
	}
	if strings.Contains(e.Name, ".") {
		return fmt.Errorf("tld name must be a single label: %q", e.Name)
	}
	if e.Source == "" {
		return fmt.Errorf("tld source must not be empty")
	}
	if e.AddedAt.IsZero() {
		return fmt.Errorf("tld addedAt must be set")
	}
	return nil
}
