package parsers

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/haukened/rr-email/internal/email/common/log"
	"github.com/haukened/rr-email/internal/email/common/utils"
	"github.com/haukened/rr-email/internal/email/domain"
)

// Supported list formats.
const (
	FormatIANA = "iana" // tlds-alpha-by-domain.txt
	FormatPSL  = "psl"  // public_suffix_list.dat
)

// ErrUnknownFormat is returned by Parse for an unsupported format name.
var ErrUnknownFormat = errors.New("unknown tld list format")

// List is the result of parsing one TLD source.
type List struct {
	Entries []domain.TLDEntry
	Version uint64 // 0 when the source carries no version
}

// Parse dispatches to the parser for format.
func Parse(format string, r io.Reader, source string, logger log.Logger, now time.Time) (List, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case FormatIANA:
		return ParseTLDList(r, source, logger, now)
	case FormatPSL:
		return ParsePublicSuffixList(r, source, logger, now)
	default:
		return List{}, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

func stripLineBOM(line string) string {
	return strings.TrimPrefix(line, "\uFEFF")
}

// classifyLine reports blank lines and lines that start with the comment marker.
func classifyLine(line, marker string) (isEmpty, isComment bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return true, false
	}
	return false, strings.HasPrefix(trimmed, marker)
}

func stripInlineComment(line, marker string) string {
	if idx := strings.Index(line, marker); idx >= 0 {
		return line[:idx]
	}
	return line
}

// isValidLabel enforces LDH syntax: 1-63 ASCII letters, digits or hyphens,
// not starting or ending with a hyphen.
func isValidLabel(label string) bool {
	if len(label) == 0 || len(label) > 63 {
		return false
	}
	if label[0] == '-' || label[len(label)-1] == '-' {
		return false
	}
	for i := 0; i < len(label); i++ {
		c := label[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-':
		default:
			return false
		}
	}
	return true
}

// dedupe collects entries in first-seen order.
type dedupe struct {
	seen map[string]struct{}
	out  []domain.TLDEntry
}

func newDedupe() *dedupe {
	return &dedupe{seen: make(map[string]struct{}), out: make([]domain.TLDEntry, 0, 256)}
}

// add canonicalizes and validates raw, then records it. It returns a skip
// reason for the debug log, or "" when the entry was emitted.
func (d *dedupe) add(raw, source string, now time.Time) (string, string) {
	name := utils.CanonicalTLD(raw)
	if !isValidLabel(name) {
		return name, "skip_invalid_label"
	}
	if _, ok := d.seen[name]; ok {
		return name, "skip_duplicate"
	}
	e, err := domain.NewTLDEntry(name, source, now)
	if err != nil {
		return name, "skip_constructor_error"
	}
	d.out = append(d.out, e)
	d.seen[name] = struct{}{}
	return name, ""
}
