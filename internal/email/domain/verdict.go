package domain

import "fmt"

// Reason names the first rule an address violated.
type Reason uint8

const (
	// ReasonNone means the address passed every check.
	ReasonNone Reason = iota
	// ReasonSeparator means there was not exactly one usable "@", or it sat at either end.
	ReasonSeparator
	// ReasonLocalLength means the local-part exceeded 64 characters.
	ReasonLocalLength
	// ReasonLocalChar means a local-part character is outside every enabled class.
	ReasonLocalChar
	// ReasonLocalPeriod means a period was leading, trailing, doubled or disabled.
	ReasonLocalPeriod
	// ReasonLocalQuote means a quoted segment was disabled, misplaced or unterminated.
	ReasonLocalQuote
	// ReasonLocalEscape means a backslash appeared outside a quoted segment.
	ReasonLocalEscape
	// ReasonLocalSpace means a space appeared unquoted or while spaces are disabled.
	ReasonLocalSpace
	// ReasonLocalRoute means a "%" relay route named a host without a period.
	ReasonLocalRoute
	// ReasonDomainChar means a domain character is outside every enabled class.
	ReasonDomainChar
	// ReasonDomainLabel means the domain has an empty label.
	ReasonDomainLabel
	// ReasonDomainHyphen means a label starts or ends with a hyphen.
	ReasonDomainHyphen
	// ReasonDomainNoDot means a bare host name was given while localhost domains are off.
	ReasonDomainNoDot
	// ReasonDomainLength means a label exceeded 63 characters or the domain exceeded 255.
	ReasonDomainLength
	// ReasonCharsBeforeDot means too few characters precede the last period.
	ReasonCharsBeforeDot
	// ReasonCharsAfterDot means too few characters follow the last period.
	ReasonCharsAfterDot
	// ReasonUnknownTLD means the final label is not a known top-level domain.
	ReasonUnknownTLD
)

var reasonNames = map[Reason]string{
	ReasonNone:           "ok",
	ReasonSeparator:      "separator",
	ReasonLocalLength:    "local_length",
	ReasonLocalChar:      "local_char",
	ReasonLocalPeriod:    "local_period",
	ReasonLocalQuote:     "local_quote",
	ReasonLocalEscape:    "local_escape",
	ReasonLocalSpace:     "local_space",
	ReasonLocalRoute:     "local_route",
	ReasonDomainChar:     "domain_char",
	ReasonDomainLabel:    "domain_label",
	ReasonDomainHyphen:   "domain_hyphen",
	ReasonDomainNoDot:    "domain_no_dot",
	ReasonDomainLength:   "domain_length",
	ReasonCharsBeforeDot: "chars_before_dot",
	ReasonCharsAfterDot:  "chars_after_dot",
	ReasonUnknownTLD:     "unknown_tld",
}

// String returns a stable, log-friendly name for the reason.
func (r Reason) String() string {
	if s, ok := reasonNames[r]; ok {
		return s
	}
	return fmt.Sprintf("Reason(%d)", r)
}

// Verdict is the outcome of scanning one candidate address.
// Pure value type, no external dependencies.
type Verdict struct {
	Valid  bool
	Reason Reason
}

// Accept returns a passing verdict.
func Accept() Verdict { return Verdict{Valid: true, Reason: ReasonNone} }

// Reject returns a failing verdict for the given reason.
func Reject(r Reason) Verdict { return Verdict{Valid: false, Reason: r} }
