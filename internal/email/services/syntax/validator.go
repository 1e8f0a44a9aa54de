package syntax

import (
	"github.com/haukened/rr-email/internal/email/common/log"
	"github.com/haukened/rr-email/internal/email/domain"
)

// Validator checks addresses against one resolved rule set. It is immutable
// after construction and safe for concurrent use.
type Validator struct {
	rules  domain.Rules
	tlds   KnownTLDs
	logger log.Logger
}

// ValidatorOptions wires a Validator's rule overrides and collaborators.
type ValidatorOptions struct {
	Options domain.Options
	TLDs    KnownTLDs
	Logger  log.Logger
}

// NewValidator resolves opts.Options once and returns a ready Validator.
// A nil TLDs table knows no top-level domains; a nil Logger discards output.
func NewValidator(opts ValidatorOptions) *Validator {
	v := &Validator{
		rules:  domain.ResolveRules(opts.Options),
		tlds:   opts.TLDs,
		logger: opts.Logger,
	}
	if v.tlds == nil {
		v.tlds = noTLDs{}
	}
	if v.logger == nil {
		v.logger = log.NewNoopLogger()
	}
	return v
}

// Rules returns a copy of the effective rules.
func (v *Validator) Rules() domain.Rules {
	return v.rules
}

// Validate reports whether raw is a syntactically acceptable address.
func (v *Validator) Validate(raw string) bool {
	return v.Check(raw).Valid
}

// Check scans raw and reports the first rule it violates, if any.
func (v *Validator) Check(raw string) domain.Verdict {
	reason := v.scan(raw)
	if reason != domain.ReasonNone {
		v.logger.Debug(map[string]any{"reason": reason.String()}, "address_rejected")
		return domain.Reject(reason)
	}
	return domain.Accept()
}

func (v *Validator) scan(raw string) domain.Reason {
	at, ok := findSeparator(raw)
	if !ok {
		return domain.ReasonSeparator
	}
	if reason := scanLocal(raw[:at], v.rules); reason != domain.ReasonNone {
		return reason
	}
	return scanDomain(raw[at+1:], v.rules.Domain, v.tlds)
}

// findSeparator returns the byte offset of the single "@" that is neither
// quoted nor escaped. It fails when there is no such "@", more than one, or
// the one found would leave the local-part or domain-part empty.
func findSeparator(raw string) (int, bool) {
	at, count := -1, 0
	withinQuotes, escaped := false, false
	for i, r := range raw {
		if escaped {
			escaped = false
			continue
		}
		switch r {
		case '\\':
			escaped = true
		case '"':
			withinQuotes = !withinQuotes
		case '@':
			if !withinQuotes {
				count++
				at = i
			}
		}
	}
	if count != 1 || at == 0 || at == len(raw)-1 {
		return -1, false
	}
	return at, true
}
