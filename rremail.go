// Package rremail validates email address syntax offline.
//
// A Validator resolves its rules once and is then safe for concurrent use:
//
//	v := rremail.New(rremail.Options{
//		Domain: rremail.DomainOptions{Localhost: rremail.Bool(true)},
//	})
//	ok := v.Validate("admin@mailserver1")
//
// No network lookups are made. Top-level domains are checked against the
// Public Suffix List compiled into golang.org/x/net unless another table is
// supplied with NewWithTLDs.
package rremail

import (
	"github.com/haukened/rr-email/internal/email/common/log"
	"github.com/haukened/rr-email/internal/email/domain"
	"github.com/haukened/rr-email/internal/email/repos/tld/publicsuffix"
	"github.com/haukened/rr-email/internal/email/services/syntax"
)

type (
	// Options carries partial rule overrides; nil fields keep defaults.
	Options = domain.Options
	// LocalOptions overrides local-part rules.
	LocalOptions = domain.LocalOptions
	// DomainOptions overrides domain-part rules.
	DomainOptions = domain.DomainOptions
	// Rules is a fully resolved rule set.
	Rules = domain.Rules
	// Verdict is the outcome of Check.
	Verdict = domain.Verdict
	// Reason names the first violated rule.
	Reason = domain.Reason
	// KnownTLDs answers top-level domain membership for canonical labels.
	KnownTLDs = syntax.KnownTLDs
	// Logger receives debug output about rejections.
	Logger = log.Logger
)

// Disabled switches off a CharsBeforeDot or CharsAfterDot threshold.
const Disabled = domain.Disabled

// Bool returns a pointer to b, for building Options literals.
func Bool(b bool) *bool { return domain.Bool(b) }

// Int returns a pointer to i, for building Options literals.
func Int(i int) *int { return domain.Int(i) }

// DefaultRules returns the rules applied when no option is set.
func DefaultRules() Rules { return domain.DefaultRules }

// Validator checks addresses against one resolved rule set.
type Validator struct {
	v *syntax.Validator
}

// New returns a Validator backed by the Public Suffix List.
func New(opts Options) *Validator {
	return NewWithTLDs(opts, publicsuffix.New())
}

// NewWithTLDs returns a Validator that consults tlds for the final label.
// A nil table knows no top-level domains.
func NewWithTLDs(opts Options, tlds KnownTLDs) *Validator {
	return &Validator{v: syntax.NewValidator(syntax.ValidatorOptions{Options: opts, TLDs: tlds})}
}

// NewWithLogger is NewWithTLDs with rejection reasons logged at debug level.
func NewWithLogger(opts Options, tlds KnownTLDs, logger Logger) *Validator {
	return &Validator{v: syntax.NewValidator(syntax.ValidatorOptions{Options: opts, TLDs: tlds, Logger: logger})}
}

// Validate reports whether email is syntactically acceptable.
func (v *Validator) Validate(email string) bool { return v.v.Validate(email) }

// Check is Validate with the reason for a rejection.
func (v *Validator) Check(email string) Verdict { return v.v.Check(email) }

// Rules returns the effective rules.
func (v *Validator) Rules() Rules { return v.v.Rules() }

// Validate checks email with the default rules and the Public Suffix List.
func Validate(email string) bool {
	return defaultValidator.Validate(email)
}

var defaultValidator = New(Options{})
