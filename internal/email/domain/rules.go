package domain

// Disabled is the sentinel that switches off a domain length threshold.
const Disabled = -1

// LocalRules controls which characters and constructs the local-part
// (everything before the separator) may contain.
type LocalRules struct {
	AlphaUpper bool // A-Z
	AlphaLower bool // a-z
	Numeric    bool // 0-9
	Period     bool // "." between atoms and inside quoted segments
	Printable  bool // RFC 5322 atext symbols other than "-"
	Quote      bool // quoted segments such as "john..doe"
	Hyphen     bool // "-"
	Spaces     bool // spaces inside quoted segments
}

// DomainRules controls the domain-part (everything after the separator).
//
// CharsBeforeDot and CharsAfterDot are minimum character counts measured
// against the last period of the domain. Disabled (-1) switches a check off.
type DomainRules struct {
	AlphaUpper     bool
	AlphaLower     bool
	Numeric        bool
	Period         bool
	Hyphen         bool
	TLD            bool // final label must be a known top-level domain
	Localhost      bool // accept bare host names without any period
	CharsBeforeDot int
	CharsAfterDot  int
}

// Rules is the fully resolved rule set used by the syntax scanner.
// It is a plain value; copies never share state.
type Rules struct {
	Local  LocalRules
	Domain DomainRules
}

// DefaultRules is the rule set applied for every option a caller leaves unset.
var DefaultRules = Rules{
	Local: LocalRules{
		AlphaUpper: true,
		AlphaLower: true,
		Numeric:    true,
		Period:     true,
		Printable:  true,
		Quote:      true,
		Hyphen:     true,
		Spaces:     true,
	},
	Domain: DomainRules{
		AlphaUpper:     true,
		AlphaLower:     true,
		Numeric:        true,
		Period:         true,
		Hyphen:         true,
		TLD:            true,
		Localhost:      false,
		CharsBeforeDot: 1,
		CharsAfterDot:  2,
	},
}

// LocalOptions is a partial LocalRules. A nil field keeps the default.
type LocalOptions struct {
	AlphaUpper *bool
	AlphaLower *bool
	Numeric    *bool
	Period     *bool
	Printable  *bool
	Quote      *bool
	Hyphen     *bool
	Spaces     *bool
}

// DomainOptions is a partial DomainRules. A nil field keeps the default.
type DomainOptions struct {
	AlphaUpper     *bool
	AlphaLower     *bool
	Numeric        *bool
	Period         *bool
	Hyphen         *bool
	TLD            *bool
	Localhost      *bool
	CharsBeforeDot *int
	CharsAfterDot  *int
}

// Options carries caller overrides for both halves of an address.
type Options struct {
	Local  LocalOptions
	Domain DomainOptions
}

// Bool returns a pointer to b, for building Options literals.
func Bool(b bool) *bool { return &b }

// Int returns a pointer to i, for building Options literals.
func Int(i int) *int { return &i }

// ResolveRules merges opts over DefaultRules and returns the effective rules.
// It never fails: thresholds below Disabled are treated as unset.
func ResolveRules(opts Options) Rules {
	d := DefaultRules
	return Rules{
		Local: LocalRules{
			AlphaUpper: boolOr(opts.Local.AlphaUpper, d.Local.AlphaUpper),
			AlphaLower: boolOr(opts.Local.AlphaLower, d.Local.AlphaLower),
			Numeric:    boolOr(opts.Local.Numeric, d.Local.Numeric),
			Period:     boolOr(opts.Local.Period, d.Local.Period),
			Printable:  boolOr(opts.Local.Printable, d.Local.Printable),
			Quote:      boolOr(opts.Local.Quote, d.Local.Quote),
			Hyphen:     boolOr(opts.Local.Hyphen, d.Local.Hyphen),
			Spaces:     boolOr(opts.Local.Spaces, d.Local.Spaces),
		},
		Domain: DomainRules{
			AlphaUpper:     boolOr(opts.Domain.AlphaUpper, d.Domain.AlphaUpper),
			AlphaLower:     boolOr(opts.Domain.AlphaLower, d.Domain.AlphaLower),
			Numeric:        boolOr(opts.Domain.Numeric, d.Domain.Numeric),
			Period:         boolOr(opts.Domain.Period, d.Domain.Period),
			Hyphen:         boolOr(opts.Domain.Hyphen, d.Domain.Hyphen),
			TLD:            boolOr(opts.Domain.TLD, d.Domain.TLD),
			Localhost:      boolOr(opts.Domain.Localhost, d.Domain.Localhost),
			CharsBeforeDot: thresholdOr(opts.Domain.CharsBeforeDot, d.Domain.CharsBeforeDot),
			CharsAfterDot:  thresholdOr(opts.Domain.CharsAfterDot, d.Domain.CharsAfterDot),
		},
	}
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

func thresholdOr(v *int, def int) int {
	if v == nil || *v < Disabled {
		return def
	}
	return *v
}
