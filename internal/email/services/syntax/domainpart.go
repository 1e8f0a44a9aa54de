package syntax

import (
	"strings"
	"unicode/utf8"

	"github.com/haukened/rr-email/internal/email/common/utils"
	"github.com/haukened/rr-email/internal/email/domain"
)

const (
	maxDomainLength = 255
	maxLabelLength  = 63
)

// scanDomain checks the domain-part: label syntax first, then the length
// thresholds around the last period, then the TLD table.
func scanDomain(d string, dr domain.DomainRules, tlds KnownTLDs) domain.Reason {
	if utf8.RuneCountInString(d) > maxDomainLength {
		return domain.ReasonDomainLength
	}

	lastDot := strings.LastIndexByte(d, '.')
	if lastDot < 0 {
		if !dr.Localhost {
			return domain.ReasonDomainNoDot
		}
		return scanLabel(d, dr)
	}
	if !dr.Period {
		return domain.ReasonDomainChar
	}

	start := 0
	for i := 0; i <= len(d); i++ {
		if i < len(d) && d[i] != '.' {
			continue
		}
		if reason := scanLabel(d[start:i], dr); reason != domain.ReasonNone {
			return reason
		}
		start = i + 1
	}

	if dr.CharsBeforeDot != domain.Disabled && utf8.RuneCountInString(d[:lastDot]) < dr.CharsBeforeDot {
		return domain.ReasonCharsBeforeDot
	}
	tld := d[lastDot+1:]
	if dr.CharsAfterDot != domain.Disabled && utf8.RuneCountInString(tld) < dr.CharsAfterDot {
		return domain.ReasonCharsAfterDot
	}
	if dr.TLD && !tlds.Contains(utils.CanonicalTLD(tld)) {
		return domain.ReasonUnknownTLD
	}
	return domain.ReasonNone
}

func scanLabel(label string, dr domain.DomainRules) domain.Reason {
	if label == "" {
		return domain.ReasonDomainLabel
	}
	if utf8.RuneCountInString(label) > maxLabelLength {
		return domain.ReasonDomainLength
	}
	for _, r := range label {
		var ok bool
		switch {
		case isUpper(r):
			ok = dr.AlphaUpper
		case isLower(r):
			ok = dr.AlphaLower
		case isDigit(r):
			ok = dr.Numeric
		case r == '-':
			ok = dr.Hyphen
		}
		if !ok {
			return domain.ReasonDomainChar
		}
	}
	if label[0] == '-' || label[len(label)-1] == '-' {
		return domain.ReasonDomainHyphen
	}
	return domain.ReasonNone
}
