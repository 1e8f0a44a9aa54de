package syntax

import (
	"strings"
	"unicode/utf8"

	"github.com/haukened/rr-email/internal/email/domain"
)

const maxLocalLength = 64

type localState uint8

const (
	stateStart           localState = iota // nothing consumed yet
	statePlainRun                          // inside an unquoted atom
	stateAfterPeriod                       // just consumed an unquoted "."
	stateInQuote                           // inside a quoted segment
	stateAfterQuoteClose                   // just closed a quoted segment
)

// scanLocal walks the local-part once. Quoted segments must fill a whole
// dot-separated atom; escapes are only honored inside them.
func scanLocal(local string, rules domain.Rules) domain.Reason {
	n := utf8.RuneCountInString(local)
	if n == 0 {
		return domain.ReasonSeparator
	}
	if n > maxLocalLength {
		return domain.ReasonLocalLength
	}

	lr := rules.Local
	state := stateStart
	escaped := false
	lastPercent := -1

	for i, r := range local {
		switch state {
		case stateInQuote:
			if escaped {
				escaped = false
				continue
			}
			switch r {
			case '\\':
				escaped = true
			case '"':
				state = stateAfterQuoteClose
			case ' ':
				if !lr.Spaces {
					return domain.ReasonLocalSpace
				}
			case '.':
				if !lr.Period {
					return domain.ReasonLocalPeriod
				}
			default:
				if reason := atomChar(r, lr); reason != domain.ReasonNone {
					return reason
				}
			}

		case stateStart, stateAfterPeriod:
			switch r {
			case '"':
				if !lr.Quote {
					return domain.ReasonLocalQuote
				}
				state = stateInQuote
			case '.':
				return domain.ReasonLocalPeriod
			default:
				if reason := atomChar(r, lr); reason != domain.ReasonNone {
					return reason
				}
				if r == '%' {
					lastPercent = i
				}
				state = statePlainRun
			}

		case statePlainRun:
			switch r {
			case '"':
				return domain.ReasonLocalQuote
			case '.':
				if !lr.Period {
					return domain.ReasonLocalPeriod
				}
				state = stateAfterPeriod
			default:
				if reason := atomChar(r, lr); reason != domain.ReasonNone {
					return reason
				}
				if r == '%' {
					lastPercent = i
				}
			}

		case stateAfterQuoteClose:
			if r != '.' {
				return domain.ReasonLocalQuote
			}
			if !lr.Period {
				return domain.ReasonLocalPeriod
			}
			state = stateAfterPeriod
		}
	}

	switch state {
	case stateInQuote:
		return domain.ReasonLocalQuote
	case stateAfterPeriod:
		return domain.ReasonLocalPeriod
	}

	// user%host@relay: host must look like a domain unless bare hosts are allowed.
	if lastPercent >= 0 && !rules.Domain.Localhost {
		if !strings.Contains(local[lastPercent+1:], ".") {
			return domain.ReasonLocalRoute
		}
	}
	return domain.ReasonNone
}

// atomChar classifies a single unescaped local-part character against the
// enabled classes. Spaces and backslashes never pass here.
func atomChar(r rune, lr domain.LocalRules) domain.Reason {
	var ok bool
	switch {
	case r == '\\':
		return domain.ReasonLocalEscape
	case r == ' ':
		return domain.ReasonLocalSpace
	case isUpper(r):
		ok = lr.AlphaUpper
	case isLower(r):
		ok = lr.AlphaLower
	case isDigit(r):
		ok = lr.Numeric
	case r == '-':
		ok = lr.Hyphen
	case isPrintable(r):
		ok = lr.Printable
	}
	if !ok {
		return domain.ReasonLocalChar
	}
	return domain.ReasonNone
}
