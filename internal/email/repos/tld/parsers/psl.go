package parsers

import (
	"bufio"
	"io"
	"strings"
	"time"

	"golang.org/x/net/idna"

	"github.com/haukened/rr-email/internal/email/common/log"
)

const (
	pslBeginICANN = "===BEGIN ICANN DOMAINS==="
	pslEndICANN   = "===END ICANN DOMAINS==="
)

// ParsePublicSuffixList extracts top-level domains from public_suffix_list.dat.
//
// Rules:
// - Only the ICANN section counts; private registrations are ignored
// - "//" lines are comments; the rule is the first whitespace-delimited field
// - Exception ("!") and wildcard ("*.") markers are dropped
// - The last label of every rule is a TLD; Unicode labels are converted to A-labels
// - De-duplicates in first-seen order
func ParsePublicSuffixList(r io.Reader, source string, logger log.Logger, now time.Time) (List, error) {
	scanner := bufio.NewScanner(r)
	acc := newDedupe()
	inICANN := false

	logger.Debug(map[string]any{"source": source}, "parse_psl_start")
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := stripLineBOM(scanner.Text())

		if isEmpty, isComment := classifyLine(line, "//"); isEmpty || isComment {
			switch {
			case strings.Contains(line, pslBeginICANN):
				inICANN = true
			case strings.Contains(line, pslEndICANN):
				inICANN = false
			}
			continue
		}
		if !inICANN {
			continue
		}

		fields := strings.Fields(line)
		rule := strings.TrimPrefix(fields[0], "!")
		rule = strings.TrimPrefix(rule, "*.")
		label := rule
		if i := strings.LastIndexByte(rule, '.'); i >= 0 {
			label = rule[i+1:]
		}

		ascii, err := idna.Lookup.ToASCII(label)
		if err != nil {
			logger.Debug(map[string]any{"line": lineNum, "raw": label, "error": err.Error()}, "psl_skip_idna")
			continue
		}
		name, skip := acc.add(ascii, source, now)
		if skip != "" {
			if skip != "skip_duplicate" {
				logger.Debug(map[string]any{"line": lineNum, "raw": label, "name": name}, "psl_"+skip)
			}
			continue
		}
		logger.Debug(map[string]any{"line": lineNum, "name": name}, "psl_emit_tld")
	}

	if err := scanner.Err(); err != nil {
		logger.Debug(map[string]any{"source": source, "error": err.Error()}, "parse_psl_scan_error")
		return List{}, err
	}
	logger.Debug(map[string]any{"source": source, "count": len(acc.out)}, "parse_psl_done")
	return List{Entries: acc.out}, nil
}
