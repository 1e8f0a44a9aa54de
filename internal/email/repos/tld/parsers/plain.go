package parsers

import (
	"bufio"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/haukened/rr-email/internal/email/common/log"
)

// ParseTLDList parses the IANA root zone list (tlds-alpha-by-domain.txt).
//
// Behavior:
// - A leading "# Version <n>, ..." header sets List.Version
// - Other '#' comments (inline or whole-line) and blank lines are skipped
// - Labels are case-folded and must be LDH; invalid tokens are skipped
// - De-duplicates while preserving first-seen order
// - Each entry is attributed to source and timestamped with now
func ParseTLDList(r io.Reader, source string, logger log.Logger, now time.Time) (List, error) {
	scanner := bufio.NewScanner(r)
	acc := newDedupe()
	var version uint64

	logger.Debug(map[string]any{"source": source}, "parse_tld_list_start")
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := stripLineBOM(scanner.Text())

		if isEmpty, isComment := classifyLine(line, "#"); isEmpty || isComment {
			if isComment && version == 0 {
				version = parseVersionHeader(line)
			}
			continue
		}

		s := strings.TrimSpace(stripInlineComment(line, "#"))
		if s == "" {
			continue
		}
		name, skip := acc.add(s, source, now)
		if skip != "" {
			logger.Debug(map[string]any{"line": lineNum, "raw": s, "name": name}, skip)
			continue
		}
		logger.Debug(map[string]any{"line": lineNum, "name": name}, "emit_tld")
	}

	if err := scanner.Err(); err != nil {
		logger.Debug(map[string]any{"source": source, "error": err.Error()}, "parse_tld_list_scan_error")
		return List{}, err
	}
	logger.Debug(map[string]any{"source": source, "count": len(acc.out), "version": version}, "parse_tld_list_done")
	return List{Entries: acc.out, Version: version}, nil
}

// parseVersionHeader reads "# Version 2024101900, Last Updated ...".
func parseVersionHeader(line string) uint64 {
	fields := strings.Fields(strings.TrimPrefix(strings.TrimSpace(line), "#"))
	if len(fields) < 2 || !strings.EqualFold(fields[0], "version") {
		return 0
	}
	v, err := strconv.ParseUint(strings.TrimSuffix(fields[1], ","), 10, 64)
	if err != nil {
		return 0
	}
	return v
}
