// Package publicsuffix answers TLD membership from the Public Suffix List
// compiled into golang.org/x/net/publicsuffix. It needs no I/O and is the
// default table when no list has been imported.
package publicsuffix

import (
	"strings"

	"golang.org/x/net/publicsuffix"

	"github.com/haukened/rr-email/internal/email/common/utils"
)

// Table is stateless and safe for concurrent use.
type Table struct{}

// New returns a Table.
func New() Table { return Table{} }

// Contains reports whether label is an ICANN-managed top-level suffix.
// Unknown labels only match the implicit "*" rule, which is not ICANN.
func (Table) Contains(label string) bool {
	cl := utils.CanonicalTLD(label)
	if cl == "" || strings.Contains(cl, ".") {
		return false
	}
	_, icann := publicsuffix.PublicSuffix("example." + cl)
	return icann
}
