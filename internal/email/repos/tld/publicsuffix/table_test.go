package publicsuffix

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTable_Contains(t *testing.T) {
	tbl := New()
	known := []string{"com", "org", "net", "co", "uk", "io", "ck", "COM", ".org.", "xn--p1ai"}
	for _, l := range known {
		assert.True(t, tbl.Contains(l), l)
	}

	unknown := []string{"", "thisisnotavalidtld", "invalidtld", "co.uk", "blogspot.com", "zz-nope"}
	for _, l := range unknown {
		assert.False(t, tbl.Contains(l), l)
	}
}
