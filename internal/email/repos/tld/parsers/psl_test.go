package parsers

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haukened/rr-email/internal/email/common/log"
)

const samplePSL = `// This Source Code Form is subject to the terms of the Mozilla Public License.

// ===BEGIN ICANN DOMAINS===

// ac : https://en.wikipedia.org/wiki/.ac
ac
com.ac
edu.ac

// ck : https://en.wikipedia.org/wiki/.ck
*.ck
!www.ck

// uk
co.uk
org.uk

// рф
рф

// com
com

bad_rule
// ===END ICANN DOMAINS===
// ===BEGIN PRIVATE DOMAINS===

blogspot.com
example.zzprivate
// ===END PRIVATE DOMAINS===
`

func TestParsePublicSuffixList_ICANNOnly(t *testing.T) {
	now := time.Unix(1723550000, 0)
	got, err := ParsePublicSuffixList(strings.NewReader(samplePSL), "psl", log.NewNoopLogger(), now)
	require.NoError(t, err)

	assert.Equal(t, []string{"ac", "ck", "uk", "xn--p1ai", "com"}, names(got))
	assert.Zero(t, got.Version)
	for _, e := range got.Entries {
		assert.Equal(t, "psl", e.Source)
		assert.True(t, e.AddedAt.Equal(now))
	}
}

func TestParsePublicSuffixList_NoICANNSection(t *testing.T) {
	got, err := ParsePublicSuffixList(strings.NewReader("com\nnet\n"), "psl", log.NewNoopLogger(), time.Unix(1, 0))
	require.NoError(t, err)
	assert.Empty(t, got.Entries)
}

func TestParsePublicSuffixList_ScannerError(t *testing.T) {
	big := bytes.Repeat([]byte{'a'}, 70000)
	_, err := ParsePublicSuffixList(bytes.NewReader(big), "psl", log.NewNoopLogger(), time.Now())
	require.Error(t, err)
}

func TestParse_DispatchPSL(t *testing.T) {
	got, err := Parse(FormatPSL, strings.NewReader(samplePSL), "psl", log.NewNoopLogger(), time.Unix(1, 0))
	require.NoError(t, err)
	assert.Len(t, got.Entries, 5)
}
