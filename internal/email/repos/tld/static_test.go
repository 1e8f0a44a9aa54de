package tld

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/haukened/rr-email/internal/email/common/log"
)

func nopLogger() log.Logger { return log.NewNoopLogger() }

func TestStatic_Contains(t *testing.T) {
	s := NewStatic("com", " ORG ", ".net.", "", "  ")
	assert.Equal(t, 3, s.Len())
	assert.True(t, s.Contains("com"))
	assert.True(t, s.Contains("Org"))
	assert.True(t, s.Contains("NET"))
	assert.False(t, s.Contains("io"))
	assert.False(t, s.Contains(""))
}

func TestAllowAll_Contains(t *testing.T) {
	var a AllowAll
	assert.True(t, a.Contains("anything"))
	assert.True(t, a.Contains("x"))
	assert.False(t, a.Contains(""))
}

func TestUnion(t *testing.T) {
	a := NewStatic("com")
	b := NewStatic("corp")

	u := Union(a, nil, b)
	assert.True(t, u.Contains("com"))
	assert.True(t, u.Contains("CORP"))
	assert.False(t, u.Contains("net"))

	assert.Same(t, a, Union(nil, a))
	assert.False(t, Union().Contains("com"))
}
