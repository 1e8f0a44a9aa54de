package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveRules_EmptyOptionsYieldDefaults(t *testing.T) {
	got := ResolveRules(Options{})
	assert.Equal(t, DefaultRules, got)
}

func TestResolveRules_DocumentedDefaults(t *testing.T) {
	r := ResolveRules(Options{})

	assert.True(t, r.Local.AlphaUpper)
	assert.True(t, r.Local.AlphaLower)
	assert.True(t, r.Local.Numeric)
	assert.True(t, r.Local.Period)
	assert.True(t, r.Local.Printable)
	assert.True(t, r.Local.Quote)
	assert.True(t, r.Local.Hyphen)
	assert.True(t, r.Local.Spaces)

	assert.True(t, r.Domain.AlphaUpper)
	assert.True(t, r.Domain.AlphaLower)
	assert.True(t, r.Domain.Numeric)
	assert.True(t, r.Domain.Period)
	assert.True(t, r.Domain.Hyphen)
	assert.True(t, r.Domain.TLD)
	assert.False(t, r.Domain.Localhost)
	assert.Equal(t, 1, r.Domain.CharsBeforeDot)
	assert.Equal(t, 2, r.Domain.CharsAfterDot)
}

func TestResolveRules_PartialOverrides(t *testing.T) {
	r := ResolveRules(Options{
		Local: LocalOptions{Spaces: Bool(false), AlphaUpper: Bool(false)},
		Domain: DomainOptions{
			Localhost:     Bool(true),
			CharsAfterDot: Int(Disabled),
		},
	})

	assert.False(t, r.Local.Spaces)
	assert.False(t, r.Local.AlphaUpper)
	// untouched flags keep their defaults
	assert.True(t, r.Local.AlphaLower)
	assert.True(t, r.Local.Quote)

	assert.True(t, r.Domain.Localhost)
	assert.Equal(t, Disabled, r.Domain.CharsAfterDot)
	assert.Equal(t, 1, r.Domain.CharsBeforeDot)
	assert.True(t, r.Domain.TLD)
}

func TestResolveRules_InvalidThresholdsFallBackToDefaults(t *testing.T) {
	cases := []struct {
		name   string
		before *int
		after  *int
		want   [2]int
	}{
		{"nil", nil, nil, [2]int{1, 2}},
		{"disabled", Int(-1), Int(-1), [2]int{-1, -1}},
		{"zero", Int(0), Int(0), [2]int{0, 0}},
		{"below sentinel", Int(-2), Int(-100), [2]int{1, 2}},
		{"large", Int(10), Int(5), [2]int{10, 5}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := ResolveRules(Options{Domain: DomainOptions{CharsBeforeDot: tc.before, CharsAfterDot: tc.after}})
			assert.Equal(t, tc.want[0], r.Domain.CharsBeforeDot)
			assert.Equal(t, tc.want[1], r.Domain.CharsAfterDot)
		})
	}
}

func TestResolveRules_DoesNotMutateDefaults(t *testing.T) {
	before := DefaultRules
	_ = ResolveRules(Options{Local: LocalOptions{Period: Bool(false)}, Domain: DomainOptions{TLD: Bool(false)}})
	assert.Equal(t, before, DefaultRules)
}

func TestResolveRules_CallerPointerChangesDoNotLeak(t *testing.T) {
	spaces := true
	opts := Options{Local: LocalOptions{Spaces: &spaces}}
	r := ResolveRules(opts)
	spaces = false
	assert.True(t, r.Local.Spaces, "resolved rules must be a snapshot")
}

func TestBoolAndIntHelpers(t *testing.T) {
	b := Bool(true)
	i := Int(7)
	if b == nil || !*b {
		t.Fatalf("Bool(true) = %v", b)
	}
	if i == nil || *i != 7 {
		t.Fatalf("Int(7) = %v", i)
	}
	if Bool(false) == Bool(false) {
		t.Fatalf("Bool should return distinct pointers")
	}
}
