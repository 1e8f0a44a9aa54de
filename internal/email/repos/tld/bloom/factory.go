package bloom

import (
	bitsbloom "github.com/bits-and-blooms/bloom/v3"

	"github.com/haukened/rr-email/internal/email/repos/tld"
)

// factory implements tld.BloomFactory on top of a tld.BloomSizer.
type factory struct {
	sizer tld.BloomSizer
}

// NewFactory returns a BloomFactory that sizes filters with NewSizer.
func NewFactory() tld.BloomFactory { return factory{sizer: NewSizer()} }

// New constructs an empty filter sized for capacity labels at fpRate.
func (f factory) New(capacity uint64, fpRate float64) tld.BloomFilter {
	m, k := f.sizer.Size(capacity, fpRate)
	return &filter{bf: bitsbloom.New(uint(m), uint(k))}
}
