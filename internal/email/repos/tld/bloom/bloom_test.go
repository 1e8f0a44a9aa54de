package bloom

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFactory_New_AddThenTest(t *testing.T) {
	bf := NewFactory().New(128, 0.01)
	if bf == nil {
		t.Fatalf("expected non-nil bloom filter")
	}

	if bf.MightContain([]byte("com")) {
		t.Fatalf("unexpected positive before add")
	}
	bf.Add([]byte("com"))
	if !bf.MightContain([]byte("com")) {
		t.Fatalf("expected maybe after add")
	}
}

func TestFactory_New_Defaults(t *testing.T) {
	// capacity=0 and invalid fp fall back to sizer defaults
	bf := NewFactory().New(0, 0)
	bf.Add([]byte("org"))
	assert.True(t, bf.MightContain([]byte("org")))
}

func TestFilter_NoFalseNegatives(t *testing.T) {
	const n = 1500
	bf := NewFactory().New(n, 0.001)
	for i := 0; i < n; i++ {
		bf.Add([]byte(fmt.Sprintf("tld%04d", i)))
	}
	for i := 0; i < n; i++ {
		assert.True(t, bf.MightContain([]byte(fmt.Sprintf("tld%04d", i))))
	}
}

func TestFilter_ConcurrentReadsDuringWrites(t *testing.T) {
	f := NewFactory().New(256, 0.01)

	var wg sync.WaitGroup
	done := make(chan struct{})
	keys := [][]byte{[]byte("com"), []byte("net"), []byte("org")}

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 10_000; i++ {
			f.Add(keys[i%3])
		}
		close(done)
	}()

	for r := 0; r < 8; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-done:
					return
				default:
					_ = f.MightContain([]byte("probe"))
				}
			}
		}()
	}
	wg.Wait()
}

func TestSizer_CommonCases(t *testing.T) {
	s := NewSizer()

	// n=1, p=1% → m≈10, k≈7
	m, k := s.Size(1, 0.01)
	assert.GreaterOrEqual(t, m, uint64(10))
	assert.Equal(t, uint8(7), k)

	// n=1500 (roughly the IANA root zone), p=1% → m≈14378 bits
	m, k = s.Size(1500, 0.01)
	assert.InDelta(t, 14378, float64(m), 5)
	assert.Equal(t, uint8(7), k)

	// p=0.5 → k rounds to 1
	m, k = s.Size(10_000, 0.5)
	assert.Equal(t, uint8(1), k)
	assert.NotZero(t, m)
}

func TestSizer_ClampingAndDefaults(t *testing.T) {
	s := NewSizer()

	m, k := s.Size(0, 0)
	assert.NotZero(t, m)
	assert.NotZero(t, k)

	m1, k1 := s.Size(100, 1.0)
	m2, k2 := s.Size(100, defaultFPRate)
	assert.Equal(t, m2, m1)
	assert.Equal(t, k2, k1)
}
