package lru

import (
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/haukened/rr-email/internal/email/repos/tld"
)

// decisionCache is an LRU-backed tld.DecisionCache that remembers whether a
// label was found, along with hit, miss and eviction counters.
type decisionCache struct {
	lru       *lru.Cache[string, bool]
	capacity  int
	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

// disabledCache always misses.
type disabledCache struct{}

// New creates a DecisionCache holding up to size labels. If size <= 0 a
// disabled cache is returned.
func New(size int) (tld.DecisionCache, error) {
	if size <= 0 {
		return disabledCache{}, nil
	}

	dc := &decisionCache{capacity: size}
	// evictions include those caused by Purge
	cache, err := lru.NewWithEvict(size, func(string, bool) {
		dc.evictions.Add(1)
	})
	if err != nil {
		return nil, err
	}
	dc.lru = cache
	return dc, nil
}

func (c *decisionCache) Get(label string) (bool, bool) {
	if known, ok := c.lru.Get(label); ok {
		c.hits.Add(1)
		return known, true
	}
	c.misses.Add(1)
	return false, false
}

func (c *decisionCache) Put(label string, known bool) { c.lru.Add(label, known) }

func (c *decisionCache) Len() int { return c.lru.Len() }

func (c *decisionCache) Purge() { c.lru.Purge() }

func (c *decisionCache) Stats() tld.CacheStats {
	return tld.CacheStats{
		Capacity:  c.capacity,
		Size:      c.lru.Len(),
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
	}
}

func (disabledCache) Get(string) (bool, bool) { return false, false }
func (disabledCache) Put(string, bool)        {}
func (disabledCache) Len() int                { return 0 }
func (disabledCache) Purge()                  {}
func (disabledCache) Stats() tld.CacheStats   { return tld.CacheStats{} }

var _ tld.DecisionCache = (*decisionCache)(nil)
var _ tld.DecisionCache = disabledCache{}
