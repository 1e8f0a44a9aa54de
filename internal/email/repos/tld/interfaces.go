package tld

import "github.com/haukened/rr-email/internal/email/domain"

// BloomSizer computes Bloom filter parameters from capacity (n) and target FP rate (p).
// It returns m (number of bits) and k (number of hash functions).
type BloomSizer interface {
	Size(n uint64, p float64) (m uint64, k uint8)
}

// BloomFactory builds filters sized for a dataset.
type BloomFactory interface {
	New(capacity uint64, fpRate float64) BloomFilter
}

// BloomFilter is the minimal interface the repository needs from Bloom filters.
type BloomFilter interface {
	Add(key []byte)
	MightContain(key []byte) bool
}

// DecisionCache caches known/unknown answers by canonical label with basic metrics.
type DecisionCache interface {
	Get(label string) (known bool, ok bool)
	Put(label string, known bool)
	Len() int
	Purge()
	Stats() CacheStats
}

// Store is the persistent index of known labels.
// - Exists: presence of a canonical label
// - RebuildAll: replace every entry and the snapshot metadata in one transaction
// - Get: the stored entry with its provenance
// - Visit: iterate stored labels until visit returns false
type Store interface {
	Exists(label string) (bool, error)
	Get(label string) (domain.TLDEntry, bool, error)
	RebuildAll(entries []domain.TLDEntry, version uint64, updatedUnix int64) error
	Visit(visit func(label string) bool) error
	Purge() error
	Stats() StoreStats
	Close() error
}

// Repository answers TLD membership through a cache → bloom → store pipeline.
// Contains satisfies the scanner's table interface.
type Repository interface {
	Contains(label string) bool
	UpdateAll(entries []domain.TLDEntry, version uint64, updatedUnix int64) error
	Warm() error
	Stats() RepoStats
}
