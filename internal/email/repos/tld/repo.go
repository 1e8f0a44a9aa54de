package tld

import (
	"fmt"
	"sync"

	"github.com/haukened/rr-email/internal/email/common/log"
	"github.com/haukened/rr-email/internal/email/common/utils"
	"github.com/haukened/rr-email/internal/email/domain"
)

// repository implements Repository by composing a Store, a Bloom filter
// (via factory), and a DecisionCache. Reads run cache → bloom → store;
// writes swap a freshly built filter and purge the cache under one lock.
type repository struct {
	mu      sync.RWMutex
	store   Store
	cache   DecisionCache
	bloom   BloomFilter
	factory BloomFactory
	fpRate  float64
	logger  log.Logger
}

// NewRepository constructs a Repository. The bloom filter stays empty until
// Warm or UpdateAll runs; until then every cache miss goes to the store.
// fpRate is the target false-positive rate used when building filters.
func NewRepository(store Store, cache DecisionCache, factory BloomFactory, fpRate float64, logger log.Logger) Repository {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &repository{store: store, cache: cache, factory: factory, fpRate: fpRate, logger: logger}
}

// Contains reports whether label is a stored top-level domain.
// Policy: on store errors the label is treated as unknown.
func (r *repository) Contains(label string) bool {
	cl := utils.CanonicalTLD(label)
	if cl == "" {
		return false
	}
	// 1) checkCache
	if known, ok := r.checkCache(cl); ok {
		return known
	}
	// 2) checkBloom: definite negatives skip the store
	if !r.checkBloom(cl) {
		return false
	}
	// 3) checkStore
	known := r.checkStore(cl)
	// 4) updateCache
	r.updateCache(cl, known)
	return known
}

// UpdateAll performs an atomic snapshot update across store, bloom, and cache.
func (r *repository) UpdateAll(entries []domain.TLDEntry, version uint64, updatedUnix int64) error {
	if err := r.store.RebuildAll(entries, version, updatedUnix); err != nil {
		return fmt.Errorf("rebuild tld store: %w", err)
	}

	bf := r.factory.New(uint64(len(entries)), r.fpRate)
	for _, e := range entries {
		bf.Add([]byte(utils.CanonicalTLD(e.Name)))
	}

	r.swap(bf)
	r.logger.Info(map[string]any{"count": len(entries), "version": version}, "tld_repository_updated")
	return nil
}

// Warm builds the bloom filter from whatever the store already holds.
func (r *repository) Warm() error {
	var labels []string
	if err := r.store.Visit(func(label string) bool {
		labels = append(labels, label)
		return true
	}); err != nil {
		return fmt.Errorf("scan tld store: %w", err)
	}

	bf := r.factory.New(uint64(len(labels)), r.fpRate)
	for _, l := range labels {
		bf.Add([]byte(l))
	}

	r.swap(bf)
	r.logger.Debug(map[string]any{"count": len(labels)}, "tld_bloom_warmed")
	return nil
}

// Stats returns a snapshot of cache and store metrics.
func (r *repository) Stats() RepoStats {
	r.mu.RLock()
	loaded := r.bloom != nil
	cs := r.cache.Stats()
	r.mu.RUnlock()
	return RepoStats{Cache: cs, Store: r.store.Stats(), BloomLoaded: loaded}
}

func (r *repository) swap(bf BloomFilter) {
	r.mu.Lock()
	r.bloom = bf
	r.cache.Purge()
	r.mu.Unlock()
}

// checkBloom returns true if we should consult the store (maybe-positive),
// or false if the label is definitely absent. With no filter loaded it
// returns true so the store stays authoritative.
func (r *repository) checkBloom(cl string) bool {
	r.mu.RLock()
	bf := r.bloom
	r.mu.RUnlock()
	if bf == nil {
		return true
	}
	return bf.MightContain([]byte(cl))
}

func (r *repository) checkCache(cl string) (bool, bool) {
	r.mu.RLock()
	known, ok := r.cache.Get(cl)
	r.mu.RUnlock()
	return known, ok
}

func (r *repository) checkStore(cl string) bool {
	ok, err := r.store.Exists(cl)
	if err != nil {
		r.logger.Warn(map[string]any{"label": cl, "error": err.Error()}, "tld_store_lookup_failed")
		return false
	}
	return ok
}

func (r *repository) updateCache(cl string, known bool) {
	r.mu.Lock()
	r.cache.Put(cl, known)
	r.mu.Unlock()
}
