package bolt

import (
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	bbolt "go.etcd.io/bbolt"
	bberrors "go.etcd.io/bbolt/errors"

	"github.com/haukened/rr-email/internal/email/domain"
	"github.com/haukened/rr-email/internal/email/repos/tld"
)

var (
	bucketTLDs = []byte("tlds")
	bucketMeta = []byte("meta")

	keyVersion = []byte("version")
	keyUpdated = []byte("updated")
)

// bucketCreator and bucketDeleter are the slices of *bbolt.Tx the bucket
// helpers need; tests substitute fakes.
type bucketCreator interface {
	CreateBucketIfNotExists(name []byte) (*bbolt.Bucket, error)
}

type bucketDeleter interface {
	DeleteBucket(name []byte) error
}

var (
	ensureBucketsFn = ensureBuckets
	deleteBucketsFn = deleteBuckets
)

// boltStore implements tld.Store using bbolt.
//
// Layout: bucket "tlds" maps a canonical label to an 8-byte big-endian
// added-at unix time followed by the source string. Bucket "meta" holds the
// snapshot version and update time.
type boltStore struct {
	db *bbolt.DB
}

// New opens (or creates) a Bolt database at path and ensures buckets exist.
func New(path string) (tld.Store, error) {
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("open tld store %s: %w", path, err)
	}
	if err := db.Update(func(tx *bbolt.Tx) error {
		return ensureBucketsFn(tx)
	}); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init tld store: %w", err)
	}
	return &boltStore{db: db}, nil
}

func ensureBuckets(tx bucketCreator) error {
	for _, name := range [][]byte{bucketTLDs, bucketMeta} {
		if _, err := tx.CreateBucketIfNotExists(name); err != nil {
			return fmt.Errorf("create bucket %s: %w", name, err)
		}
	}
	return nil
}

// deleteBuckets removes the named buckets, ignoring ones that are absent.
func deleteBuckets(tx bucketDeleter, names ...[]byte) error {
	for _, name := range names {
		if err := tx.DeleteBucket(name); err != nil && !errors.Is(err, bberrors.ErrBucketNotFound) {
			return fmt.Errorf("delete bucket %s: %w", name, err)
		}
	}
	return nil
}

func (s *boltStore) Close() error { return s.db.Close() }

func (s *boltStore) Exists(label string) (bool, error) {
	if label == "" {
		return false, nil
	}
	var present bool
	err := s.db.View(func(tx *bbolt.Tx) error {
		if b := tx.Bucket(bucketTLDs); b != nil {
			present = b.Get([]byte(label)) != nil
		}
		return nil
	})
	return present, err
}

func (s *boltStore) Get(label string) (domain.TLDEntry, bool, error) {
	var (
		entry domain.TLDEntry
		found bool
	)
	if label == "" {
		return entry, false, nil
	}
	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketTLDs)
		if b == nil {
			return nil
		}
		v := b.Get([]byte(label))
		if v == nil {
			return nil
		}
		found = true
		entry = decodeEntry(label, v)
		return nil
	})
	return entry, found, err
}

// Visit walks stored labels in key order. The label passed to visit is a
// copy and may be retained.
func (s *boltStore) Visit(visit func(label string) bool) error {
	return s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketTLDs)
		if b == nil {
			return nil
		}
		c := b.Cursor()
		for k, _ := c.First(); k != nil; k, _ = c.Next() {
			if !visit(string(k)) {
				return nil
			}
		}
		return nil
	})
}

// RebuildAll replaces every stored label and the metadata in a single
// transaction; readers see either the old snapshot or the new one.
func (s *boltStore) RebuildAll(entries []domain.TLDEntry, version uint64, updatedUnix int64) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		if err := deleteBucketsFn(tx, bucketTLDs, bucketMeta); err != nil {
			return err
		}
		if err := ensureBucketsFn(tx); err != nil {
			return err
		}
		b := tx.Bucket(bucketTLDs)
		for i, e := range entries {
			if err := e.Validate(); err != nil {
				return fmt.Errorf("entry %d: %w", i, err)
			}
			if err := b.Put([]byte(e.Name), encodeEntry(e)); err != nil {
				return fmt.Errorf("put %s: %w", e.Name, err)
			}
		}
		return writeMeta(tx.Bucket(bucketMeta), version, updatedUnix)
	})
}

// Purge removes all labels and metadata, leaving empty buckets behind.
func (s *boltStore) Purge() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		if err := deleteBucketsFn(tx, bucketTLDs, bucketMeta); err != nil {
			return err
		}
		return ensureBucketsFn(tx)
	})
}

func (s *boltStore) Stats() tld.StoreStats {
	st := tld.StoreStats{}
	_ = s.db.View(func(tx *bbolt.Tx) error {
		if b := tx.Bucket(bucketTLDs); b != nil {
			st.Labels = uint64(b.Stats().KeyN)
		}
		if b := tx.Bucket(bucketMeta); b != nil {
			if v := b.Get(keyVersion); len(v) == 8 {
				st.Version = binary.BigEndian.Uint64(v)
			}
			if v := b.Get(keyUpdated); len(v) == 8 {
				st.UpdatedUnix = int64(binary.BigEndian.Uint64(v))
			}
		}
		return nil
	})
	return st
}

func writeMeta(b *bbolt.Bucket, version uint64, updatedUnix int64) error {
	vbuf := make([]byte, 8)
	ubuf := make([]byte, 8)
	binary.BigEndian.PutUint64(vbuf, version)
	binary.BigEndian.PutUint64(ubuf, uint64(updatedUnix))
	if err := b.Put(keyVersion, vbuf); err != nil {
		return err
	}
	return b.Put(keyUpdated, ubuf)
}

func encodeEntry(e domain.TLDEntry) []byte {
	buf := make([]byte, 8+len(e.Source))
	binary.BigEndian.PutUint64(buf, uint64(e.AddedAt.Unix()))
	copy(buf[8:], e.Source)
	return buf
}

// decodeEntry tolerates short values: they decode with zero provenance.
func decodeEntry(label string, v []byte) domain.TLDEntry {
	e := domain.TLDEntry{Name: label}
	if len(v) < 8 {
		return e
	}
	e.AddedAt = time.Unix(int64(binary.BigEndian.Uint64(v[:8])), 0)
	e.Source = string(v[8:])
	return e
}
