// Package hashtable implements a concurrency-safe extendible hash table:
// a dictionary that grows its directory and splits overflowing buckets
// in place, without ever needing a full rehash.
package hashtable

import (
	"fmt"
	"sync"

	"github.com/dustin/go-humanize"
)

// defaultMaxGlobalDepth bounds directory growth. 64 matches the width
// of the uint64 hash digest — beyond that, no additional bit of the
// hash exists to split on, and a table that still overflows has a
// pathological key set. A directory at that depth has 2^64 slots,
// which is purely a theoretical ceiling; WithMaxGlobalDepth lowers it
// for callers (and tests) that want to observe ErrOverflow without
// actually growing the directory that far.
const defaultMaxGlobalDepth = 64

// Table is a generic extendible hash table. The zero value is not
// usable; construct one with New.
type Table[K comparable, V any] struct {
	mu          sync.Mutex
	globalDepth uint
	maxDepth    uint
	bucketSize  int
	directory   []*bucket[K, V]
	numBuckets  int
	hash        HashFunc[K]
}

// Option configures a Table at construction time.
type Option[K comparable, V any] func(*Table[K, V])

// WithHashFunc overrides the default xxhash-based digest with a
// caller-supplied one. Most callers never need this; it exists for
// keys the default encoding can't distinguish well (e.g. two distinct
// struct values that print identically).
func WithHashFunc[K comparable, V any](fn HashFunc[K]) Option[K, V] {
	return func(t *Table[K, V]) {
		t.hash = fn
	}
}

// WithMaxGlobalDepth overrides the default directory-growth ceiling.
// Most callers never need this; it exists for tests that want to
// exercise the ErrOverflow path against a pathological hash function
// without actually growing the directory to defaultMaxGlobalDepth
// slots.
func WithMaxGlobalDepth[K comparable, V any](depth uint) Option[K, V] {
	return func(t *Table[K, V]) {
		t.maxDepth = depth
	}
}

// New creates a table with a single bucket at local depth 0 and global
// depth 0. bucketSize must be at least 1.
func New[K comparable, V any](bucketSize int, opts ...Option[K, V]) *Table[K, V] {
	if bucketSize < 1 {
		bucketSize = 1
	}
	t := &Table[K, V]{
		bucketSize: bucketSize,
		maxDepth:   defaultMaxGlobalDepth,
		directory:  []*bucket[K, V]{newBucket[K, V](bucketSize, 0)},
		numBuckets: 1,
		hash:       defaultHash[K](),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// indexFor returns the low depth bits of key's hash.
func (t *Table[K, V]) indexFor(key K, depth uint) uint64 {
	if depth == 0 {
		return 0
	}
	mask := (uint64(1) << depth) - 1
	return t.hash(key) & mask
}

// Find returns the value currently associated with key, if any.
func (t *Table[K, V]) Find(key K) (V, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	idx := t.indexFor(key, t.globalDepth)
	return t.directory[idx].find(key)
}

// Remove deletes key if present and reports whether it was.
func (t *Table[K, V]) Remove(key K) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	idx := t.indexFor(key, t.globalDepth)
	return t.directory[idx].remove(key)
}

// Insert inserts key/val, or overwrites val if key is already present.
// It may grow the directory and split buckets to make room. The only
// failure mode is ErrOverflow, raised once the directory has grown to
// its maxDepth ceiling and the target bucket is still full of keys
// indistinguishable at that depth.
func (t *Table[K, V]) Insert(key K, val V) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	for {
		idx := t.indexFor(key, t.globalDepth)
		b := t.directory[idx]
		if b.put(key, val) {
			return nil
		}

		if uint(b.localDepth) == t.globalDepth {
			if t.globalDepth >= t.maxDepth {
				return fmt.Errorf("insert key %v: %w", key, ErrOverflow)
			}
			t.growDirectory()
		}
		t.splitBucket(idx)
	}
}

// growDirectory doubles the directory, pointing each new slot i+oldLen
// at the same bucket as slot i, and increments globalDepth. Every
// bucket's referrer count doubles right along with the directory, so
// the "2^(global-local) referrers per bucket" relationship never
// breaks mid-grow.
func (t *Table[K, V]) growDirectory() {
	t.directory = append(t.directory, t.directory...)
	t.globalDepth++
}

// splitBucket splits the bucket at directory index idx in place: it
// increments the bucket's local depth, allocates a sibling, moves half
// the entries over by rehashing them at the new depth, and rewires
// every directory slot that pointed at the old bucket to point at
// whichever of the two buckets now owns it.
//
// After the depth increment, the origin and sibling buckets differ
// from each other in exactly one bit — the newly-significant bit of
// the local mask, localDepth-1 — so a single XOR against that bit
// turns one bucket's id into the other's.
func (t *Table[K, V]) splitBucket(idx uint64) {
	old := t.directory[idx]
	old.localDepth++
	d := uint(old.localDepth)

	mask := (uint64(1) << d) - 1
	splitBit := uint64(1) << (d - 1)
	originID := idx & mask
	siblingID := originID ^ splitBit

	sibling := newBucket[K, V](t.bucketSize, old.localDepth)
	t.numBuckets++

	for _, e := range old.drain() {
		if t.hash(e.key)&mask == siblingID {
			sibling.entries = append(sibling.entries, e)
		} else {
			old.entries = append(old.entries, e)
		}
	}

	for i := range t.directory {
		switch uint64(i) & mask {
		case siblingID:
			t.directory[i] = sibling
		case originID:
			t.directory[i] = old
		}
	}
}

// GlobalDepth returns the number of low-order hash bits currently used
// to index the directory.
func (t *Table[K, V]) GlobalDepth() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return int(t.globalDepth)
}

// LocalDepth returns the local depth of the bucket referenced by
// directory slot dirIndex. It returns ErrOutOfRange for a negative
// index or one beyond the current directory length — a caller bug,
// since the directory only ever grows.
func (t *Table[K, V]) LocalDepth(dirIndex int) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if dirIndex < 0 || dirIndex >= len(t.directory) {
		return 0, fmt.Errorf("local depth of slot %d: %w", dirIndex, ErrOutOfRange)
	}
	return t.directory[dirIndex].localDepth, nil
}

// NumBuckets returns the number of distinct bucket objects currently
// referenced by the directory.
func (t *Table[K, V]) NumBuckets() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.numBuckets
}

// String renders a one-line summary suitable for a caller's own log
// line — hashtable itself never logs.
func (t *Table[K, V]) String() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return fmt.Sprintf("hashtable{directory=%s slots, globalDepth=%d, buckets=%s}",
		humanize.Comma(int64(len(t.directory))), t.globalDepth, humanize.Comma(int64(t.numBuckets)))
}
