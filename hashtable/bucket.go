package hashtable

// bucketEntry is one (key, value) pair stored in a bucket.
type bucketEntry[K comparable, V any] struct {
	key K
	val V
}

// bucket is a bounded, unordered collection of entries that all share
// the same low localDepth hash bits. Several directory slots may point
// at the same bucket; Go's garbage collector is the shared-ownership
// mechanism, so a bucket needs no refcount of its own — it is simply
// kept alive by whichever slots still reference it.
type bucket[K comparable, V any] struct {
	localDepth int
	capacity   int
	entries    []bucketEntry[K, V]
}

func newBucket[K comparable, V any](capacity, localDepth int) *bucket[K, V] {
	return &bucket[K, V]{capacity: capacity, localDepth: localDepth}
}

func (b *bucket[K, V]) find(key K) (V, bool) {
	for _, e := range b.entries {
		if e.key == key {
			return e.val, true
		}
	}
	var zero V
	return zero, false
}

func (b *bucket[K, V]) remove(key K) bool {
	for i, e := range b.entries {
		if e.key == key {
			b.entries = append(b.entries[:i], b.entries[i+1:]...)
			return true
		}
	}
	return false
}

func (b *bucket[K, V]) isFull() bool {
	return len(b.entries) >= b.capacity
}

// put overwrites an existing key in place, or appends a new one if
// there is room. It reports false only when the key is new and the
// bucket has no room — the signal the caller uses to trigger a split.
func (b *bucket[K, V]) put(key K, val V) bool {
	for i, e := range b.entries {
		if e.key == key {
			b.entries[i].val = val
			return true
		}
	}
	if b.isFull() {
		return false
	}
	b.entries = append(b.entries, bucketEntry[K, V]{key: key, val: val})
	return true
}

// drain returns the bucket's entries and empties it in place, so a
// split can redistribute them into the origin and sibling buckets
// without mutating the slice it is iterating over.
func (b *bucket[K, V]) drain() []bucketEntry[K, V] {
	taken := b.entries
	b.entries = nil
	return taken
}
