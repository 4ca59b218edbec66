package replacer

import (
	"math"
	"testing"
)

// With every frame still below K accesses, every backward distance is
// +inf, so eviction order must match classical LRU by first access.
func TestEvictOrdersByFirstAccessWhenAllFramesBelowK(t *testing.T) {
	r := New(10, 2)

	r.RecordAccess(1)
	r.RecordAccess(2)
	r.RecordAccess(3)
	for _, id := range []FrameID{1, 2, 3} {
		r.SetEvictable(id, true)
	}

	if got := r.Size(); got != 3 {
		t.Fatalf("size = %d, want 3", got)
	}

	wantOrder := []FrameID{1, 2, 3}
	for _, want := range wantOrder {
		got, ok := r.Evict()
		if !ok || got != want {
			t.Fatalf("evict() = (%d, %v), want (%d, true)", got, ok, want)
		}
	}
	if _, ok := r.Evict(); ok {
		t.Fatalf("evict() on empty replacer reported a victim")
	}
}

// A frame with fewer than K accesses has infinite backward distance
// and must be evicted before any frame that has reached K, no matter
// how long ago the K-accessed frames were last touched.
func TestEvictPrefersFrameBelowKAccessesOverAnyFiniteDistance(t *testing.T) {
	r := New(10, 2)

	for _, id := range []FrameID{1, 2, 3, 4, 1, 2, 3} {
		r.RecordAccess(id)
	}
	for _, id := range []FrameID{1, 2, 3, 4} {
		r.SetEvictable(id, true)
	}

	if got := r.backwardKDistance(4); got != math.MaxUint64 {
		t.Fatalf("frame 4 backward distance = %d, want +inf", got)
	}

	victim, ok := r.Evict()
	if !ok || victim != 4 {
		t.Fatalf("evict() = (%d, %v), want (4, true)", victim, ok)
	}
}

// Among frames that have all reached K accesses, the victim is
// whichever has the largest backward distance — the one whose K-th
// most recent access is furthest in the past.
func TestEvictPicksLargestBackwardDistanceAmongKAccessedFrames(t *testing.T) {
	r := New(10, 2)

	for _, id := range []FrameID{1, 1, 2, 2} {
		r.RecordAccess(id)
	}
	for _, id := range []FrameID{1, 2} {
		r.SetEvictable(id, true)
	}

	if d := r.backwardKDistance(1); d != 4 {
		t.Fatalf("frame 1 backward distance = %d, want 4", d)
	}
	if d := r.backwardKDistance(2); d != 2 {
		t.Fatalf("frame 2 backward distance = %d, want 2", d)
	}

	victim, ok := r.Evict()
	if !ok || victim != 1 {
		t.Fatalf("evict() = (%d, %v), want (1, true)", victim, ok)
	}
}

// Size must always equal the count of currently evictable tracked
// frames, regardless of how many frames are tracked but pinned.
func TestSizeAccounting(t *testing.T) {
	r := New(10, 2)
	r.RecordAccess(1)
	r.RecordAccess(2)
	if got := r.Size(); got != 0 {
		t.Fatalf("size = %d, want 0 (nothing marked evictable yet)", got)
	}

	r.SetEvictable(1, true)
	if got := r.Size(); got != 1 {
		t.Fatalf("size = %d, want 1", got)
	}

	r.SetEvictable(1, false)
	if got := r.Size(); got != 0 {
		t.Fatalf("size = %d, want 0", got)
	}

	r.SetEvictable(1, true)
	r.SetEvictable(2, true)
	if got := r.Size(); got != 2 {
		t.Fatalf("size = %d, want 2", got)
	}
}

// Each recorded access must advance the clock, so a frame's access
// history is strictly increasing — never flat, never reordered.
func TestHistoryMonotonicity(t *testing.T) {
	r := New(10, 2)
	for i := 0; i < 20; i++ {
		r.RecordAccess(FrameID(i % 3))
	}

	for id, h := range r.frames {
		for i := 1; i < len(h.accesses); i++ {
			if h.accesses[i] <= h.accesses[i-1] {
				t.Fatalf("frame %d history not strictly increasing at index %d: %v", id, i, h.accesses)
			}
		}
	}
}

// Eviction must never select a pinned frame, and Remove on a pinned
// frame is a documented no-op rather than a state-corrupting
// operation.
func TestEvictionExclusivityAndPinnedRemoveNoOp(t *testing.T) {
	r := New(10, 2)
	r.RecordAccess(1)
	r.RecordAccess(2)
	r.SetEvictable(2, true) // frame 1 stays pinned (non-evictable)

	r.Remove(1) // pinned: must be a no-op
	if _, ok := r.frames[1]; !ok {
		t.Fatalf("Remove on a pinned frame dropped its history")
	}

	victim, ok := r.Evict()
	if !ok || victim != 2 {
		t.Fatalf("evict() = (%d, %v), want (2, true); pinned frame 1 must never be selected", victim, ok)
	}
}

func TestRemoveEvictableFrame(t *testing.T) {
	r := New(10, 2)
	r.RecordAccess(1)
	r.SetEvictable(1, true)

	r.Remove(1)
	if r.Size() != 0 {
		t.Fatalf("size = %d after removing the only evictable frame, want 0", r.Size())
	}
	if _, ok := r.frames[1]; ok {
		t.Fatalf("frame 1 still tracked after Remove")
	}
}

func TestUnknownFrameOperationsAreNoOps(t *testing.T) {
	r := New(10, 2)
	r.SetEvictable(99, true) // unknown frame: no-op
	if r.Size() != 0 {
		t.Fatalf("SetEvictable on an unknown frame changed size")
	}
	r.Remove(99) // unknown frame: no-op, must not panic
}

func TestStringDoesNotPanic(t *testing.T) {
	r := New(10, 2)
	r.RecordAccess(1)
	if s := r.String(); s == "" {
		t.Fatalf("String() returned empty string")
	}
}
