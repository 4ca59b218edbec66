// Package replacer implements the LRU-K page replacement policy: among
// a dynamic set of frames flagged evictable, it selects a victim frame
// by comparing each frame's backward K-distance, falling back to
// classical LRU for frames with fewer than K recorded accesses.
package replacer

import (
	"fmt"
	"math"
	"sync"

	"github.com/dustin/go-humanize"
)

// FrameID identifies a buffer pool frame. Frame ids are assigned by the
// caller; this package only ever echoes them back.
type FrameID int32

// history is one frame's access timestamps, oldest first, plus whether
// the frame currently may be evicted.
type history struct {
	accesses  []uint64
	evictable bool
}

// LRUKReplacer tracks access history for a set of frames and selects an
// eviction victim under the LRU-K policy. The zero value is not usable;
// construct one with New.
type LRUKReplacer struct {
	mu            sync.Mutex
	replacerSize  int
	k             int
	clock         uint64
	frames        map[FrameID]*history
	evictableSize int
}

// New constructs a replacer advertised to hold at most numFrames frames
// (advisory — the replacer tracks whatever frames callers record
// accesses for, regardless of this number) under the LRU-K policy with
// history depth k. k must be at least 1.
func New(numFrames, k int) *LRUKReplacer {
	if k < 1 {
		k = 1
	}
	return &LRUKReplacer{
		replacerSize: numFrames,
		k:            k,
		frames:       make(map[FrameID]*history),
	}
}

// RecordAccess appends the current clock value to frameID's history,
// creating the history if this is the frame's first access, then
// advances the clock. A newly tracked frame starts non-evictable.
func (r *LRUKReplacer) RecordAccess(frameID FrameID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	h, ok := r.frames[frameID]
	if !ok {
		h = &history{}
		r.frames[frameID] = h
	}
	h.accesses = append(h.accesses, r.clock)
	r.clock++
}

// SetEvictable toggles frameID's evictable flag. Unknown frames are a
// no-op: a frame that was never recorded has nothing to toggle.
func (r *LRUKReplacer) SetEvictable(frameID FrameID, evictable bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	h, ok := r.frames[frameID]
	if !ok {
		return
	}
	if h.evictable == evictable {
		return
	}
	h.evictable = evictable
	if evictable {
		r.evictableSize++
	} else {
		r.evictableSize--
	}
}

// Remove drops frameID's history and flag if it is tracked and
// currently evictable. Calling this on a tracked-but-pinned frame is a
// silent no-op rather than a fatal error — a pinned frame is still in
// active use by its caller, and removing its history out from under
// that use would corrupt the replacer's accounting with no warning to
// show for it.
func (r *LRUKReplacer) Remove(frameID FrameID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	h, ok := r.frames[frameID]
	if !ok || !h.evictable {
		return
	}
	delete(r.frames, frameID)
	r.evictableSize--
}

// Evict selects a victim among the evictable tracked frames under the
// LRU-K policy:
//
//  1. Prefer any frame with fewer than k accesses (infinite backward
//     distance) over any frame with a finite one.
//  2. Among frames with infinite distance, pick the earliest first
//     access (classical LRU).
//  3. Among only finite-distance frames, pick the largest backward
//     distance, breaking ties by the earliest most-recent access.
//
// On success the victim is removed from the replacer before return.
func (r *LRUKReplacer) Evict() (FrameID, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var (
		victim      FrameID
		found       bool
		haveInf     bool
		bestInfTime uint64
		bestDist    uint64
		bestLastAcc uint64
	)

	for id, h := range r.frames {
		if !h.evictable {
			continue
		}

		if len(h.accesses) < r.k {
			firstAccess := h.accesses[0]
			if !found || !haveInf || firstAccess < bestInfTime {
				victim, found, haveInf, bestInfTime = id, true, true, firstAccess
			}
			continue
		}

		if haveInf {
			// an infinite-distance candidate already claimed victim
			continue
		}

		dist := r.clock - h.accesses[len(h.accesses)-r.k]
		lastAccess := h.accesses[len(h.accesses)-1]
		if !found || dist > bestDist || (dist == bestDist && lastAccess < bestLastAcc) {
			victim, found, bestDist, bestLastAcc = id, true, dist, lastAccess
		}
	}

	if !found {
		return 0, false
	}

	delete(r.frames, victim)
	r.evictableSize--
	return victim, true
}

// Size returns the number of currently evictable tracked frames.
func (r *LRUKReplacer) Size() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.evictableSize
}

// String renders a one-line summary suitable for a caller's own log
// line — this package never logs on its own.
func (r *LRUKReplacer) String() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return fmt.Sprintf("lruk{k=%d, tracked=%s, evictable=%s}",
		r.k, humanize.Comma(int64(len(r.frames))), humanize.Comma(int64(r.evictableSize)))
}

// backwardKDistance is a whitebox test hook for asserting the raw
// policy value directly rather than through Evict's outcome. It
// reports math.MaxUint64 for "+infinity" — a frame with fewer than k
// recorded accesses has no k-th-most-recent access to measure from.
func (r *LRUKReplacer) backwardKDistance(frameID FrameID) uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	h, ok := r.frames[frameID]
	if !ok || len(h.accesses) < r.k {
		return math.MaxUint64
	}
	return r.clock - h.accesses[len(h.accesses)-r.k]
}
