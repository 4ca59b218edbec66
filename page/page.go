// Package page defines the minimal page handle type the surrounding
// buffer-pool manager would keep frames of. It carries no disk format,
// no WAL bookkeeping, and no catalog knowledge — those belong to the
// disk manager and transaction log that sit above this core.
package page

import "sync"

// ID identifies a page across the whole database, independent of which
// frame (if any) currently holds it in memory.
type ID int64

// Handle is the in-memory representation of one page. It exists here so
// hashtable can be exercised against the same (K, V) pairs the
// surrounding buffer pool will actually use: ID -> *Handle, and
// *Handle -> frame-list position.
type Handle struct {
	ID       ID
	Data     []byte
	IsDirty  bool
	PinCount int32
	mu       sync.RWMutex
}

// New allocates a blank, unpinned page handle of the given size.
func New(id ID, size int) *Handle {
	return &Handle{ID: id, Data: make([]byte, size)}
}

func (h *Handle) Lock()    { h.mu.Lock() }
func (h *Handle) Unlock()  { h.mu.Unlock() }
func (h *Handle) RLock()   { h.mu.RLock() }
func (h *Handle) RUnlock() { h.mu.RUnlock() }
