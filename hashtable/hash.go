package hashtable

import (
	"encoding/binary"
	"fmt"
	"io"
	"reflect"

	"github.com/cespare/xxhash/v2"
)

// HashFunc produces a 64-bit digest for a key. The table only uses the
// low global-depth bits of the result, so any deterministic, reasonably
// uniform function works.
type HashFunc[K comparable] func(key K) uint64

// defaultHash builds a HashFunc for any comparable K by feeding a byte
// encoding of the key into xxhash. Fixed-width integer kinds and
// pointers get a tight binary encoding; everything else (strings,
// structs passed by value) falls back to fmt.Fprintf's %v, which is
// deterministic for a given value's printed form.
func defaultHash[K comparable]() HashFunc[K] {
	return func(key K) uint64 {
		d := xxhash.New()
		if !writeFixedWidth(d, key) {
			fmt.Fprintf(d, "%v", key)
		}
		return d.Sum64()
	}
}

// writeFixedWidth encodes the common fixed-width key kinds directly,
// avoiding the fmt.Fprintf fallback's allocation and formatting cost
// for the int/uint/pointer-shaped keys a buffer pool actually uses
// (page ids, frame ids, and page handles kept in the table by pointer).
//
// Pointer keys must hash the pointer's address, not fmt's %v
// rendering of it: %v on a pointer to a struct dereferences one level
// and formats the pointee's current field values, so two Find calls
// bracketing an ordinary mutation of the pointee (e.g. flipping a
// dirty flag) would hash to different digests for what is, as a map
// key, the same key. reflect.Value.Pointer reports the address itself
// and never touches the pointee.
func writeFixedWidth[K comparable](w io.Writer, key K) bool {
	switch v := any(key).(type) {
	case int:
		return writeInt64(w, int64(v))
	case int32:
		return writeInt64(w, int64(v))
	case int64:
		return writeInt64(w, v)
	case uint:
		return writeInt64(w, int64(v))
	case uint32:
		return writeInt64(w, int64(v))
	case uint64:
		return writeInt64(w, int64(v))
	default:
		rv := reflect.ValueOf(key)
		switch rv.Kind() {
		case reflect.Int, reflect.Int32, reflect.Int64:
			return writeInt64(w, rv.Int())
		case reflect.Uint, reflect.Uint32, reflect.Uint64:
			return writeInt64(w, int64(rv.Uint()))
		case reflect.Pointer:
			return writeInt64(w, int64(rv.Pointer()))
		}
		return false
	}
}

func writeInt64(w io.Writer, v int64) bool {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(v))
	_, err := w.Write(buf[:])
	return err == nil
}
