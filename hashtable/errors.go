package hashtable

import "errors"

// ErrOutOfRange is returned by LocalDepth when the supplied directory
// index does not address a live slot. Callers hitting this have a bug:
// the directory only ever grows, so a previously valid index stays
// valid, but an index that was never valid never becomes one.
var ErrOutOfRange = errors.New("hashtable: directory index out of range")

// ErrOverflow is returned by Insert when a bucket cannot be split any
// further because every key placed in it shares the same hash bits all
// the way out to the table's configured depth ceiling. Real key
// distributions never hit this; it exists so Insert can terminate
// instead of looping forever against a pathological hash function or a
// flood of colliding keys.
var ErrOverflow = errors.New("hashtable: bucket overflow, directory cannot grow further")
