package hashtable_test

import (
	"fmt"

	"buffercore/hashtable"
	"buffercore/page"
)

// ExampleTable_pageTable shows the table wired up the way a buffer
// pool actually uses it: a page table mapping page ids to page
// handles, and a reverse index mapping a page handle back to its
// position in a frame list (here stood in for by an int).
func ExampleTable_pageTable() {
	pageTable := hashtable.New[page.ID, *page.Handle](4)
	frameOf := hashtable.New[*page.Handle, int](4)

	h := page.New(page.ID(7), 4096)
	_ = pageTable.Insert(h.ID, h)
	_ = frameOf.Insert(h, 0)

	got, ok := pageTable.Find(page.ID(7))
	fmt.Println(got == h, ok)

	frame, ok := frameOf.Find(h)
	fmt.Println(frame, ok)
	// Output:
	// true true
	// 0 true
}
