package gcrt

import "unsafe"

// heap is the backing allocation for both half-spaces: a plain buffer
// addressed through unsafe.Pointer arithmetic rather than a
// general-purpose allocator, since the semispace design needs only two
// cursors per space, maintained by the collector, not the heap view
// itself.
type heap struct {
	words []uintptr
}

// newHeap allocates H words of backing storage. Go zeroes the buffer on
// allocation, but the collector does not rely on that: the bump allocator
// zeroes each payload it hands out, and the space between bump and the
// end of from-space is never read before being written.
func newHeap(words int) heap {
	return heap{words: make([]uintptr, words)}
}

// base is the machine address of the first word of the backing buffer.
func (h heap) base() uintptr {
	return uintptr(unsafe.Pointer(&h.words[0]))
}

// copyWords copies n words from src to dst, both raw addresses inside this
// heap. The two ranges never overlap in this collector (from-space and
// to-space are disjoint halves of the same backing buffer), so a plain
// forward copy suffices.
func (h heap) copyWords(dst, src uintptr, n int) {
	for i := 0; i < n; i++ {
		writeWord(dst+uintptr(i)*wordBytes, readWord(src+uintptr(i)*wordBytes))
	}
}

// zeroWords zeroes n words starting at addr.
func (h heap) zeroWords(addr uintptr, n int) {
	for i := 0; i < n; i++ {
		writeWord(addr+uintptr(i)*wordBytes, 0)
	}
}
