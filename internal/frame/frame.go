// Package frame reads and walks precise stack frames laid out per the
// compiled toy language's calling convention: a frame base with the saved
// previous frame base at offset 0, and (for functions with pointer locals)
// a root count and root slots at negative offsets from that base.
//
// Go itself relies on frame pointers being preserved on amd64/arm64 for its
// own profiler and traceback support, so the same ABI fact this package
// leans on is already load-bearing for the host toolchain.
package frame

import "unsafe"

// CallerFP reads the base-pointer register at the entry to the function
// that calls CallerFP (call it G), then follows the saved-previous-frame
// link stored there once, yielding the frame base of G's own caller. A
// function that wants "the caller's frame base" calls CallerFP directly
// from its own body.
//
// Implemented in assembly per GOARCH, because Go has no portable way to
// read the frame-pointer register — this is exactly the kind of operation
// only assembly can express.
func CallerFP() uintptr

// Saved reads the saved-previous-frame-base word at offset 0 of fp — the
// link the root enumerator follows to walk from one frame to its caller.
func Saved(fp uintptr) uintptr {
	return *(*uintptr)(unsafe.Pointer(fp))
}

// Word reads the signed word at fp + 8*offset; offset may be negative.
// Root slots and the root-count word live at negative offsets from a frame
// base.
func Word(fp uintptr, offset int) uintptr {
	return *(*uintptr)(unsafe.Pointer(uintptr(int64(fp) + int64(offset)*8)))
}

// SetWord writes the word at fp + 8*offset.
func SetWord(fp uintptr, offset int, v uintptr) {
	*(*uintptr)(unsafe.Pointer(uintptr(int64(fp) + int64(offset)*8))) = v
}
