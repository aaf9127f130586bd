// Command cflatrt-demo exercises internal/gcrt end to end without a
// compiled cflat program or the cgo-only symbol exports: it builds a tiny
// synthetic stack frame by hand, the same shape a real compiled frame
// would have, and drives a few allocations through it. Useful for
// sanity-checking a build of the collector and for watching the trace log
// format without a toolchain for the source language itself.
package main

import (
	"fmt"
	"os"
	"unsafe"

	"cflat-runtime/internal/config"
	"cflat-runtime/internal/gcrt"
)

// syntheticFrame holds one fake stack frame with a single pointer root, laid
// out exactly as the root enumerator expects: saved-previous-frame at
// offset 0, root count at offset -1, root slots from offset -2 down.
type syntheticFrame struct {
	words [4]uintptr
}

func (f *syntheticFrame) base() uintptr {
	return uintptr(unsafe.Pointer(&f.words[3]))
}

func main() {
	settings, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	var frame syntheticFrame
	frame.words[3] = 0 // saved previous frame: the walk terminator itself
	frame.words[2] = 1 // root count
	frame.words[1] = 0 // root slot 0, starts null

	c := gcrt.New(settings.HeapWords, settings.LogGC, 0)
	c.SetTrace(os.Stdout)

	topFrame := frame.base()

	const headerAtomicSizeOne = 1 << 3 // tag 0, size = 1, no pointer fields

	for i := 0; i < 3; i++ {
		payload := c.Alloc(1, topFrame)
		// The allocator only reserves and zeroes the payload; writing the
		// header word at payload-1 is the caller's (compiler's)
		// responsibility, reproduced here by hand.
		*(*uintptr)(unsafe.Pointer(payload - 8)) = headerAtomicSizeOne
		*(*uintptr)(unsafe.Pointer(payload)) = uintptr(i)
		gcrt.PrintNum(int64(i))
		frame.words[1] = payload
	}
}
