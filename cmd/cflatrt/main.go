// Command cflatrt builds the C-linkage shared runtime a compiled cflat
// program links against. Built with -buildmode=c-archive (or c-shared),
// this package exports six symbols; each export is a thin trampoline into
// internal/gcrt.
//
// The dummy main() below exists only because Go's c-archive/c-shared build
// modes require a package main with a main function — it is never called
// by the linked program.
package main

/*
#include <stddef.h>
#include <stdint.h>
*/
import "C"

import (
	"unsafe"

	"cflat-runtime/internal/config"
	"cflat-runtime/internal/frame"
	"cflat-runtime/internal/gcrt"
)

// rt is the single process-wide collector instance. There is exactly one
// per process for the runtime's entire lifetime: mutated only by init,
// alloc, and collect, which never overlap in time.
var rt *gcrt.Collector

//export _cflat_init_gc
func _cflat_init_gc() {
	if rt != nil {
		gcrt.Panic("_cflat_init_gc: already initialized")
	}

	settings, err := config.Load()
	if err != nil {
		gcrt.Panic(err.Error())
	}

	// frame.CallerFP() returns the frame base of whoever called this
	// function — i.e. main's own frame, since main calls _cflat_init_gc
	// directly. One more hop up the saved-frame chain reaches main's
	// caller, which is the root walk's terminator.
	mainFrame := frame.CallerFP()
	terminator := frame.Saved(mainFrame)

	rt = gcrt.New(settings.HeapWords, settings.LogGC, terminator)
}

//export _cflat_alloc
func _cflat_alloc(n C.size_t) unsafe.Pointer {
	callerFP := frame.CallerFP()
	payload := rt.Alloc(int(n), callerFP)
	return unsafe.Pointer(payload)
}

//export _cflat_zero_words
func _cflat_zero_words(p unsafe.Pointer, n C.int64_t) {
	addr := uintptr(p)
	for i := int64(0); i < int64(n); i++ {
		*(*uintptr)(unsafe.Pointer(addr + uintptr(i)*8)) = 0
	}
}

//export _cflat_panic
func _cflat_panic(msg *C.char) {
	gcrt.Panic(C.GoString(msg))
}

//export print_num
func print_num(n C.int64_t) C.int64_t {
	return C.int64_t(gcrt.PrintNum(int64(n)))
}

//export print_char
func print_char(n C.int64_t) C.int64_t {
	return C.int64_t(gcrt.PrintChar(int64(n)))
}

func main() {}
