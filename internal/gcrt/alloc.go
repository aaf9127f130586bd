package gcrt

import "fmt"

// Alloc is the bump allocator's entry point. n is the requested payload
// word count (n >= 1); the header word is reserved but left to the caller
// to write at payload-1 — the allocator reserves n+1 words and zeroes only
// the n payload words it hands back.
//
// callerFP is the frame base of the function that invoked alloc, obtained
// by the caller (normally cmd/cflatrt's _cflat_alloc trampoline, via
// frame.CallerFP) before calling into the collector — Alloc itself never
// touches the frame-pointer register, keeping this package cgo- and
// assembly-free.
//
// Alloc returns the address of the first payload word, i.e. header_addr+1
// word, the pointer compiled code is handed back.
func (c *Collector) Alloc(n int, callerFP uintptr) uintptr {
	if !c.initialized {
		c.panicf("gcrt: alloc called before init")
	}
	if n < 1 {
		c.panicf("gcrt: alloc called with non-positive payload size %d", n)
	}

	if c.log {
		fmt.Fprintf(c.trace, "_cflat_alloc: attempting to allocate %d words...", n)
	}
	if payload, ok := c.tryAlloc(n); ok {
		if c.log {
			fmt.Fprintln(c.trace, "successful")
		}
		return payload
	}
	if c.log {
		fmt.Fprintln(c.trace, "triggering collection")
	}

	c.collect(callerFP)

	if c.log {
		fmt.Fprintf(c.trace, "_cflat_alloc: second attempt to allocate %d words...", n)
	}
	if payload, ok := c.tryAlloc(n); ok {
		if c.log {
			fmt.Fprintln(c.trace, "successful")
		}
		return payload
	}

	c.panicf("out of memory")
	return 0 // unreachable: panicf exits the process
}

// tryAlloc attempts the bump-pointer fast path once, with no collection.
func (c *Collector) tryAlloc(n int) (payload uintptr, ok bool) {
	reserved := uintptr(1+n) * wordBytes
	_, end := c.fromRange()
	if c.bump+reserved > end {
		return 0, false
	}

	// The header word at c.bump is reserved but left unwritten here: the
	// caller (compiler-generated code, or the trampoline standing in for
	// it) writes it at payload-1 immediately after Alloc returns.
	payload = c.bump + wordBytes
	c.bump += reserved

	c.heap.zeroWords(payload, n)
	return payload, true
}
