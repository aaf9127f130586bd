package gcrt

import "fmt"

// collect runs one full Cheney collection: walk roots from topFrame,
// forwarding each into to-space, then scan to-space breadth-first until
// the scan cursor meets the free cursor, then swap spaces.
func (c *Collector) collect(topFrame uintptr) {
	c.free = c.toBase
	c.scan = c.toBase

	c.walkRoots(topFrame)

	if c.log {
		fmt.Fprintln(c.trace, "gc: starting scan")
	}
	for c.scan != c.free {
		c.scanOne()
	}

	live := int((c.free - c.toBase) / wordBytes)
	if c.log {
		fmt.Fprintf(c.trace, "gc: swapping from and to spaces (%d words still live)\n", live)
	}

	c.fromBase, c.toBase = c.toBase, c.fromBase
	c.bump = c.fromBase + uintptr(live)*wordBytes
}

// forward updates in place the pointer-typed word at slot: it is the single
// place an object is copied, and the forwarding check inside it is what
// makes that copy happen at most once per collection even when the same
// object is reached through multiple aliasing roots or fields.
func (c *Collector) forward(slot uintptr) {
	p := readWord(slot)
	if p == 0 {
		return
	}

	fromLo, fromHi := c.fromRange()
	if !inRange(p, fromLo, fromHi) {
		return
	}

	headerAddr := p - wordBytes
	h := readWord(headerAddr)

	toLo, toHi := c.toRange()
	if inRange(h, toLo, toHi) {
		// Forwarded case: h is itself the forwarding address.
		if c.log {
			fmt.Fprintf(c.trace, "---- copying object at relative address %d with header [Forwarded]\n", c.relFrom(p))
			fmt.Fprintf(c.trace, "---- object forwarded to relative address %d\n", c.relTo(h))
		}
		writeWord(slot, h)
		return
	}

	// Fresh case: decode, copy, install the forwarding address, rewrite
	// the root, advance free.
	decoded := decodeHeader(h, toLo, toHi)
	w := decoded.PayloadWords()

	dstHeader := c.free
	dstPayload := c.free + wordBytes

	if c.log {
		fmt.Fprintf(c.trace, "---- copying object at relative address %d with header %s\n", c.relFrom(p), decoded)
		fmt.Fprintf(c.trace, "---- moving object from relative address %d to %d\n", c.relFrom(p), c.relTo(dstPayload))
	}

	c.heap.copyWords(dstHeader, headerAddr, 1+w)
	writeWord(headerAddr, dstPayload) // install forwarding address
	writeWord(slot, dstPayload)       // rewrite the root
	c.free += uintptr(1+w) * wordBytes
}

// scanOne runs one iteration of the scan loop: decode the header at the
// scan cursor, forward every pointer field in its payload, log, and
// advance.
func (c *Collector) scanOne() {
	h := readWord(c.scan)
	toLo, toHi := c.toRange()
	decoded := decodeHeader(h, toLo, toHi)
	w := decoded.PayloadWords()

	if c.log {
		fmt.Fprintf(c.trace, "-- scanning header %s\n", decoded)
	}

	for _, off := range decoded.PtrOffsets {
		c.forward(c.scan + wordBytes + uintptr(off)*wordBytes)
	}
	if decoded.Kind == KindPointerArray {
		for off := 0; off < decoded.Len; off++ {
			c.forward(c.scan + wordBytes + uintptr(off)*wordBytes)
		}
	}

	if c.log {
		fmt.Fprintf(c.trace, "-- incrementing scanning ptr by %d\n", 1+w)
	}
	c.scan += uintptr(1+w) * wordBytes
}
