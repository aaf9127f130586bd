package gcrt

import "unsafe"

// fakeStack is a synthetic call stack: a plain []uintptr laid out so that
// negative-offset frame addressing works the same way it does against a
// real machine stack, letting tests drive the root walk without a real
// compiled caller.
type fakeStack struct {
	words []uintptr
}

func newFakeStack(n int) *fakeStack {
	return &fakeStack{words: make([]uintptr, n)}
}

func (s *fakeStack) addr(i int) uintptr {
	return uintptr(unsafe.Pointer(&s.words[i]))
}

// pushFrame writes a frame whose base is at index `base`: the saved
// previous frame base at offset 0, the root count at offset -1, and each
// root value at offsets -2, -3, ... Indices used are base, base-1,
// base-2-len(roots)+1 — callers must leave enough headroom below base.
func (s *fakeStack) pushFrame(base int, savedPrev uintptr, roots []uintptr) uintptr {
	s.words[base] = savedPrev
	s.words[base-1] = uintptr(int64(len(roots)))
	for i, r := range roots {
		s.words[base-2-i] = r
	}
	return s.addr(base)
}

// setRoot overwrites root slot i of the frame based at `base`.
func (s *fakeStack) setRoot(base, i int, v uintptr) {
	s.words[base-2-i] = v
}
