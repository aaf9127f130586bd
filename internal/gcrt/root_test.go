package gcrt

import (
	"bytes"
	"strings"
	"testing"
)

// TestWalkRootsMultiFrame is scenario S5: a caller frame f holds a pointer
// local and calls g, which is the frame that actually triggers collection.
// The walk must process g (idx 0) before f (idx 1).
func TestWalkRootsMultiFrame(t *testing.T) {
	c := New(32, true, 0)
	var buf bytes.Buffer
	c.SetTrace(&buf)

	stack := newFakeStack(32)
	// f sits lower in the array (smaller index, further from the top of
	// the synthetic stack) and has one root.
	fFrame := stack.pushFrame(10, 0, []uintptr{0})
	// g is pushed above f, its saved-previous-frame word pointing back to
	// f, and has two roots.
	gFrame := stack.pushFrame(25, fFrame, []uintptr{0, 0})

	c.walkRoots(gFrame)

	got := buf.String()
	gLine := "gc: processing stack frame 0 (from top of stack), with 2 pointers"
	fLine := "gc: processing stack frame 1 (from top of stack), with 1 pointers"
	gIdx := strings.Index(got, gLine)
	fIdx := strings.Index(got, fLine)
	if gIdx == -1 || fIdx == -1 {
		t.Fatalf("trace missing expected frame lines, got:\n%s", got)
	}
	if gIdx > fIdx {
		t.Fatalf("expected g's frame (idx 0) to be logged before f's frame (idx 1)")
	}
}

// TestWalkRootsZeroRootFrame confirms a frame with root count 0 is walked
// without error and contributes no forwarding work.
func TestWalkRootsZeroRootFrame(t *testing.T) {
	c := New(16, true, 0)
	var buf bytes.Buffer
	c.SetTrace(&buf)

	stack := newFakeStack(8)
	topFrame := stack.pushFrame(7, 0, nil)

	c.walkRoots(topFrame)

	got := buf.String()
	if !strings.Contains(got, "with 0 pointers") {
		t.Fatalf("trace missing zero-root frame line, got:\n%s", got)
	}
	if strings.Contains(got, "-- processing pointer offset") {
		t.Fatalf("expected no pointer-offset lines for a zero-root frame, got:\n%s", got)
	}
}

// TestForwardSkipsNullRoot confirms a null root slot is skipped silently:
// no relative-address log line is produced for it.
func TestForwardSkipsNullRoot(t *testing.T) {
	c := New(16, true, 0)
	var buf bytes.Buffer
	c.SetTrace(&buf)

	stack := newFakeStack(8)
	topFrame := stack.pushFrame(7, 0, []uintptr{0})

	c.walkRoots(topFrame)

	if strings.Contains(buf.String(), "----") {
		t.Fatalf("expected no forwarding log lines for a null root, got:\n%s", buf.String())
	}
}

// TestForwardIgnoresPointerOutsideFromSpace confirms a value that isn't a
// from-space address (e.g. a stale or foreign pointer) is left untouched
// rather than treated as a managed object.
func TestForwardIgnoresPointerOutsideFromSpace(t *testing.T) {
	c := New(16, false, 0)
	foreign := uintptr(0xdeadbeef)

	stack := newFakeStack(8)
	topFrame := stack.pushFrame(7, 0, []uintptr{foreign})

	c.walkRoots(topFrame)

	if got := stack.words[5]; got != foreign {
		t.Fatalf("expected untouched foreign pointer %#x, got %#x", foreign, got)
	}
}
