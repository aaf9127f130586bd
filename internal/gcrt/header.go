package gcrt

import (
	"fmt"
	"strconv"
	"strings"
)

// HeaderKind names the five shapes a header word can take. The low 3 bits
// of every header word are a tag, and the tag selects how the remaining 61
// bits (or, for a forwarded object, the whole word) are interpreted.
type HeaderKind int

const (
	KindAtomicStruct HeaderKind = iota
	KindAtomicArray
	KindPointerStruct
	KindPointerArray
	KindForwarded
)

const (
	tagAtomicOrBitmap = 0
	tagAtomicArray    = 2
	tagPointerStruct  = 4
	tagPointerArray   = 6

	tagBits = 3
	tagMask = 1<<tagBits - 1

	// ptrStructShift is where the k-count (tag 4) or the bitmap (tag 0,
	// bitmap variant) sits, and size occupies the bits above it.
	ptrStructShift = 5
	bitmapMask     = 1<<ptrStructShift - 1
)

// Header is the decoded form of a single header word. Which of its fields
// are meaningful depends on Kind; modeling it as a sum type this way keeps
// every bit-layout decision in decodeHeader instead of scattering it across
// the collector.
type Header struct {
	Kind HeaderKind

	// Size is payload word count for struct variants (AtomicStruct,
	// PointerStruct).
	Size int

	// Len is the element count for array variants (AtomicArray,
	// PointerArray); for those kinds Len also equals the payload word
	// count.
	Len int

	// PtrOffsets lists the word-offsets within the payload that hold
	// pointer fields, for PointerStruct only. Offsets are produced in
	// ascending order.
	PtrOffsets []int

	// Forward is the to-space payload address, for Kind == KindForwarded.
	Forward uintptr
}

// PayloadWords returns how many payload words follow the header, for any
// non-forwarded kind.
func (h Header) PayloadWords() int {
	switch h.Kind {
	case KindAtomicArray, KindPointerArray:
		return h.Len
	case KindAtomicStruct, KindPointerStruct:
		return h.Size
	default:
		return 0
	}
}

// decodeHeader interprets a raw header word found in from-space. toBase and
// toEnd give the to-space address range: a header word that falls inside it
// is not really a header at all but a forwarding address left behind by a
// previous copy of this object.
//
// This is the single decode site in the package — a future change to the
// tag-0/tag-4 disambiguation, or to the bitmap layout, touches only this
// function.
func decodeHeader(word uintptr, toBase, toEnd uintptr) Header {
	if word >= toBase && word < toEnd {
		return Header{Kind: KindForwarded, Forward: word}
	}

	tag := word & tagMask
	upper := word >> tagBits

	switch tag {
	case tagAtomicArray:
		return Header{Kind: KindAtomicArray, Len: int(upper)}
	case tagPointerArray:
		return Header{Kind: KindPointerArray, Len: int(upper)}
	case tagPointerStruct:
		k := int(upper & bitmapMask)
		size := int(upper >> ptrStructShift)
		offsets := make([]int, 0, k+1)
		for i := 0; i <= k; i++ {
			offsets = append(offsets, i)
		}
		return Header{Kind: KindPointerStruct, Size: size, PtrOffsets: offsets}
	case tagAtomicOrBitmap:
		bitmap := upper & bitmapMask
		size := int(upper >> ptrStructShift)
		if size > 0 {
			// size > 0 in the upper bits selects the
			// struct-with-pointers encoding, where bit i of the 5-bit
			// bitmap marks payload offset i+1 as a pointer field.
			var offsets []int
			for i := 0; i < ptrStructShift; i++ {
				if bitmap&(1<<uint(i)) != 0 {
					offsets = append(offsets, i+1)
				}
			}
			return Header{Kind: KindPointerStruct, Size: size, PtrOffsets: offsets}
		}
		return Header{Kind: KindAtomicStruct, Size: int(upper)}
	default:
		// Odd tags (1, 3, 5, 7) are not part of the header format;
		// they are read as an atomic struct so decodeHeader stays
		// total.
		return Header{Kind: KindAtomicStruct, Size: int(upper)}
	}
}

// encodeArrayHeader builds a raw header word for an array of len elements.
func encodeArrayHeader(ptrs bool, length int) uintptr {
	tag := uintptr(tagAtomicArray)
	if ptrs {
		tag = tagPointerArray
	}
	return tag | uintptr(length)<<tagBits
}

// encodeAtomicStructHeader builds a raw header word for a pointer-free
// struct of the given payload size, using the plain tag-0 encoding: the
// payload word count sits directly above the tag, with no bitmap bit set.
func encodeAtomicStructHeader(size int) uintptr {
	return tagAtomicOrBitmap | uintptr(size)<<tagBits
}

// encodePointerStructHeader builds a raw header word for a struct with
// pointer fields, using the tag-4 "k leading pointer fields" encoding
// (variant B).
func encodePointerStructHeader(size, leadingPtrFields int) uintptr {
	k := leadingPtrFields - 1
	return tagPointerStruct | uintptr(k)<<tagBits | uintptr(size)<<(tagBits+ptrStructShift)
}

// encodeBitmapStructHeader builds a raw header word for a struct with
// pointer fields using the tag-0 bitmap encoding (variant A): bit i of
// bitmap marks payload offset i+1 as a pointer field.
func encodeBitmapStructHeader(size int, bitmap uint8) uintptr {
	return tagAtomicOrBitmap | uintptr(bitmap&bitmapMask)<<tagBits | uintptr(size)<<(tagBits+ptrStructShift)
}

// String renders a header the way the collector's trace log does.
func (h Header) String() string {
	switch h.Kind {
	case KindAtomicArray:
		return fmt.Sprintf("[Array, len = %d, ptrs = false]", h.Len)
	case KindPointerArray:
		return fmt.Sprintf("[Array, len = %d, ptrs = true]", h.Len)
	case KindForwarded:
		return "[Forwarded]"
	case KindAtomicStruct:
		return fmt.Sprintf("[Struct, size = %d, ptr offsets = none]", h.Size)
	case KindPointerStruct:
		if len(h.PtrOffsets) == 0 {
			return fmt.Sprintf("[Struct, size = %d, ptr offsets = none]", h.Size)
		}
		parts := make([]string, len(h.PtrOffsets))
		for i, o := range h.PtrOffsets {
			parts[i] = strconv.Itoa(o)
		}
		return fmt.Sprintf("[Struct, size = %d, ptr offsets = %s]", h.Size, strings.Join(parts, " "))
	default:
		return "[Unknown]"
	}
}
