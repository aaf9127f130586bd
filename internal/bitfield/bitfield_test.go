package bitfield

import "testing"

// structHeaderBits mirrors the tag-4 "struct with pointers" header word:
// Tag(3) | K(5) | Size(56), least-significant field first — an
// independent description of the same layout the collector's header
// codec decodes by hand, round-tripped here through Pack and Unpack only.
type structHeaderBits struct {
	Tag  uint8  `bitfield:",3"`
	K    uint8  `bitfield:",5"`
	Size uint64 `bitfield:",56"`
}

// arrayHeaderBits mirrors the tag-2/tag-6 "array" header word:
// Tag(3) | Len(61).
type arrayHeaderBits struct {
	Tag uint8  `bitfield:",3"`
	Len uint64 `bitfield:",61"`
}

func TestPackStructHeaderRoundTrip(t *testing.T) {
	cases := []structHeaderBits{
		{Tag: 4, K: 0, Size: 2},
		{Tag: 4, K: 3, Size: 1000},
		{Tag: 0, K: 0, Size: 0},
		{Tag: 0, K: 31, Size: 5},
	}
	for _, c := range cases {
		packed, err := Pack(c, &Config{NumBits: 64})
		if err != nil {
			t.Fatalf("Pack(%+v): %v", c, err)
		}
		var got structHeaderBits
		if err := Unpack(packed, &got); err != nil {
			t.Fatalf("Unpack(%#x): %v", packed, err)
		}
		if got != c {
			t.Errorf("round trip mismatch: packed %+v as 0x%x, got %+v back", c, packed, got)
		}
	}
}

func TestPackArrayHeaderRoundTrip(t *testing.T) {
	cases := []arrayHeaderBits{
		{Tag: 2, Len: 0},
		{Tag: 6, Len: 1},
		{Tag: 6, Len: (1 << 61) - 1},
	}
	for _, c := range cases {
		packed, err := Pack(c, &Config{NumBits: 64})
		if err != nil {
			t.Fatalf("Pack(%+v): %v", c, err)
		}
		var got arrayHeaderBits
		if err := Unpack(packed, &got); err != nil {
			t.Fatalf("Unpack(%#x): %v", packed, err)
		}
		if got != c {
			t.Errorf("round trip mismatch: packed %+v as 0x%x, got %+v back", c, packed, got)
		}
	}
}

func TestPackOverflowRejected(t *testing.T) {
	c := arrayHeaderBits{Tag: 6, Len: 1 << 61}
	if _, err := Pack(c, &Config{NumBits: 64}); err == nil {
		t.Fatalf("expected overflow error packing Len=2^61, got none")
	}
}
