package atlas

import "testing"

func TestQuantize(t *testing.T) {
	cases := []struct {
		pos     float64
		mode    SubpixelMode
		wantInt int
		wantSub uint8
	}{
		{10.0, SubpixelNone, 10, 0},
		{10.6, SubpixelNone, 11, 0},
		{10.0, Subpixel4, 10, 0},
		{10.25, Subpixel4, 10, 1},
		{10.5, Subpixel4, 10, 2},
		{10.75, Subpixel4, 10, 3},
		{10.99, Subpixel4, 10, 3},
		{10.0, Subpixel10, 10, 0},
		{10.35, Subpixel10, 10, 3},
		{10.95, Subpixel10, 10, 9},
		{-1.25, Subpixel4, -2, 3},
	}
	for _, c := range cases {
		gotInt, gotSub := Quantize(c.pos, c.mode)
		if gotInt != c.wantInt || gotSub != c.wantSub {
			t.Errorf("Quantize(%v, %d) = (%d, %d), want (%d, %d)",
				c.pos, c.mode, gotInt, gotSub, c.wantInt, c.wantSub)
		}
	}
}

func TestSubpixelOffset(t *testing.T) {
	if got := SubpixelOffset(2, Subpixel4); got != 0.5 {
		t.Errorf("SubpixelOffset(2, Subpixel4) = %v, want 0.5", got)
	}
	if got := SubpixelOffset(3, SubpixelNone); got != 0 {
		t.Errorf("SubpixelOffset(3, SubpixelNone) = %v, want 0", got)
	}
}

func TestMakeGlyphKey(t *testing.T) {
	key, penX, penY := MakeGlyphKey(42, 7, 16, 100.25, 50.7, Subpixel4)

	if penX != 100 {
		t.Errorf("penX = %d, want 100", penX)
	}
	if penY != 51 {
		t.Errorf("penY = %d, want 51 (rounded, no vertical subpixel)", penY)
	}
	if key.FontID != 42 || key.GID != 7 || key.Size != 16 {
		t.Errorf("key = %+v, want FontID 42, GID 7, Size 16", key)
	}
	if key.SubX != 1 {
		t.Errorf("key.SubX = %d, want 1", key.SubX)
	}
	if key.SubY != 0 {
		t.Errorf("key.SubY = %d, want 0", key.SubY)
	}

	// Different subpixel buckets produce distinct keys.
	key2, _, _ := MakeGlyphKey(42, 7, 16, 100.75, 50.7, Subpixel4)
	if key == key2 {
		t.Error("keys for different subpixel positions should differ")
	}

	// Same bucket produces the same key.
	key3, _, _ := MakeGlyphKey(42, 7, 16, 200.30, 80.0, Subpixel4)
	key4, _, _ := MakeGlyphKey(42, 7, 16, 300.27, 90.0, Subpixel4)
	if key3.SubX != key4.SubX {
		t.Errorf("SubX = %d and %d for positions in the same bucket", key3.SubX, key4.SubX)
	}
}

func TestHashFontData(t *testing.T) {
	a := HashFontData([]byte("font data A"))
	b := HashFontData([]byte("font data B"))
	if a == b {
		t.Error("different data should hash differently")
	}
	if a != HashFontData([]byte("font data A")) {
		t.Error("hash must be deterministic")
	}
	if HashFontData(nil) != HashFontData([]byte{}) {
		t.Error("nil and empty data should hash the same")
	}
}

func TestSizeToInt16(t *testing.T) {
	if got := sizeToInt16(16.7); got != 16 {
		t.Errorf("sizeToInt16(16.7) = %d, want 16", got)
	}
	if got := sizeToInt16(-5); got != 0 {
		t.Errorf("sizeToInt16(-5) = %d, want 0", got)
	}
	if got := sizeToInt16(100000); got != 32767 {
		t.Errorf("sizeToInt16(100000) = %d, want 32767", got)
	}
}
