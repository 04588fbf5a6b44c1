package atlas

// GlyphKey uniquely identifies a rasterized glyph in the atlas.
//
// Two keys are equal exactly when they would rasterize to the same bitmap:
// same font, same glyph index, same size, same subpixel bucket. The cache
// relies on this; it never validates a cached bitmap against a fresh
// rasterization. Callers supplying non-deterministic keys get stale pixels,
// not an error.
type GlyphKey struct {
	// FontID is a unique identifier for the font. See HashFontData.
	FontID uint64

	// GID is the glyph index within the font.
	GID uint16

	// Size is the font size in ppem (pixels per em).
	// We use int16 for efficiency; sizes above 32K are rare.
	Size int16

	// SubX is the quantized horizontal subpixel position (0 to Mode-1).
	SubX uint8

	// SubY is the quantized vertical subpixel position (0 to Mode-1).
	SubY uint8
}

// SubpixelMode controls subpixel glyph positioning.
// Subpixel positioning improves quality by rasterizing glyphs at fractional
// pixel offsets, at the cost of up to Mode times more cache entries.
type SubpixelMode int

const (
	// SubpixelNone disables subpixel positioning.
	// Glyphs snap to whole pixels. Fastest but lower quality.
	SubpixelNone SubpixelMode = 0

	// Subpixel4 uses 4 subpixel positions (0.0, 0.25, 0.5, 0.75).
	// Good balance of quality and cache size.
	Subpixel4 SubpixelMode = 4

	// Subpixel10 uses 10 subpixel positions (0.0, 0.1, ..., 0.9).
	// Highest quality but 10x cache entries per glyph.
	Subpixel10 SubpixelMode = 10
)

// IsEnabled returns true if subpixel positioning is enabled.
func (m SubpixelMode) IsEnabled() bool {
	return m > 0
}

// Divisions returns the number of subpixel divisions.
// Returns 1 for SubpixelNone.
func (m SubpixelMode) Divisions() int {
	if m <= 0 {
		return 1
	}
	return int(m)
}

// Quantize converts a fractional position to an integer position and a
// quantized subpixel bucket.
//
// For example, with Subpixel4:
//   - pos=10.0 returns (10, 0)
//   - pos=10.25 returns (10, 1)
//   - pos=10.75 returns (10, 3)
//   - pos=10.99 returns (10, 3)
func Quantize(pos float64, mode SubpixelMode) (intPos int, subPos uint8) {
	if !mode.IsEnabled() {
		return int(pos + 0.5), 0
	}

	// Floor, correct for negative positions.
	intPart := int(pos)
	if pos < 0 && pos != float64(intPart) {
		intPart--
	}
	frac := pos - float64(intPart)

	divisions := mode.Divisions()
	sub := int(frac * float64(divisions))
	if sub >= divisions {
		sub = divisions - 1
	}
	if sub < 0 {
		sub = 0
	}

	return intPart, uint8(sub) //nolint:gosec // sub is bounded [0, divisions-1]
}

// SubpixelOffset returns the rasterization offset for a subpixel bucket.
// For Subpixel4: 0 -> 0.0, 1 -> 0.25, 2 -> 0.5, 3 -> 0.75.
func SubpixelOffset(subPos uint8, mode SubpixelMode) float64 {
	if !mode.IsEnabled() {
		return 0
	}
	return float64(subPos) / float64(mode.Divisions())
}

// MakeGlyphKey builds a GlyphKey for a glyph drawn at the fractional pen
// position (x, y), quantizing the position to the given subpixel mode.
// It returns the key together with the whole-pixel pen position the caller
// should paint at. Vertical subpixel positioning is rarely worthwhile for
// horizontal text, so y is always snapped to whole pixels.
func MakeGlyphKey(fontID uint64, gid uint16, size float64, x, y float64, mode SubpixelMode) (key GlyphKey, penX, penY int) {
	penX, subX := Quantize(x, mode)
	penY, _ = Quantize(y, SubpixelNone)
	return GlyphKey{
		FontID: fontID,
		GID:    gid,
		Size:   sizeToInt16(size),
		SubX:   subX,
	}, penX, penY
}

// HashFontData generates a font identifier from raw font file data using
// FNV-1a. Two fonts with identical bytes get identical IDs, which is exactly
// the determinism GlyphKey needs.
func HashFontData(data []byte) uint64 {
	const (
		fnvOffset = 14695981039346656037
		fnvPrime  = 1099511628211
	)

	hash := uint64(fnvOffset)
	for _, b := range data {
		hash ^= uint64(b)
		hash *= fnvPrime
	}
	return hash
}

// sizeToInt16 converts a float64 size to int16 for the cache key.
// Sizes are clamped to the valid int16 range.
func sizeToInt16(size float64) int16 {
	if size < 0 {
		size = 0
	}
	if size > 32767 {
		size = 32767
	}
	return int16(size) //nolint:gosec // bounds checked above
}
