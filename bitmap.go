package atlas

// BitmapFormat describes the pixel layout of a rasterized glyph bitmap.
type BitmapFormat uint8

const (
	// FormatMask is a single-channel coverage mask, one byte per pixel.
	// Mask glyphs are tinted with the text color at paint time.
	FormatMask BitmapFormat = iota

	// FormatColor is premultiplied RGBA, four bytes per pixel.
	// Color glyphs (emoji, some color fonts) carry their own colors and
	// are never tinted.
	FormatColor
)

// Bitmap is a rasterized glyph image together with its placement metrics.
//
// Left and Top position the bitmap relative to the pen: the top-left pixel
// of the bitmap lands at (penX + Left, penY - Top), with penY on the
// baseline and y growing downward.
type Bitmap struct {
	// Width and Height are the bitmap dimensions in pixels.
	Width, Height int

	// Left is the horizontal bearing from the pen position to the left
	// edge of the bitmap.
	Left int

	// Top is the vertical bearing from the baseline up to the top edge
	// of the bitmap.
	Top int

	// Format describes the layout of Pixels.
	Format BitmapFormat

	// Pixels holds Width*Height pixels, one byte each for FormatMask or
	// four bytes each for FormatColor, in row-major order.
	Pixels []uint8
}

// IsEmpty reports whether the bitmap has no pixels, e.g. a space character.
// Empty bitmaps are cached as unsized entries so the rasterizer is not
// consulted again for the same key.
func (b *Bitmap) IsEmpty() bool {
	return b == nil || b.Width <= 0 || b.Height <= 0
}

// RGBA returns the bitmap expanded to premultiplied RGBA, four bytes per
// pixel. Mask coverage a becomes (a, a, a, a), which is premultiplied white;
// tinting happens at paint time. Color bitmaps are returned as-is.
func (b *Bitmap) RGBA() []uint8 {
	if b.Format == FormatColor {
		return b.Pixels
	}
	out := make([]uint8, b.Width*b.Height*4)
	for i, a := range b.Pixels {
		out[i*4+0] = a
		out[i*4+1] = a
		out[i*4+2] = a
		out[i*4+3] = a
	}
	return out
}

// Rasterizer produces glyph bitmaps on cache misses.
//
// Rasterize returns nil when the font has no image for the key (missing
// glyph, unsupported format). A non-nil empty bitmap means the glyph exists
// but covers no pixels, such as a space. Results must be deterministic:
// the cache assumes the same key always rasterizes to the same bitmap.
type Rasterizer interface {
	Rasterize(key GlyphKey) *Bitmap
}
