package atlas

import (
	"image"
	"image/color"
)

// Texture is the backing store the atlas uploads glyph pixels into.
//
// Pixels are RGBA8 with premultiplied alpha. Mask glyphs arrive as
// white-premultiplied coverage and are tinted at paint time; color glyphs
// arrive as premultiplied color and are never tinted.
type Texture interface {
	// Side returns the texture side in pixels. The texture is square.
	Side() int

	// WriteRegion uploads a w x h block of RGBA8 pixels at (x, y).
	// len(pixels) must be w*h*4.
	WriteRegion(x, y, w, h int, pixels []uint8)

	// Replace swaps the entire backing store for a new side x side image.
	// len(pixels) must be side*side*4. Used during atlas growth.
	Replace(side int, pixels []uint8)
}

// PixmapTexture is a CPU-side Texture backed by an RGBA byte buffer.
// Useful for software rendering, tests, and debugging atlas contents.
type PixmapTexture struct {
	side int
	pix  []uint8
}

// NewPixmapTexture creates a side x side CPU texture, initially transparent.
func NewPixmapTexture(side int) *PixmapTexture {
	return &PixmapTexture{
		side: side,
		pix:  make([]uint8, side*side*4),
	}
}

// Side returns the texture side in pixels.
func (t *PixmapTexture) Side() int {
	return t.side
}

// WriteRegion copies a w x h block of RGBA8 pixels into the buffer at (x, y).
// The block must lie within the texture horizontally; rows outside the
// texture are skipped.
func (t *PixmapTexture) WriteRegion(x, y, w, h int, pixels []uint8) {
	for row := 0; row < h; row++ {
		dy := y + row
		if dy < 0 || dy >= t.side {
			continue
		}
		srcOff := row * w * 4
		dstOff := (dy*t.side + x) * 4
		copy(t.pix[dstOff:dstOff+w*4], pixels[srcOff:srcOff+w*4])
	}
}

// Replace adopts pixels as the new side x side contents. The slice is
// retained, not copied; the caller must not modify it afterwards.
func (t *PixmapTexture) Replace(side int, pixels []uint8) {
	t.side = side
	t.pix = pixels
}

// Pix returns the underlying RGBA buffer, side*side*4 bytes, row-major.
func (t *PixmapTexture) Pix() []uint8 {
	return t.pix
}

// At returns the color at (x, y). Implements image.Image.
func (t *PixmapTexture) At(x, y int) color.Color {
	if x < 0 || x >= t.side || y < 0 || y >= t.side {
		return color.RGBA{}
	}
	i := (y*t.side + x) * 4
	return color.RGBA{R: t.pix[i], G: t.pix[i+1], B: t.pix[i+2], A: t.pix[i+3]}
}

// Bounds returns the texture rectangle. Implements image.Image.
func (t *PixmapTexture) Bounds() image.Rectangle {
	return image.Rect(0, 0, t.side, t.side)
}

// ColorModel returns the RGBA color model. Implements image.Image.
func (t *PixmapTexture) ColorModel() color.Model {
	return color.RGBAModel
}

// Image returns a copy of the texture contents as an *image.RGBA snapshot.
func (t *PixmapTexture) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, t.side, t.side))
	copy(img.Pix, t.pix)
	return img
}
