package atlas

import (
	"image"
	"image/draw"

	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// OpentypeRasterizer rasterizes glyph outlines from a TrueType/OpenType font
// using x/image's sfnt loader and scanline rasterizer. It produces coverage
// masks; color glyph tables are not read, use GoTextRasterizer for emoji.
//
// Not safe for concurrent use: the sfnt buffer is reused across calls.
type OpentypeRasterizer struct {
	font   *sfnt.Font
	buf    sfnt.Buffer
	mode   SubpixelMode
	fontID uint64
}

// NewOpentypeRasterizer parses font data and returns a rasterizer for it.
func NewOpentypeRasterizer(data []byte, mode SubpixelMode) (*OpentypeRasterizer, error) {
	f, err := sfnt.Parse(data)
	if err != nil {
		return nil, err
	}
	return &OpentypeRasterizer{
		font:   f,
		mode:   mode,
		fontID: HashFontData(data),
	}, nil
}

// FontID returns the font identifier to use in GlyphKey.FontID.
func (r *OpentypeRasterizer) FontID() uint64 {
	return r.fontID
}

// GlyphIndex returns the glyph index for a rune, or false if the font has
// no glyph for it.
func (r *OpentypeRasterizer) GlyphIndex(ch rune) (uint16, bool) {
	gid, err := r.font.GlyphIndex(&r.buf, ch)
	if err != nil || gid == 0 {
		return 0, false
	}
	return uint16(gid), true
}

// Rasterize implements the Rasterizer interface. It loads the glyph outline
// at the key's size, offsets it by the key's subpixel bucket, and scan
// converts it to an alpha mask.
func (r *OpentypeRasterizer) Rasterize(key GlyphKey) *Bitmap {
	ppem := fixed.I(int(key.Size))
	segments, err := r.font.LoadGlyph(&r.buf, sfnt.GlyphIndex(key.GID), ppem, nil)
	if err != nil {
		return nil
	}
	if len(segments) == 0 {
		return &Bitmap{}
	}

	// Subpixel offset in 26.6 fixed point.
	dx := fixed.Int26_6(SubpixelOffset(key.SubX, r.mode) * 64)

	bounds := segments.Bounds()
	bounds.Min.X += dx
	bounds.Max.X += dx
	minX := bounds.Min.X.Floor()
	minY := bounds.Min.Y.Floor()
	maxX := bounds.Max.X.Ceil()
	maxY := bounds.Max.Y.Ceil()
	width := maxX - minX
	height := maxY - minY
	if width <= 0 || height <= 0 {
		return &Bitmap{}
	}

	// Segment coordinates are y-down relative to the baseline origin.
	// Shift so the glyph's bounding box lands at (0, 0).
	offX := float32(dx)/64 - float32(minX)
	offY := -float32(minY)
	px := func(p fixed.Point26_6) (float32, float32) {
		return float32(p.X)/64 + offX, float32(p.Y)/64 + offY
	}

	ras := vector.NewRasterizer(width, height)
	ras.DrawOp = draw.Src
	started := false
	for _, seg := range segments {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			if started {
				ras.ClosePath()
			}
			x, y := px(seg.Args[0])
			ras.MoveTo(x, y)
			started = true
		case sfnt.SegmentOpLineTo:
			x, y := px(seg.Args[0])
			ras.LineTo(x, y)
		case sfnt.SegmentOpQuadTo:
			cx, cy := px(seg.Args[0])
			x, y := px(seg.Args[1])
			ras.QuadTo(cx, cy, x, y)
		case sfnt.SegmentOpCubeTo:
			c1x, c1y := px(seg.Args[0])
			c2x, c2y := px(seg.Args[1])
			x, y := px(seg.Args[2])
			ras.CubeTo(c1x, c1y, c2x, c2y, x, y)
		}
	}
	if started {
		ras.ClosePath()
	}

	mask := image.NewAlpha(image.Rect(0, 0, width, height))
	ras.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})

	return &Bitmap{
		Width:  width,
		Height: height,
		Left:   minX,
		Top:    -minY,
		Format: FormatMask,
		Pixels: mask.Pix,
	}
}
