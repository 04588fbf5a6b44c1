package atlas

import (
	"bytes"
	"image"
	"image/draw"
	"image/png"
	"math"

	"github.com/go-text/typesetting/font"
	ot "github.com/go-text/typesetting/font/opentype"
	"golang.org/x/image/vector"
)

// GoTextRasterizer rasterizes glyphs from a go-text/typesetting font face.
// It handles glyph outlines (scan converted to coverage masks) and embedded
// PNG bitmap glyphs such as emoji (decoded to premultiplied color).
//
// Not safe for concurrent use: font.Face carries internal glyph caches.
type GoTextRasterizer struct {
	face   *font.Face
	mode   SubpixelMode
	fontID uint64
}

// NewGoTextRasterizer parses font data and returns a rasterizer for it.
func NewGoTextRasterizer(data []byte, mode SubpixelMode) (*GoTextRasterizer, error) {
	face, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return &GoTextRasterizer{
		face:   face,
		mode:   mode,
		fontID: HashFontData(data),
	}, nil
}

// FontID returns the font identifier to use in GlyphKey.FontID.
func (r *GoTextRasterizer) FontID() uint64 {
	return r.fontID
}

// GlyphIndex returns the glyph index for a rune, or false if the font has
// no glyph for it.
func (r *GoTextRasterizer) GlyphIndex(ch rune) (uint16, bool) {
	gid, ok := r.face.Font.NominalGlyph(ch)
	if !ok {
		return 0, false
	}
	return uint16(gid), true
}

// Rasterize implements the Rasterizer interface.
func (r *GoTextRasterizer) Rasterize(key GlyphKey) *Bitmap {
	data := r.face.GlyphData(font.GID(key.GID))
	switch g := data.(type) {
	case font.GlyphOutline:
		return r.rasterizeOutline(g, key)
	case font.GlyphBitmap:
		return r.rasterizeBitmap(g)
	default:
		// SVG glyphs and unknown formats are not supported.
		return nil
	}
}

// rasterizeOutline scan converts an outline to an alpha mask. Outline
// coordinates are in font units with y growing upward; they are scaled to
// the key's pixel size and flipped to y-down.
func (r *GoTextRasterizer) rasterizeOutline(outline font.GlyphOutline, key GlyphKey) *Bitmap {
	if len(outline.Segments) == 0 {
		return &Bitmap{}
	}

	scale := float64(key.Size) / float64(r.face.Font.Upem())
	subX := SubpixelOffset(key.SubX, r.mode)

	// Conservative pixel bounds from the transformed control points.
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	visit := func(p font.SegmentPoint) {
		x := float64(p.X)*scale + subX
		y := -float64(p.Y) * scale
		minX = math.Min(minX, x)
		minY = math.Min(minY, y)
		maxX = math.Max(maxX, x)
		maxY = math.Max(maxY, y)
	}
	for _, seg := range outline.Segments {
		switch seg.Op {
		case ot.SegmentOpMoveTo, ot.SegmentOpLineTo:
			visit(seg.Args[0])
		case ot.SegmentOpQuadTo:
			visit(seg.Args[0])
			visit(seg.Args[1])
		case ot.SegmentOpCubeTo:
			visit(seg.Args[0])
			visit(seg.Args[1])
			visit(seg.Args[2])
		}
	}

	left := int(math.Floor(minX))
	top := int(math.Floor(minY))
	width := int(math.Ceil(maxX)) - left
	height := int(math.Ceil(maxY)) - top
	if width <= 0 || height <= 0 {
		return &Bitmap{}
	}

	px := func(p font.SegmentPoint) (float32, float32) {
		x := float64(p.X)*scale + subX - float64(left)
		y := -float64(p.Y)*scale - float64(top)
		return float32(x), float32(y)
	}

	ras := vector.NewRasterizer(width, height)
	ras.DrawOp = draw.Src
	started := false
	for _, seg := range outline.Segments {
		switch seg.Op {
		case ot.SegmentOpMoveTo:
			if started {
				ras.ClosePath()
			}
			x, y := px(seg.Args[0])
			ras.MoveTo(x, y)
			started = true
		case ot.SegmentOpLineTo:
			x, y := px(seg.Args[0])
			ras.LineTo(x, y)
		case ot.SegmentOpQuadTo:
			cx, cy := px(seg.Args[0])
			x, y := px(seg.Args[1])
			ras.QuadTo(cx, cy, x, y)
		case ot.SegmentOpCubeTo:
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
		Left:   left,
		Top:    -top,
		Format: FormatMask,
		Pixels: mask.Pix,
	}
}

// rasterizeBitmap decodes an embedded bitmap glyph to premultiplied RGBA.
// The bitmap is used at its stored resolution; the glyph sits on the
// baseline with its left edge at the pen.
func (r *GoTextRasterizer) rasterizeBitmap(g font.GlyphBitmap) *Bitmap {
	if g.Format != font.PNG {
		return nil
	}
	img, err := png.Decode(bytes.NewReader(g.Data))
	if err != nil {
		return nil
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)

	return &Bitmap{
		Width:  b.Dx(),
		Height: b.Dy(),
		Left:   0,
		Top:    b.Dy(),
		Format: FormatColor,
		Pixels: rgba.Pix,
	}
}
