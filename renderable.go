package atlas

import "image/color"

// RenderableGlyph is everything needed to draw one cached glyph: where its
// pixels live in the atlas texture and how to place and color them.
//
// The UV rectangle is computed from the atlas side at resolve time, so it is
// valid only until the next Resolve call that grows or evicts. Callers draw
// within the frame and re-resolve next frame.
type RenderableGlyph struct {
	// Texture is the atlas backing store holding the glyph pixels.
	Texture Texture

	// U0, V0, U1, V1 are the normalized texture coordinates of the glyph
	// rectangle, top-left to bottom-right.
	U0, V0, U1, V1 float32

	// Width and Height are the glyph bitmap dimensions in pixels.
	Width, Height int

	// Left and Top are the bearings from the pen position, as in Bitmap.
	Left, Top int

	// Colorable reports whether the glyph is a coverage mask that should
	// be tinted with the text color. Color glyphs keep their own colors.
	Colorable bool
}

// Origin returns the top-left pixel position to draw the glyph at for a pen
// at (penX, penY), with penY on the baseline and y growing downward.
func (g *RenderableGlyph) Origin(penX, penY int) (x, y int) {
	return penX + g.Left, penY - g.Top
}

// Tint returns the vertex color to draw the glyph with. Mask glyphs take the
// text color; color glyphs must be drawn untinted, so they get opaque white.
func (g *RenderableGlyph) Tint(text color.RGBA) color.RGBA {
	if g.Colorable {
		return text
	}
	return color.RGBA{R: 255, G: 255, B: 255, A: 255}
}
