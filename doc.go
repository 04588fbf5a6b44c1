// Package atlas implements a glyph atlas cache for GPU text rendering.
//
// An Atlas answers the question a paint pass asks once per visible glyph:
// "where in the texture is the bitmap for this glyph key?" On a hit it
// returns a RenderableGlyph describing the sub-rectangle to sample. On a
// miss it rasterizes the glyph, packs it into the atlas texture, uploads
// the pixels, and caches the result so the next frame is a hit.
//
// Space is reclaimed lazily with an LRU policy: eviction only happens when
// an allocation fails, and never touches a glyph that was resolved during
// the current frame. When every cached glyph is protected and space still
// runs out, the atlas doubles its side (up to a configured device maximum),
// re-rasterizes the surviving glyphs into the larger texture, and retries.
//
// The cache is single-threaded by design. It is meant to be owned and
// driven by one render pass; call EndFrame after painting to release the
// per-frame eviction protection. There is no internal locking.
//
// The three collaborators are interfaces so backends can vary:
//
//   - Rasterizer turns a GlyphKey into a Bitmap. OpentypeRasterizer
//     (golang.org/x/image/font/sfnt) and GoTextRasterizer
//     (go-text/typesetting) are provided.
//   - Packer manages free space inside the square texture. ShelfPacker
//     is provided, selected via the PackPolicy enum.
//   - Texture is the GPU-visible backing store. PixmapTexture is a CPU
//     reference implementation; package gpu provides a wgpu-backed one.
package atlas
