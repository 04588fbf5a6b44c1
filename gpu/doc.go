// Package gpu provides a wgpu-backed backing store for the glyph atlas.
//
// gpu.Texture implements atlas.Texture over a hal.Device and hal.Queue:
// glyph uploads go through Queue.WriteTexture, and atlas growth replaces
// the texture with a larger one. Bind the texture's view in the text
// pipeline and rebind after any Resolve call that grew the atlas.
package gpu
