package atlas

import (
	"errors"
	"fmt"
)

// Sentinel errors for the atlas package.
var (
	// ErrNilRasterizer is returned when constructing an Atlas without a rasterizer.
	ErrNilRasterizer = errors.New("atlas: rasterizer is nil")

	// ErrRepackFailed is returned when the packer cannot re-place the surviving
	// cached glyphs after a growth step. A packer satisfying the Grow contract
	// (free space strictly increases, placed regions keep their positions)
	// never triggers this; ShelfPacker does not.
	ErrRepackFailed = errors.New("atlas: packer could not re-place cached glyphs after growth")
)

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return "atlas: invalid config." + e.Field + ": " + e.Reason
}

// CapacityError is returned by Resolve when a glyph needs space, eviction is
// impossible (every cached glyph is in use this frame), and the atlas is
// already at the device maximum side. It usually means a glyph larger than
// the device's maximum texture dimension, or a frame referencing more glyph
// area than the device can hold.
//
// The cache is left consistent; the caller may skip the glyph or abort.
type CapacityError struct {
	// Width and Height are the dimensions of the glyph that did not fit.
	Width, Height int

	// Side is the current atlas side, equal to MaxSide when this error occurs.
	Side int

	// MaxSide is the device maximum texture side.
	MaxSide int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("atlas: no space for %dx%d glyph: atlas at device maximum %d",
		e.Width, e.Height, e.MaxSide)
}
