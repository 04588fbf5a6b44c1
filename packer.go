package atlas

// RegionID identifies an allocated region within a Packer.
type RegionID uint32

// Region is a rectangle placed by a Packer inside the atlas texture.
type Region struct {
	ID     RegionID
	X, Y   int
	Width  int
	Height int
}

// Packer places glyph rectangles inside a square atlas of the current side.
//
// Allocate may fail from fragmentation even when total free area would
// suffice. Grow enlarges the packable square to side x side; already placed
// regions must keep their positions, only free space may change.
//
// Not safe for concurrent use.
type Packer interface {
	Allocate(width, height int) (Region, bool)
	Deallocate(id RegionID)
	Grow(side int)
}

// PackPolicy selects the packing strategy for the built-in shelf packer.
type PackPolicy uint8

const (
	// PackTight opens shelves at the exact glyph height. Densest packing
	// for uniform text, but freed slots only fit glyphs of similar height.
	PackTight PackPolicy = iota

	// PackBucketed rounds shelf heights up to the next power of two, so
	// freed slots are reusable across nearby glyph sizes. Slightly more
	// waste per shelf, much better reuse under churn.
	PackBucketed
)

// NewPacker returns a shelf packer for the given policy and initial side.
func NewPacker(policy PackPolicy, side int) *ShelfPacker {
	return NewShelfPacker(side, policy)
}
