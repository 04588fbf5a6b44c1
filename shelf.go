package atlas

// ShelfPacker packs rectangles into horizontal shelves. Each shelf spans the
// full atlas width at a fixed height; glyphs are placed left to right into
// free spans. Deallocation returns the span to the shelf's free list, merging
// with adjacent free spans.
//
// Growth extends existing shelves to the new width and opens vertical room
// for new shelves below. Placed regions never move.
type ShelfPacker struct {
	side    int
	policy  PackPolicy
	shelves []shelf
	regions map[RegionID]packedRegion
	nextID  RegionID

	usedArea int
}

type shelf struct {
	y      int
	height int
	free   []span
}

// span is a free horizontal run within a shelf.
type span struct {
	x     int
	width int
}

type packedRegion struct {
	shelf  int
	x      int
	width  int
	height int
}

// NewShelfPacker creates a shelf packer for a side x side atlas.
func NewShelfPacker(side int, policy PackPolicy) *ShelfPacker {
	return &ShelfPacker{
		side:    side,
		policy:  policy,
		regions: make(map[RegionID]packedRegion),
		nextID:  1,
	}
}

// Side returns the current packable square side.
func (p *ShelfPacker) Side() int {
	return p.side
}

// UsedArea returns the total area of currently allocated regions in pixels.
func (p *ShelfPacker) UsedArea() int {
	return p.usedArea
}

// Allocate places a width x height rectangle and returns its region.
// Returns false when no shelf has room and no new shelf fits.
func (p *ShelfPacker) Allocate(width, height int) (Region, bool) {
	if width <= 0 || height <= 0 || width > p.side || height > p.side {
		return Region{}, false
	}

	shelfHeight := height
	if p.policy == PackBucketed {
		shelfHeight = nextPow2(height)
	}

	// Try existing shelves first.
	for i := range p.shelves {
		s := &p.shelves[i]
		if height > s.height {
			continue
		}
		if p.policy == PackBucketed && s.height != shelfHeight {
			continue
		}
		if x, ok := s.take(width); ok {
			return p.place(i, x, width, height), true
		}
	}

	// Open a new shelf below the last one.
	y := p.nextShelfY()
	if y+shelfHeight > p.side {
		return Region{}, false
	}
	p.shelves = append(p.shelves, shelf{
		y:      y,
		height: shelfHeight,
		free:   []span{{x: 0, width: p.side}},
	})
	idx := len(p.shelves) - 1
	x, _ := p.shelves[idx].take(width)
	return p.place(idx, x, width, height), true
}

// Deallocate frees the region with the given id. Unknown ids are ignored.
func (p *ShelfPacker) Deallocate(id RegionID) {
	r, ok := p.regions[id]
	if !ok {
		return
	}
	delete(p.regions, id)
	p.usedArea -= r.width * r.height
	p.shelves[r.shelf].release(r.x, r.width)
}

// Grow extends the packable square to side x side. Existing shelves gain the
// new width on their right edge; the space below the last shelf becomes
// available for new shelves. Placed regions keep their positions.
func (p *ShelfPacker) Grow(side int) {
	if side <= p.side {
		return
	}
	extra := side - p.side
	for i := range p.shelves {
		p.shelves[i].release(p.side, extra)
	}
	p.side = side
}

func (p *ShelfPacker) place(shelfIdx, x, width, height int) Region {
	id := p.nextID
	p.nextID++
	p.regions[id] = packedRegion{shelf: shelfIdx, x: x, width: width, height: height}
	p.usedArea += width * height
	return Region{
		ID:     id,
		X:      x,
		Y:      p.shelves[shelfIdx].y,
		Width:  width,
		Height: height,
	}
}

func (p *ShelfPacker) nextShelfY() int {
	y := 0
	for _, s := range p.shelves {
		if end := s.y + s.height; end > y {
			y = end
		}
	}
	return y
}

// take removes a width-wide run from the first free span that fits.
func (s *shelf) take(width int) (int, bool) {
	for i := range s.free {
		f := &s.free[i]
		if f.width < width {
			continue
		}
		x := f.x
		f.x += width
		f.width -= width
		if f.width == 0 {
			s.free = append(s.free[:i], s.free[i+1:]...)
		}
		return x, true
	}
	return 0, false
}

// release returns the run [x, x+width) to the free list, keeping spans
// sorted by x and merging adjacent runs.
func (s *shelf) release(x, width int) {
	if width <= 0 {
		return
	}
	i := 0
	for i < len(s.free) && s.free[i].x < x {
		i++
	}
	s.free = append(s.free, span{})
	copy(s.free[i+1:], s.free[i:])
	s.free[i] = span{x: x, width: width}

	// Merge with the following span.
	if i+1 < len(s.free) && s.free[i].x+s.free[i].width == s.free[i+1].x {
		s.free[i].width += s.free[i+1].width
		s.free = append(s.free[:i+1], s.free[i+2:]...)
	}
	// Merge with the preceding span.
	if i > 0 && s.free[i-1].x+s.free[i-1].width == s.free[i].x {
		s.free[i-1].width += s.free[i].width
		s.free = append(s.free[:i], s.free[i+1:]...)
	}
}

// nextPow2 returns the smallest power of two >= n.
func nextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
