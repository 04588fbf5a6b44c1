package atlas

// Config controls atlas creation. The zero value of any field falls back to
// its default, so Config{} behaves like DefaultConfig().
type Config struct {
	// InitialSide is the starting texture side in pixels.
	// Must be a power of two, at least 64. Default 256.
	InitialSide int

	// MaxSide is the device maximum texture side the atlas may grow to.
	// Default 8192. Adjustable later via SetMaxSide.
	MaxSide int

	// Policy selects the built-in packer strategy when Packer is nil.
	Policy PackPolicy

	// Packer overrides the built-in shelf packer. Must be empty and sized
	// to InitialSide.
	Packer Packer

	// Texture overrides the default CPU backing store. Must report
	// Side() == InitialSide.
	Texture Texture
}

// DefaultConfig returns the default atlas configuration: a 256px bucketed
// shelf atlas growable to 8192px with a CPU backing store.
func DefaultConfig() Config {
	return Config{
		InitialSide: 256,
		MaxSide:     8192,
		Policy:      PackBucketed,
	}
}

// Validate checks the configuration, applying defaults to zero values.
func (c *Config) Validate() error {
	if c.InitialSide == 0 {
		c.InitialSide = 256
	}
	if c.MaxSide == 0 {
		c.MaxSide = 8192
	}
	if c.InitialSide < 64 {
		return &ConfigError{Field: "InitialSide", Reason: "must be at least 64"}
	}
	if c.InitialSide&(c.InitialSide-1) != 0 {
		return &ConfigError{Field: "InitialSide", Reason: "must be a power of two"}
	}
	if c.MaxSide < c.InitialSide {
		return &ConfigError{Field: "MaxSide", Reason: "must be at least InitialSide"}
	}
	if c.Texture != nil && c.Texture.Side() != c.InitialSide {
		return &ConfigError{Field: "Texture", Reason: "side must equal InitialSide"}
	}
	return nil
}

// glyphEntry records where a sized glyph lives in the atlas. A nil entry in
// the cache marks an unsized glyph (e.g. a space) so the rasterizer is not
// consulted again.
type glyphEntry struct {
	region    Region
	width     int
	height    int
	left      int
	top       int
	colorable bool
}

// Stats tracks atlas cache activity.
type Stats struct {
	Hits      uint64
	Misses    uint64
	Evictions uint64
	Growths   uint64
}

// HitRate returns the cache hit rate as a percentage.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total) * 100
}

// Atlas is a glyph cache backed by a single growable square texture.
//
// Glyphs are rasterized on first use, packed into the texture, and reused on
// later frames. When space runs out the atlas evicts glyphs not referenced
// this frame, least recently used first; when nothing is evictable it doubles
// the texture side up to the configured maximum.
//
// Not safe for concurrent use. The caller (typically a render loop) resolves
// glyphs, draws, and calls EndFrame, all from one goroutine.
type Atlas struct {
	rasterizer Rasterizer
	packer     Packer
	texture    Texture

	cache *lru[GlyphKey, *glyphEntry]
	inUse map[GlyphKey]struct{}

	side    int
	maxSide int

	stats Stats
}

// New creates an atlas using the given rasterizer and configuration.
func New(rasterizer Rasterizer, config Config) (*Atlas, error) {
	if rasterizer == nil {
		return nil, ErrNilRasterizer
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	packer := config.Packer
	if packer == nil {
		packer = NewPacker(config.Policy, config.InitialSide)
	}
	texture := config.Texture
	if texture == nil {
		texture = NewPixmapTexture(config.InitialSide)
	}

	return &Atlas{
		rasterizer: rasterizer,
		packer:     packer,
		texture:    texture,
		cache:      newLRU[GlyphKey, *glyphEntry](),
		inUse:      make(map[GlyphKey]struct{}),
		side:       config.InitialSide,
		maxSide:    config.MaxSide,
	}, nil
}

// Resolve returns the renderable glyph for key, rasterizing and packing it
// on a cache miss. It returns (nil, nil) when there is nothing to draw: the
// glyph has no pixels (a space) or the rasterizer has no image for the key.
//
// Resolving a glyph marks it in use for the current frame, protecting it
// from eviction until EndFrame. The only error is *CapacityError, when the
// glyph cannot fit even after growing to the device maximum.
func (a *Atlas) Resolve(key GlyphKey) (*RenderableGlyph, error) {
	if entry, ok := a.cache.get(key); ok {
		a.stats.Hits++
		a.inUse[key] = struct{}{}
		if entry == nil {
			return nil, nil
		}
		return a.renderable(entry), nil
	}
	a.stats.Misses++

	bitmap := a.rasterizer.Rasterize(key)
	if bitmap == nil {
		// No image for this key. Not cached: a later font fallback or
		// format change may produce one.
		return nil, nil
	}
	if bitmap.IsEmpty() {
		// Unsized glyph. Cache the absence so the rasterizer is not
		// consulted again.
		a.cache.put(key, nil)
		a.inUse[key] = struct{}{}
		return nil, nil
	}

	for {
		region, ok := a.allocate(bitmap.Width, bitmap.Height)
		if ok {
			a.texture.WriteRegion(region.X, region.Y, bitmap.Width, bitmap.Height, bitmap.RGBA())
			entry := &glyphEntry{
				region:    region,
				width:     bitmap.Width,
				height:    bitmap.Height,
				left:      bitmap.Left,
				top:       bitmap.Top,
				colorable: bitmap.Format == FormatMask,
			}
			a.cache.put(key, entry)
			a.inUse[key] = struct{}{}
			return a.renderable(entry), nil
		}
		if err := a.grow(bitmap.Width, bitmap.Height); err != nil {
			return nil, err
		}
	}
}

// EndFrame clears the frame's in-use protection. Call once per frame after
// drawing; glyphs resolved since the previous call become evictable again.
func (a *Atlas) EndFrame() {
	clear(a.inUse)
}

// SetMaxSide updates the maximum texture side, e.g. after a device change.
// It only moves the ceiling: the atlas never shrinks, so the maximum is
// clamped to at least the current side.
func (a *Atlas) SetMaxSide(side int) {
	if side < a.side {
		side = a.side
	}
	a.maxSide = side
}

// Texture returns the backing store currently holding the atlas pixels.
func (a *Atlas) Texture() Texture {
	return a.texture
}

// Side returns the current atlas side in pixels.
func (a *Atlas) Side() int {
	return a.side
}

// MaxSide returns the maximum side the atlas may grow to.
func (a *Atlas) MaxSide() int {
	return a.maxSide
}

// Len returns the number of cached glyphs, including unsized entries.
func (a *Atlas) Len() int {
	return a.cache.len()
}

// Stats returns a snapshot of the cache counters.
func (a *Atlas) Stats() Stats {
	return a.stats
}

// allocate tries to place a glyph, evicting least recently used glyphs not
// in use this frame until the packer succeeds. Returns false when eviction
// cannot help and the atlas must grow.
func (a *Atlas) allocate(width, height int) (Region, bool) {
	for {
		if region, ok := a.packer.Allocate(width, height); ok {
			return region, true
		}
		key, entry, ok := a.cache.peekLRU()
		if !ok {
			// Empty cache and still no room: the glyph is too large
			// for the current side.
			return Region{}, false
		}
		if _, used := a.inUse[key]; used {
			// The oldest entry is referenced this frame, so every
			// entry is. Eviction cannot free anything.
			return Region{}, false
		}
		a.cache.popLRU()
		a.stats.Evictions++
		if entry != nil {
			a.packer.Deallocate(entry.region.ID)
		}
	}
}

// grow doubles the atlas side (capped at maxSide), then re-rasterizes and
// re-packs every surviving sized glyph into a fresh pixel buffer and
// replaces the backing store. Unsized entries survive untouched.
func (a *Atlas) grow(width, height int) error {
	if a.side >= a.maxSide {
		return &CapacityError{Width: width, Height: height, Side: a.side, MaxSide: a.maxSide}
	}
	newSide := a.side * 2
	if newSide > a.maxSide {
		newSide = a.maxSide
	}
	a.packer.Grow(newSide)

	// Snapshot sized entries most recently used first, so the hottest
	// glyphs get the best placements.
	type survivor struct {
		key   GlyphKey
		entry *glyphEntry
	}
	var survivors []survivor
	a.cache.each(func(key GlyphKey, entry *glyphEntry) bool {
		if entry != nil {
			survivors = append(survivors, survivor{key: key, entry: entry})
		}
		return true
	})

	// Free every old placement before re-packing, so the packer sees the
	// whole grown square as available.
	for _, s := range survivors {
		a.packer.Deallocate(s.entry.region.ID)
	}

	pixels := make([]uint8, newSide*newSide*4)
	for _, s := range survivors {
		bitmap := a.rasterizer.Rasterize(s.key)
		if bitmap.IsEmpty() {
			// The rasterizer no longer produces this glyph. Drop it;
			// a later Resolve re-runs the miss path.
			a.cache.remove(s.key)
			continue
		}
		region, ok := a.packer.Allocate(bitmap.Width, bitmap.Height)
		if !ok {
			return ErrRepackFailed
		}
		s.entry.region = region
		s.entry.width = bitmap.Width
		s.entry.height = bitmap.Height
		s.entry.left = bitmap.Left
		s.entry.top = bitmap.Top
		s.entry.colorable = bitmap.Format == FormatMask
		blit(pixels, newSide, region.X, region.Y, bitmap)
	}

	a.side = newSide
	a.texture.Replace(newSide, pixels)
	a.stats.Growths++
	return nil
}

// renderable builds the draw info for an entry against the current side.
func (a *Atlas) renderable(e *glyphEntry) *RenderableGlyph {
	side := float32(a.side)
	return &RenderableGlyph{
		Texture:   a.texture,
		U0:        float32(e.region.X) / side,
		V0:        float32(e.region.Y) / side,
		U1:        float32(e.region.X+e.width) / side,
		V1:        float32(e.region.Y+e.height) / side,
		Width:     e.width,
		Height:    e.height,
		Left:      e.left,
		Top:       e.top,
		Colorable: e.colorable,
	}
}

// blit copies a bitmap's RGBA pixels into a side-wide destination buffer.
func blit(dst []uint8, dstSide, x, y int, bitmap *Bitmap) {
	src := bitmap.RGBA()
	for row := 0; row < bitmap.Height; row++ {
		srcOff := row * bitmap.Width * 4
		dstOff := ((y+row)*dstSide + x) * 4
		copy(dst[dstOff:dstOff+bitmap.Width*4], src[srcOff:srcOff+bitmap.Width*4])
	}
}
