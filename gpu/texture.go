package gpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/atlas"
)

// Texture is a square RGBA8 GPU texture implementing atlas.Texture.
//
// Replace destroys the old texture and creates a larger one, so callers
// holding a view must rebind after the atlas grows. Creation errors inside
// Replace are recorded and reported by Err, since the atlas.Texture
// interface has no error returns.
type Texture struct {
	device hal.Device
	queue  hal.Queue
	tex    hal.Texture
	side   int
	label  string
	err    error
}

var _ atlas.Texture = (*Texture)(nil)

// NewTexture creates a side x side RGBA8 texture usable as a sampled
// binding and a copy destination.
func NewTexture(device hal.Device, queue hal.Queue, side int, label string) (*Texture, error) {
	tex, err := createTexture(device, side, label)
	if err != nil {
		return nil, err
	}
	return &Texture{
		device: device,
		queue:  queue,
		tex:    tex,
		side:   side,
		label:  label,
	}, nil
}

func createTexture(device hal.Device, side int, label string) (hal.Texture, error) {
	s := uint32(side) //nolint:gosec // atlas sides are small powers of two
	tex, err := device.CreateTexture(&hal.TextureDescriptor{
		Label:         label,
		Size:          hal.Extent3D{Width: s, Height: s, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Usage:         gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("gpu: create atlas texture: %w", err)
	}
	return tex, nil
}

// Side returns the texture side in pixels.
func (t *Texture) Side() int {
	return t.side
}

// Raw returns the underlying HAL texture, e.g. for creating a view.
// Returns nil after Destroy or a failed Replace.
func (t *Texture) Raw() hal.Texture {
	return t.tex
}

// Err returns the first error recorded by Replace, or nil.
func (t *Texture) Err() error {
	return t.err
}

// WriteRegion uploads a w x h block of RGBA8 pixels at (x, y).
func (t *Texture) WriteRegion(x, y, w, h int, pixels []uint8) {
	if t.tex == nil {
		return
	}
	t.queue.WriteTexture(
		&hal.ImageCopyTexture{
			Texture:  t.tex,
			MipLevel: 0,
			Origin:   hal.Origin3D{X: uint32(x), Y: uint32(y), Z: 0}, //nolint:gosec // coords bounded by side
			Aspect:   gputypes.TextureAspectAll,
		},
		pixels,
		&hal.ImageDataLayout{
			Offset:       0,
			BytesPerRow:  uint32(w * 4), //nolint:gosec // bounded by side
			RowsPerImage: uint32(h),     //nolint:gosec // bounded by side
		},
		&hal.Extent3D{Width: uint32(w), Height: uint32(h), DepthOrArrayLayers: 1}, //nolint:gosec // bounded by side
	)
}

// Replace destroys the current texture, creates a side x side one, and
// uploads the full pixel buffer. On creation failure the old texture is
// gone; the error is recorded in Err and subsequent writes are dropped.
func (t *Texture) Replace(side int, pixels []uint8) {
	if t.tex != nil {
		t.device.DestroyTexture(t.tex)
		t.tex = nil
	}
	tex, err := createTexture(t.device, side, t.label)
	if err != nil {
		t.err = err
		return
	}
	t.tex = tex
	t.side = side
	t.WriteRegion(0, 0, side, side, pixels)
}

// Destroy releases the GPU texture. Idempotent.
func (t *Texture) Destroy() {
	if t.tex != nil {
		t.device.DestroyTexture(t.tex)
		t.tex = nil
	}
}
