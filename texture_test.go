package atlas

import (
	"image/color"
	"testing"
)

func TestPixmapTexture_WriteRegion(t *testing.T) {
	tex := NewPixmapTexture(8)
	if tex.Side() != 8 {
		t.Fatalf("Side() = %d, want 8", tex.Side())
	}

	// 2x2 block of opaque red at (3, 4).
	block := []uint8{
		255, 0, 0, 255, 255, 0, 0, 255,
		255, 0, 0, 255, 255, 0, 0, 255,
	}
	tex.WriteRegion(3, 4, 2, 2, block)

	red := color.RGBA{R: 255, A: 255}
	if got := tex.At(3, 4); got != red {
		t.Errorf("At(3,4) = %v, want %v", got, red)
	}
	if got := tex.At(4, 5); got != red {
		t.Errorf("At(4,5) = %v, want %v", got, red)
	}
	if got := tex.At(2, 4); got != (color.RGBA{}) {
		t.Errorf("At(2,4) = %v, want transparent", got)
	}
	if got := tex.At(5, 4); got != (color.RGBA{}) {
		t.Errorf("At(5,4) = %v, want transparent", got)
	}
}

func TestPixmapTexture_Replace(t *testing.T) {
	tex := NewPixmapTexture(4)
	pixels := make([]uint8, 8*8*4)
	pixels[0] = 200
	pixels[3] = 255

	tex.Replace(8, pixels)

	if tex.Side() != 8 {
		t.Errorf("Side() = %d after Replace, want 8", tex.Side())
	}
	want := color.RGBA{R: 200, A: 255}
	if got := tex.At(0, 0); got != want {
		t.Errorf("At(0,0) = %v, want %v", got, want)
	}
}

func TestPixmapTexture_Image(t *testing.T) {
	tex := NewPixmapTexture(4)
	tex.WriteRegion(1, 1, 1, 1, []uint8{0, 255, 0, 255})

	img := tex.Image()
	if img.Bounds().Dx() != 4 || img.Bounds().Dy() != 4 {
		t.Fatalf("Image() bounds = %v, want 4x4", img.Bounds())
	}
	if got := img.RGBAAt(1, 1); got != (color.RGBA{G: 255, A: 255}) {
		t.Errorf("Image() pixel (1,1) = %v, want green", got)
	}

	// Snapshot is a copy, not a view.
	tex.WriteRegion(1, 1, 1, 1, []uint8{255, 255, 255, 255})
	if got := img.RGBAAt(1, 1); got != (color.RGBA{G: 255, A: 255}) {
		t.Errorf("snapshot changed after write: %v", got)
	}
}

func TestBitmapRGBA(t *testing.T) {
	mask := &Bitmap{
		Width: 2, Height: 1,
		Format: FormatMask,
		Pixels: []uint8{0, 128},
	}
	rgba := mask.RGBA()
	if len(rgba) != 8 {
		t.Fatalf("len(RGBA()) = %d, want 8", len(rgba))
	}
	for i := 0; i < 4; i++ {
		if rgba[i] != 0 {
			t.Errorf("pixel 0 byte %d = %d, want 0", i, rgba[i])
		}
		if rgba[4+i] != 128 {
			t.Errorf("pixel 1 byte %d = %d, want 128", i, rgba[4+i])
		}
	}

	clr := &Bitmap{
		Width: 1, Height: 1,
		Format: FormatColor,
		Pixels: []uint8{10, 20, 30, 40},
	}
	got := clr.RGBA()
	for i, want := range []uint8{10, 20, 30, 40} {
		if got[i] != want {
			t.Errorf("color byte %d = %d, want %d", i, got[i], want)
		}
	}
}

func TestBitmapIsEmpty(t *testing.T) {
	var nilBitmap *Bitmap
	if !nilBitmap.IsEmpty() {
		t.Error("nil bitmap should be empty")
	}
	if !(&Bitmap{}).IsEmpty() {
		t.Error("zero bitmap should be empty")
	}
	if (&Bitmap{Width: 1, Height: 1, Pixels: []uint8{255}}).IsEmpty() {
		t.Error("1x1 bitmap should not be empty")
	}
}
