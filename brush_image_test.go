package pathkit

import (
	"image"
	"image/color"
	"testing"
)

// checkerSource builds a small stdlib image.Image with a 2x2 checker of
// red and blue quadrants, used to exercise the x/image/draw normalization
// path in NewImageBrush.
func checkerSource() *image.RGBA {
	src := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			c := color.RGBA{R: 255, A: 255}
			if (x < 2) != (y < 2) {
				c = color.RGBA{B: 255, A: 255}
			}
			src.Set(x, y, c)
		}
	}
	return src
}

func TestNewImageBrushRejectsNilSource(t *testing.T) {
	if _, err := NewImageBrush(nil); err == nil {
		t.Fatal("expected error for nil source image")
	}
}

func TestNewImageBrushSamplesSourcePixels(t *testing.T) {
	brush, err := NewImageBrush(checkerSource(), WithRepeat(RepeatNone))
	if err != nil {
		t.Fatalf("NewImageBrush failed: %v", err)
	}

	topLeft := brush.ColorAt(0.1, 0.1)
	if topLeft.R < 0.5 {
		t.Errorf("top-left sample R = %v, want reddish", topLeft.R)
	}

	topRight := brush.ColorAt(3.5, 0.5)
	if topRight.B < 0.5 {
		t.Errorf("top-right sample B = %v, want bluish", topRight.B)
	}
}

func TestNewImageBrushRepeatTiles(t *testing.T) {
	brush, err := NewImageBrush(checkerSource(), WithRepeat(RepeatTile))
	if err != nil {
		t.Fatalf("NewImageBrush failed: %v", err)
	}

	// One tile to the right should reproduce the same quadrant colors.
	a := brush.ColorAt(0.1, 0.1)
	b := brush.ColorAt(4.1, 0.1)
	if colorDistance(a, b) > 0.05 {
		t.Errorf("repeated tile sample diverged: %v vs %v", a, b)
	}
}

func TestNewImageBrushTileSizeResamples(t *testing.T) {
	brush, err := NewImageBrush(checkerSource(), WithTileSize(16, 16))
	if err != nil {
		t.Fatalf("NewImageBrush with WithTileSize failed: %v", err)
	}
	if brush.pattern.Image().Width() != 16 || brush.pattern.Image().Height() != 16 {
		t.Errorf("resampled pattern size = %dx%d, want 16x16",
			brush.pattern.Image().Width(), brush.pattern.Image().Height())
	}
}

func TestImageBrushFillsContext(t *testing.T) {
	brush, err := NewImageBrush(checkerSource(), WithRepeat(RepeatNone))
	if err != nil {
		t.Fatalf("NewImageBrush failed: %v", err)
	}

	dc, _ := NewContext(100, 100)
	dc.SetFillBrush(brush)
	dc.DrawRectangle(0, 0, 100, 100)
	dc.Fill()

	topLeft := dc.pixmap.GetPixel(0, 0)
	topRight := dc.pixmap.GetPixel(3, 0)
	if colorDistance(topLeft, topRight) < 0.3 {
		t.Error("image brush fill shows no variation across quadrants")
	}
}

func TestNewImageBrushFromBuf(t *testing.T) {
	pixels := make([]byte, 4*2*2)
	for i := 0; i < 4; i++ {
		pixels[i*4+0] = 255 // R
		pixels[i*4+3] = 255 // A
	}
	brush, err := NewImageBrushFromBuf(pixels, 2, 2, 8)
	if err != nil {
		t.Fatalf("NewImageBrushFromBuf failed: %v", err)
	}
	c := brush.ColorAt(0.5, 0.5)
	if c.R < 0.9 {
		t.Errorf("sampled R = %v, want ~1.0", c.R)
	}
}
