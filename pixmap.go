package pathkit

import (
	"image"
	"image/color"
	"image/draw"
)

// Compile-time interface checks.
var (
	_ image.Image = (*Pixmap)(nil)
	_ draw.Image  = (*Pixmap)(nil)
)

// Pixmap represents a rectangular pixel buffer.
// It implements both image.Image (read-only) and draw.Image (read-write)
// interfaces, making it compatible with Go's standard image ecosystem
// including text rendering via golang.org/x/image/font.
type Pixmap struct {
	width  int
	height int
	data   []uint8 // RGBA format, 4 bytes per pixel
}

// NewPixmap creates a new pixmap with the given dimensions.
func NewPixmap(width, height int) *Pixmap {
	return &Pixmap{
		width:  width,
		height: height,
		data:   make([]uint8, width*height*4),
	}
}

// NewPixmapWithBuffer creates a pixmap backed by buf instead of a freshly
// allocated slice, letting callers reuse memory across short-lived pixmaps
// (e.g. compositing layers). buf must have exactly width*height*4 bytes.
func NewPixmapWithBuffer(width, height int, buf []uint8) *Pixmap {
	if len(buf) != width*height*4 {
		return NewPixmap(width, height)
	}
	return &Pixmap{
		width:  width,
		height: height,
		data:   buf,
	}
}

// Width returns the width of the pixmap.
func (p *Pixmap) Width() int {
	return p.width
}

// Height returns the height of the pixmap.
func (p *Pixmap) Height() int {
	return p.height
}

// Data returns the raw pixel data (RGBA format).
func (p *Pixmap) Data() []uint8 {
	return p.data
}

// SetPixel sets the color of a single pixel.
func (p *Pixmap) SetPixel(x, y int, c RGBA) {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return
	}
	i := (y*p.width + x) * 4
	p.data[i+0] = uint8(clamp255(c.R * 255))
	p.data[i+1] = uint8(clamp255(c.G * 255))
	p.data[i+2] = uint8(clamp255(c.B * 255))
	p.data[i+3] = uint8(clamp255(c.A * 255))
}

// GetPixel returns the color of a single pixel.
func (p *Pixmap) GetPixel(x, y int) RGBA {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return Transparent
	}
	i := (y*p.width + x) * 4
	return RGBA{
		R: float64(p.data[i+0]) / 255,
		G: float64(p.data[i+1]) / 255,
		B: float64(p.data[i+2]) / 255,
		A: float64(p.data[i+3]) / 255,
	}
}

// GetPixelARGB32 returns the pixel at (x, y) packed into a single 32-bit
// word as (A<<24)|(R<<16)|(G<<8)|B, non-premultiplied — the public pixel
// format the engine documents at its bitmap-access boundary. Out-of-bounds
// reads return 0 (fully transparent), matching GetPixel's OutOfBounds policy.
func (p *Pixmap) GetPixelARGB32(x, y int) uint32 {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return 0
	}
	i := (y*p.width + x) * 4
	r, g, b, a := p.data[i+0], p.data[i+1], p.data[i+2], p.data[i+3]
	return uint32(a)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

// SetPixelARGB32 writes a packed non-premultiplied ARGB32 word
// (A<<24)|(R<<16)|(G<<8)|B to the pixel at (x, y). Out-of-bounds writes are
// a silent no-op, matching SetPixel's OutOfBounds policy.
func (p *Pixmap) SetPixelARGB32(x, y int, argb uint32) {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return
	}
	i := (y*p.width + x) * 4
	p.data[i+0] = uint8(argb >> 16)
	p.data[i+1] = uint8(argb >> 8)
	p.data[i+2] = uint8(argb)
	p.data[i+3] = uint8(argb >> 24)
}

// PixelsARGB32 returns the whole pixmap as non-premultiplied ARGB32 words in
// row-major order, a read-only packed-pixel view of the whole buffer. The
// returned slice is a snapshot; mutating it does not affect the pixmap.
func (p *Pixmap) PixelsARGB32() []uint32 {
	out := make([]uint32, p.width*p.height)
	for i := range out {
		j := i * 4
		r, g, b, a := p.data[j+0], p.data[j+1], p.data[j+2], p.data[j+3]
		out[i] = uint32(a)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b)
	}
	return out
}

// Clear fills the entire pixmap with a color.
func (p *Pixmap) Clear(c RGBA) {
	r := uint8(clamp255(c.R * 255))
	g := uint8(clamp255(c.G * 255))
	b := uint8(clamp255(c.B * 255))
	a := uint8(clamp255(c.A * 255))

	for i := 0; i < len(p.data); i += 4 {
		p.data[i+0] = r
		p.data[i+1] = g
		p.data[i+2] = b
		p.data[i+3] = a
	}
}

// ToImage converts the pixmap to an image.RGBA.
func (p *Pixmap) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, p.width, p.height))
	copy(img.Pix, p.data)
	return img
}

// FromImage creates a pixmap from an image.
func FromImage(img image.Image) *Pixmap {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	pm := NewPixmap(width, height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := img.At(bounds.Min.X+x, bounds.Min.Y+y)
			pm.SetPixel(x, y, FromColor(c))
		}
	}

	return pm
}

// At implements the image.Image interface.
func (p *Pixmap) At(x, y int) color.Color {
	return p.GetPixel(x, y).Color()
}

// Set implements the draw.Image interface.
// This allows Pixmap to be used as a destination for image drawing operations,
// including text rendering via golang.org/x/image/font.
func (p *Pixmap) Set(x, y int, c color.Color) {
	p.SetPixel(x, y, FromColor(c))
}

// Bounds implements the image.Image interface.
func (p *Pixmap) Bounds() image.Rectangle {
	return image.Rect(0, 0, p.width, p.height)
}

// ColorModel implements the image.Image interface.
func (p *Pixmap) ColorModel() color.Model {
	return color.NRGBAModel
}

// FillSpan fills a horizontal span of pixels with a solid color (no blending).
// This is optimized for batch operations when the span is >= 16 pixels.
// The span is from x1 (inclusive) to x2 (exclusive) on row y.
func (p *Pixmap) FillSpan(x1, x2, y int, c RGBA) {
	// Bounds checking
	if y < 0 || y >= p.height {
		return
	}
	if x1 >= x2 {
		return
	}
	if x1 < 0 {
		x1 = 0
	}
	if x2 > p.width {
		x2 = p.width
	}
	if x1 >= x2 {
		return
	}

	// Convert color to bytes once
	r := uint8(clamp255(c.R * 255))
	g := uint8(clamp255(c.G * 255))
	b := uint8(clamp255(c.B * 255))
	a := uint8(clamp255(c.A * 255))

	// Calculate start position in data buffer
	startIdx := (y*p.width + x1) * 4
	length := x2 - x1

	// For short spans (< 16 pixels), use simple loop
	if length < 16 {
		for i := 0; i < length; i++ {
			idx := startIdx + i*4
			p.data[idx+0] = r
			p.data[idx+1] = g
			p.data[idx+2] = b
			p.data[idx+3] = a
		}
		return
	}

	// For longer spans, fill first pixel then copy in batches
	// First pixel
	p.data[startIdx+0] = r
	p.data[startIdx+1] = g
	p.data[startIdx+2] = b
	p.data[startIdx+3] = a

	// Double the pattern until we have at least 16 pixels
	filled := 1
	for filled < 16 && filled < length {
		copyLen := filled
		if filled+copyLen > length {
			copyLen = length - filled
		}
		copy(p.data[startIdx+filled*4:], p.data[startIdx:startIdx+copyLen*4])
		filled += copyLen
	}

	// Copy the 16-pixel pattern to fill the rest
	if filled < length {
		patternSize := filled * 4
		for offset := filled * 4; offset < length*4; {
			copyLen := patternSize
			if offset+copyLen > length*4 {
				copyLen = length*4 - offset
			}
			copy(p.data[startIdx+offset:], p.data[startIdx:startIdx+copyLen])
			offset += copyLen
		}
	}
}

// FillSpanBlend fills a horizontal span, compositing the color source-over
// the existing pixels. Fully opaque colors take the plain-store FillSpan
// path; everything else blends in premultiplied space and converts back to
// the straight-alpha bytes the buffer stores.
func (p *Pixmap) FillSpanBlend(x1, x2, y int, c RGBA) {
	// Bounds checking
	if y < 0 || y >= p.height {
		return
	}
	if x1 >= x2 {
		return
	}
	if x1 < 0 {
		x1 = 0
	}
	if x2 > p.width {
		x2 = p.width
	}
	if x1 >= x2 {
		return
	}

	// If alpha is 1.0 (fully opaque), use direct fill (no blending needed)
	if c.A >= 0.9999 {
		p.FillSpan(x1, x2, y, c)
		return
	}

	// Convert color to premultiplied RGBA bytes once for the whole span.
	sr := uint32(clamp255(c.R * c.A * 255))
	sg := uint32(clamp255(c.G * c.A * 255))
	sb := uint32(clamp255(c.B * c.A * 255))
	sa := uint32(clamp255(c.A * 255))
	invSa := 255 - sa

	length := x2 - x1
	startIdx := (y*p.width + x1) * 4

	for i := 0; i < length; i++ {
		idx := startIdx + i*4
		da := uint32(p.data[idx+3])

		outA := sa + (da*invSa+127)/255
		if outA == 0 {
			p.data[idx+0] = 0
			p.data[idx+1] = 0
			p.data[idx+2] = 0
			p.data[idx+3] = 0
			continue
		}

		// Premultiply the straight-alpha destination, composite, then
		// un-premultiply the result back into straight-alpha storage.
		for ch := 0; ch < 3; ch++ {
			src := sr
			if ch == 1 {
				src = sg
			} else if ch == 2 {
				src = sb
			}
			dPrem := (uint32(p.data[idx+ch])*da + 127) / 255
			outPrem := src + (dPrem*invSa+127)/255
			out := (outPrem*255 + outA/2) / outA
			if out > 255 {
				out = 255
			}
			p.data[idx+ch] = uint8(out) //nolint:gosec // clamped above
		}
		p.data[idx+3] = uint8(outA) //nolint:gosec // bounded by 255
	}
}
