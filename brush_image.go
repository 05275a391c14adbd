package pathkit

import (
	stdimage "image"

	xdraw "golang.org/x/image/draw"

	intImage "github.com/pathkit-go/pathkit/internal/image"
)

// PatternRepeat controls how an ImageBrush resolves coordinates that fall
// outside the source image once it has been mapped into pattern space.
type PatternRepeat uint8

const (
	// RepeatNone clamps coordinates outside the image to the nearest edge
	// pixel. The area outside the single tile is not left transparent.
	RepeatNone PatternRepeat = iota

	// RepeatTile repeats the image indefinitely in both axes.
	RepeatTile

	// RepeatReflect mirrors the image at each tile boundary.
	RepeatReflect
)

// ImageBrush paints with a sampled source image, the pattern-fill
// counterpart to SolidBrush and the gradient brushes.
//
// The source image is normalized into an internal RGBA buffer using
// golang.org/x/image/draw's bilinear scaler, so callers may pass any
// image.Image - including ones with a different color model than RGBA -
// and optionally request a resampled tile size.
type ImageBrush struct {
	pattern  *intImage.ImagePattern
	toSample intImage.Affine // device/user space -> pattern UV space
}

// brushMarker implements the sealed Brush interface.
func (*ImageBrush) brushMarker() {}

// ColorAt implements Brush by sampling the underlying pattern.
func (b *ImageBrush) ColorAt(x, y float64) RGBA {
	if b == nil || b.pattern == nil {
		return Transparent
	}
	u, v := b.toSample.TransformPoint(x, y)
	r, g, bl, a := b.pattern.Sample(u, v)
	return RGBA2(float64(r)/255, float64(g)/255, float64(bl)/255, float64(a)/255)
}

// ImageBrushOption configures an ImageBrush at construction time.
type ImageBrushOption func(*imageBrushConfig)

type imageBrushConfig struct {
	repeat  PatternRepeat
	opacity float64
	tileW   int
	tileH   int
	offsetX float64
	offsetY float64
}

// WithRepeat sets how the pattern handles coordinates outside the source
// image bounds. The default is RepeatTile.
func WithRepeat(r PatternRepeat) ImageBrushOption {
	return func(c *imageBrushConfig) { c.repeat = r }
}

// WithPatternOpacity scales the sampled alpha by the given factor,
// clamped to [0, 1].
func WithPatternOpacity(opacity float64) ImageBrushOption {
	return func(c *imageBrushConfig) { c.opacity = opacity }
}

// WithTileSize resamples the source image to width x height pixels, using
// a high-quality bilinear scaler, before it is tiled. A zero width or
// height leaves the source at its native resolution.
func WithTileSize(width, height int) ImageBrushOption {
	return func(c *imageBrushConfig) {
		c.tileW = width
		c.tileH = height
	}
}

// WithPatternOffset shifts the pattern's origin by (dx, dy) device units.
func WithPatternOffset(dx, dy float64) ImageBrushOption {
	return func(c *imageBrushConfig) { c.offsetX, c.offsetY = dx, dy }
}

// NewImageBrush builds an ImageBrush from a standard library image.Image.
//
// The source is converted to a straight-alpha RGBA buffer via
// golang.org/x/image/draw's Scale (ApproxBiLinear quality by default, or a
// resized tile when WithTileSize is given), then wrapped in an internal
// image pattern that handles repeat/reflect addressing and bilinear
// resampling during fills and strokes.
//
// One pattern tile occupies one source pixel per device unit; use
// WithTileSize to change the tile's footprint and WithPatternOffset to
// reposition its origin.
func NewImageBrush(src stdimage.Image, opts ...ImageBrushOption) (*ImageBrush, error) {
	if src == nil {
		return nil, ErrInvalidArgument
	}

	cfg := imageBrushConfig{repeat: RepeatTile, opacity: 1.0}
	for _, opt := range opts {
		opt(&cfg)
	}

	srcBounds := src.Bounds()
	dstW, dstH := srcBounds.Dx(), srcBounds.Dy()
	if cfg.tileW > 0 {
		dstW = cfg.tileW
	}
	if cfg.tileH > 0 {
		dstH = cfg.tileH
	}
	if dstW <= 0 || dstH <= 0 {
		return nil, ErrInvalidArgument
	}

	normalized := stdimage.NewRGBA(stdimage.Rect(0, 0, dstW, dstH))
	xdraw.ApproxBiLinear.Scale(normalized, normalized.Bounds(), src, srcBounds, xdraw.Src, nil)

	return newImageBrush(normalized.Pix, dstW, dstH, normalized.Stride, cfg)
}

// NewImageBrushFromBuf builds an ImageBrush directly from a tightly packed
// RGBA8 pixel buffer. It is exported for callers that already hold decoded
// pixels and want to avoid the stdlib image.Image round trip.
func NewImageBrushFromBuf(pixels []byte, width, height, stride int, opts ...ImageBrushOption) (*ImageBrush, error) {
	cfg := imageBrushConfig{repeat: RepeatTile, opacity: 1.0}
	for _, opt := range opts {
		opt(&cfg)
	}
	return newImageBrush(pixels, width, height, stride, cfg)
}

func newImageBrush(pixels []byte, width, height, stride int, cfg imageBrushConfig) (*ImageBrush, error) {
	buf, err := intImage.FromRaw(pixels, width, height, intImage.FormatRGBA8, stride)
	if err != nil {
		return nil, err
	}

	spread := intImage.SpreadPad
	switch cfg.repeat {
	case RepeatTile:
		spread = intImage.SpreadRepeat
	case RepeatReflect:
		spread = intImage.SpreadReflect
	}

	pattern := intImage.NewImagePattern(buf).
		WithSpreadMode(spread).
		WithInterpolation(intImage.InterpBilinear).
		WithOpacity(cfg.opacity)

	toUV := intImage.Scale(1/float64(width), 1/float64(height)).
		Multiply(intImage.Translate(-cfg.offsetX, -cfg.offsetY))

	return &ImageBrush{pattern: pattern, toSample: toUV}, nil
}
