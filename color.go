package pathkit

import (
	"fmt"
	"image/color"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// RGBA represents a color with red, green, blue, and alpha components.
// Each component is in the range [0, 1].
type RGBA struct {
	R, G, B, A float64
}

// Color converts RGBA to the standard color.Color interface.
func (c RGBA) Color() color.Color {
	return color.NRGBA{
		R: uint8(clamp255(c.R * 255)),
		G: uint8(clamp255(c.G * 255)),
		B: uint8(clamp255(c.B * 255)),
		A: uint8(clamp255(c.A * 255)),
	}
}

// RGBA implements the image/color.Color interface, returning
// alpha-premultiplied 16-bit components as required by that interface.
func (c RGBA) RGBA() (r, g, b, a uint32) {
	a = uint32(clamp65535(c.A * 65535))
	r = uint32(clamp65535(c.R * c.A * 65535))
	g = uint32(clamp65535(c.G * c.A * 65535))
	b = uint32(clamp65535(c.B * c.A * 65535))
	return
}

// FromColor converts a standard color.Color to RGBA.
func FromColor(c color.Color) RGBA {
	r, g, b, a := c.RGBA()
	return RGBA{
		R: float64(r) / 65535,
		G: float64(g) / 65535,
		B: float64(b) / 65535,
		A: float64(a) / 65535,
	}
}

// RGB creates an opaque color from RGB components.
func RGB(r, g, b float64) RGBA {
	return RGBA{R: r, G: g, B: b, A: 1.0}
}

// RGBA2 creates a color from RGBA components.
func RGBA2(r, g, b, a float64) RGBA {
	return RGBA{R: r, G: g, B: b, A: a}
}

// Hex creates a color from a hex string.
// Supports formats: "RGB", "RGBA", "RRGGBB", "RRGGBBAA".
// An unsupported format silently returns opaque black; use ParseHex to
// surface the error instead.
func Hex(hex string) RGBA {
	c, err := ParseHex(hex)
	if err != nil {
		return RGBA{R: 0, G: 0, B: 0, A: 1}
	}
	return c
}

// ParseHex parses a hex color string ("RGB", "RGBA", "RRGGBB", or
// "RRGGBBAA", with or without a leading '#') into an RGBA color. An
// unsupported format returns ErrInvalidArgument, per the engine's
// InvalidArgument error taxonomy (construction-time errors surface to the
// caller rather than being handled silently).
func ParseHex(hex string) (RGBA, error) {
	if hex != "" && hex[0] == '#' {
		hex = hex[1:]
	}

	var r, g, b, a uint32
	a = 255

	switch len(hex) {
	case 3: // RGB
		parseHex(hex[0:1], &r)
		parseHex(hex[1:2], &g)
		parseHex(hex[2:3], &b)
		r, g, b = r*17, g*17, b*17
	case 4: // RGBA
		parseHex(hex[0:1], &r)
		parseHex(hex[1:2], &g)
		parseHex(hex[2:3], &b)
		parseHex(hex[3:4], &a)
		r, g, b, a = r*17, g*17, b*17, a*17
	case 6: // RRGGBB
		parseHex(hex[0:2], &r)
		parseHex(hex[2:4], &g)
		parseHex(hex[4:6], &b)
	case 8: // RRGGBBAA
		parseHex(hex[0:2], &r)
		parseHex(hex[2:4], &g)
		parseHex(hex[4:6], &b)
		parseHex(hex[6:8], &a)
	default:
		return RGBA{}, fmt.Errorf("%w: unsupported hex color format %q", ErrInvalidArgument, hex)
	}

	return RGBA{
		R: float64(r) / 255,
		G: float64(g) / 255,
		B: float64(b) / 255,
		A: float64(a) / 255,
	}, nil
}

// parseHex is a helper for hex parsing
func parseHex(s string, val *uint32) {
	*val = 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		*val *= 16
		switch {
		case '0' <= c && c <= '9':
			*val += uint32(c - '0')
		case 'a' <= c && c <= 'f':
			*val += uint32(c - 'a' + 10)
		case 'A' <= c && c <= 'F':
			*val += uint32(c - 'A' + 10)
		default:
			return
		}
	}
}

// Premultiply returns a premultiplied color.
func (c RGBA) Premultiply() RGBA {
	return RGBA{
		R: c.R * c.A,
		G: c.G * c.A,
		B: c.B * c.A,
		A: c.A,
	}
}

// Unpremultiply returns an unpremultiplied color.
func (c RGBA) Unpremultiply() RGBA {
	if c.A == 0 {
		return RGBA{R: 0, G: 0, B: 0, A: 0}
	}
	return RGBA{
		R: c.R / c.A,
		G: c.G / c.A,
		B: c.B / c.A,
		A: c.A,
	}
}

// Lerp performs linear interpolation between two colors.
func (c RGBA) Lerp(other RGBA, t float64) RGBA {
	return RGBA{
		R: c.R + (other.R-c.R)*t,
		G: c.G + (other.G-c.G)*t,
		B: c.B + (other.B-c.B)*t,
		A: c.A + (other.A-c.A)*t,
	}
}

// clamp255 restricts a value to [0, 255] range.
func clamp255(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 255 {
		return 255
	}
	return x
}

// clamp65535 restricts a value to [0, 65535] range.
func clamp65535(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 65535 {
		return 65535
	}
	return x
}

// Common colors
var (
	Black       = RGB(0, 0, 0)
	White       = RGB(1, 1, 1)
	Red         = RGB(1, 0, 0)
	Green       = RGB(0, 1, 0)
	Blue        = RGB(0, 0, 1)
	Yellow      = RGB(1, 1, 0)
	Cyan        = RGB(0, 1, 1)
	Magenta     = RGB(1, 0, 1)
	Transparent = RGBA2(0, 0, 0, 0)
)

// HSL creates a color from HSL values.
// h is hue [0, 360), s is saturation [0, 1], l is lightness [0, 1].
func HSL(h, s, l float64) RGBA {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	c := colorful.Hsl(h, s, l)
	return RGB(c.R, c.G, c.B)
}

// BlendPerceptual blends two colors along the CIE-Lab path, which tracks
// human color perception more closely than a straight sRGB or linear-RGB
// lerp (it avoids the muddy grey/brown midpoints a linear blend produces
// between complementary hues). Used by gradients that opt into perceptual
// interpolation instead of the default linear-sRGB blend.
func BlendPerceptual(c1, c2 RGBA, t float64) RGBA {
	a1 := colorful.Color{R: c1.R, G: c1.G, B: c1.B}
	a2 := colorful.Color{R: c2.R, G: c2.G, B: c2.B}
	blended := a1.BlendLab(a2, t)
	return RGBA{
		R: blended.R,
		G: blended.G,
		B: blended.B,
		A: c1.A + (c2.A-c1.A)*t,
	}
}
