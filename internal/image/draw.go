// Package image provides image buffer management for pathkit-go/pathkit.
package image

import (
	"math"

	blendpkg "github.com/pathkit-go/pathkit/internal/blend"
)

// Rect represents a rectangular region in pixel coordinates.
type Rect struct {
	X, Y          int // Top-left corner
	Width, Height int // Dimensions
}

// IsEmpty reports whether the rectangle has non-positive width or height.
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Contains reports whether pixel (x, y) lies within the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// BlendMode defines how source pixels are blended with destination pixels.
type BlendMode uint8

const (
	// BlendNormal performs standard alpha blending (source over destination).
	BlendNormal BlendMode = iota

	// BlendMultiply multiplies source and destination colors.
	// Result is always darker or equal. Formula: dst * src
	BlendMultiply

	// BlendScreen performs inverse multiply for lighter results.
	// Formula: 1 - (1-dst) * (1-src)
	BlendScreen

	// BlendOverlay combines multiply and screen based on destination brightness.
	// Dark areas are multiplied, bright areas are screened.
	BlendOverlay
)

const unknownBlendMode = "Unknown"

// String returns a string representation of the blend mode.
func (b BlendMode) String() string {
	switch b {
	case BlendNormal:
		return "Normal"
	case BlendMultiply:
		return "Multiply"
	case BlendScreen:
		return "Screen"
	case BlendOverlay:
		return "Overlay"
	default:
		return unknownBlendMode
	}
}

// toInternal maps a DrawImage-facing BlendMode onto the corresponding mode
// in internal/blend, which carries the full Porter-Duff and separable/
// non-separable set, rather than duplicating its compositing math here.
func (b BlendMode) toInternal() blendpkg.BlendMode {
	switch b {
	case BlendMultiply:
		return blendpkg.BlendMultiply
	case BlendScreen:
		return blendpkg.BlendScreen
	case BlendOverlay:
		return blendpkg.BlendOverlay
	default:
		return blendpkg.BlendSourceOver
	}
}

// DrawParams specifies parameters for the DrawImage operation.
type DrawParams struct {
	// SrcRect defines the source rectangle to sample from.
	// If nil, the entire source image is used.
	SrcRect *Rect

	// DstRect defines the destination rectangle to draw into.
	DstRect Rect

	// Transform is an optional affine transformation applied to source coordinates.
	// If nil, identity transform is used.
	Transform *Affine

	// Interp specifies the interpolation mode for sampling.
	Interp InterpolationMode

	// Opacity controls the overall transparency of the source image (0.0 to 1.0).
	// 1.0 means fully opaque, 0.0 means fully transparent.
	Opacity float64

	// BlendMode specifies how to blend source and destination pixels.
	BlendMode BlendMode
}

// DrawImage draws the source image onto the destination image using the specified parameters.
//
// The operation performs the following steps:
//  1. For each pixel in the destination rectangle
//  2. Apply inverse transformation to find source coordinates
//  3. Sample source image using specified interpolation
//  4. Apply opacity to the sampled color
//  5. Blend with destination using specified blend mode
//
// The destination image is modified in place.
func DrawImage(dst, src *ImageBuf, params DrawParams) {
	// Use entire source if no source rect specified
	srcRect := params.SrcRect
	if srcRect == nil {
		w, h := src.Bounds()
		srcRect = &Rect{X: 0, Y: 0, Width: w, Height: h}
	}

	// Use identity transform if none specified
	transform := params.Transform
	if transform == nil {
		identity := Identity()
		transform = &identity
	}

	// Compute inverse transform for mapping dst -> src
	invTransform, ok := transform.Invert()
	if !ok {
		// Singular matrix, cannot draw
		return
	}

	// Clamp opacity to valid range
	opacity := math.Max(0.0, math.Min(1.0, params.Opacity))

	// Get destination bounds
	dstWidth, dstHeight := dst.Bounds()

	// Clamp destination rectangle to image bounds
	dstRect := params.DstRect
	if dstRect.X < 0 {
		dstRect.Width += dstRect.X
		dstRect.X = 0
	}
	if dstRect.Y < 0 {
		dstRect.Height += dstRect.Y
		dstRect.Y = 0
	}
	if dstRect.X+dstRect.Width > dstWidth {
		dstRect.Width = dstWidth - dstRect.X
	}
	if dstRect.Y+dstRect.Height > dstHeight {
		dstRect.Height = dstHeight - dstRect.Y
	}

	// Nothing to draw if clamped rectangle is empty
	if dstRect.Width <= 0 || dstRect.Height <= 0 {
		return
	}

	// Draw each pixel in the destination rectangle
	for dy := 0; dy < dstRect.Height; dy++ {
		for dx := 0; dx < dstRect.Width; dx++ {
			// Destination pixel coordinates (absolute in destination image)
			dstX := dstRect.X + dx
			dstY := dstRect.Y + dy

			// Normalized position within destination rectangle [0, 1]
			// Add 0.5 to sample from pixel centers
			u := (float64(dx) + 0.5) / float64(dstRect.Width)
			v := (float64(dy) + 0.5) / float64(dstRect.Height)

			// Apply inverse transform to find where this maps in source space
			// The transform is meant to map from destination rect coords to source rect coords
			srcRelX, srcRelY := invTransform.TransformPoint(u*float64(dstRect.Width), v*float64(dstRect.Height))

			// Map to source rect space
			srcX := float64(srcRect.X) + srcRelX
			srcY := float64(srcRect.Y) + srcRelY

			// Check if we're outside the source rectangle
			if srcX < float64(srcRect.X) || srcX > float64(srcRect.X+srcRect.Width) ||
				srcY < float64(srcRect.Y) || srcY > float64(srcRect.Y+srcRect.Height) {
				continue
			}

			// Convert to normalized coordinates for the entire source image [0, 1]
			srcWidth, srcHeight := src.Bounds()
			sampleU := srcX / float64(srcWidth)
			sampleV := srcY / float64(srcHeight)

			// Sample source image
			srcR, srcG, srcB, srcA := Sample(src, sampleU, sampleV, params.Interp)

			// Apply opacity
			if opacity < 1.0 {
				srcA = uint8(float64(srcA) * opacity)
			}

			// Get destination pixel
			dstR, dstG, dstB, dstA := dst.GetRGBA(dstX, dstY)

			// Blend and write result
			r, g, b, a := blend(srcR, srcG, srcB, srcA, dstR, dstG, dstB, dstA, params.BlendMode)
			_ = dst.SetRGBA(dstX, dstY, r, g, b, a)
		}
	}
}

// blend blends source and destination colors using the specified blend
// mode, delegating the actual compositing math to internal/blend. That
// package's BlendFunc works in premultiplied-alpha space (the same
// convention internal/blend/advanced.go and context_layer.go's
// compositeLayer use for layer blending), so straight-alpha samples are
// premultiplied going in and unpremultiplied coming back out.
func blend(srcR, srcG, srcB, srcA, dstR, dstG, dstB, dstA uint8, mode BlendMode) (r, g, b, a byte) {
	if srcA == 0 {
		return dstR, dstG, dstB, dstA
	}

	pSr, pSg, pSb := premultiplyChannel(srcR, srcA), premultiplyChannel(srcG, srcA), premultiplyChannel(srcB, srcA)
	pDr, pDg, pDb := premultiplyChannel(dstR, dstA), premultiplyChannel(dstG, dstA), premultiplyChannel(dstB, dstA)

	blendFunc := blendpkg.GetBlendFunc(mode.toInternal())
	rr, rg, rb, ra := blendFunc(pSr, pSg, pSb, srcA, pDr, pDg, pDb, dstA)

	return unpremultiplyChannel(rr, ra), unpremultiplyChannel(rg, ra), unpremultiplyChannel(rb, ra), ra
}

// premultiplyChannel scales a straight-alpha channel by alpha, matching
// ImageBuf.premulPixel's rounding.
func premultiplyChannel(c, a uint8) uint8 {
	return uint8((uint16(c)*uint16(a) + 127) / 255)
}

// unpremultiplyChannel divides a premultiplied channel back out by alpha.
func unpremultiplyChannel(c, a uint8) uint8 {
	if a == 0 {
		return 0
	}
	v := (uint16(c)*255 + uint16(a)/2) / uint16(a)
	if v > 255 {
		v = 255
	}
	return uint8(v)
}
