// Package raster provides scanline rasterization for 2D paths.
// This file implements AlphaRuns for per-scanline coverage (supersampling
// alpha) accumulation.
// Based on tiny-skia's alpha_runs.rs (Android/Skia heritage).
package raster

// AlphaRuns stores per-pixel alpha (coverage) values for a single scanline.
// Coverage is accumulated left-to-right via Add/AddWithCoverage, allowing
// independent composition of several edges into the same row before the
// row is blended to its destination.
type AlphaRuns struct {
	width  int
	alpha  []uint8
	offset int
}

// NewAlphaRuns creates a new AlphaRuns buffer for the given width.
func NewAlphaRuns(width int) *AlphaRuns {
	if width <= 0 {
		width = 1
	}
	return &AlphaRuns{
		width: width,
		alpha: make([]uint8, width),
	}
}

// Width returns the scanline width this buffer was created for.
func (ar *AlphaRuns) Width() int {
	return ar.width
}

// catchOverflow converts an accumulated 0-510 value to 0-255 safely.
// Input value 256 and above maps to 255 (handles overflow from accumulation).
func catchOverflow(alpha uint16) uint8 {
	if alpha > 255 {
		return 255
	}
	return uint8(alpha) //nolint:gosec // bounded above
}

// IsEmpty returns true if the scanline has no non-zero coverage.
func (ar *AlphaRuns) IsEmpty() bool {
	for _, a := range ar.alpha {
		if a != 0 {
			return false
		}
	}
	return true
}

// Reset clears the buffer and the relative-indexing offset for reuse on a
// new scanline.
func (ar *AlphaRuns) Reset() {
	for i := range ar.alpha {
		ar.alpha[i] = 0
	}
	ar.offset = 0
}

// Clear is an alias for Reset.
func (ar *AlphaRuns) Clear() {
	ar.Reset()
}

// SetOffset sets the base index used by subsequent Add/AddWithCoverage calls.
func (ar *AlphaRuns) SetOffset(offset int) {
	ar.offset = offset
}

// GetAlpha returns the accumulated alpha at absolute pixel x, or 0 if x is
// out of bounds.
func (ar *AlphaRuns) GetAlpha(x int) uint8 {
	if x < 0 || x >= ar.width {
		return 0
	}
	return ar.alpha[x]
}

// Add inserts a run of coverage starting at x (relative to the current
// offset), with startAlpha applied to the first pixel (if non-zero),
// middleCount pixels at full coverage (255), and stopAlpha applied to the
// pixel following the middle run (if non-zero).
func (ar *AlphaRuns) Add(x int, startAlpha uint8, middleCount int, stopAlpha uint8) {
	ar.AddWithCoverage(x, startAlpha, middleCount, stopAlpha, 255)
}

// AddWithCoverage is like Add but lets the caller supply the coverage value
// applied to each of the middleCount pixels, instead of full (255) coverage.
//
// x is relative to the base set by SetOffset (0 unless changed). The base
// does not advance on its own; repeated Add calls within the same scanline
// pass absolute pixel positions directly.
func (ar *AlphaRuns) AddWithCoverage(x int, startAlpha uint8, middleCount int, stopAlpha uint8, maxValue uint8) {
	pos := ar.offset + x

	if startAlpha != 0 {
		ar.accumulate(pos, startAlpha)
		pos++
	}

	for i := 0; i < middleCount; i++ {
		ar.accumulate(pos, maxValue)
		pos++
	}

	if stopAlpha != 0 {
		ar.accumulate(pos, stopAlpha)
	}
}

// accumulate adds v to the pixel at x, clamping to 255, if x is in bounds.
func (ar *AlphaRuns) accumulate(x int, v uint8) {
	if x < 0 || x >= ar.width {
		return
	}
	ar.alpha[x] = catchOverflow(uint16(ar.alpha[x]) + uint16(v))
}

// CopyTo copies the accumulated alpha values into dst. If dst is smaller
// than the scanline width, CopyTo is a no-op.
func (ar *AlphaRuns) CopyTo(dst []uint8) {
	if len(dst) < ar.width {
		return
	}
	copy(dst[:ar.width], ar.alpha)
}

// Iter returns an iterator over pixels with non-zero coverage, yielding
// (x, alpha) pairs in ascending x order.
func (ar *AlphaRuns) Iter() func(yield func(x int, alpha uint8) bool) {
	return func(yield func(x int, alpha uint8) bool) {
		for x, a := range ar.alpha {
			if a == 0 {
				continue
			}
			if !yield(x, a) {
				return
			}
		}
	}
}

// AlphaRun describes a maximal run of constant alpha starting at X and
// covering Count pixels.
type AlphaRun struct {
	X     int
	Count int
	Alpha uint8
}

// IterRuns returns an iterator over runs of constant alpha tiling the full
// scanline width, including zero-alpha runs.
func (ar *AlphaRuns) IterRuns() func(yield func(AlphaRun) bool) {
	return func(yield func(AlphaRun) bool) {
		i := 0
		for i < ar.width {
			a := ar.alpha[i]
			j := i + 1
			for j < ar.width && ar.alpha[j] == a {
				j++
			}
			if !yield(AlphaRun{X: i, Count: j - i, Alpha: a}) {
				return
			}
			i = j
		}
	}
}
