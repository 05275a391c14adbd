// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package raster

import "math"

// Fixed-point arithmetic for scanline rasterization.
//
// Two fixed-point formats are used throughout the curve-aware rasterizer:
//
//   - FDot6:  26.6 fixed point. 6 fractional bits, scale 64. Used for
//     device-space coordinates at sub-pixel precision during edge setup.
//   - FDot16: 16.16 fixed point. 16 fractional bits, scale 65536. Used for
//     forward-differencing coefficients and the AET's current-X tracking,
//     where extra precision avoids error accumulation over many steps.
//
// FDot8 (24.8) shows up only as an intermediate when alpha values need to
// be derived from FDot16 coverage.
//
// These are plain int32 typedefs (not distinct types) so that FDot6 and
// FDot16 values can be mixed with ordinary int32 arithmetic exactly as
// Skia's SkFDot6.h / SkFixed.h do in C++.
type (
	FDot6  = int32
	FDot16 = int32
	FDot8  = int32
)

const (
	// FDot6Shift is the number of fractional bits in FDot6.
	FDot6Shift = 6
	// FDot6One represents the value 1.0 in FDot6.
	FDot6One = 1 << FDot6Shift
	// FDot6Half represents the value 0.5 in FDot6.
	FDot6Half = FDot6One / 2

	// FDot16Shift is the number of fractional bits in FDot16.
	FDot16Shift = 16
	// FDot16One represents the value 1.0 in FDot16.
	FDot16One = 1 << FDot16Shift
	// FDot16Half represents the value 0.5 in FDot16.
	FDot16Half = FDot16One / 2
)

// FDot6FromInt converts an integer to FDot6.
func FDot6FromInt(v int32) FDot6 {
	return v << FDot6Shift
}

// FDot6FromFloat32 converts a float32 to FDot6, rounding to the nearest
// 1/64.
func FDot6FromFloat32(f float32) FDot6 {
	return FDot6(math.Round(float64(f) * FDot6One))
}

// FDot6FromFloat64 converts a float64 to FDot6, rounding to the nearest
// 1/64.
func FDot6FromFloat64(f float64) FDot6 {
	return FDot6(math.Round(f * FDot6One))
}

// FDot6ToFloat32 converts an FDot6 value back to float32.
func FDot6ToFloat32(v FDot6) float32 {
	return float32(v) / FDot6One
}

// FDot6ToFloat64 converts an FDot6 value back to float64.
func FDot6ToFloat64(v FDot6) float64 {
	return float64(v) / FDot6One
}

// FDot6Floor returns the largest integer not greater than v.
func FDot6Floor(v FDot6) int32 {
	return v >> FDot6Shift
}

// FDot6Ceil returns the smallest integer not less than v.
func FDot6Ceil(v FDot6) int32 {
	return -((-v) >> FDot6Shift)
}

// FDot6Round returns v rounded to the nearest integer, halves rounding up.
func FDot6Round(v FDot6) int32 {
	return (v + FDot6Half) >> FDot6Shift
}

// FDot6ToFDot16 upshifts an FDot6 value to FDot16 precision.
func FDot6ToFDot16(v FDot6) FDot16 {
	return leftShift(v, FDot16Shift-FDot6Shift)
}

// FDot6UpShift shifts an FDot6 value left by shift bits, producing an
// FDot16-scale intermediate used by the forward-differencing coefficient
// setup for quadratic and cubic edges.
func FDot6UpShift(v FDot6, shift int) FDot16 {
	return leftShift(v, shift)
}

// FDot6ToFixedDiv2 converts an FDot6 value to FDot16 and halves it. Used
// when the caller needs half of a value already expressed in FDot6.
func FDot6ToFixedDiv2(v FDot6) FDot16 {
	return FDot6ToFDot16(v) / 2
}

// fDot6DivLimit bounds the values FDot6CanConvertToFDot16 accepts.
const fDot6DivLimit = 0x7FFFFFFF >> 10

// FDot6CanConvertToFDot16 reports whether v can be upshifted to FDot16
// scale (10 additional bits) without overflowing int32.
func FDot6CanConvertToFDot16(v FDot6) bool {
	if v < 0 {
		v = -v
	}
	return v <= fDot6DivLimit
}

// FDot6Div divides a by b, returning the quotient as an FDot16 value. If b
// is zero, returns the maximum-magnitude FDot16 value with the sign of a.
func FDot6Div(a, b FDot6) FDot16 {
	if b == 0 {
		if a >= 0 {
			return 0x7FFFFFFF
		}
		return -0x7FFFFFFF
	}
	return FDot16(saturateInt32((int64(a) << FDot16Shift) / int64(b)))
}

// FDot6SmallScale scales a byte value by an FDot6 fraction in [0, 64]
// (i.e. [0.0, 1.0]). Used to scale alpha coverage by a sub-pixel fraction.
func FDot6SmallScale(value uint8, dot6 FDot6) uint8 {
	return uint8((int32(value) * dot6) >> FDot6Shift)
}

// FDot16FromFloat32 converts a float32 to FDot16, saturating on overflow.
func FDot16FromFloat32(f float32) FDot16 {
	return FDot16(saturateInt32(int64(math.Round(float64(f) * FDot16One))))
}

// FDot16FromFloat64 converts a float64 to FDot16, saturating on overflow.
func FDot16FromFloat64(f float64) FDot16 {
	return FDot16(saturateInt32(int64(math.Round(f * FDot16One))))
}

// FDot16ToFloat32 converts an FDot16 value back to float32.
func FDot16ToFloat32(v FDot16) float32 {
	return float32(v) / FDot16One
}

// FDot16ToFloat64 converts an FDot16 value back to float64.
func FDot16ToFloat64(v FDot16) float64 {
	return float64(v) / FDot16One
}

// FDot16FloorToInt returns the largest integer not greater than v.
func FDot16FloorToInt(v FDot16) int32 {
	return v >> FDot16Shift
}

// FDot16CeilToInt returns the smallest integer not less than v.
func FDot16CeilToInt(v FDot16) int32 {
	return -((-v) >> FDot16Shift)
}

// FDot16RoundToInt returns v rounded to the nearest integer.
func FDot16RoundToInt(v FDot16) int32 {
	return (v + FDot16Half) >> FDot16Shift
}

// FDot16Mul multiplies two FDot16 values.
func FDot16Mul(a, b FDot16) FDot16 {
	return FDot16((int64(a) * int64(b)) >> FDot16Shift)
}

// FDot16Div divides numer by denom, returning an FDot16 quotient. If denom
// is zero, returns the maximum-magnitude FDot16 value with the sign of
// numer.
func FDot16Div(numer, denom int32) FDot16 {
	if denom == 0 {
		if numer >= 0 {
			return 0x7FFFFFFF
		}
		return -0x7FFFFFFF
	}
	return FDot16(saturateInt32((int64(numer) << FDot16Shift) / int64(denom)))
}

// FDot16FastDiv divides two FDot6 values, returning an FDot16 quotient.
// Equivalent to FDot6Div; named separately to mirror the fast/slow path
// split in Skia's SkFDot6Div.
func FDot16FastDiv(a, b FDot6) FDot16 {
	return FDot6Div(a, b)
}

// FDot8FromFDot16 converts an FDot16 value to FDot8, rounding to the
// nearest 1/256.
func FDot8FromFDot16(v FDot16) FDot8 {
	return FDot8((v + 0x80) >> 8)
}

// leftShift shifts v left by shift bits. A negative shift performs an
// arithmetic (sign-preserving) right shift instead.
func leftShift(v int32, shift int) int32 {
	if shift >= 0 {
		return v << uint(shift)
	}
	return v >> uint(-shift)
}

// leftShift64 is the int64 equivalent of leftShift.
func leftShift64(v int64, shift int) int64 {
	if shift >= 0 {
		return v << uint(shift)
	}
	return v >> uint(-shift)
}

// saturateInt32 clamps v to the range representable by int32.
func saturateInt32(v int64) int32 {
	if v > math.MaxInt32 {
		return math.MaxInt32
	}
	if v < math.MinInt32 {
		return math.MinInt32
	}
	return int32(v)
}

// absInt32 returns the absolute value of v.
func absInt32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}

// maxInt32 returns the larger of a and b.
func maxInt32(a, b int32) int32 {
	if a > b {
		return a
	}
	return b
}
