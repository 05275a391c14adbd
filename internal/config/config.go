// Package config loads rasterizer tuning knobs from an optional TOML file,
// for use by command-line tools that want to exercise the engine with
// non-default tolerances without recompiling.
package config

import (
	"github.com/BurntSushi/toml"
)

// Tuning holds the rasterizer/stroker defaults a command-line tool may
// want to override. Zero-value Tuning is meaningless; use Defaults() to
// obtain the engine's built-in constants.
type Tuning struct {
	// FlattenTolerance is the maximum perpendicular deviation, in device
	// pixels, a flattened polyline may have from the curve it approximates.
	FlattenTolerance float64 `toml:"flatten_tolerance"`

	// SubScanlineShift controls the rasterizer's sub-pixel precision: the
	// engine samples 1<<SubScanlineShift sub-scanlines per device pixel
	// row.
	SubScanlineShift int `toml:"sub_scanline_shift"`

	// DefaultMiterLimit is the miter-limit ratio new strokes use when the
	// caller hasn't set one explicitly.
	DefaultMiterLimit float64 `toml:"default_miter_limit"`
}

// Defaults returns the tuning values the engine uses when no config file
// is supplied, matching the constants hard-coded elsewhere in the package
// (internal/raster's flattenTolerance and aaShift, and the stroker's
// built-in miter limit of 4.0).
func Defaults() Tuning {
	return Tuning{
		FlattenTolerance:  0.25,
		SubScanlineShift:  2,
		DefaultMiterLimit: 4.0,
	}
}

// Load reads tuning values from a TOML file at path, starting from
// Defaults() so a partial file only overrides the fields it sets.
func Load(path string) (Tuning, error) {
	cfg := Defaults()
	_, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Tuning{}, err
	}
	return cfg, nil
}
