// Package pathkit is a standalone, pure-Go 2D vector graphics engine.
//
// # Overview
//
// pathkit renders resolution-independent vector primitives — paths built from
// lines and cubic Bézier curves, arcs, and ellipses — into an in-memory ARGB32
// pixel buffer. It provides anti-aliased scanline rasterization, affine
// transforms, solid/gradient/pattern paint sampling, the full Porter-Duff and
// separable blend-mode set, and arbitrary path-based clipping.
//
// # Quick Start
//
//	import "github.com/pathkit-go/pathkit"
//
//	// Create a drawing context (dc = drawing context convention)
//	dc, err := pathkit.NewContext(512, 512)
//
//	dc.SetFillColor(pathkit.RGB(1, 0, 0))
//	dc.DrawCircle(256, 256, 100)
//	dc.Fill()
//
//	px := dc.Pixmap()
//	_ = px.GetPixel(256, 256)
//
// # Renderers
//
// pathkit is CPU-only: a single software rasterizer implements the entire
// core pipeline. There is no GPU backend and no multi-threaded tiling.
//
// # Architecture
//
// The library is organized into:
//   - Public API: Context, Path, PathBuilder, Paint, Matrix, Point, Pixmap
//   - Internal: path (flattening, boolean ops), raster (scanline AA filler),
//     stroke (offset-curve expansion), clip (mask composition),
//     blend (Porter-Duff/separable compositing), color (sRGB/linear), image
//     (pattern sampling)
//
// # Coordinate System
//
// Uses standard computer graphics coordinates:
//   - Origin (0,0) at top-left
//   - X increases right
//   - Y increases down
//   - Angles in radians, 0 is right, increases counter-clockwise
//
// # Performance
//
// The software rasterizer prioritizes correctness and anti-aliasing quality.
package pathkit
