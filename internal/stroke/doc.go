// Package stroke expands a path into the filled outline a scanline
// rasterizer can fill — the offset-curve step of the engine's stroker
// (spec §4.2, steps 2-4: offset curves, joins, caps). Dash application
// (§4.2 step 1) happens one layer up, in the root package's Stroke/Dash
// types, before a path ever reaches this package: StrokeExpander only
// ever sees the "on" segments a dash pass already split out, so it has
// no dash concept of its own.
//
// # Algorithm overview
//
// Stroke expansion walks the input path once, building two parallel
// offset paths (forward and backward, each offset by width/2
// perpendicular to the local tangent) and reassembles them into one
// closed outline:
//
//  1. Forward path runs in the original direction.
//  2. An end cap connects forward to backward at an open subpath's end.
//  3. Backward path is walked in reverse.
//  4. A start cap connects backward to forward and closes the outline.
//
// Closed subpaths get a join at the closing vertex instead of start/end
// caps, per spec §4.2.
//
// # Line caps
//
//   - LineCapButt: flat cap ending exactly at the endpoint.
//   - LineCapRound: semicircular cap with radius = width/2.
//   - LineCapSquare: square cap extending width/2 beyond the endpoint.
//
// # Line joins
//
//   - LineJoinMiter: sharp corner, falling back to Bevel past MiterLimit.
//   - LineJoinRound: circular arc at the corner.
//   - LineJoinBevel: straight line across the corner.
//
// # Usage
//
//	style := stroke.Stroke{
//	    Width:      2.0,
//	    Cap:        stroke.LineCapRound,
//	    Join:       stroke.LineJoinMiter,
//	    MiterLimit: 4.0,
//	}
//
//	expander := stroke.NewStrokeExpander(style)
//	expander.SetTolerance(0.1) // curve flattening tolerance, device pixels
//
//	inputPath := []stroke.PathElement{
//	    stroke.MoveTo{Point: stroke.Point{X: 0, Y: 0}},
//	    stroke.LineTo{Point: stroke.Point{X: 100, Y: 0}},
//	    stroke.LineTo{Point: stroke.Point{X: 100, Y: 100}},
//	}
//
//	filledPath := expander.Expand(inputPath)
//
// The root package's Context.Stroke wires a Context's current dash/cap/
// join/miter state into a Stroke value and feeds the dash-expanded
// segments through exactly this entry point before filling the result.
//
// # Degenerate input
//
// A zero-length segment contributes no offset geometry and is skipped
// rather than producing a join; a subpath with fewer than two distinct
// points produces no outline at all (spec §7's EmptyInput: degenerate
// strokes produce no output, not an error).
//
// # References
//
// The offset-curve and join construction follows the approach used by
// tiny-skia's path stroker and kurbo's stroke expansion, both cited in
// this package's own comments where the numerics get subtle (the
// miter-limit fallback and the round-join arc approximation in
// particular).
package stroke
