// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package raster

// AAPixmap is satisfied by pixmaps that support anti-aliased blending via
// per-pixel coverage, in addition to the opaque Pixmap methods used by the
// non-AA fill path.
type AAPixmap interface {
	Pixmap
	BlendPixelAlpha(x, y int, c RGBA, alpha uint8)
}

// aaShift controls the sub-pixel precision used when building edges for
// analytic anti-aliasing. A shift of 2 gives 4 sub-pixel steps per axis,
// matching the precision the edge builder's own tests exercise.
const aaShift = 2

// polylinePath adapts an already-flattened polyline (as produced by
// path.Flatten) to the PathLike interface EdgeBuilder consumes: a single
// MoveTo followed by a LineTo per remaining point.
type polylinePath struct {
	points []float32
	verbs  []PathVerb
}

func newPolylinePath(points []Point) *polylinePath {
	pp := &polylinePath{
		points: make([]float32, 0, len(points)*2),
		verbs:  make([]PathVerb, 0, len(points)),
	}
	for i, p := range points {
		pp.points = append(pp.points, float32(p.X), float32(p.Y))
		if i == 0 {
			pp.verbs = append(pp.verbs, VerbMoveTo)
		} else {
			pp.verbs = append(pp.verbs, VerbLineTo)
		}
	}
	return pp
}

func (pp *polylinePath) IsEmpty() bool     { return len(pp.verbs) == 0 }
func (pp *polylinePath) Verbs() []PathVerb { return pp.verbs }
func (pp *polylinePath) Points() []float32 { return pp.points }

// FillAA rasterizes a filled path with analytic anti-aliasing, blending
// coverage-weighted color into the pixmap scanline by scanline.
func (r *Rasterizer) FillAA(pixmap AAPixmap, points []Point, fillRule FillRule, color RGBA) {
	if len(points) < 2 {
		return
	}

	eb := NewEdgeBuilder(aaShift)
	eb.BuildFromPath(newPolylinePath(points), IdentityTransform{})
	if eb.IsEmpty() {
		return
	}

	filler := NewAnalyticFiller(r.width, r.height)
	filler.Fill(eb, fillRule, func(y int, runs *AlphaRuns) {
		// Route each scanline's coverage through the span pipeline:
		// viewport clip, merge, and full-coverage coalescing.
		spans := RunSpanPipeline(SpansFromAlphaRuns(y, runs), r.width, r.height)
		for _, s := range spans {
			for x := s.X; x < s.X+s.Length; x++ {
				pixmap.BlendPixelAlpha(x, s.Y, color, s.Coverage)
			}
		}
	})
}
