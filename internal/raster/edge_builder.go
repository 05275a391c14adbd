// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package raster

import "math"

// EdgeBuilder converts a path (a sequence of verbs and points) into the
// edge lists consumed by CurveAwareAET / AnalyticFiller.
//
// It mirrors tiny-skia's edge-building pass: walk the path's verbs once,
// transform each point, and either keep curves as native QuadraticEdge /
// CubicEdge (for forward-differenced stepping) or flatten them into line
// segments up front, depending on SetFlattenCurves.
type EdgeBuilder struct {
	aaShift       int
	flattenCurves bool

	edges      []CurveEdgeVariant
	lineEdges  []*LineEdge
	quadEdges  []*QuadraticEdge
	cubicEdges []*CubicEdge
	velloLines []VelloLine

	bounds Rect
}

// PathVerb identifies a path command during edge building.
type PathVerb int

const (
	VerbMoveTo PathVerb = iota
	VerbLineTo
	VerbQuadTo
	VerbCubicTo
	VerbClose
)

// PathLike is the minimal path representation EdgeBuilder consumes. It is
// implemented by the root package's Path type via a small adapter, and by
// test fixtures directly.
type PathLike interface {
	IsEmpty() bool
	Verbs() []PathVerb
	Points() []float32
}

// Transform maps path-space coordinates to device space.
type Transform interface {
	Apply(x, y float32) (float32, float32)
}

// IdentityTransform is a Transform that leaves coordinates unchanged.
type IdentityTransform struct{}

// Apply returns x, y unchanged.
func (IdentityTransform) Apply(x, y float32) (float32, float32) {
	return x, y
}

// Rect is an axis-aligned bounding box in device space.
type Rect struct {
	MinX, MinY, MaxX, MaxY float32
}

// IsEmpty reports whether the rect contains no area.
func (r Rect) IsEmpty() bool {
	return r.MinX >= r.MaxX || r.MinY >= r.MaxY
}

// EmptyRect returns a Rect that is empty and whose bounds recede under
// Union, suitable as an accumulator starting point.
func EmptyRect() Rect {
	return Rect{
		MinX: math.MaxFloat32,
		MinY: math.MaxFloat32,
		MaxX: -math.MaxFloat32,
		MaxY: -math.MaxFloat32,
	}
}

func (r *Rect) union(x, y float32) {
	if x < r.MinX {
		r.MinX = x
	}
	if y < r.MinY {
		r.MinY = y
	}
	if x > r.MaxX {
		r.MaxX = x
	}
	if y > r.MaxY {
		r.MaxY = y
	}
}

// VelloLine is a flattened line segment with endpoints normalized so that
// P0.y <= P1.y, matching the layout vello's CPU path stages expect.
type VelloLine struct {
	P0, P1 [2]float32
}

// flattenTolerance bounds the maximum deviation (in device pixels) between
// a flattened curve and its true path.
const flattenTolerance = 0.25

// maxFlattenDepth bounds recursive subdivision so a degenerate curve can't
// recurse indefinitely.
const maxFlattenDepth = 24

// NewEdgeBuilder creates an EdgeBuilder with the given anti-aliasing shift.
// A shift of 0 disables sub-pixel AA scaling; 2 gives 4x sub-pixel
// precision in both axes.
func NewEdgeBuilder(aaShift int) *EdgeBuilder {
	return &EdgeBuilder{
		aaShift: aaShift,
		bounds:  EmptyRect(),
	}
}

// IsEmpty reports whether any edges have been built.
func (eb *EdgeBuilder) IsEmpty() bool {
	return len(eb.edges) == 0
}

// EdgeCount returns the total number of edges (line + quadratic + cubic).
func (eb *EdgeBuilder) EdgeCount() int {
	return len(eb.edges)
}

// LineEdgeCount returns the number of line edges.
func (eb *EdgeBuilder) LineEdgeCount() int {
	return len(eb.lineEdges)
}

// QuadraticEdgeCount returns the number of native (unflattened) quadratic edges.
func (eb *EdgeBuilder) QuadraticEdgeCount() int {
	return len(eb.quadEdges)
}

// CubicEdgeCount returns the number of native (unflattened) cubic edges.
func (eb *EdgeBuilder) CubicEdgeCount() int {
	return len(eb.cubicEdges)
}

// AAShift returns the anti-aliasing shift the builder was created with.
func (eb *EdgeBuilder) AAShift() int {
	return eb.aaShift
}

// SetFlattenCurves controls whether quadratic/cubic verbs are flattened
// into line segments (true) or kept as native curve edges (false).
// It also controls whether VelloLines are populated.
func (eb *EdgeBuilder) SetFlattenCurves(flatten bool) {
	eb.flattenCurves = flatten
}

// FlattenCurves reports the current flatten-curves setting.
func (eb *EdgeBuilder) FlattenCurves() bool {
	return eb.flattenCurves
}

// Bounds returns the accumulated bounding box of all points seen so far.
func (eb *EdgeBuilder) Bounds() Rect {
	return eb.bounds
}

// Reset clears all edges and bounds for reuse.
func (eb *EdgeBuilder) Reset() {
	eb.edges = eb.edges[:0]
	eb.lineEdges = eb.lineEdges[:0]
	eb.quadEdges = eb.quadEdges[:0]
	eb.cubicEdges = eb.cubicEdges[:0]
	eb.velloLines = eb.velloLines[:0]
	eb.bounds = EmptyRect()
}

// BuildFromPath walks path's verbs, transforms each point, and appends the
// resulting edges. A nil or empty path leaves the builder unchanged.
func (eb *EdgeBuilder) BuildFromPath(path PathLike, transform Transform) {
	if path == nil || path.IsEmpty() {
		return
	}

	verbs := path.Verbs()
	points := path.Points()
	idx := 0

	var startX, startY, curX, curY float32
	haveStart := false

	nextPoint := func() (float32, float32) {
		x, y := points[idx], points[idx+1]
		idx += 2
		return transform.Apply(x, y)
	}

	for _, verb := range verbs {
		switch verb {
		case VerbMoveTo:
			x, y := nextPoint()
			curX, curY = x, y
			startX, startY = x, y
			haveStart = true
			eb.bounds.union(x, y)

		case VerbLineTo:
			x, y := nextPoint()
			eb.bounds.union(x, y)
			eb.addLine(curX, curY, x, y)
			curX, curY = x, y

		case VerbQuadTo:
			cx, cy := nextPoint()
			ex, ey := nextPoint()
			eb.bounds.union(cx, cy)
			eb.bounds.union(ex, ey)
			eb.addQuad(curX, curY, cx, cy, ex, ey)
			curX, curY = ex, ey

		case VerbCubicTo:
			c1x, c1y := nextPoint()
			c2x, c2y := nextPoint()
			ex, ey := nextPoint()
			eb.bounds.union(c1x, c1y)
			eb.bounds.union(c2x, c2y)
			eb.bounds.union(ex, ey)
			eb.addCubic(curX, curY, c1x, c1y, c2x, c2y, ex, ey)
			curX, curY = ex, ey

		case VerbClose:
			if haveStart && (curX != startX || curY != startY) {
				eb.addLine(curX, curY, startX, startY)
			}
			curX, curY = startX, startY
		}
	}
}

func (eb *EdgeBuilder) addLine(x0, y0, x1, y1 float32) {
	if eb.flattenCurves {
		eb.addVelloLine(x0, y0, x1, y1)
	}

	ev := NewLineEdgeVariant(CurvePoint{X: x0, Y: y0}, CurvePoint{X: x1, Y: y1}, eb.aaShift)
	if ev == nil {
		return
	}
	eb.edges = append(eb.edges, *ev)
	eb.lineEdges = append(eb.lineEdges, ev.Line)
}

func (eb *EdgeBuilder) addVelloLine(x0, y0, x1, y1 float32) {
	p0 := [2]float32{x0, y0}
	p1 := [2]float32{x1, y1}
	if p0[1] > p1[1] {
		p0, p1 = p1, p0
	}
	eb.velloLines = append(eb.velloLines, VelloLine{P0: p0, P1: p1})
}

func (eb *EdgeBuilder) addQuad(x0, y0, cx, cy, x1, y1 float32) {
	if eb.flattenCurves {
		flattenQuadTo(x0, y0, cx, cy, x1, y1, 0, eb.addLine)
		return
	}

	// Split at the Y extremum so each native edge is monotonic in Y; the
	// halves' control points are snapped to the extremum's Y.
	if den := y0 - 2*cy + y1; den != 0 {
		if t := (y0 - cy) / den; t > 0 && t < 1 {
			q0x := x0 + (cx-x0)*t
			q1x := cx + (x1-cx)*t
			mx := q0x + (q1x-q0x)*t
			my := (1-t)*(1-t)*y0 + 2*(1-t)*t*cy + t*t*y1
			eb.addQuad(x0, y0, q0x, my, mx, my)
			eb.addQuad(mx, my, q1x, my, x1, y1)
			return
		}
	}

	ev := NewQuadraticEdgeVariant(
		CurvePoint{X: x0, Y: y0},
		CurvePoint{X: cx, Y: cy},
		CurvePoint{X: x1, Y: y1},
		eb.aaShift,
	)
	if ev == nil {
		return
	}
	eb.edges = append(eb.edges, *ev)
	eb.quadEdges = append(eb.quadEdges, ev.Quadratic)
}

func (eb *EdgeBuilder) addCubic(x0, y0, c1x, c1y, c2x, c2y, x1, y1 float32) {
	if eb.flattenCurves {
		flattenCubicTo(x0, y0, c1x, c1y, c2x, c2y, x1, y1, 0, eb.addLine)
		return
	}

	ev := NewCubicEdgeVariant(
		CurvePoint{X: x0, Y: y0},
		CurvePoint{X: c1x, Y: c1y},
		CurvePoint{X: c2x, Y: c2y},
		CurvePoint{X: x1, Y: y1},
		eb.aaShift,
	)
	if ev == nil {
		return
	}
	eb.edges = append(eb.edges, *ev)
	eb.cubicEdges = append(eb.cubicEdges, ev.Cubic)
}

// AllEdges returns an iterator over all edges sorted ascending by top Y.
// Sorting happens once per call; callers that need repeated iteration
// should collect the results rather than calling AllEdges() in a loop.
func (eb *EdgeBuilder) AllEdges() func(yield func(CurveEdgeVariant) bool) {
	sorted := make([]CurveEdgeVariant, len(eb.edges))
	copy(sorted, eb.edges)
	insertionSortByTopY(sorted)

	return func(yield func(CurveEdgeVariant) bool) {
		for _, e := range sorted {
			if !yield(e) {
				return
			}
		}
	}
}

// LineEdges returns an iterator over the builder's native line edges, in
// the order they were added.
func (eb *EdgeBuilder) LineEdges() func(yield func(*LineEdge) bool) {
	return func(yield func(*LineEdge) bool) {
		for _, le := range eb.lineEdges {
			if !yield(le) {
				return
			}
		}
	}
}

// VelloLines returns the flattened line segments gathered while
// SetFlattenCurves(true) was in effect, normalized so each P0.y <= P1.y.
func (eb *EdgeBuilder) VelloLines() []VelloLine {
	return eb.velloLines
}

// insertionSortByTopY sorts small-to-medium edge lists by TopY(). Edge
// counts per path are typically in the tens to low hundreds, where
// insertion sort's low overhead beats a general-purpose sort.
func insertionSortByTopY(edges []CurveEdgeVariant) {
	for i := 1; i < len(edges); i++ {
		e := edges[i]
		topY := e.TopY()
		j := i - 1
		for j >= 0 && edges[j].TopY() > topY {
			edges[j+1] = edges[j]
			j--
		}
		edges[j+1] = e
	}
}

// flattenQuadTo recursively subdivides a quadratic Bezier into line
// segments, emitting each via addLine. Ported from the same
// distance-to-chord flatness test used by the path package's flattener.
func flattenQuadTo(x0, y0, cx, cy, x1, y1 float32, depth int, addLine func(ax, ay, bx, by float32)) {
	if depth >= maxFlattenDepth || quadIsFlat(x0, y0, cx, cy, x1, y1) {
		addLine(x0, y0, x1, y1)
		return
	}

	// de Casteljau subdivision at t=0.5.
	q0x, q0y := lerp(x0, y0, cx, cy)
	q1x, q1y := lerp(cx, cy, x1, y1)
	mx, my := lerp(q0x, q0y, q1x, q1y)

	flattenQuadTo(x0, y0, q0x, q0y, mx, my, depth+1, addLine)
	flattenQuadTo(mx, my, q1x, q1y, x1, y1, depth+1, addLine)
}

func quadIsFlat(x0, y0, cx, cy, x1, y1 float32) bool {
	return distanceToChord(cx, cy, x0, y0, x1, y1) < flattenTolerance
}

// flattenCubicTo recursively subdivides a cubic Bezier into line segments.
func flattenCubicTo(x0, y0, c1x, c1y, c2x, c2y, x1, y1 float32, depth int, addLine func(ax, ay, bx, by float32)) {
	if depth >= maxFlattenDepth || cubicIsFlat(x0, y0, c1x, c1y, c2x, c2y, x1, y1) {
		addLine(x0, y0, x1, y1)
		return
	}

	q0x, q0y := lerp(x0, y0, c1x, c1y)
	q1x, q1y := lerp(c1x, c1y, c2x, c2y)
	q2x, q2y := lerp(c2x, c2y, x1, y1)
	r0x, r0y := lerp(q0x, q0y, q1x, q1y)
	r1x, r1y := lerp(q1x, q1y, q2x, q2y)
	sx, sy := lerp(r0x, r0y, r1x, r1y)

	flattenCubicTo(x0, y0, q0x, q0y, r0x, r0y, sx, sy, depth+1, addLine)
	flattenCubicTo(sx, sy, r1x, r1y, q2x, q2y, x1, y1, depth+1, addLine)
}

func cubicIsFlat(x0, y0, c1x, c1y, c2x, c2y, x1, y1 float32) bool {
	d1 := distanceToChord(c1x, c1y, x0, y0, x1, y1)
	d2 := distanceToChord(c2x, c2y, x0, y0, x1, y1)
	d := d1
	if d2 > d {
		d = d2
	}
	return d < flattenTolerance
}

func lerp(ax, ay, bx, by float32) (float32, float32) {
	return (ax + bx) / 2, (ay + by) / 2
}

// distanceToChord returns the perpendicular distance from p to the infinite
// line through a and b (or the distance to a, if a and b coincide).
func distanceToChord(px, py, ax, ay, bx, by float32) float32 {
	dx := bx - ax
	dy := by - ay
	lenSq := dx*dx + dy*dy
	if lenSq < 1e-12 {
		ex := px - ax
		ey := py - ay
		return float32(math.Sqrt(float64(ex*ex + ey*ey)))
	}
	// Cross product magnitude / chord length = perpendicular distance.
	cross := (px-ax)*dy - (py-ay)*dx
	return float32(math.Sqrt(float64(cross*cross)) / math.Sqrt(float64(lenSq)))
}

// combineResult describes how combineVertical merged two vertical edges.
type combineResult int

const (
	// combineNo means the edges could not be merged.
	combineNo combineResult = iota
	// combinePartial means last was extended/truncated to absorb edge.
	combinePartial
	// combineTotal means the edges fully cancel (opposite winding, same Y range).
	combineTotal
)

// combineVertical attempts to merge edge into last, the most recently
// built vertical edge at the same X. Both must have DX == 0 (a slanted
// edge never combines) and the same X position. This is the same
// optimization tiny-skia applies when adjacent path segments produce
// collinear vertical edges, e.g. axis-aligned rectangles sharing a
// corner, collapsing them into a single AET entry.
//
// last is mutated in place when combinePartial is returned.
func combineVertical(edge, last *LineEdge) combineResult {
	if edge.DX != 0 || last.DX != 0 {
		return combineNo
	}
	if edge.X != last.X {
		return combineNo
	}

	if edge.Winding == last.Winding {
		switch {
		case edge.FirstY == last.LastY+1:
			last.LastY = edge.LastY
			return combinePartial
		case edge.LastY+1 == last.FirstY:
			last.FirstY = edge.FirstY
			return combinePartial
		default:
			return combineNo
		}
	}

	// Opposite winding: the edges' coverage cancels where they overlap.
	switch {
	case edge.FirstY == last.FirstY && edge.LastY == last.LastY:
		return combineTotal
	case edge.FirstY == last.FirstY:
		if edge.LastY < last.LastY {
			last.FirstY = edge.LastY + 1
		} else {
			last.LastY = edge.LastY
			last.Winding = edge.Winding
		}
		return combinePartial
	case edge.LastY == last.LastY:
		if edge.FirstY > last.FirstY {
			last.LastY = edge.FirstY - 1
		} else {
			last.FirstY = edge.FirstY
			last.Winding = edge.Winding
		}
		return combinePartial
	default:
		return combineNo
	}
}
