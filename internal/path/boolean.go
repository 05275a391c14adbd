package path

import "math"

// BooleanOp names one of the four filled-region set operations.
type BooleanOp int

const (
	// OpUnion keeps material that belongs to either input.
	OpUnion BooleanOp = iota
	// OpIntersection keeps only material covered by both inputs.
	OpIntersection
	// OpDifference keeps material covered by A but not by B.
	OpDifference
	// OpXor keeps material covered by exactly one of the two inputs.
	OpXor
)

const intersectEpsilon = 1e-9

// ring is a closed polygon: consecutive points with an implicit edge from
// the last point back to the first.
type ring []Point

// Union returns the set-union of the filled regions described by a and b.
func Union(a, b []PathElement) []PathElement { return booleanOp(a, b, OpUnion) }

// Intersection returns the set-intersection of the filled regions described
// by a and b.
func Intersection(a, b []PathElement) []PathElement { return booleanOp(a, b, OpIntersection) }

// Difference returns the region covered by a but not by b.
func Difference(a, b []PathElement) []PathElement { return booleanOp(a, b, OpDifference) }

// Xor returns the symmetric difference of the filled regions described by
// a and b.
func Xor(a, b []PathElement) []PathElement { return booleanOp(a, b, OpXor) }

// booleanOp flattens both inputs to polygonal rings, splits every edge at
// every intersection with an edge from the other input, classifies each
// resulting sub-edge by whether its midpoint lies inside the *other*
// input's region, keeps the sub-edges the requested operation calls for,
// and reassembles them into closed contours by walking shared endpoints.
//
// Self-intersecting or degenerate inputs never panic: edges that cannot be
// walked into a closed loop (a dangling chain left by numerical noise) are
// simply dropped from the output, per the "implementation-defined but must
// not panic" contract.
func booleanOp(a, b []PathElement, op BooleanOp) []PathElement {
	ringsA := flattenRings(a)
	ringsB := flattenRings(b)

	edgesA := splitRingsAgainst(ringsA, ringsB)
	edgesB := splitRingsAgainst(ringsB, ringsA)

	var kept []segment
	for _, e := range edgesA {
		mid := e.a.Lerp(e.b, 0.5)
		inside := pointInRings(mid, ringsB)
		if keepEdge(op, inside, false) {
			kept = append(kept, e)
		}
	}
	for _, e := range edgesB {
		mid := e.a.Lerp(e.b, 0.5)
		inside := pointInRings(mid, ringsA)
		if keepEdge(op, inside, true) {
			if op == OpDifference {
				e = segment{a: e.b, b: e.a}
			}
			kept = append(kept, e)
		}
	}

	return assemble(kept)
}

// keepEdge applies the per-operation edge-selection rule.
// fromB is true when the edge under test originated in the second input
// (needed because difference treats A- and B-sourced edges asymmetrically).
func keepEdge(op BooleanOp, insideOther, fromB bool) bool {
	switch op {
	case OpUnion, OpXor:
		return !insideOther
	case OpIntersection:
		return insideOther
	case OpDifference:
		if fromB {
			return insideOther
		}
		return !insideOther
	default:
		return false
	}
}

type segment struct{ a, b Point }

// flattenRings reduces a command stream to one closed polygon per subpath.
// Unlike the package-level Flatten, each subpath is tracked independently so
// that holes and disjoint shapes in the same path remain separate rings.
func flattenRings(elements []PathElement) []ring {
	var rings []ring
	var cur ring
	var start, current Point
	haveStart := false

	flushSubpath := func() {
		if len(cur) >= 2 {
			rings = append(rings, cur)
		}
		cur = nil
	}

	for _, elem := range elements {
		switch e := elem.(type) {
		case MoveTo:
			flushSubpath()
			start = e.Point
			current = e.Point
			haveStart = true
			cur = append(cur, current)
		case LineTo:
			if !haveStart {
				start = current
				haveStart = true
				cur = append(cur, current)
			}
			current = e.Point
			cur = append(cur, current)
		case QuadTo:
			pts := flattenQuadratic(current, e.Control, e.Point, Tolerance)
			cur = append(cur, pts...)
			current = e.Point
		case CubicTo:
			pts := flattenCubic(current, e.Control1, e.Control2, e.Point, Tolerance)
			cur = append(cur, pts...)
			current = e.Point
		case Close:
			current = start
		}
	}
	flushSubpath()
	return rings
}

// splitRingsAgainst returns every edge of rings, subdivided at each point
// it crosses an edge of other.
func splitRingsAgainst(rings []ring, other []ring) []segment {
	var out []segment
	for _, r := range rings {
		n := len(r)
		for i := 0; i < n; i++ {
			p0 := r[i]
			p1 := r[(i+1)%n]
			if p0 == p1 {
				continue
			}
			ts := []float64{0, 1}
			for _, o := range other {
				m := len(o)
				for j := 0; j < m; j++ {
					q0 := o[j]
					q1 := o[(j+1)%m]
					if q0 == q1 {
						continue
					}
					if t, ok := segmentIntersectionParam(p0, p1, q0, q1); ok {
						ts = append(ts, t)
					}
				}
			}
			sortFloats(ts)
			prev := 0.0
			for _, t := range ts[1:] {
				if t-prev < intersectEpsilon {
					continue
				}
				a := p0.Lerp(p1, prev)
				b := p0.Lerp(p1, t)
				if a != b {
					out = append(out, segment{a: a, b: b})
				}
				prev = t
			}
		}
	}
	return out
}

// segmentIntersectionParam returns the parameter t along p0->p1 at which
// the two segments cross, if they do (including touching at an endpoint).
func segmentIntersectionParam(p0, p1, q0, q1 Point) (float64, bool) {
	r := p1.Sub(p0)
	s := q1.Sub(q0)
	rxs := cross(r, s)
	qp := q0.Sub(p0)
	if math.Abs(rxs) < intersectEpsilon {
		return 0, false // parallel or collinear: ignore for this simplified model
	}
	t := cross(qp, s) / rxs
	u := cross(qp, r) / rxs
	if t < -intersectEpsilon || t > 1+intersectEpsilon || u < -intersectEpsilon || u > 1+intersectEpsilon {
		return 0, false
	}
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return t, true
}

func cross(a, b Point) float64 { return a.X*b.Y - a.Y*b.X }

// pointInRings reports whether pt lies inside the region described by
// rings under an even-odd combination across rings (so a second ring
// nested inside the first acts as a hole).
func pointInRings(pt Point, rings []ring) bool {
	odd := false
	for _, r := range rings {
		if rayCrossesRing(pt, r) {
			odd = !odd
		}
	}
	return odd
}

func rayCrossesRing(pt Point, r ring) bool {
	inside := false
	n := len(r)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		pi, pj := r[i], r[j]
		if (pi.Y > pt.Y) != (pj.Y > pt.Y) {
			xIntersect := (pj.X-pi.X)*(pt.Y-pi.Y)/(pj.Y-pi.Y) + pi.X
			if pt.X < xIntersect {
				inside = !inside
			}
		}
	}
	return inside
}

// assemble walks kept segments, chaining endpoint-to-endpoint, into closed
// contours. Segments with no matching continuation are dropped rather than
// causing a panic, satisfying the "no crash on self-intersecting input"
// contract.
func assemble(segs []segment) []PathElement {
	remaining := make([]segment, len(segs))
	copy(remaining, segs)
	used := make([]bool, len(remaining))

	const snapEps = 1e-7
	near := func(a, b Point) bool {
		return math.Abs(a.X-b.X) < snapEps && math.Abs(a.Y-b.Y) < snapEps
	}

	var out []PathElement
	for i := range remaining {
		if used[i] {
			continue
		}
		used[i] = true
		chain := []Point{remaining[i].a, remaining[i].b}
		closed := false

		for {
			tail := chain[len(chain)-1]
			if near(tail, chain[0]) && len(chain) > 2 {
				closed = true
				break
			}
			foundNext := -1
			for j := range remaining {
				if used[j] {
					continue
				}
				if near(remaining[j].a, tail) {
					foundNext = j
					break
				}
				if near(remaining[j].b, tail) {
					remaining[j].a, remaining[j].b = remaining[j].b, remaining[j].a
					foundNext = j
					break
				}
			}
			if foundNext < 0 {
				break
			}
			used[foundNext] = true
			chain = append(chain, remaining[foundNext].b)
		}

		if !closed || len(chain) < 4 {
			continue
		}
		out = append(out, MoveTo{Point: chain[0]})
		for _, p := range chain[1 : len(chain)-1] {
			out = append(out, LineTo{Point: p})
		}
		out = append(out, Close{})
	}
	return out
}

func sortFloats(a []float64) {
	for i := 1; i < len(a); i++ {
		v := a[i]
		j := i - 1
		for j >= 0 && a[j] > v {
			a[j+1] = a[j]
			j--
		}
		a[j+1] = v
	}
}
