// path_builder.go

package pathkit

import "math"

// PathBuilder provides a fluent interface for path construction.
// All methods return the builder for chaining.
type PathBuilder struct {
	path *Path
}

// BuildPath starts a new path builder.
func BuildPath() *PathBuilder {
	return &PathBuilder{path: NewPath()}
}

// MoveTo moves to a new position.
func (b *PathBuilder) MoveTo(x, y float64) *PathBuilder {
	b.path.MoveTo(x, y)
	return b
}

// LineTo draws a line to a position.
func (b *PathBuilder) LineTo(x, y float64) *PathBuilder {
	b.path.LineTo(x, y)
	return b
}

// QuadTo draws a quadratic Bezier curve.
func (b *PathBuilder) QuadTo(cx, cy, x, y float64) *PathBuilder {
	b.path.QuadraticTo(cx, cy, x, y)
	return b
}

// CubicTo draws a cubic Bezier curve.
func (b *PathBuilder) CubicTo(c1x, c1y, c2x, c2y, x, y float64) *PathBuilder {
	b.path.CubicTo(c1x, c1y, c2x, c2y, x, y)
	return b
}

// Close closes the current subpath.
func (b *PathBuilder) Close() *PathBuilder {
	b.path.Close()
	return b
}

// Rect adds a rectangle to the path.
func (b *PathBuilder) Rect(x, y, w, h float64) *PathBuilder {
	b.path.MoveTo(x, y)
	b.path.LineTo(x+w, y)
	b.path.LineTo(x+w, y+h)
	b.path.LineTo(x, y+h)
	b.path.Close()
	return b
}

// RoundRect adds a rounded rectangle to the path.
func (b *PathBuilder) RoundRect(x, y, w, h, r float64) *PathBuilder {
	// Clamp radius
	r = min(r, min(w, h)/2)
	k := 0.5522847498 * r // Control point distance for circle approximation

	b.path.MoveTo(x+r, y)
	b.path.LineTo(x+w-r, y)
	b.path.CubicTo(x+w-r+k, y, x+w, y+r-k, x+w, y+r)
	b.path.LineTo(x+w, y+h-r)
	b.path.CubicTo(x+w, y+h-r+k, x+w-r+k, y+h, x+w-r, y+h)
	b.path.LineTo(x+r, y+h)
	b.path.CubicTo(x+r-k, y+h, x, y+h-r+k, x, y+h-r)
	b.path.LineTo(x, y+r)
	b.path.CubicTo(x, y+r-k, x+r-k, y, x+r, y)
	b.path.Close()
	return b
}

// Circle adds a circle to the path.
func (b *PathBuilder) Circle(cx, cy, r float64) *PathBuilder {
	return b.Ellipse(cx, cy, r, r)
}

// Ellipse adds an ellipse to the path.
func (b *PathBuilder) Ellipse(cx, cy, rx, ry float64) *PathBuilder {
	kx := 0.5522847498 * rx
	ky := 0.5522847498 * ry

	b.path.MoveTo(cx+rx, cy)
	b.path.CubicTo(cx+rx, cy+ky, cx+kx, cy+ry, cx, cy+ry)
	b.path.CubicTo(cx-kx, cy+ry, cx-rx, cy+ky, cx-rx, cy)
	b.path.CubicTo(cx-rx, cy-ky, cx-kx, cy-ry, cx, cy-ry)
	b.path.CubicTo(cx+kx, cy-ry, cx+rx, cy-ky, cx+rx, cy)
	b.path.Close()
	return b
}

// Arc adds a circular arc from angle1 to angle2 (radians) to the path,
// matching Path.Arc's sweep convention.
func (b *PathBuilder) Arc(cx, cy, r, angle1, angle2 float64) *PathBuilder {
	b.path.Arc(cx, cy, r, angle1, angle2)
	return b
}

// ArcTo adds an arc of the given radius connecting the current point to
// (x2, y2) by way of (x1, y1), in the HTML-canvas tangent-arc convention:
// the arc is tangent to both the segment from the current point to (x1, y1)
// and the segment from (x1, y1) to (x2, y2). With no current point it moves
// to (x1, y1); other degenerate inputs (collinear points or a non-positive
// radius) fall back to a straight line to (x1, y1).
func (b *PathBuilder) ArcTo(x1, y1, x2, y2, radius float64) *PathBuilder {
	if !b.path.HasCurrentPoint() {
		b.path.MoveTo(x1, y1)
		return b
	}
	p0 := b.path.CurrentPoint()

	d0x, d0y := p0.X-x1, p0.Y-y1
	d2x, d2y := x2-x1, y2-y1
	len0 := math.Hypot(d0x, d0y)
	len2 := math.Hypot(d2x, d2y)
	cross := d0x*d2y - d0y*d2x
	if radius <= 0 || len0 == 0 || len2 == 0 || math.Abs(cross) < 1e-12 {
		b.path.LineTo(x1, y1)
		return b
	}
	d0x, d0y = d0x/len0, d0y/len0
	d2x, d2y = d2x/len2, d2y/len2

	// Half the angle between the two tangent segments gives the distance
	// from the corner to each tangency point.
	halfAngle := math.Acos(clampT(d0x*d2x+d0y*d2y)) / 2
	tanDist := radius / math.Tan(halfAngle)

	t0x, t0y := x1+d0x*tanDist, y1+d0y*tanDist
	t2x, t2y := x1+d2x*tanDist, y1+d2y*tanDist

	// Arc center sits along the corner's bisector, radius away from both
	// tangency points.
	bx, by := d0x+d2x, d0y+d2y
	bLen := math.Hypot(bx, by)
	centerDist := math.Hypot(tanDist, radius)
	cx := x1 + bx/bLen*centerDist
	cy := y1 + by/bLen*centerDist

	a0 := math.Atan2(t0y-cy, t0x-cx)
	a1 := math.Atan2(t2y-cy, t2x-cx)
	// Sweep the short way around, in the direction the corner turns.
	sweep := a1 - a0
	for sweep > math.Pi {
		sweep -= 2 * math.Pi
	}
	for sweep < -math.Pi {
		sweep += 2 * math.Pi
	}

	b.path.LineTo(t0x, t0y)
	if sweep >= 0 {
		b.path.Arc(cx, cy, radius, a0, a0+sweep)
	} else {
		b.path.ArcNegative(cx, cy, radius, a0, a0+sweep)
	}
	return b
}

// AddPath appends another path's commands to this builder, optionally
// transformed by m.
func (b *PathBuilder) AddPath(p *Path, m ...Matrix) *PathBuilder {
	src := p
	if len(m) > 0 {
		src = p.Transform(m[0])
	}
	for _, elem := range src.Elements() {
		switch e := elem.(type) {
		case MoveTo:
			b.path.MoveTo(e.Point.X, e.Point.Y)
		case LineTo:
			b.path.LineTo(e.Point.X, e.Point.Y)
		case QuadTo:
			b.path.QuadraticTo(e.Control.X, e.Control.Y, e.Point.X, e.Point.Y)
		case CubicTo:
			b.path.CubicTo(e.Control1.X, e.Control1.Y, e.Control2.X, e.Control2.Y, e.Point.X, e.Point.Y)
		case Close:
			b.path.Close()
		}
	}
	return b
}

// starVertices walks n vertices around (cx, cy) at angleStep radians apart,
// starting at the top (-90deg), calling radiusAt(i) for the radius of each
// vertex. It is the shared layout logic behind Polygon and Star, which
// differ only in how the per-vertex radius is chosen.
func (b *PathBuilder) starVertices(cx, cy float64, n int, angleStep float64, radiusAt func(i int) float64) {
	startAngle := -math.Pi / 2
	for i := 0; i < n; i++ {
		angle := startAngle + float64(i)*angleStep
		r := radiusAt(i)
		x := cx + r*math.Cos(angle)
		y := cy + r*math.Sin(angle)
		if i == 0 {
			b.path.MoveTo(x, y)
		} else {
			b.path.LineTo(x, y)
		}
	}
	b.path.Close()
}

// Polygon adds a regular polygon to the path.
func (b *PathBuilder) Polygon(cx, cy, radius float64, sides int) *PathBuilder {
	if sides < 3 {
		return b
	}
	angleStep := 2 * math.Pi / float64(sides)
	b.starVertices(cx, cy, sides, angleStep, func(int) float64 { return radius })
	return b
}

// Star adds a star shape to the path, alternating between outerRadius and
// innerRadius at each vertex.
func (b *PathBuilder) Star(cx, cy, outerRadius, innerRadius float64, points int) *PathBuilder {
	if points < 3 {
		return b
	}
	angleStep := math.Pi / float64(points)
	b.starVertices(cx, cy, points*2, angleStep, func(i int) float64 {
		if i%2 == 1 {
			return innerRadius
		}
		return outerRadius
	})
	return b
}

// Build returns the constructed path.
func (b *PathBuilder) Build() *Path {
	return b.path
}

// Path returns the constructed path (alias for Build).
func (b *PathBuilder) Path() *Path {
	return b.path
}
