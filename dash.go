package pathkit

import "math"

// Dash defines a dash pattern for stroking.
// A dash pattern consists of alternating dash and gap lengths.
// For example, [5, 3] creates a pattern of 5 units dash, 3 units gap.
type Dash struct {
	// Array contains alternating dash/gap lengths.
	// If the array has an odd number of elements, it is logically duplicated
	// to create an even-length pattern (e.g., [5] becomes [5, 5]).
	Array []float64

	// Offset is the starting offset into the pattern.
	// The stroke begins at this point in the pattern cycle.
	Offset float64
}

// NewDash creates a dash pattern from alternating dash/gap lengths.
// If an odd number of elements is provided, the pattern is conceptually
// duplicated to create an even-length pattern.
//
// Examples:
//
//	NewDash(5, 3)       // 5 units dash, 3 units gap
//	NewDash(10, 5, 2, 5) // 10 dash, 5 gap, 2 dash, 5 gap
//	NewDash(5)          // equivalent to [5, 5]
//
// Returns nil if no lengths are provided or all lengths are zero.
func NewDash(lengths ...float64) *Dash {
	if len(lengths) == 0 {
		return nil
	}

	// Check if all values are zero or negative
	allZeroOrNeg := true
	for _, l := range lengths {
		if l > 0 {
			allZeroOrNeg = false
			break
		}
	}
	if allZeroOrNeg {
		return nil
	}

	// Take absolute values for any negative lengths
	normalized := make([]float64, len(lengths))
	for i, l := range lengths {
		normalized[i] = math.Abs(l)
	}

	return &Dash{
		Array:  normalized,
		Offset: 0,
	}
}

// WithOffset returns a new Dash with the given offset.
// The offset determines where in the pattern the stroke begins.
func (d *Dash) WithOffset(offset float64) *Dash {
	if d == nil {
		return nil
	}
	return &Dash{
		Array:  d.Array,
		Offset: offset,
	}
}

// PatternLength returns the total length of one complete pattern cycle.
// For odd-length arrays, this includes the duplicated pattern.
func (d *Dash) PatternLength() float64 {
	if d == nil || len(d.Array) == 0 {
		return 0
	}

	var total float64
	for _, l := range d.Array {
		total += l
	}

	// If odd number of elements, pattern is duplicated
	if len(d.Array)%2 != 0 {
		total *= 2
	}

	return total
}

// IsDashed returns true if this represents a dashed line (not solid).
// Returns false for nil Dash or empty/all-zero arrays.
func (d *Dash) IsDashed() bool {
	if d == nil || len(d.Array) == 0 {
		return false
	}

	// Check if any dash has positive length
	for _, l := range d.Array {
		if l > 0 {
			return true
		}
	}
	return false
}

// Clone creates a deep copy of the Dash.
func (d *Dash) Clone() *Dash {
	if d == nil {
		return nil
	}

	arrayCopy := make([]float64, len(d.Array))
	copy(arrayCopy, d.Array)

	return &Dash{
		Array:  arrayCopy,
		Offset: d.Offset,
	}
}

// NormalizedOffset returns the offset normalized to be within one pattern cycle.
// This is useful for calculating where in the pattern a stroke should begin.
func (d *Dash) NormalizedOffset() float64 {
	if d == nil {
		return 0
	}

	patternLen := d.PatternLength()
	if patternLen <= 0 {
		return 0
	}

	offset := math.Mod(d.Offset, patternLen)
	if offset < 0 {
		offset += patternLen
	}
	return offset
}

// Scale returns a new Dash with all lengths multiplied by the given factor.
// This is used to scale dash patterns when a transform is applied to the path.
// Per Cairo/Skia convention, dash lengths are in user-space units, so they
// must be scaled along with the coordinate transform.
func (d *Dash) Scale(factor float64) *Dash {
	if d == nil || factor <= 0 {
		return d
	}

	scaledArray := make([]float64, len(d.Array))
	for i, l := range d.Array {
		scaledArray[i] = l * factor
	}

	return &Dash{
		Array:  scaledArray,
		Offset: d.Offset * factor,
	}
}

// IsDashAt reports whether a given distance along the path (measured from
// the start; Offset is added to it before the pattern lookup) falls within
// a "dash on" segment rather than a gap. Distances beyond PatternLength wrap around the cycle.
func (d *Dash) IsDashAt(distance float64) bool {
	if !d.IsDashed() {
		return true
	}
	arr := d.effectiveArray()
	patternLen := d.PatternLength()
	if patternLen <= 0 {
		return true
	}

	pos := math.Mod(distance+d.Offset, patternLen)
	if pos < 0 {
		pos += patternLen
	}

	on := true
	for _, seg := range arr {
		if pos < seg {
			return on
		}
		pos -= seg
		on = !on
	}
	return on
}

// ApplyToPath splits p into the "on" runs of this dash pattern,
// returning a new path of short subpaths the stroke expander
// can then offset and cap independently. Each subpath of p restarts the
// pattern at the dash's own Offset, matching how SVG/Canvas dash phase
// resets per subpath rather than carrying across a MoveTo.
//
// Curves are flattened to line segments at the given tolerance before
// walking arc length, since dash boundaries fall at arbitrary points along
// a curve that have no closed-form parametrization in arc length; the
// stroke expander re-offsets the resulting polyline the same way it would
// any other line-only path.
func (d *Dash) ApplyToPath(p *Path, tolerance float64) *Path {
	if !d.IsDashed() {
		return p
	}

	out := NewPath()
	for _, sub := range splitSubpaths(p.Elements()) {
		subPath := NewPath()
		for _, elem := range sub {
			switch e := elem.(type) {
			case MoveTo:
				subPath.MoveTo(e.Point.X, e.Point.Y)
			case LineTo:
				subPath.LineTo(e.Point.X, e.Point.Y)
			case QuadTo:
				subPath.QuadraticTo(e.Control.X, e.Control.Y, e.Point.X, e.Point.Y)
			case CubicTo:
				subPath.CubicTo(e.Control1.X, e.Control1.Y, e.Control2.X, e.Control2.Y, e.Point.X, e.Point.Y)
			case Close:
				subPath.Close()
			}
		}
		d.emitDashedPolyline(out, subPath.Flatten(tolerance))
	}
	return out
}

// splitSubpaths groups a flat element list into one slice per subpath,
// each starting at a MoveTo.
func splitSubpaths(elements []PathElement) [][]PathElement {
	var subs [][]PathElement
	var cur []PathElement
	for _, elem := range elements {
		if _, ok := elem.(MoveTo); ok && len(cur) > 0 {
			subs = append(subs, cur)
			cur = nil
		}
		cur = append(cur, elem)
	}
	if len(cur) > 0 {
		subs = append(subs, cur)
	}
	return subs
}

// emitDashedPolyline walks pts by arc length, appending a new MoveTo/LineTo
// subpath to out for each "on" run and breaking the subpath at every "off"
// run so the stroke expander caps each dash independently.
func (d *Dash) emitDashedPolyline(out *Path, pts []Point) {
	if len(pts) < 2 {
		return
	}

	distance := 0.0
	on := d.IsDashAt(0)
	started := false

	for i := 0; i < len(pts)-1; i++ {
		a, b := pts[i], pts[i+1]
		segLen := a.Distance(b)
		if segLen <= 1e-12 {
			continue
		}

		segPos := 0.0
		for segPos < segLen {
			boundary := d.nextBoundary(distance)
			step := boundary - distance
			if remaining := segLen - segPos; step > remaining {
				step = remaining
			}
			if step < 1e-9 {
				step = math.Min(1e-6, segLen-segPos)
			}

			t0 := segPos / segLen
			t1 := (segPos + step) / segLen
			p0 := a.Lerp(b, t0)
			p1 := a.Lerp(b, t1)

			if on {
				if !started {
					out.MoveTo(p0.X, p0.Y)
					started = true
				}
				out.LineTo(p1.X, p1.Y)
			} else {
				started = false
			}

			segPos += step
			distance += step
			if distance >= boundary-1e-9 {
				on = !on
			}
		}
	}
}

// nextBoundary returns the smallest distance greater than distance (in the
// same arc-length frame IsDashAt uses) at which the pattern transitions
// between an "on" run and an "off" run.
func (d *Dash) nextBoundary(distance float64) float64 {
	arr := d.effectiveArray()
	patternLen := d.PatternLength()
	if patternLen <= 0 || len(arr) == 0 {
		return distance + math.MaxFloat64/2
	}

	pos := math.Mod(distance+d.Offset, patternLen)
	if pos < 0 {
		pos += patternLen
	}

	acc := 0.0
	for _, seg := range arr {
		acc += seg
		if pos < acc-1e-9 {
			return distance + (acc - pos)
		}
	}
	return distance + (patternLen - pos) + arr[0]
}

// effectiveArray returns the array with odd-length arrays duplicated.
// This is used internally for pattern iteration.
func (d *Dash) effectiveArray() []float64 {
	if d == nil || len(d.Array) == 0 {
		return nil
	}

	if len(d.Array)%2 == 0 {
		return d.Array
	}

	// Duplicate for odd-length arrays
	result := make([]float64, len(d.Array)*2)
	copy(result, d.Array)
	copy(result[len(d.Array):], d.Array)
	return result
}
