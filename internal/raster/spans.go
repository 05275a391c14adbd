// Package raster provides scanline rasterization for 2D paths.
// This file implements the span pipeline: viewport clipping, merging of
// overlapping/adjacent spans, and coalescing of adjacent full-coverage runs.
package raster

// Span is one horizontal run of pixels on scanline Y, starting at column X,
// covering Length pixels at uniform 8-bit Coverage.
type Span struct {
	Y        int
	X        int
	Length   int
	Coverage uint8
}

// SpansFromAlphaRuns converts a scanline's AlphaRuns into Spans, dropping
// zero-coverage runs. This is the rasterizer's bridge from its internal
// per-scanline coverage accumulator into the span representation the rest
// of the pipeline (ClipViewport, MergeSpans, OptimizeSpans) operates on.
func SpansFromAlphaRuns(y int, runs *AlphaRuns) []Span {
	var spans []Span
	for run := range runs.IterRuns() {
		if run.Alpha == 0 {
			continue
		}
		spans = append(spans, Span{Y: y, X: run.X, Length: run.Count, Coverage: run.Alpha})
	}
	return spans
}

// ClipViewport drops spans outside [0, height) in Y and clips each
// remaining span's X range to [0, width), adjusting X and Length. Spans
// reduced to Length <= 0 are dropped.
func ClipViewport(spans []Span, width, height int) []Span {
	out := make([]Span, 0, len(spans))
	for _, s := range spans {
		if s.Y < 0 || s.Y >= height {
			continue
		}
		x0 := s.X
		x1 := s.X + s.Length
		if x0 < 0 {
			x0 = 0
		}
		if x1 > width {
			x1 = width
		}
		if x1 <= x0 {
			continue
		}
		s.X = x0
		s.Length = x1 - x0
		out = append(out, s)
	}
	return out
}

// MergeSpans groups spans by Y, sorts each group by X, and combines spans
// that overlap or touch. Overlapping spans of differing coverage combine
// using the maximum coverage across the overlapped region; this is the
// "coverage-aware" merge policy, an alternative
// to the simpler equal-coverage-only merge (the rasterizer's analytic
// filler already emits disjoint per-scanline spans, so in practice this
// degrades to a no-op pass-through, but MergeSpans still normalizes input
// that may arrive unsorted or with duplicate spans from other producers,
// such as clip-mask construction).
func MergeSpans(spans []Span) []Span {
	if len(spans) == 0 {
		return spans
	}
	byY := make(map[int][]Span)
	ys := make([]int, 0)
	for _, s := range spans {
		if _, ok := byY[s.Y]; !ok {
			ys = append(ys, s.Y)
		}
		byY[s.Y] = append(byY[s.Y], s)
	}
	sortInts(ys)

	out := make([]Span, 0, len(spans))
	for _, y := range ys {
		row := byY[y]
		sortSpansByX(row)
		out = append(out, mergeRow(row)...)
	}
	return out
}

func mergeRow(row []Span) []Span {
	if len(row) == 0 {
		return row
	}
	merged := make([]Span, 0, len(row))
	cur := row[0]
	for _, s := range row[1:] {
		curEnd := cur.X + cur.Length
		if s.X <= curEnd {
			// Overlapping or touching: extend the run and take the max
			// coverage across the combined region.
			newEnd := s.X + s.Length
			if newEnd > curEnd {
				curEnd = newEnd
			}
			if s.Coverage > cur.Coverage {
				cur.Coverage = s.Coverage
			}
			cur.Length = curEnd - cur.X
			continue
		}
		merged = append(merged, cur)
		cur = s
	}
	merged = append(merged, cur)
	return merged
}

// OptimizeSpans scans each scanline for consecutive, adjacent (non
// overlapping, touching) full-coverage (255) spans and combines them into
// one. Input must already be sorted ascending by (Y, X), as produced by
// MergeSpans. This accelerates the per-pixel fill loop by letting the
// caller treat a long full-coverage run as a single plain-store blit.
func OptimizeSpans(spans []Span) []Span {
	if len(spans) == 0 {
		return spans
	}
	out := make([]Span, 0, len(spans))
	cur := spans[0]
	for _, s := range spans[1:] {
		if s.Y == cur.Y && cur.Coverage == 255 && s.Coverage == 255 && s.X == cur.X+cur.Length {
			cur.Length += s.Length
			continue
		}
		out = append(out, cur)
		cur = s
	}
	out = append(out, cur)
	return out
}

// RunSpanPipeline applies ClipViewport, MergeSpans, and OptimizeSpans in
// ascending (y, x) order.
func RunSpanPipeline(spans []Span, width, height int) []Span {
	spans = ClipViewport(spans, width, height)
	spans = MergeSpans(spans)
	spans = OptimizeSpans(spans)
	return spans
}

// sortInts sorts a small slice of scanline indices ascending. A local
// insertion sort avoids pulling in "sort" for what is typically a handful
// of entries per fill call.
func sortInts(a []int) {
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

func sortSpansByX(a []Span) {
	for i := 1; i < len(a); i++ {
		v := a[i]
		j := i - 1
		for j >= 0 && a[j].X > v.X {
			a[j+1] = a[j]
			j--
		}
		a[j+1] = v
	}
}
