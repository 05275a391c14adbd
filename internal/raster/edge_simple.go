// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package raster

// Edge is a single monotonic-in-y line segment prepared for scanline
// rasterization: Y extent, the X position at YMin, and the slope dX/dY.
type Edge struct {
	YMin, YMax float32
	XAtYMin    float32
	DXDY       float32
	Winding    int8

	// X is the edge's current X position, tracked by SimpleAET as the
	// active edge table steps from scanline to scanline.
	X float32
}

// NewEdge creates an edge with winding +1, flipping to -1 if the points
// need to be swapped to put YMin before YMax. Returns nil for a
// horizontal (zero-height) segment.
func NewEdge(x0, y0, x1, y1 float32) *Edge {
	return NewEdgeWithWinding(x0, y0, x1, y1, 1)
}

// NewEdgeWithWinding is like NewEdge but lets the caller supply the
// winding direction for the segment as given (before any swap).
func NewEdgeWithWinding(x0, y0, x1, y1 float32, winding int8) *Edge {
	if y0 == y1 {
		return nil
	}

	w := winding
	if y0 > y1 {
		x0, y0, x1, y1 = x1, y1, x0, y0
		w = -w
	}

	dxdy := (x1 - x0) / (y1 - y0)
	return &Edge{
		YMin:    y0,
		YMax:    y1,
		XAtYMin: x0,
		DXDY:    dxdy,
		Winding: w,
		X:       x0,
	}
}

// XAtY returns the X coordinate where this edge crosses the given Y.
func (e *Edge) XAtY(y float32) float32 {
	return e.XAtYMin + (y-e.YMin)*e.DXDY
}

// IsActiveAt reports whether the edge is active at y, using a half-open
// [YMin, YMax) range.
func (e *Edge) IsActiveAt(y float32) bool {
	return y >= e.YMin && y < e.YMax
}

// ContainsY reports whether y falls within the edge's closed [YMin, YMax]
// range.
func (e *Edge) ContainsY(y float32) bool {
	return y >= e.YMin && y <= e.YMax
}

// Height returns the edge's vertical extent.
func (e *Edge) Height() float32 {
	return e.YMax - e.YMin
}

// EdgeList is an unordered (until sorted) collection of edges built from a
// path's line segments.
type EdgeList struct {
	edges []*Edge
}

// NewEdgeList creates an empty edge list.
func NewEdgeList() *EdgeList {
	return &EdgeList{}
}

// Len returns the number of edges in the list.
func (el *EdgeList) Len() int {
	return len(el.edges)
}

// Add appends e to the list. A nil edge (e.g. from a horizontal segment)
// is silently ignored.
func (el *EdgeList) Add(e *Edge) {
	if e == nil {
		return
	}
	el.edges = append(el.edges, e)
}

// AddLine builds an edge from the given segment (winding +1, flipping to
// -1 on swap) and adds it to the list.
func (el *EdgeList) AddLine(x0, y0, x1, y1 float32) {
	el.Add(NewEdge(x0, y0, x1, y1))
}

// SortByYMin sorts the edges in ascending order of YMin.
func (el *EdgeList) SortByYMin() {
	edges := el.edges
	for i := 1; i < len(edges); i++ {
		key := edges[i]
		j := i - 1
		for j >= 0 && edges[j].YMin > key.YMin {
			edges[j+1] = edges[j]
			j--
		}
		edges[j+1] = key
	}
}

// Edges returns the underlying edge slice.
func (el *EdgeList) Edges() []*Edge {
	return el.edges
}

// Bounds returns the bounding rectangle covering every edge's full extent
// (both its top and bottom X position). Returns all zeros for an empty
// list.
func (el *EdgeList) Bounds() (minX, minY, maxX, maxY float32) {
	if len(el.edges) == 0 {
		return 0, 0, 0, 0
	}

	first := el.edges[0]
	minX, maxX = minMaxF32(first.XAtYMin, first.XAtY(first.YMax))
	minY, maxY = first.YMin, first.YMax

	for _, e := range el.edges[1:] {
		exMin, exMax := minMaxF32(e.XAtYMin, e.XAtY(e.YMax))
		if exMin < minX {
			minX = exMin
		}
		if exMax > maxX {
			maxX = exMax
		}
		if e.YMin < minY {
			minY = e.YMin
		}
		if e.YMax > maxY {
			maxY = e.YMax
		}
	}
	return minX, minY, maxX, maxY
}

// Reset clears the list for reuse.
func (el *EdgeList) Reset() {
	el.edges = el.edges[:0]
}

func minMaxF32(a, b float32) (minV, maxV float32) {
	if a < b {
		return a, b
	}
	return b, a
}

// SimpleAET is a minimal active edge table keyed on float32 edges, sorted
// by current X position.
type SimpleAET struct {
	active []*Edge
}

// NewSimpleAET creates an empty active edge table.
func NewSimpleAET() *SimpleAET {
	return &SimpleAET{}
}

// Len returns the number of active edges.
func (a *SimpleAET) Len() int {
	return len(a.active)
}

// InsertEdge inserts e into the table in X-sorted order, initializing its
// current X from XAtYMin. offsetHint is a starting index hint for the
// sorted-insertion scan.
func (a *SimpleAET) InsertEdge(e *Edge, offsetHint int) {
	e.X = e.XAtYMin

	start := offsetHint
	if start < 0 {
		start = 0
	}
	if start > len(a.active) {
		start = len(a.active)
	}

	i := start
	for i < len(a.active) && a.active[i].X < e.X {
		i++
	}

	a.active = append(a.active, nil)
	copy(a.active[i+1:], a.active[i:])
	a.active[i] = e
}

// Active returns the currently active edges, in their current sorted
// order.
func (a *SimpleAET) Active() []*Edge {
	return a.active
}

// UpdateX recomputes each active edge's X position for scanline y.
func (a *SimpleAET) UpdateX(y float32) {
	for _, e := range a.active {
		e.X = e.XAtY(y)
	}
}

// SortByX re-sorts the active edges by their current X position.
func (a *SimpleAET) SortByX() {
	edges := a.active
	for i := 1; i < len(edges); i++ {
		key := edges[i]
		j := i - 1
		for j >= 0 && edges[j].X > key.X {
			edges[j+1] = edges[j]
			j--
		}
		edges[j+1] = key
	}
}

// RemoveExpired drops edges whose YMax has been reached at scanline y.
func (a *SimpleAET) RemoveExpired(y float32) {
	kept := a.active[:0]
	for _, e := range a.active {
		if e.YMax > y {
			kept = append(kept, e)
		}
	}
	a.active = kept
}

// Reset clears the table for reuse.
func (a *SimpleAET) Reset() {
	a.active = a.active[:0]
}
