package pathkit

import (
	"github.com/pathkit-go/pathkit/internal/path"
)

// Union returns a path describing the set-union of the filled regions of a
// and b: every point covered by either input.
func Union(a, b *Path) *Path {
	return fromInternalElements(path.Union(convertPath(a), convertPath(b)))
}

// Intersection returns a path describing the set-intersection of the
// filled regions of a and b: every point covered by both inputs.
func Intersection(a, b *Path) *Path {
	return fromInternalElements(path.Intersection(convertPath(a), convertPath(b)))
}

// Difference returns a path describing the region covered by a but not
// by b.
func Difference(a, b *Path) *Path {
	return fromInternalElements(path.Difference(convertPath(a), convertPath(b)))
}

// Xor returns a path describing the symmetric difference of a and b: every
// point covered by exactly one of the two inputs.
func Xor(a, b *Path) *Path {
	return fromInternalElements(path.Xor(convertPath(a), convertPath(b)))
}

// fromInternalElements rebuilds a root Path from internal/path elements,
// the inverse of convertPath.
func fromInternalElements(elements []path.PathElement) *Path {
	result := NewPath()
	for _, elem := range elements {
		switch e := elem.(type) {
		case path.MoveTo:
			result.MoveTo(e.Point.X, e.Point.Y)
		case path.LineTo:
			result.LineTo(e.Point.X, e.Point.Y)
		case path.QuadTo:
			result.QuadraticTo(e.Control.X, e.Control.Y, e.Point.X, e.Point.Y)
		case path.CubicTo:
			result.CubicTo(e.Control1.X, e.Control1.Y, e.Control2.X, e.Control2.Y, e.Point.X, e.Point.Y)
		case path.Close:
			result.Close()
		}
	}
	return result
}
