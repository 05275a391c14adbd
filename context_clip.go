package pathkit

import (
	"math"

	"github.com/pathkit-go/pathkit/internal/clip"
)

// Clip sets the current path as the clipping region and clears the path.
// Subsequent drawing operations will be clipped to this region.
// The clip region is intersected with any existing clip regions.
func (c *Context) Clip() {
	if c.clipStack == nil {
		c.initClipStack()
	}

	wasEmpty := c.clipStack.Bounds().IsEmpty()

	// Convert pathkit.PathElement to clip.PathElement
	elements := convertPathElements(c.path.Elements())

	// Push the path as a clip region, honoring the current fill rule.
	_ = c.clipStack.PushPath(elements, clipFillRule(c.paint.FillRule), true)

	c.logClipEmptinessTransition(wasEmpty)

	// Clear the path
	c.path.Clear()
}

// ClipPreserve sets the current path as the clipping region but keeps the path.
// This is like Clip() but doesn't clear the path, allowing you to both clip
// and then fill/stroke the same path.
func (c *Context) ClipPreserve() {
	if c.clipStack == nil {
		c.initClipStack()
	}

	wasEmpty := c.clipStack.Bounds().IsEmpty()

	// Convert pathkit.PathElement to clip.PathElement
	elements := convertPathElements(c.path.Elements())

	// Push the path as a clip region, honoring the current fill rule.
	_ = c.clipStack.PushPath(elements, clipFillRule(c.paint.FillRule), true)
	// Path is preserved

	c.logClipEmptinessTransition(wasEmpty)
}

// ClipRect sets a rectangular clipping region.
// This is a faster alternative to creating a rectangular path and calling Clip().
// The clip region is intersected with any existing clip regions.
func (c *Context) ClipRect(x, y, w, h float64) {
	if c.clipStack == nil {
		c.initClipStack()
	}

	wasEmpty := c.clipStack.Bounds().IsEmpty()

	// Transform the rectangle corners
	p1 := c.matrix.TransformPoint(Pt(x, y))
	p2 := c.matrix.TransformPoint(Pt(x+w, y+h))

	// Create clip rectangle in device coordinates
	rect := clip.NewRect(
		math.Min(p1.X, p2.X),
		math.Min(p1.Y, p2.Y),
		math.Abs(p2.X-p1.X),
		math.Abs(p2.Y-p1.Y),
	)

	c.clipStack.PushRect(rect)

	c.logClipEmptinessTransition(wasEmpty)
}

// logClipEmptinessTransition logs a warning the moment the clip region
// transitions from non-empty to empty, since an empty clip silently blocks
// every subsequent fill/stroke until restore.
func (c *Context) logClipEmptinessTransition(wasEmpty bool) {
	if !wasEmpty && c.clipStack.Bounds().IsEmpty() {
		Logger().Warn("clip region became empty; subsequent fills are no-ops until restore")
	}
}

// ResetClip removes all clipping regions, restoring the full canvas as drawable.
func (c *Context) ResetClip() {
	if c.clipStack == nil {
		return
	}

	// Reset to canvas bounds
	bounds := clip.NewRect(0, 0, float64(c.width), float64(c.height))
	c.clipStack.Reset(bounds)
}

// initClipStack initializes the clip stack with canvas bounds.
func (c *Context) initClipStack() {
	bounds := clip.NewRect(0, 0, float64(c.width), float64(c.height))
	c.clipStack = clip.NewClipStack(bounds)
}

// clipFillRule maps the root package's FillRule onto internal/clip's,
// so a clip(path) call rasterizes its mask with the same winding rule a
// fill call would use.
func clipFillRule(rule FillRule) clip.FillRule {
	if rule == FillRuleEvenOdd {
		return clip.FillRuleEvenOdd
	}
	return clip.FillRuleNonZero
}

// convertPathElements converts pathkit.PathElement slice to clip.PathElement slice.
func convertPathElements(elements []PathElement) []clip.PathElement {
	result := make([]clip.PathElement, len(elements))
	for i, elem := range elements {
		switch e := elem.(type) {
		case MoveTo:
			result[i] = clip.MoveTo{Point: clip.Pt(e.Point.X, e.Point.Y)}
		case LineTo:
			result[i] = clip.LineTo{Point: clip.Pt(e.Point.X, e.Point.Y)}
		case QuadTo:
			result[i] = clip.QuadTo{
				Control: clip.Pt(e.Control.X, e.Control.Y),
				Point:   clip.Pt(e.Point.X, e.Point.Y),
			}
		case CubicTo:
			result[i] = clip.CubicTo{
				Control1: clip.Pt(e.Control1.X, e.Control1.Y),
				Control2: clip.Pt(e.Control2.X, e.Control2.Y),
				Point:    clip.Pt(e.Point.X, e.Point.Y),
			}
		case Close:
			result[i] = clip.Close{}
		}
	}
	return result
}
