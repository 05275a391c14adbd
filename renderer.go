package pathkit

// Renderer turns a transformed Path plus a Paint into pixels on a Pixmap.
// It is the seam between Context's state-stack dispatch and whichever
// rasterization backend does the actual work — currently only
// SoftwareRenderer, but the interface exists so a Context never needs to
// know the concrete backend it's driving.
//
// Both methods receive the path already in device space (Context applies
// the current transform before calling in) and own the full fill-or-stroke
// pipeline from there: flatten, rasterize to spans, clip, sample the paint,
// and blend into the destination.
type Renderer interface {
	// Fill rasterizes path under paint.FillRule and composites the result
	// onto pixmap using paint's brush and blend mode.
	Fill(pixmap *Pixmap, path *Path, paint *Paint) error

	// Stroke expands path into its stroked outline (width, cap, join, miter
	// limit, dash) and fills that outline the same way Fill does.
	Stroke(pixmap *Pixmap, path *Path, paint *Paint) error
}
