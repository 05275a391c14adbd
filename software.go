package pathkit

import (
	"github.com/pathkit-go/pathkit/internal/blend"
	"github.com/pathkit-go/pathkit/internal/path"
	"github.com/pathkit-go/pathkit/internal/raster"
	"github.com/pathkit-go/pathkit/internal/stroke"
)

// RenderMode specifies which anti-aliasing algorithm to use.
type RenderMode int

const (
	// RenderModeSupersampled uses 4x supersampling for anti-aliasing (default).
	// This is the current stable implementation.
	RenderModeSupersampled RenderMode = iota

	// RenderModeAnalytic uses exact geometric coverage calculation.
	// This provides higher quality anti-aliasing without supersampling overhead.
	// Note: Analytic mode requires importing backend/native and calling
	// SetAnalyticFiller to configure the analytic rendering components.
	RenderModeAnalytic
)

// AnalyticFillerInterface defines the interface for analytic coverage calculation.
// This allows the analytic filler from backend/native to be injected without
// creating an import cycle.
type AnalyticFillerInterface interface {
	// Fill renders the path using analytic coverage calculation.
	// Parameters:
	//   - path: the pathkit.Path to render
	//   - fillRule: FillRuleNonZero or FillRuleEvenOdd
	//   - callback: called for each scanline with (y, x, alpha) values
	Fill(path *Path, fillRule FillRule, callback func(y int, iter func(yield func(x int, alpha uint8) bool)))
	// Reset clears the filler state for reuse.
	Reset()
}

// SoftwareRenderer is a CPU-based scanline rasterizer.
type SoftwareRenderer struct {
	rasterizer *raster.Rasterizer

	// Render mode selection
	mode RenderMode

	// Analytic AA components (optional, injected via SetAnalyticFiller)
	analyticFiller AnalyticFillerInterface

	// Dimensions for analytic filler
	width, height int
}

// NewSoftwareRenderer creates a new software renderer.
// The default render mode is RenderModeSupersampled (4x supersampling).
// For higher quality, call SetAnalyticFiller with an analytic filler instance.
func NewSoftwareRenderer(width, height int) *SoftwareRenderer {
	return &SoftwareRenderer{
		rasterizer: raster.NewRasterizer(width, height),
		mode:       RenderModeSupersampled,
		width:      width,
		height:     height,
	}
}

// Resize updates the renderer's internal buffers for new dimensions.
func (r *SoftwareRenderer) Resize(width, height int) {
	r.rasterizer = raster.NewRasterizer(width, height)
	r.width = width
	r.height = height
}

// SetRenderMode sets the anti-aliasing mode.
// RenderModeSupersampled (default) uses 4x supersampling.
// RenderModeAnalytic uses exact geometric coverage calculation (requires SetAnalyticFiller).
func (r *SoftwareRenderer) SetRenderMode(mode RenderMode) {
	r.mode = mode
}

// RenderMode returns the current anti-aliasing mode.
func (r *SoftwareRenderer) RenderMode() RenderMode {
	return r.mode
}

// SetAnalyticFiller configures the analytic filler for RenderModeAnalytic.
// This must be called before using RenderModeAnalytic.
// The filler is typically created from backend/native.NewAnalyticFillerAdapter.
func (r *SoftwareRenderer) SetAnalyticFiller(filler AnalyticFillerInterface) {
	r.analyticFiller = filler
	if filler != nil {
		r.mode = RenderModeAnalytic
	}
}

// pixmapAdapter adapts pathkit.Pixmap to raster.Pixmap interface,
// compositing through the paint's blend mode and clip coverage.
type pixmapAdapter struct {
	pixmap *Pixmap
	mode   BlendMode
	clip   func(x, y int) uint8
}

func (p *pixmapAdapter) Width() int {
	return p.pixmap.Width()
}

func (p *pixmapAdapter) Height() int {
	return p.pixmap.Height()
}

func (p *pixmapAdapter) SetPixel(x, y int, c raster.RGBA) {
	p.BlendPixelAlpha(x, y, c, 255)
}

// BlendPixelAlpha blends a color with the existing pixel using given alpha.
// This implements the raster.AAPixmap interface for anti-aliased rendering.
func (p *pixmapAdapter) BlendPixelAlpha(x, y int, c raster.RGBA, alpha uint8) {
	if alpha == 0 {
		return
	}

	// Bounds check
	if x < 0 || x >= p.pixmap.Width() || y < 0 || y >= p.pixmap.Height() {
		return
	}

	alpha = modulateCoverage(p.clip, x, y, alpha)
	if alpha == 0 {
		return
	}

	color := RGBA{R: c.R, G: c.G, B: c.B, A: c.A}
	if p.mode != BlendSrcOver {
		compositePixel(p.pixmap, x, y, color, alpha, p.mode)
		return
	}

	if alpha == 255 && color.A == 1.0 {
		p.pixmap.SetPixel(x, y, color)
		return
	}

	blendSourceOverPixel(p.pixmap, x, y, color, alpha)
}

// blendSourceOverPixel composites src over the destination pixel with the
// given 0-255 coverage, in straight-alpha float math. This is the fast
// path for the default blend mode; every other mode goes through
// compositePixel's premultiplied byte dispatch.
func blendSourceOverPixel(pixmap *Pixmap, x, y int, src RGBA, alpha uint8) {
	existing := pixmap.GetPixel(x, y)

	srcAlpha := src.A * float64(alpha) / 255.0
	invSrcAlpha := 1.0 - srcAlpha

	outA := srcAlpha + existing.A*invSrcAlpha
	if outA > 0 {
		outR := (src.R*srcAlpha + existing.R*existing.A*invSrcAlpha) / outA
		outG := (src.G*srcAlpha + existing.G*existing.A*invSrcAlpha) / outA
		outB := (src.B*srcAlpha + existing.B*existing.A*invSrcAlpha) / outA
		pixmap.SetPixel(x, y, RGBA{R: outR, G: outG, B: outB, A: outA})
	}
}

// compositePixel blends src (straight alpha, global alpha already applied)
// into the pixmap through the full blend-mode dispatch. The rasterized
// coverage scales the source before the mode's formula runs, then the
// result replaces the destination.
func compositePixel(pixmap *Pixmap, x, y int, src RGBA, coverage uint8, mode BlendMode) {
	sr, sg, sb, sa := premultiply(src, float64(coverage)/255.0)
	dr, dg, db, da := premultiply(pixmap.GetPixel(x, y), 1.0)
	rr, rg, rb, ra := blend.GetBlendFunc(mode)(sr, sg, sb, sa, dr, dg, db, da)
	pixmap.SetPixel(x, y, unpremultiply(rr, rg, rb, ra))
}

// modulateCoverage scales rasterized coverage by the clip/mask coverage at
// (x, y). A nil clip func means the draw is unclipped.
func modulateCoverage(clip func(x, y int) uint8, x, y int, alpha uint8) uint8 {
	if clip == nil {
		return alpha
	}
	cov := clip(x, y)
	if cov == 255 {
		return alpha
	}
	return uint8(uint16(alpha) * uint16(cov) / 255)
}

// convertPath converts pathkit.Path elements to path.PathElement for flattening.
func convertPath(p *Path) []path.PathElement {
	var elements []path.PathElement
	for _, elem := range p.Elements() {
		switch e := elem.(type) {
		case MoveTo:
			elements = append(elements, path.MoveTo{Point: path.Point{X: e.Point.X, Y: e.Point.Y}})
		case LineTo:
			elements = append(elements, path.LineTo{Point: path.Point{X: e.Point.X, Y: e.Point.Y}})
		case QuadTo:
			elements = append(elements, path.QuadTo{
				Control: path.Point{X: e.Control.X, Y: e.Control.Y},
				Point:   path.Point{X: e.Point.X, Y: e.Point.Y},
			})
		case CubicTo:
			elements = append(elements, path.CubicTo{
				Control1: path.Point{X: e.Control1.X, Y: e.Control1.Y},
				Control2: path.Point{X: e.Control2.X, Y: e.Control2.Y},
				Point:    path.Point{X: e.Point.X, Y: e.Point.Y},
			})
		case Close:
			elements = append(elements, path.Close{})
		}
	}
	return elements
}

// convertPoints converts path.Point to raster.Point.
func convertPoints(points []path.Point) []raster.Point {
	result := make([]raster.Point, len(points))
	for i, p := range points {
		result[i] = raster.Point{X: p.X, Y: p.Y}
	}
	return result
}

// Fill implements Renderer.Fill with anti-aliasing enabled by default.
// The rendering method is determined by the current RenderMode.
func (r *SoftwareRenderer) Fill(pixmap *Pixmap, p *Path, paint *Paint) error {
	switch r.mode {
	case RenderModeAnalytic:
		if r.analyticFiller != nil {
			return r.fillAnalytic(pixmap, p, paint)
		}
		// Fallback to supersampled if no analytic filler configured
		return r.fillSupersampled(pixmap, p, paint)
	case RenderModeSupersampled:
		return r.fillSupersampled(pixmap, p, paint)
	default:
		return r.fillSupersampled(pixmap, p, paint)
	}
}

// fillAnalytic renders the path using analytic coverage calculation.
// This provides high quality anti-aliasing without supersampling overhead.
func (r *SoftwareRenderer) fillAnalytic(pixmap *Pixmap, p *Path, paint *Paint) error {
	// Reset the filler for new path
	r.analyticFiller.Reset()

	if color, ok := solidColorFromPaint(paint); ok {
		color = applyGlobalAlpha(color, paint.GlobalAlpha)
		r.analyticFiller.Fill(p, paint.FillRule, func(y int, iter func(yield func(x int, alpha uint8) bool)) {
			r.blendAlphaRunsFromIter(pixmap, y, iter, color, paint.BlendMode, paint.ClipCoverage)
		})
		return nil
	}

	// Non-solid paint (gradient/pattern/custom brush): sample per pixel.
	r.analyticFiller.Fill(p, paint.FillRule, func(y int, iter func(yield func(x int, alpha uint8) bool)) {
		r.blendPaintRunsFromIter(pixmap, y, iter, paint)
	})

	return nil
}

// fillSupersampled renders the path using 4x supersampling (legacy method).
func (r *SoftwareRenderer) fillSupersampled(pixmap *Pixmap, p *Path, paint *Paint) error {
	// Convert path to internal format and flatten
	elements := convertPath(p)
	flattenedPath := path.Flatten(elements)
	rasterPoints := convertPoints(flattenedPath)

	// Convert fill rule
	fillRule := raster.FillRuleNonZero
	if paint.FillRule == FillRuleEvenOdd {
		fillRule = raster.FillRuleEvenOdd
	}

	if color, ok := solidColorFromPaint(paint); ok {
		// Fast path: one sampled color for the whole fill.
		color = applyGlobalAlpha(color, paint.GlobalAlpha)
		adapter := &pixmapAdapter{pixmap: pixmap, mode: paint.BlendMode, clip: paint.ClipCoverage}
		r.rasterizer.FillAA(adapter, rasterPoints, fillRule, raster.RGBA{
			R: color.R,
			G: color.G,
			B: color.B,
			A: color.A,
		})
		return nil
	}

	// Gradient/pattern/custom brush: sample the paint at each covered pixel.
	adapter := &paintPixmapAdapter{pixmap: pixmap, paint: paint}
	r.rasterizer.FillAA(adapter, rasterPoints, fillRule, raster.RGBA{})
	return nil
}

// solidColorFromPaint returns the paint's color and true when the paint's
// effective brush (Brush, falling back to Pattern) is a plain solid color —
// the fast path that can be rasterized with one color for the whole fill.
// It returns false for gradients, images, and other per-pixel brushes,
// which must be sampled at every covered pixel instead.
func solidColorFromPaint(paint *Paint) (RGBA, bool) {
	if paint.Brush != nil {
		if sb, ok := paint.Brush.(SolidBrush); ok {
			return sb.Color, true
		}
		return RGBA{}, false
	}
	if paint.Pattern != nil {
		if sp, ok := paint.Pattern.(*SolidPattern); ok {
			return sp.Color, true
		}
		return RGBA{}, false
	}
	return Black, true
}

// applyGlobalAlpha multiplies a color's alpha by the graphics state's
// global alpha, leaving it untouched when global alpha is fully opaque.
func applyGlobalAlpha(c RGBA, alpha float64) RGBA {
	if alpha >= 1.0 {
		return c
	}
	if alpha <= 0 {
		c.A = 0
		return c
	}
	c.A *= alpha
	return c
}

// scanlineSpans collects one scanline's per-pixel coverage into spans and
// runs them through the rasterizer's span pipeline: viewport clipping,
// merging of adjacent equal-coverage runs, and coalescing of
// full-coverage runs.
func scanlineSpans(pixmap *Pixmap, y int, iter func(yield func(x int, alpha uint8) bool)) []raster.Span {
	var spans []raster.Span
	iter(func(x int, alpha uint8) bool {
		if alpha == 0 {
			return true
		}
		if n := len(spans) - 1; n >= 0 && spans[n].X+spans[n].Length == x && spans[n].Coverage == alpha {
			spans[n].Length++
			return true
		}
		spans = append(spans, raster.Span{Y: y, X: x, Length: 1, Coverage: alpha})
		return true
	})
	return raster.RunSpanPipeline(spans, pixmap.Width(), pixmap.Height())
}

// blendAlphaRunsFromIter blends one scanline's coverage into the pixmap,
// through the blend mode and clip coverage the fill was issued with. The
// coverage runs through the span pipeline first, so the per-pixel loop
// below only ever sees in-viewport, coalesced spans.
func (r *SoftwareRenderer) blendAlphaRunsFromIter(pixmap *Pixmap, y int, iter func(yield func(x int, alpha uint8) bool), color RGBA, mode BlendMode, clip func(x, y int) uint8) {
	for _, s := range scanlineSpans(pixmap, y, iter) {
		for x := s.X; x < s.X+s.Length; x++ {
			alpha := modulateCoverage(clip, x, s.Y, s.Coverage)
			if alpha == 0 {
				continue
			}

			if mode != BlendSrcOver {
				compositePixel(pixmap, x, s.Y, color, alpha, mode)
				continue
			}

			// Full coverage - just set the pixel
			if alpha == 255 && color.A == 1.0 {
				pixmap.SetPixel(x, s.Y, color)
				continue
			}

			// Partial coverage - blend with existing pixel
			blendSourceOverPixel(pixmap, x, s.Y, color, alpha)
		}
	}
}

// blendPaintRunsFromIter blends a scanline of alpha-run coverage into the
// pixmap, sampling the paint's brush at every covered pixel rather than
// using a single fill color. This is the path taken for gradients,
// patterns, and custom brushes.
func (r *SoftwareRenderer) blendPaintRunsFromIter(pixmap *Pixmap, y int, iter func(yield func(x int, alpha uint8) bool), paint *Paint) {
	for _, s := range scanlineSpans(pixmap, y, iter) {
		for x := s.X; x < s.X+s.Length; x++ {
			alpha := modulateCoverage(paint.ClipCoverage, x, s.Y, s.Coverage)
			if alpha == 0 {
				continue
			}

			color := applyGlobalAlpha(paint.ColorAt(float64(x)+0.5, float64(s.Y)+0.5), paint.GlobalAlpha)

			if paint.BlendMode != BlendSrcOver {
				compositePixel(pixmap, x, s.Y, color, alpha, paint.BlendMode)
				continue
			}

			if alpha == 255 && color.A == 1.0 {
				pixmap.SetPixel(x, s.Y, color)
				continue
			}

			blendSourceOverPixel(pixmap, x, s.Y, color, alpha)
		}
	}
}

// paintPixmapAdapter adapts pathkit.Pixmap to raster.AAPixmap, sampling the
// paint's brush at each covered pixel instead of blending a single fixed
// color. Used by the supersampled fill path for non-solid paints.
type paintPixmapAdapter struct {
	pixmap *Pixmap
	paint  *Paint
}

func (p *paintPixmapAdapter) Width() int  { return p.pixmap.Width() }
func (p *paintPixmapAdapter) Height() int { return p.pixmap.Height() }

func (p *paintPixmapAdapter) SetPixel(x, y int, c raster.RGBA) {
	p.BlendPixelAlpha(x, y, c, 255)
}

// BlendPixelAlpha blends the paint's sampled color at (x, y) using given
// coverage alpha. Implements raster.AAPixmap; the incoming color argument
// is ignored since the color depends on position for non-solid paints.
func (p *paintPixmapAdapter) BlendPixelAlpha(x, y int, _ raster.RGBA, alpha uint8) {
	if alpha == 0 {
		return
	}
	if x < 0 || x >= p.pixmap.Width() || y < 0 || y >= p.pixmap.Height() {
		return
	}

	alpha = modulateCoverage(p.paint.ClipCoverage, x, y, alpha)
	if alpha == 0 {
		return
	}

	c := applyGlobalAlpha(p.paint.ColorAt(float64(x)+0.5, float64(y)+0.5), p.paint.GlobalAlpha)

	if p.paint.BlendMode != BlendSrcOver {
		compositePixel(p.pixmap, x, y, c, alpha, p.paint.BlendMode)
		return
	}

	if alpha == 255 && c.A == 1.0 {
		p.pixmap.SetPixel(x, y, c)
		return
	}

	blendSourceOverPixel(p.pixmap, x, y, c, alpha)
}

// FillNoAA fills without anti-aliasing (faster but aliased).
func (r *SoftwareRenderer) FillNoAA(pixmap *Pixmap, p *Path, paint *Paint) error {
	// Convert path to internal format and flatten
	elements := convertPath(p)
	flattenedPath := path.Flatten(elements)
	rasterPoints := convertPoints(flattenedPath)

	// Get color from paint
	solidPattern, ok := paint.Pattern.(*SolidPattern)
	if !ok {
		return nil // Only solid patterns supported in v0.1
	}
	color := solidPattern.Color

	// Convert fill rule
	fillRule := raster.FillRuleNonZero
	if paint.FillRule == FillRuleEvenOdd {
		fillRule = raster.FillRuleEvenOdd
	}

	// Rasterize without AA
	adapter := &pixmapAdapter{pixmap: pixmap, mode: BlendSrcOver}
	r.rasterizer.Fill(adapter, rasterPoints, fillRule, raster.RGBA{
		R: color.R,
		G: color.G,
		B: color.B,
		A: color.A,
	})

	return nil
}

// Stroke implements Renderer.Stroke with anti-aliasing support.
// Strokes are expanded to fill paths and rendered with the Fill method
// to get smooth anti-aliased edges.
func (r *SoftwareRenderer) Stroke(pixmap *Pixmap, p *Path, paint *Paint) error {
	// Tolerance is tightened under magnification (paint.TransformScale > 1)
	// so curve offsets (and, below, dash boundaries) stay smooth once the
	// caller scales up.
	scale := paint.TransformScale
	if scale <= 0 {
		scale = 1
	}
	tolerance := 0.1 / scale

	// A dash pattern splits the path into "on" runs
	// before offset-curve expansion ever sees it, so StrokeExpander always
	// strokes a plain (possibly multi-subpath) line/curve path.
	source := p
	if dash := paint.EffectiveDash(); dash != nil {
		source = dash.ApplyToPath(p, tolerance)
	}

	// Convert pathkit.Path to stroke.PathElement
	strokeElements := convertPathToStrokeElements(source)

	// Create stroke style from paint
	strokeStyle := stroke.Stroke{
		Width:      paint.EffectiveLineWidth(),
		Cap:        convertLineCap(paint.EffectiveLineCap()),
		Join:       convertLineJoin(paint.EffectiveLineJoin()),
		MiterLimit: paint.EffectiveMiterLimit(),
	}
	if strokeStyle.MiterLimit <= 0 {
		strokeStyle.MiterLimit = 4.0 // Default
	}

	// Create stroke expander with sub-pixel tolerance for smooth curves.
	expander := stroke.NewStrokeExpander(strokeStyle)
	expander.SetTolerance(tolerance)

	// Expand stroke to fill path
	expandedElements := expander.Expand(strokeElements)

	// Convert back to pathkit.Path
	strokePath := convertStrokeElementsToPath(expandedElements)

	// Fill the stroke path - this gives us anti-aliased strokes. When a
	// dedicated stroke brush is set, fill the outline with that instead of
	// the fill brush.
	fillPaint := paint
	if paint.StrokeBrush != nil {
		fillPaint = paint.Clone()
		fillPaint.SetBrush(paint.StrokeBrush)
	}
	return r.Fill(pixmap, strokePath, fillPaint)
}

// convertPathToStrokeElements converts pathkit.Path elements to stroke.PathElement.
func convertPathToStrokeElements(p *Path) []stroke.PathElement {
	var elements []stroke.PathElement
	for _, elem := range p.Elements() {
		switch e := elem.(type) {
		case MoveTo:
			elements = append(elements, stroke.MoveTo{Point: stroke.Point{X: e.Point.X, Y: e.Point.Y}})
		case LineTo:
			elements = append(elements, stroke.LineTo{Point: stroke.Point{X: e.Point.X, Y: e.Point.Y}})
		case QuadTo:
			elements = append(elements, stroke.QuadTo{
				Control: stroke.Point{X: e.Control.X, Y: e.Control.Y},
				Point:   stroke.Point{X: e.Point.X, Y: e.Point.Y},
			})
		case CubicTo:
			elements = append(elements, stroke.CubicTo{
				Control1: stroke.Point{X: e.Control1.X, Y: e.Control1.Y},
				Control2: stroke.Point{X: e.Control2.X, Y: e.Control2.Y},
				Point:    stroke.Point{X: e.Point.X, Y: e.Point.Y},
			})
		case Close:
			elements = append(elements, stroke.Close{})
		}
	}
	return elements
}

// convertStrokeElementsToPath converts stroke.PathElement back to pathkit.Path.
func convertStrokeElementsToPath(elements []stroke.PathElement) *Path {
	p := NewPath()
	for _, elem := range elements {
		switch e := elem.(type) {
		case stroke.MoveTo:
			p.MoveTo(e.Point.X, e.Point.Y)
		case stroke.LineTo:
			p.LineTo(e.Point.X, e.Point.Y)
		case stroke.QuadTo:
			p.QuadraticTo(e.Control.X, e.Control.Y, e.Point.X, e.Point.Y)
		case stroke.CubicTo:
			p.CubicTo(e.Control1.X, e.Control1.Y, e.Control2.X, e.Control2.Y, e.Point.X, e.Point.Y)
		case stroke.Close:
			p.Close()
		}
	}
	return p
}

// convertLineCap converts pathkit.LineCap to stroke.LineCap.
func convertLineCap(cap LineCap) stroke.LineCap {
	switch cap {
	case LineCapButt:
		return stroke.LineCapButt
	case LineCapRound:
		return stroke.LineCapRound
	case LineCapSquare:
		return stroke.LineCapSquare
	default:
		return stroke.LineCapButt
	}
}

// convertLineJoin converts pathkit.LineJoin to stroke.LineJoin.
func convertLineJoin(join LineJoin) stroke.LineJoin {
	switch join {
	case LineJoinMiter:
		return stroke.LineJoinMiter
	case LineJoinRound:
		return stroke.LineJoinRound
	case LineJoinBevel:
		return stroke.LineJoinBevel
	default:
		return stroke.LineJoinMiter
	}
}
