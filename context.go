package pathkit

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"log/slog"
	"math"

	"github.com/pathkit-go/pathkit/internal/clip"
)

// Context is the main drawing context.
// It maintains a pixmap, current path, paint state, and transformation stack.
// Context implements io.Closer for proper resource cleanup.
type Context struct {
	width    int
	height   int
	pixmap   *Pixmap
	renderer Renderer

	// Current state
	path      *Path
	paint     *Paint
	clipStack *clip.ClipStack // Clipping stack

	// Transform and state stack
	matrix         Matrix
	stack          []Matrix
	paintStack     []*Paint
	clipStackDepth []int // Tracks clip stack depth for each Push/Pop

	// Layer support
	layerStack *layerStack // Layer stack for compositing
	basePixmap *Pixmap     // Base pixmap when layers are active

	// Mask support
	mask      *Mask   // Current alpha mask
	maskStack []*Mask // Mask stack for Push/Pop

	// Rasterizer mode
	rasterizerMode RasterizerMode // CPU rasterizer selection mode

	// Lifecycle
	closed bool // Indicates whether Close has been called
}

// Ensure Context implements io.Closer
var _ io.Closer = (*Context)(nil)

// NewContext creates a new drawing context with the given dimensions.
// Optional ContextOption arguments can be used for dependency injection:
//
//	dc, err := pathkit.NewContext(800, 600)
func NewContext(width, height int, opts ...ContextOption) (*Context, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: dimensions must be positive, got %dx%d", ErrInvalidArgument, width, height)
	}

	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}

	pixmap := options.pixmap
	if pixmap == nil {
		pixmap = NewPixmap(width, height)
	}

	renderer := options.renderer
	if renderer == nil {
		renderer = NewSoftwareRenderer(width, height)
	}

	return &Context{
		width:          width,
		height:         height,
		pixmap:         pixmap,
		renderer:       renderer,
		path:           NewPath(),
		paint:          NewPaint(),
		matrix:         Identity(),
		stack:          make([]Matrix, 0, 8),
		clipStackDepth: make([]int, 0, 8),
	}, nil
}

// NewContextForImage creates a context for drawing on an existing image.
// Optional ContextOption arguments can be used for dependency injection.
func NewContextForImage(img image.Image, opts ...ContextOption) *Context {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	pixmap := FromImage(img)

	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}

	renderer := options.renderer
	if renderer == nil {
		renderer = NewSoftwareRenderer(width, height)
	}

	return &Context{
		width:          width,
		height:         height,
		pixmap:         pixmap,
		renderer:       renderer,
		path:           NewPath(),
		paint:          NewPaint(),
		matrix:         Identity(),
		stack:          make([]Matrix, 0, 8),
		clipStackDepth: make([]int, 0, 8),
	}
}

// Close releases resources associated with the Context.
// After Close, the Context should not be used.
// Close is idempotent - multiple calls are safe.
// Implements io.Closer.
func (c *Context) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true

	c.ClearPath()
	c.stack = nil
	c.paintStack = nil
	c.clipStackDepth = nil
	c.maskStack = nil
	c.mask = nil

	return nil
}

// Reset returns the context to its initial state: the current path, state
// stack, clip stack, and alpha mask are discarded, the transform becomes
// identity, and the paint reverts to defaults. Pixels already on the
// target are left untouched; use Clear to erase them.
func (c *Context) Reset() {
	c.ClearPath()
	c.paint = NewPaint()
	c.matrix = Identity()
	c.stack = c.stack[:0]
	c.paintStack = c.paintStack[:0]
	c.clipStackDepth = c.clipStackDepth[:0]
	c.clipStack = nil
	c.mask = nil
	c.maskStack = nil
}

// SetRasterizerMode sets the rasterization strategy for this context.
// The mode is per-Context — different contexts can use different strategies.
// If the context's renderer is a *SoftwareRenderer (the default), this also
// switches its underlying RenderMode so the new strategy takes effect on the
// very next Fill/Stroke.
func (c *Context) SetRasterizerMode(mode RasterizerMode) {
	c.rasterizerMode = mode
	if sr, ok := c.renderer.(*SoftwareRenderer); ok {
		switch mode {
		case RasterizerAnalytic:
			sr.SetRenderMode(RenderModeAnalytic)
		default:
			sr.SetRenderMode(RenderModeSupersampled)
		}
	}
}

// RasterizerMode returns the current rasterizer mode.
func (c *Context) RasterizerMode() RasterizerMode {
	return c.rasterizerMode
}

// Width returns the width of the context.
func (c *Context) Width() int {
	return c.width
}

// Height returns the height of the context.
func (c *Context) Height() int {
	return c.height
}

// Pixmap returns the context's backing pixel buffer.
func (c *Context) Pixmap() *Pixmap {
	return c.pixmap
}

// Image returns the context's image.
func (c *Context) Image() image.Image {
	return c.pixmap.ToImage()
}

// Clear fills the entire context with a color.
func (c *Context) Clear() {
	c.pixmap.Clear(Transparent)
}

// ClearWithColor fills the entire context with a specific color.
func (c *Context) ClearWithColor(col RGBA) {
	c.pixmap.Clear(col)
}

// SetColor sets the current drawing color.
func (c *Context) SetColor(col color.Color) {
	c.paint.SetBrush(Solid(FromColor(col)))
}

// SetRGB sets the current color using RGB values (0-1).
func (c *Context) SetRGB(r, g, b float64) {
	c.paint.SetBrush(SolidRGB(r, g, b))
}

// SetRGBA sets the current color using RGBA values (0-1).
func (c *Context) SetRGBA(r, g, b, a float64) {
	c.paint.SetBrush(SolidRGBA(r, g, b, a))
}

// SetFillColor sets the fill color directly from an RGBA value.
func (c *Context) SetFillColor(col RGBA) {
	c.paint.SetBrush(Solid(col))
}

// SetHexColor sets the current color using a hex string.
// Unsupported formats leave the current brush unchanged and return an error.
func (c *Context) SetHexColor(hex string) error {
	col, err := ParseHex(hex)
	if err != nil {
		return err
	}
	c.paint.SetBrush(Solid(col))
	return nil
}

// SetFillBrush sets the brush used for fill operations.
//
// Example:
//
//	ctx.SetFillBrush(pathkit.Solid(pathkit.Red))
func (c *Context) SetFillBrush(b Brush) {
	c.paint.SetBrush(b)
}

// SetStrokeBrush sets the brush used for stroke operations, independent of
// the fill brush. Until it is called, strokes use the fill brush.
func (c *Context) SetStrokeBrush(b Brush) {
	c.paint.StrokeBrush = b
}

// SetStrokeColor sets the stroke color directly from an RGBA value.
func (c *Context) SetStrokeColor(col RGBA) {
	c.paint.StrokeBrush = Solid(col)
}

// FillBrush returns the current fill brush.
func (c *Context) FillBrush() Brush {
	return c.paint.GetBrush()
}

// StrokeBrush returns the current stroke brush, falling back to the fill
// brush when no dedicated stroke brush has been set.
func (c *Context) StrokeBrush() Brush {
	return c.paint.GetStrokeBrush()
}

// SetFillPattern sets the fill paint from a legacy Pattern, keeping Brush
// in sync so FillBrush/ColorAt see the same paint.
func (c *Context) SetFillPattern(p Pattern) {
	c.paint.SetBrush(BrushFromPattern(p))
}

// SetStrokePattern sets the stroke paint from a legacy Pattern, independent
// of the fill paint.
func (c *Context) SetStrokePattern(p Pattern) {
	c.paint.StrokeBrush = BrushFromPattern(p)
}

// SetGlobalAlpha sets an additional [0,1] opacity multiplier applied on top
// of whatever alpha the current brush samples. Values are clamped to [0,1].
func (c *Context) SetGlobalAlpha(alpha float64) {
	c.paint.GlobalAlpha = clamp01(alpha)
}

// GlobalAlpha returns the current global alpha multiplier.
func (c *Context) GlobalAlpha() float64 {
	return c.paint.GlobalAlpha
}

// SetLineWidth sets the line width for stroking.
func (c *Context) SetLineWidth(width float64) {
	c.paint.LineWidth = width
}

// SetLineCap sets the line cap style.
func (c *Context) SetLineCap(lineCap LineCap) {
	c.paint.LineCap = lineCap
}

// SetLineJoin sets the line join style.
func (c *Context) SetLineJoin(join LineJoin) {
	c.paint.LineJoin = join
}

// SetFillRule sets the fill rule.
func (c *Context) SetFillRule(rule FillRule) {
	c.paint.FillRule = rule
}

// SetMiterLimit sets the miter limit for line joins.
func (c *Context) SetMiterLimit(limit float64) {
	c.paint.MiterLimit = limit
}

// SetStroke sets the complete stroke style.
//
// Example:
//
//	ctx.SetStroke(pathkit.DefaultStroke().WithWidth(2).WithCap(pathkit.LineCapRound))
func (c *Context) SetStroke(stroke Stroke) {
	c.paint.SetStroke(stroke)
}

// GetStroke returns the current stroke style.
func (c *Context) GetStroke() Stroke {
	return c.paint.GetStroke()
}

// SetDash sets the dash pattern for stroking.
// Pass alternating dash and gap lengths.
// Passing no arguments clears the dash pattern (returns to solid lines).
func (c *Context) SetDash(lengths ...float64) {
	if len(lengths) == 0 {
		c.ClearDash()
		return
	}

	dash := NewDash(lengths...)
	if dash == nil {
		c.ClearDash()
		return
	}

	if c.paint.Stroke == nil {
		stroke := c.paint.GetStroke()
		c.paint.Stroke = &stroke
	}
	c.paint.Stroke.Dash = dash
}

// SetDashOffset sets the starting offset into the dash pattern.
// This has no effect if no dash pattern is set.
func (c *Context) SetDashOffset(offset float64) {
	if c.paint.Stroke == nil {
		stroke := c.paint.GetStroke()
		c.paint.Stroke = &stroke
	}
	if c.paint.Stroke.Dash != nil {
		c.paint.Stroke.Dash = c.paint.Stroke.Dash.WithOffset(offset)
	}
}

// ClearDash removes the dash pattern, returning to solid lines.
func (c *Context) ClearDash() {
	if c.paint.Stroke != nil {
		c.paint.Stroke.Dash = nil
	}
}

// IsDashed returns true if the current stroke uses a dash pattern.
func (c *Context) IsDashed() bool {
	return c.paint.IsDashed()
}

// MoveTo starts a new subpath at the given point.
func (c *Context) MoveTo(x, y float64) {
	p := c.matrix.TransformPoint(Pt(x, y))
	c.path.MoveTo(p.X, p.Y)
}

// LineTo adds a line to the current path.
func (c *Context) LineTo(x, y float64) {
	p := c.matrix.TransformPoint(Pt(x, y))
	c.path.LineTo(p.X, p.Y)
}

// QuadraticTo adds a quadratic Bezier curve to the current path.
func (c *Context) QuadraticTo(cx, cy, x, y float64) {
	cp := c.matrix.TransformPoint(Pt(cx, cy))
	p := c.matrix.TransformPoint(Pt(x, y))
	c.path.QuadraticTo(cp.X, cp.Y, p.X, p.Y)
}

// CubicTo adds a cubic Bezier curve to the current path.
func (c *Context) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	cp1 := c.matrix.TransformPoint(Pt(c1x, c1y))
	cp2 := c.matrix.TransformPoint(Pt(c2x, c2y))
	p := c.matrix.TransformPoint(Pt(x, y))
	c.path.CubicTo(cp1.X, cp1.Y, cp2.X, cp2.Y, p.X, p.Y)
}

// ClosePath closes the current subpath.
func (c *Context) ClosePath() {
	c.path.Close()
}

// ClearPath clears the current path.
func (c *Context) ClearPath() {
	c.path.Clear()
}

// NewSubPath does nothing to the path: the next MoveTo starts a new subpath
// without closing the previous one.
func (c *Context) NewSubPath() {
	// Starting with MoveTo already creates a new subpath; provided for API
	// compatibility with callers expecting an explicit method.
}

// AppendPath appends a pre-built path to the current path, transforming
// every point by the current matrix — the same treatment MoveTo/LineTo/
// CubicTo give their coordinates.
func (c *Context) AppendPath(p *Path) {
	for _, elem := range p.Elements() {
		switch e := elem.(type) {
		case MoveTo:
			c.MoveTo(e.Point.X, e.Point.Y)
		case LineTo:
			c.LineTo(e.Point.X, e.Point.Y)
		case QuadTo:
			c.QuadraticTo(e.Control.X, e.Control.Y, e.Point.X, e.Point.Y)
		case CubicTo:
			c.CubicTo(e.Control1.X, e.Control1.Y, e.Control2.X, e.Control2.Y, e.Point.X, e.Point.Y)
		case Close:
			c.ClosePath()
		}
	}
}

// FillPath fills a pre-built path under the current state, leaving the
// context's own path untouched.
func (c *Context) FillPath(p *Path) error {
	saved := c.path
	c.path = NewPath()
	c.AppendPath(p)
	err := c.doFill()
	c.path = saved
	return err
}

// StrokePath strokes a pre-built path under the current state, leaving the
// context's own path untouched.
func (c *Context) StrokePath(p *Path) error {
	saved := c.path
	c.path = NewPath()
	c.AppendPath(p)
	err := c.doStroke()
	c.path = saved
	return err
}

// Fill fills the current path and clears it.
// Returns an error if the rendering operation fails.
func (c *Context) Fill() error {
	err := c.doFill()
	c.path.Clear()
	return err
}

// Stroke strokes the current path and clears it.
// Returns an error if the rendering operation fails.
func (c *Context) Stroke() error {
	err := c.doStroke()
	c.path.Clear()
	return err
}

// FillPreserve fills the current path without clearing it.
func (c *Context) FillPreserve() error {
	return c.doFill()
}

// StrokePreserve strokes the current path without clearing it.
func (c *Context) StrokePreserve() error {
	return c.doStroke()
}

// Push saves the current state (transform, paint, clip, and mask).
func (c *Context) Push() {
	c.stack = append(c.stack, c.matrix)
	c.paintStack = append(c.paintStack, c.paint.Clone())

	depth := 0
	if c.clipStack != nil {
		depth = c.clipStack.Depth()
	}
	c.clipStackDepth = append(c.clipStackDepth, depth)

	var maskCopy *Mask
	if c.mask != nil {
		maskCopy = c.mask.Clone()
	}
	c.maskStack = append(c.maskStack, maskCopy)
}

// Pop restores the last saved state. A Pop on an empty stack is a no-op,
// leaving the bottom state unchanged.
func (c *Context) Pop() {
	if len(c.stack) == 0 {
		return
	}

	c.matrix = c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]

	if len(c.paintStack) > 0 {
		c.paint = c.paintStack[len(c.paintStack)-1]
		c.paintStack = c.paintStack[:len(c.paintStack)-1]
	}

	if len(c.clipStackDepth) > 0 {
		targetDepth := c.clipStackDepth[len(c.clipStackDepth)-1]
		c.clipStackDepth = c.clipStackDepth[:len(c.clipStackDepth)-1]

		if c.clipStack != nil {
			for c.clipStack.Depth() > targetDepth {
				c.clipStack.Pop()
			}
		}
	}

	if len(c.maskStack) > 0 {
		c.mask = c.maskStack[len(c.maskStack)-1]
		c.maskStack = c.maskStack[:len(c.maskStack)-1]
	}
}

// Identity resets the transformation matrix to identity.
func (c *Context) Identity() {
	c.matrix = Identity()
}

// Translate applies a translation to the transformation matrix.
func (c *Context) Translate(x, y float64) {
	c.matrix = c.matrix.Multiply(Translate(x, y))
}

// Scale applies a scaling transformation.
func (c *Context) Scale(x, y float64) {
	c.matrix = c.matrix.Multiply(Scale(x, y))
}

// Rotate applies a rotation (angle in radians).
func (c *Context) Rotate(angle float64) {
	c.matrix = c.matrix.Multiply(Rotate(angle))
}

// RotateAbout rotates around a specific point.
func (c *Context) RotateAbout(angle, x, y float64) {
	c.Translate(x, y)
	c.Rotate(angle)
	c.Translate(-x, -y)
}

// Shear applies a shear transformation.
func (c *Context) Shear(x, y float64) {
	c.matrix = c.matrix.Multiply(Shear(x, y))
}

// Transform multiplies the current transformation matrix by the given matrix.
// The transformation is applied in the order: current * m.
func (c *Context) Transform(m Matrix) {
	c.matrix = c.matrix.Multiply(m)
}

// SetTransform replaces the current transformation matrix with the given matrix.
func (c *Context) SetTransform(m Matrix) {
	c.matrix = m
}

// GetTransform returns a copy of the current transformation matrix.
func (c *Context) GetTransform() Matrix {
	return c.matrix
}

// TransformPoint transforms a point by the current matrix.
func (c *Context) TransformPoint(x, y float64) (float64, float64) {
	p := c.matrix.TransformPoint(Pt(x, y))
	return p.X, p.Y
}

// InvertY inverts the Y axis (useful for coordinate system changes).
func (c *Context) InvertY() {
	c.Translate(0, float64(c.height))
	c.Scale(1, -1)
}

// SetPixel sets a single pixel.
func (c *Context) SetPixel(x, y int, col RGBA) {
	c.pixmap.SetPixel(x, y, col)
}

// GetPixel returns a single pixel. Out-of-bounds coordinates return transparent.
func (c *Context) GetPixel(x, y int) RGBA {
	return c.pixmap.GetPixel(x, y)
}

// GetPixelARGB32 returns a single pixel packed as non-premultiplied ARGB32
// (A<<24)|(R<<16)|(G<<8)|B.
func (c *Context) GetPixelARGB32(x, y int) uint32 {
	return c.pixmap.GetPixelARGB32(x, y)
}

// SetPixelARGB32 sets a single pixel from a packed non-premultiplied ARGB32
// value (A<<24)|(R<<16)|(G<<8)|B.
func (c *Context) SetPixelARGB32(x, y int, argb uint32) {
	c.pixmap.SetPixelARGB32(x, y, argb)
}

// PixelsARGB32 returns the whole canvas as non-premultiplied ARGB32 words in
// row-major order.
func (c *Context) PixelsARGB32() []uint32 {
	return c.pixmap.PixelsARGB32()
}

// DrawPoint draws a single point at the given coordinates.
func (c *Context) DrawPoint(x, y, r float64) {
	c.DrawCircle(x, y, r)
}

// DrawLine draws a line between two points.
func (c *Context) DrawLine(x1, y1, x2, y2 float64) {
	c.MoveTo(x1, y1)
	c.LineTo(x2, y2)
}

// DrawRectangle draws a rectangle.
func (c *Context) DrawRectangle(x, y, w, h float64) {
	c.MoveTo(x, y)
	c.LineTo(x+w, y)
	c.LineTo(x+w, y+h)
	c.LineTo(x, y+h)
	c.ClosePath()
}

// DrawRoundedRectangle draws a rectangle with rounded corners.
func (c *Context) DrawRoundedRectangle(x, y, w, h, r float64) {
	c.path.RoundedRectangle(x, y, w, h, r)
}

// DrawCircle draws a circle.
func (c *Context) DrawCircle(x, y, r float64) {
	const k = 0.5522847498307936
	offset := r * k

	c.MoveTo(x+r, y)
	c.CubicTo(x+r, y+offset, x+offset, y+r, x, y+r)
	c.CubicTo(x-offset, y+r, x-r, y+offset, x-r, y)
	c.CubicTo(x-r, y-offset, x-offset, y-r, x, y-r)
	c.CubicTo(x+offset, y-r, x+r, y-offset, x+r, y)
	c.ClosePath()
}

// DrawEllipse draws an ellipse.
func (c *Context) DrawEllipse(x, y, rx, ry float64) {
	const k = 0.5522847498307936
	ox := rx * k
	oy := ry * k

	c.MoveTo(x+rx, y)
	c.CubicTo(x+rx, y+oy, x+ox, y+ry, x, y+ry)
	c.CubicTo(x-ox, y+ry, x-rx, y+oy, x-rx, y)
	c.CubicTo(x-rx, y-oy, x-ox, y-ry, x, y-ry)
	c.CubicTo(x+ox, y-ry, x+rx, y-oy, x+rx, y)
	c.ClosePath()
}

// DrawArc draws a circular arc.
func (c *Context) DrawArc(x, y, r, angle1, angle2 float64) {
	center := c.matrix.TransformPoint(Pt(x, y))

	const twoPi = 2 * math.Pi
	for angle2 < angle1 {
		angle2 += twoPi
	}

	const maxAngle = math.Pi / 2
	numSegments := int(math.Ceil((angle2 - angle1) / maxAngle))
	angleStep := (angle2 - angle1) / float64(numSegments)

	for i := 0; i < numSegments; i++ {
		a1 := angle1 + float64(i)*angleStep
		a2 := a1 + angleStep
		c.arcSegment(center.X, center.Y, r, a1, a2)
	}
}

// arcSegment draws a single arc segment.
func (c *Context) arcSegment(cx, cy, r, a1, a2 float64) {
	alpha := math.Sin(a2-a1) * (math.Sqrt(4+3*math.Tan((a2-a1)/2)*math.Tan((a2-a1)/2)) - 1) / 3

	cos1, sin1 := math.Cos(a1), math.Sin(a1)
	cos2, sin2 := math.Cos(a2), math.Sin(a2)

	x1 := cx + r*cos1
	y1 := cy + r*sin1
	x2 := cx + r*cos2
	y2 := cy + r*sin2

	c1x := x1 - alpha*r*sin1
	c1y := y1 + alpha*r*cos1
	c2x := x2 + alpha*r*sin2
	c2y := y2 - alpha*r*cos2

	if len(c.path.Elements()) == 0 {
		c.path.MoveTo(x1, y1)
	}
	c.path.CubicTo(c1x, c1y, c2x, c2y, x2, y2)
}

// DrawEllipticalArc draws an elliptical arc.
func (c *Context) DrawEllipticalArc(x, y, rx, ry, angle1, angle2 float64) {
	c.Push()
	c.Translate(x, y)
	c.Scale(rx, ry)
	c.DrawArc(0, 0, 1, angle1, angle2)
	c.Pop()
}

// currentColor returns the current drawing color from the paint.
// If the current pattern is a solid color, returns that color.
// Otherwise returns black as a fallback.
func (c *Context) currentColor() color.Color {
	if p, ok := c.paint.Pattern.(*SolidPattern); ok {
		return p.Color.Color()
	}
	return color.Black
}

// GetCurrentPoint returns the current point of the path.
// Returns (0, 0, false) if there is no current point.
func (c *Context) GetCurrentPoint() (x, y float64, ok bool) {
	if c.path == nil || !c.path.HasCurrentPoint() {
		return 0, 0, false
	}
	pt := c.path.CurrentPoint()
	return pt.X, pt.Y, true
}

// Resize changes the context dimensions, reusing internal buffers where possible.
// If the dimensions haven't changed, this is a no-op.
// Returns an error if width or height is <= 0.
//
// After Resize:
//   - The pixmap is reallocated only if dimensions changed
//   - The clip region is reset to the full rectangle
//   - The transformation matrix is preserved (Push/Pop stack is preserved)
//   - The current path is cleared
func (c *Context) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: dimensions must be positive, got %dx%d", ErrInvalidArgument, width, height)
	}

	if c.width == width && c.height == height {
		return nil
	}

	c.width = width
	c.height = height
	c.pixmap = NewPixmap(width, height)

	if sr, ok := c.renderer.(*SoftwareRenderer); ok {
		sr.Resize(width, height)
	}

	c.clipStack = nil
	c.ClearPath()

	return nil
}

// ResizeTarget returns the underlying pixmap for resize operations.
func (c *Context) ResizeTarget() *Pixmap {
	return c.pixmap
}

// doFill performs the fill operation using the software rasterizer.
func (c *Context) doFill() error {
	c.paint.ClipCoverage = c.clipCoverageFunc()
	return c.renderer.Fill(c.pixmap, c.path, c.paint)
}

// doStroke performs the stroke operation using the software rasterizer.
// A non-positive line width produces no output: an invalid stroke state
// is a no-op, not an error.
func (c *Context) doStroke() error {
	if c.paint.LineWidth <= 0 {
		Logger().Warn("degenerate stroke skipped",
			slog.Float64("lineWidth", c.paint.LineWidth))
		return nil
	}
	c.paint.TransformScale = c.matrix.ScaleFactor()
	c.paint.ClipCoverage = c.clipCoverageFunc()
	return c.renderer.Stroke(c.pixmap, c.path, c.paint)
}

// clipCoverageFunc builds the per-pixel coverage callback the renderer
// multiplies rasterized coverage by. It combines the clip stack (path and
// rectangle clips) with the alpha mask, sampling both at pixel centers.
// Returns nil when neither is active, so unclipped draws skip the lookup
// entirely.
func (c *Context) clipCoverageFunc() func(x, y int) uint8 {
	clipStack := c.clipStack
	mask := c.mask
	if clipStack == nil && mask == nil {
		return nil
	}
	return func(x, y int) uint8 {
		cov := uint16(255)
		if clipStack != nil {
			cov = uint16(clipStack.Coverage(float64(x)+0.5, float64(y)+0.5))
			if cov == 0 {
				return 0
			}
		}
		if mask != nil {
			cov = cov * uint16(mask.At(x, y)) / 255
		}
		return uint8(cov)
	}
}
