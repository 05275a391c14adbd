package pathkit

// LineCap specifies the shape of line endpoints.
type LineCap int

const (
	// LineCapButt specifies a flat line cap.
	LineCapButt LineCap = iota
	// LineCapRound specifies a rounded line cap.
	LineCapRound
	// LineCapSquare specifies a square line cap.
	LineCapSquare
)

// LineJoin specifies the shape of line joins.
type LineJoin int

const (
	// LineJoinMiter specifies a sharp (mitered) join.
	LineJoinMiter LineJoin = iota
	// LineJoinRound specifies a rounded join.
	LineJoinRound
	// LineJoinBevel specifies a beveled join.
	LineJoinBevel
)

// FillRule specifies how to determine which areas are inside a path.
type FillRule int

const (
	// FillRuleNonZero uses the non-zero winding rule.
	FillRuleNonZero FillRule = iota
	// FillRuleEvenOdd uses the even-odd rule.
	FillRuleEvenOdd
)

// Paint represents the styling information for drawing.
type Paint struct {
	// Brush is the fill or stroke brush (the current API). Takes precedence
	// over Pattern when both are set.
	Brush Brush

	// Pattern is the legacy fill or stroke pattern, kept in sync with Brush
	// by SetBrush for callers that still address the Pattern interface
	// directly (e.g. SetFillPattern/SetStrokePattern).
	Pattern Pattern

	// StrokeBrush, when non-nil, styles stroke operations independently of
	// Brush. When nil, strokes fall back to Brush, so callers that only
	// ever set one brush get the same color for fills and strokes.
	StrokeBrush Brush

	// LineWidth is the width of strokes
	LineWidth float64

	// LineCap is the shape of line endpoints
	LineCap LineCap

	// LineJoin is the shape of line joins
	LineJoin LineJoin

	// MiterLimit is the miter limit for sharp joins
	MiterLimit float64

	// FillRule is the fill rule for paths
	FillRule FillRule

	// BlendMode selects how fills and strokes composite against the
	// pixels already on the target. Note the zero value is BlendClear;
	// NewPaint initializes this to BlendSrcOver.
	BlendMode BlendMode

	// ClipCoverage, when non-nil, returns the combined clip/mask coverage
	// (0-255) for a device pixel. The renderer multiplies rasterized
	// coverage by this before compositing. Context sets it per draw call
	// from its clip stack and alpha mask; nil means unclipped.
	ClipCoverage func(x, y int) uint8

	// Antialias enables anti-aliasing
	Antialias bool

	// GlobalAlpha is an additional [0,1] opacity multiplier applied on top
	// of whatever alpha the brush/pattern itself samples, matching the
	// graphics-state global_alpha.
	GlobalAlpha float64

	// TransformScale is the scalar scale factor of the context's current
	// transform at the time of the draw call, used to keep stroke/curve
	// flattening tolerances accurate under magnification.
	TransformScale float64

	// Stroke carries the dash pattern on top of the per-property stroke
	// state above (LineWidth/LineCap/LineJoin/MiterLimit). It stays nil
	// until a caller sets a dash, since Width/Cap/Join/MiterLimit are
	// already tracked individually and don't need duplicating here.
	Stroke *Stroke
}

// NewPaint creates a new Paint with default values.
func NewPaint() *Paint {
	return &Paint{
		Brush:          SolidBrush{Color: Black},
		Pattern:        NewSolidPattern(Black),
		LineWidth:      1.0,
		LineCap:        LineCapButt,
		LineJoin:       LineJoinMiter,
		MiterLimit:     10.0,
		FillRule:       FillRuleNonZero,
		BlendMode:      BlendSrcOver,
		Antialias:      true,
		GlobalAlpha:    1.0,
		TransformScale: 1.0,
	}
}

// Clone creates a copy of the Paint.
func (p *Paint) Clone() *Paint {
	clone := &Paint{
		Brush:          p.Brush,
		Pattern:        p.Pattern,
		StrokeBrush:    p.StrokeBrush,
		LineWidth:      p.LineWidth,
		LineCap:        p.LineCap,
		LineJoin:       p.LineJoin,
		MiterLimit:     p.MiterLimit,
		FillRule:       p.FillRule,
		BlendMode:      p.BlendMode,
		Antialias:      p.Antialias,
		GlobalAlpha:    p.GlobalAlpha,
		TransformScale: p.TransformScale,
		ClipCoverage:   p.ClipCoverage,
	}
	if p.Stroke != nil {
		s := p.Stroke.Clone()
		clone.Stroke = &s
	}
	return clone
}

// SetStroke applies a complete Stroke style to the paint, splitting it back
// into the individual LineWidth/LineCap/LineJoin/MiterLimit fields plus,
// when the style is dashed, the Stroke field that carries the pattern.
func (p *Paint) SetStroke(s Stroke) {
	p.LineWidth = s.Width
	p.LineCap = s.Cap
	p.LineJoin = s.Join
	p.MiterLimit = s.MiterLimit
	if s.Dash != nil {
		stored := s.Clone()
		p.Stroke = &stored
	} else {
		p.Stroke = nil
	}
}

// GetStroke reassembles a Stroke value from the paint's individual fields
// plus any dash pattern carried on Stroke.
func (p *Paint) GetStroke() Stroke {
	s := Stroke{
		Width:      p.LineWidth,
		Cap:        p.LineCap,
		Join:       p.LineJoin,
		MiterLimit: p.MiterLimit,
	}
	if p.Stroke != nil {
		s.Dash = p.Stroke.Dash
	}
	return s
}

// IsDashed reports whether the paint's stroke currently uses a dash
// pattern rather than a solid line.
func (p *Paint) IsDashed() bool {
	return p.Stroke != nil && p.Stroke.IsDashed()
}

// EffectiveLineWidth returns the stroke width a render call would actually
// use: SetStroke keeps LineWidth in sync with Stroke.Width, so this is
// just LineWidth, named to pair with the other Effective* accessors below.
func (p *Paint) EffectiveLineWidth() float64 {
	return p.LineWidth
}

// EffectiveLineCap returns the line cap a render call would actually use.
func (p *Paint) EffectiveLineCap() LineCap {
	return p.LineCap
}

// EffectiveLineJoin returns the line join a render call would actually use.
func (p *Paint) EffectiveLineJoin() LineJoin {
	return p.LineJoin
}

// EffectiveMiterLimit returns the miter limit a render call would actually use.
func (p *Paint) EffectiveMiterLimit() float64 {
	return p.MiterLimit
}

// EffectiveDash returns the dash pattern a render call would actually use,
// or nil for a solid stroke.
func (p *Paint) EffectiveDash() *Dash {
	if p.Stroke == nil {
		return nil
	}
	return p.Stroke.Dash
}

// SetBrush sets the paint's brush, keeping the legacy Pattern field in sync
// for code that still reads Pattern directly.
func (p *Paint) SetBrush(b Brush) {
	p.Brush = b
	p.Pattern = PatternFromBrush(b)
}

// GetBrush returns the paint's brush. If no Brush is set but a Pattern is,
// the Pattern is wrapped into a Brush. If neither is set, a default opaque
// black SolidBrush is returned.
func (p *Paint) GetBrush() Brush {
	if p.Brush != nil {
		return p.Brush
	}
	if p.Pattern != nil {
		return BrushFromPattern(p.Pattern)
	}
	return SolidBrush{Color: Black}
}

// GetStrokeBrush returns the brush stroke operations use: the dedicated
// StrokeBrush when one is set, otherwise the same brush fills use.
func (p *Paint) GetStrokeBrush() Brush {
	if p.StrokeBrush != nil {
		return p.StrokeBrush
	}
	return p.GetBrush()
}

// ColorAt samples the paint's effective brush at the given coordinates,
// preferring Brush over Pattern when both are set.
func (p *Paint) ColorAt(x, y float64) RGBA {
	if p.Brush != nil {
		return p.Brush.ColorAt(x, y)
	}
	if p.Pattern != nil {
		return p.Pattern.ColorAt(x, y)
	}
	return Black
}
