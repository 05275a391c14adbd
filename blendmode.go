package pathkit

import "github.com/pathkit-go/pathkit/internal/blend"

// BlendMode selects the compositing formula used when one layer or paint
// operation is combined with another. It covers the full Porter-Duff
// operator set plus the CSS/PDF separable and non-separable blend modes.
type BlendMode = blend.BlendMode

// Porter-Duff compositing operators, plus the separable and non-separable
// blend modes from the W3C Compositing and Blending specification.
const (
	BlendClear   = blend.BlendClear
	BlendSrc     = blend.BlendSource
	BlendDst     = blend.BlendDestination
	BlendSrcOver = blend.BlendSourceOver
	// BlendNormal is the default compositing mode (source-over), named to
	// match common paint-program terminology.
	BlendNormal  = blend.BlendSourceOver
	BlendDstOver = blend.BlendDestinationOver
	BlendSrcIn   = blend.BlendSourceIn
	BlendDstIn   = blend.BlendDestinationIn
	BlendSrcOut  = blend.BlendSourceOut
	BlendDstOut  = blend.BlendDestinationOut
	BlendSrcAtop = blend.BlendSourceAtop
	BlendDstAtop = blend.BlendDestinationAtop
	BlendXor     = blend.BlendXor
	BlendPlus    = blend.BlendPlus

	BlendMultiply   = blend.BlendMultiply
	BlendScreen     = blend.BlendScreen
	BlendOverlay    = blend.BlendOverlay
	BlendDarken     = blend.BlendDarken
	BlendLighten    = blend.BlendLighten
	BlendColorDodge = blend.BlendColorDodge
	BlendColorBurn  = blend.BlendColorBurn
	BlendHardLight  = blend.BlendHardLight
	BlendSoftLight  = blend.BlendSoftLight
	BlendDifference = blend.BlendDifference
	BlendExclusion  = blend.BlendExclusion

	BlendHue        = blend.BlendHue
	BlendSaturation = blend.BlendSaturation
	BlendColor      = blend.BlendColor
	BlendLuminosity = blend.BlendLuminosity
)
