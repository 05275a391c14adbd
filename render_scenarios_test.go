package pathkit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// End-to-end rendering checks: each test drives the full pipeline (path →
// rasterizer → clip → paint → blend → pixmap) and asserts literal pixel
// values, rather than poking at any one stage in isolation.

func TestFillRectanglePixels(t *testing.T) {
	dc, err := NewContext(100, 100)
	require.NoError(t, err)

	dc.SetFillColor(Red)
	dc.MoveTo(10, 10)
	dc.LineTo(40, 10)
	dc.LineTo(40, 30)
	dc.LineTo(10, 30)
	dc.ClosePath()
	require.NoError(t, dc.Fill())

	assert.Equal(t, uint32(0xFFFF0000), dc.GetPixelARGB32(25, 20), "interior pixel")
	assert.Equal(t, uint32(0x00000000), dc.GetPixelARGB32(5, 5), "outside, above-left")
	assert.Equal(t, uint32(0x00000000), dc.GetPixelARGB32(50, 25), "outside, right")
}

func TestFillLeavesUncoveredPixelsUntouched(t *testing.T) {
	dc, err := NewContext(100, 100)
	require.NoError(t, err)

	dc.ClearWithColor(White)
	before := dc.Pixmap().PixelsARGB32()

	dc.SetFillColor(Blue)
	dc.DrawRectangle(20, 20, 10, 10)
	require.NoError(t, dc.Fill())

	after := dc.Pixmap().PixelsARGB32()
	for y := 0; y < 100; y++ {
		for x := 0; x < 100; x++ {
			if x >= 19 && x <= 31 && y >= 19 && y <= 31 {
				continue // filled region plus its anti-aliased fringe
			}
			assert.Equal(t, before[y*100+x], after[y*100+x], "pixel (%d,%d)", x, y)
		}
	}
}

func TestClipCircleRestrictsFill(t *testing.T) {
	dc, err := NewContext(200, 200)
	require.NoError(t, err)

	dc.SetFillColor(Black)
	dc.DrawRectangle(0, 0, 200, 200)
	require.NoError(t, dc.Fill())

	dc.DrawCircle(100, 100, 50)
	dc.Clip()

	dc.SetFillColor(Blue)
	dc.DrawRectangle(0, 0, 200, 200)
	require.NoError(t, dc.Fill())

	center := dc.GetPixel(100, 100)
	assert.InDelta(t, 1.0, center.B, 0.02, "center is blue")
	assert.InDelta(t, 1.0, center.A, 0.01, "center is opaque")

	corner := dc.GetPixel(10, 10)
	assert.InDelta(t, 0.0, corner.B, 0.02, "outside clip stays black")
	assert.InDelta(t, 1.0, corner.A, 0.01)

	outer := dc.GetPixel(160, 160)
	assert.InDelta(t, 0.0, outer.B, 0.02, "outside clip stays black")

	// Just inside the bottom of the circle: an anti-aliased boundary pixel
	// composed over the black base, still fully opaque and mostly blue.
	edge := dc.GetPixel(100, 148)
	assert.GreaterOrEqual(t, edge.A, 254.0/255.0)
	assert.Greater(t, edge.B, 0.5, "boundary pixel is mostly blue")
	assert.Greater(t, edge.B, edge.R)
}

// Clipping twice by the same pixel-aligned region equals clipping once.
// (A pixel-aligned rectangle has exact 0-or-255 mask coverage everywhere;
// fractional anti-aliased mask coverage composes multiplicatively when
// stacked, so a curved clip is only idempotent away from its boundary.)
func TestClipIsIdempotent(t *testing.T) {
	render := func(clips int) []uint32 {
		dc, err := NewContext(80, 80)
		require.NoError(t, err)
		for i := 0; i < clips; i++ {
			dc.DrawRectangle(10, 10, 50, 50)
			dc.Clip()
		}
		dc.SetFillColor(Green)
		dc.DrawRectangle(0, 0, 80, 80)
		require.NoError(t, dc.Fill())
		return dc.Pixmap().PixelsARGB32()
	}

	assert.Equal(t, render(1), render(2))
}

func TestIntersectionFillPixels(t *testing.T) {
	a := NewPath()
	a.Rectangle(10, 10, 30, 30) // (10,10)-(40,40)
	b := NewPath()
	b.Rectangle(25, 25, 30, 30) // (25,25)-(55,55)

	result := Intersection(a, b)
	require.NotNil(t, result)

	dc, err := NewContext(100, 100)
	require.NoError(t, err)
	dc.SetFillColor(Green)
	require.NoError(t, dc.FillPath(result))

	assert.Equal(t, uint32(0xFF00FF00), dc.GetPixelARGB32(30, 30), "inside both rectangles")
	assert.Equal(t, uint32(0x00000000), dc.GetPixelARGB32(15, 15), "inside only A")
	assert.Equal(t, uint32(0x00000000), dc.GetPixelARGB32(50, 50), "inside only B")
}

func TestButtCapStrokePixels(t *testing.T) {
	dc, err := NewContext(100, 100)
	require.NoError(t, err)

	dc.SetStrokeColor(Black)
	dc.SetLineWidth(20)
	dc.SetLineCap(LineCapButt)
	dc.MoveTo(10, 50)
	dc.LineTo(90, 50)
	require.NoError(t, dc.Stroke())

	assert.Equal(t, uint32(0xFF000000), dc.GetPixelARGB32(48, 50), "on the line")
	assert.Equal(t, uint32(0xFF000000), dc.GetPixelARGB32(50, 59), "within half-width below")
	assert.Equal(t, uint32(0x00000000), dc.GetPixelARGB32(95, 50), "past the butt end")
	assert.Equal(t, uint32(0x00000000), dc.GetPixelARGB32(50, 65), "past the stroke edge")
}

func TestLinearGradientPadFillPixels(t *testing.T) {
	dc, err := NewContext(100, 50)
	require.NoError(t, err)

	g := NewLinearGradientBrush(0, 0, 100, 0).
		AddColorStop(0, Red).
		AddColorStop(1, Blue)
	dc.SetFillBrush(g)
	dc.DrawRectangle(0, 0, 100, 50)
	require.NoError(t, dc.Fill())

	left := dc.GetPixel(0, 25)
	assert.Greater(t, left.R*255, 200.0, "left edge is red-dominant")
	assert.Less(t, left.B*255, 60.0)

	mid := dc.GetPixel(50, 25)
	assert.Greater(t, mid.R*255, 100.0, "middle mixes red and blue")
	assert.Greater(t, mid.B*255, 100.0)
	assert.Less(t, mid.G*255, 40.0)

	right := dc.GetPixel(99, 25)
	assert.Greater(t, right.B*255, 200.0, "right edge is blue-dominant")
	assert.Less(t, right.R*255, 60.0)
}

func TestPushPopRestoresFillPaint(t *testing.T) {
	dc, err := NewContext(10, 10)
	require.NoError(t, err)

	dc.SetFillColor(Red)
	dc.Push()
	dc.SetFillColor(Green)
	dc.Push()
	dc.SetFillColor(Blue)

	assert.Equal(t, Blue, dc.FillBrush().ColorAt(0, 0))
	dc.Pop()
	assert.Equal(t, Green, dc.FillBrush().ColorAt(0, 0))
	dc.Pop()
	assert.Equal(t, Red, dc.FillBrush().ColorAt(0, 0))

	// Pop on an empty stack leaves the bottom state unchanged.
	dc.Pop()
	assert.Equal(t, Red, dc.FillBrush().ColorAt(0, 0))
}

func TestDashedStrokePixels(t *testing.T) {
	dc, err := NewContext(100, 60)
	require.NoError(t, err)

	dc.SetStrokeColor(Black)
	dc.SetLineWidth(10)
	dc.SetLineCap(LineCapButt)
	dc.SetDash(20, 10)
	dc.MoveTo(10, 30)
	dc.LineTo(90, 30)
	require.NoError(t, dc.Stroke())

	// Pattern [20,10] from x=10: on [10,30), off [30,40), on [40,60),
	// off [60,70), on [70,90). Sample away from the dash boundaries.
	assert.Equal(t, uint32(0xFF000000), dc.GetPixelARGB32(20, 30), "first dash")
	assert.Equal(t, uint32(0x00000000), dc.GetPixelARGB32(35, 30), "first gap")
	assert.Equal(t, uint32(0xFF000000), dc.GetPixelARGB32(50, 30), "second dash")
	assert.Equal(t, uint32(0x00000000), dc.GetPixelARGB32(65, 30), "second gap")
	assert.Equal(t, uint32(0xFF000000), dc.GetPixelARGB32(80, 30), "third dash")
}

func TestOpaqueSourceOverEqualsSource(t *testing.T) {
	render := func(mode BlendMode) []uint32 {
		dc, err := NewContext(40, 40)
		require.NoError(t, err)
		dc.ClearWithColor(White)
		dc.SetBlendMode(mode)
		dc.SetFillColor(Red)
		dc.DrawRectangle(10, 10, 20, 20)
		require.NoError(t, dc.Fill())
		return dc.Pixmap().PixelsARGB32()
	}

	over := render(BlendSrcOver)
	src := render(BlendSrc)
	// Compare only fully-covered interior pixels: at partial coverage the
	// two operators legitimately differ (src replaces, srcOver blends).
	for y := 12; y < 28; y++ {
		for x := 12; x < 28; x++ {
			assert.Equal(t, over[y*40+x], src[y*40+x], "pixel (%d,%d)", x, y)
		}
	}
}

func TestBlendModeIsPartOfSavedState(t *testing.T) {
	dc, err := NewContext(10, 10)
	require.NoError(t, err)

	dc.SetBlendMode(BlendMultiply)
	dc.Push()
	dc.SetBlendMode(BlendScreen)
	assert.Equal(t, BlendScreen, dc.BlendMode())
	dc.Pop()
	assert.Equal(t, BlendMultiply, dc.BlendMode())
}

func TestMultiplyBlendDarkens(t *testing.T) {
	dc, err := NewContext(20, 20)
	require.NoError(t, err)

	dc.ClearWithColor(RGB(0.5, 0.5, 0.5))
	dc.SetBlendMode(BlendMultiply)
	dc.SetFillColor(RGB(0.5, 0.5, 0.5))
	dc.DrawRectangle(0, 0, 20, 20)
	require.NoError(t, dc.Fill())

	got := dc.GetPixel(10, 10)
	assert.InDelta(t, 0.25, got.R, 0.03, "0.5 * 0.5 multiply")
	assert.InDelta(t, 1.0, got.A, 0.01)
}

func TestClearBlendErasesCoveredPixels(t *testing.T) {
	dc, err := NewContext(20, 20)
	require.NoError(t, err)

	dc.ClearWithColor(White)
	dc.SetBlendMode(BlendClear)
	dc.SetFillColor(Red)
	dc.DrawRectangle(5, 5, 10, 10)
	require.NoError(t, dc.Fill())

	assert.Equal(t, uint32(0x00000000), dc.GetPixelARGB32(10, 10), "covered pixel cleared")
	assert.Equal(t, uint32(0xFFFFFFFF), dc.GetPixelARGB32(2, 2), "uncovered pixel untouched")
}

func TestResetRestoresDefaultState(t *testing.T) {
	dc, err := NewContext(50, 50)
	require.NoError(t, err)

	dc.SetFillColor(Red)
	dc.Translate(10, 10)
	dc.DrawRectangle(0, 0, 5, 5)
	dc.Clip()
	dc.SetBlendMode(BlendMultiply)
	dc.Push()

	dc.Reset()

	assert.True(t, dc.GetTransform().IsIdentity())
	assert.Equal(t, BlendSrcOver, dc.BlendMode())
	assert.Equal(t, Black, dc.FillBrush().ColorAt(0, 0))

	// The clip is gone: a full-canvas fill reaches every pixel again.
	dc.SetFillColor(Blue)
	dc.DrawRectangle(0, 0, 50, 50)
	require.NoError(t, dc.Fill())
	assert.Equal(t, uint32(0xFF0000FF), dc.GetPixelARGB32(45, 45))
}

func TestClipRectConfinesFill(t *testing.T) {
	dc, err := NewContext(60, 60)
	require.NoError(t, err)

	dc.ClipRect(10, 10, 20, 20)
	dc.SetFillColor(Red)
	dc.DrawRectangle(0, 0, 60, 60)
	require.NoError(t, dc.Fill())

	assert.Equal(t, uint32(0xFFFF0000), dc.GetPixelARGB32(15, 15), "inside the clip")
	assert.Equal(t, uint32(0x00000000), dc.GetPixelARGB32(40, 15), "right of the clip")
	assert.Equal(t, uint32(0x00000000), dc.GetPixelARGB32(15, 40), "below the clip")

	dc.ResetClip()
	dc.DrawRectangle(0, 0, 60, 60)
	require.NoError(t, dc.Fill())
	assert.Equal(t, uint32(0xFFFF0000), dc.GetPixelARGB32(40, 40), "reachable after ResetClip")
}

func TestMaskModulatesFillCoverage(t *testing.T) {
	dc, err := NewContext(30, 30)
	require.NoError(t, err)

	mask := NewMask(30, 30)
	mask.Fill(128)
	dc.SetMask(mask)

	dc.SetFillColor(Red)
	dc.DrawRectangle(0, 0, 30, 30)
	require.NoError(t, dc.Fill())

	got := dc.GetPixel(15, 15)
	assert.InDelta(t, 128.0/255.0, got.A, 0.02, "mask halves the coverage")
	assert.InDelta(t, 1.0, got.R, 0.02)

	dc.ClearMask()
	dc.DrawRectangle(0, 0, 30, 30)
	require.NoError(t, dc.Fill())
	assert.InDelta(t, 1.0, dc.GetPixel(15, 15).A, 0.01, "full coverage after ClearMask")
}
