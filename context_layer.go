package pathkit

import (
	"github.com/pathkit-go/pathkit/internal/blend"
	intImage "github.com/pathkit-go/pathkit/internal/image"
)

// Layer represents a drawing layer with blend mode and opacity.
// Layers allow isolating drawing operations and compositing them with
// different blend modes and opacity values, similar to layers in Photoshop
// or SVG group opacity.
type Layer struct {
	pixmap    *Pixmap
	blendMode BlendMode
	opacity   float64
}

// layerStack manages the layer hierarchy for the context.
type layerStack struct {
	layers []*Layer
	pool   *intImage.Pool
}

// newLayerStack creates a new layer stack with a pool for memory reuse.
func newLayerStack() *layerStack {
	return &layerStack{
		layers: make([]*Layer, 0, 4),
		pool:   intImage.NewPool(8),
	}
}

// PushLayer creates a new layer and makes it the active drawing target.
// All subsequent drawing operations will render to this layer until PopLayer is called.
//
// The layer will be composited onto the parent layer/canvas when PopLayer is called,
// using the specified blend mode and opacity.
//
// Parameters:
//   - blendMode: How to composite this layer onto the parent (e.g., BlendMultiply, BlendScreen)
//   - opacity: Layer opacity in range [0.0, 1.0] where 0 is fully transparent and 1 is fully opaque
//
// Example:
//
//	dc.PushLayer(pathkit.BlendMultiply, 0.5)
//	dc.SetRGB(1, 0, 0)
//	dc.DrawCircle(100, 100, 50)
//	dc.Fill()
//	dc.PopLayer() // Composite circle onto canvas with multiply blend at 50% opacity
func (c *Context) PushLayer(blendMode BlendMode, opacity float64) {
	// Clamp opacity to valid range
	if opacity < 0 {
		opacity = 0
	}
	if opacity > 1 {
		opacity = 1
	}

	// Initialize layer stack if needed
	if c.layerStack == nil {
		c.layerStack = newLayerStack()
	}

	// Save base pixmap on first push
	if len(c.layerStack.layers) == 0 && c.basePixmap == nil {
		c.basePixmap = c.pixmap
	}

	// Create new pixmap for the layer (same size as context), reusing a
	// pooled buffer when one of the right size is available.
	buf := c.layerStack.pool.Get(c.width * c.height * 4)
	layerPixmap := NewPixmapWithBuffer(c.width, c.height, buf)
	layerPixmap.Clear(Transparent)

	// Create layer
	layer := &Layer{
		pixmap:    layerPixmap,
		blendMode: blendMode,
		opacity:   opacity,
	}

	// Save current pixmap and switch to layer pixmap
	c.layerStack.layers = append(c.layerStack.layers, layer)
	c.pixmap = layerPixmap
}

// PopLayer composites the current layer onto the parent layer/canvas.
// Uses the blend mode and opacity specified in the corresponding PushLayer call.
//
// The layer is composited using the specified blend mode and opacity.
// After compositing, the layer's memory is returned to the pool for reuse.
//
// If there are no layers to pop, this function does nothing.
//
// Example:
//
//	dc.PushLayer(pathkit.BlendScreen, 1.0)
//	// ... draw operations ...
//	dc.PopLayer() // Composite layer onto parent
func (c *Context) PopLayer() {
	if c.layerStack == nil || len(c.layerStack.layers) == 0 {
		return
	}

	// Pop the current layer
	layers := c.layerStack.layers
	layer := layers[len(layers)-1]
	c.layerStack.layers = layers[:len(layers)-1]

	// Get parent pixmap (either previous layer or base)
	var parentPixmap *Pixmap
	if len(c.layerStack.layers) > 0 {
		parentPixmap = c.layerStack.layers[len(c.layerStack.layers)-1].pixmap
	} else {
		// Restore base pixmap
		parentPixmap = c.basePixmap
		c.basePixmap = nil
	}

	// Composite layer onto parent
	c.compositeLayer(layer, parentPixmap)

	// Return the layer's buffer to the pool for the next PushLayer.
	c.layerStack.pool.Put(layer.pixmap.Data())

	// Restore parent pixmap as current drawing target
	c.pixmap = parentPixmap
}

// SetBlendMode sets the blend mode for subsequent fill and stroke
// operations. The mode is part of the graphics state: it is saved by Push
// and restored by Pop, and is independent of the per-layer mode passed to
// PushLayer.
//
// Example:
//
//	dc.SetBlendMode(pathkit.BlendMultiply)
//	dc.Fill() // composites with multiply
func (c *Context) SetBlendMode(mode BlendMode) {
	c.paint.BlendMode = mode
}

// BlendMode returns the blend mode used by fill and stroke operations.
func (c *Context) BlendMode() BlendMode {
	return c.paint.BlendMode
}

// compositeLayer composites a layer onto a parent pixmap using the layer's
// blend mode and opacity. Blending is performed in premultiplied-alpha
// space, per the Porter-Duff and separable/non-separable formulas in
// internal/blend, then converted back to the straight-alpha storage used
// by Pixmap.
func (c *Context) compositeLayer(layer *Layer, parent *Pixmap) {
	blendFunc := blend.GetBlendFunc(layer.blendMode)
	w, h := layer.pixmap.Width(), layer.pixmap.Height()

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			sr, sg, sb, sa := premultiply(layer.pixmap.GetPixel(x, y), layer.opacity)
			if sa == 0 {
				continue
			}
			dr, dg, db, da := premultiply(parent.GetPixel(x, y), 1.0)

			rr, rg, rb, ra := blendFunc(sr, sg, sb, sa, dr, dg, db, da)
			parent.SetPixel(x, y, unpremultiply(rr, rg, rb, ra))
		}
	}
}

// premultiply converts a straight-alpha color to premultiplied 8-bit
// channels, scaling alpha by opacity first.
func premultiply(c RGBA, opacity float64) (r, g, b, a uint8) {
	alpha := clampT(c.A * opacity)
	r = uint8(clamp255(c.R * alpha * 255))
	g = uint8(clamp255(c.G * alpha * 255))
	b = uint8(clamp255(c.B * alpha * 255))
	a = uint8(clamp255(alpha * 255))
	return r, g, b, a
}

// unpremultiply converts premultiplied 8-bit channels back to a
// straight-alpha RGBA color.
func unpremultiply(r, g, b, a uint8) RGBA {
	if a == 0 {
		return Transparent
	}
	alpha := float64(a) / 255
	return RGBA{
		R: float64(r) / 255 / alpha,
		G: float64(g) / 255 / alpha,
		B: float64(b) / 255 / alpha,
		A: alpha,
	}
}
