package viewport

import "math"

// DragRotateRate converts vertical drag pixels to radians while the rotate
// modifier is held.
const DragRotateRate = math.Pi / 500

// ScrollStep is the scale change per scroll unit.
const ScrollStep = 0.1

// Controller translates host input events into viewport updates.
type Controller struct {
	view     *Viewport
	rotating bool
}

// NewController creates a controller driving v.
func NewController(v *Viewport) *Controller {
	return &Controller{view: v}
}

// Viewport returns the controlled viewport.
func (c *Controller) Viewport() *Viewport { return c.view }

// Rotating reports whether the rotate modifier is held.
func (c *Controller) Rotating() bool { return c.rotating }

// OnDrag handles pointer movement by (dx, dy) with a button held. It pans,
// or rotates by dy·π/500 while the rotate modifier is held.
func (c *Controller) OnDrag(dx, dy float64) {
	if c.rotating {
		c.view.Rotate(dy * DragRotateRate)
		return
	}
	c.view.Pan(dx, dy)
}

// OnZoomGesture zooms by factor around the device point pivot.
func (c *Controller) OnZoomGesture(factor float64, pivot Point) {
	c.view.ZoomAround(factor, pivot.X, pivot.Y)
}

// OnScroll handles a scroll of units ticks at pivot. Positive units zoom
// out: the scale changes by -units·0.1. Scrolls that would reach a
// non-positive scale are ignored.
func (c *Controller) OnScroll(units float64, pivot Point) {
	s := c.view.Scale()
	c.OnZoomGesture((s-units*ScrollStep)/s, pivot)
}

// OnRotateModifierChanged records whether the rotate modifier is held.
func (c *Controller) OnRotateModifierChanged(held bool) {
	c.rotating = held
}
