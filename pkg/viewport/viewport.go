// Package viewport maintains the affine mapping from projected model space
// to device pixels.
//
// # Composition
//
// Every consumer uses one order, written the way a graphics context is
// configured: translate by (tx, ty), then scale uniformly, then rotate by
// the angle about the center of the focus rectangle. A model point m maps to
//
//	device = t + s·R(m)
//
// where R rotates about the focus center. [Viewport.Matrix] returns this
// transform; renderers must not assemble their own.
//
// # Gestures
//
// [Viewport] exposes instantaneous state updates (pan, rotate, zoom around a
// pivot) plus two composites used after geometry changes: fit-to-bounds and
// centering. [Controller] turns discrete host input events (drags, zoom
// gestures, scroll ticks and the rotate modifier) into those calls.
//
// A Viewport is meant to be driven by a single event loop and is not safe
// for concurrent use.
package viewport

import "math"

// Point is a 2D point.
type Point struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle with its origin at the top-left corner.
type Rect struct {
	X, Y float64
	W, H float64
}

// Center returns the center of r.
func (r Rect) Center() Point {
	return Point{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Viewport holds pan, zoom and rotation state for a panel of fixed pixel
// size.
type Viewport struct {
	tx, ty float64
	scale  float64
	angle  float64
	focus  Rect

	panelW float64
	panelH float64
}

// New creates a viewport for a panel of the given size with identity
// transform state.
func New(panelW, panelH float64) *Viewport {
	return &Viewport{scale: 1, panelW: panelW, panelH: panelH}
}

// Translate returns the current translation.
func (v *Viewport) Translate() (float64, float64) { return v.tx, v.ty }

// Scale returns the current scale factor. It is always positive.
func (v *Viewport) Scale() float64 { return v.scale }

// Angle returns the accumulated rotation in radians.
func (v *Viewport) Angle() float64 { return v.angle }

// Focus returns the focus rectangle in model space.
func (v *Viewport) Focus() Rect { return v.focus }

// PanelSize returns the device panel size in pixels.
func (v *Viewport) PanelSize() (float64, float64) { return v.panelW, v.panelH }

// SetPanelSize changes the panel size. The transform is left unchanged;
// call [Viewport.Center] to recenter.
func (v *Viewport) SetPanelSize(w, h float64) {
	v.panelW, v.panelH = w, h
}

// Pan moves the content by (dx, dy) device pixels.
func (v *Viewport) Pan(dx, dy float64) {
	v.tx += dx
	v.ty += dy
}

// Rotate adds d radians of rotation about the focus center.
func (v *Viewport) Rotate(d float64) {
	v.angle += d
}

// ZoomAround multiplies the scale by factor while keeping the content under
// the device point (px, py) in place. A factor that would make the scale
// non-positive or non-finite is ignored.
func (v *Viewport) ZoomAround(factor, px, py float64) {
	next := v.scale * factor
	if next <= 0 || math.IsNaN(next) || math.IsInf(next, 0) {
		return
	}
	v.tx = factor*v.tx + (1-factor)*px
	v.ty = factor*v.ty + (1-factor)*py
	v.scale = next
}

// FitToBounds replaces the focus rectangle and recenters. Scale and
// rotation are kept.
func (v *Viewport) FitToBounds(focus Rect) {
	v.focus = focus
	v.Center()
}

// Center sets the translation so the focus center lands on the panel
// center at the current scale. At scale 1 this is
//
//	tx = −focus.X + (panelW − focus.W)/2
//
// and in general tx = −scale·focus.X + (panelW − scale·focus.W)/2.
// Rotation is about the focus center, so it does not affect the result.
func (v *Viewport) Center() {
	v.tx = -v.scale*v.focus.X + (v.panelW-v.focus.W*v.scale)/2
	v.ty = -v.scale*v.focus.Y + (v.panelH-v.focus.H*v.scale)/2
}

// Reset restores identity scale, rotation and translation. The focus
// rectangle is kept.
func (v *Viewport) Reset() {
	v.tx, v.ty = 0, 0
	v.scale = 1
	v.angle = 0
}

// Matrix returns the composed model-to-device transform.
func (v *Viewport) Matrix() Matrix {
	c := v.focus.Center()
	return Translation(v.tx, v.ty).
		Multiply(Scaling(v.scale)).
		Multiply(RotationAbout(v.angle, c.X, c.Y))
}

// ToDevice maps a model point to device pixels.
func (v *Viewport) ToDevice(x, y float64) (float64, float64) {
	return v.Matrix().Apply(x, y)
}

// ToModel maps a device pixel back to model space.
func (v *Viewport) ToModel(x, y float64) (float64, float64) {
	inv, ok := v.Matrix().Invert()
	if !ok {
		return math.NaN(), math.NaN()
	}
	return inv.Apply(x, y)
}

// State is a snapshot of the transform parameters.
type State struct {
	TranslateX float64 `json:"translate_x"`
	TranslateY float64 `json:"translate_y"`
	Scale      float64 `json:"scale"`
	Angle      float64 `json:"angle"`
	Focus      Rect    `json:"focus"`
}

// State returns a snapshot of the current transform parameters.
func (v *Viewport) State() State {
	return State{TranslateX: v.tx, TranslateY: v.ty, Scale: v.scale, Angle: v.angle, Focus: v.focus}
}
