package viewport

import (
	"math"
	"testing"
)

func TestControllerDrag(t *testing.T) {
	v := New(1280, 800)
	c := NewController(v)

	c.OnDrag(10, 20)
	if tx, ty := v.Translate(); tx != 10 || ty != 20 {
		t.Errorf("drag translate = (%v, %v), want (10, 20)", tx, ty)
	}

	c.OnRotateModifierChanged(true)
	if !c.Rotating() {
		t.Fatal("Rotating() = false after modifier pressed")
	}
	c.OnDrag(99, 250)
	if tx, ty := v.Translate(); tx != 10 || ty != 20 {
		t.Errorf("rotating drag should not pan, translate = (%v, %v)", tx, ty)
	}
	if want := 250 * math.Pi / 500; math.Abs(v.Angle()-want) > 1e-12 {
		t.Errorf("Angle() = %v, want %v", v.Angle(), want)
	}

	c.OnRotateModifierChanged(false)
	c.OnDrag(1, 1)
	if tx, _ := v.Translate(); tx != 11 {
		t.Errorf("drag after release translate x = %v, want 11", tx)
	}
}

func TestControllerZoomGesture(t *testing.T) {
	v := New(1280, 800)
	c := NewController(v)

	c.OnZoomGesture(2, Point{X: 100, Y: 100})
	if v.Scale() != 2 {
		t.Errorf("Scale() = %v, want 2", v.Scale())
	}
	if tx, ty := v.Translate(); tx != -100 || ty != -100 {
		t.Errorf("Translate() = (%v, %v), want (-100, -100)", tx, ty)
	}
}

func TestControllerScroll(t *testing.T) {
	tests := []struct {
		name      string
		units     []float64
		wantScale float64
	}{
		{"zoom out one tick", []float64{1}, 0.9},
		{"zoom in two ticks", []float64{-1, -1}, 1.2},
		{"overshoot ignored", []float64{10}, 1},
		{"overshoot then valid", []float64{20, 3}, 0.7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := New(1280, 800)
			c := NewController(v)
			for _, u := range tt.units {
				c.OnScroll(u, Point{X: 640, Y: 400})
			}
			if math.Abs(v.Scale()-tt.wantScale) > 1e-9 {
				t.Errorf("Scale() = %v, want %v", v.Scale(), tt.wantScale)
			}
		})
	}
}
