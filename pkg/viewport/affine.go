package viewport

import (
	"fmt"
	"math"
)

// Matrix is a 2D affine transform:
//
//	| A C E |
//	| B D F |
//	| 0 0 1 |
//
// The field layout matches the SVG matrix(a b c d e f) notation.
type Matrix struct {
	A, B, C, D, E, F float64
}

// Identity is the identity transform.
var Identity = Matrix{A: 1, D: 1}

// Translation returns a transform translating by (tx, ty).
func Translation(tx, ty float64) Matrix {
	return Matrix{A: 1, D: 1, E: tx, F: ty}
}

// Scaling returns a uniform scaling transform.
func Scaling(s float64) Matrix {
	return Matrix{A: s, D: s}
}

// RotationAbout returns a rotation by angle radians about (cx, cy).
func RotationAbout(angle, cx, cy float64) Matrix {
	sin, cos := math.Sincos(angle)
	return Matrix{
		A: cos, B: sin,
		C: -sin, D: cos,
		E: cx - cos*cx + sin*cy,
		F: cy - sin*cx - cos*cy,
	}
}

// Multiply returns m·n, the transform applying n first and then m.
func (m Matrix) Multiply(n Matrix) Matrix {
	return Matrix{
		A: m.A*n.A + m.C*n.B,
		B: m.B*n.A + m.D*n.B,
		C: m.A*n.C + m.C*n.D,
		D: m.B*n.C + m.D*n.D,
		E: m.A*n.E + m.C*n.F + m.E,
		F: m.B*n.E + m.D*n.F + m.F,
	}
}

// Apply transforms the point (x, y).
func (m Matrix) Apply(x, y float64) (float64, float64) {
	return m.A*x + m.C*y + m.E, m.B*x + m.D*y + m.F
}

// Determinant returns the determinant of the linear part.
func (m Matrix) Determinant() float64 { return m.A*m.D - m.B*m.C }

// Invert returns the inverse transform and false when m is singular.
func (m Matrix) Invert() (Matrix, bool) {
	det := m.Determinant()
	if det == 0 || math.IsNaN(det) {
		return Matrix{}, false
	}
	return Matrix{
		A: m.D / det,
		B: -m.B / det,
		C: -m.C / det,
		D: m.A / det,
		E: (m.C*m.F - m.D*m.E) / det,
		F: (m.B*m.E - m.A*m.F) / det,
	}, true
}

// SVG formats m as an SVG transform attribute value.
func (m Matrix) SVG() string {
	return fmt.Sprintf("matrix(%g %g %g %g %g %g)", m.A, m.B, m.C, m.D, m.E, m.F)
}
