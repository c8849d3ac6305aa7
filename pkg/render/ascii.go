package render

import (
	"math"

	"github.com/matzehuels/trailblazer/pkg/mapview"
)

// Cell kinds of a [Grid], in drawing priority order.
const (
	CellEmpty byte = iota
	CellRoad
	CellHighlight
	CellIntersection
)

// Glyphs maps a cell kind to its character.
var Glyphs = [...]rune{CellEmpty: ' ', CellRoad: '·', CellHighlight: '#', CellIntersection: 'o'}

// Grid is a character raster of a view.
type Grid struct {
	Cols, Rows int
	Cells      []byte // row-major cell kinds
}

// At returns the cell kind at (col, row).
func (g *Grid) At(col, row int) byte { return g.Cells[row*g.Cols+col] }

// Lines returns the grid as text, one string per row.
func (g *Grid) Lines() []string {
	out := make([]string, g.Rows)
	line := make([]rune, g.Cols)
	for r := range g.Rows {
		for c := range g.Cols {
			line[c] = Glyphs[g.At(c, r)]
		}
		out[r] = string(line)
	}
	return out
}

func (g *Grid) plot(col, row int, kind byte) {
	if col < 0 || row < 0 || col >= g.Cols || row >= g.Rows {
		return
	}
	if i := row*g.Cols + col; kind > g.Cells[i] {
		g.Cells[i] = kind
	}
}

// RenderGrid rasterizes the view's panel onto cols×rows character cells.
// Roads are traced with Bresenham lines; intersections are marked on top.
func RenderGrid(v *mapview.View, cols, rows int) *Grid {
	g := &Grid{Cols: max(cols, 0), Rows: max(rows, 0)}
	g.Cells = make([]byte, g.Cols*g.Rows)
	if g.Cols == 0 || g.Rows == 0 {
		return g
	}

	w, h := v.Viewport().PanelSize()
	sx, sy := float64(g.Cols)/w, float64(g.Rows)/h
	cell := func(x, y float64) (int, int) {
		return int(math.Floor(x * sx)), int(math.Floor(y * sy))
	}

	for _, s := range v.Segments() {
		kind := CellRoad
		if s.Road.Highlighted {
			kind = CellHighlight
		}
		c0, r0 := cell(s.X1, s.Y1)
		c1, r1 := cell(s.X2, s.Y2)
		g.line(c0, r0, c1, r1, kind)
	}

	m := v.Viewport().Matrix()
	for _, in := range v.Graph().Intersections() {
		c, r := cell(m.Apply(in.X, in.Y))
		g.plot(c, r, CellIntersection)
	}
	return g
}

// maxLineSteps bounds the work for segments far outside the panel.
const maxLineSteps = 1 << 14

func (g *Grid) line(c0, r0, c1, r1 int, kind byte) {
	dc, dr := abs(c1-c0), -abs(r1-r0)
	sc, sr := sign(c1-c0), sign(r1-r0)
	e := dc + dr
	for range maxLineSteps {
		g.plot(c0, r0, kind)
		if c0 == c1 && r0 == r1 {
			return
		}
		e2 := 2 * e
		if e2 >= dr {
			e += dr
			c0 += sc
		}
		if e2 <= dc {
			e += dc
			r0 += sr
		}
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func sign(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	}
	return 0
}
