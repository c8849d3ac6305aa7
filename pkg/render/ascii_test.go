package render

import (
	"strings"
	"testing"

	"github.com/matzehuels/trailblazer/pkg/geo"
	"github.com/matzehuels/trailblazer/pkg/mapview"
)

func TestRenderGrid(t *testing.T) {
	v := testView(t)
	grid := RenderGrid(v, 80, 24)

	counts := map[byte]int{}
	for _, c := range grid.Cells {
		counts[c]++
	}
	if counts[CellIntersection] == 0 || counts[CellIntersection] > 4 {
		t.Errorf("intersection cells = %d, want 1..4", counts[CellIntersection])
	}
	if counts[CellHighlight] == 0 {
		t.Error("highlighted path should be drawn")
	}
	if counts[CellRoad] == 0 {
		t.Error("plain road should be drawn")
	}

	lines := grid.Lines()
	if len(lines) != 24 || len([]rune(lines[0])) != 80 {
		t.Errorf("Lines() = %d rows of %d runes", len(lines), len([]rune(lines[0])))
	}
	if !strings.ContainsRune(strings.Join(lines, ""), '#') {
		t.Error("Lines() should contain the highlight glyph")
	}
}

func TestRenderGridLine(t *testing.T) {
	g := geo.New()
	g.AddIntersection("W", 0, -10)
	g.AddIntersection("E", 0, 10)
	if _, err := g.AddRoad("WE", "W", "E"); err != nil {
		t.Fatal(err)
	}
	v := mapview.NewDefault(g)
	v.ResetView(mapview.DefaultMinPixelWidth)

	grid := RenderGrid(v, 40, 10)
	best, bestRow := 0, -1
	for r := range grid.Rows {
		n := 0
		for c := range grid.Cols {
			if grid.At(c, r) != CellEmpty {
				n++
			}
		}
		if n > best {
			best, bestRow = n, r
		}
	}
	// The road spans the panel width on a single row.
	if best < 36 {
		t.Errorf("row %d has %d drawn cells, want a full-width road", bestRow, best)
	}
	if bestRow != 4 && bestRow != 5 {
		t.Errorf("road on row %d, want the middle row", bestRow)
	}
}

func TestRenderGridEmpty(t *testing.T) {
	grid := RenderGrid(testView(t), 0, 10)
	if len(grid.Cells) != 0 || len(grid.Lines()) != 10 {
		t.Errorf("zero-width grid: %d cells, %d lines", len(grid.Cells), len(grid.Lines()))
	}
}
