package render

import (
	"context"
	"fmt"
	"strings"
	"testing"

	errs "github.com/matzehuels/trailblazer/pkg/errors"
	"github.com/matzehuels/trailblazer/pkg/geo"
	"github.com/matzehuels/trailblazer/pkg/mapview"
	"github.com/matzehuels/trailblazer/pkg/route"
)

func testView(t *testing.T) *mapview.View {
	t.Helper()
	g := geo.New()
	g.AddIntersection("A", 43.1300, -77.6300)
	g.AddIntersection("B", 43.1310, -77.6250)
	g.AddIntersection("C", 43.1280, -77.6270)
	g.AddIntersection("D", 43.1330, -77.6200)
	for _, r := range [][3]string{{"AB", "A", "B"}, {"BC", "B", "C"}, {"BD", "B", "D"}} {
		if _, err := g.AddRoad(r[0], r[1], r[2]); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := route.NewRouter(g).FindShortestPath("A", "D"); err != nil {
		t.Fatal(err)
	}
	v := mapview.NewDefault(g)
	v.ResetView(mapview.DefaultMinPixelWidth)
	return v
}

func TestRenderSVG(t *testing.T) {
	svg := string(RenderSVG(testView(t)))

	if !strings.HasPrefix(svg, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 1280 800"`) {
		t.Errorf("unexpected root element: %.80s", svg)
	}
	if n := strings.Count(svg, "<line "); n != 3 {
		t.Errorf("line count = %d, want 3", n)
	}
	if n := strings.Count(svg, `stroke="red" stroke-width="2"`); n != 2 {
		t.Errorf("highlighted lines = %d, want 2", n)
	}
	if n := strings.Count(svg, `stroke="black" stroke-width="1"`); n != 1 {
		t.Errorf("plain lines = %d, want 1", n)
	}
	// Highlighted roads are drawn after plain ones.
	if strings.Index(svg, `id="road-BC"`) > strings.Index(svg, `id="road-AB"`) {
		t.Error("plain road BC should precede highlighted road AB")
	}
	if strings.Contains(svg, DebugColor) {
		t.Error("debug box drawn without WithDebug")
	}
}

func TestRenderSVGOptions(t *testing.T) {
	v := testView(t)
	svg := string(RenderSVG(v,
		WithDebug(),
		WithLabels(),
		WithBackground(""),
		WithImages(Image{Rect: v.BoundingBox(), MIME: "image/png", Data: []byte("x")}),
	))

	if !strings.Contains(svg, `stroke="blue"`) {
		t.Error("WithDebug should outline the bounding box in blue")
	}
	if n := strings.Count(svg, "<circle "); n != 4 {
		t.Errorf("circle count = %d, want 4", n)
	}
	if !strings.Contains(svg, "<title>A</title>") {
		t.Error("labels should carry intersection ids")
	}
	if strings.Contains(svg, `fill="white"`) {
		t.Error("empty background should not paint the panel")
	}
	if !strings.Contains(svg, `href="data:image/png;base64,eA=="`) {
		t.Error("image should be embedded as a data URI")
	}
	if !strings.Contains(svg, `transform="`+v.Viewport().Matrix().SVG()+`"`) {
		t.Error("groups should use the viewport matrix")
	}
}

func TestToDOT(t *testing.T) {
	v := testView(t)
	dot := ToDOT(v, DOTOptions{Labels: true})

	for _, want := range []string{
		"graph G {",
		"layout=neato;",
		`"A" -- "B" [id="AB", color=red, penwidth=2];`,
		`"B" -- "C" [id="BC", color=black, penwidth=1];`,
		`xlabel="D"`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q", want)
		}
	}

	a, _ := v.Graph().Intersection("A")
	x, y := v.Viewport().ToDevice(a.X, a.Y)
	pos := fmt.Sprintf(`"A" [pos="%.2f,%.2f!"`, x, 800-y)
	if !strings.Contains(dot, pos) {
		t.Errorf("DOT missing pinned position %s", pos)
	}
}

func TestRenderDispatch(t *testing.T) {
	ctx := context.Background()
	v := testView(t)

	data, err := Render(ctx, v, FormatSVG, Options{Debug: true})
	if err != nil || !strings.Contains(string(data), "blue") {
		t.Errorf("Render svg: %v", err)
	}
	data, err = Render(ctx, v, FormatDOT, Options{})
	if err != nil || !strings.HasPrefix(string(data), "graph G {") {
		t.Errorf("Render dot: %v", err)
	}
	if _, err := Render(ctx, v, "bmp", Options{}); !errs.Is(err, errs.ErrCodeUnsupported) {
		t.Errorf("Render bmp err = %v, want UNSUPPORTED", err)
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := map[string]string{
		"map.svg":     FormatSVG,
		"map.PNG":     FormatPNG,
		"out/map.pdf": FormatPDF,
		"map.gv":      FormatDOT,
		"map":         FormatSVG,
	}
	for path, want := range tests {
		if got := FormatFromPath(path); got != want {
			t.Errorf("FormatFromPath(%q) = %q, want %q", path, got, want)
		}
	}
}
