package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/trailblazer/pkg/mapview"
)

// DOTOptions configures [ToDOT].
type DOTOptions struct {
	// Labels prints intersection ids next to their nodes.
	Labels bool
}

// ToDOT converts the view to an undirected Graphviz graph for the neato
// engine. Node positions are the view's device coordinates in points,
// flipped to Graphviz's upward y axis and pinned, so neato keeps the
// geography instead of running its own layout.
func ToDOT(v *mapview.View, opts DOTOptions) string {
	_, h := v.Viewport().PanelSize()
	m := v.Viewport().Matrix()

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  inputscale=72;\n")
	buf.WriteString("  notranslate=true;\n")
	buf.WriteString("  overlap=true;\n")
	buf.WriteString("  splines=line;\n")
	buf.WriteString("  outputorder=edgesfirst;\n")
	buf.WriteString("  bgcolor=\"white\";\n")
	buf.WriteString("  node [shape=point, width=0.05, color=black, fontsize=8];\n")
	buf.WriteString("\n")

	for _, in := range v.Graph().Intersections() {
		x, y := m.Apply(in.X, in.Y)
		attrs := fmt.Sprintf("pos=\"%.2f,%.2f!\"", x, h-y)
		if opts.Labels {
			attrs += fmt.Sprintf(", xlabel=%q", in.ID)
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", in.ID, attrs)
	}

	buf.WriteString("\n")
	for _, r := range v.Graph().Roads() {
		color, width := strokeOf(r.Highlighted)
		fmt.Fprintf(&buf, "  %q -- %q [id=%q, color=%s, penwidth=%d];\n", r.A.ID, r.B.ID, r.ID, color, width)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderDOT lays out a DOT graph with neato and renders it to SVG.
func RenderDOT(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's point-sized root element with one
// sized in pixels.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}
	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}
	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
