package render

import (
	"bytes"
	"encoding/base64"
	"fmt"

	"github.com/matzehuels/trailblazer/pkg/mapview"
	"github.com/matzehuels/trailblazer/pkg/viewport"
)

// Image is a raster placed in projected coordinates, such as a map tile.
type Image struct {
	Rect viewport.Rect
	MIME string
	Data []byte
}

// SVGOption configures [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	debug      bool
	labels     bool
	background string
	images     []Image
}

// WithDebug outlines the focus bounding box in blue.
func WithDebug() SVGOption { return func(r *svgRenderer) { r.debug = true } }

// WithLabels marks intersections with a dot carrying its id as a tooltip.
func WithLabels() SVGOption { return func(r *svgRenderer) { r.labels = true } }

// WithBackground fills the panel with color. An empty color is transparent.
func WithBackground(color string) SVGOption {
	return func(r *svgRenderer) { r.background = color }
}

// WithImages draws images under the roads.
func WithImages(imgs ...Image) SVGOption {
	return func(r *svgRenderer) { r.images = append(r.images, imgs...) }
}

// RenderSVG draws the view at its panel size.
func RenderSVG(v *mapview.View, opts ...SVGOption) []byte {
	r := svgRenderer{background: "white"}
	for _, opt := range opts {
		opt(&r)
	}

	w, h := v.Viewport().PanelSize()
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.0f %.0f" width="%.0f" height="%.0f">`+"\n", w, h, w, h)
	if r.background != "" {
		fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", escapeXML(r.background))
	}

	transform := v.Viewport().Matrix().SVG()
	if len(r.images) > 0 {
		fmt.Fprintf(&buf, `  <g id="tiles" transform="%s">`+"\n", transform)
		for _, img := range r.images {
			fmt.Fprintf(&buf, `    <image x="%.2f" y="%.2f" width="%.2f" height="%.2f" preserveAspectRatio="none" href="data:%s;base64,%s"/>`+"\n",
				img.Rect.X, img.Rect.Y, img.Rect.W, img.Rect.H, img.MIME, base64.StdEncoding.EncodeToString(img.Data))
		}
		buf.WriteString("  </g>\n")
	}

	renderRoads(&buf, v.Segments())

	if r.labels {
		renderIntersections(&buf, v)
	}
	if r.debug {
		b := v.BoundingBox()
		fmt.Fprintf(&buf, `  <g id="debug" transform="%s">`+"\n", transform)
		fmt.Fprintf(&buf, `    <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="none" stroke="%s" stroke-width="1" vector-effect="non-scaling-stroke"/>`+"\n",
			b.X, b.Y, b.W, b.H, DebugColor)
		buf.WriteString("  </g>\n")
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// renderRoads draws plain roads first so highlighted ones stay on top.
func renderRoads(buf *bytes.Buffer, segs []mapview.RoadSegment) {
	buf.WriteString(`  <g id="roads" stroke-linecap="round">` + "\n")
	for _, pass := range []bool{false, true} {
		for _, s := range segs {
			if s.Road.Highlighted != pass {
				continue
			}
			color, width := strokeOf(pass)
			fmt.Fprintf(buf, `    <line id="road-%s" x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="%d"/>`+"\n",
				escapeXML(s.Road.ID), s.X1, s.Y1, s.X2, s.Y2, color, width)
		}
	}
	buf.WriteString("  </g>\n")
}

func renderIntersections(buf *bytes.Buffer, v *mapview.View) {
	m := v.Viewport().Matrix()
	buf.WriteString(`  <g id="intersections" fill="black">` + "\n")
	for _, in := range v.Graph().Intersections() {
		x, y := m.Apply(in.X, in.Y)
		fmt.Fprintf(buf, `    <circle cx="%.2f" cy="%.2f" r="2"><title>%s</title></circle>`+"\n", x, y, escapeXML(in.ID))
	}
	buf.WriteString("  </g>\n")
}
