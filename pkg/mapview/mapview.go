// Package mapview ties a road network, a map projection and a viewport into
// the view state a renderer draws from.
//
// [View.Project] assigns planar positions to every intersection.
// [View.BoundingBox] measures the projected content in whole pixels, and
// [View.ResetView] picks a projection zoom level that makes the content
// span the projection width before fitting and centering the viewport on
// it.
package mapview

import (
	"math"

	"github.com/matzehuels/trailblazer/pkg/geo"
	"github.com/matzehuels/trailblazer/pkg/projection"
	"github.com/matzehuels/trailblazer/pkg/viewport"
)

// Defaults used by the CLI, the terminal viewer and the server.
const (
	DefaultPanelWidth    = 1280
	DefaultPanelHeight   = 800
	DefaultMinPixelWidth = 12
)

// MaxZoomLevel bounds the zoom search in [View.ResetView]. Content whose
// projected width is still below the minimum at this level (a single
// point, or coincident points) is fitted as is.
const MaxZoomLevel = 32

// View is the projected, transformable rendering state of a graph.
type View struct {
	graph      *geo.Graph
	projection projection.Projection
	viewport   *viewport.Viewport
	bbox       viewport.Rect
}

// New creates a view of g. The viewport panel takes the projection's size.
func New(g *geo.Graph, p projection.Projection) *View {
	return &View{
		graph:      g,
		projection: p,
		viewport:   viewport.New(p.Width(), p.Height()),
	}
}

// NewDefault creates a view with a Web Mercator projection at zoom 0 over
// the default 1280×800 panel.
func NewDefault(g *geo.Graph) *View {
	return New(g, projection.NewWebMercator(DefaultPanelWidth, DefaultPanelHeight, 0))
}

// Graph returns the viewed graph.
func (v *View) Graph() *geo.Graph { return v.graph }

// Projection returns the projection.
func (v *View) Projection() projection.Projection { return v.projection }

// Viewport returns the viewport.
func (v *View) Viewport() *viewport.Viewport { return v.viewport }

// Project assigns every intersection its planar position under the current
// projection parameters and recomputes the bounding box.
func (v *View) Project() {
	for _, in := range v.graph.Intersections() {
		in.SetPosition(v.projection.Project(in.Lat, in.Lon))
	}
	v.bbox = v.computeBoundingBox()
}

// BoundingBox returns the box computed by the last [View.Project].
func (v *View) BoundingBox() viewport.Rect { return v.bbox }

// computeBoundingBox spans the projected intersections, with every
// coordinate rounded to the nearest pixel. It is empty for an empty graph.
func (v *View) computeBoundingBox() viewport.Rect {
	var minX, minY, maxX, maxY float64
	first := true
	for _, in := range v.graph.Intersections() {
		x, y := math.Round(in.X), math.Round(in.Y)
		if first {
			minX, minY, maxX, maxY = x, y, x, y
			first = false
			continue
		}
		minX, maxX = min(minX, x), max(maxX, x)
		minY, maxY = min(minY, y), max(maxY, y)
	}
	return viewport.Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// ResetView rescales the projection so the content fills the projection
// width, then fits and centers the viewport on it.
//
// While the projected content is narrower than minPixelWidth pixels the
// zoom level is raised one step at a time. The final level is then
//
//	zoom' = log2(projectionWidth / (bboxWidth / 2^zoom))
//
// after which intersections are reprojected, the bounding box recomputed,
// and the viewport fitted to it and centered.
func (v *View) ResetView(minPixelWidth float64) {
	v.Project()
	if v.graph.IntersectionCount() == 0 {
		v.viewport.FitToBounds(v.bbox)
		return
	}

	for v.bbox.W < minPixelWidth && v.projection.ZoomLevel() < MaxZoomLevel {
		v.projection.SetZoomLevel(v.projection.ZoomLevel() + 1)
		v.Project()
	}

	if v.bbox.W > 0 {
		worldWidth := v.bbox.W / math.Pow(2, v.projection.ZoomLevel())
		v.projection.SetZoomLevel(math.Log2(v.projection.Width() / worldWidth))
		v.Project()
	}

	v.viewport.FitToBounds(v.bbox)
	v.viewport.Center()
}

// RoadSegment is a road in device coordinates.
type RoadSegment struct {
	Road   *geo.Road
	X1, Y1 float64
	X2, Y2 float64
}

// Segments returns every road transformed to device pixels.
func (v *View) Segments() []RoadSegment {
	m := v.viewport.Matrix()
	roads := v.graph.Roads()
	out := make([]RoadSegment, len(roads))
	for i, r := range roads {
		x1, y1 := m.Apply(r.A.X, r.A.Y)
		x2, y2 := m.Apply(r.B.X, r.B.Y)
		out[i] = RoadSegment{Road: r, X1: x1, Y1: y1, X2: x2, Y2: y2}
	}
	return out
}

// VisibleRect returns the axis-aligned projected region covered by the
// panel under the current viewport.
func (v *View) VisibleRect() viewport.Rect {
	w, h := v.viewport.PanelSize()
	corners := [4]viewport.Point{{X: 0, Y: 0}, {X: w, Y: 0}, {X: 0, Y: h}, {X: w, Y: h}}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, c := range corners {
		x, y := v.viewport.ToModel(c.X, c.Y)
		minX, maxX = min(minX, x), max(maxX, x)
		minY, maxY = min(minY, y), max(maxY, y)
	}
	return viewport.Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// IntersectionAt returns the intersection nearest to the device point
// (px, py) within radius pixels.
func (v *View) IntersectionAt(px, py, radius float64) (*geo.Intersection, bool) {
	m := v.viewport.Matrix()
	var (
		best     *geo.Intersection
		bestDist = radius
	)
	for _, in := range v.graph.Intersections() {
		x, y := m.Apply(in.X, in.Y)
		if d := math.Hypot(x-px, y-py); d <= bestDist {
			best, bestDist = in, d
		}
	}
	return best, best != nil
}
