// Package render draws a [mapview.View] as SVG, a Graphviz drawing, PNG, PDF
// or a character grid for terminals.
//
// All renderers work from the view's projected positions and its viewport
// matrix, so a render always shows exactly what the viewport shows. Roads on
// the highlighted path are drawn red with a 2 pixel stroke on top of the
// other roads, which are black with a 1 pixel stroke.
//
//	v := mapview.NewDefault(g)
//	v.ResetView(mapview.DefaultMinPixelWidth)
//	svg := render.RenderSVG(v, render.WithDebug())
//	png, err := render.ToPNG(svg, 2.0)
//
// # Format Conversion
//
// [ToPDF] and [ToPNG] convert SVG with the external rsvg-convert tool from
// librsvg.
//
// # Graphviz
//
// [ToDOT] emits a neato graph whose node positions are pinned to the view's
// device coordinates, and [RenderDOT] lays it out with go-graphviz. The
// result is a schematic drawing with labeled intersections.
package render
