// Package projection converts geodetic coordinates to planar pixel
// coordinates.
//
// A [Projection] exposes the pixel dimensions of its projection space and a
// real-valued zoom level; every assignment of the zoom level recomputes the
// tile count 2^zoom used by the projection formula.
//
// [WebMercator] is the supported implementation. It performs no latitude
// clamping: inputs near the poles (beyond about ±85.0511°) produce extreme
// or non-finite y values, and keeping input in range is the caller's job.
package projection

import "math"

// MaxLatitude is the latitude at which Web Mercator maps to a square world.
const MaxLatitude = 85.05112878

// Projection maps latitude/longitude in degrees to planar coordinates.
type Projection interface {
	// Width and Height are the pixel dimensions of the projection space.
	Width() float64
	Height() float64
	SetWidth(w float64)
	SetHeight(h float64)

	// ZoomLevel is a real-valued exponent of two.
	ZoomLevel() float64
	SetZoomLevel(z float64)

	// Project returns the planar position of (lat, lon).
	Project(lat, lon float64) (x, y float64)
}

// WebMercator is the Web Mercator projection.
//
// The zero value has no extent; use [NewWebMercator].
type WebMercator struct {
	width    float64
	height   float64
	zoom     float64
	numTiles float64
}

// NewWebMercator creates a projection with the given pixel size and zoom.
func NewWebMercator(width, height, zoom float64) *WebMercator {
	p := &WebMercator{width: width, height: height}
	p.SetZoomLevel(zoom)
	return p
}

func (p *WebMercator) Width() float64      { return p.width }
func (p *WebMercator) Height() float64     { return p.height }
func (p *WebMercator) SetWidth(w float64)  { p.width = w }
func (p *WebMercator) SetHeight(h float64) { p.height = h }
func (p *WebMercator) ZoomLevel() float64  { return p.zoom }

// SetZoomLevel sets the zoom level and recomputes the tile count.
func (p *WebMercator) SetZoomLevel(z float64) {
	p.zoom = z
	p.numTiles = math.Pow(2, z)
}

// NumTiles returns 2^ZoomLevel.
func (p *WebMercator) NumTiles() float64 { return p.numTiles }

// Project implements [Projection].
//
//	x = (w/2π)·2^z·(λ + π)
//	y = (h/2π)·2^z·(π − ln(tan(π/4 + φ/2)))
func (p *WebMercator) Project(lat, lon float64) (float64, float64) {
	phi := lat * math.Pi / 180
	lambda := lon * math.Pi / 180

	x := (p.width / (2 * math.Pi)) * p.numTiles * (lambda + math.Pi)
	y := (p.height / (2 * math.Pi)) * p.numTiles * (math.Pi - math.Log(math.Tan(math.Pi/4+phi/2)))
	return x, y
}

// Unproject inverts [WebMercator.Project].
func (p *WebMercator) Unproject(x, y float64) (lat, lon float64) {
	lambda := x*2*math.Pi/(p.width*p.numTiles) - math.Pi
	phi := 2*math.Atan(math.Exp(math.Pi-y*2*math.Pi/(p.height*p.numTiles))) - math.Pi/2
	return phi * 180 / math.Pi, lambda * 180 / math.Pi
}

var _ Projection = (*WebMercator)(nil)
