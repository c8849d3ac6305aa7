package geo

import (
	"github.com/dhconnelly/rtreego"
)

// pointEpsilon gives point entries a non-degenerate extent in the R-tree.
const pointEpsilon = 1e-7

// nearestCandidates is how many planar nearest neighbors are re-ranked by
// great-circle distance in [SpatialIndex.Nearest].
const nearestCandidates = 8

// BoundingBox is a geodetic rectangle in degrees.
type BoundingBox struct {
	MinLat, MinLon float64
	MaxLat, MaxLon float64
}

// Contains reports whether the point lies inside the box, edges included.
func (b BoundingBox) Contains(lat, lon float64) bool {
	return lat >= b.MinLat && lat <= b.MaxLat && lon >= b.MinLon && lon <= b.MaxLon
}

// Bounds returns the geodetic bounding box of all intersections and false
// when the graph is empty.
func (g *Graph) Bounds() (BoundingBox, bool) {
	var b BoundingBox
	first := true
	for _, in := range g.intersections {
		if first {
			b = BoundingBox{MinLat: in.Lat, MinLon: in.Lon, MaxLat: in.Lat, MaxLon: in.Lon}
			first = false
			continue
		}
		b.MinLat = min(b.MinLat, in.Lat)
		b.MinLon = min(b.MinLon, in.Lon)
		b.MaxLat = max(b.MaxLat, in.Lat)
		b.MaxLon = max(b.MaxLon, in.Lon)
	}
	return b, !first
}

// indexedIntersection adapts an intersection to rtreego.Spatial.
// Coordinates are stored as (lon, lat).
type indexedIntersection struct {
	in *Intersection
}

// Bounds implements rtreego.Spatial.
func (e indexedIntersection) Bounds() rtreego.Rect {
	rect, _ := rtreego.NewRect(rtreego.Point{e.in.Lon, e.in.Lat}, []float64{pointEpsilon, pointEpsilon})
	return rect
}

// SpatialIndex answers nearest-intersection and bounding-box queries over a
// snapshot of a graph's intersections.
type SpatialIndex struct {
	tree *rtreego.Rtree
	size int
}

// NewSpatialIndex indexes every intersection currently in g.
func NewSpatialIndex(g *Graph) *SpatialIndex {
	tree := rtreego.NewTree(2, 25, 50)
	for _, in := range g.intersections {
		tree.Insert(indexedIntersection{in: in})
	}
	return &SpatialIndex{tree: tree, size: len(g.intersections)}
}

// Len returns the number of indexed intersections.
func (s *SpatialIndex) Len() int { return s.size }

// Nearest returns the intersection closest to (lat, lon) by great-circle
// distance, and false when the index is empty.
func (s *SpatialIndex) Nearest(lat, lon float64) (*Intersection, bool) {
	if s.size == 0 {
		return nil, false
	}
	var (
		best     *Intersection
		bestDist float64
	)
	for _, sp := range s.tree.NearestNeighbors(nearestCandidates, rtreego.Point{lon, lat}) {
		e, ok := sp.(indexedIntersection)
		if !ok {
			continue
		}
		d := Haversine(lat, lon, e.in.Lat, e.in.Lon)
		if best == nil || d < bestDist || (d == bestDist && e.in.ID < best.ID) {
			best, bestDist = e.in, d
		}
	}
	return best, best != nil
}

// Within returns the intersections inside box.
func (s *SpatialIndex) Within(box BoundingBox) []*Intersection {
	w := box.MaxLon - box.MinLon
	h := box.MaxLat - box.MinLat
	if w <= 0 {
		w = pointEpsilon
	}
	if h <= 0 {
		h = pointEpsilon
	}
	rect, err := rtreego.NewRect(rtreego.Point{box.MinLon, box.MinLat}, []float64{w, h})
	if err != nil {
		return nil
	}
	var out []*Intersection
	for _, sp := range s.tree.SearchIntersect(rect) {
		e, ok := sp.(indexedIntersection)
		if ok && box.Contains(e.in.Lat, e.in.Lon) {
			out = append(out, e.in)
		}
	}
	return out
}
