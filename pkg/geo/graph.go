package geo

import (
	"errors"
	"math"
	"slices"
	"strings"

	errs "github.com/matzehuels/trailblazer/pkg/errors"
)

var (
	// ErrUnknownIntersection is wrapped by [Graph.AddRoad] when either
	// endpoint is not present in the graph.
	ErrUnknownIntersection = errors.New("unknown intersection")

	// ErrInvalidDistance is wrapped by [Graph.AddRoadWithDistance] when the
	// given length is negative, infinite or NaN. Dijkstra requires
	// non-negative finite weights.
	ErrInvalidDistance = errors.New("invalid road distance")
)

// Intersection is a node of the road network.
//
// Lat and Lon are geodetic coordinates in degrees. X and Y hold the planar
// position assigned by the most recent projection; they are zero until the
// network has been projected.
type Intersection struct {
	ID  string
	Lat float64
	Lon float64

	X float64
	Y float64
}

// SetPosition stores the projected planar position.
func (i *Intersection) SetPosition(x, y float64) {
	i.X, i.Y = x, y
}

// Equal reports whether two intersections have the same identifier and
// coordinates.
func (i *Intersection) Equal(o *Intersection) bool {
	if i == nil || o == nil {
		return i == o
	}
	return i.ID == o.ID && i.Lat == o.Lat && i.Lon == o.Lon
}

// Road is an undirected edge between two intersections.
//
// Distance is the length in miles, fixed when the road is created.
// Highlighted is set by routing when the road belongs to the most recently
// computed path.
type Road struct {
	ID          string
	A           *Intersection
	B           *Intersection
	Distance    float64
	Highlighted bool
}

// NewRoad creates a road between a and b measured with [Haversine].
func NewRoad(id string, a, b *Intersection) *Road {
	return &Road{
		ID:       id,
		A:        a,
		B:        b,
		Distance: Haversine(a.Lat, a.Lon, b.Lat, b.Lon),
	}
}

// Equal reports whether r and o connect the same pair of intersections,
// regardless of the order the endpoints were given in.
func (r *Road) Equal(o *Road) bool {
	if r == nil || o == nil {
		return r == o
	}
	return (r.A.Equal(o.A) && r.B.Equal(o.B)) ||
		(r.A.Equal(o.B) && r.B.Equal(o.A))
}

// Other returns the endpoint opposite to end, or nil when end is not an
// endpoint of r.
func (r *Road) Other(end *Intersection) *Intersection {
	switch {
	case r.A.Equal(end):
		return r.B
	case r.B.Equal(end):
		return r.A
	default:
		return nil
	}
}

// OtherID is like [Road.Other] but works on identifiers.
// It returns "" when id is not an endpoint of r.
func (r *Road) OtherID(id string) string {
	switch id {
	case r.A.ID:
		return r.B.ID
	case r.B.ID:
		return r.A.ID
	default:
		return ""
	}
}

// Graph is a road network: intersections, roads and their adjacency.
//
// The zero value is not usable; use [New].
type Graph struct {
	intersections map[string]*Intersection
	roads         []*Road
	adjacency     map[string]map[string]*Road // id -> neighbor id -> road
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		intersections: make(map[string]*Intersection),
		adjacency:     make(map[string]map[string]*Road),
	}
}

// AddIntersection inserts the intersection id, or replaces its coordinates
// when it already exists (last write wins). Replacing keeps the same
// *Intersection so existing roads keep pointing at it; their distances are
// not recomputed. Adjacency of other intersections is never touched.
func (g *Graph) AddIntersection(id string, lat, lon float64) *Intersection {
	if in, ok := g.intersections[id]; ok {
		in.Lat, in.Lon = lat, lon
		return in
	}
	in := &Intersection{ID: id, Lat: lat, Lon: lon}
	g.intersections[id] = in
	return in
}

// AddRoad connects two existing intersections with a road whose length is
// the haversine distance between them.
//
// It returns a NOT_FOUND error wrapping [ErrUnknownIntersection] if either
// endpoint is missing, in which case the graph is left unchanged.
func (g *Graph) AddRoad(id, aID, bID string) (*Road, error) {
	a, b, err := g.endpoints(id, aID, bID)
	if err != nil {
		return nil, err
	}
	r := NewRoad(id, a, b)
	g.link(r)
	return r, nil
}

// AddRoadWithDistance is like [Graph.AddRoad] but uses the given length in
// miles instead of measuring it.
func (g *Graph) AddRoadWithDistance(id, aID, bID string, miles float64) (*Road, error) {
	if miles < 0 || math.IsNaN(miles) || math.IsInf(miles, 0) {
		return nil, errs.Wrap(errs.ErrCodeInvalidInput, ErrInvalidDistance, "road %q: distance %v", id, miles)
	}
	a, b, err := g.endpoints(id, aID, bID)
	if err != nil {
		return nil, err
	}
	r := &Road{ID: id, A: a, B: b, Distance: miles}
	g.link(r)
	return r, nil
}

func (g *Graph) endpoints(id, aID, bID string) (*Intersection, *Intersection, error) {
	a, ok := g.intersections[aID]
	if !ok {
		return nil, nil, errs.Wrap(errs.ErrCodeNotFound, ErrUnknownIntersection, "road %q: intersection %q", id, aID)
	}
	b, ok := g.intersections[bID]
	if !ok {
		return nil, nil, errs.Wrap(errs.ErrCodeNotFound, ErrUnknownIntersection, "road %q: intersection %q", id, bID)
	}
	return a, b, nil
}

// link appends r and registers it in both endpoints' adjacency.
// When parallel roads join the same pair, adjacency keeps the shortest.
func (g *Graph) link(r *Road) {
	g.roads = append(g.roads, r)
	if cur := g.adjacency[r.A.ID][r.B.ID]; cur == nil || r.Distance < cur.Distance {
		g.setAdjacent(r.A.ID, r.B.ID, r)
	}
}

func (g *Graph) setAdjacent(aID, bID string, r *Road) {
	for _, pair := range [2][2]string{{aID, bID}, {bID, aID}} {
		from, to := pair[0], pair[1]
		if r == nil {
			delete(g.adjacency[from], to)
			if len(g.adjacency[from]) == 0 {
				delete(g.adjacency, from)
			}
			continue
		}
		if g.adjacency[from] == nil {
			g.adjacency[from] = make(map[string]*Road)
		}
		g.adjacency[from][to] = r
	}
}

// RemoveRoad removes every road with the given identifier and returns how
// many were removed. If a parallel road still joins the same endpoints, the
// shortest remaining one takes over in adjacency.
func (g *Graph) RemoveRoad(id string) int {
	var removed []*Road
	g.roads = slices.DeleteFunc(g.roads, func(r *Road) bool {
		if r.ID == id {
			removed = append(removed, r)
			return true
		}
		return false
	})
	for _, r := range removed {
		if g.adjacency[r.A.ID][r.B.ID] != r {
			continue
		}
		g.setAdjacent(r.A.ID, r.B.ID, g.shortestBetween(r.A.ID, r.B.ID))
	}
	return len(removed)
}

// shortestBetween returns the shortest road joining a and b, or nil.
func (g *Graph) shortestBetween(aID, bID string) *Road {
	var best *Road
	for _, r := range g.roads {
		if (r.A.ID == aID && r.B.ID == bID) || (r.A.ID == bID && r.B.ID == aID) {
			if best == nil || r.Distance < best.Distance {
				best = r
			}
		}
	}
	return best
}

// Intersection returns the intersection with the given identifier.
func (g *Graph) Intersection(id string) (*Intersection, bool) {
	in, ok := g.intersections[id]
	return in, ok
}

// Road returns the first road with the given identifier. Lookup is linear
// in the number of roads.
func (g *Graph) Road(id string) (*Road, bool) {
	for _, r := range g.roads {
		if r.ID == id {
			return r, true
		}
	}
	return nil, false
}

// RoadBetween returns the road adjacency uses between two intersections.
func (g *Graph) RoadBetween(aID, bID string) (*Road, bool) {
	r, ok := g.adjacency[aID][bID]
	return r, ok
}

// Intersections returns all intersections sorted by identifier.
func (g *Graph) Intersections() []*Intersection {
	out := make([]*Intersection, 0, len(g.intersections))
	for _, in := range g.intersections {
		out = append(out, in)
	}
	slices.SortFunc(out, func(a, b *Intersection) int { return strings.Compare(a.ID, b.ID) })
	return out
}

// Roads returns all roads in insertion order. The slice is a copy; the
// roads are shared.
func (g *Graph) Roads() []*Road { return slices.Clone(g.roads) }

// Neighbors returns the roads incident to id, one per neighboring
// intersection, ordered by neighbor identifier.
func (g *Graph) Neighbors(id string) []*Road {
	adj := g.adjacency[id]
	if len(adj) == 0 {
		return nil
	}
	ids := make([]string, 0, len(adj))
	for n := range adj {
		ids = append(ids, n)
	}
	slices.Sort(ids)
	out := make([]*Road, len(ids))
	for i, n := range ids {
		out[i] = adj[n]
	}
	return out
}

// Degree returns the number of distinct neighbors of id.
func (g *Graph) Degree(id string) int { return len(g.adjacency[id]) }

// IntersectionCount returns the number of intersections.
func (g *Graph) IntersectionCount() int { return len(g.intersections) }

// RoadCount returns the number of roads, parallel roads included.
func (g *Graph) RoadCount() int { return len(g.roads) }

// ClearHighlights resets the Highlighted flag on every road.
func (g *Graph) ClearHighlights() {
	for _, r := range g.roads {
		r.Highlighted = false
	}
}

// TotalDistance returns the combined length of all roads in miles.
func (g *Graph) TotalDistance() float64 {
	var sum float64
	for _, r := range g.roads {
		sum += r.Distance
	}
	return sum
}
