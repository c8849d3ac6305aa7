// Package geo provides the road-network graph that Trailblazer routes over
// and renders.
//
// # Overview
//
// A [Graph] owns a set of [Intersection] values keyed by identifier, the
// [Road] values that connect them, and a symmetric adjacency relation: for
// every intersection, a map from each neighboring intersection to the road
// connecting the two. The graph may be disconnected.
//
// # Basic Usage
//
// Add intersections with [Graph.AddIntersection] and connect them with
// [Graph.AddRoad]. Road lengths are computed once, at construction, with the
// haversine great-circle formula:
//
//	g := geo.New()
//	g.AddIntersection("a", 43.13, -77.63)
//	g.AddIntersection("b", 43.12, -77.62)
//	road, err := g.AddRoad("ab", "a", "b")
//
// AddRoad fails when either endpoint is unknown, and never leaves a dangling
// road behind. The returned error carries the NOT_FOUND code from
// [github.com/matzehuels/trailblazer/pkg/errors] and wraps
// [ErrUnknownIntersection].
//
// # Units
//
// All distances are in miles. [Haversine] uses a spherical Earth with a
// radius of [EarthRadiusKm] kilometers and converts with [MilesPerKm].
//
// # Planar Positions
//
// Each intersection carries a mutable planar position (X, Y) assigned by a
// map projection. The graph itself never reads it; renderers and the
// viewport do.
//
// # Spatial Queries
//
// [SpatialIndex] wraps an R-tree over intersection coordinates for nearest
// intersection lookups and bounding-box queries. It is a snapshot: rebuild
// it after mutating the graph.
//
// # Concurrency
//
// Graph is not safe for concurrent mutation. Concurrent readers are fine as
// long as no goroutine mutates the graph at the same time.
package geo
