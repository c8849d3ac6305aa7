package route

import (
	"container/heap"
	"context"
	"errors"
	"math"
	"slices"
	"sync"
	"time"

	errs "github.com/matzehuels/trailblazer/pkg/errors"
	"github.com/matzehuels/trailblazer/pkg/geo"
	"github.com/matzehuels/trailblazer/pkg/observability"
)

// ErrUnknownEndpoint is wrapped when a query names an intersection that is
// not in the graph.
var ErrUnknownEndpoint = errors.New("unknown route endpoint")

// Find is [ShortestPath] reported to the observability route hooks.
func Find(ctx context.Context, g *geo.Graph, startID, endID string) ([]*geo.Road, error) {
	start := time.Now()
	path, err := ShortestPath(g, startID, endID)
	observability.Route().OnRouteComplete(ctx, len(path), TotalDistance(path), time.Since(start), err)
	return path, err
}

// ShortestPath returns the roads of a shortest path from startID to endID.
//
// The result is empty, with a nil error, when startID equals endID or when
// endID cannot be reached. ShortestPath does not modify the graph.
func ShortestPath(g *geo.Graph, startID, endID string) ([]*geo.Road, error) {
	if _, ok := g.Intersection(startID); !ok {
		return nil, errs.Wrap(errs.ErrCodeNotFound, ErrUnknownEndpoint, "start %q", startID)
	}
	if _, ok := g.Intersection(endID); !ok {
		return nil, errs.Wrap(errs.ErrCodeNotFound, ErrUnknownEndpoint, "end %q", endID)
	}
	if startID == endID {
		return []*geo.Road{}, nil
	}

	// Absent keys read as +Inf.
	dist := map[string]float64{startID: 0}
	via := make(map[string]*geo.Road)
	done := make(map[string]bool)

	best := func(id string) float64 {
		if d, ok := dist[id]; ok {
			return d
		}
		return math.Inf(1)
	}

	pq := &priorityQueue{{id: startID, dist: 0}}
	for pq.Len() > 0 {
		item := heap.Pop(pq).(pqItem)
		if done[item.id] || item.dist > best(item.id) {
			continue
		}
		done[item.id] = true
		if item.id == endID {
			break
		}

		for _, road := range g.Neighbors(item.id) {
			next := road.OtherID(item.id)
			if done[next] {
				continue
			}
			if d := item.dist + road.Distance; d < best(next) {
				dist[next] = d
				via[next] = road
				heap.Push(pq, pqItem{id: next, dist: d})
			}
		}
	}

	if !done[endID] {
		return []*geo.Road{}, nil
	}
	return reconstructPath(via, startID, endID), nil
}

// reconstructPath follows back-pointers from end to start.
func reconstructPath(via map[string]*geo.Road, startID, endID string) []*geo.Road {
	var path []*geo.Road
	for cur := endID; cur != startID; {
		road := via[cur]
		path = append(path, road)
		cur = road.OtherID(cur)
	}
	slices.Reverse(path)
	return path
}

// TotalDistance sums the distances of the roads in miles.
func TotalDistance(path []*geo.Road) float64 {
	var sum float64
	for _, r := range path {
		sum += r.Distance
	}
	return sum
}

// Stops returns the intersections visited along path, starting with start.
// A road that does not continue from the previous stop ends the walk.
func Stops(start *geo.Intersection, path []*geo.Road) []*geo.Intersection {
	stops := []*geo.Intersection{start}
	cur := start
	for _, r := range path {
		next := r.Other(cur)
		if next == nil {
			break
		}
		stops = append(stops, next)
		cur = next
	}
	return stops
}

// Router runs queries against one graph and maintains the roads' highlight
// flags for renderers.
type Router struct {
	graph *geo.Graph
	mu    sync.Mutex
}

// NewRouter creates a router over g.
func NewRouter(g *geo.Graph) *Router {
	return &Router{graph: g}
}

// Graph returns the graph the router queries.
func (r *Router) Graph() *geo.Graph { return r.graph }

// FindShortestPath computes a shortest path like [ShortestPath], clears the
// highlight flags left by the previous query and marks the returned roads.
// Flags are left untouched when the query fails.
func (r *Router) FindShortestPath(startID, endID string) ([]*geo.Road, error) {
	path, err := ShortestPath(r.graph, startID, endID)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.graph.ClearHighlights()
	for _, road := range path {
		road.Highlighted = true
	}
	return path, nil
}
