// Package pkg provides the core libraries for Trailblazer road-network
// routing and map rendering.
//
// # Overview
//
// Trailblazer loads a road network of intersections (named lat/lon points)
// and roads (undirected, weighted by great-circle miles), finds shortest
// routes between intersections, and draws the network through a Web
// Mercator projection and an interactive pan/zoom/rotate viewport.
//
// # Architecture
//
// The typical data flow:
//
//	network file (text or JSON) / document store
//	         ↓
//	    [io] package (parse into a graph)
//	         ↓
//	    [geo] package (intersections, roads, spatial index)
//	         ↓
//	    [route] package (Dijkstra shortest path)
//	         ↓
//	    [projection] + [viewport] → [mapview] (planar view state)
//	         ↓
//	    [render] package (SVG, PNG, PDF, DOT, terminal grid)
//
// # Quick Start
//
// Load a network, find a route and render it:
//
//	import (
//	    netio "github.com/matzehuels/trailblazer/pkg/io"
//	    "github.com/matzehuels/trailblazer/pkg/mapview"
//	    "github.com/matzehuels/trailblazer/pkg/render"
//	    "github.com/matzehuels/trailblazer/pkg/route"
//	)
//
//	// 1. Load the network
//	g, _ := netio.ImportNetwork("ur.txt")
//
//	// 2. Highlight the shortest route
//	path, _ := route.NewRouter(g).FindShortestPath("HOYT", "MOREY")
//	fmt.Printf("%d roads, %.2f miles\n", len(path), route.TotalDistance(path))
//
//	// 3. Fit the view to the network
//	v := mapview.NewDefault(g)
//	v.ResetView(mapview.DefaultMinPixelWidth)
//
//	// 4. Render to SVG
//	svg := render.RenderSVG(v, render.WithDebug())
//
// # Main Packages
//
// ## Domain
//
// [geo] - Intersections, roads and the undirected graph. Road lengths come
// from the haversine formula. [geo.SpatialIndex] answers nearest-intersection
// queries with an R-tree.
//
// [route] - Single-pair shortest paths with a binary-heap Dijkstra.
// [route.Router] keeps road highlight flags in step with the last query.
//
// [projection] - Web Mercator from lat/lon to pixels at a fractional zoom.
//
// [viewport] - The affine pan/zoom/rotate transform between projected and
// device pixels, plus [viewport.Controller] for pointer and wheel input.
//
// [mapview] - Ties a graph, a projection and a viewport together and
// implements the fit-to-content reset.
//
// ## Input and Output
//
// [io] - The whitespace-separated network text format and a JSON format
// that keeps explicit road lengths.
//
// [render] - SVG drawing, PNG/PDF conversion, Graphviz DOT export and a
// character grid for terminals.
//
// [tiles] - Slippy-map tile math, URL templates and a cached, retrying
// fetcher for background imagery.
//
// ## Infrastructure
//
// [cache] - File, Redis and no-op byte caches with expiry.
//
// [store] - Named network documents in MongoDB or memory.
//
// [config] - TOML or YAML settings with defaults and validation.
//
// [httputil] - HTTP client with status classification and retry.
//
// [observability] and [metrics] - Hook interfaces and their Prometheus
// implementation.
//
// [errors] - Coded errors and process exit codes.
//
// # Testing
//
// Run tests:
//
//	go test ./...                  # All tests
//	go test ./pkg/route/...        # Specific package
//	go test -run Example ./pkg/... # Examples only
//
// [io]: https://pkg.go.dev/github.com/matzehuels/trailblazer/pkg/io
// [geo]: https://pkg.go.dev/github.com/matzehuels/trailblazer/pkg/geo
// [geo.SpatialIndex]: https://pkg.go.dev/github.com/matzehuels/trailblazer/pkg/geo#SpatialIndex
// [route]: https://pkg.go.dev/github.com/matzehuels/trailblazer/pkg/route
// [route.Router]: https://pkg.go.dev/github.com/matzehuels/trailblazer/pkg/route#Router
// [projection]: https://pkg.go.dev/github.com/matzehuels/trailblazer/pkg/projection
// [viewport]: https://pkg.go.dev/github.com/matzehuels/trailblazer/pkg/viewport
// [viewport.Controller]: https://pkg.go.dev/github.com/matzehuels/trailblazer/pkg/viewport#Controller
// [mapview]: https://pkg.go.dev/github.com/matzehuels/trailblazer/pkg/mapview
// [render]: https://pkg.go.dev/github.com/matzehuels/trailblazer/pkg/render
// [tiles]: https://pkg.go.dev/github.com/matzehuels/trailblazer/pkg/tiles
// [cache]: https://pkg.go.dev/github.com/matzehuels/trailblazer/pkg/cache
// [store]: https://pkg.go.dev/github.com/matzehuels/trailblazer/pkg/store
// [config]: https://pkg.go.dev/github.com/matzehuels/trailblazer/pkg/config
// [httputil]: https://pkg.go.dev/github.com/matzehuels/trailblazer/pkg/httputil
// [observability]: https://pkg.go.dev/github.com/matzehuels/trailblazer/pkg/observability
// [metrics]: https://pkg.go.dev/github.com/matzehuels/trailblazer/pkg/metrics
// [errors]: https://pkg.go.dev/github.com/matzehuels/trailblazer/pkg/errors
package pkg
