// Package route computes shortest driving paths over a road network.
//
// # Algorithm
//
// [ShortestPath] runs Dijkstra's algorithm with a binary heap. Queue
// entries may be duplicated on relaxation; an entry is discarded when its
// intersection was already finalized or when its recorded distance is worse
// than the current best. The search stops as soon as the target is
// extracted. Running time is O((V+E) log V).
//
// Tentative distances and back-pointers live in maps owned by a single call,
// so concurrent queries on the same unmodified graph do not interfere.
//
// # Results
//
// A path is the ordered sequence of roads from start to end. It is empty
// when start equals end or when end is unreachable; neither case is an
// error. Unknown endpoints fail with a NOT_FOUND error wrapping
// [ErrUnknownEndpoint].
//
// When several paths share the minimal length, which one is returned is
// unspecified.
//
// # Highlighting
//
// [Router] wraps ShortestPath for renderers: each query clears the previous
// highlight flags on the graph and marks the roads of the new path.
package route
