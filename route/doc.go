// Package route computes the cheapest Start→Finish path over a board.
//
// The search is Dijkstra's algorithm specialized for the interactive
// editing domain: directed wires only, non-negative integer arrival costs
// supplied by a cost.Model, and a hard determinism requirement so that
// repeated searches over an unchanged board light up the same path every
// time.
//
// # Algorithm shape
//
//   - A min-heap frontier orders nodes by tentative distance, breaking ties
//     by ascending node id.
//   - Decrease-key is lazy: improving a node pushes a duplicate entry, and
//     stale entries are discarded at pop time against a visited map.
//   - Extraction of the Finish node terminates the search early; its
//     distance is final at that point.
//   - Relaxation updates on strictly smaller distances only, so equal-cost
//     alternatives never displace the first minimal path found.
//
// Complexity: O((V + E) log V) time, O(V + E) space. Boards are
// interactive-editing scale, so both are negligible in practice.
//
// # Failure modes
//
// Searches fail with one of three recoverable sentinels: ErrMissingStart,
// ErrMissingFinish, or ErrUnreachable. All are result values for the caller
// to present; none of them indicates a broken board. ErrNilBoard,
// ErrNilModel, and ErrNegativeArrival guard contract violations.
package route
