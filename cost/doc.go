// Package cost derives and stores the arrival cost of every wire on a board.
//
// # Policies
//
// Two interchangeable policies cover the same concept at different
// granularity:
//
//   - PolicyEdge (the default): cost is a property of the wire itself, keyed
//     by the (predecessor, destination) node pair. The same destination may
//     charge different costs to different inbound wires.
//   - PolicyScalar: cost is a property of the destination node, shared by
//     every inbound wire. Useful when all approaches to a stop are
//     equivalent.
//
// Both policies answer the same question through one Model interface:
// "what does it cost to arrive at node B coming from node A". Looking up a
// pair that was never computed or set yields DefaultArrival (1 unless
// configured otherwise), applied uniformly to every destination.
//
// # Geometric recomputation
//
// Recompute derives every wire's cost from layout geometry: the Euclidean
// distance between the predecessor's right-center anchor and the
// destination's left-center anchor, rounded to the nearest integer, divided
// by ScaleDivisor (integer division, default 10), then clamped to
// ClampFloor (default 1). A floor of 0 is a supported configuration and
// makes zero-cost wires valid. Recompute replaces the whole table: manual
// adjustments survive only until the next geometric pass.
//
// Under PolicyScalar several inbound wires write to the same destination
// slot; Recompute processes wires in their canonical sorted order so the
// surviving value is reproducible run to run.
//
// # Manual editing
//
// SetArrival assigns an exact non-negative cost. Adjust applies a signed
// delta and clamps the result at ClampFloor, which is how interactive
// increment/decrement editing keeps costs from collapsing below the floor.
//
// # Concurrency
//
// A Model performs no locking; the engine package serializes access.
package cost
