// Package board defines the Board, Node, and Wire types for an editable,
// typed node-link graph, and provides the mutation primitives an external
// editing surface drives: insert, remove, connect, disconnect, move.
//
// # What the Board is
//
// A Board holds typed nodes (Start, Waypoint, Finish) connected by directed
// wires between ports. It enforces exactly two structural policies:
//
//   - at most one Start node and at most one Finish node may exist;
//   - wires are legal only for the kind pairs Start→Waypoint,
//     Waypoint→Waypoint and Waypoint→Finish.
//
// Everything else (edge costs, shortest paths, recompute scheduling) lives
// in the cost, route and engine packages; the Board is pure topology plus
// layout positions.
//
// # Identity and determinism
//
//   - NodeIDs come from a monotonic counter starting at 1 and are never
//     reused, so an id names the same node for the whole session.
//   - Every enumeration method (Nodes, NodeIDs, Wires, WiresFrom, WiresInto)
//     returns a freshly allocated, sorted slice. Two boards with equal
//     contents enumerate identically, which keeps searches and snapshots
//     reproducible.
//
// # Error handling
//
// All refusals are wrapped sentinel errors, tested with errors.Is:
//
//	ErrUnknownKind      - kind is not one of the three declared kinds.
//	ErrStartExists      - a second Start node was inserted.
//	ErrFinishExists     - a second Finish node was inserted.
//	ErrNodeNotFound     - an operation referenced a node id not on the board.
//	ErrPortOutOfRange   - a port index is outside the kind's arity.
//	ErrKindsNotLinkable - the (source kind, destination kind) pair is illegal.
//	ErrSelfWire         - a wire from a node to itself.
//	ErrDuplicateWire    - the exact wire tuple already exists.
//	ErrWireNotFound     - disconnect referenced a wire not on the board.
//
// Connection errors are refusals, not failures: an editing surface is
// expected to swallow them (a drag that lands on an illegal pin simply does
// not produce a wire), while programmatic callers may inspect them.
//
// # Concurrency
//
// A Board performs no locking. It is a single-writer structure; share it
// across goroutines only behind external synchronization (the engine package
// wraps one board and one mutex for exactly this purpose).
package board
