package cost

import (
	"errors"

	"github.com/katalvlaran/routeboard/board"
)

// Sentinel errors for cost operations.
var (
	// ErrNegativeCost indicates an attempt to set or restore a cost below zero.
	ErrNegativeCost = errors.New("cost: negative cost")

	// ErrUnknownPolicy indicates a policy name outside the declared set.
	ErrUnknownPolicy = errors.New("cost: unknown policy")

	// ErrMissingRect indicates Recompute met a wire endpoint with no layout
	// rectangle in the supplied view.
	ErrMissingRect = errors.New("cost: node has no layout rectangle")

	// ErrPolicyMismatch indicates Restore received an entry whose shape does
	// not fit the model's policy (a predecessor id on a scalar model, or a
	// missing one on an edge model).
	ErrPolicyMismatch = errors.New("cost: entry does not match policy")
)

// Policy selects how arrival costs are keyed.
type Policy uint8

const (
	// PolicyScalar keys cost by destination node only: one value shared by
	// every inbound wire.
	PolicyScalar Policy = iota + 1

	// PolicyEdge keys cost by the (predecessor, destination) pair: each
	// inbound wire may carry its own value. This is the default policy.
	PolicyEdge
)

// Valid reports whether p is one of the declared policies.
func (p Policy) Valid() bool { return p == PolicyScalar || p == PolicyEdge }

// String returns the canonical policy name, also used by the snapshot schema
// and the configuration file.
func (p Policy) String() string {
	switch p {
	case PolicyScalar:
		return "scalar"
	case PolicyEdge:
		return "edge"
	default:
		return "unknown"
	}
}

// ParsePolicy maps a canonical policy name back to its Policy value.
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "scalar":
		return PolicyScalar, nil
	case "edge":
		return PolicyEdge, nil
	default:
		return 0, ErrUnknownPolicy
	}
}

// Entry is one stored cost value in snapshot form. Under PolicyScalar the
// From field is always 0; under PolicyEdge it names the predecessor node.
type Entry struct {
	From board.NodeID
	To   board.NodeID
	Cost int64
}

// Layout is the geometry view Recompute consumes: the board's wires plus a
// rectangle for every node a wire touches. The engine package assembles it
// only once every node has reported a rectangle for the current pass, so a
// recompute never mixes stale and fresh positions.
type Layout struct {
	Wires []board.Wire
	Rects map[board.NodeID]board.Rect
}

// Model answers arrival-cost queries for the route package and absorbs cost
// writes from geometry passes, manual edits, and snapshot restores.
//
// Implementations are single-writer structures with no internal locking.
type Model interface {
	// Policy reports how this model keys its costs.
	Policy() Policy

	// Arrival returns the cost of stepping from node from to node to.
	// Pairs never computed or set yield the configured default.
	Arrival(from, to board.NodeID) int64

	// SetArrival assigns an exact cost to the pair. Negative values are
	// refused with ErrNegativeCost. Under PolicyScalar the from id is
	// ignored: the value lands on the destination's shared slot.
	SetArrival(from, to board.NodeID, c int64) error

	// Adjust applies a signed delta to the pair's current cost, clamps the
	// result at the configured floor, stores it, and returns it.
	Adjust(from, to board.NodeID, delta int64) int64

	// Recompute replaces the whole table with costs derived from layout
	// geometry. On any error the table is left untouched.
	Recompute(lay Layout) error

	// Forget drops every stored cost touching the given node. Called after
	// a node is removed from the board.
	Forget(id board.NodeID)

	// Entries dumps the table sorted by (From, To) for serialization.
	Entries() []Entry

	// Restore replaces the table with previously dumped entries. On any
	// error the table is left untouched.
	Restore(entries []Entry) error
}
