package board

import "errors"

// Sentinel errors for board operations.
var (
	// ErrUnknownKind indicates a Kind value outside the declared set.
	ErrUnknownKind = errors.New("board: unknown node kind")

	// ErrStartExists indicates an attempt to insert a second Start node.
	ErrStartExists = errors.New("board: start node already exists")

	// ErrFinishExists indicates an attempt to insert a second Finish node.
	ErrFinishExists = errors.New("board: finish node already exists")

	// ErrNodeNotFound indicates an operation referenced a non-existent node.
	ErrNodeNotFound = errors.New("board: node not found")

	// ErrPortOutOfRange indicates a port index at or beyond the kind's arity.
	ErrPortOutOfRange = errors.New("board: port index out of range")

	// ErrKindsNotLinkable indicates a wire between a kind pair outside the
	// legal set (Start→Waypoint, Waypoint→Waypoint, Waypoint→Finish).
	ErrKindsNotLinkable = errors.New("board: node kinds not linkable")

	// ErrSelfWire indicates a wire whose source and destination node coincide.
	ErrSelfWire = errors.New("board: self wire not allowed")

	// ErrDuplicateWire indicates the exact (source port, destination port)
	// tuple is already wired.
	ErrDuplicateWire = errors.New("board: wire already exists")

	// ErrWireNotFound indicates Disconnect referenced a wire that is not present.
	ErrWireNotFound = errors.New("board: wire not found")
)

// NodeID identifies a node for the lifetime of a session.
//
// IDs are assigned by the Board from a monotonic counter starting at 1 and
// are never reused after removal. The zero value is not a valid id. The
// numeric ordering of NodeIDs is the tie-break used by the route package to
// keep searches reproducible.
type NodeID int64

// Kind tags a node's role on the board. The set is closed: exactly the three
// kinds below exist, and each fixes the node's port arity.
type Kind uint8

const (
	// KindStart is the unique search origin. No inputs, one output.
	KindStart Kind = iota + 1

	// KindWaypoint is an intermediate stop. One input, one output.
	KindWaypoint

	// KindFinish is the unique search target. One input, no outputs.
	KindFinish
)

// Valid reports whether k is one of the declared kinds.
func (k Kind) Valid() bool { return k >= KindStart && k <= KindFinish }

// Inputs returns the number of input ports a node of this kind exposes.
// Unknown kinds report zero arity.
func (k Kind) Inputs() int {
	switch k {
	case KindWaypoint, KindFinish:
		return 1
	default:
		return 0
	}
}

// Outputs returns the number of output ports a node of this kind exposes.
// Unknown kinds report zero arity.
func (k Kind) Outputs() int {
	switch k {
	case KindStart, KindWaypoint:
		return 1
	default:
		return 0
	}
}

// String returns the canonical lower-case name of the kind, also used by the
// snapshot schema. Unknown kinds render as "unknown".
func (k Kind) String() string {
	switch k {
	case KindStart:
		return "start"
	case KindWaypoint:
		return "waypoint"
	case KindFinish:
		return "finish"
	default:
		return "unknown"
	}
}

// ParseKind maps a canonical kind name back to its Kind value.
// Returns ErrUnknownKind for anything outside the closed set.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "start":
		return KindStart, nil
	case "waypoint":
		return KindWaypoint, nil
	case "finish":
		return KindFinish, nil
	default:
		return 0, ErrUnknownKind
	}
}

// Linkable reports whether a wire from kind src to kind dst is legal.
// The legal set is fixed: Start→Waypoint, Waypoint→Waypoint, Waypoint→Finish.
// The snapshot package applies the same rule when validating documents.
func Linkable(src, dst Kind) bool {
	switch {
	case src == KindStart && dst == KindWaypoint:
		return true
	case src == KindWaypoint && dst == KindWaypoint:
		return true
	case src == KindWaypoint && dst == KindFinish:
		return true
	default:
		return false
	}
}

// Position is a 2D layout coordinate. The external layout surface owns it;
// the engine treats it as read-only input to cost recomputation.
type Position struct {
	X float64
	Y float64
}

// Rect is a node's reported layout rectangle in the same coordinate space as
// Position. Min is the top-left corner, Max the bottom-right.
type Rect struct {
	Min Position
	Max Position
}

// BoxAt builds the Rect of a node anchored at pos with the given width and
// height. Convenience for drivers that have positions but no real layout
// pass (the cmd tool, tests).
func BoxAt(pos Position, width, height float64) Rect {
	return Rect{Min: pos, Max: Position{X: pos.X + width, Y: pos.Y + height}}
}

// LeftCenter returns the midpoint of the rectangle's left edge: the anchor
// where inbound wires attach.
func (r Rect) LeftCenter() Position {
	return Position{X: r.Min.X, Y: (r.Min.Y + r.Max.Y) / 2}
}

// RightCenter returns the midpoint of the rectangle's right edge: the anchor
// where outbound wires leave.
func (r Rect) RightCenter() Position {
	return Position{X: r.Max.X, Y: (r.Min.Y + r.Max.Y) / 2}
}

// OutPort addresses one output port of a node.
type OutPort struct {
	Node NodeID
	Port int
}

// InPort addresses one input port of a node.
type InPort struct {
	Node NodeID
	Port int
}

// Wire is a directed connection from an output port to an input port.
// The full 4-tuple is the wire's identity: fan-out from an output port and
// fan-in to an input port are both unbounded, and only an exact duplicate
// tuple is refused.
type Wire struct {
	From OutPort
	To   InPort
}

// Less orders wires by (From.Node, From.Port, To.Node, To.Port). This is
// the canonical wire order: every enumeration surface sorts with it, and the
// cost package relies on it to make scalar fan-in resolution reproducible.
func (w Wire) Less(o Wire) bool {
	if w.From.Node != o.From.Node {
		return w.From.Node < o.From.Node
	}
	if w.From.Port != o.From.Port {
		return w.From.Port < o.From.Port
	}
	if w.To.Node != o.To.Node {
		return w.To.Node < o.To.Node
	}

	return w.To.Port < o.To.Port
}

// Node is the public view of a board vertex. Values are snapshots: mutating
// a returned Node does not touch the board.
type Node struct {
	ID   NodeID
	Kind Kind
	Pos  Position
}

// Stats is a read-only census of the board, convenient for diagnostics and
// invariant checks in tests (Starts and Finishes can never exceed 1).
type Stats struct {
	Nodes     int
	Starts    int
	Waypoints int
	Finishes  int
	Wires     int
}
