package board

import (
	"fmt"
	"sort"
)

// Board is a mutable, typed node-link graph with layout positions.
//
// A Board is a plain single-writer structure: it performs no locking of its
// own. Callers that share a Board across goroutines must serialize access
// themselves (the engine package does exactly that with one mutex at its
// boundary).
//
// The zero Board is not ready for use; construct with New.
type Board struct {
	nextID NodeID

	nodes map[NodeID]Node
	wires map[Wire]struct{}

	// Cached singleton ids; 0 means absent. Maintained by Insert/Remove/Clear
	// so StartID and FinishID are O(1).
	startID  NodeID
	finishID NodeID
}

// New returns an empty Board whose id counter starts at 1.
func New() *Board {
	return &Board{
		nextID: 1,
		nodes:  make(map[NodeID]Node),
		wires:  make(map[Wire]struct{}),
	}
}

// Insert adds a node of the given kind at pos and returns its fresh id.
//
// Fails with ErrUnknownKind for a kind outside the declared set, and with
// ErrStartExists / ErrFinishExists when the singleton rule would be violated.
// The id counter advances only on success, so refused inserts leave no gaps.
func (b *Board) Insert(kind Kind, pos Position) (NodeID, error) {
	// 1) Validate the kind before anything else.
	if !kind.Valid() {
		return 0, fmt.Errorf("insert kind %d: %w", kind, ErrUnknownKind)
	}

	// 2) Enforce the singleton rule for Start and Finish.
	switch kind {
	case KindStart:
		if b.startID != 0 {
			return 0, ErrStartExists
		}
	case KindFinish:
		if b.finishID != 0 {
			return 0, ErrFinishExists
		}
	}

	// 3) Allocate the id and store the node.
	id := b.nextID
	b.nextID++
	b.nodes[id] = Node{ID: id, Kind: kind, Pos: pos}

	// 4) Refresh the singleton cache.
	switch kind {
	case KindStart:
		b.startID = id
	case KindFinish:
		b.finishID = id
	}

	return id, nil
}

// Remove deletes the node and every wire touching it.
//
// Returns ErrNodeNotFound if id is not on the board. The id is never reused:
// removing and re-inserting yields a new id.
func (b *Board) Remove(id NodeID) error {
	n, ok := b.nodes[id]
	if !ok {
		return fmt.Errorf("remove node %d: %w", id, ErrNodeNotFound)
	}

	// 1) Drop the node record and release the singleton slot if held.
	delete(b.nodes, id)
	switch n.Kind {
	case KindStart:
		b.startID = 0
	case KindFinish:
		b.finishID = 0
	}

	// 2) Sweep incident wires in both directions.
	for w := range b.wires {
		if w.From.Node == id || w.To.Node == id {
			delete(b.wires, w)
		}
	}

	return nil
}

// Connect adds the wire from → to.
//
// The checks run in a fixed order and the first violation wins:
// node existence (ErrNodeNotFound), self wire (ErrSelfWire), port range
// (ErrPortOutOfRange), kind legality (ErrKindsNotLinkable), duplicate
// (ErrDuplicateWire). All of these are refusals: the board is unchanged and
// the caller may simply drop the attempt.
func (b *Board) Connect(from OutPort, to InPort) error {
	// 1) Both endpoints must exist.
	src, ok := b.nodes[from.Node]
	if !ok {
		return fmt.Errorf("connect from node %d: %w", from.Node, ErrNodeNotFound)
	}
	dst, ok := b.nodes[to.Node]
	if !ok {
		return fmt.Errorf("connect to node %d: %w", to.Node, ErrNodeNotFound)
	}

	// 2) A node never wires to itself.
	if from.Node == to.Node {
		return fmt.Errorf("connect node %d to itself: %w", from.Node, ErrSelfWire)
	}

	// 3) Ports must fall inside each kind's arity.
	if from.Port < 0 || from.Port >= src.Kind.Outputs() {
		return fmt.Errorf("connect: output port %d of %s node %d: %w",
			from.Port, src.Kind, from.Node, ErrPortOutOfRange)
	}
	if to.Port < 0 || to.Port >= dst.Kind.Inputs() {
		return fmt.Errorf("connect: input port %d of %s node %d: %w",
			to.Port, dst.Kind, to.Node, ErrPortOutOfRange)
	}

	// 4) Only the three legal kind pairs may be wired.
	if !Linkable(src.Kind, dst.Kind) {
		return fmt.Errorf("connect %s→%s: %w", src.Kind, dst.Kind, ErrKindsNotLinkable)
	}

	// 5) The exact tuple must be new.
	w := Wire{From: from, To: to}
	if _, dup := b.wires[w]; dup {
		return fmt.Errorf("connect %v: %w", w, ErrDuplicateWire)
	}

	b.wires[w] = struct{}{}

	return nil
}

// Disconnect removes the exact wire from → to.
// Returns ErrWireNotFound if that tuple is not present.
func (b *Board) Disconnect(from OutPort, to InPort) error {
	w := Wire{From: from, To: to}
	if _, ok := b.wires[w]; !ok {
		return fmt.Errorf("disconnect %v: %w", w, ErrWireNotFound)
	}
	delete(b.wires, w)

	return nil
}

// SetPosition moves a node to pos. Returns ErrNodeNotFound for unknown ids.
func (b *Board) SetPosition(id NodeID, pos Position) error {
	n, ok := b.nodes[id]
	if !ok {
		return fmt.Errorf("set position of node %d: %w", id, ErrNodeNotFound)
	}
	n.Pos = pos
	b.nodes[id] = n

	return nil
}

// Node returns the node with the given id.
// The second result is false if the id is not on the board.
func (b *Board) Node(id NodeID) (Node, bool) {
	n, ok := b.nodes[id]
	return n, ok
}

// HasNode reports whether id is on the board.
func (b *Board) HasNode(id NodeID) bool {
	_, ok := b.nodes[id]
	return ok
}

// StartID returns the id of the Start node, or 0 if none exists.
func (b *Board) StartID() NodeID { return b.startID }

// FinishID returns the id of the Finish node, or 0 if none exists.
func (b *Board) FinishID() NodeID { return b.finishID }

// NodeCount returns the number of nodes on the board.
func (b *Board) NodeCount() int { return len(b.nodes) }

// WireCount returns the number of wires on the board.
func (b *Board) WireCount() int { return len(b.wires) }

// Nodes returns all nodes sorted by ascending id.
//
// Complexity: O(V log V) per call; the slice is freshly allocated and safe
// to retain.
func (b *Board) Nodes() []Node {
	out := make([]Node, 0, len(b.nodes))
	for _, n := range b.nodes {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out
}

// NodeIDs returns all node ids in ascending order.
func (b *Board) NodeIDs() []NodeID {
	out := make([]NodeID, 0, len(b.nodes))
	for id := range b.nodes {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })

	return out
}

// Wires returns every wire sorted by (From.Node, From.Port, To.Node, To.Port).
//
// Complexity: O(E log E) per call; the slice is freshly allocated.
func (b *Board) Wires() []Wire {
	out := make([]Wire, 0, len(b.wires))
	for w := range b.wires {
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })

	return out
}

// WiresFrom returns the wires leaving the given node, in sorted order.
// Unknown ids yield an empty slice.
func (b *Board) WiresFrom(id NodeID) []Wire {
	var out []Wire
	for w := range b.wires {
		if w.From.Node == id {
			out = append(out, w)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })

	return out
}

// WiresInto returns the wires entering the given node, in sorted order.
// Unknown ids yield an empty slice.
func (b *Board) WiresInto(id NodeID) []Wire {
	var out []Wire
	for w := range b.wires {
		if w.To.Node == id {
			out = append(out, w)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })

	return out
}

// HasWire reports whether the exact wire from → to is present.
func (b *Board) HasWire(from OutPort, to InPort) bool {
	_, ok := b.wires[Wire{From: from, To: to}]
	return ok
}

// Clear removes every node and wire and resets the id counter to 1,
// returning the board to its freshly constructed state.
func (b *Board) Clear() {
	b.nextID = 1
	b.nodes = make(map[NodeID]Node)
	b.wires = make(map[Wire]struct{})
	b.startID = 0
	b.finishID = 0
}

// Stats returns a census of the board.
func (b *Board) Stats() Stats {
	s := Stats{Nodes: len(b.nodes), Wires: len(b.wires)}
	for _, n := range b.nodes {
		switch n.Kind {
		case KindStart:
			s.Starts++
		case KindWaypoint:
			s.Waypoints++
		case KindFinish:
			s.Finishes++
		}
	}

	return s
}

// NextID exposes the id the next successful Insert will assign.
// The snapshot package persists it so restored sessions keep ids unique.
func (b *Board) NextID() NodeID { return b.nextID }

// Restore replaces the board's entire contents in one step. It is the
// loading half of the snapshot round-trip and validates nothing: callers
// (the snapshot package) are responsible for handing in a document that
// already passed validation. Nodes must carry their final ids.
func (b *Board) Restore(nextID NodeID, nodes []Node, wires []Wire) {
	b.Clear()
	for _, n := range nodes {
		b.nodes[n.ID] = n
		switch n.Kind {
		case KindStart:
			b.startID = n.ID
		case KindFinish:
			b.finishID = n.ID
		}
	}
	for _, w := range wires {
		b.wires[w] = struct{}{}
	}
	b.nextID = nextID
}
