package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/katalvlaran/routeboard/board"
	"github.com/katalvlaran/routeboard/cost"
)

// Version is the schema version this package writes. Decode accepts
// documents up to and including it.
const Version = 1

// Sentinel errors for snapshot handling.
var (
	// ErrMalformed indicates bytes that do not parse as a snapshot document.
	ErrMalformed = errors.New("snapshot: malformed document")

	// ErrUnsupportedVersion indicates a document written by a newer schema.
	ErrUnsupportedVersion = errors.New("snapshot: unsupported document version")

	// ErrInvalidDocument indicates a parsed document that violates a
	// structural rule (duplicate ids, dangling wires, illegal kinds...).
	ErrInvalidDocument = errors.New("snapshot: invalid document")
)

// Document is the serialized form of a session: board topology, layout
// positions, the id counter, and the cost table.
type Document struct {
	Version int          `json:"version"`
	Policy  string       `json:"policy"`
	NextID  board.NodeID `json:"next_id"`
	Nodes   []NodeRecord `json:"nodes"`
	Wires   []WireRecord `json:"wires"`
	Costs   []CostRecord `json:"costs"`
}

// NodeRecord is one serialized node.
type NodeRecord struct {
	ID   board.NodeID `json:"id"`
	Kind string       `json:"kind"`
	X    float64      `json:"x"`
	Y    float64      `json:"y"`
}

// WireRecord is one serialized wire.
type WireRecord struct {
	FromNode board.NodeID `json:"from_node"`
	FromPort int          `json:"from_port"`
	ToNode   board.NodeID `json:"to_node"`
	ToPort   int          `json:"to_port"`
}

// CostRecord is one serialized cost entry. From is 0 under the scalar
// policy, where costs key by destination only.
type CostRecord struct {
	From board.NodeID `json:"from"`
	To   board.NodeID `json:"to"`
	Cost int64        `json:"cost"`
}

// Capture builds a Document from live state. The board's enumeration
// methods and the model's Entries already return canonical order, so two
// captures of equal state are deeply equal.
func Capture(b *board.Board, m cost.Model) *Document {
	doc := &Document{
		Version: Version,
		Policy:  m.Policy().String(),
		NextID:  b.NextID(),
		Nodes:   make([]NodeRecord, 0, b.NodeCount()),
		Wires:   make([]WireRecord, 0, b.WireCount()),
		Costs:   make([]CostRecord, 0),
	}

	for _, n := range b.Nodes() {
		doc.Nodes = append(doc.Nodes, NodeRecord{ID: n.ID, Kind: n.Kind.String(), X: n.Pos.X, Y: n.Pos.Y})
	}
	for _, w := range b.Wires() {
		doc.Wires = append(doc.Wires, WireRecord{
			FromNode: w.From.Node,
			FromPort: w.From.Port,
			ToNode:   w.To.Node,
			ToPort:   w.To.Port,
		})
	}
	for _, e := range m.Entries() {
		doc.Costs = append(doc.Costs, CostRecord{From: e.From, To: e.To, Cost: e.Cost})
	}

	return doc
}

// Encode renders the document as indented JSON. Encoding is deterministic:
// struct field order is fixed and Capture emits sorted collections.
func Encode(doc *Document) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("snapshot: encode: %w", err)
	}

	return append(data, '\n'), nil
}

// Decode parses and validates a document. The returned document has passed
// every structural check and is safe to Apply.
func Decode(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}

	return &doc, nil
}

// Apply restores the document into the given board and cost model, wholly
// replacing their contents. The model's policy must match the document's.
//
// Validate is run again first, so Apply on a hand-built document is safe;
// nothing is touched unless the whole document passes.
func Apply(doc *Document, b *board.Board, m cost.Model) error {
	if err := doc.Validate(); err != nil {
		return err
	}

	pol, err := cost.ParsePolicy(doc.Policy)
	if err != nil {
		return fmt.Errorf("%w: policy %q", ErrInvalidDocument, doc.Policy)
	}
	if pol != m.Policy() {
		return fmt.Errorf("%w: document policy %q does not match model policy %q",
			ErrInvalidDocument, pol, m.Policy())
	}

	// Stage the cost entries first: the model validates and swaps atomically,
	// and a failure there must not leave a half-restored board behind.
	entries := make([]cost.Entry, 0, len(doc.Costs))
	for _, c := range doc.Costs {
		entries = append(entries, cost.Entry{From: c.From, To: c.To, Cost: c.Cost})
	}
	if err := m.Restore(entries); err != nil {
		return fmt.Errorf("snapshot: restore costs: %w", err)
	}

	nodes := make([]board.Node, 0, len(doc.Nodes))
	for _, n := range doc.Nodes {
		kind, _ := board.ParseKind(n.Kind) // Validate already vetted it
		nodes = append(nodes, board.Node{ID: n.ID, Kind: kind, Pos: board.Position{X: n.X, Y: n.Y}})
	}
	wires := make([]board.Wire, 0, len(doc.Wires))
	for _, w := range doc.Wires {
		wires = append(wires, board.Wire{
			From: board.OutPort{Node: w.FromNode, Port: w.FromPort},
			To:   board.InPort{Node: w.ToNode, Port: w.ToPort},
		})
	}
	b.Restore(doc.NextID, nodes, wires)

	return nil
}

// Validate checks every structural rule a document must satisfy. It returns
// the first violation found, wrapped around ErrInvalidDocument (or
// ErrUnsupportedVersion for a version from the future).
func (d *Document) Validate() error {
	// 1) Version gate.
	if d.Version <= 0 || d.Version > Version {
		return fmt.Errorf("%w: %d", ErrUnsupportedVersion, d.Version)
	}

	// 2) Policy must parse.
	pol, err := cost.ParsePolicy(d.Policy)
	if err != nil {
		return fmt.Errorf("%w: policy %q", ErrInvalidDocument, d.Policy)
	}

	// 3) Nodes: unique positive ids below the counter, valid kinds, at most
	//    one Start and one Finish.
	kinds := make(map[board.NodeID]board.Kind, len(d.Nodes))
	var starts, finishes int
	for _, n := range d.Nodes {
		if n.ID <= 0 {
			return fmt.Errorf("%w: node id %d", ErrInvalidDocument, n.ID)
		}
		if n.ID >= d.NextID {
			return fmt.Errorf("%w: node id %d not below next_id %d", ErrInvalidDocument, n.ID, d.NextID)
		}
		if _, dup := kinds[n.ID]; dup {
			return fmt.Errorf("%w: duplicate node id %d", ErrInvalidDocument, n.ID)
		}

		kind, err := board.ParseKind(n.Kind)
		if err != nil {
			return fmt.Errorf("%w: node %d kind %q", ErrInvalidDocument, n.ID, n.Kind)
		}
		kinds[n.ID] = kind

		switch kind {
		case board.KindStart:
			starts++
		case board.KindFinish:
			finishes++
		}
	}
	if starts > 1 {
		return fmt.Errorf("%w: %d start nodes", ErrInvalidDocument, starts)
	}
	if finishes > 1 {
		return fmt.Errorf("%w: %d finish nodes", ErrInvalidDocument, finishes)
	}

	// 4) Wires: endpoints exist, ports inside arity, legal kind pairs, no
	//    self wires, no duplicate tuples.
	seen := make(map[WireRecord]struct{}, len(d.Wires))
	for _, w := range d.Wires {
		srcKind, ok := kinds[w.FromNode]
		if !ok {
			return fmt.Errorf("%w: wire from unknown node %d", ErrInvalidDocument, w.FromNode)
		}
		dstKind, ok := kinds[w.ToNode]
		if !ok {
			return fmt.Errorf("%w: wire into unknown node %d", ErrInvalidDocument, w.ToNode)
		}
		if w.FromNode == w.ToNode {
			return fmt.Errorf("%w: self wire on node %d", ErrInvalidDocument, w.FromNode)
		}
		if w.FromPort < 0 || w.FromPort >= srcKind.Outputs() {
			return fmt.Errorf("%w: wire %d→%d output port %d", ErrInvalidDocument, w.FromNode, w.ToNode, w.FromPort)
		}
		if w.ToPort < 0 || w.ToPort >= dstKind.Inputs() {
			return fmt.Errorf("%w: wire %d→%d input port %d", ErrInvalidDocument, w.FromNode, w.ToNode, w.ToPort)
		}
		if !board.Linkable(srcKind, dstKind) {
			return fmt.Errorf("%w: wire %d→%d kinds %s→%s", ErrInvalidDocument, w.FromNode, w.ToNode, srcKind, dstKind)
		}
		if _, dup := seen[w]; dup {
			return fmt.Errorf("%w: duplicate wire %d→%d", ErrInvalidDocument, w.FromNode, w.ToNode)
		}
		seen[w] = struct{}{}
	}

	// 5) Costs: non-negative values, shape matching the policy, endpoints
	//    that exist.
	for _, c := range d.Costs {
		if c.Cost < 0 {
			return fmt.Errorf("%w: negative cost %d→%d", ErrInvalidDocument, c.From, c.To)
		}
		if pol == cost.PolicyScalar && c.From != 0 {
			return fmt.Errorf("%w: scalar cost entry with predecessor %d", ErrInvalidDocument, c.From)
		}
		if pol == cost.PolicyEdge {
			if _, ok := kinds[c.From]; !ok {
				return fmt.Errorf("%w: cost entry from unknown node %d", ErrInvalidDocument, c.From)
			}
		}
		if _, ok := kinds[c.To]; !ok {
			return fmt.Errorf("%w: cost entry into unknown node %d", ErrInvalidDocument, c.To)
		}
	}

	return nil
}

// Normalize puts a hand-built document into canonical order, the order
// Capture produces naturally. Useful before comparing or encoding documents
// assembled in tests or tools.
func (d *Document) Normalize() {
	sort.Slice(d.Nodes, func(i, j int) bool { return d.Nodes[i].ID < d.Nodes[j].ID })
	sort.Slice(d.Wires, func(i, j int) bool {
		a, b := d.Wires[i], d.Wires[j]
		if a.FromNode != b.FromNode {
			return a.FromNode < b.FromNode
		}
		if a.FromPort != b.FromPort {
			return a.FromPort < b.FromPort
		}
		if a.ToNode != b.ToNode {
			return a.ToNode < b.ToNode
		}
		return a.ToPort < b.ToPort
	})
	sort.Slice(d.Costs, func(i, j int) bool {
		if d.Costs[i].From != d.Costs[j].From {
			return d.Costs[i].From < d.Costs[j].From
		}
		return d.Costs[i].To < d.Costs[j].To
	})
}
