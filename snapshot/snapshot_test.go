package snapshot_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/routeboard/board"
	"github.com/katalvlaran/routeboard/cost"
	"github.com/katalvlaran/routeboard/snapshot"
)

// session builds a populated board and edge-policy cost model.
func session(t *testing.T) (*board.Board, cost.Model) {
	t.Helper()

	b := board.New()
	s, err := b.Insert(board.KindStart, board.Position{X: 10, Y: 20})
	require.NoError(t, err)
	w1, err := b.Insert(board.KindWaypoint, board.Position{X: 110, Y: 20})
	require.NoError(t, err)
	w2, err := b.Insert(board.KindWaypoint, board.Position{X: 110, Y: 140})
	require.NoError(t, err)
	f, err := b.Insert(board.KindFinish, board.Position{X: 230, Y: 80})
	require.NoError(t, err)

	for _, pair := range [][2]board.NodeID{{s, w1}, {s, w2}, {w1, f}, {w2, f}} {
		require.NoError(t, b.Connect(
			board.OutPort{Node: pair[0], Port: 0},
			board.InPort{Node: pair[1], Port: 0},
		))
	}

	m := cost.NewEdgeModel()
	require.NoError(t, m.SetArrival(s, w1, 3))
	require.NoError(t, m.SetArrival(w1, f, 2))
	require.NoError(t, m.SetArrival(w2, f, 9))

	return b, m
}

func TestSnapshot_RoundTripIsByteStable(t *testing.T) {
	b, m := session(t)

	doc := snapshot.Capture(b, m)
	first, err := snapshot.Encode(doc)
	require.NoError(t, err)

	decoded, err := snapshot.Decode(first)
	require.NoError(t, err)

	// Restore into a completely fresh session.
	b2 := board.New()
	m2 := cost.NewEdgeModel()
	require.NoError(t, snapshot.Apply(decoded, b2, m2))

	// The restored session must capture to the identical bytes.
	second, err := snapshot.Encode(snapshot.Capture(b2, m2))
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))

	// And behave identically: same stats, same counter, same costs.
	assert.Equal(t, b.Stats(), b2.Stats())
	assert.Equal(t, b.NextID(), b2.NextID())
	assert.Equal(t, m.Entries(), m2.Entries())
}

func TestSnapshot_ApplyReplacesExistingState(t *testing.T) {
	b, m := session(t)
	doc := snapshot.Capture(b, m)

	// The target session already holds unrelated state.
	b2 := board.New()
	_, err := b2.Insert(board.KindStart, board.Position{X: 999})
	require.NoError(t, err)
	m2 := cost.NewEdgeModel()
	require.NoError(t, m2.SetArrival(7, 8, 42))

	require.NoError(t, snapshot.Apply(doc, b2, m2))

	assert.Equal(t, b.Stats(), b2.Stats())
	n, ok := b2.Node(1)
	require.True(t, ok)
	assert.Equal(t, board.Position{X: 10, Y: 20}, n.Pos)
	assert.Equal(t, int64(1), m2.Arrival(7, 8), "old cost table replaced")
}

func TestSnapshot_DecodeMalformed(t *testing.T) {
	_, err := snapshot.Decode([]byte(`{"version": 1,`))
	require.ErrorIs(t, err, snapshot.ErrMalformed)

	_, err = snapshot.Decode([]byte(`not json at all`))
	require.ErrorIs(t, err, snapshot.ErrMalformed)
}

func TestSnapshot_DecodeVersionGate(t *testing.T) {
	_, err := snapshot.Decode([]byte(`{"version": 99, "policy": "edge", "next_id": 1}`))
	require.ErrorIs(t, err, snapshot.ErrUnsupportedVersion)

	_, err = snapshot.Decode([]byte(`{"version": 0, "policy": "edge", "next_id": 1}`))
	require.ErrorIs(t, err, snapshot.ErrUnsupportedVersion)
}

func TestSnapshot_EmptyDocument(t *testing.T) {
	doc, err := snapshot.Decode([]byte(`{"version": 1, "policy": "edge", "next_id": 1, "nodes": [], "wires": [], "costs": []}`))
	require.NoError(t, err)

	b := board.New()
	m := cost.NewEdgeModel()
	require.NoError(t, snapshot.Apply(doc, b, m))
	assert.Equal(t, 0, b.NodeCount())
	assert.Equal(t, board.NodeID(1), b.NextID())
}

func TestDocument_Validate(t *testing.T) {
	base := func() *snapshot.Document {
		return &snapshot.Document{
			Version: snapshot.Version,
			Policy:  "edge",
			NextID:  4,
			Nodes: []snapshot.NodeRecord{
				{ID: 1, Kind: "start"},
				{ID: 2, Kind: "waypoint", X: 100},
				{ID: 3, Kind: "finish", X: 200},
			},
			Wires: []snapshot.WireRecord{
				{FromNode: 1, ToNode: 2},
				{FromNode: 2, ToNode: 3},
			},
			Costs: []snapshot.CostRecord{
				{From: 1, To: 2, Cost: 5},
			},
		}
	}
	require.NoError(t, base().Validate(), "base document must be valid")

	cases := []struct {
		name   string
		mutate func(*snapshot.Document)
	}{
		{"unknown policy", func(d *snapshot.Document) { d.Policy = "psychic" }},
		{"zero node id", func(d *snapshot.Document) { d.Nodes[0].ID = 0 }},
		{"id at counter", func(d *snapshot.Document) { d.Nodes[2].ID = 4; d.Wires[1].ToNode = 4 }},
		{"duplicate node id", func(d *snapshot.Document) { d.Nodes[1].ID = 1 }},
		{"unknown kind", func(d *snapshot.Document) { d.Nodes[1].Kind = "portal" }},
		{"second start", func(d *snapshot.Document) { d.Nodes[1].Kind = "start" }},
		{"second finish", func(d *snapshot.Document) { d.Nodes[1].Kind = "finish" }},
		{"wire from unknown node", func(d *snapshot.Document) { d.Wires[0].FromNode = 9 }},
		{"wire into unknown node", func(d *snapshot.Document) { d.Wires[0].ToNode = 9 }},
		{"self wire", func(d *snapshot.Document) { d.Wires[0].ToNode = 1 }},
		{"output port beyond arity", func(d *snapshot.Document) { d.Wires[0].FromPort = 1 }},
		{"input port beyond arity", func(d *snapshot.Document) { d.Wires[0].ToPort = -1 }},
		{"illegal kind pair", func(d *snapshot.Document) { d.Wires[0] = snapshot.WireRecord{FromNode: 1, ToNode: 3} }},
		{"duplicate wire", func(d *snapshot.Document) { d.Wires[1] = d.Wires[0] }},
		{"negative cost", func(d *snapshot.Document) { d.Costs[0].Cost = -1 }},
		{"cost from unknown node", func(d *snapshot.Document) { d.Costs[0].From = 9 }},
		{"cost into unknown node", func(d *snapshot.Document) { d.Costs[0].To = 9 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			doc := base()
			tc.mutate(doc)
			require.ErrorIs(t, doc.Validate(), snapshot.ErrInvalidDocument)
		})
	}
}

func TestDocument_ValidateScalarShape(t *testing.T) {
	doc := &snapshot.Document{
		Version: snapshot.Version,
		Policy:  "scalar",
		NextID:  3,
		Nodes: []snapshot.NodeRecord{
			{ID: 1, Kind: "start"},
			{ID: 2, Kind: "waypoint"},
		},
		Costs: []snapshot.CostRecord{{From: 0, To: 2, Cost: 5}},
	}
	require.NoError(t, doc.Validate())

	doc.Costs[0].From = 1
	require.ErrorIs(t, doc.Validate(), snapshot.ErrInvalidDocument)
}

func TestSnapshot_ApplyPolicyMismatch(t *testing.T) {
	b, m := session(t)
	doc := snapshot.Capture(b, m) // edge policy document

	err := snapshot.Apply(doc, board.New(), cost.NewScalarModel())
	require.ErrorIs(t, err, snapshot.ErrInvalidDocument)
}

func TestDocument_Normalize(t *testing.T) {
	doc := &snapshot.Document{
		Version: snapshot.Version,
		Policy:  "edge",
		NextID:  5,
		Nodes: []snapshot.NodeRecord{
			{ID: 3, Kind: "finish"},
			{ID: 1, Kind: "start"},
			{ID: 2, Kind: "waypoint"},
		},
		Wires: []snapshot.WireRecord{
			{FromNode: 2, ToNode: 3},
			{FromNode: 1, ToNode: 2},
		},
		Costs: []snapshot.CostRecord{
			{From: 2, To: 3, Cost: 2},
			{From: 1, To: 2, Cost: 1},
		},
	}

	doc.Normalize()

	assert.Equal(t, board.NodeID(1), doc.Nodes[0].ID)
	assert.Equal(t, board.NodeID(1), doc.Wires[0].FromNode)
	assert.Equal(t, board.NodeID(1), doc.Costs[0].From)
}
