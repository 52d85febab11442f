package route_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/katalvlaran/routeboard/board"
	"github.com/katalvlaran/routeboard/cost"
	"github.com/katalvlaran/routeboard/route"
)

func mustInsert(t *testing.T, b *board.Board, k board.Kind) board.NodeID {
	t.Helper()
	id, err := b.Insert(k, board.Position{})
	if err != nil {
		t.Fatalf("insert %s: %v", k, err)
	}

	return id
}

func mustConnect(t *testing.T, b *board.Board, from, to board.NodeID) {
	t.Helper()
	if err := b.Connect(board.OutPort{Node: from}, board.InPort{Node: to}); err != nil {
		t.Fatalf("connect %d→%d: %v", from, to, err)
	}
}

func mustSetArrival(t *testing.T, m cost.Model, from, to board.NodeID, c int64) {
	t.Helper()
	if err := m.SetArrival(from, to, c); err != nil {
		t.Fatalf("set arrival %d→%d=%d: %v", from, to, c, err)
	}
}

// decoyBoard builds Start(1)→W(2)→W(3)→Finish(4) plus the tempting direct
// wire 2→4.
func decoyBoard(t *testing.T) *board.Board {
	t.Helper()

	b := board.New()
	s := mustInsert(t, b, board.KindStart)
	w1 := mustInsert(t, b, board.KindWaypoint)
	w2 := mustInsert(t, b, board.KindWaypoint)
	f := mustInsert(t, b, board.KindFinish)

	mustConnect(t, b, s, w1)
	mustConnect(t, b, w1, w2)
	mustConnect(t, b, w2, f)
	mustConnect(t, b, w1, f)

	return b
}

func TestFind_DetourBeatsExpensiveDirectWire(t *testing.T) {
	b := decoyBoard(t)

	m := cost.NewEdgeModel()
	mustSetArrival(t, m, 1, 2, 1)
	mustSetArrival(t, m, 2, 3, 2)
	mustSetArrival(t, m, 3, 4, 1)
	mustSetArrival(t, m, 2, 4, 10)

	res, err := route.Find(b, m)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}

	wantPath := []board.NodeID{1, 2, 3, 4}
	if !reflect.DeepEqual(res.Path, wantPath) {
		t.Errorf("path = %v, want %v", res.Path, wantPath)
	}
	if res.TotalCost != 4 {
		t.Errorf("total cost = %d, want 4", res.TotalCost)
	}
}

func TestFind_PathSumsArrivalCosts(t *testing.T) {
	b := decoyBoard(t)

	// Waypoint 2 charges 3, waypoint 3 charges 2, the finish charges the
	// default 1. The direct wire 2→4 costs 10 and must lose: 3+2+1 < 3+10.
	m := cost.NewEdgeModel()
	mustSetArrival(t, m, 1, 2, 3)
	mustSetArrival(t, m, 2, 3, 2)
	mustSetArrival(t, m, 2, 4, 10)

	res, err := route.Find(b, m)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}

	wantPath := []board.NodeID{1, 2, 3, 4}
	if !reflect.DeepEqual(res.Path, wantPath) {
		t.Errorf("path = %v, want %v", res.Path, wantPath)
	}
	if res.TotalCost != 6 {
		t.Errorf("total cost = %d, want 6", res.TotalCost)
	}
}

func TestFind_ScalarPolicyPrefersFewerHops(t *testing.T) {
	b := decoyBoard(t)

	// Under the scalar policy every inbound wire of a node costs the same,
	// so the detour cannot undercut the direct wire: it only adds stops.
	m := cost.NewScalarModel()
	mustSetArrival(t, m, 0, 2, 3)
	mustSetArrival(t, m, 0, 3, 2)

	res, err := route.Find(b, m)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}

	wantPath := []board.NodeID{1, 2, 4}
	if !reflect.DeepEqual(res.Path, wantPath) {
		t.Errorf("path = %v, want %v", res.Path, wantPath)
	}
	// 3 to arrive at node 2, default 1 to arrive at the finish.
	if res.TotalCost != 4 {
		t.Errorf("total cost = %d, want 4", res.TotalCost)
	}
}

func TestFind_FailureModes(t *testing.T) {
	noStart := board.New()
	mustInsert(t, noStart, board.KindWaypoint)
	_ = mustInsert(t, noStart, board.KindFinish)

	noFinish := board.New()
	mustInsert(t, noFinish, board.KindStart)

	disconnected := board.New()
	mustInsert(t, disconnected, board.KindStart)
	mustInsert(t, disconnected, board.KindFinish)

	cases := []struct {
		name string
		b    *board.Board
		want error
	}{
		{"no start node", noStart, route.ErrMissingStart},
		{"no finish node", noFinish, route.ErrMissingFinish},
		{"no wires at all", disconnected, route.ErrUnreachable},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := route.Find(tc.b, cost.NewEdgeModel())
			if !errors.Is(err, tc.want) {
				t.Fatalf("Find error = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestFind_UnreachableAfterDisconnect(t *testing.T) {
	b := board.New()
	s := mustInsert(t, b, board.KindStart)
	w := mustInsert(t, b, board.KindWaypoint)
	f := mustInsert(t, b, board.KindFinish)
	mustConnect(t, b, s, w)
	mustConnect(t, b, w, f)

	m := cost.NewEdgeModel()
	if _, err := route.Find(b, m); err != nil {
		t.Fatalf("Find before disconnect: %v", err)
	}

	if err := b.Disconnect(board.OutPort{Node: w}, board.InPort{Node: f}); err != nil {
		t.Fatalf("Disconnect: %v", err)
	}

	if _, err := route.Find(b, m); !errors.Is(err, route.ErrUnreachable) {
		t.Fatalf("Find error = %v, want %v", err, route.ErrUnreachable)
	}
}

func TestFind_DeterministicTieBreak(t *testing.T) {
	// Diamond: 1→2→4 and 1→3→4 cost the same. The lower-id branch must win
	// on every run.
	b := board.New()
	s := mustInsert(t, b, board.KindStart)
	w1 := mustInsert(t, b, board.KindWaypoint)
	w2 := mustInsert(t, b, board.KindWaypoint)
	f := mustInsert(t, b, board.KindFinish)
	mustConnect(t, b, s, w1)
	mustConnect(t, b, s, w2)
	mustConnect(t, b, w1, f)
	mustConnect(t, b, w2, f)

	m := cost.NewEdgeModel()
	wantPath := []board.NodeID{1, 2, 4}
	for i := 0; i < 5; i++ {
		res, err := route.Find(b, m)
		if err != nil {
			t.Fatalf("run %d: Find: %v", i, err)
		}
		if !reflect.DeepEqual(res.Path, wantPath) {
			t.Fatalf("run %d: path = %v, want %v", i, res.Path, wantPath)
		}
		if res.TotalCost != 2 {
			t.Fatalf("run %d: total cost = %d, want 2", i, res.TotalCost)
		}
	}
}

// countingModel counts Arrival lookups while delegating to a real model.
type countingModel struct {
	cost.Model
	calls int
}

func (c *countingModel) Arrival(from, to board.NodeID) int64 {
	c.calls++
	return c.Model.Arrival(from, to)
}

func TestFind_StopsAtFinishExtraction(t *testing.T) {
	// Finish 3 and waypoint 4 reach the frontier at the same distance; the
	// id tie-break extracts the finish first and the tail behind waypoint 4
	// must never be priced.
	b := board.New()
	s := mustInsert(t, b, board.KindStart)
	w1 := mustInsert(t, b, board.KindWaypoint)
	f := mustInsert(t, b, board.KindFinish)
	w2 := mustInsert(t, b, board.KindWaypoint)
	tail := mustInsert(t, b, board.KindWaypoint)
	mustConnect(t, b, s, w1)
	mustConnect(t, b, w1, f)
	mustConnect(t, b, w1, w2)
	mustConnect(t, b, w2, tail)

	m := &countingModel{Model: cost.NewEdgeModel()}
	res, err := route.Find(b, m)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}

	if want := []board.NodeID{1, 2, 3}; !reflect.DeepEqual(res.Path, want) {
		t.Errorf("path = %v, want %v", res.Path, want)
	}
	// relax(1) prices 1 wire, relax(2) prices 2; extracting the finish ends
	// the search before relax(4) would price the tail wire.
	if m.calls != 3 {
		t.Errorf("arrival lookups = %d, want 3", m.calls)
	}
}

func TestFind_MaxCostBudget(t *testing.T) {
	b := board.New()
	s := mustInsert(t, b, board.KindStart)
	w1 := mustInsert(t, b, board.KindWaypoint)
	w2 := mustInsert(t, b, board.KindWaypoint)
	f := mustInsert(t, b, board.KindFinish)
	mustConnect(t, b, s, w1)
	mustConnect(t, b, w1, w2)
	mustConnect(t, b, w2, f)

	m := cost.NewEdgeModel()
	mustSetArrival(t, m, 1, 2, 5)
	mustSetArrival(t, m, 2, 3, 5)
	mustSetArrival(t, m, 3, 4, 5)

	if _, err := route.Find(b, m, route.WithMaxCost(9)); !errors.Is(err, route.ErrUnreachable) {
		t.Fatalf("budget 9: error = %v, want %v", err, route.ErrUnreachable)
	}

	// A budget equal to the total is sufficient.
	res, err := route.Find(b, m, route.WithMaxCost(15))
	if err != nil {
		t.Fatalf("budget 15: Find: %v", err)
	}
	if res.TotalCost != 15 {
		t.Errorf("total cost = %d, want 15", res.TotalCost)
	}
}

func TestFind_NilInputs(t *testing.T) {
	if _, err := route.Find(nil, cost.NewEdgeModel()); !errors.Is(err, route.ErrNilBoard) {
		t.Fatalf("nil board: error = %v, want %v", err, route.ErrNilBoard)
	}

	b := board.New()
	if _, err := route.Find(b, nil); !errors.Is(err, route.ErrNilModel) {
		t.Fatalf("nil model: error = %v, want %v", err, route.ErrNilModel)
	}
}

// negativeModel violates the Model contract on purpose.
type negativeModel struct{ cost.Model }

func (negativeModel) Arrival(_, _ board.NodeID) int64 { return -1 }

func TestFind_NegativeArrivalGuard(t *testing.T) {
	b := board.New()
	s := mustInsert(t, b, board.KindStart)
	w := mustInsert(t, b, board.KindWaypoint)
	f := mustInsert(t, b, board.KindFinish)
	mustConnect(t, b, s, w)
	mustConnect(t, b, w, f)

	_, err := route.Find(b, negativeModel{})
	if !errors.Is(err, route.ErrNegativeArrival) {
		t.Fatalf("error = %v, want %v", err, route.ErrNegativeArrival)
	}
}

func TestResult_Contains(t *testing.T) {
	var nilRes *route.Result
	if nilRes.Contains(1) {
		t.Error("nil result must contain nothing")
	}

	res := &route.Result{Path: []board.NodeID{1, 2, 4}}
	for _, id := range res.Path {
		if !res.Contains(id) {
			t.Errorf("Contains(%d) = false, want true", id)
		}
	}
	if res.Contains(3) {
		t.Error("Contains(3) = true, want false")
	}
}

func TestWithMaxCost_PanicsOnNegative(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for negative budget")
		}
	}()
	route.WithMaxCost(-1)
}
