package engine_test

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/katalvlaran/routeboard/board"
	"github.com/katalvlaran/routeboard/engine"
)

// ExampleEngine drives one full manual cycle: build a small board, report
// its layout, recompute costs from the geometry, and search.
func ExampleEngine() {
	e := engine.New(
		engine.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)

	start, _ := e.InsertNode(board.KindStart, board.Position{X: 0, Y: 0})
	via, _ := e.InsertNode(board.KindWaypoint, board.Position{X: 90, Y: 0})
	finish, _ := e.InsertNode(board.KindFinish, board.Position{X: 180, Y: 0})

	_ = e.Connect(board.OutPort{Node: start}, board.InPort{Node: via})
	_ = e.Connect(board.OutPort{Node: via}, board.InPort{Node: finish})

	// The layout surface reports where each node landed on screen.
	for _, n := range e.Nodes() {
		_ = e.ReportRect(n.ID, board.BoxAt(n.Pos, 40, 20))
	}
	_ = e.RecomputeCosts()

	res, _ := e.RunPathSearch()
	fmt.Println("path:", res.Path)
	fmt.Println("cost:", res.TotalCost)

	// Output:
	// path: [1 2 3]
	// cost: 10
}
