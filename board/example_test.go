package board_test

import (
	"fmt"

	"github.com/katalvlaran/routeboard/board"
)

// ExampleBoard wires the smallest useful layout, Start→Waypoint→Finish, and
// shows that illegal connections are refused without changing the board.
func ExampleBoard() {
	b := board.New()

	start, _ := b.Insert(board.KindStart, board.Position{X: 0, Y: 0})
	stop, _ := b.Insert(board.KindWaypoint, board.Position{X: 120, Y: 0})
	finish, _ := b.Insert(board.KindFinish, board.Position{X: 240, Y: 0})

	_ = b.Connect(board.OutPort{Node: start}, board.InPort{Node: stop})
	_ = b.Connect(board.OutPort{Node: stop}, board.InPort{Node: finish})

	// Start may not feed Finish directly; the attempt is refused.
	err := b.Connect(board.OutPort{Node: start}, board.InPort{Node: finish})

	fmt.Println("nodes:", b.NodeCount())
	fmt.Println("wires:", b.WireCount())
	fmt.Println("refused:", err != nil)
	// Output:
	// nodes: 3
	// wires: 2
	// refused: true
}
