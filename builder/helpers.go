package builder

import (
	"fmt"

	"github.com/katalvlaran/routeboard/board"
)

// wire connects two nodes on their zero ports. The closed kind set never
// has more than one port per side, so the zero port is always the right
// one.
func wire(b *board.Board, from, to board.NodeID) error {
	if err := b.Connect(board.OutPort{Node: from}, board.InPort{Node: to}); err != nil {
		return fmt.Errorf("wire %d to %d: %w", from, to, err)
	}

	return nil
}
