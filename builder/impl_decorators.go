package builder

import (
	"fmt"

	"github.com/katalvlaran/routeboard/board"
)

// Decoy adds one extra wire between two existing nodes, typically a
// shortcut that tempts a search away from the trunk. Both endpoints must
// already exist and form a legal kind pair.
func Decoy(from, to board.NodeID) Constructor {
	return func(b *board.Board, _ config) error {
		return wire(b, from, to)
	}
}

// Spur hangs a dead-end waypoint chain off an existing node, one row below
// it. The last spur waypoint's output stays unwired, so no path through the
// spur ever reaches Finish; the fixture exercises no-path regions and
// cascade removal.
func Spur(at board.NodeID, length int) Constructor {
	return func(b *board.Board, cfg config) error {
		if length < 1 {
			return fmt.Errorf("spur of length %d: %w", length, ErrShapeParams)
		}
		anchor, ok := b.Node(at)
		if !ok {
			return fmt.Errorf("spur at %d: %w", at, board.ErrNodeNotFound)
		}

		prev := at
		for i := 1; i <= length; i++ {
			pos := board.Position{
				X: anchor.Pos.X + float64(i)*cfg.dx,
				Y: anchor.Pos.Y + cfg.dy,
			}
			id, err := b.Insert(board.KindWaypoint, pos)
			if err != nil {
				return fmt.Errorf("spur waypoint %d: %w", i, err)
			}
			if err := wire(b, prev, id); err != nil {
				return err
			}
			prev = id
		}

		return nil
	}
}
