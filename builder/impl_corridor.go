package builder

import (
	"fmt"

	"github.com/katalvlaran/routeboard/board"
)

// MinCorridorWaypoints is the smallest legal corridor: Start never wires
// directly to Finish, so at least one waypoint must sit between them.
const MinCorridorWaypoints = 1

// Corridor lays the simplest trunk: Start, a single file of waypoints, and
// Finish, wired left to right along the X axis. With default ids the trunk
// reads 1 → 2 → … → waypoints+2.
//
// Complexity: O(waypoints).
func Corridor(waypoints int) Constructor {
	return func(b *board.Board, cfg config) error {
		if waypoints < MinCorridorWaypoints {
			return fmt.Errorf("corridor with %d waypoints: %w", waypoints, ErrShapeParams)
		}

		// 1) Start at the origin.
		prev, err := b.Insert(board.KindStart, cfg.origin)
		if err != nil {
			return fmt.Errorf("corridor start: %w", err)
		}

		// 2) Waypoints in single file, each wired to its predecessor.
		for i := 1; i <= waypoints; i++ {
			pos := board.Position{X: cfg.origin.X + float64(i)*cfg.dx, Y: cfg.origin.Y}
			id, err := b.Insert(board.KindWaypoint, pos)
			if err != nil {
				return fmt.Errorf("corridor waypoint %d: %w", i, err)
			}
			if err := wire(b, prev, id); err != nil {
				return err
			}
			prev = id
		}

		// 3) Finish closes the file.
		finPos := board.Position{X: cfg.origin.X + float64(waypoints+1)*cfg.dx, Y: cfg.origin.Y}
		fin, err := b.Insert(board.KindFinish, finPos)
		if err != nil {
			return fmt.Errorf("corridor finish: %w", err)
		}

		return wire(b, prev, fin)
	}
}
