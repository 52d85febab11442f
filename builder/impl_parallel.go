package builder

import (
	"fmt"

	"github.com/katalvlaran/routeboard/board"
)

// Parallel lays a trunk of equally long branches: Start fans out to
// `branches` waypoint chains of `length` nodes each, and every chain
// re-joins at a shared Finish. Branch rows are centered on the origin's Y
// axis, so mirror branches have symmetric geometry and tie exactly under
// geometric costs; the fixture is the canonical tie-heavy board.
//
// With default ids Start is 1, Finish is 2, and branch waypoints follow row
// by row from 3.
//
// Complexity: O(branches * length).
func Parallel(branches, length int) Constructor {
	return func(b *board.Board, cfg config) error {
		if branches < 1 || length < 1 {
			return fmt.Errorf("parallel %dx%d: %w", branches, length, ErrShapeParams)
		}

		// 1) Trunk endpoints share the origin row.
		start, err := b.Insert(board.KindStart, cfg.origin)
		if err != nil {
			return fmt.Errorf("parallel start: %w", err)
		}
		finPos := board.Position{X: cfg.origin.X + float64(length+1)*cfg.dx, Y: cfg.origin.Y}
		fin, err := b.Insert(board.KindFinish, finPos)
		if err != nil {
			return fmt.Errorf("parallel finish: %w", err)
		}

		// 2) Each branch is a waypoint row offset symmetrically around the
		//    origin's Y, wired start → row → finish.
		for br := 0; br < branches; br++ {
			rowY := cfg.origin.Y + (float64(br)-float64(branches-1)/2)*cfg.dy
			prev := start
			for i := 1; i <= length; i++ {
				pos := board.Position{X: cfg.origin.X + float64(i)*cfg.dx, Y: rowY}
				id, err := b.Insert(board.KindWaypoint, pos)
				if err != nil {
					return fmt.Errorf("parallel branch %d waypoint %d: %w", br, i, err)
				}
				if err := wire(b, prev, id); err != nil {
					return err
				}
				prev = id
			}
			if err := wire(b, prev, fin); err != nil {
				return err
			}
		}

		return nil
	}
}
