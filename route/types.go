package route

import (
	"errors"

	"github.com/katalvlaran/routeboard/board"
)

// Sentinel errors for path searches. The first three are the recoverable
// failure modes an interactive surface presents to the user; the rest are
// programming or contract errors.
var (
	// ErrMissingStart indicates the board has no Start node.
	ErrMissingStart = errors.New("route: no start node")

	// ErrMissingFinish indicates the board has no Finish node.
	ErrMissingFinish = errors.New("route: no finish node")

	// ErrUnreachable indicates no directed path within the cost budget leads
	// from Start to Finish.
	ErrUnreachable = errors.New("route: finish not reachable from start")

	// ErrNilBoard indicates Find was called with a nil board.
	ErrNilBoard = errors.New("route: nil board")

	// ErrNilModel indicates Find was called with a nil cost model.
	ErrNilModel = errors.New("route: nil cost model")

	// ErrNegativeArrival indicates the cost model produced a negative cost
	// during relaxation. The models in the cost package cannot do this; the
	// guard protects against foreign Model implementations.
	ErrNegativeArrival = errors.New("route: negative arrival cost")
)

// Result is the outcome of a successful search: the node sequence from
// Start to Finish inclusive and the summed arrival costs along it.
//
// Results are transient values recomputed on every search; nothing in this
// package retains or invalidates them.
type Result struct {
	Path      []board.NodeID
	TotalCost int64
}

// Contains reports whether id lies on the result path. The engine package
// derives its highlight view from this.
func (r *Result) Contains(id board.NodeID) bool {
	if r == nil {
		return false
	}
	for _, n := range r.Path {
		if n == id {
			return true
		}
	}

	return false
}
