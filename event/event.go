package event

import (
	"errors"
	"time"

	"github.com/katalvlaran/routeboard/board"
	"github.com/katalvlaran/routeboard/route"
)

// Type names a notification kind. The values double as span names and log
// message fields, so they stay lower_snake.
type Type string

const (
	// TypePathFound announces a successful search; the event carries the
	// path and its total cost.
	TypePathFound Type = "path_found"

	// TypeMissingStart announces a search refused for lack of a Start node.
	TypeMissingStart Type = "missing_start"

	// TypeMissingFinish announces a search refused for lack of a Finish node.
	TypeMissingFinish Type = "missing_finish"

	// TypeUnreachable announces a search that exhausted the frontier without
	// reaching the Finish node.
	TypeUnreachable Type = "unreachable"

	// TypeCostsRecomputed announces a completed geometric cost pass; the
	// event's Cost field carries the number of wires priced.
	TypeCostsRecomputed Type = "costs_recomputed"
)

// Failure reports whether the type describes an unsuccessful search.
func (t Type) Failure() bool {
	switch t {
	case TypeMissingStart, TypeMissingFinish, TypeUnreachable:
		return true
	default:
		return false
	}
}

// Event is one notification from the engine.
type Event struct {
	// RunID ties the event to the engine invocation that produced it.
	RunID string

	// Type classifies the notification.
	Type Type

	// Path is the found route for TypePathFound, nil otherwise.
	Path []board.NodeID

	// Cost is the total path cost for TypePathFound, the number of priced
	// wires for TypeCostsRecomputed, and zero otherwise.
	Cost int64

	// At is when the engine produced the event.
	At time.Time
}

// Classify maps a search error to its notification type. The second result
// is false for errors that are not one of the three recoverable search
// failures (those indicate contract violations and are not user-facing
// notifications).
func Classify(err error) (Type, bool) {
	switch {
	case errors.Is(err, route.ErrMissingStart):
		return TypeMissingStart, true
	case errors.Is(err, route.ErrMissingFinish):
		return TypeMissingFinish, true
	case errors.Is(err, route.ErrUnreachable):
		return TypeUnreachable, true
	default:
		return "", false
	}
}
