package builder

import (
	"fmt"

	"github.com/katalvlaran/routeboard/board"
)

// Constructor applies one deterministic mutation to the board under
// construction. Constructors validate their parameters early and return
// sentinel errors; they never panic. Same parameters, options, and call
// order always produce an identical board.
type Constructor func(b *board.Board, cfg config) error

// Build creates an empty board, resolves opts, and applies the
// constructors in order. The first error aborts the build with no partial
// cleanup; the caller discards the board.
func Build(opts []Option, cons ...Constructor) (*board.Board, error) {
	cfg := resolve(opts)
	if cfg.dx <= 0 || cfg.dy <= 0 {
		return nil, fmt.Errorf("build with spacing (%v, %v): %w", cfg.dx, cfg.dy, ErrSpacing)
	}

	b := board.New()
	for _, con := range cons {
		if err := con(b, cfg); err != nil {
			return nil, fmt.Errorf("build: %w", err)
		}
	}

	return b, nil
}
