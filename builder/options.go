package builder

import "github.com/katalvlaran/routeboard/board"

// Default layout spacing: waypoints sit DefaultSpacingX apart along the
// flow axis and parallel branches DefaultSpacingY apart across it.
const (
	DefaultSpacingX = 90.0
	DefaultSpacingY = 70.0
)

// config is the resolved layout configuration shared by all constructors.
type config struct {
	origin board.Position
	dx     float64
	dy     float64
}

// Option mutates the layout configuration before any constructor runs.
type Option func(*config)

// WithOrigin anchors the first trunk node at pos instead of the zero
// position.
func WithOrigin(pos board.Position) Option {
	return func(c *config) { c.origin = pos }
}

// WithSpacing overrides the default gaps between neighboring nodes. Build
// refuses non-positive values.
func WithSpacing(dx, dy float64) Option {
	return func(c *config) { c.dx, c.dy = dx, dy }
}

func resolve(opts []Option) config {
	c := config{dx: DefaultSpacingX, dy: DefaultSpacingY}
	for _, opt := range opts {
		opt(&c)
	}

	return c
}
