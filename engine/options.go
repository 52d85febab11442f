package engine

import (
	"log/slog"

	"github.com/katalvlaran/routeboard/cost"
	"github.com/katalvlaran/routeboard/event"
	"github.com/katalvlaran/routeboard/route"
)

// Options configures a new Engine.
type Options struct {
	// Model prices wire traversal. Defaults to an edge-policy model with
	// standard tuning.
	Model cost.Model

	// Emitter receives search outcome notifications. Defaults to the
	// discarding event.Null.
	Emitter event.Emitter

	// Logger receives structured diagnostics. Defaults to slog.Default.
	Logger *slog.Logger

	// AutoRecalculate re-runs the search after every completed cost pass.
	// Defaults to false (searches run only on explicit request).
	AutoRecalculate bool

	// SearchOptions apply to every search invocation.
	SearchOptions []route.Option
}

// DefaultOptions returns the standard engine configuration.
func DefaultOptions() Options {
	return Options{
		Model:   cost.NewEdgeModel(),
		Emitter: event.Null{},
		Logger:  slog.Default(),
	}
}

// Option mutates Options during engine construction.
type Option func(*Options)

// WithCostModel swaps the cost model. A nil model keeps the default.
func WithCostModel(m cost.Model) Option {
	return func(o *Options) {
		if m != nil {
			o.Model = m
		}
	}
}

// WithEmitter sets the notification emitter. A nil emitter keeps the default.
func WithEmitter(e event.Emitter) Option {
	return func(o *Options) {
		if e != nil {
			o.Emitter = e
		}
	}
}

// WithLogger sets the diagnostics logger. A nil logger keeps the default.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithAutoRecalculate sets the initial auto-recalculate state.
func WithAutoRecalculate(on bool) Option {
	return func(o *Options) { o.AutoRecalculate = on }
}

// WithSearchOptions applies route options (such as route.WithMaxCost) to
// every search the engine runs.
func WithSearchOptions(opts ...route.Option) Option {
	return func(o *Options) { o.SearchOptions = opts }
}
