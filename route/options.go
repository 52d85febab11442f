package route

import (
	"fmt"
	"math"
)

// Options tunes a single search invocation.
type Options struct {
	// MaxCost bounds the total cost a path may accumulate. Nodes whose
	// tentative distance exceeds it are never finalized, and a Finish beyond
	// it reports ErrUnreachable. Defaults to math.MaxInt64 (no bound).
	MaxCost int64
}

// DefaultOptions returns the standard tuning: unbounded cost.
func DefaultOptions() Options {
	return Options{MaxCost: math.MaxInt64}
}

// Option mutates Options during Find setup.
type Option func(*Options)

// WithMaxCost bounds the total path cost. Panics if limit is negative: a
// negative budget is a programming error, not a runtime condition.
func WithMaxCost(limit int64) Option {
	if limit < 0 {
		panic(fmt.Sprintf("route: max cost must be non-negative, got %d", limit))
	}

	return func(o *Options) { o.MaxCost = limit }
}
