package cost

import "fmt"

// Default tuning values, matching the interactive-editing scale the models
// are built for.
const (
	// DefaultClampFloor is the lowest cost Adjust and Recompute may leave
	// behind unless reconfigured.
	DefaultClampFloor int64 = 1

	// DefaultScaleDivisor converts rounded layout distance into cost units.
	DefaultScaleDivisor int64 = 10

	// DefaultArrivalCost is returned for pairs that were never computed or
	// set.
	DefaultArrivalCost int64 = 1
)

// Options tunes a cost model. Construct with DefaultOptions and override
// through the With... functional options.
type Options struct {
	// ClampFloor is the minimum value Adjust and Recompute produce.
	// Zero is legal and makes zero-cost wires valid.
	ClampFloor int64

	// ScaleDivisor divides the rounded Euclidean distance during Recompute.
	ScaleDivisor int64

	// DefaultArrival is the cost reported for absent pairs.
	DefaultArrival int64
}

// DefaultOptions returns the standard tuning: floor 1, divisor 10,
// default arrival 1.
func DefaultOptions() Options {
	return Options{
		ClampFloor:     DefaultClampFloor,
		ScaleDivisor:   DefaultScaleDivisor,
		DefaultArrival: DefaultArrivalCost,
	}
}

// Option mutates Options during model construction.
type Option func(*Options)

// WithClampFloor sets the minimum cost Adjust and Recompute may produce.
// Panics if floor is negative: costs are non-negative by construction and a
// negative floor is a programming error, not a runtime condition.
func WithClampFloor(floor int64) Option {
	if floor < 0 {
		panic(fmt.Sprintf("cost: clamp floor must be non-negative, got %d", floor))
	}

	return func(o *Options) { o.ClampFloor = floor }
}

// WithScaleDivisor sets the divisor applied to rounded layout distances.
// Panics if d is not positive.
func WithScaleDivisor(d int64) Option {
	if d <= 0 {
		panic(fmt.Sprintf("cost: scale divisor must be positive, got %d", d))
	}

	return func(o *Options) { o.ScaleDivisor = d }
}

// WithDefaultArrival sets the cost reported for pairs that were never
// computed or set. Panics if c is negative.
func WithDefaultArrival(c int64) Option {
	if c < 0 {
		panic(fmt.Sprintf("cost: default arrival must be non-negative, got %d", c))
	}

	return func(o *Options) { o.DefaultArrival = c }
}
