package cost

import (
	"fmt"
	"math"
	"sort"

	"github.com/katalvlaran/routeboard/board"
)

// pair is the internal cost key. Scalar models normalize From to 0 so the
// same map serves both policies.
type pair struct {
	from board.NodeID
	to   board.NodeID
}

// table is the single Model implementation behind both policies.
type table struct {
	policy Policy
	opts   Options
	costs  map[pair]int64
}

// NewScalarModel builds an empty Model under PolicyScalar.
func NewScalarModel(opts ...Option) Model {
	return newTable(PolicyScalar, opts...)
}

// NewEdgeModel builds an empty Model under PolicyEdge, the default policy.
func NewEdgeModel(opts ...Option) Model {
	return newTable(PolicyEdge, opts...)
}

// NewModel builds an empty Model under the given policy; convenient when the
// policy arrives from configuration. Fails with ErrUnknownPolicy.
func NewModel(p Policy, opts ...Option) (Model, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("new model with policy %d: %w", p, ErrUnknownPolicy)
	}

	return newTable(p, opts...), nil
}

func newTable(p Policy, opts ...Option) *table {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return &table{
		policy: p,
		opts:   o,
		costs:  make(map[pair]int64),
	}
}

// key normalizes a (from, to) pair for the active policy.
func (t *table) key(from, to board.NodeID) pair {
	if t.policy == PolicyScalar {
		return pair{from: 0, to: to}
	}

	return pair{from: from, to: to}
}

func (t *table) Policy() Policy { return t.policy }

// Arrival returns the stored cost for the pair, or the configured default
// when the pair is absent. Complexity: O(1).
func (t *table) Arrival(from, to board.NodeID) int64 {
	if c, ok := t.costs[t.key(from, to)]; ok {
		return c
	}

	return t.opts.DefaultArrival
}

// SetArrival writes an exact cost. Negative values are refused.
func (t *table) SetArrival(from, to board.NodeID, c int64) error {
	if c < 0 {
		return fmt.Errorf("set arrival %d→%d to %d: %w", from, to, c, ErrNegativeCost)
	}
	t.costs[t.key(from, to)] = c

	return nil
}

// Adjust shifts the pair's cost by delta and clamps at the floor. The pair
// is materialized if it was absent, starting from the default.
func (t *table) Adjust(from, to board.NodeID, delta int64) int64 {
	k := t.key(from, to)
	cur, ok := t.costs[k]
	if !ok {
		cur = t.opts.DefaultArrival
	}

	next := cur + delta
	if next < t.opts.ClampFloor {
		next = t.opts.ClampFloor
	}
	t.costs[k] = next

	return next
}

// Recompute rebuilds the table from layout geometry.
//
// For every wire the cost is the Euclidean distance from the predecessor's
// right-center anchor to the destination's left-center anchor, rounded to
// the nearest integer, divided by ScaleDivisor, clamped at ClampFloor.
//
// Wires are processed in canonical sorted order so that scalar fan-in
// (several predecessors writing the same destination slot) resolves to the
// same survivor on every run. The swap into place happens only after every
// wire resolved, so a missing rectangle leaves the previous table intact.
//
// Complexity: O(E log E) for the sort, O(E) for the pass.
func (t *table) Recompute(lay Layout) error {
	// 1) Sort a private copy of the wires; determinism must not depend on
	//    the caller's ordering.
	wires := make([]board.Wire, len(lay.Wires))
	copy(wires, lay.Wires)
	sort.Slice(wires, func(i, j int) bool { return wires[i].Less(wires[j]) })

	// 2) Resolve every wire into a fresh table.
	fresh := make(map[pair]int64, len(wires))
	for _, w := range wires {
		srcRect, ok := lay.Rects[w.From.Node]
		if !ok {
			return fmt.Errorf("recompute wire %d→%d: source: %w", w.From.Node, w.To.Node, ErrMissingRect)
		}
		dstRect, ok := lay.Rects[w.To.Node]
		if !ok {
			return fmt.Errorf("recompute wire %d→%d: destination: %w", w.From.Node, w.To.Node, ErrMissingRect)
		}

		fresh[t.key(w.From.Node, w.To.Node)] = t.geometric(srcRect, dstRect)
	}

	// 3) Swap in the new table.
	t.costs = fresh

	return nil
}

// geometric converts the anchor distance between two rectangles into a cost.
func (t *table) geometric(src, dst board.Rect) int64 {
	from := src.RightCenter()
	to := dst.LeftCenter()

	d := math.Hypot(to.X-from.X, to.Y-from.Y)
	c := int64(math.Round(d)) / t.opts.ScaleDivisor
	if c < t.opts.ClampFloor {
		c = t.opts.ClampFloor
	}

	return c
}

// Forget drops every stored cost touching id.
func (t *table) Forget(id board.NodeID) {
	for k := range t.costs {
		if k.from == id || k.to == id {
			delete(t.costs, k)
		}
	}
}

// Entries dumps the table sorted by (From, To).
func (t *table) Entries() []Entry {
	out := make([]Entry, 0, len(t.costs))
	for k, c := range t.costs {
		out = append(out, Entry{From: k.from, To: k.to, Cost: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].From != out[j].From {
			return out[i].From < out[j].From
		}
		return out[i].To < out[j].To
	})

	return out
}

// Restore replaces the table with previously dumped entries after shape
// validation. The swap happens only after every entry passed, so a bad
// document leaves the previous table intact.
func (t *table) Restore(entries []Entry) error {
	fresh := make(map[pair]int64, len(entries))
	for _, e := range entries {
		if e.Cost < 0 {
			return fmt.Errorf("restore entry %d→%d: cost %d: %w", e.From, e.To, e.Cost, ErrNegativeCost)
		}
		if t.policy == PolicyScalar && e.From != 0 {
			return fmt.Errorf("restore entry %d→%d: %w", e.From, e.To, ErrPolicyMismatch)
		}
		if t.policy == PolicyEdge && e.From == 0 {
			return fmt.Errorf("restore entry →%d: %w", e.To, ErrPolicyMismatch)
		}
		fresh[pair{from: e.From, to: e.To}] = e.Cost
	}
	t.costs = fresh

	return nil
}
