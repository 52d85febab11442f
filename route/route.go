package route

import (
	"container/heap"
	"fmt"
	"math"

	"github.com/katalvlaran/routeboard/board"
	"github.com/katalvlaran/routeboard/cost"
)

// unreached is the sentinel tentative distance for nodes the search has not
// relaxed yet. It exceeds any attainable path cost.
const unreached = int64(math.MaxInt64)

// Find computes the minimum-total-cost path from the board's Start node to
// its Finish node, walking directed wires only and pricing every step
// through the cost model.
//
// Preconditions and failure modes (in order):
//  1. b must be non-nil (ErrNilBoard).
//  2. m must be non-nil (ErrNilModel).
//  3. The board must have a Start node (ErrMissingStart).
//  4. The board must have a Finish node (ErrMissingFinish).
//  5. A directed path within Options.MaxCost must connect them
//     (ErrUnreachable).
//
// Determinism: repeated calls on an unchanged board and cost model return
// the identical path and cost. Three mechanisms guarantee it: the frontier
// breaks distance ties by ascending node id, wires relax in their canonical
// sorted order, and relaxation updates only on strictly smaller distances,
// so the first minimal path found is the one kept.
//
// Complexity:
//
//   - Time:  O((V + E) log V) heap work plus O(E log E) for sorted wire
//     enumeration, both trivial at interactive board sizes.
//   - Space: O(V + E) for the distance, predecessor, and frontier state.
func Find(b *board.Board, m cost.Model, opts ...Option) (*Result, error) {
	// 1) Build options.
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	// 2) Validate inputs.
	if b == nil {
		return nil, ErrNilBoard
	}
	if m == nil {
		return nil, ErrNilModel
	}

	// 3) Resolve the terminal nodes.
	start := b.StartID()
	if start == 0 {
		return nil, ErrMissingStart
	}
	finish := b.FinishID()
	if finish == 0 {
		return nil, ErrMissingFinish
	}

	// 4) Degenerate case: Start and Finish coincide. A well-formed board
	//    cannot produce this (the kinds are distinct), but the answer is
	//    defined: the one-node path at zero cost.
	if start == finish {
		return &Result{Path: []board.NodeID{start}, TotalCost: 0}, nil
	}

	// 5) Run the search.
	r := &runner{
		b:       b,
		m:       m,
		options: cfg,
		finish:  finish,
		dist:    make(map[board.NodeID]int64, b.NodeCount()),
		prev:    make(map[board.NodeID]board.NodeID, b.NodeCount()),
		visited: make(map[board.NodeID]bool, b.NodeCount()),
		pq:      make(frontier, 0, b.NodeCount()),
	}
	r.init(start)
	if err := r.process(); err != nil {
		return nil, err
	}

	// 6) A finish still at the sentinel distance was never relaxed: no
	//    directed path within budget reaches it.
	total, ok := r.dist[finish]
	if !ok || total == unreached {
		return nil, ErrUnreachable
	}

	// 7) Reconstruct the path by walking predecessor links back from Finish,
	//    then reversing. Node ids start at 1, so 0 terminates the walk.
	var path []board.NodeID
	for cur := finish; cur != 0; cur = r.prev[cur] {
		path = append(path, cur)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return &Result{Path: path, TotalCost: total}, nil
}

// runner holds the mutable state for a single search execution.
type runner struct {
	b       *board.Board                  // read-only topology
	m       cost.Model                    // read-only arrival costs
	options Options                       // per-invocation tuning
	finish  board.NodeID                  // early-exit target
	dist    map[board.NodeID]int64        // node id → best known distance
	prev    map[board.NodeID]board.NodeID // node id → predecessor on best path
	visited map[board.NodeID]bool         // node id → distance finalized
	pq      frontier                      // lazy min-heap of (distance, id)
}

// init seeds the sentinel distances and pushes the start node at distance 0.
func (r *runner) init(start board.NodeID) {
	for _, id := range r.b.NodeIDs() {
		r.dist[id] = unreached
	}
	r.dist[start] = 0

	heap.Init(&r.pq)
	heap.Push(&r.pq, &frontierItem{id: start, dist: 0})
}

// process runs the main loop: extract the closest frontier node, finalize
// it, relax its outbound wires. Terminates when the finish node is
// extracted (its distance is then final), when the frontier drains, or when
// the closest remaining node already exceeds the cost budget.
func (r *runner) process() error {
	for r.pq.Len() > 0 {
		item := heap.Pop(&r.pq).(*frontierItem)
		u := item.id

		// Stale lazy-decrease-key entry: the node was finalized through a
		// cheaper path after this entry was pushed.
		if r.visited[u] {
			continue
		}

		// The extracted node is the closest unfinalized one. If that is the
		// finish, its distance is final and nothing cheaper remains.
		if u == r.finish {
			return nil
		}

		if item.dist > r.options.MaxCost {
			return nil
		}

		r.visited[u] = true
		if err := r.relax(u); err != nil {
			return err
		}
	}

	return nil
}

// relax prices every wire leaving u and improves neighbor distances.
// Assumes dist[u] is final.
func (r *runner) relax(u board.NodeID) error {
	for _, w := range r.b.WiresFrom(u) {
		v := w.To.Node

		// The arrival cost of stepping onto v, keyed by u as predecessor.
		c := r.m.Arrival(u, v)
		if c < 0 {
			return fmt.Errorf("%w: %d→%d cost=%d", ErrNegativeArrival, u, v, c)
		}

		// Skip when the candidate would exceed the budget; written as a
		// subtraction so the sum cannot overflow first.
		if r.dist[u] > r.options.MaxCost-c {
			continue
		}

		// Strictly-smaller updates only, so equal-cost rediscoveries never
		// displace the first minimal path.
		newDist := r.dist[u] + c
		if newDist >= r.dist[v] {
			continue
		}

		r.dist[v] = newDist
		r.prev[v] = u
		heap.Push(&r.pq, &frontierItem{id: v, dist: newDist})
	}

	return nil
}

// frontierItem is one (node, tentative distance) entry in the frontier.
type frontierItem struct {
	id   board.NodeID
	dist int64
}

// frontier is a min-heap of *frontierItem ordered by ascending distance,
// ties broken by ascending node id. The id tie-break is what makes repeated
// searches on an unchanged board reproducible. Stale entries from the lazy
// decrease-key pattern are skipped at pop time via the visited map.
type frontier []*frontierItem

// Len returns the number of items in the heap.
func (f frontier) Len() int { return len(f) }

// Less orders by distance, then by node id for determinism.
func (f frontier) Less(i, j int) bool {
	if f[i].dist != f[j].dist {
		return f[i].dist < f[j].dist
	}

	return f[i].id < f[j].id
}

// Swap swaps two elements in the heap.
func (f frontier) Swap(i, j int) { f[i], f[j] = f[j], f[i] }

// Push adds a new element x onto the heap; x must be a *frontierItem.
func (f *frontier) Push(x interface{}) { *f = append(*f, x.(*frontierItem)) }

// Pop removes and returns the smallest element from the heap.
func (f *frontier) Pop() interface{} {
	old := *f
	n := len(old)
	item := old[n-1]
	*f = old[:n-1]

	return item
}
