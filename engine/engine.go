package engine

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/katalvlaran/routeboard/board"
	"github.com/katalvlaran/routeboard/cost"
	"github.com/katalvlaran/routeboard/event"
	"github.com/katalvlaran/routeboard/metrics"
	"github.com/katalvlaran/routeboard/route"
	"github.com/katalvlaran/routeboard/snapshot"
)

// ErrLayoutIncomplete indicates a cost recompute was requested before every
// node on the board reported a layout rectangle for the current pass.
var ErrLayoutIncomplete = errors.New("engine: layout incomplete")

// Engine owns one board, one cost model, and the recalculation policy that
// connects them to the path search. It is the single entry point an editing
// or rendering surface talks to.
//
// All methods are safe for concurrent use: the engine serializes every
// operation behind one mutex, preserving the strict cycle ordering
// (edits → cost recompute → search) the underlying single-writer structures
// rely on.
type Engine struct {
	mu sync.Mutex

	board   *board.Board
	model   cost.Model
	emitter event.Emitter
	log     *slog.Logger

	auto       bool
	searchOpts []route.Option

	// rects holds the layout rectangle most recently reported for each live
	// node. A cost recompute is gated on every live node having one, so a
	// pass never mixes stale and fresh geometry.
	rects map[board.NodeID]board.Rect

	// last is the most recent successful search result. Search failures
	// never clear it; only ClearResult, Clear, and Restore do.
	last *route.Result
}

// New builds an Engine with an empty board.
func New(opts ...Option) *Engine {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return &Engine{
		board:      board.New(),
		model:      o.Model,
		emitter:    o.Emitter,
		log:        o.Logger,
		auto:       o.AutoRecalculate,
		searchOpts: o.SearchOptions,
		rects:      make(map[board.NodeID]board.Rect),
	}
}

// InsertNode adds a node and returns its id. Singleton and kind refusals
// pass through from the board.
func (e *Engine) InsertNode(kind board.Kind, pos board.Position) (board.NodeID, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	id, err := e.board.Insert(kind, pos)
	if err != nil {
		e.log.Debug("insert refused", "kind", kind.String(), "err", err)
		return 0, err
	}

	e.log.Debug("node inserted", "node", id, "kind", kind.String())
	e.syncGauges()

	return id, nil
}

// RemoveNode deletes a node, its incident wires, its cost entries, and its
// pending layout report.
func (e *Engine) RemoveNode(id board.NodeID) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.board.Remove(id); err != nil {
		return err
	}
	e.model.Forget(id)
	delete(e.rects, id)

	e.log.Debug("node removed", "node", id)
	e.syncGauges()

	return nil
}

// Connect wires an output port to an input port. Illegal connections come
// back as board sentinels; interactive surfaces typically swallow them.
func (e *Engine) Connect(from board.OutPort, to board.InPort) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.board.Connect(from, to); err != nil {
		e.log.Debug("connect refused", "from", from.Node, "to", to.Node, "err", err)
		return err
	}

	e.syncGauges()

	return nil
}

// Disconnect removes the exact wire.
func (e *Engine) Disconnect(from board.OutPort, to board.InPort) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.board.Disconnect(from, to); err != nil {
		return err
	}
	e.syncGauges()

	return nil
}

// MoveNode updates a node's layout position. The node's previously reported
// rectangle stays valid until the layout surface reports a fresh one.
func (e *Engine) MoveNode(id board.NodeID, pos board.Position) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.board.SetPosition(id, pos)
}

// ReportRect records the node's layout rectangle for the current pass.
//
// When auto-recalculate is on and this report completes the frame (every
// live node has a rectangle), the engine immediately recomputes costs and
// re-runs the search, swallowing search failures as transient mid-edit
// states.
func (e *Engine) ReportRect(id board.NodeID, r board.Rect) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.board.HasNode(id) {
		return board.ErrNodeNotFound
	}
	e.rects[id] = r

	if e.auto && e.frameComplete() {
		if err := e.recomputeLocked(); err != nil {
			// The gate held, so only a contract violation lands here.
			e.log.Warn("auto recompute failed", "err", err)
			return nil
		}
		e.autoSearchLocked()
	}

	return nil
}

// RecomputeCosts runs a geometric cost pass from the reported rectangles.
// Fails with ErrLayoutIncomplete until every live node has reported one.
// In auto-recalculate mode the search re-runs afterwards automatically.
func (e *Engine) RecomputeCosts() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.frameComplete() {
		return ErrLayoutIncomplete
	}
	if err := e.recomputeLocked(); err != nil {
		return err
	}
	if e.auto {
		e.autoSearchLocked()
	}

	return nil
}

// frameComplete reports whether every live node has a layout rectangle.
// rects only ever holds live ids, so a length match is an exact match.
func (e *Engine) frameComplete() bool {
	return len(e.rects) == e.board.NodeCount()
}

// recomputeLocked rebuilds the cost table and announces the pass.
func (e *Engine) recomputeLocked() error {
	wires := e.board.Wires()
	if err := e.model.Recompute(cost.Layout{Wires: wires, Rects: e.rects}); err != nil {
		return err
	}

	metrics.CostRecomputes.Inc()
	e.emitter.Emit(event.Event{
		RunID: uuid.NewString(),
		Type:  event.TypeCostsRecomputed,
		Cost:  int64(len(wires)),
		At:    time.Now(),
	})
	e.log.Debug("costs recomputed", "wires", len(wires))

	return nil
}

// RunPathSearch runs the search once and returns its outcome. Successful
// results are retained for LastResult and Highlights; failures leave the
// previous result in place and are both returned and emitted.
func (e *Engine) RunPathSearch() (*route.Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	runID := uuid.NewString()
	res, err := e.findLocked()
	if err != nil {
		if t, ok := event.Classify(err); ok {
			e.emitter.Emit(event.Event{RunID: runID, Type: t, At: time.Now()})
		}
		return nil, err
	}

	e.commitLocked(runID, res)

	return copyResult(res), nil
}

// autoSearchLocked re-runs the search after a cost pass. Failures are
// swallowed: the last successful result simply stays on display, which
// keeps mid-edit boards from flooding the user with errors.
func (e *Engine) autoSearchLocked() {
	runID := uuid.NewString()
	res, err := e.findLocked()
	if err != nil {
		if _, ok := event.Classify(err); ok {
			e.log.Debug("auto search failed", "run", runID, "err", err)
		} else {
			e.log.Warn("auto search failed", "run", runID, "err", err)
		}
		return
	}

	e.commitLocked(runID, res)
}

// findLocked runs one timed, instrumented search.
func (e *Engine) findLocked() (*route.Result, error) {
	started := time.Now()
	res, err := route.Find(e.board, e.model, e.searchOpts...)
	metrics.SearchDuration.Observe(float64(time.Since(started).Microseconds()) / 1e3)

	outcome := "path_found"
	if err != nil {
		if t, ok := event.Classify(err); ok {
			outcome = string(t)
		} else {
			outcome = "error"
		}
	}
	metrics.SearchesRun.WithLabelValues(outcome).Inc()

	return res, err
}

// commitLocked retains a successful result and announces it.
func (e *Engine) commitLocked(runID string, res *route.Result) {
	e.last = res
	metrics.LastPathCost.Set(float64(res.TotalCost))
	metrics.LastPathLength.Set(float64(len(res.Path)))

	e.emitter.Emit(event.Event{
		RunID: runID,
		Type:  event.TypePathFound,
		Path:  append([]board.NodeID(nil), res.Path...),
		Cost:  res.TotalCost,
		At:    time.Now(),
	})
	e.log.Info("path found", "run", runID, "path", res.Path, "cost", res.TotalCost)
}

// LastResult returns a copy of the most recent successful search result.
func (e *Engine) LastResult() (*route.Result, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.last == nil {
		return nil, false
	}

	return copyResult(e.last), true
}

// ClearResult drops the retained result. The editing surface calls this on
// structural edits when it wants stale paths off the screen; the engine
// never invalidates on its own in manual mode.
func (e *Engine) ClearResult() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.last = nil
	metrics.LastPathCost.Set(0)
	metrics.LastPathLength.Set(0)
}

// Highlights returns the node ids to highlight, derived fresh from the
// retained result on every call. No highlight state is stored anywhere;
// clearing the result clears the highlights.
func (e *Engine) Highlights() []board.NodeID {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.last == nil {
		return nil
	}

	return append([]board.NodeID(nil), e.last.Path...)
}

// IsHighlighted reports whether the node lies on the retained path.
func (e *Engine) IsHighlighted(id board.NodeID) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.last.Contains(id)
}

// SetAutoRecalculate toggles continuous recalculation.
func (e *Engine) SetAutoRecalculate(on bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.auto = on
}

// AutoRecalculate reports the current mode.
func (e *Engine) AutoRecalculate() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.auto
}

// SetCost assigns an exact arrival cost, passing through model validation.
func (e *Engine) SetCost(from, to board.NodeID, c int64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.model.SetArrival(from, to, c)
}

// AdjustCost shifts an arrival cost by delta and returns the clamped result.
func (e *Engine) AdjustCost(from, to board.NodeID, delta int64) int64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.model.Adjust(from, to, delta)
}

// ArrivalCost reports the current arrival cost for the pair.
func (e *Engine) ArrivalCost(from, to board.NodeID) int64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.model.Arrival(from, to)
}

// Clear empties the board, the cost table, the layout reports, and the
// retained result, returning the engine to its initial state.
func (e *Engine) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.board.Clear()
	// Restoring an empty entry set drops every cost under either policy.
	_ = e.model.Restore(nil)
	e.rects = make(map[board.NodeID]board.Rect)
	e.last = nil
	e.syncGauges()
	metrics.LastPathCost.Set(0)
	metrics.LastPathLength.Set(0)
}

// Snapshot captures the current session as a document.
func (e *Engine) Snapshot() *snapshot.Document {
	e.mu.Lock()
	defer e.mu.Unlock()

	doc := snapshot.Capture(e.board, e.model)
	metrics.Snapshots.WithLabelValues("capture", "ok").Inc()

	return doc
}

// Restore replaces the whole session from a document. The layout reports
// and the retained result are dropped; the next recompute needs a fresh
// full frame.
func (e *Engine) Restore(doc *snapshot.Document) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := snapshot.Apply(doc, e.board, e.model); err != nil {
		metrics.Snapshots.WithLabelValues("restore", "error").Inc()
		return err
	}

	e.rects = make(map[board.NodeID]board.Rect)
	e.last = nil
	e.syncGauges()
	metrics.Snapshots.WithLabelValues("restore", "ok").Inc()
	e.log.Info("session restored", "nodes", e.board.NodeCount(), "wires", e.board.WireCount())

	return nil
}

// Node returns the node with the given id.
func (e *Engine) Node(id board.NodeID) (board.Node, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.board.Node(id)
}

// Nodes returns all nodes sorted by id.
func (e *Engine) Nodes() []board.Node {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.board.Nodes()
}

// Wires returns all wires in canonical order.
func (e *Engine) Wires() []board.Wire {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.board.Wires()
}

// Stats returns a census of the board.
func (e *Engine) Stats() board.Stats {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.board.Stats()
}

// syncGauges pushes the board census into the Prometheus gauges. Callers
// hold the mutex.
func (e *Engine) syncGauges() {
	metrics.BoardNodes.Set(float64(e.board.NodeCount()))
	metrics.BoardWires.Set(float64(e.board.WireCount()))
}

// copyResult clones a result so callers cannot mutate retained state.
func copyResult(r *route.Result) *route.Result {
	return &route.Result{
		Path:      append([]board.NodeID(nil), r.Path...),
		TotalCost: r.TotalCost,
	}
}
