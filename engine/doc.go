// Package engine coordinates a board, a cost model, and the path search
// behind one concurrency-safe facade.
//
// The engine is what an editing or rendering surface talks to. It owns the
// strict operation cycle the lower layers rely on:
//
//	structural edits → layout reports → cost recompute → path search
//
// and serializes every operation behind a single mutex so the surface can
// call in from any goroutine.
//
// # Recalculation modes
//
// In manual mode the surface drives each stage itself: RecomputeCosts after
// layout settles, RunPathSearch when the user asks. Failures are returned
// and, when they name a recoverable search outcome, emitted as events.
//
// In auto-recalculate mode the engine reacts to layout instead. Every node
// reports its on-screen rectangle via ReportRect; the report that completes
// the frame (every live node has one) triggers a cost recompute and a fresh
// search in one step. Search failures in this mode are swallowed: mid-edit
// boards are routinely missing a terminal or a connection, and the last
// successful result simply stays on display until a later pass succeeds.
//
// # Results and highlights
//
// The engine retains the most recent successful search result. Highlights
// are derived from it on every call rather than stored per node, so the
// highlighted set can never drift out of sync with the path that produced
// it. ClearResult drops both at once.
//
// # Observability
//
// Searches, recomputes, and snapshot operations update Prometheus metrics
// (package metrics) and notify the configured event.Emitter. Logging goes
// through a caller-supplied slog.Logger; refusals of illegal edits log at
// debug level because they are expected interactive outcomes, not faults.
package engine
