// Package event carries search outcome notifications from the engine to
// whatever presentation layer sits on top of it.
//
// The engine announces every terminal search outcome (path found, missing
// start, missing finish, unreachable) and every completed cost recompute as
// an Event handed to an Emitter. The core never formats or displays
// anything; emitters decide what a notification becomes:
//
//   - Null discards events (the default when nothing is configured).
//   - NewLogEmitter writes structured slog records.
//   - NewBufferedEmitter retains events in memory for tests and dashboards.
//   - NewOTelEmitter converts events into OpenTelemetry spans.
//   - Multi fans one event out to several emitters.
//
// Emitters must not block and must not panic: they sit on the engine's
// update path, and a slow or failing backend must degrade to dropped
// notifications, never to a stalled editing session.
package event
