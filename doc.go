// Package routeboard is an interactive routing board: place typed nodes,
// wire them into a flow, and let the engine keep the cheapest
// Start-to-Finish path up to date while the board changes under your hands.
//
// 🚀 What is routeboard?
//
//	A session-oriented path engine that brings together:
//		• Typed boards: one Start, one Finish, any number of Waypoints
//		• Port-addressed wires with unbounded fan-in and fan-out
//		• Geometric costs: wire prices derived from widget rectangles
//		• Manual overrides: set or shift any arrival cost at runtime
//		• Deterministic search: identical boards always yield identical paths
//		• Snapshots: canonical JSON documents, restorable anywhere
//		• Stores: in-memory, SQLite, and Postgres persistence
//
// ✨ Why routeboard?
//
//   - Live recalculation: complete layout frames re-price and re-search on their own
//   - Typed notifications: every outcome surfaces as an event, a log line, or a span
//   - Deterministic: ties break the same way on every run, on every machine
//   - Production-shaped: slog logging, Prometheus metrics, YAML config, graceful CLI
//
// Everything is organized under focused packages:
//
//	board/     nodes, kinds, ports, wires: the mutable structure
//	cost/      arrival-cost models: scalar and per-edge policies
//	route/     the cheapest-path search itself
//	engine/    the session facade tying structure, costs, and search together
//	snapshot/  canonical document encode, decode, and validation
//	store/     memory, SQLite, and Postgres snapshot persistence
//	config/    YAML configuration with validation and hot reload
//	event/     typed notifications: buffered, slog, and OTel emitters
//	builder/   deterministic board fixtures for tests and examples
//	metrics/   Prometheus instrumentation
//
// Quick ASCII example:
//
//	[S]───[W]───[W]───[F]
//	        ╲         ╱
//	         ╰──[W]──╯
//
//	a Start, three Waypoints, a Finish, and two competing routes.
//
// Dive into the examples/ directory for runnable scenarios and into
// cmd/routeboard for the command-line driver.
//
//	go get github.com/katalvlaran/routeboard
package routeboard
