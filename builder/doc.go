// Package builder assembles deterministic board fixtures from composable
// shape constructors.
//
// Build creates an empty board, resolves the layout options, and applies
// the constructors in order. A trunk constructor (Corridor, Parallel) lays
// the Start, the Finish, and the waypoints between them; decorators (Decoy,
// Spur) extend whatever the trunk left behind. Node ids are assigned
// sequentially from 1 in insertion order, so a fixture's ids are knowable
// up front and identical on every run.
//
// The package serves tests, runnable examples, and seed data. Constructors
// never panic; invalid shape parameters surface as sentinel errors.
package builder
