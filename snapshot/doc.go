// Package snapshot serializes a board and its cost table into a versioned
// JSON document and restores them losslessly.
//
// # Schema
//
// A Document records everything a session needs to resume: the schema
// version, the active cost policy, the board's id counter, every node with
// its kind and position, every wire, and every stored cost entry. All
// collections are sorted canonically before encoding, and encoding is
// field-order stable, so capturing the same state twice produces identical
// bytes. That byte stability is what makes "save, load, save" verifiable.
//
// # Validation
//
// Decode checks the document before anyone acts on it: schema version,
// parseable kinds and policy, unique ids below the recorded counter, the
// single-Start/single-Finish rule, wire endpoints and port arities, legal
// kind pairs, and cost entry shapes. A document that fails any check is
// refused whole; partial loads do not exist.
//
//	ErrMalformed          - the bytes are not a JSON document of this schema.
//	ErrUnsupportedVersion - the document's version is newer than this code.
//	ErrInvalidDocument    - the document violates a structural rule.
//
// Persistence itself (files, SQLite, Postgres) lives in the store package;
// this package only defines what a snapshot is.
package snapshot
