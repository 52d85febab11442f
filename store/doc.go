// Package store persists snapshot documents under generated ids.
//
// Three backends share the one Store contract:
//
//   - Memory: process-local, for tests and throwaway sessions.
//   - SQLite: single-file database, zero-setup local persistence.
//   - Postgres: pooled pgx backend for shared deployments.
//
// Every backend stores the canonical JSON rendered by snapshot.Encode and
// validates documents in both directions, so nothing a Store hands back can
// fail snapshot.Apply. Listing is newest first; Latest returns the most
// recent Save still present.
package store
