// Package store owns the three in-memory collections and persists them through a [Backend].
//
// A [Store] is loaded once at startup and passed by reference to the repositories, which read a snapshot,
// build the mutated collection and hand it back through one of the Save methods. A Save method persists first and
// swaps the in-memory collection only when the backend accepted it, so a failed write never leaves memory and
// storage disagreeing.
//
// Backends:
//   - [FileBackend] : one pretty-printed file per collection (JSON or YAML), written via temp file + rename
//   - [SQLiteBackend] : one row per collection in a sqlite database, schema managed by shared.RunMigrations
//   - [MemoryBackend] : map-backed, for tests and throwaway sessions
//
// A collection that was never saved loads as empty. A collection that exists but does not decode is reported as
// shared.ErrCorruptCollection rather than silently replaced.
package store
