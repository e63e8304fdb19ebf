// Package registry holds the mutable set of monitored item names.
//
// The registry:
//   - Keeps items ordered by insertion, with no duplicates (exact match)
//   - Persists the full list through a store before committing a mutation
//   - Serves reads from an in-memory copy, snapshotted per caller
//
// The monitor loop reads it and command handlers mutate it concurrently,
// so all access goes through a single mutex.
package registry
