// Package database keeps the manifest run history in SQLite.
//
// It stores one row per manifest generator run (manifest_runs) and a small
// key-value metadata table holding the time of the last run. The collection
// itself is never indexed here: trees are always rebuilt from disk or
// replayed from the snapshot.
//
// The database uses WAL mode and includes automatic schema initialization.
package database
