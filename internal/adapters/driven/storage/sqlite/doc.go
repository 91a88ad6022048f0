// Package sqlite stores the portal collections and scheduler state in a
// single SQLite database.
//
// The adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO. Each collection is exposed as a content source that keeps
// an in-memory snapshot of its table; writes made through the store reload
// the snapshot and notify listeners, and Refresh picks up rows written by
// other processes.
//
// # Schema
//
// The schema is managed through numbered migrations embedded from the
// migrations/ directory.
//
// # Data Location
//
// By default, the database is stored at ~/.portal-search/data/portal.db
package sqlite
