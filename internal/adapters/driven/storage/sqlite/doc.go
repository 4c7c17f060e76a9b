// Package sqlite provides the persistent document index.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO. The index is a cache of the papis libraries on disk and
// is rebuilt wholesale by Replace whenever the libraries change.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
//
// # Data Location
//
// By default, the database is stored at ~/.cache/papis-search-provider/library.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking provided
// by SQLite in WAL mode.
package sqlite
