// Package sqlite provides the SQLite-backed run history store.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO. Every export and import batch is stored as one row in
// runs, with one row per document in run_outcomes.
//
// # Schema
//
// The schema is managed through versioned migrations embedded from the
// migrations/ directory. Files are named NNN_name.up.sql and applied in order;
// applied versions are recorded in schema_migrations.
//
// # Data Location
//
// By default, the database is stored at ~/.textsasset/data/history.db
package sqlite
