// Package store provides durable run provenance for the generate
// command: each generate invocation given --store records its ruleset
// hash, dimensions, seed, and outcome, so a later `replay` can re-run the
// same inputs and confirm determinism.
//
// This is narrowly an append-only provenance log, not a project file
// format: it never stores tile art, socket specs, or anything else an
// editor would call a project.
//
// SQLite is opened in WAL mode with a single writer connection, the
// schema is applied from an embedded .sql file, and the schema version is
// stamped into PRAGMA user_version. There are no migration steps.
package store
