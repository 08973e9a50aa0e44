// Package records loads siegfried identification output into SQLite.
//
// The Store owns a single table, siegfried, whose columns mirror the scanner's
// CSV header and are all typed as text so locale-specific sizes or dates
// never fail a load. The table is dropped and recreated on every Load; rows
// whose field count disagrees with the header are skipped rather than
// aborting the batch.
//
// The database file is a per-run artifact: it is written once, queried
// read-only by the stats package, and left on disk next to the reports.
package records
