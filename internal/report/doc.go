// Package report renders aggregated scan statistics as CSV exports, a
// linked HTML document, and terminal tables.
//
// The HTML Document is written in a single forward pass: provenance, then
// the summary, then every declared section in order. Calls made out of that
// order fail with ErrOutOfOrder so a report can never be assembled with
// missing or repeated sections.
package report
