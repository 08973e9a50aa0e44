// Package pipeline runs one characterization of a directory or disk image
// end to end: optional carving and virus scan, the siegfried scan, loading
// and aggregating its output, and writing the CSV, HTML, and tree reports
// under <output root>/<identifier>.
//
// Run is strictly sequential. Decisions that need an operator (scan
// coverage gaps, infections) are delegated to a Policy so unattended runs
// abort instead of blocking on a prompt.
package pipeline
