// Package preflight checks that the output location is usable and that the
// external tools a run needs are installed before any work starts.
//
// The run command calls RunAll and CheckSystemDeps up front so a missing
// scanner fails fast instead of after a long carve or virus scan. The deps
// command renders CheckSystemDeps for every feature.
package preflight
