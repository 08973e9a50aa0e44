// Package logging assembles structured slog loggers used across brunnhilde.
//
// It owns the configurable console/JSON handlers, centralizes level and output
// plumbing, and exposes context helpers so pipeline steps can tag log lines
// with the run identifier and component name. The package also provides a
// no-op logger for tests and wiring code that cannot fail.
//
// Prefer these constructors over hand-rolled slog setup so every component
// emits data with the same shape.
package logging
