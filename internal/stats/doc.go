// Package stats computes aggregate statistics over the siegfried table.
//
// Every statistic is an independent query against the store; nothing is
// cached between them, so each can be recomputed from the table alone. Empty
// inputs produce zero counts and empty histograms rather than errors.
//
// Duplicate accounting is keyed solely on the content hash and ignores
// zero-byte files, which keeps the identity
// total = distinct + duplicate copies + empty
// true for well-formed scans.
package stats
