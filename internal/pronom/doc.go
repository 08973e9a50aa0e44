// Package pronom turns PRONOM identifiers in a rendered report into links
// to the PRONOM format registry.
package pronom
