// Package tools wraps the external programs a characterization run drives:
// siegfried, clamscan, bulk_extractor, the disk-image carvers, and tree.
//
// Every adapter talks to a Runner so tests can script process output
// without installing the real binaries.
package tools
