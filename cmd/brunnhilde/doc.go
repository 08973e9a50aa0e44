// Command brunnhilde characterizes a directory or disk image with siegfried
// and writes HTML, CSV, and SQLite reports describing its contents.
package main
