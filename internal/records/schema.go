package records

import (
	"fmt"
	"strings"
)

// TableName is the SQLite table holding one row per scanned file.
const TableName = "siegfried"

// Columns lists the table columns in scanner header order. The hash column
// keeps the name md5 whatever digest the header advertises so queries stay
// stable.
var Columns = []string{
	"filename", "filesize", "modified", "errors", "md5", "namespace",
	"id", "format", "version", "mime", "basis", "warning",
}

// SelectColumns is the projection used when reading full records back.
var SelectColumns = strings.Join(Columns, ", ")

// Header is the human-readable header written above full-record exports.
var Header = []string{
	"Filename", "Filesize", "Date modified", "Errors", "Checksum",
	"Namespace", "ID", "Format", "Format Version", "MIME type",
	"Basis for ID", "Warning",
}

// columnsForHeader maps a scanner header onto table columns. The first
// twelve positions take the canonical names; any additional columns emitted
// by newer scanners keep a sanitized form of their header label.
func columnsForHeader(header []string) ([]string, error) {
	if len(header) < len(Columns) {
		return nil, fmt.Errorf("%w: got %d columns, need at least %d", ErrIncompatibleHeader, len(header), len(Columns))
	}
	out := append([]string(nil), Columns...)
	seen := make(map[string]struct{}, len(header))
	for _, col := range out {
		seen[col] = struct{}{}
	}
	for i := len(Columns); i < len(header); i++ {
		name := sanitizeColumn(header[i])
		if name == "" {
			name = "col"
		}
		candidate := name
		for n := 2; ; n++ {
			if _, ok := seen[candidate]; !ok {
				break
			}
			candidate = fmt.Sprintf("%s_%d", name, n)
		}
		seen[candidate] = struct{}{}
		out = append(out, candidate)
	}
	return out, nil
}

func sanitizeColumn(label string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(label)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return strings.Trim(b.String(), "_")
}

func createTableFor(columns []string) string {
	defs := make([]string, len(columns))
	for i, col := range columns {
		defs[i] = `"` + col + `" text`
	}
	return "CREATE TABLE " + TableName + " (" + strings.Join(defs, ", ") + ")"
}

func insertFor(columns []string) string {
	return "INSERT INTO " + TableName + " VALUES (" + makePlaceholders(len(columns)) + ")"
}

func makePlaceholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}
