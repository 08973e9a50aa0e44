package testsupport

import (
	"bytes"
	"encoding/csv"

	"brunnhilde/internal/records"
)

// ScanHeader is the header line siegfried writes with -csv -hash md5.
var ScanHeader = []string{
	"filename", "filesize", "modified", "errors", "md5", "namespace",
	"id", "format", "version", "mime", "basis", "warning",
}

// ScanCSV renders records as siegfried CSV output, header included.
func ScanCSV(recs ...records.Record) string {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write(ScanHeader)
	for _, rec := range recs {
		_ = w.Write(rec.Fields())
	}
	w.Flush()
	return buf.String()
}

// Identified builds a non-empty, identified record.
func Identified(path, hash, puid, format, modified string) records.Record {
	return records.Record{
		Filename:  path,
		Filesize:  "1024",
		Modified:  modified,
		Hash:      hash,
		Namespace: "pronom",
		ID:        puid,
		Format:    format,
		MIME:      "application/octet-stream",
		Basis:     "extension match",
	}
}

// Empty builds a zero-byte record.
func Empty(path, modified string) records.Record {
	return records.Record{
		Filename:  path,
		Filesize:  records.EmptySize,
		Modified:  modified,
		Hash:      "d41d8cd98f00b204e9800998ecf8427e",
		Namespace: "pronom",
		ID:        records.UnknownID,
		Warning:   "empty source",
	}
}
