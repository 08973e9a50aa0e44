package report

import (
	"brunnhilde/internal/records"
	"brunnhilde/internal/stats"
)

// Section describes one detailed report: its anchor in the HTML document,
// the CSV export name, and the column header shared by both.
type Section struct {
	Anchor  string
	Title   string
	CSVName string
	Header  []string
	Note    string
}

// Table is a section together with the rows rendered under it.
type Table struct {
	Section
	Rows [][]string
}

var (
	SectionFormats = Section{
		Anchor:  "formats",
		Title:   "File formats",
		CSVName: "formats.csv",
		Header:  []string{"Format", "ID", "Count"},
	}
	SectionFormatVersions = Section{
		Anchor:  "format-versions",
		Title:   "File formats and versions",
		CSVName: "formatVersions.csv",
		Header:  []string{"Format", "ID", "Version", "Count"},
	}
	SectionMIMETypes = Section{
		Anchor:  "mime-types",
		Title:   "MIME types",
		CSVName: "mimetypes.csv",
		Header:  []string{"MIME type", "Count"},
	}
	SectionYears = Section{
		Anchor:  "years",
		Title:   "Last modified dates by year",
		CSVName: "years.csv",
		Header:  []string{"Year Last Modified", "Count"},
	}
	SectionUnidentified = Section{
		Anchor:  "unidentified",
		Title:   "Unidentified",
		CSVName: "unidentified.csv",
		Header:  records.Header,
	}
	SectionWarnings = Section{
		Anchor:  "warnings",
		Title:   "Warnings",
		CSVName: "warnings.csv",
		Header:  records.Header,
	}
	SectionErrors = Section{
		Anchor:  "errors",
		Title:   "Errors",
		CSVName: "errors.csv",
		Header:  records.Header,
	}
	SectionDuplicates = Section{
		Anchor:  "duplicates",
		Title:   "Duplicates",
		CSVName: "duplicates.csv",
		Header:  records.Header,
		Note:    "Duplicates are grouped by md5 hash.",
	}
	// SectionPII has no CSV export; bulk_extractor's own pii.txt is kept.
	SectionPII = Section{
		Anchor: "pii",
		Title:  "Personally Identifiable Information (PII)",
		Header: []string{"File", "Value Found", "Context"},
		Note:   "Potential PII in source, as identified by bulk_extractor.",
	}
)

// Sections returns the detailed reports in document order. The PII section
// is only declared when the sensitive-data scan ran.
func Sections(withPII bool) []Section {
	out := []Section{
		SectionFormats,
		SectionFormatVersions,
		SectionMIMETypes,
		SectionYears,
		SectionUnidentified,
		SectionWarnings,
		SectionErrors,
		SectionDuplicates,
	}
	if withPII {
		out = append(out, SectionPII)
	}
	return out
}

// Tables projects the aggregated report onto the standard sections, in
// document order.
func Tables(r *stats.Report) []Table {
	return []Table{
		{Section: SectionFormats, Rows: bucketRows(r.Formats)},
		{Section: SectionFormatVersions, Rows: bucketRows(r.FormatVersions)},
		{Section: SectionMIMETypes, Rows: bucketRows(r.MIMETypes)},
		{Section: SectionYears, Rows: bucketRows(r.Years)},
		{Section: SectionUnidentified, Rows: recordRows(r.Unidentified)},
		{Section: SectionWarnings, Rows: recordRows(r.Warnings)},
		{Section: SectionErrors, Rows: recordRows(r.Errors)},
		{Section: SectionDuplicates, Rows: recordRows(r.Duplicates)},
	}
}

// PIITable wraps parsed bulk_extractor rows as the PII section.
func PIITable(rows [][]string) Table {
	return Table{Section: SectionPII, Rows: rows}
}

func bucketRows(bs []stats.Bucket) [][]string {
	out := make([][]string, 0, len(bs))
	for _, b := range bs {
		out = append(out, b.Row())
	}
	return out
}

func recordRows(recs []records.Record) [][]string {
	out := make([][]string, 0, len(recs))
	for _, rec := range recs {
		out = append(out, rec.Fields())
	}
	return out
}
