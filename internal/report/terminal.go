package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"brunnhilde/internal/stats"
)

// TerminalTable describes a rounded terminal table. The title is printed
// on its own line above the table so narrow tables never wrap it. Columns
// whose zero-based index is in RightAligned are right aligned; headers stay
// left aligned.
type TerminalTable struct {
	Title        string
	Headers      []string
	RightAligned []int
}

// Render draws rows, padding or truncating each to the header width.
func (t TerminalTable) Render(rows [][]string) string {
	columns := len(t.Headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(toRow(t.Headers, columns))
	for _, row := range rows {
		tw.AppendRow(toRow(row, columns))
	}

	configs := make([]table.ColumnConfig, columns)
	for i := range configs {
		configs[i] = table.ColumnConfig{Number: i + 1, Align: text.AlignLeft, AlignHeader: text.AlignLeft}
	}
	for _, i := range t.RightAligned {
		if i >= 0 && i < columns {
			configs[i].Align = text.AlignRight
		}
	}
	tw.SetColumnConfigs(configs)

	if t.Title == "" {
		return tw.Render()
	}
	return t.Title + "\n" + tw.Render()
}

func toRow(values []string, columns int) table.Row {
	row := make(table.Row, columns)
	for i := range row {
		if i < len(values) {
			row[i] = values[i]
		} else {
			row[i] = ""
		}
	}
	return row
}

// RenderTerminal prints the summary as a rounded table.
func RenderTerminal(w io.Writer, s *stats.Summary) error {
	v := NewSummaryView(s, -1)
	rows := [][]string{
		{"Total files", v.TotalFiles},
		{"Years (last modified)", v.Years},
		{"Earliest date", v.Earliest},
		{"Latest date", v.Latest},
		{"Distinct files", v.DistinctFiles},
		{"Distinct files that have duplicates", v.DistinctDuplicatedHashes},
		{"Duplicate copies of distinct files", v.DuplicateCopies},
		{"Empty files", v.EmptyFiles},
		{"Identified file formats", v.FormatCount},
		{"Unidentified files", v.UnidentifiedFiles},
		{"Siegfried warnings", v.Warnings},
		{"Siegfried errors", v.Errors},
	}
	t := TerminalTable{Headers: []string{"Statistic", "Value"}, RightAligned: []int{1}}

	if _, err := fmt.Fprintln(w, t.Render(rows)); err != nil {
		return err
	}
	if len(v.UnparsedDates) > 0 {
		if _, err := fmt.Fprintf(w, "Unreadable modified dates: %s\n", strings.Join(v.UnparsedDates, ", ")); err != nil {
			return err
		}
	}
	return nil
}

// RenderBuckets prints a histogram with its section header, most common
// first. limit <= 0 prints every bucket.
func RenderBuckets(w io.Writer, section Section, buckets []stats.Bucket, limit int) error {
	rows := make([][]string, 0, len(buckets))
	for i, b := range buckets {
		if limit > 0 && i >= limit {
			break
		}
		row := append([]string{}, b.Keys...)
		rows = append(rows, append(row, counts.Sprintf("%d", b.Count)))
	}
	t := TerminalTable{
		Title:        section.Title,
		Headers:      section.Header,
		RightAligned: []int{len(section.Header) - 1},
	}
	_, err := fmt.Fprintln(w, t.Render(rows))
	return err
}
