package stats_test

import (
	"context"
	"errors"
	"testing"

	"brunnhilde/internal/records"
	"brunnhilde/internal/stats"
	"brunnhilde/internal/testsupport"
)

func TestComputeDuplicateAccounting(t *testing.T) {
	store := testsupport.MustLoad(t,
		testsupport.Identified("/in/a/report.pdf", "H1", "fmt/276", "Acrobat PDF 1.7", "2012-01-01T00:00:00Z"),
		testsupport.Identified("/in/b/report-copy.pdf", "H1", "fmt/276", "Acrobat PDF 1.7", "2012-01-02T00:00:00Z"),
		testsupport.Identified("/in/notes.txt", "H2", "x-fmt/111", "Plain Text File", "2013-01-01T00:00:00Z"),
		testsupport.Empty("/in/empty1", "2014-01-01T00:00:00Z"),
		testsupport.Empty("/in/empty2", "2014-01-01T00:00:00Z"),
	)

	s, err := stats.Compute(context.Background(), store.DB())
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}

	checks := []struct {
		name string
		got  int
		want int
	}{
		{"total", s.TotalFiles, 5},
		{"empty", s.EmptyFiles, 2},
		{"distinct", s.DistinctFiles, 2},
		{"all duplicate rows", s.AllDuplicateRows, 2},
		{"distinct duplicated hashes", s.DistinctDuplicatedHashes, 1},
		{"duplicate copies", s.DuplicateCopies, 1},
		{"formats", s.FormatCount, 2},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s: got %d want %d", c.name, c.got, c.want)
		}
	}
	if err := s.Check(); err != nil {
		t.Fatalf("accounting identity failed: %v", err)
	}
}

func TestComputeIdentityAcrossShapes(t *testing.T) {
	cases := []struct {
		name string
		recs []records.Record
	}{
		{"empty input", nil},
		{"only empties", []records.Record{testsupport.Empty("/a", "2001"), testsupport.Empty("/b", "2001")}},
		{"triplicate", []records.Record{
			testsupport.Identified("/a", "H", "fmt/1", "A", "2001"),
			testsupport.Identified("/b", "H", "fmt/1", "A", "2001"),
			testsupport.Identified("/c", "H", "fmt/1", "A", "2001"),
		}},
		{"two groups", []records.Record{
			testsupport.Identified("/a", "H1", "fmt/1", "A", "2001"),
			testsupport.Identified("/b", "H1", "fmt/1", "A", "2001"),
			testsupport.Identified("/c", "H2", "fmt/2", "B", "2002"),
			testsupport.Identified("/d", "H2", "fmt/2", "B", "2002"),
			testsupport.Identified("/e", "H3", "fmt/3", "C", "2003"),
			testsupport.Empty("/f", "2004"),
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := testsupport.MustLoad(t, tc.recs...)
			s, err := stats.Compute(context.Background(), store.DB())
			if err != nil {
				t.Fatalf("Compute failed: %v", err)
			}
			if s.DuplicateCopies < 0 {
				t.Fatalf("negative duplicate copies: %d", s.DuplicateCopies)
			}
			if err := s.Check(); err != nil {
				t.Fatalf("accounting identity failed: %v", err)
			}
			if s.TotalFiles != len(tc.recs) {
				t.Fatalf("total: got %d want %d", s.TotalFiles, len(tc.recs))
			}
		})
	}
}

func TestCheckReportsViolations(t *testing.T) {
	bad := &stats.Summary{TotalFiles: 4, DistinctFiles: 1, EmptyFiles: 1}
	if err := bad.Check(); !errors.Is(err, stats.ErrAccountingMismatch) {
		t.Fatalf("expected ErrAccountingMismatch, got %v", err)
	}
	negative := &stats.Summary{DuplicateCopies: -1}
	if err := negative.Check(); !errors.Is(err, stats.ErrNegativeDuplicates) {
		t.Fatalf("expected ErrNegativeDuplicates, got %v", err)
	}
}

func TestUnidentifiedAppearsOnlyInUnidentifiedSets(t *testing.T) {
	unknown := records.Record{
		Filename:  "/in/mystery.bin",
		Filesize:  "77",
		Modified:  "2010-05-05T00:00:00Z",
		Hash:      "H9",
		Namespace: "pronom",
		ID:        records.UnknownID,
		Basis:     "",
		Warning:   "no match",
	}
	store := testsupport.MustLoad(t,
		testsupport.Identified("/in/a.pdf", "H1", "fmt/276", "Acrobat PDF 1.7", "2012"),
		unknown,
	)
	ctx := context.Background()

	r, err := stats.Collect(ctx, store.DB())
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}
	if r.Summary.UnidentifiedFiles != 1 {
		t.Fatalf("expected 1 unidentified file, got %d", r.Summary.UnidentifiedFiles)
	}
	if len(r.Unidentified) != 1 || r.Unidentified[0].Filename != unknown.Filename {
		t.Fatalf("unexpected unidentified rows: %+v", r.Unidentified)
	}
	for _, set := range [][]stats.Bucket{r.Formats, r.FormatVersions, r.MIMETypes} {
		for _, b := range set {
			for _, k := range b.Keys {
				if k == records.UnknownID {
					t.Fatalf("unidentified row leaked into histogram: %+v", b)
				}
			}
		}
	}
	if r.Summary.FormatCount != 1 {
		t.Fatalf("expected 1 identified format, got %d", r.Summary.FormatCount)
	}
}

func TestYearRangeUsesNumericYears(t *testing.T) {
	store := testsupport.MustLoad(t,
		testsupport.Identified("/a", "H1", "fmt/1", "A", "2005-06-01T00:00:00Z"),
		testsupport.Identified("/b", "H2", "fmt/1", "A", "1999-01-01T00:00:00Z"),
		testsupport.Identified("/c", "H3", "fmt/1", "A", "2012-12-31T00:00:00Z"),
	)
	s, err := stats.Compute(context.Background(), store.DB())
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	if !s.Years.Valid || s.Years.Begin != 1999 || s.Years.End != 2012 {
		t.Fatalf("unexpected year range: %+v", s.Years)
	}
	if s.Dates.EarliestRaw != "1999-01-01T00:00:00Z" || s.Dates.LatestRaw != "2012-12-31T00:00:00Z" {
		t.Fatalf("unexpected date range: %+v", s.Dates)
	}
}

func TestYearRangeRejectsPlaceholderYears(t *testing.T) {
	store := testsupport.MustLoad(t,
		testsupport.Identified("/a", "H1", "fmt/1", "A", "0000-00-00T00:00:00Z"),
		testsupport.Identified("/b", "H2", "fmt/1", "A", "+999-01-01T00:00:00Z"),
		testsupport.Identified("/c", "H3", "fmt/1", "A", "2016-03-01T00:00:00Z"),
	)
	s, err := stats.Compute(context.Background(), store.DB())
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	if !s.Years.Valid || s.Years.Begin != 2016 || s.Years.End != 2016 {
		t.Fatalf("unexpected year range: %+v", s.Years)
	}
	if len(s.UnparsedYears) != 2 || s.UnparsedYears[0] != "+999" || s.UnparsedYears[1] != "0000" {
		t.Fatalf("expected placeholder years flagged, got %v", s.UnparsedYears)
	}
}

func TestDateRangeParsesInsteadOfComparingStrings(t *testing.T) {
	store := testsupport.MustLoad(t,
		// Lexicographically smallest, chronologically latest (14:00 UTC).
		testsupport.Identified("/a", "H1", "fmt/1", "A", "2011-12-31T09:00:00-05:00"),
		testsupport.Identified("/b", "H2", "fmt/1", "A", "2011-12-31T10:00:00Z"),
		testsupport.Identified("/c", "H3", "fmt/1", "A", "garbage"),
	)
	s, err := stats.Compute(context.Background(), store.DB())
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	if s.Dates.EarliestRaw != "2011-12-31T10:00:00Z" {
		t.Fatalf("unexpected earliest: %q", s.Dates.EarliestRaw)
	}
	if s.Dates.LatestRaw != "2011-12-31T09:00:00-05:00" {
		t.Fatalf("unexpected latest: %q", s.Dates.LatestRaw)
	}
	if len(s.UnparsedDates) != 1 || s.UnparsedDates[0] != "garbage" {
		t.Fatalf("expected garbage to be flagged, got %v", s.UnparsedDates)
	}
	if len(s.UnparsedYears) != 1 || s.UnparsedYears[0] != "garb" {
		t.Fatalf("expected non-numeric year prefix flagged, got %v", s.UnparsedYears)
	}
}

func TestEmptyStoreProducesDefinedResults(t *testing.T) {
	store := testsupport.MustLoad(t)
	r, err := stats.Collect(context.Background(), store.DB())
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}
	if r.Summary.TotalFiles != 0 || r.Summary.Years.Valid || r.Summary.Dates.Valid {
		t.Fatalf("unexpected summary for empty store: %+v", r.Summary)
	}
	if r.Formats == nil || len(r.Formats) != 0 {
		t.Fatalf("expected empty non-nil format histogram, got %#v", r.Formats)
	}
	if r.Duplicates == nil || len(r.Duplicates) != 0 {
		t.Fatalf("expected empty non-nil duplicate set, got %#v", r.Duplicates)
	}
}

func TestHistogramMarginals(t *testing.T) {
	recs := []records.Record{
		testsupport.Identified("/a", "H1", "fmt/276", "Acrobat PDF 1.7", "2012"),
		testsupport.Identified("/b", "H2", "fmt/276", "Acrobat PDF 1.7", "2012"),
		testsupport.Identified("/c", "H3", "fmt/40", "Microsoft Word Document", "2003"),
		testsupport.Identified("/d", "H4", "x-fmt/111", "Plain Text File", ""),
		testsupport.Empty("/e", "2003"),
	}
	recs[2].Version = "97-2003"
	store := testsupport.MustLoad(t, recs...)
	r, err := stats.Collect(context.Background(), store.DB())
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}

	if got := stats.Total(r.Formats); got != 4 {
		t.Fatalf("format histogram sums to %d, want 4 identified rows", got)
	}
	if got := stats.Total(r.FormatVersions); got != 4 {
		t.Fatalf("format/version histogram sums to %d, want 4", got)
	}
	if got := stats.Total(r.Years); got != len(recs) {
		t.Fatalf("year histogram sums to %d, want %d", got, len(recs))
	}
	if got := stats.Total(r.MIMETypes); got != 4 {
		t.Fatalf("mime histogram sums to %d, want 4", got)
	}

	top := r.Formats[0]
	if top.Keys[0] != "Acrobat PDF 1.7" || top.Keys[1] != "fmt/276" || top.Count != 2 {
		t.Fatalf("expected most common format first, got %+v", top)
	}
	if row := top.Row(); len(row) != 3 || row[2] != "2" {
		t.Fatalf("unexpected bucket row: %v", row)
	}
	for i := 1; i < len(r.Years); i++ {
		if r.Years[i-1].Count < r.Years[i].Count {
			t.Fatalf("year histogram not ordered by count: %+v", r.Years)
		}
	}
}

func TestDuplicatesOrderedByHash(t *testing.T) {
	store := testsupport.MustLoad(t,
		testsupport.Identified("/z1", "HB", "fmt/1", "A", "2001"),
		testsupport.Identified("/a1", "HA", "fmt/1", "A", "2001"),
		testsupport.Identified("/z2", "HB", "fmt/1", "A", "2001"),
		testsupport.Identified("/a2", "HA", "fmt/1", "A", "2001"),
		testsupport.Identified("/solo", "HC", "fmt/1", "A", "2001"),
	)
	dups, err := stats.Duplicates(context.Background(), store.DB())
	if err != nil {
		t.Fatalf("Duplicates failed: %v", err)
	}
	var got []string
	for _, d := range dups {
		got = append(got, d.Hash+":"+d.Filename)
	}
	want := []string{"HA:/a1", "HA:/a2", "HB:/z1", "HB:/z2"}
	if len(got) != len(want) {
		t.Fatalf("got %v want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v want %v", got, want)
		}
	}
}
