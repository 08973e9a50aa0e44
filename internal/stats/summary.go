package stats

import (
	"context"
	"errors"
	"fmt"
	"time"

	"brunnhilde/internal/records"
)

var (
	// ErrNegativeDuplicates indicates more distinct duplicated hashes than
	// duplicated rows, which means the duplicate predicate is unsound.
	ErrNegativeDuplicates = errors.New("negative duplicate copy count")
	// ErrAccountingMismatch indicates total != distinct + copies + empty.
	ErrAccountingMismatch = errors.New("file accounting mismatch")
)

// YearRange is the span of four-digit modification years.
type YearRange struct {
	Begin int
	End   int
	Valid bool
}

// DateRange is the span of parsed modification timestamps. The raw values
// are kept for display.
type DateRange struct {
	Earliest    time.Time
	Latest      time.Time
	EarliestRaw string
	LatestRaw   string
	Valid       bool
}

// Summary holds every scalar statistic for one run.
type Summary struct {
	TotalFiles               int
	DistinctFiles            int
	EmptyFiles               int
	AllDuplicateRows         int
	DistinctDuplicatedHashes int
	DuplicateCopies          int
	UnidentifiedFiles        int
	FormatCount              int
	Errors                   int
	Warnings                 int
	Years                    YearRange
	Dates                    DateRange
	// UnparsedYears lists distinct year prefixes that were not numeric.
	UnparsedYears []string
	// UnparsedDates lists distinct modified values no layout could parse.
	UnparsedDates []string
}

// Check verifies total = distinct + duplicate copies + empty.
func (s *Summary) Check() error {
	if s.DuplicateCopies < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeDuplicates, s.DuplicateCopies)
	}
	sum := s.DistinctFiles + s.DuplicateCopies + s.EmptyFiles
	if s.TotalFiles != sum {
		return fmt.Errorf("%w: total %d, distinct %d + copies %d + empty %d = %d",
			ErrAccountingMismatch, s.TotalFiles, s.DistinctFiles, s.DuplicateCopies, s.EmptyFiles, sum)
	}
	return nil
}

// Compute runs every scalar statistic against q.
func Compute(ctx context.Context, q records.Querier) (*Summary, error) {
	s := &Summary{}
	counts := []struct {
		name  string
		query string
		dst   *int
	}{
		{"total files", qTotalFiles, &s.TotalFiles},
		{"distinct files", qDistinctFiles, &s.DistinctFiles},
		{"empty files", qEmptyFiles, &s.EmptyFiles},
		{"duplicate rows", qAllDuplicates, &s.AllDuplicateRows},
		{"distinct duplicates", qDistinctDupes, &s.DistinctDuplicatedHashes},
		{"unidentified files", qUnidentified, &s.UnidentifiedFiles},
		{"formats", qFormatCount, &s.FormatCount},
		{"errors", qErrorCount, &s.Errors},
		{"warnings", qWarningCount, &s.Warnings},
	}
	for _, c := range counts {
		n, err := count(ctx, q, c.query)
		if err != nil {
			return nil, fmt.Errorf("count %s: %w", c.name, err)
		}
		*c.dst = n
	}

	s.DuplicateCopies = s.AllDuplicateRows - s.DistinctDuplicatedHashes
	if s.DuplicateCopies < 0 {
		return nil, fmt.Errorf("%w: %d rows, %d hashes", ErrNegativeDuplicates, s.AllDuplicateRows, s.DistinctDuplicatedHashes)
	}

	years, err := distinctStrings(ctx, q, qDistinctYears)
	if err != nil {
		return nil, fmt.Errorf("distinct years: %w", err)
	}
	s.Years, s.UnparsedYears = yearRange(years)

	modified, err := distinctStrings(ctx, q, qDistinctModified)
	if err != nil {
		return nil, fmt.Errorf("distinct modified dates: %w", err)
	}
	s.Dates, s.UnparsedDates = dateRange(modified)

	return s, nil
}

func count(ctx context.Context, q records.Querier, query string) (int, error) {
	var n int
	if err := q.QueryRowContext(ctx, query).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func distinctStrings(ctx context.Context, q records.Querier, query string) ([]string, error) {
	rows, err := q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
