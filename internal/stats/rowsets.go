package stats

import (
	"context"
	"fmt"

	"brunnhilde/internal/records"
)

// Unidentified returns rows the scanner could not identify.
func Unidentified(ctx context.Context, q records.Querier) ([]records.Record, error) {
	return rowSet(ctx, q, "unidentified", qUnidentifiedRows)
}

// WithWarnings returns rows carrying a scanner warning.
func WithWarnings(ctx context.Context, q records.Querier) ([]records.Record, error) {
	return rowSet(ctx, q, "warnings", qWarningRows)
}

// WithErrors returns rows carrying a scanner error.
func WithErrors(ctx context.Context, q records.Querier) ([]records.Record, error) {
	return rowSet(ctx, q, "errors", qErrorRows)
}

// Duplicates returns every non-empty row whose hash appears under another
// path, ordered by hash so copies sit together.
func Duplicates(ctx context.Context, q records.Querier) ([]records.Record, error) {
	return rowSet(ctx, q, "duplicates", qDuplicateRows)
}

func rowSet(ctx context.Context, q records.Querier, name, query string) ([]records.Record, error) {
	recs, err := records.Query(ctx, q, query)
	if err != nil {
		return nil, fmt.Errorf("%s rows: %w", name, err)
	}
	if recs == nil {
		recs = []records.Record{}
	}
	return recs, nil
}
