package stats

import (
	"context"
	"fmt"

	"brunnhilde/internal/records"
)

// Bucket is one histogram row: the grouping keys followed by a count.
type Bucket struct {
	Keys  []string
	Count int
}

// Row returns the bucket as table cells with the count last.
func (b Bucket) Row() []string {
	out := make([]string, 0, len(b.Keys)+1)
	out = append(out, b.Keys...)
	return append(out, fmt.Sprint(b.Count))
}

// Formats groups identified rows by format and identifier.
func Formats(ctx context.Context, q records.Querier) ([]Bucket, error) {
	return buckets(ctx, q, qFormats, 2)
}

// FormatVersions groups identified rows by format, identifier, and version.
func FormatVersions(ctx context.Context, q records.Querier) ([]Bucket, error) {
	return buckets(ctx, q, qFormatVersions, 3)
}

// MIMETypes groups rows with a MIME type by that type.
func MIMETypes(ctx context.Context, q records.Querier) ([]Bucket, error) {
	return buckets(ctx, q, qMIMETypes, 1)
}

// Years groups every row by the first four characters of its modified date.
func Years(ctx context.Context, q records.Querier) ([]Bucket, error) {
	return buckets(ctx, q, qYears, 1)
}

// Total sums the bucket counts.
func Total(bs []Bucket) int {
	n := 0
	for _, b := range bs {
		n += b.Count
	}
	return n
}

func buckets(ctx context.Context, q records.Querier, query string, keys int) ([]Bucket, error) {
	rows, err := q.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query histogram: %w", err)
	}
	defer rows.Close()

	out := []Bucket{}
	for rows.Next() {
		vals := make([]string, keys)
		dest := make([]any, 0, keys+1)
		for i := range vals {
			dest = append(dest, &vals[i])
		}
		var n int
		dest = append(dest, &n)
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan histogram: %w", err)
		}
		out = append(out, Bucket{Keys: vals, Count: n})
	}
	return out, rows.Err()
}
