package stats

import (
	"context"

	"brunnhilde/internal/records"
)

// Report bundles the summary with every histogram and filtered row set.
type Report struct {
	Summary        *Summary
	Formats        []Bucket
	FormatVersions []Bucket
	MIMETypes      []Bucket
	Years          []Bucket
	Unidentified   []records.Record
	Warnings       []records.Record
	Errors         []records.Record
	Duplicates     []records.Record
}

// Collect computes the summary and all grouped and filtered statistics.
func Collect(ctx context.Context, q records.Querier) (*Report, error) {
	summary, err := Compute(ctx, q)
	if err != nil {
		return nil, err
	}
	r := &Report{Summary: summary}

	histograms := []struct {
		dst *[]Bucket
		fn  func(context.Context, records.Querier) ([]Bucket, error)
	}{
		{&r.Formats, Formats},
		{&r.FormatVersions, FormatVersions},
		{&r.MIMETypes, MIMETypes},
		{&r.Years, Years},
	}
	for _, h := range histograms {
		if *h.dst, err = h.fn(ctx, q); err != nil {
			return nil, err
		}
	}

	sets := []struct {
		dst *[]records.Record
		fn  func(context.Context, records.Querier) ([]records.Record, error)
	}{
		{&r.Unidentified, Unidentified},
		{&r.Warnings, WithWarnings},
		{&r.Errors, WithErrors},
		{&r.Duplicates, Duplicates},
	}
	for _, s := range sets {
		if *s.dst, err = s.fn(ctx, q); err != nil {
			return nil, err
		}
	}
	return r, nil
}
